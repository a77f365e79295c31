package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/media"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mediaServiceFunc func(ctx context.Context, url string) (*models.MediaResponse, error)

func (f mediaServiceFunc) GetMediaInfo(ctx context.Context, url string) (*models.MediaResponse, error) {
	return f(ctx, url)
}

func serve(t *testing.T, service MediaInfoService, body string) *httptest.ResponseRecorder {
	t.Helper()
	engine := gin.New()
	engine.POST("/api/download", NewDownloadHandler(service).GetDownloadLinks)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestGetDownloadLinksTrimsURL(t *testing.T) {
	var got string
	service := mediaServiceFunc(func(_ context.Context, url string) (*models.MediaResponse, error) {
		got = url
		return &models.MediaResponse{Duration: "N/A", Formats: []models.FormatOption{{Label: "x", Ext: "mp4"}}}, nil
	})

	w := serve(t, service, `{"url": "  https://vm.tiktok.com/abc/  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://vm.tiktok.com/abc/", got)
}

func TestGetDownloadLinksEmptyFormatsGuard(t *testing.T) {
	service := mediaServiceFunc(func(context.Context, string) (*models.MediaResponse, error) {
		return &models.MediaResponse{Duration: "N/A", Formats: []models.FormatOption{}}, nil
	})

	w := serve(t, service, `{"url": "https://x/1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToAppError(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{
			name:   "invalid source",
			err:    fmt.Errorf("%w: Unsupported URL", extractor.ErrInvalidSource),
			status: http.StatusBadRequest,
			detail: extractor.InvalidSourceMessage,
		},
		{
			name:   "no formats",
			err:    media.ErrNoFormatsFound,
			status: http.StatusNotFound,
			detail: "Could not find any downloadable formats for the given URL.",
		},
		{
			name:   "internal",
			err:    fmt.Errorf("%w: %w", media.ErrInternal, errors.New("disk full")),
			status: http.StatusInternalServerError,
			detail: "An internal server error occurred.",
		},
		{
			name:   "unknown",
			err:    errors.New("something else"),
			status: http.StatusInternalServerError,
			detail: "An internal server error occurred.",
		},
		{
			name:   "app error passthrough",
			err:    utils.NewRateLimitError(),
			status: http.StatusTooManyRequests,
			detail: "Too many requests",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := toAppError(context.Background(), tc.err)
			assert.Equal(t, tc.status, appErr.StatusCode)
			assert.Equal(t, tc.detail, appErr.Message)
		})
	}
}
