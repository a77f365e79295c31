package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisAlshanov/tikgrab/internal/api/handlers"
	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/services/cache"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/media"
	"github.com/denisAlshanov/tikgrab/internal/services/worker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtractor returns canned records keyed by URL.
type stubExtractor struct {
	records    map[string]*models.RawMediaRecord
	errs       map[string]error
	versionErr error
}

func (s *stubExtractor) Extract(_ context.Context, url string) (*models.RawMediaRecord, error) {
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if record, ok := s.records[url]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("%w: Unsupported URL: %s", extractor.ErrInvalidSource, url)
}

func (s *stubExtractor) Version(context.Context) (string, error) {
	return "2025.10.22", s.versionErr
}

func str(s string) *string { return &s }
func num(i int) *int       { return &i }

func newTestRouter(t *testing.T, ext *stubExtractor) *Router {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		CORS: config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"*"},
		},
	}

	pool := worker.NewPool(2, 4)
	t.Cleanup(pool.Stop)

	service := media.NewService(ext, pool, cache.NoopCache{})
	return NewRouter(cfg,
		handlers.NewDownloadHandler(service),
		handlers.NewHealthHandler(ext, cache.NoopCache{}, pool),
	)
}

func postDownload(t *testing.T, r *Router, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"url": url})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/download", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.Engine().ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestDownloadVideoFormats(t *testing.T) {
	ext := &stubExtractor{records: map[string]*models.RawMediaRecord{
		"https://www.tiktok.com/@u/video/1": {
			Title:          str("clip"),
			Thumbnail:      str("https://cdn/thumb.jpg"),
			DurationString: str("0:14"),
			Formats: []models.RawFormat{
				{URL: "https://cdn/360", VCodec: str("h264"), ACodec: str("aac"), Height: num(360)},
				{URL: "https://cdn/720", VCodec: str("h264"), ACodec: str("aac"), Height: num(720)},
				{URL: "https://cdn/1080", VCodec: str("h264"), ACodec: str("aac"), Height: num(1080)},
				{URL: "https://cdn/muted", VCodec: str("h264"), ACodec: str("none"), Height: num(1080)},
			},
		},
	}}
	r := newTestRouter(t, ext)

	w, _ := postDownload(t, r, "https://www.tiktok.com/@u/video/1")
	require.Equal(t, http.StatusOK, w.Code)

	var response models.MediaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "clip", *response.Title)
	assert.Equal(t, "0:14", response.Duration)
	require.Len(t, response.Formats, 4)
	for _, f := range response.Formats {
		assert.Equal(t, "mp4", f.Ext)
	}
	assert.Contains(t, response.Formats[3].Label, "No Audio")
}

func TestDownloadNullableFieldsSerializeAsNull(t *testing.T) {
	ext := &stubExtractor{records: map[string]*models.RawMediaRecord{
		"https://x/1": {Formats: []models.RawFormat{{URL: "https://cdn/a", VCodec: str("none"), ACodec: str("opus")}}},
	}}
	r := newTestRouter(t, ext)

	w, payload := postDownload(t, r, "https://x/1")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, payload, "title")
	assert.Nil(t, payload["title"])
	assert.Nil(t, payload["thumbnail"])
	assert.Equal(t, "N/A", payload["duration"])
}

func TestDownloadInvalidSource(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{})

	w, payload := postDownload(t, r, "https://www.tiktok.com/@u/video/private")
	require.Equal(t, http.StatusBadRequest, w.Code)

	detail := strings.ToLower(payload["detail"].(string))
	assert.Contains(t, detail, "invalid")
	assert.Contains(t, detail, "private")
	assert.Contains(t, detail, "unavailable")
}

func TestDownloadNoFormats(t *testing.T) {
	ext := &stubExtractor{records: map[string]*models.RawMediaRecord{
		"https://x/empty": {Title: str("nothing here")},
	}}
	r := newTestRouter(t, ext)

	w, payload := postDownload(t, r, "https://x/empty")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Could not find any downloadable formats for the given URL.", payload["detail"])
}

func TestDownloadSlideshow(t *testing.T) {
	ext := &stubExtractor{records: map[string]*models.RawMediaRecord{
		"https://x/photo": {Images: []models.RawImage{
			{URL: "https://cdn/1.jpg", Width: num(1080), Height: num(1920)},
			{URL: "https://cdn/2.jpg", Width: num(1080), Height: num(1920)},
			{URL: "https://cdn/3.jpg", Width: num(1080), Height: num(1920)},
		}},
	}}
	r := newTestRouter(t, ext)

	w, _ := postDownload(t, r, "https://x/photo")
	require.Equal(t, http.StatusOK, w.Code)

	var response models.MediaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Formats, 3)
	for i, f := range response.Formats {
		assert.Equal(t, "jpg", f.Ext)
		assert.Contains(t, f.Label, fmt.Sprintf("Image %d", i+1))
	}
}

func TestDownloadInternalErrorHidesDetails(t *testing.T) {
	ext := &stubExtractor{errs: map[string]error{
		"https://x/crash": errors.New("exec: \"yt-dlp\": executable file not found in $PATH"),
	}}
	r := newTestRouter(t, ext)

	w, payload := postDownload(t, r, "https://x/crash")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An internal server error occurred.", payload["detail"])
	assert.NotContains(t, w.Body.String(), "yt-dlp")
}

func TestDownloadRejectsBadBodies(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{})

	for _, body := range []string{`{}`, `{"url": "   "}`, `not json`, `{"url": 5}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.Engine().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestHealthIgnoresExtractorState(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{versionErr: errors.New("yt-dlp missing")})

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReadyWhenDependenciesUp(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{})

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response models.ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Ready)
	assert.True(t, response.Checks["extractor"].Ready)
	assert.True(t, response.Checks["cache"].Ready)
}

func TestRoot(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{})

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/download")
}

func TestCORSPreflightOnDownload(t *testing.T) {
	r := newTestRouter(t, &stubExtractor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/download", nil)
	req.Header.Set("Origin", "https://frontend.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
