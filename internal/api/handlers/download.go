package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/media"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

// MediaInfoService is the extraction adapter as seen by the HTTP layer.
type MediaInfoService interface {
	GetMediaInfo(ctx context.Context, url string) (*models.MediaResponse, error)
}

type DownloadHandler struct {
	media MediaInfoService
}

func NewDownloadHandler(mediaService MediaInfoService) *DownloadHandler {
	return &DownloadHandler{media: mediaService}
}

// GetDownloadLinks godoc
// @Summary Resolve a video URL into download links
// @Description Extracts metadata and direct media URLs (best audio as MP3, every video resolution as MP4, or slideshow images) for a social-media post URL.
// @Tags download
// @Accept json
// @Produce json
// @Param request body models.ExtractionRequest true "Post URL"
// @Success 200 {object} models.MediaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/download [post]
func (h *DownloadHandler) GetDownloadLinks(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		errorResponse(c, utils.NewValidationError("url must not be blank", nil))
		return
	}

	response, err := h.media.GetMediaInfo(ctx, url)
	if err != nil {
		errorResponse(c, toAppError(ctx, err))
		return
	}
	if response == nil || len(response.Formats) == 0 {
		errorResponse(c, utils.NewNoFormatsFoundError())
		return
	}

	c.JSON(http.StatusOK, response)
}

// toAppError maps adapter errors onto API errors. Unexpected errors are
// logged here and never shown to the client.
func toAppError(ctx context.Context, err error) *utils.AppError {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, extractor.ErrInvalidSource):
		return utils.NewInvalidSourceError(extractor.InvalidSourceMessage)
	case errors.Is(err, media.ErrNoFormatsFound):
		return utils.NewNoFormatsFoundError()
	default:
		utils.LogError(ctx, "Failed to resolve download links", err)
		return utils.NewInternalError()
	}
}

func errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, models.ErrorResponse{
		Detail:    err.Message,
		Error:     err,
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
