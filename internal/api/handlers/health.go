package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/tikgrab/internal/models"
	"github.com/denisAlshanov/tikgrab/internal/services/cache"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/worker"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

const welcomeMessage = "Welcome to the TIKTOKMASTER API. Use the /api/download endpoint to fetch videos."

type HealthHandler struct {
	extractor extractor.Extractor
	cache     cache.MediaCache
	pool      *worker.Pool
}

func NewHealthHandler(ext extractor.Extractor, mediaCache cache.MediaCache, pool *worker.Pool) *HealthHandler {
	return &HealthHandler{
		extractor: ext,
		cache:     mediaCache,
		pool:      pool,
	}
}

// Health godoc
// @Summary Liveness check
// @Description Always answers while the process is serving HTTP; does not touch the extractor.
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

// Root godoc
// @Summary API welcome message
// @Tags health
// @Produce json
// @Success 200 {object} models.WelcomeResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.WelcomeResponse{Message: welcomeMessage})
}

// Readiness godoc
// @Summary Readiness check
// @Description Checks that the extractor binary runs and the response cache answers.
// @Tags health
// @Produce json
// @Success 200 {object} models.ReadinessResponse
// @Failure 503 {object} models.ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()

	response := models.ReadinessResponse{
		Ready:     true,
		Timestamp: time.Now().Format(time.RFC3339),
		Checks: map[string]models.ReadinessCheck{
			"extractor": h.check(ctx, "extractor", func(ctx context.Context) error {
				_, err := h.extractor.Version(ctx)
				return err
			}),
			"cache": h.check(ctx, "cache", h.cache.Ping),
		},
	}

	for _, check := range response.Checks {
		if !check.Ready {
			response.Ready = false
		}
	}

	if h.pool != nil {
		utils.LogDebug(ctx, "Worker pool state", utils.Fields{
			"workers": h.pool.Size(),
			"active":  h.pool.Active(),
			"queued":  h.pool.Queued(),
		})
	}

	status := http.StatusOK
	if !response.Ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

func (h *HealthHandler) check(ctx context.Context, name string, probe func(context.Context) error) models.ReadinessCheck {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := probe(checkCtx)
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogError(ctx, name+" readiness check failed", err)
		return models.ReadinessCheck{
			Ready:        false,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return models.ReadinessCheck{
		Ready:        true,
		ResponseTime: responseTime,
	}
}
