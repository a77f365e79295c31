package router

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/tikgrab/internal/api/handlers"
	"github.com/denisAlshanov/tikgrab/internal/api/middleware"
	"github.com/denisAlshanov/tikgrab/internal/config"
)

type Router struct {
	engine *gin.Engine
	server *http.Server
	config *config.Config
}

func NewRouter(cfg *config.Config, downloadHandler *handlers.DownloadHandler, healthHandler *handlers.HealthHandler) *Router {
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints
	engine.GET("/", healthHandler.Root)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Readiness)

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.POST("/download", downloadHandler.GetDownloadLinks) // /api/download
	}

	return &Router{
		engine: engine,
		config: cfg,
		server: &http.Server{
			Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler: engine,
		},
	}
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (r *Router) Start() error {
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Addr() string {
	return r.server.Addr
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
