// Package main provides the entry point for the TIKTOKMASTER download-link service.
// @title TIKTOKMASTER API
// @version 1.0.0
// @description A simple API to fetch TikTok video download links.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/denisAlshanov/tikgrab/docs" // Import for swagger docs
	"github.com/denisAlshanov/tikgrab/internal/api/handlers"
	"github.com/denisAlshanov/tikgrab/internal/api/router"
	"github.com/denisAlshanov/tikgrab/internal/config"
	"github.com/denisAlshanov/tikgrab/internal/services/cache"
	"github.com/denisAlshanov/tikgrab/internal/services/extractor"
	"github.com/denisAlshanov/tikgrab/internal/services/media"
	"github.com/denisAlshanov/tikgrab/internal/services/worker"
	"github.com/denisAlshanov/tikgrab/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// .env may have set LOG_LEVEL after the logger was created
	utils.SetLevel(os.Getenv("LOG_LEVEL"))
	logger := utils.GetLogger()
	logger.Info("Starting TIKTOKMASTER API")

	ytdlp := extractor.NewYtDlp(&cfg.Extractor)
	versionCtx, cancelVersion := context.WithTimeout(context.Background(), 10*time.Second)
	if version, err := ytdlp.Version(versionCtx); err != nil {
		logger.Errorf("yt-dlp is not runnable, extraction requests will fail: %v", err)
	} else {
		logger.Infof("Using yt-dlp %s", version)
	}
	cancelVersion()

	pool := worker.NewPool(cfg.Extractor.Workers, cfg.Extractor.QueueSize)
	mediaCache := cache.NewCache(&cfg.Cache)

	mediaService := media.NewService(ytdlp, pool, mediaCache)

	// Initialize handlers
	downloadHandler := handlers.NewDownloadHandler(mediaService)
	healthHandler := handlers.NewHealthHandler(ytdlp, mediaCache, pool)

	// Initialize router
	r := router.NewRouter(cfg, downloadHandler, healthHandler)

	// Start server
	go func() {
		logger.Infof("Starting server on %s", r.Addr())
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := r.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shut down HTTP server: %v", err)
	}

	// In-flight extractions finish before the process exits
	pool.Stop()

	if err := mediaCache.Close(); err != nil {
		logger.Errorf("Failed to close cache connection: %v", err)
	}

	logger.Info("Server shutdown complete")
}
