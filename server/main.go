package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/config"
	"github.com/phambaophuc/guru-scan/internal/http/handlers"
	"github.com/phambaophuc/guru-scan/internal/http/routes"
	"github.com/phambaophuc/guru-scan/internal/services/cache"
	"github.com/phambaophuc/guru-scan/internal/services/events"
	"github.com/phambaophuc/guru-scan/internal/services/history"
	"github.com/phambaophuc/guru-scan/internal/services/imagehost"
	"github.com/phambaophuc/guru-scan/internal/services/scanner"
	"github.com/phambaophuc/guru-scan/internal/services/visualsearch"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Image host: Supabase bucket when configured, ImgBB otherwise.
	var host imagehost.Client
	if cfg.Supabase.URL != "" {
		host = imagehost.NewSupabaseClient(cfg.Supabase)
		logger.Info("Using Supabase image host", zap.String("bucket", cfg.Supabase.BUCKET))
	} else {
		host = imagehost.NewImgBBClient(cfg.ImgBB)
	}

	search := visualsearch.NewClient(cfg.SerpApi, logger)

	historyStore, err := history.NewStore(cfg.History.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize scan history", zap.Error(err))
	}

	// Optional services: the scanner treats a nil cache/publisher as absent.
	var resultCache *cache.ResultCache
	var scannerCache scanner.ResultCache
	if cfg.Redis.Addr != "" {
		resultCache = cache.NewResultCache(cfg.Redis, logger)
		scannerCache = resultCache
	}

	var publisher *events.Publisher
	var scannerEvents scanner.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err = events.NewPublisher(cfg.RabbitMQ.URL, logger)
		if err != nil {
			logger.Warn("Failed to initialize event publisher", zap.Error(err))
			// Continue without scan events for basic functionality
		} else {
			scannerEvents = publisher
			defer publisher.Close()
		}
	}

	scanService := scanner.NewService(host, search, historyStore, scannerCache, scannerEvents, logger)

	scanHandler := handlers.NewScanHandler(scanService, historyStore, resultCache, logger, cfg)

	router := routes.NewRouter(scanHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
