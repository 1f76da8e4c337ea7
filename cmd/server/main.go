package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dice-stats/internal/cache"
	"github.com/dice-stats/internal/clock"
	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/handler"
	"github.com/dice-stats/internal/postgres"
	"github.com/dice-stats/internal/service"
	"github.com/dice-stats/internal/worker"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("failed to load config file, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	// Initialize PostgreSQL
	logger.Info("connecting to PostgreSQL", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
	postgresRepo, err := postgres.NewRepository(&cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresRepo.Close()
	logger.Info("connected to PostgreSQL")

	// Initialize cache
	logger.Info("initializing cache", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL, "disabled", cfg.Cache.Disabled)
	store, closeStore, err := cache.OpenStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize services
	statsService := service.NewStatisticsService(
		postgresRepo,
		cache.New(store, &cfg.Cache, logger),
		logger,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start warmup worker
	warmupWorker := worker.NewWarmupWorker(statsService, &cfg.Warmup, &cfg.Stats, &clock.DefaultClock{}, logger)
	if cfg.Warmup.Enabled && !cfg.Cache.Disabled {
		if err := warmupWorker.Start(ctx); err != nil {
			logger.Error("failed to start warmup worker", "error", err)
			os.Exit(1)
		}
	}

	httpHandler := handler.NewHandler(statsService, &cfg.Stats, &clock.DefaultClock{}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpHandler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop warmup worker
	if err := warmupWorker.Stop(); err != nil {
		logger.Error("failed to stop warmup worker", "error", err)
	}

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	}

	logger.Info("server stopped")
}
