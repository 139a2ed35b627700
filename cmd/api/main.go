// Command api is the Matchodds API server.
//
// Usage:
//
//	matchodds-api
//	API_PORT=8080 matchodds-api

// @title Matchodds API
// @version 1.0.0
// @description Football fixtures and match outcome predictions. Fixture, league, injury, and lineup data is fetched from API-Football and cached in memory with per-kind TTLs; predictions run a Poisson outcome model over cached team statistics.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Matchodds
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/matchodds/internal/api"
	"github.com/albapepper/matchodds/internal/config"
	"github.com/albapepper/matchodds/internal/fixture"
	"github.com/albapepper/matchodds/internal/predict"
	"github.com/albapepper/matchodds/internal/predlog"
	"github.com/albapepper/matchodds/internal/provider/apifootball"

	_ "github.com/albapepper/matchodds/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Upstream provider client
	client := apifootball.NewClient(cfg.APIFootballKey, cfg.UpstreamRequestsPerMinute, logger)

	// Core services — each owns its caches for the process lifetime
	agg := fixture.NewAggregator(client, logger)
	engine := predict.NewEngine(client, logger)
	logger.Info("Caches initialized")

	// Optional prediction audit log
	var plog *predlog.Store
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to prediction log database...")
		plog, err = predlog.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to prediction log database", "error", err)
			os.Exit(1)
		}
		defer plog.Close()
		logger.Info("Prediction log enabled")
	} else {
		logger.Info("Prediction log disabled (no DATABASE_URL)")
	}

	// Create router
	router := api.NewRouter(agg, engine, plog, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Matchodds API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
