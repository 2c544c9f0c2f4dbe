// Command firewatch-server runs the detection pipeline as an HTTP service:
// GET /api/v1/fires?lat=&lon=&radius_km=&days= plus health, readiness, and
// metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-watch/internal/adapter/firms"
	"github.com/couchcryptid/wildfire-watch/internal/adapter/httpserver"
	"github.com/couchcryptid/wildfire-watch/internal/config"
	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/observability"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var feed domain.FeedClient = firms.NewClient(cfg.MapKey, cfg.BaseURL, cfg.RequestTimeout, logger)
	if cfg.CacheEnabled {
		feed = firms.NewCachedClient(feed, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)
		logger.Info("feed cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	} else {
		logger.Info("feed cache disabled")
	}

	p := pipeline.New(feed, cfg.Satellites, logger, metrics)
	srv := httpserver.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
