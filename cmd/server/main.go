// Pulzion - News Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulzion

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tomtom215/pulzion/internal/api"
	"github.com/tomtom215/pulzion/internal/config"
	"github.com/tomtom215/pulzion/internal/logging"
	"github.com/tomtom215/pulzion/internal/supervisor"
	"github.com/tomtom215/pulzion/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	// Configuration comes first so logging can be set up from it
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stdout,
	})
	logger := logging.Logger()

	logger.Info().
		Str("vector_index", cfg.VectorIndex.URL).
		Str("collection", cfg.VectorIndex.Collection).
		Bool("embedding_enabled", cfg.Embedding.URL != "").
		Str("trending_path", cfg.Trending.Path).
		Msg("Starting Pulzion")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := initRecommend(ctx, cfg, logger)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(api.HandlerDeps{
		Engine:   components.Engine,
		Trending: components.Trending,
		Index:    components.Index,
		Timeout:  cfg.Server.HandlerTimeout,
	})
	if err != nil {
		return fmt.Errorf("create api handler: %w", err)
	}

	router := api.NewRouter(handler, chiMiddlewareConfig(cfg))
	if cfg.RateLimit.Disabled {
		logger.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewTrendingReloadService(components.Trending, cfg.Trending.ReloadInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, logger))

	logger.Info().Str("addr", addr).Msg("Supervisor tree starting")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}

	logger.Info().Msg("Server stopped")
	return nil
}

func chiMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.CORS.AllowedOrigins
	}
	mw.RateLimitRequests = cfg.RateLimit.Requests
	mw.RateLimitWindow = cfg.RateLimit.Window
	mw.RateLimitDisabled = cfg.RateLimit.Disabled
	return mw
}
