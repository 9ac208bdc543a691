// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

// Command server runs the Dramatlas HTTP API: it loads the bottle
// catalog, connects to the bar service for user collections, and
// serves recommendations.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dramatlas/dramatlas/internal/api"
	"github.com/dramatlas/dramatlas/internal/catalog"
	"github.com/dramatlas/dramatlas/internal/collection"
	"github.com/dramatlas/dramatlas/internal/config"
	"github.com/dramatlas/dramatlas/internal/history"
	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/metrics"
	"github.com/dramatlas/dramatlas/internal/recommend"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	api.Version = Version
	metrics.AppInfo.WithLabelValues(Version, runtime.Version()).Set(1)

	log := logging.WithComponent("server")
	log.Info().
		Str("version", Version).
		Str("environment", cfg.Server.Environment).
		Msg("starting dramatlas")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is required: without bottle data there is nothing to
	// recommend, so a load failure is fatal at startup.
	store, err := catalog.NewStore(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog from %s: %w", cfg.Catalog.Path, err)
	}
	log.Info().Int("bottles", store.Len()).Str("path", cfg.Catalog.Path).Msg("catalog loaded")

	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.Open(cfg.History.Path, cfg.History.TTL, false)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer hist.Close()
		hist.StartCleanupRoutine(ctx, cfg.History.CleanupInterval)
	}

	var collections recommend.CollectionSource
	if cfg.Bar.Enabled {
		collections = collection.NewCircuitBreakerClient(&cfg.Bar)
		log.Info().Str("url", cfg.Bar.URL).Msg("bar service client enabled")
	} else {
		log.Warn().Msg("bar service disabled, all users receive starter picks")
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.DefaultCount = cfg.Recommend.DefaultCount
	engineCfg.MaxCount = cfg.Recommend.MaxCount
	engineCfg.CandidateMultiplier = cfg.Recommend.CandidateMultiplier
	engineCfg.PricePenalty = cfg.Recommend.PricePenalty
	engineCfg.FallbackScore = cfg.Recommend.FallbackScore

	engine, err := recommend.NewEngine(engineCfg, store, collections)
	if err != nil {
		return fmt.Errorf("building recommendation engine: %w", err)
	}

	handlers := api.NewHandlers(cfg, store, engine, hist)
	router := api.NewRouter(cfg, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
