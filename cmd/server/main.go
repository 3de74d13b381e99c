// DeckSage - Card Similarity Fusion and Deck Completion
// Copyright 2026 DeckSage contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/decksage/decksage

// Command server runs the DeckSage HTTP API: card similarity fusion
// over the precomputed signal dataset plus deck completion
// suggestions, with a hot-reloadable fusion weight snapshot.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/decksage/decksage/internal/api"
	"github.com/decksage/decksage/internal/catalog"
	"github.com/decksage/decksage/internal/config"
	"github.com/decksage/decksage/internal/deckbuild"
	"github.com/decksage/decksage/internal/fusion"
	"github.com/decksage/decksage/internal/logging"
	"github.com/decksage/decksage/internal/snapshot"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().
		Str("dataset", cfg.Data.DatasetPath).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("Starting DeckSage")

	cat, err := catalog.Load(cfg.Data.DatasetPath, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	snapshots := snapshot.NewStore(&snapshot.Snapshot{}, logging.Logger())
	if cfg.Snapshot.WeightsPath != "" {
		snap, err := snapshot.LoadFile(cfg.Snapshot.WeightsPath)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to load weight snapshot")
		}
		snapshots.Swap(snap)
		if cfg.Snapshot.Watch {
			if err := snapshots.Watch(cfg.Snapshot.WeightsPath); err != nil {
				logging.Fatal().Err(err).Msg("Failed to watch weight snapshot")
			}
			logging.Info().Str("path", cfg.Snapshot.WeightsPath).Msg("Watching weight snapshot")
		}
	}

	fusionEngine, err := fusion.NewEngine(cfg.Fusion, cat.Providers(), cat, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build fusion engine")
	}
	deckEngine, err := deckbuild.NewEngine(cfg.Deckbuild, fusionEngine, cat, cat, cat, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build deck completion engine")
	}

	handler := api.NewHandler(fusionEngine, deckEngine, snapshots, logging.Logger())
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}
