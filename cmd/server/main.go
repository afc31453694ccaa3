// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Command server runs the SteamLens API: it loads the parquet snapshots into
// an in-memory DuckDB, materializes the recommendation matrices and serves
// the read-only HTTP API under a supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/steamlens/steamlens/internal/api"
	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/database"
	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/recommend"
	"github.com/steamlens/steamlens/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("Starting SteamLens")

	// The dataset is the service: a failed load means nothing sensible can
	// be served, so any snapshot error aborts the process here.
	db, err := database.New(&cfg.Data)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	items, users, err := buildRecommenders(db, &cfg.Recommend)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommenders")
	}

	handler := api.NewHandler(db, items, users, cfg.API.QueryTimeout)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Serving")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor exited with error")
		os.Exit(1)
	}
	logging.Info().Msg("Shutdown complete")
}

// buildRecommenders materializes the matrices and wires both recommenders.
func buildRecommenders(db *database.DB, cfg *config.RecommendConfig) (*recommend.ItemRecommender, *recommend.UserRecommender, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	itemSim, err := db.ItemSimilarityMatrix(ctx)
	if err != nil {
		return nil, nil, err
	}
	userSim, err := db.UserSimilarityMatrix(ctx)
	if err != nil {
		return nil, nil, err
	}
	ratings, err := db.UserRatingMatrix(ctx)
	if err != nil {
		return nil, nil, err
	}

	items := recommend.NewItemRecommender(itemSim, cfg.TopN)
	users := recommend.NewUserRecommender(userSim, ratings, cfg.Neighbors, cfg.TopN)
	return items, users, nil
}
