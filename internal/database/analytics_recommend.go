// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// This file materializes the long-form matrix snapshots into the in-memory
// structures consumed by the recommenders. Row order matters: the matrices
// record first-seen identifier order, which is what makes score and count
// ties break deterministically. The queries therefore never sort.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/recommend"
)

// ItemSimilarityMatrix loads the precomputed game-to-game similarity scores.
func (db *DB) ItemSimilarityMatrix(ctx context.Context) (*recommend.SimilarityMatrix, error) {
	return db.loadSimilarity(ctx, "item_similarity", "game_a, game_b, score")
}

// UserSimilarityMatrix loads the precomputed user-to-user similarity scores.
func (db *DB) UserSimilarityMatrix(ctx context.Context) (*recommend.SimilarityMatrix, error) {
	return db.loadSimilarity(ctx, "user_similarity", "user_a, user_b, score")
}

func (db *DB) loadSimilarity(ctx context.Context, table, columns string) (*recommend.SimilarityMatrix, error) {
	start := time.Now()
	query := fmt.Sprintf("SELECT %s FROM %s", columns, table) //nolint:gosec // static table/column names
	rows, err := db.queryRows(ctx, "load_"+table, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	m := recommend.NewSimilarityMatrix()
	for rows.Next() {
		var row, col string
		var score float64
		if err := rows.Scan(&row, &col, &score); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		m.Add(row, col, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	logging.Info().
		Str("table", table).
		Int("identifiers", m.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Similarity matrix materialized")
	return m, nil
}

// UserRatingMatrix loads the normalized game-by-user rating matrix. Null
// ratings in the snapshot represent absent cells and are skipped.
func (db *DB) UserRatingMatrix(ctx context.Context) (*recommend.RatingMatrix, error) {
	start := time.Now()
	const query = `SELECT game, user_id, rating FROM rating_matrix WHERE rating IS NOT NULL`

	rows, err := db.queryRows(ctx, "load_rating_matrix", query)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating_matrix: %w", err)
	}
	defer closeWithLog(rows, "rows")

	m := recommend.NewRatingMatrix()
	for rows.Next() {
		var game, user string
		var rating float64
		if err := rows.Scan(&game, &user, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating_matrix row: %w", err)
		}
		m.Add(game, user, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating_matrix: %w", err)
	}

	logging.Info().
		Int("users", m.Users()).
		Dur("elapsed", time.Since(start)).
		Msg("Rating matrix materialized")
	return m, nil
}
