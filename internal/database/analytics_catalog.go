// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// This file contains catalogue analytics: genre rankings and per-developer
// release statistics.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/steamlens/steamlens/internal/models"
)

// GenreRank returns the precomputed playtime ranking position of a genre.
// Returns ErrNotFound for a genre absent from the ranking snapshot.
func (db *DB) GenreRank(ctx context.Context, genre string) (*models.GenreRank, error) {
	const query = `SELECT genre, rank FROM genre_ranking WHERE genre = ?`

	var r models.GenreRank
	err := db.queryRow(ctx, "genre_rank", query, genre).Scan(&r.Genre, &r.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("genre %q: %w", genre, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query genre rank: %w", err)
	}
	return &r, nil
}

// DeveloperStats returns, per release year, the number of items the developer
// shipped and the percentage of those items that are free. Years with zero
// priced rows still report 0 percent rather than NaN.
//
// Returns ErrNotFound when the developer has no rows at all.
func (db *DB) DeveloperStats(ctx context.Context, developer string) (*models.DeveloperStats, error) {
	const query = `
		SELECT
			release_year,
			COUNT(*),
			COUNT(*) FILTER (WHERE price = 0)
		FROM developer_items
		WHERE developer = ?
		GROUP BY release_year
		ORDER BY release_year`

	rows, err := db.queryRows(ctx, "developer_stats", query, developer)
	if err != nil {
		return nil, fmt.Errorf("failed to query developer stats: %w", err)
	}
	defer closeWithLog(rows, "rows")

	stats := &models.DeveloperStats{
		Developer:      developer,
		ItemsPerYear:   make(map[int]int),
		FreePctPerYear: make(map[int]float64),
	}
	for rows.Next() {
		var year, items, free int
		if err := rows.Scan(&year, &items, &free); err != nil {
			return nil, fmt.Errorf("failed to scan developer stats row: %w", err)
		}
		stats.ItemsPerYear[year] = items
		if items > 0 {
			stats.FreePctPerYear[year] = roundPct(float64(free) / float64(items) * 100)
		} else {
			stats.FreePctPerYear[year] = 0
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate developer stats rows: %w", err)
	}

	if len(stats.ItemsPerYear) == 0 {
		return nil, fmt.Errorf("developer %q: %w", developer, ErrNotFound)
	}
	return stats, nil
}
