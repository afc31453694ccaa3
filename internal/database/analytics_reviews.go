// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// This file contains review-window statistics and sentiment tallies.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/models"
)

// Review sentiment codes as assigned by the offline pipeline.
const (
	sentimentNegative = 0
	sentimentNeutral  = 1
	sentimentPositive = 2
)

// ReviewStats returns the number of distinct users who posted a review in
// [start, end] (inclusive) and the percentage of those reviews that
// recommended the game. An empty window yields {0, 0.0}, never a division
// fault.
func (db *DB) ReviewStats(ctx context.Context, start, end time.Time) (*models.ReviewWindowStats, error) {
	const query = `
		SELECT
			COUNT(DISTINCT user_id),
			COUNT(*),
			COUNT(*) FILTER (WHERE recommend)
		FROM reviews
		WHERE review_date >= ? AND review_date <= ?`

	var (
		users       int
		total       int64
		recommended int64
	)
	err := db.queryRow(ctx, "review_stats", query, start, end).
		Scan(&users, &total, &recommended)
	if err != nil {
		return nil, fmt.Errorf("failed to query review stats: %w", err)
	}

	var pct float64
	if total > 0 {
		pct = roundPct(float64(recommended) / float64(total) * 100)
	}

	return &models.ReviewWindowStats{TotalUsers: users, RecommendPct: pct}, nil
}

// SentimentCounts tallies review sentiment for games released in the given
// year. Rows whose sentiment code falls outside the known set are excluded
// from the three category counts and reported via the Excluded field, since
// silently folding them into a category would misstate the distribution.
func (db *DB) SentimentCounts(ctx context.Context, year int) (*models.SentimentBreakdown, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE sentiment = ?),
			COUNT(*) FILTER (WHERE sentiment = ?),
			COUNT(*) FILTER (WHERE sentiment = ?),
			COUNT(*) FILTER (WHERE sentiment NOT IN (?, ?, ?))
		FROM reviews
		WHERE release_year = ?`

	var b models.SentimentBreakdown
	err := db.queryRow(ctx, "sentiment_counts", query,
		sentimentNegative, sentimentNeutral, sentimentPositive,
		sentimentNegative, sentimentNeutral, sentimentPositive,
		year).
		Scan(&b.Negative, &b.Neutral, &b.Positive, &b.Excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment counts: %w", err)
	}

	if b.Excluded > 0 {
		logging.Debug().
			Int("year", year).
			Int("excluded", b.Excluded).
			Msg("Reviews with out-of-range sentiment codes excluded from tally")
	}
	return &b, nil
}
