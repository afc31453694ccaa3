// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// This file contains per-user analytics: spend summaries and the per-genre
// top-player leaderboard.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/steamlens/steamlens/internal/models"
)

// UserSummary returns a user's total spend, item count and recommendation
// percentage. The percentage denominator is the global count of distinct
// reviewing users (upstream semantics, see models.UserSummary); a dataset
// with zero reviewers yields 0, never a division fault.
//
// Returns ErrNotFound when the user has no row in the spend snapshot.
func (db *DB) UserSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	const query = `
		SELECT
			s.total_spent,
			s.items_count,
			(SELECT COUNT(*) FROM reviews r WHERE r.user_id = s.user_id AND r.recommend),
			(SELECT COUNT(DISTINCT user_id) FROM reviews)
		FROM user_spend s
		WHERE s.user_id = ?`

	var (
		totalSpent     float64
		itemsCount     int
		recommended    int64
		reviewingUsers int64
	)
	err := db.queryRow(ctx, "user_summary", query, userID).
		Scan(&totalSpent, &itemsCount, &recommended, &reviewingUsers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user summary: %w", err)
	}

	var pct float64
	if reviewingUsers > 0 {
		pct = roundPct(float64(recommended) / float64(reviewingUsers) * 100)
	}

	return &models.UserSummary{
		UserID:       userID,
		TotalSpent:   totalSpent,
		RecommendPct: pct,
		ItemsCount:   itemsCount,
	}, nil
}

// TopUsersForGenre returns up to five users with the most accumulated hours
// in the genre, ordered by hours descending. Hours ties break on user_id
// ascending so the leaderboard is deterministic across restarts.
//
// An unknown genre yields an empty ranking, not an error: the leaderboard is
// derived from playtime rows, and a genre nobody played is indistinguishable
// from one that does not exist.
func (db *DB) TopUsersForGenre(ctx context.Context, genre string) ([]models.GenreTopUser, error) {
	const query = `
		SELECT user_id, MAX(user_url) AS user_url
		FROM playtime
		WHERE genre = ?
		GROUP BY user_id
		ORDER BY SUM(hours) DESC, user_id ASC
		LIMIT 5`

	rows, err := db.queryRows(ctx, "top_users_for_genre", query, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users for genre %q: %w", genre, err)
	}
	defer closeWithLog(rows, "rows")

	var users []models.GenreTopUser
	for rows.Next() {
		var u models.GenreTopUser
		if err := rows.Scan(&u.UserID, &u.UserURL); err != nil {
			return nil, fmt.Errorf("failed to scan top user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top user rows: %w", err)
	}
	return users, nil
}
