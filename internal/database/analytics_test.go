// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestUserSummary(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	exec(t, db, `INSERT INTO user_spend VALUES ('alice', 149.90, 12), ('bob', 0.0, 0)`)
	// Three distinct reviewing users; alice recommended twice.
	exec(t, db, `INSERT INTO reviews VALUES
		('alice', true,  DATE '2013-01-10', 2012, 2),
		('alice', true,  DATE '2013-02-10', 2012, 1),
		('alice', false, DATE '2013-03-10', 2013, 0),
		('bob',   true,  DATE '2013-01-15', 2012, 2),
		('carol', false, DATE '2013-01-20', 2013, 0)`)

	summary, err := db.UserSummary(ctx, "alice")
	if err != nil {
		t.Fatalf("UserSummary failed: %v", err)
	}
	if summary.TotalSpent != 149.90 {
		t.Errorf("TotalSpent = %v, want 149.90", summary.TotalSpent)
	}
	if summary.ItemsCount != 12 {
		t.Errorf("ItemsCount = %d, want 12", summary.ItemsCount)
	}
	// 2 recommend=true reviews over 3 distinct reviewing users.
	if summary.RecommendPct != 66.67 {
		t.Errorf("RecommendPct = %v, want 66.67", summary.RecommendPct)
	}
}

func TestUserSummaryNoReviews(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO user_spend VALUES ('alice', 10.0, 1)`)

	summary, err := db.UserSummary(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserSummary failed: %v", err)
	}
	if summary.RecommendPct != 0 {
		t.Errorf("RecommendPct = %v, want 0 with an empty reviews table", summary.RecommendPct)
	}
}

func TestUserSummaryUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO user_spend VALUES ('alice', 10.0, 1)`)

	_, err := db.UserSummary(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestReviewStats(t *testing.T) {
	db := setupTestDB(t)

	// Four distinct users inside the window; 6 of 10 in-window reviews
	// recommend. One extra review outside the window must not count.
	exec(t, db, `INSERT INTO reviews VALUES
		('u1', true,  DATE '2012-01-05', 2011, 2),
		('u1', true,  DATE '2012-01-06', 2011, 2),
		('u1', false, DATE '2012-01-07', 2011, 0),
		('u2', true,  DATE '2012-01-10', 2011, 1),
		('u2', false, DATE '2012-01-11', 2011, 0),
		('u3', true,  DATE '2012-01-15', 2011, 2),
		('u3', true,  DATE '2012-01-16', 2011, 2),
		('u3', false, DATE '2012-01-17', 2011, 0),
		('u4', true,  DATE '2012-01-20', 2011, 1),
		('u4', false, DATE '2012-01-21', 2011, 0),
		('u5', true,  DATE '2012-03-01', 2011, 2)`)

	stats, err := db.ReviewStats(context.Background(), date("2012-01-01"), date("2012-01-31"))
	if err != nil {
		t.Fatalf("ReviewStats failed: %v", err)
	}
	if stats.TotalUsers != 4 {
		t.Errorf("TotalUsers = %d, want 4", stats.TotalUsers)
	}
	if stats.RecommendPct != 60.0 {
		t.Errorf("RecommendPct = %v, want 60.0", stats.RecommendPct)
	}
}

func TestReviewStatsEmptyWindow(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO reviews VALUES ('u1', true, DATE '2012-01-05', 2011, 2)`)

	stats, err := db.ReviewStats(context.Background(), date("2020-01-01"), date("2020-12-31"))
	if err != nil {
		t.Fatalf("ReviewStats failed: %v", err)
	}
	if stats.TotalUsers != 0 || stats.RecommendPct != 0 {
		t.Errorf("stats = %+v, want zero values for an empty window", stats)
	}
}

func TestGenreRank(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO genre_ranking VALUES ('Action', 1), ('Simulation', 3)`)

	rank, err := db.GenreRank(context.Background(), "Simulation")
	if err != nil {
		t.Fatalf("GenreRank failed: %v", err)
	}
	if rank.Genre != "Simulation" || rank.Rank != 3 {
		t.Errorf("rank = %+v, want Simulation at 3", rank)
	}

	if _, err := db.GenreRank(context.Background(), "Polka"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown genre error = %v, want ErrNotFound", err)
	}
}

func TestTopUsersForGenre(t *testing.T) {
	db := setupTestDB(t)

	// Seven RPG players; only the top five make the leaderboard. 'tie_b'
	// and 'tie_a' have identical totals so user_id ascending decides.
	exec(t, db, `INSERT INTO playtime VALUES
		('heavy',  'http://steam/heavy',  'RPG', 500),
		('heavy',  'http://steam/heavy',  'RPG', 200),
		('mid',    'http://steam/mid',    'RPG', 400),
		('tie_b',  'http://steam/tie_b',  'RPG', 300),
		('tie_a',  'http://steam/tie_a',  'RPG', 300),
		('low1',   'http://steam/low1',   'RPG', 100),
		('low2',   'http://steam/low2',   'RPG', 50),
		('low3',   'http://steam/low3',   'RPG', 10),
		('other',  'http://steam/other',  'Action', 9000)`)

	users, err := db.TopUsersForGenre(context.Background(), "RPG")
	if err != nil {
		t.Fatalf("TopUsersForGenre failed: %v", err)
	}
	expected := []string{"heavy", "mid", "tie_a", "tie_b", "low1"}
	if len(users) != len(expected) {
		t.Fatalf("got %d users, want %d", len(users), len(expected))
	}
	for i, want := range expected {
		if users[i].UserID != want {
			t.Errorf("position %d = %q, want %q", i, users[i].UserID, want)
		}
	}
	if users[0].UserURL != "http://steam/heavy" {
		t.Errorf("UserURL = %q, want heavy's profile URL", users[0].UserURL)
	}
}

func TestTopUsersForGenreUnknownGenre(t *testing.T) {
	db := setupTestDB(t)

	users, err := db.TopUsersForGenre(context.Background(), "Nonexistent")
	if err != nil {
		t.Fatalf("TopUsersForGenre failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("got %d users for an unknown genre, want 0", len(users))
	}
}

func TestDeveloperStats(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO developer_items VALUES
		('Valve', 'g1', 2007, 19.99),
		('Valve', 'g2', 2007, 0.0),
		('Valve', 'g3', 2007, 0.0),
		('Valve', 'g4', 2011, 29.99),
		('Other', 'g5', 2007, 0.0)`)

	stats, err := db.DeveloperStats(context.Background(), "Valve")
	if err != nil {
		t.Fatalf("DeveloperStats failed: %v", err)
	}
	if stats.ItemsPerYear[2007] != 3 || stats.ItemsPerYear[2011] != 1 {
		t.Errorf("ItemsPerYear = %v, want 2007:3 2011:1", stats.ItemsPerYear)
	}
	if stats.FreePctPerYear[2007] != 66.67 {
		t.Errorf("FreePctPerYear[2007] = %v, want 66.67", stats.FreePctPerYear[2007])
	}
	if stats.FreePctPerYear[2011] != 0 {
		t.Errorf("FreePctPerYear[2011] = %v, want 0", stats.FreePctPerYear[2011])
	}
}

func TestDeveloperStatsUnknownDeveloper(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.DeveloperStats(context.Background(), "Ghost Studio")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSentimentCounts(t *testing.T) {
	db := setupTestDB(t)

	exec(t, db, `INSERT INTO reviews VALUES
		('u1', false, DATE '2013-01-01', 2012, 0),
		('u2', false, DATE '2013-01-02', 2012, 0),
		('u3', true,  DATE '2013-01-03', 2012, 1),
		('u4', true,  DATE '2013-01-04', 2012, 2),
		('u5', true,  DATE '2013-01-05', 2012, 2),
		('u6', true,  DATE '2013-01-06', 2012, 2),
		('u7', true,  DATE '2013-01-07', 2012, 7),
		('u8', true,  DATE '2013-01-08', 2011, 2)`)

	b, err := db.SentimentCounts(context.Background(), 2012)
	if err != nil {
		t.Fatalf("SentimentCounts failed: %v", err)
	}
	if b.Negative != 2 || b.Neutral != 1 || b.Positive != 3 {
		t.Errorf("breakdown = %+v, want 2/1/3", b)
	}
	if b.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1 (out-of-range code 7)", b.Excluded)
	}
}

func TestSentimentCountsNoRows(t *testing.T) {
	db := setupTestDB(t)

	b, err := db.SentimentCounts(context.Background(), 1999)
	if err != nil {
		t.Fatalf("SentimentCounts failed: %v", err)
	}
	if b.Negative != 0 || b.Neutral != 0 || b.Positive != 0 || b.Excluded != 0 {
		t.Errorf("breakdown = %+v, want all zeros", b)
	}
}
