// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewGameRanking(t *testing.T) {
	ranking := NewGameRanking([]string{"Portal", "Half-Life"})

	if len(ranking) != 2 {
		t.Fatalf("ranking has %d entries, want 2", len(ranking))
	}
	if ranking[1] != "Portal" || ranking[2] != "Half-Life" {
		t.Errorf("ranking = %v, want 1-based rank order", ranking)
	}
}

func TestGameRankingRoundTrip(t *testing.T) {
	ranking := NewGameRanking([]string{"Portal", "Half-Life", "Dota 2"})

	data, err := json.Marshal(ranking)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["1"] != "Portal" || decoded["3"] != "Dota 2" {
		t.Errorf("decoded ranking = %v", decoded)
	}
}

func TestSentimentBreakdownOmitsZeroExcluded(t *testing.T) {
	data, err := json.Marshal(SentimentBreakdown{Negative: 1, Neutral: 2, Positive: 3})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "excluded") {
		t.Errorf("zero excluded count should be omitted, got %s", data)
	}

	data, err = json.Marshal(SentimentBreakdown{Excluded: 4})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"excluded":4`) {
		t.Errorf("non-zero excluded count missing from %s", data)
	}
}

func TestReviewWindowStatsFieldNames(t *testing.T) {
	data, err := json.Marshal(ReviewWindowStats{TotalUsers: 4, RecommendPct: 60.0})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, key := range []string{`"total_usuarios_reviews":4`, `"porcentaje_recomendaciones":60`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("payload %s missing %s", data, key)
		}
	}
}

func TestUserRecommendationsNoDataShape(t *testing.T) {
	data, err := json.Marshal(UserRecommendations{
		UserID:  "u1",
		HasData: false,
		Message: "no data available for this user",
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "juegos_recomendados") {
		t.Errorf("no-data payload should omit the ranking, got %s", data)
	}
	if !strings.Contains(string(data), `"has_data":false`) {
		t.Errorf("no-data payload missing has_data flag: %s", data)
	}
}
