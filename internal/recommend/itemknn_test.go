// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend

import (
	"errors"
	"testing"
)

// buildItemMatrix creates a dense square matrix from explicit columns.
// Row order follows the order of the ids slice.
func buildItemMatrix(ids []string, scores map[string][]float64) *SimilarityMatrix {
	m := NewSimilarityMatrix()
	for _, col := range ids {
		for i, row := range ids {
			m.Add(row, col, scores[col][i])
		}
	}
	return m
}

func TestItemRecommenderExcludesSelfAndSortsDescending(t *testing.T) {
	ids := []string{"Portal", "Half-Life", "Dota 2", "CS:GO", "Rust", "Terraria", "Stardew"}
	m := NewSimilarityMatrix()
	sims := map[string]float64{
		"Portal": 1.0, "Half-Life": 0.9, "Dota 2": 0.1,
		"CS:GO": 0.4, "Rust": 0.3, "Terraria": 0.7, "Stardew": 0.5,
	}
	for _, row := range ids {
		m.Add(row, "Portal", sims[row])
	}

	r := NewItemRecommender(m, 5)
	games, err := r.Recommend("Portal")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	want := []string{"Half-Life", "Terraria", "Stardew", "CS:GO", "Rust"}
	if len(games) != len(want) {
		t.Fatalf("Recommend returned %v, want %v", games, want)
	}
	for i := range want {
		if games[i] != want[i] {
			t.Errorf("rank %d = %q, want %q", i+1, games[i], want[i])
		}
	}
}

func TestItemRecommenderSmallMatrix(t *testing.T) {
	// Three games: only two candidates exist, so fewer than five come back.
	ids := []string{"Portal", "Half-Life", "Dota 2"}
	scores := map[string][]float64{
		"Portal":    {1.0, 0.8, 0.2},
		"Half-Life": {0.8, 1.0, 0.3},
		"Dota 2":    {0.2, 0.3, 1.0},
	}
	m := buildItemMatrix(ids, scores)

	r := NewItemRecommender(m, 5)
	games, err := r.Recommend("Portal")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("Recommend returned %d games, want 2: %v", len(games), games)
	}
	if games[0] != "Half-Life" || games[1] != "Dota 2" {
		t.Errorf("Recommend = %v, want [Half-Life Dota 2]", games)
	}
	for _, g := range games {
		if g == "Portal" {
			t.Error("recommendation contains the queried game itself")
		}
	}
}

func TestItemRecommenderStableTies(t *testing.T) {
	// Equal scores must keep snapshot row order.
	m := NewSimilarityMatrix()
	m.Add("Portal", "Portal", 1.0)
	m.Add("Zed", "Portal", 0.5)
	m.Add("Alpha", "Portal", 0.5)
	m.Add("Mid", "Portal", 0.7)

	r := NewItemRecommender(m, 5)
	games, err := r.Recommend("Portal")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	want := []string{"Mid", "Zed", "Alpha"}
	for i := range want {
		if games[i] != want[i] {
			t.Errorf("Recommend = %v, want %v (ties in row order)", games, want)
			break
		}
	}
}

func TestItemRecommenderUnknownGame(t *testing.T) {
	m := NewSimilarityMatrix()
	m.Add("Portal", "Portal", 1.0)

	r := NewItemRecommender(m, 5)
	if _, err := r.Recommend("No Such Game"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Recommend(unknown) error = %v, want ErrUnknownGame", err)
	}
}

func TestItemRecommenderIdempotent(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	scores := map[string][]float64{
		"a": {1.0, 0.4, 0.4, 0.9},
		"b": {0.4, 1.0, 0.1, 0.2},
		"c": {0.4, 0.1, 1.0, 0.3},
		"d": {0.9, 0.2, 0.3, 1.0},
	}
	m := buildItemMatrix(ids, scores)
	r := NewItemRecommender(m, 5)

	first, err := r.Recommend("a")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	second, err := r.Recommend("a")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("repeated calls differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("repeated calls differ at %d: %v vs %v", i, first, second)
		}
	}
}
