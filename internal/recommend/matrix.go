// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend

import "math"

// Scored pairs an identifier with its similarity score.
type Scored struct {
	ID    string
	Score float64
}

// SimilarityMatrix is a square matrix of pairwise similarity scores between
// entities of one kind (games or users), loaded from a long-form snapshot of
// (row, col, score) triples.
//
// Identifier order is the first-seen order in the snapshot; Column preserves
// it so that stable sorts over a column are deterministic. The matrix is
// append-only during load and immutable afterwards.
type SimilarityMatrix struct {
	ids  []string
	idx  map[string]int
	cols map[string]map[string]float64
}

// NewSimilarityMatrix creates an empty similarity matrix.
func NewSimilarityMatrix() *SimilarityMatrix {
	return &SimilarityMatrix{
		idx:  make(map[string]int),
		cols: make(map[string]map[string]float64),
	}
}

// Add records the similarity score of row against col.
// Both identifiers are registered in first-seen order.
func (m *SimilarityMatrix) Add(row, col string, score float64) {
	m.register(row)
	m.register(col)

	cells, ok := m.cols[col]
	if !ok {
		cells = make(map[string]float64)
		m.cols[col] = cells
	}
	cells[row] = score
}

func (m *SimilarityMatrix) register(id string) {
	if _, ok := m.idx[id]; !ok {
		m.idx[id] = len(m.ids)
		m.ids = append(m.ids, id)
	}
}

// Has reports whether id is present in the matrix index.
func (m *SimilarityMatrix) Has(id string) bool {
	_, ok := m.idx[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (m *SimilarityMatrix) Len() int {
	return len(m.ids)
}

// Column returns the scores of every row entity against col, in snapshot row
// order. Rows with no recorded score for col are skipped.
func (m *SimilarityMatrix) Column(col string) []Scored {
	cells := m.cols[col]
	if len(cells) == 0 {
		return nil
	}

	out := make([]Scored, 0, len(cells))
	for _, id := range m.ids {
		if score, ok := cells[id]; ok {
			out = append(out, Scored{ID: id, Score: score})
		}
	}
	return out
}

// RatingMatrix is the normalized game-by-user rating matrix: rows are games,
// columns are users, a cell is the user's normalized preference for the game.
// An absent cell means the user never interacted with the game.
//
// Game order is the first-seen order in the snapshot, preserved so that
// BestGames returns ties deterministically.
type RatingMatrix struct {
	games    []string
	gameIdx  map[string]int
	userCols map[string]map[string]float64
}

// NewRatingMatrix creates an empty rating matrix.
func NewRatingMatrix() *RatingMatrix {
	return &RatingMatrix{
		gameIdx:  make(map[string]int),
		userCols: make(map[string]map[string]float64),
	}
}

// Add records a user's normalized rating for a game.
// NaN ratings mark missing interactions in some snapshot exports and are
// dropped here rather than poisoning max comparisons later.
func (m *RatingMatrix) Add(game, user string, rating float64) {
	if math.IsNaN(rating) {
		return
	}
	if _, ok := m.gameIdx[game]; !ok {
		m.gameIdx[game] = len(m.games)
		m.games = append(m.games, game)
	}
	col, ok := m.userCols[user]
	if !ok {
		col = make(map[string]float64)
		m.userCols[user] = col
	}
	col[game] = rating
}

// HasUser reports whether the user is a column of the matrix.
func (m *RatingMatrix) HasUser(user string) bool {
	_, ok := m.userCols[user]
	return ok
}

// Users returns the number of user columns.
func (m *RatingMatrix) Users() int {
	return len(m.userCols)
}

// BestGames returns every game achieving the user's maximum rating, in game
// snapshot order. All ties are included. Returns nil for users with no
// rated games.
func (m *RatingMatrix) BestGames(user string) []string {
	col := m.userCols[user]
	if len(col) == 0 {
		return nil
	}

	max := math.Inf(-1)
	for _, rating := range col {
		if rating > max {
			max = rating
		}
	}

	var best []string
	for _, game := range m.games {
		if rating, ok := col[game]; ok && rating == max {
			best = append(best, game)
		}
	}
	return best
}
