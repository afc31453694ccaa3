// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend

import (
	"errors"
	"sort"
)

// ErrUnknownGame is returned when the requested game is not an index of the
// item similarity matrix. Callers surface it as a 404.
var ErrUnknownGame = errors.New("game not present in similarity matrix")

// ItemRecommender ranks games by precomputed pairwise similarity to a given
// game. The similarity matrix is immutable after load; every call is a pure
// read.
type ItemRecommender struct {
	sim  *SimilarityMatrix
	topN int
}

// NewItemRecommender creates an item-to-item recommender over the given
// similarity matrix. topN values below 1 fall back to 5.
func NewItemRecommender(sim *SimilarityMatrix, topN int) *ItemRecommender {
	if topN < 1 {
		topN = 5
	}
	return &ItemRecommender{sim: sim, topN: topN}
}

// Recommend returns up to topN games most similar to gameID, most similar
// first. The game itself is excluded: self-similarity is maximal by
// construction and would always occupy the first slot.
//
// Ties keep the matrix's row order (stable sort); the snapshot defines no
// secondary key, so stability is what makes results deterministic.
func (r *ItemRecommender) Recommend(gameID string) ([]string, error) {
	if !r.sim.Has(gameID) {
		return nil, ErrUnknownGame
	}

	column := r.sim.Column(gameID)
	candidates := make([]Scored, 0, len(column))
	for _, cell := range column {
		if cell.ID != gameID {
			candidates = append(candidates, cell)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > r.topN {
		candidates = candidates[:r.topN]
	}

	games := make([]string, len(candidates))
	for i, cell := range candidates {
		games[i] = cell.ID
	}
	return games, nil
}
