// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend

import "sort"

// UserRecommender implements user-based collaborative filtering over the
// precomputed user similarity matrix and the normalized rating matrix.
//
// For a target user u:
//  1. take the k nearest neighbours of u by precomputed similarity
//     (u itself excluded; self-similarity is maximal by construction);
//  2. for each neighbour, collect every game achieving that neighbour's
//     maximum normalized rating (all ties included);
//  3. count how many neighbours recommend each distinct game;
//  4. rank games by count descending, ties kept in first-seen order,
//     and return the top n.
type UserRecommender struct {
	sim       *SimilarityMatrix
	ratings   *RatingMatrix
	neighbors int
	topN      int
}

// NewUserRecommender creates a collaborative recommender. neighbors below 1
// falls back to 10, topN below 1 falls back to 5.
func NewUserRecommender(sim *SimilarityMatrix, ratings *RatingMatrix, neighbors, topN int) *UserRecommender {
	if neighbors < 1 {
		neighbors = 10
	}
	if topN < 1 {
		topN = 5
	}
	return &UserRecommender{
		sim:       sim,
		ratings:   ratings,
		neighbors: neighbors,
		topN:      topN,
	}
}

// Recommend returns up to topN games for userID, most recommended first.
//
// The second return value is false when the user has no column in the rating
// matrix: that is a legitimate "no data available" outcome, not an error.
// Fewer than `neighbors` other users, or fewer than topN distinct games, both
// shrink the result rather than failing.
func (r *UserRecommender) Recommend(userID string) ([]string, bool) {
	if !r.ratings.HasUser(userID) {
		return nil, false
	}

	neighbours := r.nearestNeighbours(userID)

	// Frequency aggregation over the neighbours' best-game sets.
	// Encounter order is recorded separately from the counts so the final
	// stable sort can break count ties by first-seen order.
	counts := make(map[string]int)
	var order []string

	for _, neighbour := range neighbours {
		for _, game := range r.ratings.BestGames(neighbour.ID) {
			if _, seen := counts[game]; !seen {
				order = append(order, game)
			}
			counts[game]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > r.topN {
		order = order[:r.topN]
	}
	return order, true
}

// nearestNeighbours returns the closest users to userID by precomputed
// similarity, descending, capped at r.neighbors. Ties keep matrix row order.
func (r *UserRecommender) nearestNeighbours(userID string) []Scored {
	column := r.sim.Column(userID)

	neighbours := make([]Scored, 0, len(column))
	for _, cell := range column {
		if cell.ID != userID {
			neighbours = append(neighbours, cell)
		}
	}

	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].Score > neighbours[j].Score
	})

	if len(neighbours) > r.neighbors {
		neighbours = neighbours[:r.neighbors]
	}
	return neighbours
}
