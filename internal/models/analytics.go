// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package models

// Field names follow the upstream Steam API this service replaces, which is
// why several JSON keys are Spanish. Changing them would break existing
// consumers of those endpoints.

// UserSummary aggregates a user's spend and review behaviour.
//
// RecommendPct is intentionally the user's recommend=true review count over
// the global count of distinct reviewing users, not over the user's own
// reviews. The upstream API defines it that way.
type UserSummary struct {
	UserID       string  `json:"usuario"`
	TotalSpent   float64 `json:"cantidad_dinero"`
	RecommendPct float64 `json:"porcentaje_recomendacion"`
	ItemsCount   int     `json:"total_de_items"`
}

// ReviewWindowStats summarizes reviewing activity inside a date window.
type ReviewWindowStats struct {
	TotalUsers   int     `json:"total_usuarios_reviews"`
	RecommendPct float64 `json:"porcentaje_recomendaciones"`
}

// GenreRank is the precomputed playtime ranking position of a genre.
type GenreRank struct {
	Genre string `json:"genero"`
	Rank  int    `json:"rank"`
}

// GenreTopUser identifies one of the heaviest players of a genre.
type GenreTopUser struct {
	UserID  string `json:"user_id"`
	UserURL string `json:"user_url"`
}

// TopUsersRanking maps 1-based rank positions to users.
type TopUsersRanking map[int]GenreTopUser

// NewTopUsersRanking converts an ordered slice into a 1-based rank mapping.
func NewTopUsersRanking(users []GenreTopUser) TopUsersRanking {
	ranking := make(TopUsersRanking, len(users))
	for i, u := range users {
		ranking[i+1] = u
	}
	return ranking
}

// DeveloperStats breaks a developer's catalogue down by release year.
// FreePctPerYear is 0 (never NaN) for years with no matched releases.
type DeveloperStats struct {
	Developer      string          `json:"desarrollador"`
	ItemsPerYear   map[int]int     `json:"cantidad_items"`
	FreePctPerYear map[int]float64 `json:"porcentaje_free"`
}

// SentimentBreakdown tallies review sentiment categories for a release year.
// Excluded counts rows whose sentiment code fell outside {0, 1, 2}; it is
// omitted from the payload when zero.
type SentimentBreakdown struct {
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
	Positive int `json:"Positive"`
	Excluded int `json:"excluded,omitempty"`
}

// GameRanking maps 1-based rank positions to game identifiers.
type GameRanking map[int]string

// NewGameRanking converts an ordered slice into a 1-based rank mapping.
func NewGameRanking(games []string) GameRanking {
	ranking := make(GameRanking, len(games))
	for i, g := range games {
		ranking[i+1] = g
	}
	return ranking
}

// ItemRecommendations is the payload of the item-similarity recommender.
type ItemRecommendations struct {
	Game  string      `json:"juego"`
	Games GameRanking `json:"juegos_recomendados"`
}

// UserRecommendations is the payload of the collaborative recommender.
//
// HasData distinguishes "processed successfully, nothing to recommend" (the
// user has no column in the rating matrix) from a populated result. A missing
// user is NOT an error.
type UserRecommendations struct {
	UserID  string      `json:"usuario"`
	HasData bool        `json:"has_data"`
	Message string      `json:"message,omitempty"`
	Games   GameRanking `json:"juegos_recomendados,omitempty"`
}
