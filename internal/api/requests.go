// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

// identifierRequest covers path identifiers (user, genre, developer, game).
type identifierRequest struct {
	ID string `validate:"required,min=1,max=256"`
}

// reviewWindowRequest covers /api/v1/reviews/stats query parameters.
type reviewWindowRequest struct {
	StartDate string `validate:"required,isodate"`
	EndDate   string `validate:"required,isodate"`
}

// sentimentRequest covers /api/v1/reviews/sentiment query parameters.
type sentimentRequest struct {
	Year int `validate:"gte=1970,lte=2100"`
}
