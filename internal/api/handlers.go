// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/steamlens/steamlens/internal/database"
	"github.com/steamlens/steamlens/internal/metrics"
	"github.com/steamlens/steamlens/internal/models"
	"github.com/steamlens/steamlens/internal/recommend"
	"github.com/steamlens/steamlens/internal/validation"
)

// Store is the query-engine surface the handlers depend on. *database.DB
// implements it; tests substitute a stub.
type Store interface {
	UserSummary(ctx context.Context, userID string) (*models.UserSummary, error)
	ReviewStats(ctx context.Context, start, end time.Time) (*models.ReviewWindowStats, error)
	GenreRank(ctx context.Context, genre string) (*models.GenreRank, error)
	TopUsersForGenre(ctx context.Context, genre string) ([]models.GenreTopUser, error)
	DeveloperStats(ctx context.Context, developer string) (*models.DeveloperStats, error)
	SentimentCounts(ctx context.Context, year int) (*models.SentimentBreakdown, error)
	Ping(ctx context.Context) error
}

// ItemRecommender is the game-to-game recommendation surface.
type ItemRecommender interface {
	Recommend(gameID string) ([]string, error)
}

// UserRecommender is the collaborative recommendation surface. The boolean
// result reports whether the user was present in the rating matrix.
type UserRecommender interface {
	Recommend(userID string) ([]string, bool)
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	store        Store
	items        ItemRecommender
	users        UserRecommender
	queryTimeout time.Duration
}

// NewHandler creates a Handler. queryTimeout bounds every store call; zero
// disables the per-request timeout.
func NewHandler(store Store, items ItemRecommender, users UserRecommender, queryTimeout time.Duration) *Handler {
	return &Handler{
		store:        store,
		items:        items,
		users:        users,
		queryTimeout: queryTimeout,
	}
}

// queryContext derives the bounded context used for store calls.
func (h *Handler) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.queryTimeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), h.queryTimeout)
}

// UserSummary handles GET /api/v1/users/{userID}/summary.
func (h *Handler) UserSummary(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID := chi.URLParam(r, "userID")
	if apiErr := validateRequest(&identifierRequest{ID: userID}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	summary, err := h.store.UserSummary(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "user not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to compute user summary", err)
		return
	}
	respondSuccess(w, summary, started)
}

// ReviewStats handles GET /api/v1/reviews/stats?start_date=&end_date=.
func (h *Handler) ReviewStats(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	req := reviewWindowRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start, err := validation.ParseISODate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid start_date", nil)
		return
	}
	end, err := validation.ParseISODate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid end_date", nil)
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "end_date must not precede start_date", nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	stats, err := h.store.ReviewStats(ctx, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to compute review stats", err)
		return
	}
	respondSuccess(w, stats, started)
}

// GenreRank handles GET /api/v1/genres/{genre}/rank.
func (h *Handler) GenreRank(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	genre := chi.URLParam(r, "genre")
	if apiErr := validateRequest(&identifierRequest{ID: genre}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	rank, err := h.store.GenreRank(ctx, genre)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "genre not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to look up genre rank", err)
		return
	}
	respondSuccess(w, rank, started)
}

// GenreTopUsers handles GET /api/v1/genres/{genre}/top-users.
func (h *Handler) GenreTopUsers(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	genre := chi.URLParam(r, "genre")
	if apiErr := validateRequest(&identifierRequest{ID: genre}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	users, err := h.store.TopUsersForGenre(ctx, genre)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to compute genre leaderboard", err)
		return
	}
	respondSuccess(w, models.NewTopUsersRanking(users), started)
}

// DeveloperStats handles GET /api/v1/developers/{developer}.
func (h *Handler) DeveloperStats(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	developer := chi.URLParam(r, "developer")
	if apiErr := validateRequest(&identifierRequest{ID: developer}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	stats, err := h.store.DeveloperStats(ctx, developer)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "developer not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to compute developer stats", err)
		return
	}
	respondSuccess(w, stats, started)
}

// SentimentCounts handles GET /api/v1/reviews/sentiment?year=.
func (h *Handler) SentimentCounts(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	yearParam := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "year must be an integer", nil)
		return
	}
	if apiErr := validateRequest(&sentimentRequest{Year: year}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	breakdown, err := h.store.SentimentCounts(ctx, year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "failed to compute sentiment counts", err)
		return
	}
	respondSuccess(w, breakdown, started)
}

// RecommendGames handles GET /api/v1/recommend/games/{game}.
func (h *Handler) RecommendGames(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	game := chi.URLParam(r, "game")
	if apiErr := validateRequest(&identifierRequest{ID: game}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	games, err := h.items.Recommend(game)
	if errors.Is(err, recommend.ErrUnknownGame) {
		metrics.RecordRecommendLookup("item", "not_found")
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "game not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "recommendation failed", err)
		return
	}

	metrics.RecordRecommendLookup("item", "ok")
	respondSuccess(w, &models.ItemRecommendations{
		Game:  game,
		Games: models.NewGameRanking(games),
	}, started)
}

// RecommendUsers handles GET /api/v1/recommend/users/{userID}.
//
// A user absent from the rating matrix is not an error: the response is a
// success envelope whose payload carries has_data=false.
func (h *Handler) RecommendUsers(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID := chi.URLParam(r, "userID")
	if apiErr := validateRequest(&identifierRequest{ID: userID}); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	games, ok := h.users.Recommend(userID)
	if !ok {
		metrics.RecordRecommendLookup("user", "no_data")
		respondSuccess(w, &models.UserRecommendations{
			UserID:  userID,
			HasData: false,
			Message: "no rating data available for this user",
		}, started)
		return
	}

	metrics.RecordRecommendLookup("user", "ok")
	respondSuccess(w, &models.UserRecommendations{
		UserID:  userID,
		HasData: true,
		Games:   models.NewGameRanking(games),
	}, started)
}

// Health handles GET /api/v1/health. Readiness means the store answers a
// ping; the dataset itself is immutable once loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "store unavailable", err)
		return
	}
	respondSuccess(w, map[string]string{"status": "healthy"}, started)
}
