// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/middleware"
)

// Router wires the handlers into a chi mux.
type Router struct {
	handler *Handler
	cfg     *config.APIConfig
}

// NewRouter creates a Router around the given handler set.
func NewRouter(handler *Handler, cfg *config.APIConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup builds the full middleware and route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global middleware stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "ETag"},
		MaxAge:         300,
	}))

	// ========================
	// Ambient endpoints
	// ========================
	r.Get("/", router.handler.Landing)
	r.Handle("/metrics", promhttp.Handler())

	// Permissive rate limit for health so monitoring can poll freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Data endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/users/{userID}/summary", router.handler.UserSummary)
		r.Get("/reviews/stats", router.handler.ReviewStats)
		r.Get("/reviews/sentiment", router.handler.SentimentCounts)
		r.Get("/genres/{genre}/rank", router.handler.GenreRank)
		r.Get("/genres/{genre}/top-users", router.handler.GenreTopUsers)
		r.Get("/developers/{developer}", router.handler.DeveloperStats)
		r.Get("/recommend/games/{game}", router.handler.RecommendGames)
		r.Get("/recommend/users/{userID}", router.handler.RecommendUsers)
	})

	return r
}

// rateLimit returns the per-IP limiter for data endpoints, or a no-op when
// disabled in configuration.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		router.cfg.RateLimitReqs,
		router.cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
