// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dramatlas/dramatlas/internal/config"
	"github.com/dramatlas/dramatlas/internal/middleware"
)

// chiMiddleware adapts a http.HandlerFunc middleware to the
// func(http.Handler) http.Handler signature chi expects.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter builds the chi router with all routes and middleware wired.
func NewRouter(cfg *config.Config, h *Handlers) *chi.Mux {
	m := NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)

	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(m.CORS())

	// Health endpoints get a permissive rate limit so monitoring tools
	// are never throttled by API traffic.
	r.Group(func(r chi.Router) {
		r.Use(m.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/health", h.Health)
		r.Get("/api/v1/health", h.Health)
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Group(func(r chi.Router) {
			r.Use(m.RateLimitCatalog())
			r.Get("/bottles", h.ListBottles)
			r.Get("/bottles/{id}", h.GetBottle)
			r.Get("/catalog/fields/{field}", h.CatalogFieldValues)
			r.Get("/bar/{username}", h.BarProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(m.RateLimitRecommend())
			r.Post("/recommendations", h.Recommendations)
			r.Get("/recommendations/history/{username}", h.RecommendationHistory)
		})
	})

	return r
}
