// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package api

import (
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dramatlas/dramatlas/internal/catalog"
	"github.com/dramatlas/dramatlas/internal/config"
	"github.com/dramatlas/dramatlas/internal/history"
	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/recommend"
	"github.com/dramatlas/dramatlas/internal/validation"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	catalog *catalog.Store
	engine  *recommend.Engine
	history *history.Store // nil when history is disabled
	cfg     *config.Config
	logger  zerolog.Logger

	startTime time.Time
}

// NewHandlers creates the handler set. The history store may be nil,
// in which case recommendation history endpoints report the feature as
// unavailable.
func NewHandlers(cfg *config.Config, store *catalog.Store, engine *recommend.Engine, hist *history.Store) *Handlers {
	return &Handlers{
		catalog:   store,
		engine:    engine,
		history:   hist,
		cfg:       cfg,
		logger:    logging.WithComponent("api"),
		startTime: time.Now(),
	}
}

// healthResponse is the payload for the health endpoint.
type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	GoVersion     string `json:"go_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	CatalogSize   int    `json:"catalog_size"`
}

// Health handles GET /health and GET /api/v1/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(healthResponse{
		Status:        "ok",
		Version:       Version,
		GoVersion:     runtime.Version(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CatalogSize:   h.catalog.Len(),
	})
}

// ListBottles handles GET /api/v1/bottles with optional filter and
// pagination query parameters.
func (h *Handlers) ListBottles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	filter := parseBottleFilter(r)
	limit, offset := parsePagination(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize)

	var bottles []catalog.Bottle
	if filter.IsZero() {
		bottles = h.catalog.All()
	} else {
		bottles = h.catalog.ByCriteria(filter)
	}

	total := len(bottles)
	if offset >= total {
		bottles = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		bottles = bottles[offset:end]
	}

	rw.SuccessWithPagination(bottles, &PaginationMeta{
		Total:   int64(total),
		Count:   len(bottles),
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(bottles) < total,
	})
}

// GetBottle handles GET /api/v1/bottles/{id}.
func (h *Handlers) GetBottle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	bottle, ok := h.catalog.ByID(id)
	if !ok {
		rw.NotFound("Bottle not found")
		return
	}

	rw.Success(bottle)
}

// CatalogFieldValues handles GET /api/v1/catalog/fields/{field},
// returning the distinct values of a categorical catalog field.
func (h *Handlers) CatalogFieldValues(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	field := chi.URLParam(r, "field")
	values := h.catalog.UniqueValues(field)
	if values == nil {
		rw.BadRequest("Unknown field: " + field)
		return
	}

	rw.Success(map[string]interface{}{
		"field":  field,
		"values": values,
	})
}

// barProfileResponse is the payload for the bar profile endpoint.
type barProfileResponse struct {
	Username string                       `json:"username"`
	Profile  *recommend.PreferenceProfile `json:"profile"`
	Bottles  []catalog.Bottle             `json:"bottles"`
	Wishlist []catalog.Bottle             `json:"wishlist"`
}

// BarProfile handles GET /api/v1/bar/{username}, exposing the derived
// taste profile alongside the fetched collection. An unreachable bar
// service yields an empty collection rather than an error.
func (h *Handlers) BarProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	username := chi.URLParam(r, "username")
	if username == "" {
		rw.BadRequest("username is required")
		return
	}

	profile, owned, wishlist := h.engine.Profile(r.Context(), username)

	rw.Success(barProfileResponse{
		Username: username,
		Profile:  profile,
		Bottles:  owned,
		Wishlist: wishlist,
	})
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON request body")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.engine.GetRecommendations(r.Context(), req.Username, req.Count, req.Reasoning())
	if err != nil {
		var schemaErr *recommend.SchemaError
		if errors.As(err, &schemaErr) {
			h.logger.Error().Err(err).Str("username", req.Username).
				Msg("catalog schema error during recommendation")
			rw.InternalError("Catalog data is malformed")
			return
		}

		h.logger.Error().Err(err).Str("username", req.Username).
			Msg("recommendation request failed")
		rw.InternalError("Failed to generate recommendations")
		return
	}

	h.appendHistory(r, &req, result)

	rw.Success(result)
}

// appendHistory records the served recommendations, best effort.
func (h *Handlers) appendHistory(r *http.Request, req *RecommendationsRequest, result *recommend.Result) {
	if h.history == nil {
		return
	}

	rec := &history.Record{
		Username:         result.Username,
		Count:            len(result.Recommendations),
		IncludeReasoning: req.Reasoning(),
		Fallback:         result.Fallback,
		Recommendations:  result.Recommendations,
	}
	if err := h.history.Append(r.Context(), rec); err != nil {
		h.logger.Warn().Err(err).Str("username", result.Username).
			Msg("failed to record recommendation history")
	}
}

// RecommendationHistory handles GET /api/v1/recommendations/history/{username}.
func (h *Handlers) RecommendationHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.history == nil {
		rw.ServiceUnavailable("Recommendation history is disabled")
		return
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		rw.BadRequest("username is required")
		return
	}

	limit := parseIntParam(r.URL.Query().Get("limit"))
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}

	records, err := h.history.ListByUser(r.Context(), username, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).
			Msg("failed to read recommendation history")
		rw.InternalError("Failed to read recommendation history")
		return
	}

	rw.SuccessWithMeta(records, &APIMeta{
		Timestamp: time.Now().UTC(),
		Pagination: &PaginationMeta{
			Count:   len(records),
			HasMore: false,
		},
	})
}
