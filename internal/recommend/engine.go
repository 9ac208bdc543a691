// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dramatlas/dramatlas/internal/catalog"
	"github.com/dramatlas/dramatlas/internal/collection"
	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/metrics"
)

// CatalogSource serves the full bottle catalog.
type CatalogSource interface {
	All() []catalog.Bottle
}

// CollectionSource fetches a user's bar collection.
type CollectionSource interface {
	FetchCollection(ctx context.Context, username string) (*collection.Collection, error)
}

// Engine produces bottle recommendations. It is safe for concurrent
// use; all state is read-only after construction.
type Engine struct {
	config      Config
	catalog     CatalogSource
	collections CollectionSource
	logger      zerolog.Logger
}

// NewEngine creates a recommendation engine. collections may be nil
// when no bar service is configured; every user is then served
// fallback picks.
func NewEngine(cfg Config, catalogSource CatalogSource, collections CollectionSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}
	if catalogSource == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	return &Engine{
		config:      cfg,
		catalog:     catalogSource,
		collections: collections,
		logger:      logging.WithComponent("recommend"),
	}, nil
}

// GetRecommendations returns up to count recommendations for username.
// A count of zero or less uses the configured default; counts above
// the maximum are capped. Users whose collection is empty or cannot be
// fetched receive fallback picks; a bar service outage never fails the
// request.
func (e *Engine) GetRecommendations(ctx context.Context, username string, count int, includeReasoning bool) (*Result, error) {
	start := time.Now()

	if count <= 0 {
		count = e.config.DefaultCount
	}
	if count > e.config.MaxCount {
		count = e.config.MaxCount
	}

	owned, wishlist := e.fetchCollection(ctx, username)
	all := e.catalog.All()

	var result *Result
	var err error
	if len(owned) == 0 {
		result = e.recommendFallback(username, all, count, includeReasoning)
	} else {
		result, err = e.recommendPersonalized(username, all, owned, wishlist, count, includeReasoning)
		if err != nil {
			metrics.RecordRecommendationError("schema")
			return nil, err
		}
	}

	result.GeneratedAt = time.Now().UTC()
	result.Duration = time.Since(start)

	mode := "personalized"
	if result.Fallback {
		mode = "fallback"
	}
	metrics.RecordRecommendation(mode, result.Duration)

	e.logger.Info().
		Str("username", username).
		Str("mode", mode).
		Int("count", len(result.Recommendations)).
		Int("candidates", result.CandidateCount).
		Dur("duration", result.Duration).
		Msg("Recommendations generated")

	return result, nil
}

// fetchCollection retrieves the user's bar, degrading to an empty
// collection on any failure. The user is then treated as new; an
// upstream outage must not fail the request.
func (e *Engine) fetchCollection(ctx context.Context, username string) (owned, wishlist []catalog.Bottle) {
	if e.collections == nil {
		return nil, nil
	}
	col, err := e.collections.FetchCollection(ctx, username)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("username", username).
			Msg("Collection unavailable, serving fallback picks")
		return nil, nil
	}
	return col.Bottles, col.Wishlist
}

// recommendFallback serves starter picks for users without a usable
// collection.
func (e *Engine) recommendFallback(username string, all []catalog.Bottle, count int, includeReasoning bool) *Result {
	return &Result{
		Username:        username,
		Recommendations: e.fallbackRecommendations(all, count, includeReasoning),
		Fallback:        true,
		CandidateCount:  len(all),
	}
}

// recommendPersonalized scores the catalog against the user's taste
// profile.
func (e *Engine) recommendPersonalized(username string, all, owned, wishlist []catalog.Bottle, count int, includeReasoning bool) (*Result, error) {
	profile := AnalyzeCollection(owned)

	candidates := e.dropMalformed(selectCandidates(all, owned, wishlist))
	if len(candidates) == 0 {
		// The user already owns or wishes for everything scorable, so
		// starter picks are the only suggestions left to make.
		return e.recommendFallback(username, all, count, includeReasoning), nil
	}

	result := &Result{
		Username:        username,
		Recommendations: []Recommendation{},
		Profile:         &profile,
		CandidateCount:  len(candidates),
	}

	scored, err := e.scoreCandidates(owned, candidates, &profile, count*e.config.CandidateMultiplier)
	if err != nil {
		return nil, err
	}
	if len(scored) > count {
		scored = scored[:count]
	}

	result.Recommendations = make([]Recommendation, 0, len(scored))
	for i := range scored {
		b := &scored[i].bottle
		rec := Recommendation{
			BottleID:      b.ID,
			Name:          b.Name,
			Brand:         b.Brand,
			Region:        b.Region,
			Style:         b.Style,
			Price:         b.Price,
			ABV:           b.ABV,
			Age:           b.Age,
			Rating:        b.Rating,
			FlavorProfile: b.FlavorProfile,
			Description:   b.Description,
			Score:         scored[i].score,
		}
		if includeReasoning {
			rec.Reasoning = e.buildReasoning(b, &profile)
		}
		result.Recommendations = append(result.Recommendations, rec)
	}

	return result, nil
}

// dropMalformed removes candidate rows that cannot be featurized,
// logging each skip. One bad catalog row must not abort the whole
// recommendation call.
func (e *Engine) dropMalformed(candidates []catalog.Bottle) []catalog.Bottle {
	kept := make([]catalog.Bottle, 0, len(candidates))
	for i := range candidates {
		if candidates[i].ID == "" {
			e.logger.Warn().
				Str("name", candidates[i].Name).
				Msg("Skipping candidate bottle with no id")
			continue
		}
		kept = append(kept, candidates[i])
	}
	return kept
}

// Profile exposes the preference profile for a user's collection
// without producing recommendations. Used by the bar inspection API.
func (e *Engine) Profile(ctx context.Context, username string) (*PreferenceProfile, []catalog.Bottle, []catalog.Bottle) {
	owned, wishlist := e.fetchCollection(ctx, username)
	profile := AnalyzeCollection(owned)
	return &profile, owned, wishlist
}
