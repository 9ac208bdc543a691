// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package api

import (
	"net/http"
	"strconv"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

// RecommendationsRequest is the payload for POST /api/v1/recommendations.
type RecommendationsRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=50"`
	// IncludeReasoning defaults to true when omitted.
	IncludeReasoning *bool `json:"include_reasoning"`
}

// Reasoning resolves the optional include_reasoning flag to its default.
func (r *RecommendationsRequest) Reasoning() bool {
	if r.IncludeReasoning == nil {
		return true
	}
	return *r.IncludeReasoning
}

// parseBottleFilter builds a catalog filter from query parameters.
// Unparseable numeric values are treated as unset.
func parseBottleFilter(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Region:   q.Get("region"),
		Style:    q.Get("style"),
		Country:  q.Get("country"),
		Category: q.Get("category"),
		MinPrice: parseFloatParam(q.Get("min_price")),
		MaxPrice: parseFloatParam(q.Get("max_price")),
		MinAge:   parseIntParam(q.Get("min_age")),
		MaxAge:   parseIntParam(q.Get("max_age")),
	}
}

// parsePagination extracts limit/offset query parameters, clamping limit
// to the configured maximum and falling back to the default page size.
func parsePagination(r *http.Request, defaultSize, maxSize int) (limit, offset int) {
	limit = defaultSize
	if v := parseIntParam(r.URL.Query().Get("limit")); v > 0 {
		limit = v
	}
	if limit > maxSize {
		limit = maxSize
	}
	if v := parseIntParam(r.URL.Query().Get("offset")); v > 0 {
		offset = v
	}
	return limit, offset
}

func parseFloatParam(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseIntParam(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
