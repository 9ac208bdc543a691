// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"time"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

// PreferenceProfile summarizes a user's collection for scoring and
// reasoning. Distributions are normalized to sum to 1; an empty
// collection yields the zero profile.
type PreferenceProfile struct {
	BottleCount int `json:"bottle_count"`

	RegionDistribution map[string]float64 `json:"region_distribution,omitempty"`
	StyleDistribution  map[string]float64 `json:"style_distribution,omitempty"`

	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
	PriceAvg float64 `json:"price_avg"`

	AgeMin float64 `json:"age_min"`
	AgeMax float64 `json:"age_max"`
	AgeAvg float64 `json:"age_avg"`

	// FlavorWeights maps each flavor to its share of the collection's
	// total flavor intensity.
	FlavorWeights map[string]float64 `json:"flavor_weights,omitempty"`

	// TopCharacteristics lists up to five labeled traits, e.g.
	// "Region: Islay" or "Flavor: smoke".
	TopCharacteristics []string `json:"top_characteristics,omitempty"`
}

// Recommendation is a single scored bottle suggestion. It carries the
// full bottle record so clients can render it without a second catalog
// lookup.
type Recommendation struct {
	BottleID      string             `json:"bottle_id"`
	Name          string             `json:"name"`
	Brand         string             `json:"brand,omitempty"`
	Region        string             `json:"region,omitempty"`
	Style         string             `json:"style,omitempty"`
	Price         float64            `json:"price"`
	ABV           float64            `json:"abv"`
	Age           int                `json:"age"`
	Rating        float64            `json:"rating"`
	FlavorProfile map[string]float64 `json:"flavor_profile,omitempty"`
	Description   string             `json:"description,omitempty"`
	Score         float64            `json:"score"`
	Reasoning     string             `json:"reasoning,omitempty"`
}

// Result is the outcome of a recommendation request.
type Result struct {
	Username        string           `json:"username"`
	Recommendations []Recommendation `json:"recommendations"`

	// Fallback is true when the user had no usable collection and
	// received starter picks.
	Fallback bool `json:"fallback"`

	Profile *PreferenceProfile `json:"profile,omitempty"`

	CandidateCount int           `json:"candidate_count"`
	GeneratedAt    time.Time     `json:"generated_at"`
	Duration       time.Duration `json:"-"`
}

// scoredBottle pairs a candidate with its similarity score during
// ranking.
type scoredBottle struct {
	bottle catalog.Bottle
	score  float64
}
