// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"strings"
	"testing"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

func TestBuildReasoningRegionAndStyle(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		RegionDistribution: map[string]float64{"Islay": 0.6},
		StyleDistribution:  map[string]float64{"Single Malt": 0.8},
	}
	b := &catalog.Bottle{ID: "b1", Region: "Islay", Style: "Single Malt"}

	got := e.buildReasoning(b, profile)
	want := "Matches your preference for Islay whiskies. Aligns with your interest in Single Malt whiskies"
	if got != want {
		t.Errorf("buildReasoning() = %q, want %q", got, want)
	}
}

func TestBuildReasoningThresholdIsStrict(t *testing.T) {
	e := testEngine(t, nil)
	// Weight exactly at the threshold must not trigger the rule.
	profile := &PreferenceProfile{
		RegionDistribution: map[string]float64{"Islay": 0.1},
	}
	b := &catalog.Bottle{ID: "b1", Region: "Islay"}

	got := e.buildReasoning(b, profile)
	if strings.Contains(got, "Matches your preference for Islay") {
		t.Errorf("buildReasoning() = %q, cited a region at exactly the threshold", got)
	}
}

func TestPriceReason(t *testing.T) {
	e := testEngine(t, nil)

	tests := []struct {
		name  string
		price float64
		avg   float64
		want  string
	}{
		{"similar low edge", 80, 100, "Similar price point to your collection"},
		{"similar high edge", 120, 100, "Similar price point to your collection"},
		{"great value", 50, 100, "Great value compared to your collection"},
		{"premium", 140, 100, "Premium option within your price range"},
		{"premium edge", 150, 100, "Premium option within your price range"},
		{"beyond premium", 200, 100, ""},
		{"no price signal", 50, 0, ""},
		{"unpriced bottle", 0, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &catalog.Bottle{ID: "b1", Price: tt.price}
			profile := &PreferenceProfile{PriceAvg: tt.avg}
			if got := e.priceReason(b, profile); got != tt.want {
				t.Errorf("priceReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAgeReason(t *testing.T) {
	e := testEngine(t, nil)

	tests := []struct {
		name string
		age  int
		avg  float64
		want string
	}{
		{"similar", 12, 10, "Age statement (12 years) similar to your collection"},
		{"similar younger", 8, 10, "Age statement (8 years) similar to your collection"},
		{"exactly tolerance", 13, 10, "Age statement (13 years) similar to your collection"},
		{"more mature", 18, 10, "More mature expression (18 years) than your average"},
		{"much younger", 5, 10, ""},
		{"no age statement", 0, 10, ""},
		{"no collection ages", 12, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &catalog.Bottle{ID: "b1", Age: tt.age}
			profile := &PreferenceProfile{AgeAvg: tt.avg}
			if got := e.ageReason(b, profile); got != tt.want {
				t.Errorf("ageReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlavorReasonSingleMatch(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		FlavorWeights: map[string]float64{"smoke": 0.4, "honey": 0.05},
	}
	b := &catalog.Bottle{ID: "b1", FlavorProfile: map[string]float64{"smoke": 0.8, "honey": 0.9}}

	got := e.flavorReason(b, profile)
	want := "Matches your preference for smoke notes"
	if got != want {
		t.Errorf("flavorReason() = %q, want %q", got, want)
	}
}

func TestFlavorReasonMultipleMatches(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		FlavorWeights: map[string]float64{"smoke": 0.5, "peat": 0.3, "brine": 0.2},
	}
	b := &catalog.Bottle{ID: "b1", FlavorProfile: map[string]float64{
		"smoke": 0.9, "peat": 0.8, "brine": 0.7,
	}}

	got := e.flavorReason(b, profile)
	want := "Shares flavor notes you enjoy: smoke, peat and brine"
	if got != want {
		t.Errorf("flavorReason() = %q, want %q", got, want)
	}
}

func TestFlavorReasonTruncatesToThree(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		FlavorWeights: map[string]float64{"smoke": 0.4, "peat": 0.3, "brine": 0.2, "vanilla": 0.11},
	}
	b := &catalog.Bottle{ID: "b1", FlavorProfile: map[string]float64{
		"smoke": 0.9, "peat": 0.8, "brine": 0.7, "vanilla": 0.6,
	}}

	got := e.flavorReason(b, profile)
	want := "Shares flavor notes you enjoy: smoke, peat and brine"
	if got != want {
		t.Errorf("flavorReason() = %q, want %q", got, want)
	}
}

func TestFlavorReasonIntensityThreshold(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		FlavorWeights: map[string]float64{"smoke": 0.5},
	}
	// Intensity at exactly 0.5 must not count as a match.
	b := &catalog.Bottle{ID: "b1", FlavorProfile: map[string]float64{"smoke": 0.5}}

	if got := e.flavorReason(b, profile); got != "" {
		t.Errorf("flavorReason() = %q, want empty at threshold intensity", got)
	}
}

func TestBuildReasoningGenericAndNovelty(t *testing.T) {
	e := testEngine(t, nil)
	profile := &PreferenceProfile{
		RegionDistribution: map[string]float64{"Speyside": 1.0},
		StyleDistribution:  map[string]float64{"Single Malt": 1.0},
	}
	b := &catalog.Bottle{ID: "b1", Region: "Campbeltown", Style: "Blended"}

	got := e.buildReasoning(b, profile)
	want := "Complements your current collection. " +
		"Diversifies your collection with a Campbeltown whisky. " +
		"Adds variety with a Blended style"
	if got != want {
		t.Errorf("buildReasoning() = %q, want %q", got, want)
	}
}

func TestBuildReasoningGenericKnownRegion(t *testing.T) {
	e := testEngine(t, nil)
	// Region present in the profile but below threshold: generic line
	// only, no diversity note for a region the user already has.
	profile := &PreferenceProfile{
		RegionDistribution: map[string]float64{"Campbeltown": 0.05, "Speyside": 0.95},
	}
	b := &catalog.Bottle{ID: "b1", Region: "Campbeltown"}

	got := e.buildReasoning(b, profile)
	want := "Complements your current collection"
	if got != want {
		t.Errorf("buildReasoning() = %q, want %q", got, want)
	}
}

func TestJoinWithAnd(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b and c"},
	}
	for _, tt := range tests {
		if got := joinWithAnd(tt.items); got != tt.want {
			t.Errorf("joinWithAnd(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}
