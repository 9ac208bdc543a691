// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/dramatlas/dramatlas/internal/catalog"
	"github.com/dramatlas/dramatlas/internal/collection"
)

// mockCatalog serves a fixed bottle list.
type mockCatalog struct {
	bottles []catalog.Bottle
}

func (m *mockCatalog) All() []catalog.Bottle {
	out := make([]catalog.Bottle, len(m.bottles))
	copy(out, m.bottles)
	return out
}

// mockCollections returns a fixed collection or error.
type mockCollections struct {
	col   *collection.Collection
	err   error
	calls int
}

func (m *mockCollections) FetchCollection(ctx context.Context, username string) (*collection.Collection, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.col, nil
}

func testCatalogBottles() []catalog.Bottle {
	return []catalog.Bottle{
		{ID: "b1", Name: "Islay Storm", Region: "Islay", Style: "Single Malt", Price: 60, Age: 10, Rating: 4.5, FlavorProfile: map[string]float64{"smoke": 0.9, "peat": 0.8}},
		{ID: "b2", Name: "Islay Mist", Region: "Islay", Style: "Single Malt", Price: 70, Age: 12, Rating: 4.3, FlavorProfile: map[string]float64{"smoke": 0.8}},
		{ID: "b3", Name: "Glen Spey 12", Region: "Speyside", Style: "Single Malt", Price: 45, Age: 12, Rating: 4.2, FlavorProfile: map[string]float64{"honey": 0.8, "fruit": 0.6}},
		{ID: "b4", Name: "Highland Pride", Region: "Highland", Style: "Blended", Price: 35, Age: 8, Rating: 3.9},
		{ID: "b5", Name: "Smoky Point", Region: "Islay", Style: "Single Malt", Price: 65, Age: 11, Rating: 4.4, FlavorProfile: map[string]float64{"smoke": 0.85, "brine": 0.6}},
		{ID: "b6", Name: "Lowland Light", Region: "Lowland", Style: "Single Grain", Price: 30, Age: 5, Rating: 3.5},
		{ID: "b7", Name: "Campbeltown Coast", Region: "Campbeltown", Style: "Single Malt", Price: 55, Age: 10, Rating: 4.1, FlavorProfile: map[string]float64{"brine": 0.7}},
	}
}

func newTestEngine(t *testing.T, collections CollectionSource) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), &mockCatalog{bottles: testCatalogBottles()}, collections)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestNewEngineValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultCount = 0
	if _, err := NewEngine(cfg, &mockCatalog{}, nil); err == nil {
		t.Error("NewEngine() = nil error for invalid config")
	}
	if _, err := NewEngine(DefaultConfig(), nil, nil); err == nil {
		t.Error("NewEngine() = nil error for nil catalog source")
	}
}

func TestGetRecommendationsPersonalized(t *testing.T) {
	// The user owns Islay single malts; wishes for b5.
	collections := &mockCollections{col: &collection.Collection{
		Username: "alice",
		Bottles: []catalog.Bottle{
			{ID: "b1", Name: "Islay Storm", Region: "Islay", Style: "Single Malt", Price: 60, Age: 10, Rating: 4.5, FlavorProfile: map[string]float64{"smoke": 0.9, "peat": 0.8}},
			{ID: "b2", Name: "Islay Mist", Region: "Islay", Style: "Single Malt", Price: 70, Age: 12, Rating: 4.3, FlavorProfile: map[string]float64{"smoke": 0.8}},
		},
		Wishlist: []catalog.Bottle{{ID: "b5"}},
	}}
	e := newTestEngine(t, collections)

	result, err := e.GetRecommendations(context.Background(), "alice", 3, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}

	if result.Fallback {
		t.Error("Fallback = true, want personalized mode")
	}
	if result.Username != "alice" {
		t.Errorf("Username = %q, want alice", result.Username)
	}
	if result.Profile == nil {
		t.Fatal("Profile = nil, want populated profile")
	}
	if result.Profile.BottleCount != 2 {
		t.Errorf("Profile.BottleCount = %d, want 2", result.Profile.BottleCount)
	}

	// Owned and wishlisted bottles are never recommended.
	excluded := map[string]bool{"b1": true, "b2": true, "b5": true}
	for _, rec := range result.Recommendations {
		if excluded[rec.BottleID] {
			t.Errorf("recommended %s, which the user owns or wishes for", rec.BottleID)
		}
		if rec.Reasoning == "" {
			t.Errorf("recommendation %s has no reasoning", rec.BottleID)
		}
	}
	if len(result.Recommendations) != 3 {
		t.Errorf("len(Recommendations) = %d, want 3", len(result.Recommendations))
	}
	if result.CandidateCount != 4 {
		t.Errorf("CandidateCount = %d, want 4", result.CandidateCount)
	}
}

func TestGetRecommendationsReasoningDisabled(t *testing.T) {
	collections := &mockCollections{col: &collection.Collection{
		Bottles: []catalog.Bottle{
			{ID: "b1", Name: "Islay Storm", Region: "Islay", Style: "Single Malt", Price: 60},
		},
	}}
	e := newTestEngine(t, collections)

	result, err := e.GetRecommendations(context.Background(), "alice", 2, false)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.Reasoning != "" {
			t.Errorf("recommendation %s has reasoning %q, want empty", rec.BottleID, rec.Reasoning)
		}
	}
}

func TestGetRecommendationsEmptyCollectionFallsBack(t *testing.T) {
	collections := &mockCollections{col: &collection.Collection{Username: "newbie"}}
	e := newTestEngine(t, collections)

	result, err := e.GetRecommendations(context.Background(), "newbie", 3, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}

	if !result.Fallback {
		t.Error("Fallback = false, want fallback mode for empty collection")
	}
	if len(result.Recommendations) != 3 {
		t.Errorf("len(Recommendations) = %d, want 3", len(result.Recommendations))
	}
	for i, rec := range result.Recommendations {
		if rec.Score != 0.95 {
			t.Errorf("Recommendations[%d].Score = %g, want 0.95", i, rec.Score)
		}
	}
	// Highest rated first.
	if result.Recommendations[0].BottleID != "b1" {
		t.Errorf("top fallback pick = %s, want b1", result.Recommendations[0].BottleID)
	}
}

func TestGetRecommendationsOutageNeverSurfaces(t *testing.T) {
	collections := &mockCollections{err: collection.ErrUnavailable}
	e := newTestEngine(t, collections)

	result, err := e.GetRecommendations(context.Background(), "alice", 3, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v, want recovery to fallback", err)
	}
	if !result.Fallback {
		t.Error("Fallback = false, want fallback mode on collection outage")
	}
	if collections.calls != 1 {
		t.Errorf("FetchCollection calls = %d, want 1", collections.calls)
	}
}

func TestGetRecommendationsNilCollectionSource(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.GetRecommendations(context.Background(), "anyone", 2, false)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if !result.Fallback {
		t.Error("Fallback = false, want fallback mode without a collection source")
	}
}

func TestGetRecommendationsDefaultCount(t *testing.T) {
	e := newTestEngine(t, nil)

	result, err := e.GetRecommendations(context.Background(), "anyone", 0, false)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if len(result.Recommendations) != 5 {
		t.Errorf("len(Recommendations) = %d, want default 5", len(result.Recommendations))
	}
}

func TestGetRecommendationsSchemaErrorSurfaces(t *testing.T) {
	// An owned bottle without an ID cannot be encoded.
	collections := &mockCollections{col: &collection.Collection{
		Bottles: []catalog.Bottle{{Name: "Mystery Dram"}},
	}}
	e := newTestEngine(t, collections)

	_, err := e.GetRecommendations(context.Background(), "alice", 3, false)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("GetRecommendations() error = %v, want *SchemaError", err)
	}
}

func TestGetRecommendationsNoCandidates(t *testing.T) {
	// The user owns the entire catalog, so there is nothing left to
	// rank; the engine serves starter picks instead of an empty list.
	collections := &mockCollections{col: &collection.Collection{
		Bottles: testCatalogBottles(),
	}}
	e := newTestEngine(t, collections)

	result, err := e.GetRecommendations(context.Background(), "completionist", 3, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if !result.Fallback {
		t.Error("Fallback = false, want fallback mode when no candidates remain")
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("len(Recommendations) = %d, want 3", len(result.Recommendations))
	}
	if result.Recommendations[0].BottleID != "b1" {
		t.Errorf("top pick = %s, want highest-rated b1", result.Recommendations[0].BottleID)
	}
	if result.CandidateCount != 7 {
		t.Errorf("CandidateCount = %d, want 7", result.CandidateCount)
	}
}

func TestGetRecommendationsSkipsMalformedCandidates(t *testing.T) {
	// A catalog row without an ID cannot be featurized; it is dropped
	// from the candidate pool instead of failing the whole request.
	bottles := append(testCatalogBottles(), catalog.Bottle{Name: "Orphan Cask", Region: "Islay", Price: 50, Rating: 4.0})
	collections := &mockCollections{col: &collection.Collection{
		Bottles: []catalog.Bottle{
			{ID: "b1", Name: "Islay Storm", Region: "Islay", Style: "Single Malt", Price: 60, Age: 10, Rating: 4.5, FlavorProfile: map[string]float64{"smoke": 0.9}},
		},
	}}
	e, err := NewEngine(DefaultConfig(), &mockCatalog{bottles: bottles}, collections)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	result, err := e.GetRecommendations(context.Background(), "alice", 3, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if result.Fallback {
		t.Error("Fallback = true, want personalized mode")
	}
	if len(result.Recommendations) != 3 {
		t.Errorf("len(Recommendations) = %d, want 3", len(result.Recommendations))
	}
	if result.CandidateCount != 6 {
		t.Errorf("CandidateCount = %d, want 6 after dropping the malformed row", result.CandidateCount)
	}
	for _, rec := range result.Recommendations {
		if rec.Name == "Orphan Cask" {
			t.Error("recommended the malformed catalog row")
		}
	}
}

func TestRecommendationCarriesFullRecord(t *testing.T) {
	collections := &mockCollections{col: &collection.Collection{
		Bottles: []catalog.Bottle{
			{ID: "b1", Name: "Islay Storm", Region: "Islay", Style: "Single Malt", Price: 60, Age: 10, Rating: 4.5, FlavorProfile: map[string]float64{"smoke": 0.9}},
		},
	}}
	e, err := NewEngine(DefaultConfig(), &mockCatalog{bottles: []catalog.Bottle{
		{ID: "b1", Name: "Islay Storm", Region: "Islay", Price: 60},
		{ID: "b5", Name: "Smoky Point", Brand: "Point", Region: "Islay", Style: "Single Malt", Price: 65, ABV: 46.0, Age: 11, Rating: 4.4, FlavorProfile: map[string]float64{"smoke": 0.85, "brine": 0.6}, Description: "A coastal dram."},
	}}, collections)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	result, err := e.GetRecommendations(context.Background(), "alice", 1, true)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("len(Recommendations) = %d, want 1", len(result.Recommendations))
	}
	rec := result.Recommendations[0]
	if rec.BottleID != "b5" || rec.Name != "Smoky Point" || rec.Brand != "Point" {
		t.Errorf("identity fields = (%s, %s, %s), want (b5, Smoky Point, Point)", rec.BottleID, rec.Name, rec.Brand)
	}
	if rec.ABV != 46.0 {
		t.Errorf("ABV = %g, want 46.0", rec.ABV)
	}
	if rec.FlavorProfile["smoke"] != 0.85 {
		t.Errorf("FlavorProfile[smoke] = %g, want 0.85", rec.FlavorProfile["smoke"])
	}
	if rec.Description != "A coastal dram." {
		t.Errorf("Description = %q, want the catalog description", rec.Description)
	}
}

func TestProfileEndpointHelper(t *testing.T) {
	collections := &mockCollections{col: &collection.Collection{
		Bottles: []catalog.Bottle{
			{ID: "b1", Region: "Islay", Style: "Single Malt", Price: 60},
		},
		Wishlist: []catalog.Bottle{{ID: "b3"}},
	}}
	e := newTestEngine(t, collections)

	profile, owned, wishlist := e.Profile(context.Background(), "alice")
	if profile.BottleCount != 1 {
		t.Errorf("profile.BottleCount = %d, want 1", profile.BottleCount)
	}
	if len(owned) != 1 || len(wishlist) != 1 {
		t.Errorf("owned=%d wishlist=%d, want 1 and 1", len(owned), len(wishlist))
	}
}
