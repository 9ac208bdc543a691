// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package catalog

// Bottle is a single whisky in the catalog. FlavorProfile maps flavor
// names (e.g. "smoke", "vanilla") to intensities, typically 0-1.
type Bottle struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Brand         string             `json:"brand,omitempty"`
	Region        string             `json:"region,omitempty"`
	Style         string             `json:"style,omitempty"`
	Country       string             `json:"country,omitempty"`
	Category      string             `json:"category,omitempty"`
	Description   string             `json:"description,omitempty"`
	Price         float64            `json:"price"`
	ABV           float64            `json:"abv"`
	Age           int                `json:"age"`
	Rating        float64            `json:"rating"`
	FlavorProfile map[string]float64 `json:"flavor_profile,omitempty"`
}

// Default field values applied when the source data omits them.
// A bottle with no rating is assumed average rather than unrated,
// so it neither dominates nor vanishes from rating-ordered picks.
const (
	DefaultRating = 3.0
	DefaultPrice  = 0.0
	DefaultABV    = 0.0
	DefaultAge    = 0
)

// bottleRecord mirrors Bottle with pointer-typed numeric fields so
// that absent values can be distinguished from explicit zeros. Some
// catalog exports key bottles by "bottle_id" instead of "id"; both
// are accepted, with "id" winning when present.
type bottleRecord struct {
	ID            string             `json:"id"`
	BottleID      string             `json:"bottle_id"`
	Name          string             `json:"name"`
	Brand         string             `json:"brand"`
	Region        string             `json:"region"`
	Style         string             `json:"style"`
	Country       string             `json:"country"`
	Category      string             `json:"category"`
	Description   string             `json:"description"`
	Price         *float64           `json:"price"`
	ABV           *float64           `json:"abv"`
	Age           *int               `json:"age"`
	Rating        *float64           `json:"rating"`
	FlavorProfile map[string]float64 `json:"flavor_profile"`
}

// toBottle converts a decoded record into a Bottle, filling omitted
// numeric fields with their defaults. FlavorProfile is always a map,
// never nil, so callers can range over it without a guard.
func (r *bottleRecord) toBottle() Bottle {
	id := r.ID
	if id == "" {
		id = r.BottleID
	}
	flavors := r.FlavorProfile
	if flavors == nil {
		flavors = map[string]float64{}
	}
	b := Bottle{
		ID:            id,
		Name:          r.Name,
		Brand:         r.Brand,
		Region:        r.Region,
		Style:         r.Style,
		Country:       r.Country,
		Category:      r.Category,
		Description:   r.Description,
		Price:         DefaultPrice,
		ABV:           DefaultABV,
		Age:           DefaultAge,
		Rating:        DefaultRating,
		FlavorProfile: flavors,
	}
	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.ABV != nil {
		b.ABV = *r.ABV
	}
	if r.Age != nil {
		b.Age = *r.Age
	}
	if r.Rating != nil {
		b.Rating = *r.Rating
	}
	return b
}
