// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package catalog

import "strings"

// Filter selects bottles by categorical and range criteria. Zero
// values mean "no constraint"; string matches are case-insensitive.
type Filter struct {
	Region   string
	Style    string
	Country  string
	Category string
	MinPrice float64
	MaxPrice float64
	MinAge   int
	MaxAge   int
}

// IsZero reports whether the filter applies no constraints.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// matches reports whether b satisfies every set constraint.
func (f Filter) matches(b *Bottle) bool {
	if f.Region != "" && !strings.EqualFold(f.Region, b.Region) {
		return false
	}
	if f.Style != "" && !strings.EqualFold(f.Style, b.Style) {
		return false
	}
	if f.Country != "" && !strings.EqualFold(f.Country, b.Country) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, b.Category) {
		return false
	}
	if f.MinPrice > 0 && b.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && b.Price > f.MaxPrice {
		return false
	}
	if f.MinAge > 0 && b.Age < f.MinAge {
		return false
	}
	if f.MaxAge > 0 && b.Age > f.MaxAge {
		return false
	}
	return true
}

// ByCriteria returns the bottles matching the filter, in catalog order.
func (s *Store) ByCriteria(f Filter) []Bottle {
	if f.IsZero() {
		return s.All()
	}
	out := make([]Bottle, 0)
	for i := range s.bottles {
		if f.matches(&s.bottles[i]) {
			out = append(out, s.bottles[i])
		}
	}
	return out
}
