// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

// Package catalog loads the whisky bottle catalog and serves read-only
// lookups over it. The catalog is immutable after load; all accessors
// are safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/metrics"
)

// ErrDataUnavailable indicates the catalog data file could not be read
// or parsed. The service cannot operate without a catalog, so callers
// treat this as fatal at startup.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Store holds the loaded catalog.
type Store struct {
	bottles []Bottle
	byID    map[string]int
}

// catalogFile accepts either a bare JSON array of bottles or an
// object wrapping the array under "bottles".
type catalogFile struct {
	Bottles []bottleRecord `json:"bottles"`
}

// NewStore loads the catalog from the JSON file at path. Records
// missing numeric fields are filled with defaults rather than
// rejected; a record with an empty id is kept in listings but is
// never addressable by ID.
func NewStore(path string) (*Store, error) {
	logger := logging.WithComponent("catalog")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataUnavailable, path, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDataUnavailable, path, err)
	}

	s := &Store{
		bottles: make([]Bottle, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for _, rec := range records {
		b := rec.toBottle()
		s.bottles = append(s.bottles, b)
		if b.ID != "" {
			s.byID[b.ID] = len(s.bottles) - 1
		}
	}

	metrics.CatalogBottles.Set(float64(len(s.bottles)))
	logger.Info().
		Int("bottles", len(s.bottles)).
		Str("path", path).
		Msg("Catalog loaded")

	return s, nil
}

func decodeRecords(data []byte) ([]bottleRecord, error) {
	var records []bottleRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var wrapped catalogFile
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Bottles == nil {
		return nil, errors.New("expected a JSON array of bottles or an object with a bottles field")
	}
	return wrapped.Bottles, nil
}

// All returns every bottle in the catalog. The returned slice is a
// copy; callers may reorder it freely.
func (s *Store) All() []Bottle {
	out := make([]Bottle, len(s.bottles))
	copy(out, s.bottles)
	return out
}

// Len returns the number of bottles in the catalog.
func (s *Store) Len() int {
	return len(s.bottles)
}

// ByID returns the bottle with the given id, or false if absent.
func (s *Store) ByID(id string) (Bottle, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Bottle{}, false
	}
	return s.bottles[idx], true
}

// UniqueValues returns the sorted distinct non-empty values of a
// categorical field. Supported fields: region, style, country,
// category, brand. Unknown fields return nil.
func (s *Store) UniqueValues(field string) []string {
	var get func(*Bottle) string
	switch field {
	case "region":
		get = func(b *Bottle) string { return b.Region }
	case "style":
		get = func(b *Bottle) string { return b.Style }
	case "country":
		get = func(b *Bottle) string { return b.Country }
	case "category":
		get = func(b *Bottle) string { return b.Category }
	case "brand":
		get = func(b *Bottle) string { return b.Brand }
	default:
		return nil
	}

	seen := make(map[string]struct{})
	for i := range s.bottles {
		if v := get(&s.bottles[i]); v != "" {
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// PriceRange returns the minimum and maximum bottle price across the
// catalog, or (0, 0) for an empty catalog.
func (s *Store) PriceRange() (min, max float64) {
	if len(s.bottles) == 0 {
		return 0, 0
	}
	min, max = s.bottles[0].Price, s.bottles[0].Price
	for i := 1; i < len(s.bottles); i++ {
		p := s.bottles[i].Price
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}
