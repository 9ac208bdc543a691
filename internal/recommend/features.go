// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"sort"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

// unknownBucket collects bottles with an empty categorical field so
// they still contribute a one-hot column instead of being dropped.
const unknownBucket = "Unknown"

// Numeric feature column names.
const (
	colPrice  = "price"
	colAge    = "age"
	colABV    = "abv"
	colRating = "rating"
)

// FeatureMatrix is a dense numeric representation of a set of bottles:
// one row per bottle, one column per feature. Categorical fields are
// one-hot encoded, numeric fields min-max scaled to [0, 1], and flavor
// intensities carried through under "flavor_" columns.
type FeatureMatrix struct {
	Columns []string
	IDs     []string
	Rows    [][]float64

	index map[string]int
}

// BuildFeatures encodes bottles into a feature matrix. Every bottle
// must have a non-empty ID; a missing ID is a SchemaError because the
// row could never be mapped back to a catalog entry.
func BuildFeatures(bottles []catalog.Bottle) (*FeatureMatrix, error) {
	for i := range bottles {
		if bottles[i].ID == "" {
			return nil, newSchemaError("bottle_id", "bottle %d (%q) has no id", i, bottles[i].Name)
		}
	}

	columns := buildColumns(bottles)
	m := &FeatureMatrix{
		Columns: columns,
		IDs:     make([]string, 0, len(bottles)),
		Rows:    make([][]float64, 0, len(bottles)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		m.index[c] = i
	}

	scalePrice := newMinMaxScaler(bottles, func(b *catalog.Bottle) float64 { return b.Price })
	scaleAge := newMinMaxScaler(bottles, func(b *catalog.Bottle) float64 { return float64(b.Age) })
	scaleABV := newMinMaxScaler(bottles, func(b *catalog.Bottle) float64 { return b.ABV })
	scaleRating := newMinMaxScaler(bottles, func(b *catalog.Bottle) float64 { return b.Rating })

	for i := range bottles {
		b := &bottles[i]
		row := make([]float64, len(columns))

		m.set(row, "region_"+bucket(b.Region), 1)
		m.set(row, "style_"+bucket(b.Style), 1)
		m.set(row, "country_"+bucket(b.Country), 1)
		m.set(row, "category_"+bucket(b.Category), 1)

		m.set(row, colPrice, scalePrice(b.Price))
		m.set(row, colAge, scaleAge(float64(b.Age)))
		m.set(row, colABV, scaleABV(b.ABV))
		m.set(row, colRating, scaleRating(b.Rating))

		for flavor, intensity := range b.FlavorProfile {
			m.set(row, "flavor_"+flavor, intensity)
		}

		m.IDs = append(m.IDs, b.ID)
		m.Rows = append(m.Rows, row)
	}

	return m, nil
}

// buildColumns derives the sorted column set for a bottle list:
// one-hot columns per observed categorical value, the four numeric
// columns, and one column per observed flavor.
func buildColumns(bottles []catalog.Bottle) []string {
	seen := make(map[string]struct{})
	for i := range bottles {
		b := &bottles[i]
		seen["region_"+bucket(b.Region)] = struct{}{}
		seen["style_"+bucket(b.Style)] = struct{}{}
		seen["country_"+bucket(b.Country)] = struct{}{}
		seen["category_"+bucket(b.Category)] = struct{}{}
		for flavor := range b.FlavorProfile {
			seen["flavor_"+flavor] = struct{}{}
		}
	}
	seen[colPrice] = struct{}{}
	seen[colAge] = struct{}{}
	seen[colABV] = struct{}{}
	seen[colRating] = struct{}{}

	columns := make([]string, 0, len(seen))
	for c := range seen {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}

func bucket(v string) string {
	if v == "" {
		return unknownBucket
	}
	return v
}

func (m *FeatureMatrix) set(row []float64, column string, value float64) {
	if idx, ok := m.index[column]; ok {
		row[idx] = value
	}
}

// newMinMaxScaler returns a scaler mapping values onto [0, 1] over the
// observed range. A constant column scales to 0 so it carries no
// signal instead of dividing by zero.
func newMinMaxScaler(bottles []catalog.Bottle, get func(*catalog.Bottle) float64) func(float64) float64 {
	if len(bottles) == 0 {
		return func(float64) float64 { return 0 }
	}
	min := get(&bottles[0])
	max := min
	for i := 1; i < len(bottles); i++ {
		v := get(&bottles[i])
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return func(float64) float64 { return 0 }
	}
	span := max - min
	return func(v float64) float64 {
		return (v - min) / span
	}
}

// Align projects two matrices onto their shared columns, sorted, so
// rows from either can be compared dimension by dimension. Matrices
// built from different bottle sets rarely agree on one-hot and flavor
// columns; only the intersection is meaningful.
func Align(a, b *FeatureMatrix) (*FeatureMatrix, *FeatureMatrix) {
	common := make([]string, 0, len(a.Columns))
	for _, c := range a.Columns {
		if _, ok := b.index[c]; ok {
			common = append(common, c)
		}
	}
	sort.Strings(common)
	return a.project(common), b.project(common)
}

// project returns a copy of m restricted to the given columns.
func (m *FeatureMatrix) project(columns []string) *FeatureMatrix {
	out := &FeatureMatrix{
		Columns: columns,
		IDs:     m.IDs,
		Rows:    make([][]float64, len(m.Rows)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		out.index[c] = i
	}
	src := make([]int, len(columns))
	for i, c := range columns {
		src[i] = m.index[c]
	}
	for r, row := range m.Rows {
		projected := make([]float64, len(columns))
		for i, s := range src {
			projected[i] = row[s]
		}
		out.Rows[r] = projected
	}
	return out
}

// Mean returns the column-wise mean of all rows: the taste centroid.
// An empty matrix yields a zero vector of column width.
func (m *FeatureMatrix) Mean() []float64 {
	mean := make([]float64, len(m.Columns))
	if len(m.Rows) == 0 {
		return mean
	}
	for _, row := range m.Rows {
		for i, v := range row {
			mean[i] += v
		}
	}
	n := float64(len(m.Rows))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}
