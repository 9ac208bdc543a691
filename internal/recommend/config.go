// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import "fmt"

// Config tunes the recommendation engine.
type Config struct {
	// DefaultCount is used when a request asks for zero or negative
	// recommendations.
	DefaultCount int

	// MaxCount caps the number of recommendations per request.
	MaxCount int

	// CandidateMultiplier widens the scored candidate window to
	// CandidateMultiplier*count before truncation.
	CandidateMultiplier int

	// FallbackPoolMultiplier widens the rating-ordered pool scanned
	// for new-user picks to FallbackPoolMultiplier*count.
	FallbackPoolMultiplier int

	// PriceBandLower and PriceBandUpper bound the comfortable price
	// range as multiples of the collection's average price.
	PriceBandLower float64
	PriceBandUpper float64

	// PricePenalty scales the similarity score of candidates priced
	// outside the comfortable band.
	PricePenalty float64

	// PreferenceThreshold is the minimum profile weight for a region,
	// style, or flavor to be cited in reasoning.
	PreferenceThreshold float64

	// FlavorIntensityThreshold is the minimum candidate flavor
	// intensity for a flavor match to be cited in reasoning.
	FlavorIntensityThreshold float64

	// AgeTolerance is the age difference, in years, still considered
	// "similar" to the collection average.
	AgeTolerance float64

	// FallbackScore is the fixed score assigned to new-user picks.
	FallbackScore float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DefaultCount:             5,
		MaxCount:                 50,
		CandidateMultiplier:      2,
		FallbackPoolMultiplier:   3,
		PriceBandLower:           0.7,
		PriceBandUpper:           1.5,
		PricePenalty:             0.7,
		PreferenceThreshold:      0.1,
		FlavorIntensityThreshold: 0.5,
		AgeTolerance:             3,
		FallbackScore:            0.95,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.DefaultCount < 1 {
		return fmt.Errorf("default count must be at least 1, got %d", c.DefaultCount)
	}
	if c.MaxCount < c.DefaultCount {
		return fmt.Errorf("max count (%d) must be >= default count (%d)", c.MaxCount, c.DefaultCount)
	}
	if c.CandidateMultiplier < 1 {
		return fmt.Errorf("candidate multiplier must be at least 1, got %d", c.CandidateMultiplier)
	}
	if c.FallbackPoolMultiplier < 1 {
		return fmt.Errorf("fallback pool multiplier must be at least 1, got %d", c.FallbackPoolMultiplier)
	}
	if c.PriceBandLower <= 0 || c.PriceBandUpper <= c.PriceBandLower {
		return fmt.Errorf("price band (%g, %g) must satisfy 0 < lower < upper", c.PriceBandLower, c.PriceBandUpper)
	}
	if c.PricePenalty <= 0 || c.PricePenalty > 1 {
		return fmt.Errorf("price penalty must be in (0, 1], got %g", c.PricePenalty)
	}
	if c.PreferenceThreshold < 0 || c.PreferenceThreshold >= 1 {
		return fmt.Errorf("preference threshold must be in [0, 1), got %g", c.PreferenceThreshold)
	}
	if c.FlavorIntensityThreshold < 0 {
		return fmt.Errorf("flavor intensity threshold must be non-negative, got %g", c.FlavorIntensityThreshold)
	}
	if c.AgeTolerance < 0 {
		return fmt.Errorf("age tolerance must be non-negative, got %g", c.AgeTolerance)
	}
	if c.FallbackScore <= 0 || c.FallbackScore > 1 {
		return fmt.Errorf("fallback score must be in (0, 1], got %g", c.FallbackScore)
	}
	return nil
}
