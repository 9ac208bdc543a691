// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

const maxCitedFlavors = 3

// buildReasoning explains why a bottle was recommended, checking the
// profile in a fixed order: region, style, price, age, flavors. A
// bottle matching nothing gets a generic line plus novelty notes so
// the reasoning is never empty.
func (e *Engine) buildReasoning(b *catalog.Bottle, profile *PreferenceProfile) string {
	reasons := make([]string, 0, 5)

	if b.Region != "" && profile.RegionDistribution[b.Region] > e.config.PreferenceThreshold {
		reasons = append(reasons, fmt.Sprintf("Matches your preference for %s whiskies", b.Region))
	}

	if b.Style != "" && profile.StyleDistribution[b.Style] > e.config.PreferenceThreshold {
		reasons = append(reasons, fmt.Sprintf("Aligns with your interest in %s whiskies", b.Style))
	}

	if reason := e.priceReason(b, profile); reason != "" {
		reasons = append(reasons, reason)
	}

	if reason := e.ageReason(b, profile); reason != "" {
		reasons = append(reasons, reason)
	}

	if reason := e.flavorReason(b, profile); reason != "" {
		reasons = append(reasons, reason)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Complements your current collection")
		if b.Region != "" {
			if _, known := profile.RegionDistribution[b.Region]; !known {
				reasons = append(reasons, fmt.Sprintf("Diversifies your collection with a %s whisky", b.Region))
			}
		}
		if b.Style != "" {
			if _, known := profile.StyleDistribution[b.Style]; !known {
				reasons = append(reasons, fmt.Sprintf("Adds variety with a %s style", b.Style))
			}
		}
	}

	return strings.Join(reasons, ". ")
}

// priceReason positions the bottle's price against the collection
// average. Bottles without a price, or collections without price data,
// produce no price reasoning.
func (e *Engine) priceReason(b *catalog.Bottle, profile *PreferenceProfile) string {
	if b.Price <= 0 || profile.PriceAvg <= 0 {
		return ""
	}
	ratio := b.Price / profile.PriceAvg
	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return "Similar price point to your collection"
	case ratio < 0.8:
		return "Great value compared to your collection"
	case ratio <= e.config.PriceBandUpper:
		return "Premium option within your price range"
	default:
		return ""
	}
}

// ageReason compares the bottle's age statement with the collection
// average. Bottles without an age statement, or collections without
// one, produce no age reasoning.
func (e *Engine) ageReason(b *catalog.Bottle, profile *PreferenceProfile) string {
	if b.Age <= 0 || profile.AgeAvg <= 0 {
		return ""
	}
	diff := float64(b.Age) - profile.AgeAvg
	switch {
	case diff >= -e.config.AgeTolerance && diff <= e.config.AgeTolerance:
		return fmt.Sprintf("Age statement (%d years) similar to your collection", b.Age)
	case diff > e.config.AgeTolerance:
		return fmt.Sprintf("More mature expression (%d years) than your average", b.Age)
	default:
		return ""
	}
}

// flavorReason cites flavors the user weights heavily that the bottle
// expresses strongly.
func (e *Engine) flavorReason(b *catalog.Bottle, profile *PreferenceProfile) string {
	matched := make([]string, 0, len(b.FlavorProfile))
	for flavor, intensity := range b.FlavorProfile {
		if profile.FlavorWeights[flavor] > e.config.PreferenceThreshold && intensity > e.config.FlavorIntensityThreshold {
			matched = append(matched, flavor)
		}
	}
	if len(matched) == 0 {
		return ""
	}

	// Strongest preference first, alphabetical among ties.
	sort.Slice(matched, func(i, j int) bool {
		wi, wj := profile.FlavorWeights[matched[i]], profile.FlavorWeights[matched[j]]
		if wi != wj {
			return wi > wj
		}
		return matched[i] < matched[j]
	})

	if len(matched) == 1 {
		return fmt.Sprintf("Matches your preference for %s notes", matched[0])
	}
	if len(matched) > maxCitedFlavors {
		matched = matched[:maxCitedFlavors]
	}
	return fmt.Sprintf("Shares flavor notes you enjoy: %s", joinWithAnd(matched))
}

// joinWithAnd renders ["a"] as "a", ["a","b"] as "a and b" and
// ["a","b","c"] as "a, b and c".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
