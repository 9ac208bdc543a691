// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"fmt"
	"sort"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

// Limits on the traits surfaced in a profile summary.
const (
	topRegions         = 2
	topStyles          = 2
	topFlavors         = 3
	maxCharacteristics = 5
)

// AnalyzeCollection builds a PreferenceProfile from a user's owned
// bottles. An empty collection yields the zero profile.
func AnalyzeCollection(bottles []catalog.Bottle) PreferenceProfile {
	if len(bottles) == 0 {
		return PreferenceProfile{}
	}

	p := PreferenceProfile{
		BottleCount:        len(bottles),
		RegionDistribution: make(map[string]float64),
		StyleDistribution:  make(map[string]float64),
		FlavorWeights:      make(map[string]float64),
	}

	n := float64(len(bottles))
	var priceSum, ageSum float64
	var regionN, styleN float64
	flavorTotal := 0.0

	for i := range bottles {
		b := &bottles[i]

		if b.Region != "" {
			p.RegionDistribution[b.Region]++
			regionN++
		}
		if b.Style != "" {
			p.StyleDistribution[b.Style]++
			styleN++
		}

		price := b.Price
		age := float64(b.Age)
		if i == 0 {
			p.PriceMin, p.PriceMax = price, price
			p.AgeMin, p.AgeMax = age, age
		} else {
			if price < p.PriceMin {
				p.PriceMin = price
			}
			if price > p.PriceMax {
				p.PriceMax = price
			}
			if age < p.AgeMin {
				p.AgeMin = age
			}
			if age > p.AgeMax {
				p.AgeMax = age
			}
		}
		priceSum += price
		ageSum += age

		for flavor, intensity := range b.FlavorProfile {
			p.FlavorWeights[flavor] += intensity
			flavorTotal += intensity
		}
	}

	// Distributions are normalized over the bottles that carry the
	// field, so they sum to 1 even when some bottles omit it.
	for region := range p.RegionDistribution {
		p.RegionDistribution[region] /= regionN
	}
	for style := range p.StyleDistribution {
		p.StyleDistribution[style] /= styleN
	}
	if flavorTotal > 0 {
		for flavor := range p.FlavorWeights {
			p.FlavorWeights[flavor] /= flavorTotal
		}
	}

	p.PriceAvg = priceSum / n
	p.AgeAvg = ageSum / n

	p.TopCharacteristics = topCharacteristics(&p)

	return p
}

// topCharacteristics lists the profile's dominant traits: up to two
// regions, two styles, and three flavors, truncated to five entries.
func topCharacteristics(p *PreferenceProfile) []string {
	traits := make([]string, 0, maxCharacteristics)
	for _, region := range topKeys(p.RegionDistribution, topRegions) {
		traits = append(traits, fmt.Sprintf("Region: %s", region))
	}
	for _, style := range topKeys(p.StyleDistribution, topStyles) {
		traits = append(traits, fmt.Sprintf("Style: %s", style))
	}
	for _, flavor := range topKeys(p.FlavorWeights, topFlavors) {
		traits = append(traits, fmt.Sprintf("Flavor: %s", flavor))
	}
	if len(traits) > maxCharacteristics {
		traits = traits[:maxCharacteristics]
	}
	return traits
}

// topKeys returns the k highest-weighted keys, ties broken
// alphabetically for deterministic output.
func topKeys(weights map[string]float64, k int) []string {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if weights[keys[i]] != weights[keys[j]] {
			return weights[keys[i]] > weights[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}
