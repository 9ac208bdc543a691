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

// fallbackRecommendations picks starter bottles for users with no
// collection: the highest-rated bottles in the catalog, with
// (region, style) duplicates skipped once half the requested count is
// filled so new users see some variety.
func (e *Engine) fallbackRecommendations(all []catalog.Bottle, count int, includeReasoning bool) []Recommendation {
	pool := make([]catalog.Bottle, len(all))
	copy(pool, all)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Rating > pool[j].Rating
	})

	window := count * e.config.FallbackPoolMultiplier
	if window < len(pool) {
		pool = pool[:window]
	}

	type pairKey struct{ region, style string }
	seen := make(map[pairKey]struct{})

	picks := make([]Recommendation, 0, count)
	for i := range pool {
		if len(picks) >= count {
			break
		}
		b := &pool[i]
		if b.ID == "" || b.Name == "" {
			continue
		}

		key := pairKey{region: b.Region, style: b.Style}
		if _, dup := seen[key]; dup && len(picks) > count/2 {
			continue
		}
		seen[key] = struct{}{}

		rec := Recommendation{
			BottleID:      b.ID,
			Name:          b.Name,
			Brand:         b.Brand,
			Region:        b.Region,
			Style:         b.Style,
			Price:         b.Price,
			ABV:           b.ABV,
			Age:           b.Age,
			Rating:        b.Rating,
			FlavorProfile: b.FlavorProfile,
			Description:   b.Description,
			Score:         e.config.FallbackScore,
		}
		if includeReasoning {
			rec.Reasoning = fallbackReasoning(len(picks), b)
		}
		picks = append(picks, rec)
	}

	return picks
}

// fallbackReasoning varies the starter-pick blurb by position so the
// first few suggestions read differently. Bottles missing region or
// style fall back to generic adjectives rather than rendering a gap.
func fallbackReasoning(position int, b *catalog.Bottle) string {
	region := b.Region
	if region == "" {
		region = "quality"
	}
	style := b.Style
	if style == "" {
		style = "premium"
	}

	switch position {
	case 0:
		return fmt.Sprintf("A highly-rated %s whisky perfect for starting your collection", region)
	case 1:
		return fmt.Sprintf("An excellent %s style that's widely appreciated by whisky enthusiasts", style)
	case 2:
		return fmt.Sprintf("A versatile %s whisky that showcases classic characteristics", region)
	default:
		return fmt.Sprintf("A distinguished bottle that represents the best of %s whisky", region)
	}
}
