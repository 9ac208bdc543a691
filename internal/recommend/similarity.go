// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import (
	"math"
	"sort"

	"github.com/dramatlas/dramatlas/internal/catalog"
)

// cosineSimilarity returns the cosine of the angle between two equal
// length vectors. A zero vector on either side yields 0 rather than
// NaN, ranking featureless candidates last.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// selectCandidates returns the catalog bottles the user neither owns
// nor wishes for, in catalog order.
func selectCandidates(all []catalog.Bottle, owned, wishlist []catalog.Bottle) []catalog.Bottle {
	excluded := make(map[string]struct{}, len(owned)+len(wishlist))
	for i := range owned {
		excluded[owned[i].ID] = struct{}{}
	}
	for i := range wishlist {
		excluded[wishlist[i].ID] = struct{}{}
	}

	out := make([]catalog.Bottle, 0, len(all))
	for i := range all {
		if _, ok := excluded[all[i].ID]; !ok {
			out = append(out, all[i])
		}
	}
	return out
}

// scoreCandidates ranks candidates by cosine similarity between each
// candidate's feature row and the collection's taste centroid, with a
// flat penalty for candidates priced outside the user's comfortable
// band. It returns the top limit candidates in stable score order.
func (e *Engine) scoreCandidates(owned, candidates []catalog.Bottle, profile *PreferenceProfile, limit int) ([]scoredBottle, error) {
	collectionMatrix, err := BuildFeatures(owned)
	if err != nil {
		return nil, err
	}
	candidateMatrix, err := BuildFeatures(candidates)
	if err != nil {
		return nil, err
	}

	collectionMatrix, candidateMatrix = Align(collectionMatrix, candidateMatrix)
	centroid := collectionMatrix.Mean()

	lowerBound := profile.PriceAvg * e.config.PriceBandLower
	upperBound := profile.PriceAvg * e.config.PriceBandUpper

	scored := make([]scoredBottle, 0, len(candidates))
	for i, row := range candidateMatrix.Rows {
		score := cosineSimilarity(centroid, row)

		// Skip the band check for profiles with no price signal.
		if profile.PriceAvg > 0 {
			price := candidates[i].Price
			if price < lowerBound || price > upperBound {
				score *= e.config.PricePenalty
			}
		}

		scored = append(scored, scoredBottle{bottle: candidates[i], score: score})
	}

	// Stable sort keeps catalog order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
