// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

// Package recommend implements the whisky recommendation engine.
//
// Recommendations are content-based: a user's owned bottles are turned
// into a feature matrix (one-hot categoricals, min-max scaled numerics,
// flavor intensities), averaged into a taste centroid, and candidate
// bottles from the catalog are ranked by cosine similarity to that
// centroid with a penalty for prices far outside the user's usual
// range. Users with no collection receive highly-rated starter picks
// chosen for variety instead.
//
// Each recommendation can carry human-readable reasoning derived from
// the user's preference profile (dominant regions, styles, price and
// age bands, and flavor weights).
package recommend
