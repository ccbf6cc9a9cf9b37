// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"cmp"
	"math"
	"slices"
)

// candidate is an (index, score) pair in the ranking.
type candidate struct {
	index int
	score float32
}

// ratingSource is the slice of the catalog the ranker needs. Unrated
// entries report NaN.
type ratingSource interface {
	RatingAt(i int) float64
}

// rank orders every entry but self by score descending, keeping catalog order
// on ties, then takes up to k entries rated at least minRating. Unrated
// entries never qualify. When limit is positive, at most limit candidates
// (self excluded) are examined before the scan gives up; 0 scans everything.
// It returns the accepted candidates and how many were examined.
func rank(row []float32, self int, ratings ratingSource, k int, minRating float64, limit int) ([]candidate, int) {
	cands := make([]candidate, 0, len(row))
	for i, s := range row {
		if i == self {
			continue
		}
		cands = append(cands, candidate{index: i, score: s})
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	picked := make([]candidate, 0, k)
	examined := 0
	for _, c := range cands {
		if limit > 0 && examined >= limit {
			break
		}
		examined++
		if r := ratings.RatingAt(c.index); !(r >= minRating) {
			continue
		}
		picked = append(picked, c)
		if len(picked) == k {
			break
		}
	}
	return picked, examined
}

// roundScore rounds to 3 decimals, halves away from zero.
func roundScore(s float32) float64 {
	return math.Round(float64(s)*1000) / 1000
}
