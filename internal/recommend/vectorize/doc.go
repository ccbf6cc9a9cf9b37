// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package vectorize turns feature strings into sparse TF-IDF vectors.
//
// The weighting matches the common smooth-idf formulation:
//
//	tf(t, d)  = raw count of t in d
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d)   = tf(t, d) * idf(t), then each row is L2 normalized
//
// Tokens are lowercase runs of two or more word characters. English
// stop-words are removed before the vocabulary is chosen, and the vocabulary
// is capped (50,000 terms by default) by total corpus frequency.
//
// # Usage
//
//	space, err := vectorize.Fit(features, vectorize.WithMaxFeatures(50000))
//	if err != nil {
//	    return err
//	}
//	v := space.Vectors[0]
//
// A document that is empty or made only of stop-words maps to the zero
// vector. Fit never fails on content; FitContext fails only when its context
// is cancelled.
package vectorize
