// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements the content-based "more like this" engine.
//
// # Architecture
//
// A rebuild runs a three stage pipeline and publishes the result as one
// immutable Snapshot:
//
//   - catalog.Load: read and clean the source, derive feature strings
//   - vectorize.Fit: TF-IDF vectors over a capped vocabulary
//   - similarity.Build: the full pairwise cosine matrix
//
// Queries resolve the title, rank every other entry by similarity (stable on
// ties, so catalog order breaks them), skip entries below the rating filter
// and stop after K hits or LookaheadFactor*K examined candidates.
//
// # Lookahead
//
// The default bound of 2K candidates can return fewer than K results, or
// ErrEmpty, even when qualifying entries exist further down the ranking.
// Setting LookaheadFactor to 0 scans the whole ranking instead.
//
// # Usage
//
//	src, _ := catalog.OpenSource(catalog.SourceConfig{Path: "movies.csv"})
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), src, logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := engine.Rebuild(ctx); err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Title:     "The Godfather",
//	    K:         5,
//	    MinRating: 7.0,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. The current snapshot sits behind an
// atomic pointer: queries never block, and a rebuild in progress does not
// affect them until the new snapshot is swapped in whole. Only one rebuild
// runs at a time.
package recommend
