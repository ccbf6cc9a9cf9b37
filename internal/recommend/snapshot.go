// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend/similarity"
	"github.com/tomtom215/cinematch/internal/recommend/vectorize"
)

// Snapshot is one fully built, immutable index: the catalog and its
// similarity matrix. Queries only ever see a complete Snapshot.
type Snapshot struct {
	// Version increases by one with every published snapshot. Snapshots
	// built outside an Engine have version 0.
	Version int64

	Catalog *catalog.Catalog
	Matrix  *similarity.Matrix

	// VocabularySize is the number of TF-IDF terms used.
	VocabularySize int

	BuiltAt       time.Time
	BuildDuration time.Duration
}

// BuildSnapshot runs vectorize and similarity over cat. The vectors are not
// kept; only the matrix is needed to serve queries.
func BuildSnapshot(ctx context.Context, cat *catalog.Catalog, cfg BuildConfig) (*Snapshot, error) {
	start := time.Now()

	space, err := vectorize.FitContext(ctx, cat.Features(), vectorize.WithMaxFeatures(cfg.MaxFeatures))
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	var opts []similarity.Option
	if cfg.Workers > 0 {
		opts = append(opts, similarity.WithWorkers(cfg.Workers))
	}
	matrix, err := similarity.Build(ctx, space.Vectors, opts...)
	if err != nil {
		return nil, fmt.Errorf("build similarity: %w", err)
	}

	return &Snapshot{
		Catalog:        cat,
		Matrix:         matrix,
		VocabularySize: space.Size(),
		BuiltAt:        time.Now(),
		BuildDuration:  time.Since(start),
	}, nil
}

// Recommend answers a query against this snapshot alone. lookahead is the
// Limits.LookaheadFactor; 0 scans the full ranking.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (s *Snapshot) Recommend(req Request, lookahead int) (*Response, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	idx, err := s.Catalog.Lookup(req.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, req.Title)
	}

	limit := 0
	if lookahead > 0 {
		limit = lookahead * req.K
	}

	picked, examined := rank(s.Matrix.Row(idx), idx, s.Catalog, req.K, req.MinRating, limit)
	if len(picked) == 0 {
		return nil, fmt.Errorf("%w: %q with min rating %.1f", ErrEmpty, s.Catalog.Entry(idx).Title, req.MinRating)
	}

	items := make([]Recommendation, len(picked))
	for i, c := range picked {
		items[i] = newRecommendation(s.Catalog.Entry(c.index), roundScore(c.score))
	}

	return &Response{
		Query:   s.Catalog.Entry(idx).Title,
		QueryID: idx,
		Items:   items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			K:               req.K,
			MinRating:       req.MinRating,
			Examined:        examined,
			SnapshotVersion: s.Version,
		},
	}, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func checkRequest(req Request) error {
	if catalog.NormalizeTitle(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if req.K < 1 {
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidRequest, req.K)
	}
	return nil
}
