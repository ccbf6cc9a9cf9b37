// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package similarity precomputes the pairwise cosine similarity matrix over
// a set of sparse vectors.
//
// The matrix is symmetric with a unit diagonal, so only the strict upper
// triangle is stored: n(n-1)/2 float32 cells. Build time and memory are
// quadratic in n, which is the scalability ceiling of the recommender; a
// 20,000 entry catalog needs roughly 800 MB.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/recommend/vectorize"
)

// ErrInvalidWorkers is returned for a worker count below 1.
var ErrInvalidWorkers = errors.New("workers must be at least 1")

// Matrix is an immutable n×n cosine similarity matrix.
type Matrix struct {
	n     int
	cells []float32 // packed strict upper triangle, row major
}

type buildConfig struct {
	workers int
}

// Option configures Build.
type Option func(*buildConfig) error

// WithWorkers bounds the number of rows computed concurrently.
// Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *buildConfig) error {
		if n < 1 {
			return ErrInvalidWorkers
		}
		c.workers = n
		return nil
	}
}

// Build computes the similarity matrix for vectors. Cell (i,j) is
// dot(v_i, v_j) / (|v_i||v_j|), 0 when either vector has zero magnitude,
// and the diagonal is 1. The matrix is returned only when every row is
// complete.
func Build(ctx context.Context, vectors []vectorize.Vector, opts ...Option) (*Matrix, error) {
	cfg := buildConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("similarity: %w", err)
		}
	}

	n := len(vectors)
	m := &Matrix{n: n, cells: make([]float32, n*(n-1)/2)}
	if n < 2 {
		return m, ctx.Err()
	}

	norms := make([]float64, n)
	for i := range vectors {
		norms[i] = vectors[i].Norm()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for i := 0; i < n-1; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m.fillRow(i, vectors, norms)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	return m, nil
}

// fillRow writes cells (i, i+1..n-1). Each row owns a disjoint slice of
// cells, so rows may be filled concurrently.
func (m *Matrix) fillRow(i int, vectors []vectorize.Vector, norms []float64) {
	base := m.offset(i)
	vi, ni := vectors[i], norms[i]
	for j := i + 1; j < m.n; j++ {
		var s float64
		if ni != 0 && norms[j] != 0 {
			s = vi.Dot(vectors[j]) / (ni * norms[j])
			s = math.Max(0, math.Min(1, s))
		}
		m.cells[base+j-i-1] = float32(s)
	}
}

// offset returns the index of cell (i, i+1) in the packed slice.
func (m *Matrix) offset(i int) int {
	return i*m.n - i*(i+1)/2
}

// Len returns n.
func (m *Matrix) Len() int {
	return m.n
}

// At returns sim(i, j).
func (m *Matrix) At(i, j int) float32 {
	switch {
	case i == j:
		return 1
	case i > j:
		i, j = j, i
	}
	return m.cells[m.offset(i)+j-i-1]
}

// Row returns a fresh copy of row i with the lower half mirrored from the
// upper triangle.
func (m *Matrix) Row(i int) []float32 {
	row := make([]float32, m.n)
	for j := 0; j < i; j++ {
		row[j] = m.cells[m.offset(j)+i-j-1]
	}
	row[i] = 1
	if i < m.n-1 {
		base := m.offset(i)
		copy(row[i+1:], m.cells[base:base+m.n-i-1])
	}
	return row
}

// Bytes returns the memory held by the packed cells.
func (m *Matrix) Bytes() int64 {
	return int64(len(m.cells)) * 4
}
