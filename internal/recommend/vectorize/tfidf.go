// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultMaxFeatures is the vocabulary cap.
const DefaultMaxFeatures = 50000

// ErrInvalidMaxFeatures is returned for a vocabulary cap below 1.
var ErrInvalidMaxFeatures = errors.New("max features must be at least 1")

// cancelCheckEvery is how many documents are processed between context checks.
const cancelCheckEvery = 1024

type config struct {
	maxFeatures int
	stopWords   map[string]struct{}
}

// Option configures Fit.
type Option func(*config) error

// WithMaxFeatures caps the vocabulary at n terms.
func WithMaxFeatures(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return ErrInvalidMaxFeatures
		}
		c.maxFeatures = n
		return nil
	}
}

// WithStopWords replaces the English stop-word list. A nil or empty list
// disables stop-word removal.
func WithStopWords(words []string) Option {
	return func(c *config) error {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		c.stopWords = set
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		maxFeatures: DefaultMaxFeatures,
		stopWords:   EnglishStopWords(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Space is a fitted vocabulary plus the vectors of the fitting corpus.
type Space struct {
	// Vocabulary maps each term to its column index. Indices follow
	// alphabetical term order.
	Vocabulary map[string]int32

	// Terms lists the vocabulary in index order.
	Terms []string

	// IDF holds the smooth idf weight per column.
	IDF []float64

	// Vectors holds one L2-normalized vector per input document, in input
	// order.
	Vectors []Vector

	stopWords map[string]struct{}
}

// Size returns the vocabulary size.
func (s *Space) Size() int {
	return len(s.Terms)
}

// Fit builds a Space over docs.
func Fit(docs []string, opts ...Option) (*Space, error) {
	return FitContext(context.Background(), docs, opts...)
}

// FitContext is Fit with cancellation.
func FitContext(ctx context.Context, docs []string, opts ...Option) (*Space, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}

	// Pass 1: per-document counts, document frequency, corpus frequency.
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, doc := range docs {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("vectorize: %w", err)
			}
		}
		c := countTerms(doc, cfg.stopWords)
		counts[i] = c
		for term, n := range c {
			df[term]++
			tf[term] += n
		}
	}

	terms := selectTerms(tf, cfg.maxFeatures)
	vocab := make(map[string]int32, len(terms))
	for i, t := range terms {
		vocab[t] = int32(i) //nolint:gosec // vocabulary is capped well below MaxInt32
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	space := &Space{
		Vocabulary: vocab,
		Terms:      terms,
		IDF:        idf,
		Vectors:    make([]Vector, len(docs)),
		stopWords:  cfg.stopWords,
	}

	// Pass 2: weight and normalize.
	for i, c := range counts {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("vectorize: %w", err)
			}
		}
		space.Vectors[i] = space.weigh(c)
	}

	return space, nil
}

// Transform vectorizes doc against the fitted vocabulary. Terms outside the
// vocabulary are ignored.
func (s *Space) Transform(doc string) Vector {
	return s.weigh(countTerms(doc, s.stopWords))
}

func (s *Space) weigh(counts map[string]int) Vector {
	v := Vector{
		Indices: make([]int32, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for term := range counts {
		if idx, ok := s.Vocabulary[term]; ok {
			v.Indices = append(v.Indices, idx)
		}
	}
	sort.Slice(v.Indices, func(a, b int) bool { return v.Indices[a] < v.Indices[b] })
	for _, idx := range v.Indices {
		v.Values = append(v.Values, float64(counts[s.Terms[idx]])*s.IDF[idx])
	}
	v.normalize()
	return v
}

func countTerms(doc string, stop map[string]struct{}) map[string]int {
	out := make(map[string]int)
	for _, tok := range Tokenize(doc) {
		if _, skip := stop[tok]; skip {
			continue
		}
		out[tok]++
	}
	return out
}

// selectTerms keeps the limit most frequent terms (ties alphabetical) and
// returns them sorted alphabetically.
func selectTerms(tf map[string]int, limit int) []string {
	terms := make([]string, 0, len(tf))
	for t := range tf {
		terms = append(terms, t)
	}
	if len(terms) > limit {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}
