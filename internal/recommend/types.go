// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"slices"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Request is a "movies like this one" query.
type Request struct {
	// Title is matched case-insensitively after trimming whitespace.
	Title string `json:"title" validate:"required,max=500"`

	// K is the maximum number of recommendations. Values above the
	// configured MaxK are clamped.
	K int `json:"k" validate:"min=1"`

	// MinRating drops candidates rated below it. Not range-checked here.
	MinRating float64 `json:"min_rating"`

	// RequestID is used for log correlation.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked result.
type Recommendation struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Rating          float64  `json:"rating"`
	Year            *int     `json:"year,omitempty"`
	Genres          []string `json:"genres"`
	Director        string   `json:"director"`
	SimilarityScore float64  `json:"similarity_score"`
}

// Response holds the ranked recommendations for a request.
type Response struct {
	// Query is the catalog title the request resolved to.
	Query string `json:"query"`

	// QueryID is the catalog index of the query entry.
	QueryID int `json:"query_id"`

	Items []Recommendation `json:"items"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string `json:"request_id,omitempty"`

	// K and MinRating echo the effective request parameters.
	K         int     `json:"k"`
	MinRating float64 `json:"min_rating"`

	// Examined is how many ranked candidates were scanned.
	Examined int `json:"examined"`

	// SnapshotVersion identifies the index that served the request.
	SnapshotVersion int64 `json:"snapshot_version"`

	CacheHit  bool      `json:"cache_hit"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Status reports the index state for health and status endpoints.
type Status struct {
	Ready           bool      `json:"ready"`
	Rebuilding      bool      `json:"rebuilding"`
	Version         int64     `json:"version"`
	BuiltAt         time.Time `json:"built_at,omitempty"`
	BuildDurationMS int64     `json:"build_duration_ms"`
	Entries         int       `json:"entries"`
	VocabularySize  int       `json:"vocabulary_size"`
	MatrixBytes     int64     `json:"matrix_bytes"`
	Source          string    `json:"source,omitempty"`
	LastError       string    `json:"last_error,omitempty"`

	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheSize    int   `json:"cache_size"`
	RebuildCount int64 `json:"rebuild_count"`

	// ErrorCount counts queries against a snapshot that returned an error,
	// including not found and empty outcomes.
	ErrorCount int64 `json:"error_count"`
}

// newRecommendation renders a catalog entry as a result. The result owns
// its Genres and Year; the entry is never reachable through it.
func newRecommendation(e *catalog.Entry, score float64) Recommendation {
	r := Recommendation{
		ID:              e.ID,
		Title:           e.Title,
		Rating:          e.Rating,
		Year:            e.Year,
		Genres:          e.Genres,
		Director:        e.PrimaryDirector(),
		SimilarityScore: score,
	}
	return r.clone()
}

// clone returns a copy that shares no memory with r.
func (r Recommendation) clone() Recommendation {
	r.Genres = slices.Clone(r.Genres)
	if r.Year != nil {
		year := *r.Year
		r.Year = &year
	}
	return r
}
