// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"strconv"
	"strings"
)

const (
	// UnknownToken stands in for a missing year or director.
	UnknownToken = "unknown"

	// UnknownWriter stands in for a missing writers list.
	UnknownWriter = "unknown_writer"
)

// Entry is one cleaned catalog row. Entries are immutable once loaded.
type Entry struct {
	// ID is the row index in catalog order.
	ID int `json:"id"`

	// Title is the display title. Never empty.
	Title string `json:"title"`

	// Year is the release year, nil when unknown.
	Year *int `json:"year,omitempty"`

	// Genres in source order.
	Genres []string `json:"genres"`

	// Directors in source order. Holds UnknownToken when the source had none.
	Directors []string `json:"directors"`

	// Writers in source order. Holds UnknownWriter when the source had none.
	Writers []string `json:"writers"`

	// Rating is the average rating on a 0-10 scale.
	Rating float64 `json:"rating"`

	// Rated is false when the source row had no rating; Rating is then 0.
	Rated bool `json:"-"`

	// Runtime in minutes, nil when unknown.
	Runtime *int `json:"runtime_minutes,omitempty"`

	// Feature is the derived text blob fed to the vectorizer.
	Feature string `json:"-"`
}

// PrimaryDirector returns the first director token, or UnknownToken.
func (e *Entry) PrimaryDirector() string {
	if len(e.Directors) == 0 || e.Directors[0] == "" {
		return UnknownToken
	}
	return e.Directors[0]
}

// YearString renders the year for display and features.
func (e *Entry) YearString() string {
	if e.Year == nil {
		return UnknownToken
	}
	return strconv.Itoa(*e.Year)
}

// GenreString returns the genres joined by a single space.
func (e *Entry) GenreString() string {
	return strings.Join(e.Genres, " ")
}

// buildFeature derives the feature string from the entry's fields.
func buildFeature(e *Entry) string {
	parts := make([]string, 0, len(e.Genres)+len(e.Directors)+len(e.Writers)+3)
	parts = append(parts, e.Genres...)
	parts = append(parts, e.Directors...)
	parts = append(parts, e.Writers...)
	parts = append(parts, e.YearString(), ratingToken(e), runtimeToken(e))
	return strings.Join(parts, " ")
}

// ratingToken renders the rating bucket with one decimal, e.g. rating_8.1.
func ratingToken(e *Entry) string {
	if !e.Rated {
		return "rating_" + UnknownToken
	}
	return "rating_" + strconv.FormatFloat(e.Rating, 'f', 1, 64)
}

func runtimeToken(e *Entry) string {
	if e.Runtime == nil {
		return "runtime_" + UnknownToken
	}
	return "runtime_" + strconv.Itoa(*e.Runtime)
}
