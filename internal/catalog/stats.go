// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"sort"
)

// TopGenreLimit is how many genres Stats reports.
const TopGenreLimit = 5

// GenreCount is a genre and the number of entries tagged with it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats summarizes the catalog for dashboards.
type Stats struct {
	// Entries is the number of catalog entries.
	Entries int `json:"entries"`

	// MeanRating is the mean over rated entries, rounded to 2 decimals.
	MeanRating float64 `json:"mean_rating"`

	// MinYear and MaxYear bound the known release years. Nil when no entry
	// has a year.
	MinYear *int `json:"min_year,omitempty"`
	MaxYear *int `json:"max_year,omitempty"`

	// TopGenres lists the most frequent genres, most frequent first; ties
	// are ordered alphabetically.
	TopGenres []GenreCount `json:"top_genres"`

	// Skipped is the number of source rows dropped for having no title.
	Skipped int `json:"skipped_rows"`
}

// Stats computes dataset statistics. The catalog is immutable, so callers
// may cache the result.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Entries: len(c.entries),
		Skipped: c.skipped,
	}

	var sum float64
	rated := 0
	genres := make(map[string]int)
	for i := range c.entries {
		e := &c.entries[i]
		if e.Rated {
			sum += e.Rating
			rated++
		}
		if e.Year != nil {
			y := *e.Year
			if s.MinYear == nil || y < *s.MinYear {
				s.MinYear = &y
			}
			if s.MaxYear == nil || y > *s.MaxYear {
				yy := y
				s.MaxYear = &yy
			}
		}
		for _, g := range e.Genres {
			genres[g]++
		}
	}

	if rated > 0 {
		s.MeanRating = math.Round(sum/float64(rated)*100) / 100
	}
	s.TopGenres = topGenres(genres, TopGenreLimit)
	return s
}

func topGenres(counts map[string]int, n int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
