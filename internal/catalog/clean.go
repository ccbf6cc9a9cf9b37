// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Canonical field names after renaming.
const (
	fieldTitle     = "title"
	fieldYear      = "year"
	fieldRating    = "rating"
	fieldRuntime   = "runtime"
	fieldGenres    = "genres"
	fieldDirectors = "directors"
	fieldWriters   = "writers"
)

// columnAliases maps lowercased source column names to canonical fields.
// Source columns not listed here (tconst, numVotes, Title_IMDb_Link, ...)
// are dropped.
var columnAliases = map[string]string{
	"primarytitle":   fieldTitle,
	"title":          fieldTitle,
	"movie_name":     fieldTitle,
	"startyear":      fieldYear,
	"year":           fieldYear,
	"averagerating":  fieldRating,
	"rating":         fieldRating,
	"runtimeminutes": fieldRuntime,
	"runtime":        fieldRuntime,
	"genres":         fieldGenres,
	"directors":      fieldDirectors,
	"writers":        fieldWriters,
}

// missingValues are raw cell values treated as absent. This follows the
// usual dataframe NA markers plus the IMDb dataset's \N.
var missingValues = map[string]struct{}{
	"":     {},
	`\N`:   {},
	"nan":  {},
	"NaN":  {},
	"NA":   {},
	"N/A":  {},
	"null": {},
	"NULL": {},
	"<NA>": {},
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// columnIndex records where each canonical field lives in a source row.
// A value of -1 means the column is absent.
type columnIndex map[string]int

// resolveColumns maps a header row to canonical fields. The first source
// column that resolves to a field wins.
func resolveColumns(header []string) (columnIndex, error) {
	idx := columnIndex{
		fieldTitle:     -1,
		fieldYear:      -1,
		fieldRating:    -1,
		fieldRuntime:   -1,
		fieldGenres:    -1,
		fieldDirectors: -1,
		fieldWriters:   -1,
	}

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		field, ok := columnAliases[key]
		if !ok {
			continue
		}
		if idx[field] == -1 {
			idx[field] = i
		}
	}

	if idx[fieldTitle] == -1 {
		return nil, ErrNoTitleColumn
	}
	return idx, nil
}

// cell returns the trimmed value for field and whether it is present.
func (c columnIndex) cell(row []string, field string) (string, bool) {
	i := c[field]
	if i < 0 || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if _, missing := missingValues[v]; missing {
		return "", false
	}
	return v, true
}

// cleanRow turns one raw row into an Entry. It returns ok=false for rows
// that carry no title; those are skipped by the loader.
func cleanRow(cols columnIndex, row []string) (entry Entry, ok bool, err error) {
	title, hasTitle := cols.cell(row, fieldTitle)
	if !hasTitle {
		return Entry{}, false, nil
	}
	entry.Title = title

	if raw, present := cols.cell(row, fieldYear); present {
		entry.Year = extractYear(raw)
	}

	if raw, present := cols.cell(row, fieldRating); present {
		rating, perr := parseRating(raw)
		if perr != nil {
			return Entry{}, false, perr
		}
		entry.Rating = rating
		entry.Rated = true
	}

	if raw, present := cols.cell(row, fieldRuntime); present {
		entry.Runtime = parseRuntime(raw)
	}

	if raw, present := cols.cell(row, fieldGenres); present {
		entry.Genres = splitList(raw)
	}

	entry.Directors = []string{UnknownToken}
	if raw, present := cols.cell(row, fieldDirectors); present {
		if list := splitList(raw); len(list) > 0 {
			entry.Directors = list
		}
	}

	entry.Writers = []string{UnknownWriter}
	if raw, present := cols.cell(row, fieldWriters); present {
		if list := splitList(raw); len(list) > 0 {
			entry.Writers = list
		}
	}

	if entry.Genres == nil {
		entry.Genres = []string{}
	}

	entry.Feature = buildFeature(&entry)
	return entry, true, nil
}

// extractYear pulls the first 4-digit run out of a mixed-format value such
// as "1994", "1994.0" or "(1994)". Anything else yields nil.
func extractYear(raw string) *int {
	m := yearPattern.FindString(raw)
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &y
}

func parseRating(raw string) (float64, error) {
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q: %w", raw, err)
	}
	if math.IsNaN(r) || r < 0 || r > 10 {
		return 0, fmt.Errorf("rating %q out of range [0,10]", raw)
	}
	return r, nil
}

// parseRuntime accepts integer and float-formatted minutes. Values that
// are not numbers are treated as unknown.
func parseRuntime(raw string) *int {
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return &n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	n := int(f)
	return &n
}

// splitList replaces list-separator commas with spaces and splits on
// whitespace.
func splitList(raw string) []string {
	return strings.Fields(strings.ReplaceAll(raw, ",", " "))
}
