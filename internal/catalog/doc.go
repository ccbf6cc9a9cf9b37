// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog loads and holds the movie catalog used by the recommender.
//
// A catalog is read once from a tabular source (CSV, TSV or Parquet), cleaned
// into immutable Entry values and indexed by normalized title. Each entry
// carries a derived feature string that the vectorizer consumes.
//
// # Source Columns
//
// The loader understands the IMDb-style export layout:
//
//	tconst, primaryTitle, startYear, numVotes, averageRating,
//	runtimeMinutes, genres, directors, writers, Title_IMDb_Link
//
// tconst, numVotes and Title_IMDb_Link are dropped. primaryTitle and
// startYear are renamed to title and year. Canonical names (title, year,
// rating, runtime) are accepted as well, and missing optional columns are
// tolerated.
//
// # Cleaning Rules
//
//   - Missing writers become "unknown_writer", missing directors "unknown"
//   - The year is the first 4-digit run in the raw value, otherwise unknown
//   - Commas in genres, directors and writers are replaced by spaces
//   - Rows without a title are skipped and counted
//
// # Feature String
//
// The feature string joins, in order: genres, directors, writers, the year
// (or "unknown"), "rating_<x.y>" and "runtime_<minutes>" (or
// "runtime_unknown"). It is a pure function of the entry.
//
// # Lookup
//
// Titles are matched case-insensitively after trimming surrounding
// whitespace. When several entries share a normalized title, the first in
// catalog order wins.
//
// # Thread Safety
//
// A Catalog is immutable after Load returns and is safe for concurrent use.
package catalog
