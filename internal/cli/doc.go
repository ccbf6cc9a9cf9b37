// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cli implements the one-shot cinematch command line tool on cobra.
//
// Each invocation loads the catalog, builds what it needs in-process and
// answers a single command:
//
//	cinematch recommend --catalog movies.csv --title "The Godfather" -k 5 --min-rating 7.0
//	cinematch stats --catalog movies.csv
//	cinematch popular --catalog movies.csv --limit 10
//
// Configuration follows the server: defaults, an optional --config file and
// the environment, with flags applied last.
//
// Exit codes: 0 success, 1 error, 2 title not found, 3 no recommendations.
package cli
