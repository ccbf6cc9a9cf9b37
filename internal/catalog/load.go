// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
)

// Load reads src and returns the cleaned catalog. Any failure is returned
// as a *DataLoadError; context cancellation is returned unwrapped.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	name := src.String()

	table, err := src.Read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &DataLoadError{Source: name, Op: "read", Err: err}
	}

	cols, err := resolveColumns(table.Header)
	if err != nil {
		return nil, &DataLoadError{Source: name, Op: "header", Err: err}
	}

	entries := make([]Entry, 0, len(table.Rows))
	skipped := 0
	for i, row := range table.Rows {
		entry, ok, err := cleanRow(cols, row)
		if err != nil {
			return nil, &DataLoadError{Source: name, Op: "parse", Row: i + 1, Err: err}
		}
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	c, err := New(name, entries)
	if err != nil {
		return nil, &DataLoadError{Source: name, Op: "build", Err: err}
	}
	c.skipped = skipped
	return c, nil
}
