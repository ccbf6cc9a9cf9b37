// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	// DuckDB driver - reads CSV/TSV/Parquet catalogs through table functions
	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBSource reads a catalog file through an in-memory DuckDB connection.
// Every column is cast to VARCHAR so cleaning rules match the builtin reader.
type DuckDBSource struct {
	path   string
	format Format
}

// NewDuckDBSource creates a DuckDB-backed source.
func NewDuckDBSource(path string, format Format) *DuckDBSource {
	return &DuckDBSource{path: path, format: format}
}

// query returns the table-function query for the source format.
func (s *DuckDBSource) query() string {
	switch s.format {
	case FormatParquet:
		return "SELECT COLUMNS(*)::VARCHAR FROM read_parquet(?)"
	case FormatTSV:
		return "SELECT * FROM read_csv(?, header = true, delim = '\t', all_varchar = true)"
	default:
		return "SELECT * FROM read_csv(?, header = true, all_varchar = true)"
	}
}

// Read runs the scan and collects all rows as strings. NULL cells read as
// empty strings and are treated as missing by the cleaner.
func (s *DuckDBSource) Read(ctx context.Context) (*Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // in-memory connection

	rows, err := db.QueryContext(ctx, s.query(), s.path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.format, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	t := &Table{Header: header}
	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(t.Rows)+1, err)
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return t, nil
}

func (s *DuckDBSource) String() string {
	return s.path
}
