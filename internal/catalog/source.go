// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the on-disk layout of a catalog source.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatParquet Format = "parquet"
)

// ReaderKind selects the engine used to read a source.
type ReaderKind string

const (
	// ReaderBuiltin uses encoding/csv. It handles csv and tsv.
	ReaderBuiltin ReaderKind = "builtin"

	// ReaderDuckDB uses an in-memory DuckDB connection. It handles every
	// format, including parquet and compressed CSV.
	ReaderDuckDB ReaderKind = "duckdb"
)

// Table is a raw source read: a header row plus data rows of strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source produces the raw table for a catalog.
type Source interface {
	// Read returns the full table. Implementations honour ctx cancellation.
	Read(ctx context.Context) (*Table, error)

	// String identifies the source in logs and errors.
	String() string
}

// SourceConfig describes where and how to read a catalog.
type SourceConfig struct {
	Path   string
	Format Format
	Reader ReaderKind
}

// OpenSource returns the Source for cfg. An empty format is inferred from
// the file extension; an empty reader picks builtin for csv/tsv and duckdb
// for parquet.
func OpenSource(cfg SourceConfig) (Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("catalog path is required")
	}

	format := cfg.Format
	if format == "" {
		format = InferFormat(cfg.Path)
	}

	reader := cfg.Reader
	if reader == "" {
		reader = ReaderBuiltin
		if format == FormatParquet {
			reader = ReaderDuckDB
		}
	}

	switch reader {
	case ReaderBuiltin:
		switch format {
		case FormatCSV:
			return NewCSVSource(cfg.Path, ','), nil
		case FormatTSV:
			return NewCSVSource(cfg.Path, '\t'), nil
		default:
			return nil, fmt.Errorf("%w: builtin reader cannot read %s", ErrUnsupportedFormat, format)
		}
	case ReaderDuckDB:
		switch format {
		case FormatCSV, FormatTSV, FormatParquet:
			return NewDuckDBSource(cfg.Path, format), nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}
	default:
		return nil, fmt.Errorf("%w: reader %q", ErrUnsupportedFormat, reader)
	}
}

// InferFormat guesses the format from the file extension, defaulting to csv.
func InferFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.TrimSuffix(path, ".gz"), ".zst")))
	switch ext {
	case ".tsv", ".tab":
		return FormatTSV
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return FormatCSV
	}
}

// TableSource serves a fixed in-memory table.
type TableSource struct {
	Name  string
	Table Table
}

// Read returns a copy of the table header and the shared rows.
func (s *TableSource) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := &Table{
		Header: append([]string(nil), s.Table.Header...),
		Rows:   s.Table.Rows,
	}
	return t, nil
}

func (s *TableSource) String() string {
	if s.Name == "" {
		return "memory"
	}
	return s.Name
}
