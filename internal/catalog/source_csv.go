// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 4096

// CSVSource reads a delimited text file with a header row.
type CSVSource struct {
	path  string
	comma rune
}

// NewCSVSource creates a source for path using the given field delimiter.
// Files ending in .gz are decompressed transparently.
func NewCSVSource(path string, comma rune) *CSVSource {
	return &CSVSource{path: path, comma: comma}
}

// Read parses the whole file.
func (s *CSVSource) Read(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(s.path), ".gz") {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return nil, fmt.Errorf("gzip: %w", gzErr)
		}
		defer gz.Close() //nolint:errcheck // read-only stream
		r = gz
	}

	return readDelimited(ctx, r, s.comma)
}

func (s *CSVSource) String() string {
	return s.path
}

// readDelimited reads a header plus rows. Ragged rows are allowed; short
// rows read as missing values.
func readDelimited(ctx context.Context, r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("header: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("header: %w", err)
	}

	t := &Table{Header: header}
	for n := 1; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
