// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Lookup when no entry matches the title.
	ErrNotFound = errors.New("title not found in catalog")

	// ErrNoTitleColumn indicates the source has no title column.
	ErrNoTitleColumn = errors.New("source has no title column")

	// ErrEmptyCatalog indicates the source produced no usable rows.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrUnsupportedFormat indicates an unknown source format or reader.
	ErrUnsupportedFormat = errors.New("unsupported catalog source format")
)

// DataLoadError reports a catalog source that could not be read or parsed.
// It is fatal at startup; on a rebuild the previous catalog stays live.
type DataLoadError struct {
	// Source identifies the catalog source, usually a file path.
	Source string

	// Op is the stage that failed: open, read, header, parse.
	Op string

	// Row is the 1-based data row for parse failures, 0 otherwise.
	Row int

	Err error
}

func (e *DataLoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("catalog %s: %s row %d: %v", e.Source, e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("catalog %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// IsDataLoadError reports whether err is or wraps a *DataLoadError.
func IsDataLoadError(err error) bool {
	var dle *DataLoadError
	return errors.As(err, &dle)
}
