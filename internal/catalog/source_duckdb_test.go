// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"testing"
)

func TestDuckDBSource_CSVMatchesBuiltin(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "movies.csv", sampleCSV)

	builtin, err := Load(context.Background(), NewCSVSource(path, ','))
	if err != nil {
		t.Fatalf("builtin Load() error = %v", err)
	}

	duck, err := Load(context.Background(), NewDuckDBSource(path, FormatCSV))
	if err != nil {
		t.Fatalf("duckdb Load() error = %v", err)
	}

	if duck.Len() != builtin.Len() {
		t.Fatalf("duckdb Len() = %d, builtin Len() = %d", duck.Len(), builtin.Len())
	}
	for i := 0; i < builtin.Len(); i++ {
		if got, want := duck.Entry(i).Feature, builtin.Entry(i).Feature; got != want {
			t.Errorf("entry %d feature = %q, want %q", i, got, want)
		}
	}
}

func TestDuckDBSource_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), NewDuckDBSource("/nonexistent/movies.parquet", FormatParquet))
	if !IsDataLoadError(err) {
		t.Errorf("Load() error = %v, want DataLoadError", err)
	}
}
