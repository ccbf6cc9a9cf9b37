// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"compress/gzip"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `tconst,primaryTitle,startYear,numVotes,averageRating,runtimeMinutes,genres,directors,writers,Title_IMDb_Link
tt0068646,The Godfather,1972,2000000,9.2,175,"Crime,Drama",nm0000338,"nm0701374,nm0000338",https://www.imdb.com/title/tt0068646
tt0071562,The Godfather Part II,1974,1300000,9.0,202,"Crime,Drama",nm0000338,"nm0000338,nm0701374",https://www.imdb.com/title/tt0071562
tt0111161,The Shawshank Redemption,1994,2800000,9.3,142,Drama,nm0001104,"nm0000175,nm0001104",https://www.imdb.com/title/tt0111161
tt9999999,,2001,10,5.0,90,Drama,nm1,nm2,https://www.imdb.com/title/tt9999999
tt0110912,Pulp Fiction,1994,2200000,8.9,154,"Crime,Drama",nm0000233,nm0000233,https://www.imdb.com/title/tt0110912
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	path := writeFile(t, "movies.csv", sampleCSV)
	c, err := Load(context.Background(), NewCSVSource(path, ','))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	if c.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", c.Skipped())
	}
	for i := 0; i < c.Len(); i++ {
		if c.Entry(i).ID != i {
			t.Errorf("Entry(%d).ID = %d", i, c.Entry(i).ID)
		}
	}
	if got := c.Entry(3).Title; got != "Pulp Fiction" {
		t.Errorf("Entry(3).Title = %q, want Pulp Fiction", got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	tests := []struct {
		name  string
		title string
		want  int
		err   error
	}{
		{"exact", "The Godfather", 0, nil},
		{"lowercase", "the godfather", 0, nil},
		{"padded", "   THE GODFATHER  ", 0, nil},
		{"sequel", "the godfather part ii", 1, nil},
		{"missing", "Casablanca", -1, ErrNotFound},
		{"blank", "   ", -1, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.Lookup(tt.title)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Lookup(%q) error = %v, want %v", tt.title, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %d, want %d", tt.title, got, tt.want)
			}
		})
	}
}

func TestLookup_DuplicateTitleFirstWins(t *testing.T) {
	t.Parallel()

	c, err := New("dupes", []Entry{
		{Title: "Solaris", Rating: 8.1, Rated: true},
		{Title: "Heat", Rating: 8.3, Rated: true},
		{Title: "solaris ", Rating: 6.2, Rated: true},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	idx, err := c.Lookup("SOLARIS")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("Lookup() = %d, want 0 (first in catalog order)", idx)
	}
}

func TestRatingAt_UnratedIsNaN(t *testing.T) {
	t.Parallel()

	c, err := New("ratings", []Entry{
		{Title: "Rated", Rating: 6.5, Rated: true},
		{Title: "Unrated"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := c.RatingAt(0); got != 6.5 {
		t.Errorf("RatingAt(0) = %v, want 6.5", got)
	}
	if got := c.RatingAt(1); !math.IsNaN(got) {
		t.Errorf("RatingAt(1) = %v, want NaN for an unrated entry", got)
	}
	if got := c.Entry(1).Rating; got != 0 {
		t.Errorf("Entry(1).Rating = %v, want 0", got)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New("empty", nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("New(nil) error = %v, want ErrEmptyCatalog", err)
	}
	if _, err := New("blank", []Entry{{Title: "  "}}); err == nil {
		t.Error("New() with blank title error = nil, want error")
	}
}

func TestLoad_DataLoadError(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), ','))
		var dle *DataLoadError
		if !errors.As(err, &dle) {
			t.Fatalf("Load() error = %v, want *DataLoadError", err)
		}
		if dle.Op != "read" {
			t.Errorf("Op = %q, want read", dle.Op)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load() error does not wrap os.ErrNotExist: %v", err)
		}
	})

	t.Run("no title column", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.csv", "tconst,genres\ntt1,Drama\n")
		_, err := Load(context.Background(), NewCSVSource(path, ','))
		if !IsDataLoadError(err) || !errors.Is(err, ErrNoTitleColumn) {
			t.Errorf("Load() error = %v, want DataLoadError wrapping ErrNoTitleColumn", err)
		}
	})

	t.Run("malformed rating", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.csv", "primaryTitle,averageRating\nA,8\nB,great\n")
		_, err := Load(context.Background(), NewCSVSource(path, ','))
		var dle *DataLoadError
		if !errors.As(err, &dle) {
			t.Fatalf("Load() error = %v, want *DataLoadError", err)
		}
		if dle.Op != "parse" || dle.Row != 2 {
			t.Errorf("DataLoadError = %+v, want parse at row 2", dle)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "empty.csv", "")
		if _, err := Load(context.Background(), NewCSVSource(path, ',')); !IsDataLoadError(err) {
			t.Errorf("Load() error = %v, want DataLoadError", err)
		}
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "header.csv", "primaryTitle,genres\n")
		_, err := Load(context.Background(), NewCSVSource(path, ','))
		if !IsDataLoadError(err) || !errors.Is(err, ErrEmptyCatalog) {
			t.Errorf("Load() error = %v, want DataLoadError wrapping ErrEmptyCatalog", err)
		}
	})
}

func TestLoad_TSVAndGzip(t *testing.T) {
	t.Parallel()

	tsv := "primaryTitle\tstartYear\taverageRating\tgenres\nAlien\t1979\t8.5\tHorror,Sci-Fi\n"

	t.Run("tsv", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "movies.tsv", tsv)
		src, err := OpenSource(SourceConfig{Path: path})
		if err != nil {
			t.Fatalf("OpenSource() error = %v", err)
		}
		c, err := Load(context.Background(), src)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Entry(0).GenreString() != "Horror Sci-Fi" {
			t.Errorf("GenreString() = %q", c.Entry(0).GenreString())
		}
	})

	t.Run("gzip", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "movies.tsv.gz")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		gz := gzip.NewWriter(f)
		if _, err := gz.Write([]byte(tsv)); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		src, err := OpenSource(SourceConfig{Path: path})
		if err != nil {
			t.Fatalf("OpenSource() error = %v", err)
		}
		c, err := Load(context.Background(), src)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c.Len() != 1 || c.Entry(0).Title != "Alien" {
			t.Errorf("loaded %d entries, first %q", c.Len(), c.Entry(0).Title)
		}
	})
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &TableSource{Table: Table{Header: []string{"title"}, Rows: [][]string{{"A"}}}}
	if _, err := Load(ctx, src); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestOpenSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     SourceConfig
		want    string
		wantErr bool
	}{
		{"csv default", SourceConfig{Path: "a.csv"}, "*catalog.CSVSource", false},
		{"parquet picks duckdb", SourceConfig{Path: "a.parquet"}, "*catalog.DuckDBSource", false},
		{"duckdb csv", SourceConfig{Path: "a.csv", Reader: ReaderDuckDB}, "*catalog.DuckDBSource", false},
		{"builtin parquet", SourceConfig{Path: "a.parquet", Reader: ReaderBuiltin}, "", true},
		{"unknown reader", SourceConfig{Path: "a.csv", Reader: "spark"}, "", true},
		{"no path", SourceConfig{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, err := OpenSource(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := typeName(src); got != tt.want {
				t.Errorf("OpenSource() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(src Source) string {
	switch src.(type) {
	case *CSVSource:
		return "*catalog.CSVSource"
	case *DuckDBSource:
		return "*catalog.DuckDBSource"
	default:
		return "other"
	}
}

func TestPopular(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	got := c.Popular(2)
	if len(got) != 2 || got[0] != "The Godfather" || got[1] != "The Godfather Part II" {
		t.Errorf("Popular(2) = %v", got)
	}
	if n := len(c.Popular(0)); n != 4 {
		t.Errorf("len(Popular(0)) = %d, want 4 (default capped by catalog size)", n)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"the god", 10, []string{"The Godfather", "The Godfather Part II"}},
		{"  THE ", 10, []string{"The Godfather", "The Godfather Part II", "The Shawshank Redemption"}},
		{"the", 1, []string{"The Godfather"}},
		{"pulp", 0, []string{"Pulp Fiction"}},
		{"zzz", 10, nil},
		{"", 10, nil},
	}

	for _, tt := range tests {
		got := c.Suggest(tt.prefix, tt.limit)
		if len(got) != len(tt.want) {
			t.Errorf("Suggest(%q) = %v, want %v", tt.prefix, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].Title != tt.want[i] {
				t.Errorf("Suggest(%q)[%d] = %q, want %q", tt.prefix, i, got[i].Title, tt.want[i])
			}
		}
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	c := loadSample(t)
	s := c.Stats()

	if s.Entries != 4 {
		t.Errorf("Entries = %d, want 4", s.Entries)
	}
	// (9.2 + 9.0 + 9.3 + 8.9) / 4 = 9.1
	if s.MeanRating != 9.1 {
		t.Errorf("MeanRating = %v, want 9.1", s.MeanRating)
	}
	if s.MinYear == nil || *s.MinYear != 1972 || s.MaxYear == nil || *s.MaxYear != 1994 {
		t.Errorf("year range = %v-%v, want 1972-1994", s.MinYear, s.MaxYear)
	}
	if len(s.TopGenres) != 2 {
		t.Fatalf("TopGenres = %v, want 2 genres", s.TopGenres)
	}
	if s.TopGenres[0] != (GenreCount{Genre: "Drama", Count: 4}) {
		t.Errorf("TopGenres[0] = %+v, want Drama:4", s.TopGenres[0])
	}
	if s.TopGenres[1] != (GenreCount{Genre: "Crime", Count: 3}) {
		t.Errorf("TopGenres[1] = %+v, want Crime:3", s.TopGenres[1])
	}
	if s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}
}

func TestTopGenres_TieBreak(t *testing.T) {
	t.Parallel()

	got := topGenres(map[string]int{"Western": 2, "Comedy": 2, "Drama": 5, "Action": 1}, 3)
	want := []GenreCount{{"Drama", 5}, {"Comedy", 2}, {"Western", 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topGenres()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
