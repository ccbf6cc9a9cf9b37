// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

var testHeader = []string{"primaryTitle", "startYear", "averageRating", "runtimeMinutes", "genres", "directors", "writers"}

var testRows = [][]string{
	{"The Godfather", "1972", "9.2", "175", "Crime,Drama", "nm0000338", "nm0701374,nm0000338"},
	{"The Godfather Part II", "1974", "9.0", "202", "Crime,Drama", "nm0000338", "nm0000338,nm0701374"},
	{"The Matrix", "1999", "8.7", "136", "Action,Sci-Fi", "nm0905154,nm0905152", "nm0905152,nm0905154"},
	{"The Matrix Reloaded", "2003", "7.2", "138", "Action,Sci-Fi", "nm0905154,nm0905152", "nm0905152,nm0905154"},
	{"Annie Hall", "1977", "8.0", "93", "Comedy,Romance", "nm0000095", "nm0000095"},
	{"Goodfellas", "1990", "8.7", "146", "Biography,Crime,Drama", "nm0000217", "nm0707425,nm0000217"},
	{"Mob Sequel", "1980", "4.0", "90", "Crime,Drama", "nm0000338", "nm0701374"},
}

func testSource() *catalog.TableSource {
	return &catalog.TableSource{
		Name:  "test",
		Table: catalog.Table{Header: testHeader, Rows: testRows},
	}
}

func newTestEngine(t *testing.T, cfg *Config, src catalog.Source) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, src, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func newReadyEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e := newTestEngine(t, cfg, testSource())
	if _, err := e.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		e := newTestEngine(t, nil, testSource())
		if !reflect.DeepEqual(e.Config(), DefaultConfig()) {
			t.Errorf("Config() = %+v, want defaults", e.Config())
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.DefaultK = 0
		if _, err := NewEngine(cfg, testSource(), zerolog.Nop()); err == nil {
			t.Error("NewEngine() error = nil, want error")
		}
	})

	t.Run("not ready before first build", func(t *testing.T) {
		t.Parallel()
		e := newTestEngine(t, nil, testSource())
		if e.Ready() {
			t.Error("Ready() = true before Rebuild")
		}
		_, err := e.Recommend(context.Background(), Request{Title: "The Matrix", K: 3})
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("Recommend() error = %v, want ErrNotReady", err)
		}
	})
}

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()

	t.Run("case and whitespace insensitive title", func(t *testing.T) {
		t.Parallel()
		resp, err := e.Recommend(ctx, Request{Title: "  the godfather ", K: 3, MinRating: 7.0})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Query != "The Godfather" {
			t.Errorf("Query = %q, want %q", resp.Query, "The Godfather")
		}
		if len(resp.Items) == 0 || resp.Items[0].Title != "The Godfather Part II" {
			t.Fatalf("Items = %+v, want The Godfather Part II first", resp.Items)
		}
		first := resp.Items[0]
		if first.Director != "nm0000338" || first.Year == nil || *first.Year != 1974 {
			t.Errorf("first = %+v", first)
		}
		for _, item := range resp.Items {
			if item.Title == "Mob Sequel" {
				t.Error("low rated entry passed the filter")
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := e.Recommend(ctx, Request{Title: "Casablanca", K: 3, MinRating: 7.0})
		if !errors.Is(err, ErrNotFound) || !errors.Is(err, catalog.ErrNotFound) {
			t.Errorf("Recommend() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("filter above every candidate", func(t *testing.T) {
		t.Parallel()
		_, err := e.Recommend(ctx, Request{Title: "The Godfather", K: 3, MinRating: 9.5})
		if !errors.Is(err, ErrEmpty) {
			t.Errorf("Recommend() error = %v, want ErrEmpty", err)
		}
		if errors.Is(err, ErrNotFound) {
			t.Error("ErrEmpty must not match ErrNotFound")
		}
	})

	t.Run("invalid requests", func(t *testing.T) {
		t.Parallel()
		for _, req := range []Request{{Title: " ", K: 3}, {Title: "The Matrix", K: 0}} {
			if _, err := e.Recommend(ctx, req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Recommend(%+v) error = %v, want ErrInvalidRequest", req, err)
			}
		}
	})

	t.Run("k clamped to max", func(t *testing.T) {
		t.Parallel()
		resp, err := e.Recommend(ctx, Request{Title: "The Matrix", K: 1000})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.K != DefaultConfig().Limits.MaxK {
			t.Errorf("K = %d, want %d", resp.Metadata.K, DefaultConfig().Limits.MaxK)
		}
	})
}

func TestEngine_Recommend_ResultsDoNotAliasCatalog(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	req := Request{Title: "The Godfather", K: 1, MinRating: 7.0}

	resp, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	item := resp.Items[0]
	if item.Year == nil || len(item.Genres) == 0 {
		t.Fatalf("item = %+v, want year and genres", item)
	}
	item.Genres[0] = "Mutated"
	*item.Year = 1

	entry := e.Snapshot().Catalog.Entry(item.ID)
	if !reflect.DeepEqual(entry.Genres, []string{"Crime", "Drama"}) || *entry.Year != 1974 {
		t.Errorf("catalog entry changed: genres=%v year=%d", entry.Genres, *entry.Year)
	}

	cached, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !cached.Metadata.CacheHit {
		t.Fatal("second call missed the cache")
	}
	got := cached.Items[0]
	if !reflect.DeepEqual(got.Genres, []string{"Crime", "Drama"}) || *got.Year != 1974 {
		t.Errorf("cached item changed: genres=%v year=%d", got.Genres, *got.Year)
	}

	got.Genres[1] = "Mutated"
	again, _ := e.Recommend(context.Background(), req)
	if again.Items[0].Genres[1] != "Drama" {
		t.Error("cache hits share Genres with callers")
	}
}

func TestEngine_Recommend_SkipsUnrated(t *testing.T) {
	t.Parallel()

	src := &catalog.TableSource{
		Name: "unrated",
		Table: catalog.Table{Header: testHeader, Rows: [][]string{
			{"Query", "1990", "8.0", "120", "Crime,Drama", "nm1", "nm2"},
			{"Unrated Twin", "1990", "", "120", "Crime,Drama", "nm1", "nm2"},
			{"Rated", "2001", "6.0", "95", "Comedy", "nm3", "nm4"},
		}},
	}
	e := newTestEngine(t, nil, src)
	if _, err := e.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	resp, err := e.Recommend(context.Background(), Request{Title: "Query", K: 2, MinRating: 0})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "Rated" {
		t.Errorf("Items = %+v, want only Rated", resp.Items)
	}
}

func TestEngine_Recommend_Properties(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newReadyEngine(t, cfg)

	for _, row := range testRows {
		title := row[0]
		for _, k := range []int{1, 2, 5} {
			for _, minRating := range []float64{0, 7.0, 8.5} {
				resp, err := e.Recommend(context.Background(), Request{Title: title, K: k, MinRating: minRating})
				if errors.Is(err, ErrEmpty) {
					continue
				}
				if err != nil {
					t.Fatalf("Recommend(%q) error = %v", title, err)
				}
				if len(resp.Items) > k {
					t.Errorf("Recommend(%q, k=%d) returned %d items", title, k, len(resp.Items))
				}
				for _, item := range resp.Items {
					if item.Title == title {
						t.Errorf("Recommend(%q) included itself", title)
					}
					if item.Rating < minRating {
						t.Errorf("Recommend(%q) item %q rating %v < %v", title, item.Title, item.Rating, minRating)
					}
					if item.SimilarityScore < 0 || item.SimilarityScore > 1 {
						t.Errorf("score %v out of range", item.SimilarityScore)
					}
				}
			}
		}
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	a := newReadyEngine(t, cfg)
	b := newReadyEngine(t, cfg)

	req := Request{Title: "Goodfellas", K: 5, MinRating: 0}
	first, err := a.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, e := range []*Engine{a, b} {
		again, err := e.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !reflect.DeepEqual(first.Items, again.Items) {
			t.Errorf("Items differ:\n%+v\n%+v", first.Items, again.Items)
		}
	}
}

// With k=1 and min_rating 9.0 the only qualifying neighbour of The Matrix
// sits far down the ranking: the default 2k bound gives up, a full scan
// finds it.
func TestEngine_Recommend_LookaheadOptions(t *testing.T) {
	t.Parallel()

	req := Request{Title: "The Matrix", K: 1, MinRating: 9.0}

	bounded := newReadyEngine(t, nil)
	if _, err := bounded.Recommend(context.Background(), req); !errors.Is(err, ErrEmpty) {
		t.Errorf("bounded Recommend() error = %v, want ErrEmpty", err)
	}

	cfg := DefaultConfig()
	cfg.Limits.LookaheadFactor = 0
	exhaustive := newReadyEngine(t, cfg)
	resp, err := exhaustive.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("exhaustive Recommend() error = %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Rating < 9.0 {
		t.Errorf("exhaustive Items = %+v", resp.Items)
	}
}

func TestEngine_Recommend_Cache(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	req := Request{Title: "The Matrix", K: 2, MinRating: 7.0}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first call reported a cache hit")
	}

	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second call missed the cache")
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Error("cached items differ")
	}

	second.Items[0].Title = "mutated"
	third, _ := e.Recommend(context.Background(), req)
	if third.Items[0].Title == "mutated" {
		t.Error("cache shares Items with callers")
	}

	if _, err := e.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	after, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if after.Metadata.CacheHit {
		t.Error("cache survived a snapshot swap")
	}

	st := e.Status()
	if st.CacheHits != 2 || st.CacheMisses != 2 {
		t.Errorf("cache hits/misses = %d/%d, want 2/2", st.CacheHits, st.CacheMisses)
	}
}

// switchSource fails or blocks on demand.
type switchSource struct {
	mu      sync.Mutex
	fail    error
	entered chan struct{}
	release chan struct{}
}

func (s *switchSource) Read(ctx context.Context) (*catalog.Table, error) {
	s.mu.Lock()
	fail, entered, release := s.fail, s.entered, s.release
	s.mu.Unlock()

	if entered != nil {
		close(entered)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}
	return testSource().Read(ctx)
}

func (s *switchSource) String() string { return "switch" }

func TestEngine_Rebuild_FailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	src := &switchSource{}
	e := newTestEngine(t, nil, src)

	first, err := e.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	src.mu.Lock()
	src.fail = &catalog.DataLoadError{Source: "switch", Op: "read", Err: errors.New("disk gone")}
	src.mu.Unlock()

	_, err = e.Rebuild(context.Background())
	if !catalog.IsDataLoadError(err) {
		t.Fatalf("Rebuild() error = %v, want DataLoadError", err)
	}
	if e.Snapshot() != first {
		t.Error("failed rebuild replaced the snapshot")
	}
	st := e.Status()
	if st.Version != 1 || st.LastError == "" {
		t.Errorf("Status() = %+v, want version 1 with last error", st)
	}
	if _, err := e.Recommend(context.Background(), Request{Title: "The Matrix", K: 2}); err != nil {
		t.Errorf("Recommend() after failed rebuild error = %v", err)
	}
}

func TestEngine_Rebuild_InProgress(t *testing.T) {
	t.Parallel()

	src := &switchSource{entered: make(chan struct{}), release: make(chan struct{})}
	e := newTestEngine(t, nil, src)

	done := make(chan error, 1)
	go func() {
		_, err := e.Rebuild(context.Background())
		done <- err
	}()

	select {
	case <-src.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild never started")
	}

	if !e.Status().Rebuilding {
		t.Error("Status().Rebuilding = false during rebuild")
	}
	if _, err := e.Rebuild(context.Background()); !errors.Is(err, ErrRebuildInProgress) {
		t.Errorf("second Rebuild() error = %v, want ErrRebuildInProgress", err)
	}
	if _, err := e.Recommend(context.Background(), Request{Title: "The Matrix", K: 2}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Recommend() during first build error = %v, want ErrNotReady", err)
	}

	close(src.release)
	if err := <-done; err != nil {
		t.Fatalf("first Rebuild() error = %v", err)
	}
	if !e.Ready() {
		t.Error("Ready() = false after rebuild")
	}
}

func TestEngine_HotSwap(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	old := e.Snapshot()

	cat, err := catalog.New("swap", []catalog.Entry{
		{Title: "Alpha", Genres: []string{"Drama"}, Rating: 8, Rated: true},
		{Title: "Beta", Genres: []string{"Drama"}, Rating: 8, Rated: true},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	snap, err := BuildSnapshot(context.Background(), cat, DefaultConfig().Build)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	// Readers holding the old snapshot keep a consistent view.
	if _, err := old.Recommend(Request{Title: "The Matrix", K: 2}, 2); err != nil {
		t.Fatalf("old.Recommend() error = %v", err)
	}

	if err := e.Publish(snap); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if e.Snapshot().Version != old.Version+1 {
		t.Errorf("Version = %d, want %d", e.Snapshot().Version, old.Version+1)
	}

	if _, err := e.Recommend(context.Background(), Request{Title: "The Matrix", K: 2}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Recommend() on new snapshot error = %v, want ErrNotFound", err)
	}
	resp, err := e.Recommend(context.Background(), Request{Title: "alpha", K: 2, MinRating: 7})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "Beta" || resp.Metadata.SnapshotVersion != snap.Version {
		t.Errorf("Recommend() = %+v", resp)
	}
}

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	st := e.Status()
	if !st.Ready || st.Version != 1 || st.Entries != len(testRows) {
		t.Errorf("Status() = %+v", st)
	}
	if st.VocabularySize == 0 || st.MatrixBytes == 0 {
		t.Errorf("Status() vocabulary=%d matrix=%d, want non-zero", st.VocabularySize, st.MatrixBytes)
	}
	if st.Source != "test" {
		t.Errorf("Source = %q, want test", st.Source)
	}
	if st.ErrorCount != 0 {
		t.Errorf("ErrorCount = %d, want 0", st.ErrorCount)
	}

	ctx := context.Background()
	_, _ = e.Recommend(ctx, Request{Title: "Casablanca", K: 2})
	_, _ = e.Recommend(ctx, Request{Title: "The Godfather", K: 2, MinRating: 9.9})
	if _, err := e.Recommend(ctx, Request{Title: "The Matrix", K: 2}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := e.Status().ErrorCount; got != 2 {
		t.Errorf("ErrorCount = %d, want 2", got)
	}
}

func TestEngine_Publish_RejectsPublishedSnapshot(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	live := e.Snapshot()

	if err := e.Publish(live); !errors.Is(err, ErrSnapshotPublished) {
		t.Errorf("Publish(live) error = %v, want ErrSnapshotPublished", err)
	}
	if e.Snapshot() != live || live.Version != 1 {
		t.Errorf("snapshot changed: version %d", e.Snapshot().Version)
	}
	if err := e.Publish(nil); err == nil {
		t.Error("Publish(nil) error = nil, want error")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults", func(*Config) {}, false},
		{"exhaustive lookahead", func(c *Config) { c.Limits.LookaheadFactor = 0 }, false},
		{"negative lookahead", func(c *Config) { c.Limits.LookaheadFactor = -1 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxK = 2 }, true},
		{"min rating out of range", func(c *Config) { c.Limits.DefaultMinRating = 11 }, true},
		{"zero features", func(c *Config) { c.Build.MaxFeatures = 0 }, true},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }, true},
		{"zero timeout", func(c *Config) { c.Build.Timeout = 0 }, true},
		{"cache size zero", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
		{"cache disabled ignores size", func(c *Config) { c.Cache.Enabled = false; c.Cache.MaxEntries = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
