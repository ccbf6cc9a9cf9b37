// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Engine owns the current Snapshot and answers queries from it.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger
	source catalog.Source

	// Current index; swapped whole on a successful rebuild.
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Int64

	// Rebuild state
	rebuildMu  sync.Mutex
	rebuilding atomic.Bool
	lastErr    atomic.Pointer[string]

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
	rebuildCount atomic.Int64

	// Cache; nil when disabled.
	cache *expirable.LRU[string, *Response]
}

// NewEngine creates an engine reading its catalog from src. No snapshot
// exists until the first successful Rebuild (or Publish).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, src catalog.Source, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		source: src,
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *Response](cfg.Cache.MaxEntries, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// Recommend returns up to K entries similar to req.Title.
//
// Errors are ErrInvalidRequest, ErrNotReady, ErrNotFound and ErrEmpty; test
// with errors.Is.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)

	snap := e.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}

	key := cacheKey(snap.Version, req)
	if resp := e.tryGetCachedResponse(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	resp, err := snap.Recommend(req, e.config.Limits.LookaheadFactor)
	if err != nil {
		e.errorCount.Add(1)
		logger.Debug().Err(err).Msg("no recommendations")
		return nil, err
	}

	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	e.cacheResponse(key, resp)

	logger.Debug().
		Str("query", resp.Query).
		Int("examined", resp.Metadata.Examined).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest clamps K to MaxK.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Int("k", req.K).
		Float64("min_rating", req.MinRating).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return resp
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache != nil {
		e.cache.Add(key, copyResponse(resp))
	}
}

// copyResponse returns a deep copy; no item shares Genres or Year with resp.
func copyResponse(resp *Response) *Response {
	items := make([]Recommendation, len(resp.Items))
	for i := range resp.Items {
		items[i] = resp.Items[i].clone()
	}
	cp := *resp
	cp.Items = items
	return &cp
}

// cacheKey includes the snapshot version so a swap invalidates old entries.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func cacheKey(version int64, req Request) string {
	return fmt.Sprintf("rec:%d:%s:%d:%g", version, catalog.NormalizeTitle(req.Title), req.K, req.MinRating)
}

// Rebuild loads the catalog, builds a new snapshot and swaps it in. On any
// failure the current snapshot stays live. Concurrent calls do not queue:
// the loser gets ErrRebuildInProgress.
func (e *Engine) Rebuild(ctx context.Context) (*Snapshot, error) {
	if !e.rebuildMu.TryLock() {
		return nil, ErrRebuildInProgress
	}
	defer e.rebuildMu.Unlock()

	if e.source == nil {
		return nil, fmt.Errorf("rebuild: no catalog source configured")
	}

	e.rebuilding.Store(true)
	defer e.rebuilding.Store(false)

	start := time.Now()
	e.logger.Info().Str("source", e.source.String()).Msg("starting index rebuild")

	buildCtx, cancel := context.WithTimeout(ctx, e.config.Build.Timeout)
	defer cancel()

	snap, err := e.build(buildCtx)
	if err != nil {
		msg := err.Error()
		e.lastErr.Store(&msg)
		e.logger.Error().
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("index rebuild failed, keeping previous snapshot")
		return nil, err
	}

	e.publish(snap)

	e.logger.Info().
		Int64("version", snap.Version).
		Int("entries", snap.Catalog.Len()).
		Int("skipped_rows", snap.Catalog.Skipped()).
		Int("vocabulary", snap.VocabularySize).
		Int64("matrix_bytes", snap.Matrix.Bytes()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("index rebuild complete")

	return snap, nil
}

func (e *Engine) build(ctx context.Context) (*Snapshot, error) {
	cat, err := catalog.Load(ctx, e.source)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return BuildSnapshot(ctx, cat, e.config.Build)
}

// Publish installs a snapshot built elsewhere, e.g. by BuildSnapshot, and
// assigns it the next version. Version is written only here, before the
// snapshot becomes visible, so a snapshot that already has one is rejected
// with ErrSnapshotPublished.
func (e *Engine) Publish(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("publish: nil snapshot")
	}

	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	if snap.Version != 0 {
		return fmt.Errorf("%w: version %d", ErrSnapshotPublished, snap.Version)
	}
	e.publish(snap)
	return nil
}

func (e *Engine) publish(snap *Snapshot) {
	snap.Version = e.version.Add(1)
	e.snapshot.Store(snap)
	e.rebuildCount.Add(1)
	e.lastErr.Store(nil)
	if e.cache != nil {
		e.cache.Purge()
	}
}

// Snapshot returns the current snapshot, or nil before the first build.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Ready reports whether a snapshot is being served.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Status returns the current index and engine state.
func (e *Engine) Status() Status {
	st := Status{
		Rebuilding:   e.rebuilding.Load(),
		RequestCount: e.requestCount.Load(),
		ErrorCount:   e.errorCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		RebuildCount: e.rebuildCount.Load(),
	}
	if e.source != nil {
		st.Source = e.source.String()
	}
	if msg := e.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	if e.cache != nil {
		st.CacheSize = e.cache.Len()
	}

	snap := e.snapshot.Load()
	if snap == nil {
		return st
	}
	st.Ready = true
	st.Version = snap.Version
	st.BuiltAt = snap.BuiltAt
	st.BuildDurationMS = snap.BuildDuration.Milliseconds()
	st.Entries = snap.Catalog.Len()
	st.VocabularySize = snap.VocabularySize
	st.MatrixBytes = snap.Matrix.Bytes()
	return st
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
