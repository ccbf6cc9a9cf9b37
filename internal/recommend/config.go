// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend/vectorize"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains query parameters and bounds.
	Limits LimitsConfig `json:"limits"`

	// Build contains index build parameters.
	Build BuildConfig `json:"build"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains query defaults and bounds.
type LimitsConfig struct {
	// DefaultK is the number of recommendations when the caller gives none.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the largest K served. Larger requests are clamped.
	// Default: 10.
	MaxK int `json:"max_k"`

	// DefaultMinRating is the rating filter when the caller gives none.
	// Default: 7.0.
	DefaultMinRating float64 `json:"default_min_rating"`

	// LookaheadFactor bounds the scan to LookaheadFactor*K ranked
	// candidates. 0 scans the whole ranking.
	// Default: 2.
	LookaheadFactor int `json:"lookahead_factor"`
}

// BuildConfig contains index build parameters.
type BuildConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary.
	// Default: 50000.
	MaxFeatures int `json:"max_features"`

	// Workers bounds concurrent similarity rows. 0 uses GOMAXPROCS.
	// Default: 0.
	Workers int `json:"workers"`

	// Timeout is the maximum time allowed for one rebuild.
	// Default: 10m.
	Timeout time.Duration `json:"timeout"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK:         5,
			MaxK:             10,
			DefaultMinRating: 7.0,
			LookaheadFactor:  2,
		},
		Build: BuildConfig{
			MaxFeatures: vectorize.DefaultMaxFeatures,
			Workers:     0,
			Timeout:     10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.DefaultMinRating < 0 || c.Limits.DefaultMinRating > 10 {
		return fmt.Errorf("limits.default_min_rating must be in [0, 10], got %f", c.Limits.DefaultMinRating)
	}
	if c.Limits.LookaheadFactor < 0 {
		return fmt.Errorf("limits.lookahead_factor must be non-negative, got %d", c.Limits.LookaheadFactor)
	}

	if c.Build.MaxFeatures < 1 {
		return fmt.Errorf("build.max_features must be positive, got %d", c.Build.MaxFeatures)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must be non-negative, got %d", c.Build.Workers)
	}
	if c.Build.Timeout <= 0 {
		return fmt.Errorf("build.timeout must be positive, got %v", c.Build.Timeout)
	}

	if c.Cache.Enabled {
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	cp := *c
	return &cp
}
