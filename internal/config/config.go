// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig describes the catalog source and reload behaviour.
//
// Environment Variables:
//   - CATALOG_PATH: path to the CSV, TSV or parquet file (required)
//   - CATALOG_FORMAT: csv, tsv, parquet; empty infers from the extension
//   - CATALOG_READER: builtin or duckdb; empty picks by format
//   - CATALOG_WATCH: rebuild when the file changes (default: false)
//   - CATALOG_RELOAD_MIN_INTERVAL: minimum gap between rebuilds (default: 30s)
type CatalogConfig struct {
	Path              string        `koanf:"path"`
	Format            string        `koanf:"format"`
	Reader            string        `koanf:"reader"`
	Watch             bool          `koanf:"watch"`
	ReloadMinInterval time.Duration `koanf:"reload_min_interval"`
}

// RecommendConfig holds query defaults and index build settings.
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	DefaultMinRating float64       `koanf:"default_min_rating"`
	LookaheadFactor  int           `koanf:"lookahead_factor"` // 0 = exhaustive scan
	MaxFeatures      int           `koanf:"max_features"`
	BuildWorkers     int           `koanf:"build_workers"` // 0 = GOMAXPROCS
	BuildTimeout     time.Duration `koanf:"build_timeout"`
}

// CacheConfig holds the recommendation result cache settings.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	if c.Logging.Format != "" {
		opts.Format = c.Logging.Format
	}
	opts.Caller = c.Logging.Caller
	return opts
}

// SourceConfig converts the catalog section for catalog.OpenSource.
func (c *Config) SourceConfig() catalog.SourceConfig {
	return catalog.SourceConfig{
		Path:   c.Catalog.Path,
		Format: catalog.Format(c.Catalog.Format),
		Reader: catalog.ReaderKind(c.Catalog.Reader),
	}
}

// EngineConfig converts the recommend and cache sections for
// recommend.NewEngine.
func (c *Config) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = c.Recommend.DefaultK
	cfg.Limits.MaxK = c.Recommend.MaxK
	cfg.Limits.DefaultMinRating = c.Recommend.DefaultMinRating
	cfg.Limits.LookaheadFactor = c.Recommend.LookaheadFactor
	cfg.Build.MaxFeatures = c.Recommend.MaxFeatures
	cfg.Build.Workers = c.Recommend.BuildWorkers
	cfg.Build.Timeout = c.Recommend.BuildTimeout
	cfg.Cache.Enabled = c.Cache.Enabled
	cfg.Cache.MaxEntries = c.Cache.Size
	cfg.Cache.TTL = c.Cache.TTL
	return cfg
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
