// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// initEngine opens the catalog source and builds the first snapshot.
func initEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	src, err := catalog.OpenSource(cfg.SourceConfig())
	if err != nil {
		return nil, fmt.Errorf("open catalog source: %w", err)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), src, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	start := time.Now()
	snap, err := engine.Rebuild(ctx)
	metrics.RecordIndexBuild(snap, time.Since(start), err)
	if err != nil {
		if catalog.IsDataLoadError(err) {
			return nil, fmt.Errorf("catalog %s unreadable: %w", src, err)
		}
		return nil, err
	}

	logging.Info().
		Int64("version", snap.Version).
		Int("entries", snap.Catalog.Len()).
		Int("skipped_rows", snap.Catalog.Skipped()).
		Int("vocabulary", snap.VocabularySize).
		Dur("duration", snap.BuildDuration).
		Msg("Recommendation index ready")

	return engine, nil
}

func initEventBus() *events.Bus {
	return events.NewBus(events.DefaultBufferSize, watermill.NewSlogLogger(logging.NewSlogLogger()))
}

// newHTTPServer builds the API server. Write timeout leaves room for the
// slowest query path; reads are small query strings.
func newHTTPServer(cfg *config.Config, engine *recommend.Engine, bus *events.Bus) *http.Server {
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	))
	handler := api.NewHandler(engine, bus, cfg.Catalog.Path)
	router := api.NewRouter(handler, mw)

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
}

// initSupervisor assembles the supervisor tree: the index service in the
// index layer and the HTTP server in the API layer.
func initSupervisor(cfg *config.Config, engine *recommend.Engine, bus *events.Bus) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return nil, err
	}

	tree.AddIndexService(services.NewIndexService(engine, bus, services.IndexServiceConfig{
		CatalogPath: cfg.Catalog.Path,
		Watch:       cfg.Catalog.Watch,
		MinInterval: cfg.Catalog.ReloadMinInterval,
	}, logging.WithComponent("index")))

	tree.AddAPIService(services.NewHTTPServerService(newHTTPServer(cfg, engine, bus), services.DefaultShutdownTimeout))

	return tree, nil
}
