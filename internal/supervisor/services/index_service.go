// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// IndexRebuilder rebuilds and publishes a new snapshot.
// *recommend.Engine satisfies it.
type IndexRebuilder interface {
	Rebuild(ctx context.Context) (*recommend.Snapshot, error)
}

// EventBus is the events surface the index service needs.
// *events.Bus satisfies it.
type EventBus interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	PublishCatalogChanged(ctx context.Context, reason, path string) error
	PublishIndexRebuilt(ctx context.Context, ev events.IndexRebuilt) error
}

// WatchFunc starts watching path and returns a stop function.
type WatchFunc func(path string, onChange func()) (stop func() error, err error)

// IndexServiceConfig configures the index service.
type IndexServiceConfig struct {
	// CatalogPath is reported in file change events and watched when Watch
	// is set.
	CatalogPath string

	// Watch turns catalog file writes into catalog.changed events.
	Watch bool

	// MinInterval is the minimum spacing between rebuilds. Zero disables
	// pacing.
	MinInterval time.Duration
}

// IndexService rebuilds the recommendation index on catalog.changed events.
type IndexService struct {
	engine  IndexRebuilder
	bus     EventBus
	config  IndexServiceConfig
	limiter *rate.Limiter
	watch   WatchFunc
	logger  zerolog.Logger
	name    string
}

// NewIndexService creates the index service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIndexService(engine IndexRebuilder, bus EventBus, cfg IndexServiceConfig, logger zerolog.Logger) *IndexService {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &IndexService{
		engine:  engine,
		bus:     bus,
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		watch:   config.WatchFile,
		logger:  logger.With().Str("service", "index").Logger(),
		name:    "index-service",
	}
}

// Serve implements suture.Service.
func (s *IndexService) Serve(ctx context.Context) error {
	msgs, err := s.bus.Subscribe(ctx, events.TopicCatalogChanged)
	if err != nil {
		if errors.Is(err, events.ErrClosed) {
			return suture.ErrDoNotRestart
		}
		return fmt.Errorf("subscribe %s: %w", events.TopicCatalogChanged, err)
	}

	if s.config.Watch && s.config.CatalogPath != "" {
		stop, err := s.watch(s.config.CatalogPath, s.onFileChange)
		if err != nil {
			// Manual reloads still work.
			s.logger.Warn().Err(err).Str("path", s.config.CatalogPath).Msg("catalog file watch unavailable")
		} else {
			s.logger.Info().Str("path", s.config.CatalogPath).Msg("watching catalog file")
			defer func() { _ = stop() }()
		}
	}

	s.logger.Info().
		Dur("min_interval", s.config.MinInterval).
		Msg("index service running")

	pending := make(chan string, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.receive(gctx, msgs, pending) })
	g.Go(func() error { return s.rebuildLoop(gctx, pending) })

	err = g.Wait()
	if ctx.Err() != nil {
		s.logger.Info().Msg("index service shutting down")
		return ctx.Err()
	}
	return err
}

// receive acknowledges every catalog.changed message and marks a rebuild
// pending. A rebuild already pending absorbs the event.
func (s *IndexService) receive(ctx context.Context, msgs <-chan *message.Message, pending chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return suture.ErrDoNotRestart
			}

			corrID := events.CorrelationID(msg)
			ev, err := events.DecodeCatalogChanged(msg)
			msg.Ack()
			if err != nil {
				s.logger.Warn().Err(err).Str("correlation_id", corrID).Msg("dropping malformed catalog.changed event")
				continue
			}

			select {
			case pending <- corrID:
				s.logger.Debug().
					Str("correlation_id", corrID).
					Str("reason", ev.Reason).
					Msg("index rebuild scheduled")
			default:
				s.logger.Debug().
					Str("correlation_id", corrID).
					Str("reason", ev.Reason).
					Msg("index rebuild already pending, event coalesced")
			}
		}
	}
}

func (s *IndexService) rebuildLoop(ctx context.Context, pending <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case corrID := <-pending:
			if err := s.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			s.rebuild(logging.ContextWithCorrelationID(ctx, corrID))
		}
	}
}

// rebuild runs one rebuild. Failures are logged and counted; the engine
// keeps serving the previous snapshot.
func (s *IndexService) rebuild(ctx context.Context) {
	logger := s.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()

	start := time.Now()
	snap, err := s.engine.Rebuild(ctx)
	elapsed := time.Since(start)
	metrics.RecordIndexBuild(snap, elapsed, err)

	switch {
	case errors.Is(err, recommend.ErrRebuildInProgress):
		logger.Info().Msg("index rebuild skipped, another rebuild is running")
		return
	case err != nil:
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("index rebuild failed")
		return
	}

	ev := events.IndexRebuilt{
		Version:        snap.Version,
		Entries:        snap.Catalog.Len(),
		VocabularySize: snap.VocabularySize,
		DurationMS:     elapsed.Milliseconds(),
	}
	if err := s.bus.PublishIndexRebuilt(ctx, ev); err != nil {
		logger.Warn().Err(err).Int64("version", snap.Version).Msg("failed to publish index.rebuilt")
	}
}

func (s *IndexService) onFileChange() {
	ctx := logging.ContextWithCorrelationID(context.Background(), logging.GenerateCorrelationID())
	if err := s.bus.PublishCatalogChanged(ctx, events.ReasonFileChanged, s.config.CatalogPath); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish catalog file change")
	}
}

// String names the service in supervisor logs.
func (s *IndexService) String() string {
	return s.name
}
