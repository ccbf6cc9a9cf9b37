// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Recommender is the engine surface the handlers need.
// *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Snapshot() *recommend.Snapshot
	Ready() bool
	Status() recommend.Status
	Config() *recommend.Config
}

// EventPublisher publishes catalog change requests. *events.Bus satisfies it.
type EventPublisher interface {
	PublishCatalogChanged(ctx context.Context, reason, path string) error
}

// Handler serves the HTTP API.
type Handler struct {
	engine    Recommender
	publisher EventPublisher
	catalog   string
	startTime time.Time
}

// NewHandler creates a Handler. publisher may be nil, in which case reload
// answers 503. catalogPath is reported in reload events.
func NewHandler(engine Recommender, publisher EventPublisher, catalogPath string) *Handler {
	return &Handler{
		engine:    engine,
		publisher: publisher,
		catalog:   catalogPath,
		startTime: time.Now(),
	}
}

// writeRequestError renders a query parsing or validation failure as 400.
func writeRequestError(rw *ResponseWriter, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	var perr *paramError
	if errors.As(err, &perr) {
		rw.ValidationError(perr.Error(), perr.details())
		return
	}
	rw.BadRequest(err.Error())
}
