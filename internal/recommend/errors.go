// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/cinematch/internal/catalog"
)

var (
	// ErrNotFound means the query title is not in the catalog.
	// errors.Is(ErrNotFound, catalog.ErrNotFound) holds.
	ErrNotFound = fmt.Errorf("recommend: %w", catalog.ErrNotFound)

	// ErrEmpty means no candidate passed the rating filter within the
	// lookahead bound. It is an expected outcome, not a failure.
	ErrEmpty = errors.New("no recommendations passed the filter")

	// ErrInvalidRequest means the request is malformed (empty title, K < 1).
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrNotReady means no snapshot has been built yet.
	ErrNotReady = errors.New("recommendation index not ready")

	// ErrRebuildInProgress is returned by Rebuild when another rebuild holds
	// the lock.
	ErrRebuildInProgress = errors.New("index rebuild already in progress")

	// ErrSnapshotPublished is returned by Publish for a snapshot that already
	// carries a version. A snapshot is published at most once.
	ErrSnapshotPublished = errors.New("snapshot already published")
)

// User-facing messages for the two "nothing to show" outcomes. They must
// stay distinct so users can tell a typo from a filter that is too strict.
const (
	MessageNotFound = "Movie not found. Please enter the exact title."
	MessageEmpty    = "No recommendations found. Try adjusting the filters."
)
