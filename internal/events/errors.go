// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import "errors"

var (
	// ErrClosed is returned when publishing or subscribing on a closed bus.
	ErrClosed = errors.New("events: bus closed")

	// ErrUnknownTopic is returned for topics the bus does not carry.
	ErrUnknownTopic = errors.New("events: unknown topic")
)
