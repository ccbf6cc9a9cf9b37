// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package events is the in-process event bus that ties catalog changes to
// index rebuilds.
//
// The bus wraps a Watermill gochannel pub/sub. Two topics exist:
//
//	catalog.changed  the catalog source may differ from the live snapshot
//	                 (manual reload, file watch)
//	index.rebuilt    a new snapshot was published
//
// Payloads are JSON encoded with goccy/go-json. Every message carries a
// correlation_id metadata entry so a rebuild can be traced back to the
// request or file event that caused it.
//
// Delivery is at-most-once: gochannel does not persist messages, so an event
// published with no subscriber is dropped. That is acceptable because a
// missed catalog.changed only delays a rebuild until the next one.
package events
