// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service implementations for Cinematch.

HTTPServerService translates http.Server's blocking ListenAndServe into
suture's context-aware Serve, with graceful Shutdown on cancellation.

IndexService keeps the recommendation index current. It consumes
catalog.changed events from the events bus, optionally turning catalog file
writes into such events, and rebuilds the engine's snapshot:

	catalog.changed ──► pending (1 slot) ──► rate.Limiter ──► Engine.Rebuild ──► index.rebuilt

Bursts of events collapse into one pending rebuild, and rebuilds are spaced
at least catalog.reload_min_interval apart. A failed rebuild keeps the
previous snapshot serving and is only logged and counted.
*/
package services
