// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the Cinematch HTTP API on a Chi router.

# Endpoints

	GET  /api/v1/recommendations?title=&k=&min_rating=
	GET  /api/v1/recommendations/status
	GET  /api/v1/catalog/stats
	GET  /api/v1/catalog/popular?limit=
	GET  /api/v1/catalog/titles?prefix=&limit=
	POST /api/v1/catalog/reload
	GET  /api/v1/health, /api/v1/health/live, /api/v1/health/ready
	GET  /metrics

# Response Format

Every endpoint except /metrics answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "TITLE_NOT_FOUND", "message": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}
	}

A title that is not in the catalog is a 404 with TITLE_NOT_FOUND. A known
title whose candidates all fall below min_rating is a 200 with an empty item
list, code NO_RECOMMENDATIONS in meta and its own message, so clients can
tell the two apart.

# Middleware

Global: request ID, real IP, panic recovery, CORS (go-chi/cors).
API routes add per-IP rate limiting (go-chi/httprate), security headers and
Prometheus instrumentation.
*/
package api
