// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware for request tracing and
Prometheus instrumentation.

Both middlewares use the func(http.Handler) http.Handler shape so they plug
straight into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

RequestID honours an inbound X-Request-ID header and otherwise generates a
UUID. The ID is echoed in the response header and stored in the request
context, where logging.Ctx picks it up.

PrometheusMetrics labels requests with the chi route pattern rather than the
raw path, so /api/v1/catalog/titles?prefix=a and ?prefix=b share a series.
*/
package middleware
