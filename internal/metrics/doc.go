// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics for Cinematch.

All collectors are registered on the default registry through promauto and
are exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP:
  - cinematch_api_requests_total{method,endpoint,status}
  - cinematch_api_request_duration_seconds{method,endpoint}
  - cinematch_api_active_requests

Recommendations:
  - cinematch_recommendations_total{outcome}
    outcome is one of ok, not_found, empty, invalid, not_ready, error
  - cinematch_recommend_duration_seconds
  - cinematch_cache_hits_total, cinematch_cache_misses_total

Index:
  - cinematch_index_builds_total{result}
  - cinematch_index_build_duration_seconds
  - cinematch_index_entries, cinematch_index_vocabulary_size
  - cinematch_index_version

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(metrics.OutcomeFor(err), time.Since(start), nil)

Record functions are safe for concurrent use.
*/
package metrics
