// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommendation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeEmpty    = "empty"
	OutcomeInvalid  = "invalid"
	OutcomeNotReady = "not_ready"
	OutcomeError    = "error"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_recommend_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Index Metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_index_builds_total",
			Help: "Total number of index builds by result",
		},
		[]string{"result"}, // "success", "failure", "skipped"
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_index_build_duration_seconds",
			Help:    "Duration of index builds in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	IndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_entries",
			Help: "Number of catalog entries in the live snapshot",
		},
	)

	IndexVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_vocabulary_size",
			Help: "Number of terms in the live TF-IDF vocabulary",
		},
	)

	IndexVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_index_version",
			Help: "Version of the live snapshot",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// OutcomeFor classifies the result of a recommendation query.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, recommend.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, recommend.ErrEmpty):
		return OutcomeEmpty
	case errors.Is(err, recommend.ErrInvalidRequest):
		return OutcomeInvalid
	case errors.Is(err, recommend.ErrNotReady):
		return OutcomeNotReady
	default:
		return OutcomeError
	}
}

// RecordRecommendation records one recommendation query. cacheHit is nil
// when the query never reached the cache.
func RecordRecommendation(outcome string, duration time.Duration, cacheHit *bool) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if cacheHit == nil {
		return
	}
	if *cacheHit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordIndexBuild records a rebuild attempt. On success the index gauges
// are updated from the published snapshot.
func RecordIndexBuild(snap *recommend.Snapshot, duration time.Duration, err error) {
	switch {
	case errors.Is(err, recommend.ErrRebuildInProgress):
		IndexBuildsTotal.WithLabelValues("skipped").Inc()
		return
	case err != nil:
		IndexBuildsTotal.WithLabelValues("failure").Inc()
		IndexBuildDuration.Observe(duration.Seconds())
		return
	}

	IndexBuildsTotal.WithLabelValues("success").Inc()
	IndexBuildDuration.Observe(duration.Seconds())
	if snap != nil {
		SetSnapshot(snap)
	}
}

// SetSnapshot updates the index gauges.
func SetSnapshot(snap *recommend.Snapshot) {
	IndexEntries.Set(float64(snap.Catalog.Len()))
	IndexVocabularySize.Set(float64(snap.VocabularySize))
	IndexVersion.Set(float64(snap.Version))
}
