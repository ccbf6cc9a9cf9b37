// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// A title missing from the catalog is a 404. A known title with nothing
// left after the rating filter is a 200 with an empty list and
// NO_RECOMMENDATIONS in meta.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()

	cfg := h.engine.Config()
	q, err := parseRecommendationQuery(r.URL.Query(), cfg.Limits.DefaultK, cfg.Limits.DefaultMinRating)
	if err != nil {
		metrics.RecordRecommendation(metrics.OutcomeInvalid, time.Since(start), nil)
		writeRequestError(rw, err)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Title:     q.Title,
		K:         q.K,
		MinRating: q.MinRating,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})

	switch {
	case err == nil:
		hit := resp.Metadata.CacheHit
		metrics.RecordRecommendation(metrics.OutcomeOK, time.Since(start), &hit)
		rw.Success(resp)

	case errors.Is(err, recommend.ErrEmpty):
		metrics.RecordRecommendation(metrics.OutcomeEmpty, time.Since(start), nil)
		rw.SuccessWithMeta(&recommend.Response{
			Query: q.Title,
			Items: []recommend.Recommendation{},
			Metadata: recommend.ResponseMetadata{
				RequestID: logging.RequestIDFromContext(r.Context()),
				K:         q.K,
				MinRating: q.MinRating,
				Timestamp: time.Now(),
			},
		}, &APIMeta{
			Code:    ErrCodeNoRecommendations,
			Message: MessageNoRecommendations,
		})

	default:
		metrics.RecordRecommendation(metrics.OutcomeFor(err), time.Since(start), nil)
		if status, _, _ := errorStatus(err); status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			logging.Ctx(r.Context()).Error().Err(err).Str("title", q.Title).Msg("recommendation failed")
		}
		writeError(rw, err)
	}
}

// RecommendationStatus handles GET /api/v1/recommendations/status.
func (h *Handler) RecommendationStatus(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Status())
}
