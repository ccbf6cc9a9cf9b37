// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
)

// PopularResponse lists quick-pick titles.
type PopularResponse struct {
	Titles []string `json:"titles"`
}

// TitlesResponse lists autocomplete suggestions.
type TitlesResponse struct {
	Prefix      string               `json:"prefix"`
	Suggestions []catalog.Suggestion `json:"suggestions"`
}

// ReloadResponse acknowledges an accepted reload.
type ReloadResponse struct {
	Status         string `json:"status"`
	CurrentVersion int64  `json:"current_version"`
}

// currentCatalog returns the catalog of the live snapshot, writing a 503 and
// returning nil when there is none yet.
func (h *Handler) currentCatalog(rw *ResponseWriter) *catalog.Catalog {
	snap := h.engine.Snapshot()
	if snap == nil {
		rw.ServiceUnavailable(ErrCodeIndexNotReady, "Recommendation index is not ready yet")
		return nil
	}
	return snap.Catalog
}

// CatalogStats handles GET /api/v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if cat := h.currentCatalog(rw); cat != nil {
		rw.Success(cat.Stats())
	}
}

// CatalogPopular handles GET /api/v1/catalog/popular.
func (h *Handler) CatalogPopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q, err := parsePopularQuery(r.URL.Query(), catalog.DefaultPopularLimit)
	if err != nil {
		writeRequestError(rw, err)
		return
	}
	if cat := h.currentCatalog(rw); cat != nil {
		rw.Success(PopularResponse{Titles: cat.Popular(q.Limit)})
	}
}

// CatalogTitles handles GET /api/v1/catalog/titles.
func (h *Handler) CatalogTitles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q, err := parseTitlesQuery(r.URL.Query(), catalog.DefaultSuggestLimit)
	if err != nil {
		writeRequestError(rw, err)
		return
	}
	if cat := h.currentCatalog(rw); cat != nil {
		rw.Success(TitlesResponse{Prefix: q.Prefix, Suggestions: cat.Suggest(q.Prefix, q.Limit)})
	}
}

// CatalogReload handles POST /api/v1/catalog/reload. The rebuild happens
// asynchronously in the index service; this only publishes the request.
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.publisher == nil {
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "Reload is not available")
		return
	}

	if err := h.publisher.PublishCatalogChanged(r.Context(), events.ReasonManual, h.catalog); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to publish reload request")
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "Reload could not be scheduled")
		return
	}

	logging.Ctx(r.Context()).Info().Str("path", h.catalog).Msg("Catalog reload requested")
	rw.Accepted(ReloadResponse{
		Status:         "accepted",
		CurrentVersion: h.engine.Status().Version,
	})
}
