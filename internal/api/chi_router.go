// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinematch/internal/middleware"
)

// Router builds the Chi router for the API.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
}

// NewRouter creates a router over h. A nil mw uses the defaults.
func NewRouter(h *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: h, mw: mw}
}

// SetupChi wires every route and returns the root handler.
//
// Middleware order: request ID first so every later log line and error body
// carries it, then real IP (rate limiting keys on it), panic recovery, CORS.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound(ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	h := router.handler
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/health", func(r chi.Router) {
			r.Use(router.mw.RateLimitHealth())
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.mw.RateLimit())

			r.Get("/recommendations", h.Recommendations)
			r.Get("/recommendations/status", h.RecommendationStatus)

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/stats", h.CatalogStats)
				r.Get("/popular", h.CatalogPopular)
				r.Get("/titles", h.CatalogTitles)
				r.With(router.mw.RateLimitReload()).Post("/reload", h.CatalogReload)
			})
		})
	})

	return r
}
