// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	IndexReady     bool      `json:"index_ready"`
	IndexVersion   int64     `json:"index_version"`
	Rebuilding     bool      `json:"rebuilding"`
	LastBuildError string    `json:"last_build_error,omitempty"`
	Uptime         float64   `json:"uptime"`
	Timestamp      time.Time `json:"timestamp"`
}

// Version is the application version, set by the server binary.
var Version = "dev"

func (h *Handler) healthStatus() HealthStatus {
	st := h.engine.Status()
	status := "healthy"
	switch {
	case !st.Ready:
		status = "starting"
	case st.LastError != "":
		status = "degraded"
	}
	return HealthStatus{
		Status:         status,
		Version:        Version,
		IndexReady:     st.Ready,
		IndexVersion:   st.Version,
		Rebuilding:     st.Rebuilding,
		LastBuildError: st.LastError,
		Uptime:         time.Since(h.startTime).Seconds(),
		Timestamp:      time.Now(),
	}
}

// Health handles GET /api/v1/health. It always answers 200 and reports
// degraded when the last rebuild failed while an older snapshot serves.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus())
}

// HealthLive handles GET /api/v1/health/live. The process is alive if it
// can answer.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

// HealthReady handles GET /api/v1/health/ready: 503 until the first
// snapshot has been published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.engine.Ready() {
		rw.ServiceUnavailable(ErrCodeIndexNotReady, "Recommendation index is not ready yet")
		return
	}
	rw.Success(h.healthStatus())
}
