// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package api

import (
	"context"
	"net/http"
	"time"
)

// readyPingTimeout bounds the store ping of the readiness probe.
const readyPingTimeout = 2 * time.Second

// WelcomeText is served at the root path.
const WelcomeText = "Welcome to the Campusdocs content API!"

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version,omitempty"`
	Store   string  `json:"store,omitempty"`
	Uptime  float64 `json:"uptime_seconds"`
	Error   string  `json:"error,omitempty"`
}

// Welcome handles GET /.
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(WelcomeText))
}

// HealthLive handles GET /api/health/live. It reports process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, r, http.StatusOK, HealthStatus{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/health/ready. It returns 503 while the
// document store cannot be pinged.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	status := HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.health == nil {
		status.Status = "not_ready"
		status.Error = "store not configured"
		respondJSON(w, r, http.StatusServiceUnavailable, status)
		return
	}
	status.Store = h.health.Name()

	ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
	defer cancel()
	if err := h.health.Ping(ctx); err != nil {
		status.Status = "not_ready"
		status.Error = "store unreachable"
		respondJSON(w, r, http.StatusServiceUnavailable, status)
		return
	}
	respondJSON(w, r, http.StatusOK, status)
}
