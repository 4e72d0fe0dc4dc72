// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package api is the HTTP boundary of the content service.
//
// Handlers validate path parameters, call the content service, and map its
// results onto responses: 200 with the payload as-is, 404 with
// {"message": ...}, 400 and 500 with {"error": ...}. Routing uses chi.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/campusdocs/internal/content"
	"github.com/tomtom215/campusdocs/internal/middleware"
)

// slowRequestThreshold is the latency above which requests are logged at warn.
const slowRequestThreshold = time.Second

// NewRouter wires every route of the API.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusNotFound, messageBody{Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	r.Get("/", h.Welcome)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Get("/department/{id}", h.VisionMission)
		r.Get("/hod/{dept}", h.HOD)
		r.Get("/staff/{dept}", h.Staff)
		r.Get("/staff-profile/{uniqueId}", h.StaffProfile)
		r.Get("/infrastructure/{id}", h.Infrastructure)
		r.Get("/student-activities/{id}", h.StudentActivities)
		r.Get("/support-staff/{dept}", h.SupportStaff)
		r.Get("/mous/{dept}", h.MOUs)
		r.Get("/mous/{dept}/{uniqueId}", h.MOUs)
		r.Get("/department_activities/{dept}", h.DepartmentActivities)
		r.Get("/curriculum/{dept}", h.Curriculum)
		r.Get("/fetch-research-data/{dept}", h.ResearchData)
		r.Get("/fetch-research-data/{dept}/{year}", h.ResearchData)
		r.Get("/events/active", h.ActiveEvents)
		r.Get("/events/recent", h.RecentEvents)
		r.Get("/principal", h.Principal)

		for _, l := range content.Listings() {
			r.Get("/"+l.Name, h.Listing(l.Name))
		}
	})

	return r
}
