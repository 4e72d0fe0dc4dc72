// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/campusdocs/internal/apperr"
	"github.com/tomtom215/campusdocs/internal/normalize"
	"github.com/tomtom215/campusdocs/internal/store"
	"github.com/tomtom215/campusdocs/internal/validation"
)

// ContentService is the content lookup surface the handlers depend on.
type ContentService interface {
	VisionMission(ctx context.Context, deptID int) (store.Document, error)
	HOD(ctx context.Context, dept string) (normalize.Record, error)
	Staff(ctx context.Context, dept string) ([]normalize.Record, error)
	StaffProfile(ctx context.Context, uniqueID string) (normalize.Record, error)
	Infrastructure(ctx context.Context, deptID int) (store.Document, error)
	StudentActivities(ctx context.Context, deptID int) (store.Document, error)
	SupportStaff(ctx context.Context, dept string) ([]any, error)
	MOUs(ctx context.Context, dept, uniqueID string) (any, error)
	DepartmentActivities(ctx context.Context, dept string) ([]any, error)
	Curriculum(ctx context.Context, dept string) (store.Document, error)
	ResearchData(ctx context.Context, dept, year string) ([]store.Document, error)
	ActiveEvents(ctx context.Context) ([]any, error)
	RecentEvents(ctx context.Context) ([]any, error)
	Principal(ctx context.Context) (store.Document, error)
	List(ctx context.Context, name string) ([]store.Document, error)
}

// HealthChecker reports document store reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}

// Handler serves the content API.
type Handler struct {
	content   ContentService
	health    HealthChecker
	version   string
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(content ContentService, health HealthChecker, version string) *Handler {
	return &Handler{
		content:   content,
		health:    health,
		version:   version,
		startTime: time.Now(),
	}
}

// serve runs a lookup and writes its result or error.
func serve[T any](w http.ResponseWriter, r *http.Request, lookup func() (T, error)) {
	result, err := lookup()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

// numericDept parses a numeric department id path parameter.
func numericDept(r *http.Request, entity string) (int, error) {
	raw := chi.URLParam(r, "id")
	if err := validation.ValidateStruct(&validation.DeptIDParams{DeptID: raw}); err != nil {
		return 0, apperr.InvalidRequest(entity, raw, "Invalid department id: "+err.Error())
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidRequest(entity, raw, "Invalid department id")
	}
	return id, nil
}

// scopeDept reads a department scope path parameter.
func scopeDept(r *http.Request, entity string) (string, error) {
	raw := chi.URLParam(r, "dept")
	if err := validation.ValidateStruct(&validation.ScopeParams{Dept: raw}); err != nil {
		return "", apperr.InvalidRequest(entity, raw, "Invalid department id: "+err.Error())
	}
	return raw, nil
}

// plainDept reads a free-form department key path parameter.
func plainDept(r *http.Request, entity string) (string, error) {
	raw := chi.URLParam(r, "dept")
	if err := validation.ValidateStruct(&validation.DeptParams{Dept: raw}); err != nil {
		return "", apperr.InvalidRequest(entity, raw, "Invalid department id: "+err.Error())
	}
	return raw, nil
}

// VisionMission handles GET /api/department/{id}.
func (h *Handler) VisionMission(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (store.Document, error) {
		id, err := numericDept(r, "department")
		if err != nil {
			return nil, err
		}
		return h.content.VisionMission(r.Context(), id)
	})
}

// HOD handles GET /api/hod/{dept}.
func (h *Handler) HOD(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (normalize.Record, error) {
		dept, err := scopeDept(r, "hod")
		if err != nil {
			return normalize.Record{}, err
		}
		return h.content.HOD(r.Context(), dept)
	})
}

// Staff handles GET /api/staff/{dept}.
func (h *Handler) Staff(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]normalize.Record, error) {
		dept, err := scopeDept(r, "staff")
		if err != nil {
			return nil, err
		}
		return h.content.Staff(r.Context(), dept)
	})
}

// StaffProfile handles GET /api/staff-profile/{uniqueId}.
func (h *Handler) StaffProfile(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (normalize.Record, error) {
		raw := chi.URLParam(r, "uniqueId")
		if err := validation.ValidateStruct(&validation.StaffIDParams{UniqueID: raw}); err != nil {
			return normalize.Record{}, apperr.InvalidRequest("staff_profile", raw, "Invalid staff identifier: "+err.Error())
		}
		return h.content.StaffProfile(r.Context(), raw)
	})
}

// Infrastructure handles GET /api/infrastructure/{id}.
func (h *Handler) Infrastructure(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (store.Document, error) {
		id, err := numericDept(r, "infrastructure")
		if err != nil {
			return nil, err
		}
		return h.content.Infrastructure(r.Context(), id)
	})
}

// StudentActivities handles GET /api/student-activities/{id}.
func (h *Handler) StudentActivities(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (store.Document, error) {
		id, err := numericDept(r, "student_activities")
		if err != nil {
			return nil, err
		}
		return h.content.StudentActivities(r.Context(), id)
	})
}

// SupportStaff handles GET /api/support-staff/{dept}.
func (h *Handler) SupportStaff(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]any, error) {
		dept, err := scopeDept(r, "support_staff")
		if err != nil {
			return nil, err
		}
		return h.content.SupportStaff(r.Context(), dept)
	})
}

// MOUs handles GET /api/mous/{dept} and GET /api/mous/{dept}/{uniqueId}.
func (h *Handler) MOUs(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (any, error) {
		params := validation.MOUParams{
			Dept:     chi.URLParam(r, "dept"),
			UniqueID: chi.URLParam(r, "uniqueId"),
		}
		if err := validation.ValidateStruct(&params); err != nil {
			return nil, apperr.InvalidRequest("mou", params.Dept, err.Error())
		}
		return h.content.MOUs(r.Context(), params.Dept, params.UniqueID)
	})
}

// DepartmentActivities handles GET /api/department_activities/{dept}.
func (h *Handler) DepartmentActivities(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]any, error) {
		dept, err := plainDept(r, "department_activities")
		if err != nil {
			return nil, err
		}
		return h.content.DepartmentActivities(r.Context(), dept)
	})
}

// Curriculum handles GET /api/curriculum/{dept}.
func (h *Handler) Curriculum(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (store.Document, error) {
		dept, err := plainDept(r, "curriculum")
		if err != nil {
			return nil, err
		}
		return h.content.Curriculum(r.Context(), dept)
	})
}

// ResearchData handles GET /api/fetch-research-data/{dept}/{year}. The
// route without a year reaches here too and is rejected by the service.
func (h *Handler) ResearchData(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]store.Document, error) {
		params := validation.ResearchParams{
			Dept: chi.URLParam(r, "dept"),
			Year: chi.URLParam(r, "year"),
		}
		if err := validation.ValidateStruct(&params); err != nil {
			return nil, apperr.InvalidRequest("research_data", params.Dept, err.Error())
		}
		return h.content.ResearchData(r.Context(), params.Dept, params.Year)
	})
}

// ActiveEvents handles GET /api/events/active.
func (h *Handler) ActiveEvents(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]any, error) {
		return h.content.ActiveEvents(r.Context())
	})
}

// RecentEvents handles GET /api/events/recent.
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() ([]any, error) {
		return h.content.RecentEvents(r.Context())
	})
}

// Principal handles GET /api/principal.
func (h *Handler) Principal(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func() (store.Document, error) {
		return h.content.Principal(r.Context())
	})
}

// Listing returns the handler of a pass-through collection listing.
func (h *Handler) Listing(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serve(w, r, func() ([]store.Document, error) {
			return h.content.List(r.Context(), name)
		})
	}
}
