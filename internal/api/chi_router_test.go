// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/campusdocs/internal/content"
	"github.com/tomtom215/campusdocs/internal/store"
	"github.com/tomtom215/campusdocs/internal/store/badgerstore"
)

func fixtures() map[string][]store.Document {
	return map[string][]store.Document{
		content.CollVisionMission: {
			{"department_id": 4, "vision": "Excellence", "mission": []any{"Teach", "Research"}},
		},
		content.CollHODs: {
			{"Name": "Dr. Rao", "Unique_id": "VEC-4-001", "Qualification": "PhD"},
		},
		content.CollStaff: {
			{"Name": "A. Kumar", "unique_id": "VEC-4-002", "Designation": "Professor", "Photo": "/a.jpg"},
			{"Name": "B. Devi", "unique_id": "VEC-40-001", "Designation": "Professor", "Photo": "/b.jpg"},
		},
		content.CollPrincipal: {
			{"name": "Dr. Principal", "message": "Welcome"},
		},
		content.CollAnnouncements: {
			{"title": "Admissions open"},
		},
	}
}

type testServer struct {
	handler http.Handler
	store   *badgerstore.Store
}

func newTestServer(t *testing.T, cfg *ChiMiddlewareConfig) *testServer {
	t.Helper()
	s, err := badgerstore.Open(badgerstore.Config{InMemory: true})
	if err != nil {
		t.Fatalf("badgerstore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	for coll, docs := range fixtures() {
		if _, err := s.InsertMany(context.Background(), coll, docs); err != nil {
			t.Fatalf("InsertMany(%s) error = %v", coll, err)
		}
	}

	svc, err := content.NewService(s, content.Config{OrgTag: "VEC"})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
		cfg.RateLimitDisabled = true
	}
	h := NewHandler(svc, s, "test")
	return &testServer{handler: NewRouter(h, NewChiMiddleware(cfg)), store: s}
}

func (ts *testServer) get(t *testing.T, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	tests := []struct {
		name      string
		path      string
		status    int
		bodyKey   string
		bodyValue string
	}{
		{"department found", "/api/department/4", http.StatusOK, "vision", "Excellence"},
		{"department missing", "/api/department/9", http.StatusNotFound, "message", "Department not found"},
		{"department non-numeric", "/api/department/cse", http.StatusBadRequest, "error", ""},
		{"hod found", "/api/hod/4", http.StatusOK, "Name", "Dr. Rao"},
		{"hod missing", "/api/hod/7", http.StatusNotFound, "message", "HOD not found for this department."},
		{"hod scope with delimiter", "/api/hod/4-1", http.StatusBadRequest, "error", ""},
		{"staff profile malformed id", "/api/staff-profile/nodashes", http.StatusBadRequest, "error", ""},
		{"staff profile missing", "/api/staff-profile/VEC-4-999", http.StatusNotFound, "message", "Staff member not found"},
		{"research data without year", "/api/fetch-research-data/cse", http.StatusBadRequest, "error", "Both dept_id and year are required"},
		{"principal", "/api/principal", http.StatusOK, "name", "Dr. Principal"},
		{"events empty", "/api/events/active", http.StatusNotFound, "message", "No active events found"},
		{"unknown route", "/api/nope", http.StatusNotFound, "message", "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.get(t, tt.path, nil)
			if rec.Code != tt.status {
				t.Fatalf("GET %s status = %d, want %d (body %s)", tt.path, rec.Code, tt.status, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			body := decodeBody(t, rec)
			v, ok := body[tt.bodyKey]
			if !ok {
				t.Fatalf("body %v has no %q key", body, tt.bodyKey)
			}
			if tt.bodyValue != "" && v != tt.bodyValue {
				t.Errorf("body[%q] = %v, want %q", tt.bodyKey, v, tt.bodyValue)
			}
		})
	}
}

func TestRouter_StaffListingIsScoped(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec := ts.get(t, "/api/staff/4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var staff []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &staff); err != nil {
		t.Fatal(err)
	}
	if len(staff) != 1 || staff[0]["Name"] != "A. Kumar" {
		t.Errorf("staff = %v, want only A. Kumar", staff)
	}
}

func TestRouter_Listings(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec := ts.get(t, "/api/announcements", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Admissions open") {
		t.Errorf("body = %s", rec.Body.String())
	}

	for _, l := range content.Listings() {
		if l.Name == "announcements" {
			continue
		}
		rec := ts.get(t, "/api/"+l.Name, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET /api/%s status = %d, want 404", l.Name, rec.Code)
			continue
		}
		if msg := decodeBody(t, rec)["message"]; msg != l.NotFound {
			t.Errorf("GET /api/%s message = %v, want %q", l.Name, msg, l.NotFound)
		}
	}
}

func TestRouter_ListingsReadStoredCollectionNames(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	// Route segment to the collection name as it exists in the deployed database.
	stored := map[string]string{
		"special_announcements":   "special_announcement",
		"intakes":                 "Intakes",
		"admin_office":            "admin_office",
		"dean_and_associates":     "dean_and_associates",
		"curriculum_and_syllabus": "curriculum_and_syllabus",
		"iqac":                    "IQAC",
	}
	for route, coll := range stored {
		if _, err := ts.store.InsertMany(context.Background(), coll, []store.Document{{"title": route + " entry"}}); err != nil {
			t.Fatalf("InsertMany(%s) error = %v", coll, err)
		}
	}

	for route := range stored {
		rec := ts.get(t, "/api/"+route, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET /api/%s status = %d, want 200 (body %s)", route, rec.Code, rec.Body.String())
			continue
		}
		if !strings.Contains(rec.Body.String(), route+" entry") {
			t.Errorf("GET /api/%s body = %s", route, rec.Body.String())
		}
	}
}

func TestRouter_ETag(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	first := ts.get(t, "/api/principal", nil)
	etag := first.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("ETag = %q, want weak ETag", etag)
	}

	second := ts.get(t, "/api/principal", http.Header{"If-None-Match": {etag}})
	if second.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", second.Code)
	}
	if second.Body.Len() != 0 {
		t.Errorf("304 body = %q, want empty", second.Body.String())
	}

	missing := ts.get(t, "/api/department/9", nil)
	if missing.Header().Get("ETag") != "" {
		t.Error("404 response should not carry an ETag")
	}
	if cc := missing.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("404 Cache-Control = %q, want no-store", cc)
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	rec := ts.get(t, "/", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != WelcomeText {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}

	rec = ts.get(t, "/api/health/live", nil)
	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "alive" {
		t.Errorf("live = %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.get(t, "/api/health/ready", nil)
	body := decodeBody(t, rec)
	if rec.Code != http.StatusOK || body["status"] != "ready" || body["store"] != "badger" {
		t.Errorf("ready = %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("ETag") != "" {
		t.Error("health responses should not carry an ETag")
	}
}

func TestRouter_StoreFailure(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)
	_ = ts.store.Close()

	rec := ts.get(t, "/api/department/4", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeBody(t, rec)["error"]; msg != "Error fetching department data" {
		t.Errorf("error = %v", msg)
	}

	rec = ts.get(t, "/api/health/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
	if decodeBody(t, rec)["status"] != "not_ready" {
		t.Errorf("ready body = %s", rec.Body.String())
	}
}

// rateLimitHits sums api_rate_limit_hits_total over all endpoints.
func rateLimitHits(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != "api_rate_limit_hits_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  2,
		RateLimitWindow:    time.Minute,
	})

	before := rateLimitHits(t)
	var last *httptest.ResponseRecorder
	for range 3 {
		last = ts.get(t, "/api/principal", nil)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if msg := decodeBody(t, last)["error"]; msg != "Too many requests" {
		t.Errorf("error = %v", msg)
	}
	if after := rateLimitHits(t); after != before+1 {
		t.Errorf("rate limit hits = %v, want %v", after, before+1)
	}

	// Health probes sit outside the limited group.
	if rec := ts.get(t, "/api/health/live", nil); rec.Code != http.StatusOK {
		t.Errorf("health under rate limit = %d", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/principal", nil)
	req.Header.Set("Origin", "https://www.example.edu")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
