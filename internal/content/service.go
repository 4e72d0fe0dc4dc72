// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package content answers the website's content lookups.
//
// A Service turns path parameters into store queries, runs them, and shapes
// the results: scope matching goes through the identifier package, record
// reshaping through the normalize package, and the post-query sort and
// filter steps through the assemble functions in this package. Every
// non-success outcome is an *apperr.Error; an empty result is never
// returned as a success.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/campusdocs/internal/apperr"
	"github.com/tomtom215/campusdocs/internal/identifier"
	"github.com/tomtom215/campusdocs/internal/metrics"
	"github.com/tomtom215/campusdocs/internal/normalize"
	"github.com/tomtom215/campusdocs/internal/store"
)

// Defaults for Config fields left empty.
const (
	DefaultOrgTag            = "VEC"
	DefaultRecentEventsLimit = 10
	DefaultPhotoURLTemplate  = "/images/staff/{id}.jpg"
)

// Config holds the content-shaping settings.
type Config struct {
	// OrgTag is the organization segment of composite identifiers. Empty
	// matches any organization.
	OrgTag string
	// MOUGroupField is the field of an MOU document holding the per-department list.
	MOUGroupField string
	// PhotoURLTemplate renders staff photo URLs; "{id}" is replaced by the identifier.
	PhotoURLTemplate string
	// RecentEventsLimit caps the recent events listing.
	RecentEventsLimit int
}

// Service performs content lookups against a store.
type Service struct {
	store   store.Store
	cfg     Config
	profile *normalize.Schema
}

// NewService builds a Service. Zero-valued settings fall back to defaults,
// except OrgTag, which is used as given.
func NewService(s store.Store, cfg Config) (*Service, error) {
	if s == nil {
		return nil, errors.New("content: store is required")
	}
	if strings.Contains(cfg.OrgTag, identifier.Delimiter) {
		return nil, fmt.Errorf("content: organization tag %q contains %q", cfg.OrgTag, identifier.Delimiter)
	}
	if cfg.MOUGroupField == "" {
		cfg.MOUGroupField = DefaultOrgTag
	}
	if cfg.PhotoURLTemplate == "" {
		cfg.PhotoURLTemplate = DefaultPhotoURLTemplate
	}
	if cfg.RecentEventsLimit <= 0 {
		cfg.RecentEventsLimit = DefaultRecentEventsLimit
	}
	return &Service{
		store:   s,
		cfg:     cfg,
		profile: normalize.StaffProfile(cfg.PhotoURLTemplate),
	}, nil
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) matcher(entity, scope string) (identifier.Matcher, error) {
	m, err := identifier.NewMatcher(s.cfg.OrgTag, scope)
	if err != nil {
		return identifier.Matcher{}, apperr.InvalidRequest(entity, scope, "Invalid department identifier")
	}
	return m, nil
}

func (s *Service) findOne(ctx context.Context, entity, id string, q store.Query) (store.Document, error) {
	doc, err := s.store.FindOne(ctx, q)
	if err != nil {
		return nil, apperr.StorageFailure(entity, id, err)
	}
	return doc, nil
}

func (s *Service) find(ctx context.Context, entity, id string, q store.Query) ([]store.Document, error) {
	docs, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, apperr.StorageFailure(entity, id, err)
	}
	return docs, nil
}

func notFound(entity, id, message string) error {
	metrics.ContentNotFound.WithLabelValues(entity).Inc()
	return apperr.NotFound(entity, id, message)
}

func malformed(err error, entity, id string) error {
	if apperr.Is(err, apperr.KindMalformedRecord) {
		metrics.NormalizationFailures.WithLabelValues(entity).Inc()
	}
	return apperr.WithContext(err, entity, id)
}

// structuralList reads a list field the endpoint cannot work without.
func structuralList(doc map[string]any, field, entity, id string) ([]any, error) {
	list, ok := doc[field].([]any)
	if !ok {
		metrics.NormalizationFailures.WithLabelValues(entity).Inc()
		return nil, apperr.MalformedRecord(entity, id, fmt.Sprintf("field %q is missing or not a list", field))
	}
	return list, nil
}

// VisionMission returns a department's vision and mission document.
func (s *Service) VisionMission(ctx context.Context, deptID int) (store.Document, error) {
	id := fmt.Sprint(deptID)
	doc, err := s.findOne(ctx, "department", id, byID(CollVisionMission, "department_id", deptID))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("department", id, "Department not found")
	}
	return doc, nil
}

// HOD returns the head of department whose identifier falls in dept's scope.
func (s *Service) HOD(ctx context.Context, dept string) (normalize.Record, error) {
	const entity = "hod"
	m, err := s.matcher(entity, dept)
	if err != nil {
		return normalize.Record{}, err
	}
	doc, err := s.findOne(ctx, entity, dept, byScope(CollHODs, "Unique_id", m, nil))
	if err != nil {
		return normalize.Record{}, err
	}
	if doc == nil {
		return normalize.Record{}, notFound(entity, dept, "HOD not found for this department.")
	}
	rec, err := normalize.HOD.Normalize(doc)
	if err != nil {
		return normalize.Record{}, malformed(err, entity, dept)
	}
	return rec, nil
}

// Staff returns the faculty listing for dept, in store order.
func (s *Service) Staff(ctx context.Context, dept string) ([]normalize.Record, error) {
	const entity = "staff"
	m, err := s.matcher(entity, dept)
	if err != nil {
		return nil, err
	}
	proj := &store.Projection{Include: normalize.StaffSummaryProjection(), ExcludeID: true}
	docs, err := s.find(ctx, entity, dept, byScope(CollStaff, "unique_id", m, proj))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, notFound(entity, dept, "No staff found for the given department ID.")
	}

	raws := make([]map[string]any, len(docs))
	for i := range docs {
		raws[i] = docs[i]
	}
	recs, err := normalize.StaffSummary.NormalizeAll(raws)
	if err != nil {
		return nil, malformed(err, entity, dept)
	}
	return recs, nil
}

// StaffProfile returns the full profile of one staff member.
func (s *Service) StaffProfile(ctx context.Context, uniqueID string) (normalize.Record, error) {
	const entity = "staff_profile"
	if _, err := identifier.Parse(uniqueID); err != nil {
		return normalize.Record{}, apperr.InvalidRequest(entity, uniqueID, "Invalid staff identifier")
	}
	doc, err := s.findOne(ctx, entity, uniqueID, byID(CollStaff, "unique_id", uniqueID))
	if err != nil {
		return normalize.Record{}, err
	}
	if doc == nil {
		return normalize.Record{}, notFound(entity, uniqueID, "Staff member not found")
	}
	rec, err := s.profile.Normalize(doc)
	if err != nil {
		return normalize.Record{}, malformed(err, entity, uniqueID)
	}
	return rec, nil
}

// Infrastructure returns a department's infrastructure document.
func (s *Service) Infrastructure(ctx context.Context, deptID int) (store.Document, error) {
	id := fmt.Sprint(deptID)
	doc, err := s.findOne(ctx, "infrastructure", id, byID(CollInfrastructure, "dept_id", deptID))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("infrastructure", id, "No infrastructure details found for the given department ID.")
	}
	return doc, nil
}

// StudentActivities returns a department's student activities document.
func (s *Service) StudentActivities(ctx context.Context, deptID int) (store.Document, error) {
	id := fmt.Sprint(deptID)
	doc, err := s.findOne(ctx, "student_activities", id, byID(CollStudentActivities, "dept_id", deptID))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("student_activities", id, "No student activities found for the given department ID.")
	}
	return doc, nil
}

// SupportStaff returns the support staff members of dept. The containing
// document is located by a nested scope match and its member list is then
// filtered to the scope in process.
func (s *Service) SupportStaff(ctx context.Context, dept string) ([]any, error) {
	const entity = "support_staff"
	const message = "No support staff found for the given department ID."

	m, err := s.matcher(entity, dept)
	if err != nil {
		return nil, err
	}
	doc, err := s.findOne(ctx, entity, dept, byScope(CollSupportStaff, "supporting_staff.Unique_id", m, nil))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound(entity, dept, message)
	}
	members, err := structuralList(doc, "supporting_staff", entity, dept)
	if err != nil {
		return nil, err
	}
	filtered := FilterByScope(members, "Unique_id", m)
	if len(filtered) == 0 {
		return nil, notFound(entity, dept, message)
	}
	return filtered, nil
}

// MOUIndex lists the MOU identifiers of one department.
type MOUIndex struct {
	UniqueIDs []any `json:"unique_ids"`
}

// MOUs returns the identifiers of dept's MOUs, or the MOUs whose unique_id
// equals uniqueID when it is non-empty.
func (s *Service) MOUs(ctx context.Context, dept, uniqueID string) (any, error) {
	const entity = "mou"
	dept = strings.TrimSpace(dept)
	if dept == "" {
		return nil, apperr.InvalidRequest(entity, dept, "Department is required")
	}

	group := s.cfg.MOUGroupField
	doc, err := s.findOne(ctx, entity, dept, where(CollMOUs, store.Eq(group+".Departments", dept)))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound(entity, dept, "Department not found")
	}
	departments, err := structuralList(doc, group, entity, dept)
	if err != nil {
		return nil, err
	}
	department, ok := FindFirst(departments, "Departments", dept)
	if !ok {
		return nil, notFound(entity, dept, "Department not found")
	}
	mous, err := structuralList(department, "MOUs", entity, dept)
	if err != nil {
		return nil, err
	}

	if uniqueID == "" {
		return MOUIndex{UniqueIDs: Pluck(mous, "unique_id")}, nil
	}
	narrowed := NarrowBy(mous, "unique_id", uniqueID)
	if len(narrowed) == 0 {
		return nil, notFound(entity, dept+"/"+uniqueID, "No MOU found with the provided unique_id or year.")
	}
	return narrowed, nil
}

// DepartmentActivities returns dept's activities, newest first.
func (s *Service) DepartmentActivities(ctx context.Context, dept string) ([]any, error) {
	const entity = "department_activities"
	doc, err := s.findOne(ctx, entity, dept, byID(CollDepartmentActivity, "dept_id", dept))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound(entity, dept, "Department not found")
	}
	activities, err := structuralList(doc, "dept_activities", entity, dept)
	if err != nil {
		return nil, err
	}
	return SortByDateDesc(activities, "date"), nil
}

// Curriculum returns dept's curriculum document. Curriculum ids are strings.
func (s *Service) Curriculum(ctx context.Context, dept string) (store.Document, error) {
	doc, err := s.findOne(ctx, "curriculum", dept, byID(CollCurriculum, "dept_id", dept))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("curriculum", dept, "Department not found")
	}
	return doc, nil
}

// ResearchData returns the research records of dept for one year.
func (s *Service) ResearchData(ctx context.Context, dept, year string) ([]store.Document, error) {
	const entity = "research_data"
	dept, year = strings.TrimSpace(dept), strings.TrimSpace(year)
	id := dept + "/" + year
	if dept == "" || year == "" {
		return nil, apperr.InvalidRequest(entity, id, "Both dept_id and year are required")
	}
	docs, err := s.find(ctx, entity, id, where(CollResearchData,
		store.Eq("dept_id", dept),
		store.Eq("data.data.year", year),
	))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, notFound(entity, id, "No research data found for the given department and year")
	}
	return docs, nil
}

func (s *Service) events(ctx context.Context) ([]any, error) {
	docs, err := s.find(ctx, "events", "", all(CollEvents))
	if err != nil {
		return nil, err
	}
	return Flatten(docs, "events"), nil
}

// ActiveEvents returns every event whose status is the string "True",
// unwrapped from its container document.
func (s *Service) ActiveEvents(ctx context.Context) ([]any, error) {
	entries, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	active := FilterStatus(entries, "status", "True")
	if len(active) == 0 {
		return nil, notFound("events", "active", "No active events found")
	}
	return active, nil
}

// RecentEvents returns the newest events across all containers.
func (s *Service) RecentEvents(ctx context.Context) ([]any, error) {
	entries, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, notFound("events", "recent", "No recent events found")
	}
	return Recent(entries, "date", s.cfg.RecentEventsLimit), nil
}

// Principal returns the principal's profile document.
func (s *Service) Principal(ctx context.Context) (store.Document, error) {
	doc, err := s.findOne(ctx, "principal", "", all(CollPrincipal))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("principal", "", "Principal details not found")
	}
	return doc, nil
}
