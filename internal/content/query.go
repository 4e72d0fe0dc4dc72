// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package content

import (
	"github.com/tomtom215/campusdocs/internal/identifier"
	"github.com/tomtom215/campusdocs/internal/store"
)

// Collection names in the document store.
const (
	CollVisionMission       = "vision_and_mission"
	CollHODs                = "HODS"
	CollStaff               = "staff_details"
	CollInfrastructure      = "infrastructure"
	CollStudentActivities   = "student_activities"
	CollSupportStaff        = "support_staffs"
	CollMOUs                = "MOUs"
	CollDepartmentActivity  = "department_activities"
	CollCurriculum          = "curriculum"
	CollResearchData        = "research_data"
	CollEvents              = "events"
	CollPrincipal           = "principal_data"
	CollAnnouncements       = "announcements"
	CollSpecialAnnouncement = "special_announcement"
	CollAdminOffice         = "admin_office"
	CollCommittee           = "committee"
	CollRegulation          = "regulation"
	CollIntakes             = "Intakes"
	CollPlacementTeam       = "placement_team"
	CollDeans               = "dean_and_associates"
	CollPlacements          = "placements_data"
	CollForms               = "all_forms"
	CollSyllabus            = "curriculum_and_syllabus"
	CollAlumni              = "alumni"
	CollIQAC                = "IQAC"
)

// byID is an exact match on a top-level id field.
func byID(collection, field string, id any) store.Query {
	return store.Query{
		Collection: collection,
		Filters:    []store.Filter{store.Eq(field, id)},
	}
}

// byScope is an anchored scope match on an identifier path. The path may
// cross embedded arrays.
func byScope(collection, path string, m identifier.Matcher, proj *store.Projection) store.Query {
	return store.Query{
		Collection: collection,
		Filters:    []store.Filter{store.Regex(path, m.Pattern())},
		Projection: proj,
	}
}

// where ANDs filters, typically equality on dotted paths into embedded
// arrays or sub-documents.
func where(collection string, filters ...store.Filter) store.Query {
	return store.Query{Collection: collection, Filters: filters}
}

// all selects every document in a collection.
func all(collection string) store.Query {
	return store.Query{Collection: collection}
}
