// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package normalize

import (
	"net/url"
	"strings"
)

// HOD is the head-of-department card shown on each department page.
var HOD = &Schema{
	Name: "hod",
	Fields: []Field{
		{Output: "Name", Source: "Name", Kind: KindString, Policy: Required},
		{Output: "Unique_id", Source: "Unique_id", Kind: KindString, Policy: Required},
		{Output: "Qualification", Source: "Qualification", Kind: KindAny, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Hod_message", Source: "Hod_message", Kind: KindAny, Policy: Optional, Sentinels: DashSentinels},
		{Output: "designation", Source: "designation", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Image", Source: "Image", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Social_media_links", Source: "Social_media_links", Kind: KindObject, Policy: Optional},
	},
}

// StaffSummary is one entry of a department's faculty listing.
var StaffSummary = &Schema{
	Name: "staff",
	Fields: []Field{
		{Output: "Name", Source: "Name", Kind: KindString, Policy: Required},
		{Output: "Designation", Source: "Designation", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Photo", Source: "Photo", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Google Scholar Profile", Source: "Google Scholar Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Research Gate", Source: "Research Gate", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Orchid Profile", Source: "Orchid Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Publon Profile", Source: "Publon Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "Scopus Author Profile", Source: "Scopus Author Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "LinkedIn Profile", Source: "LinkedIn Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "unique_id", Source: "unique_id", Kind: KindString, Policy: Required},
	},
}

// StaffSummaryProjection lists the source fields StaffSummary reads, for use
// as a store projection.
func StaffSummaryProjection() []string {
	return StaffSummary.Sources()
}

// Sources returns the source keys of the schema's fields, in order.
func (s *Schema) Sources() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Source)
	}
	return out
}

// Qualification is one academic qualification row.
var Qualification = &Schema{
	Name: "qualification",
	Fields: []Field{
		{Output: "degree", Source: "Degree", Kind: KindString, Policy: Required, Sentinels: DashSentinels},
		{Output: "specialization", Source: "Specialization", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "institution", Source: "Institution", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "year_of_passing", Source: "Year of Passing", Kind: KindNumber, Policy: Optional, Sentinels: DashSentinels},
	},
}

// ExperienceHeaderToken marks a header row copied into the experience table.
const ExperienceHeaderToken = "DURATION"

// Experience is one employment history row. Rows whose Duration cell holds
// the header token are dropped, and header tokens inside kept rows become null.
var Experience = &Schema{
	Name: "experience",
	Fields: []Field{
		{Output: "institution", Source: "Institution", Kind: KindString, Policy: Optional, Sentinels: ExperienceSentinels},
		{Output: "designation", Source: "Designation", Kind: KindString, Policy: Optional, Sentinels: ExperienceSentinels},
		{Output: "from", Source: "From", Kind: KindString, Policy: Optional, Sentinels: ExperienceSentinels},
		{Output: "to", Source: "To", Kind: KindString, Policy: Optional, Sentinels: ExperienceSentinels},
		{Output: "years", Source: "NO.OF.YEARS", Kind: KindNumber, Policy: Optional, Sentinels: ExperienceSentinels},
		{Output: "months", Source: "NO.OF MONTHS", Kind: KindNumber, Policy: Optional, Sentinels: ExperienceSentinels},
	},
	Skip: isExperienceHeader,
}

func isExperienceHeader(raw map[string]any) bool {
	v, ok := newLookup(raw).get("Duration")
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && strings.EqualFold(strings.TrimSpace(s), ExperienceHeaderToken)
}

// Publication is one journal or conference paper.
var Publication = &Schema{
	Name: "publication",
	Fields: []Field{
		{Output: "title", Source: "Title", Kind: KindString, Policy: Required, Sentinels: DashSentinels},
		{Output: "authors", Source: "Authors", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "journal", Source: "Journal", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "year", Source: "Year", Kind: KindNumber, Policy: Optional, Sentinels: DashSentinels},
		{Output: "link", Source: "Link", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
	},
}

// Patent is one filed or granted patent.
var Patent = &Schema{
	Name: "patent",
	Fields: []Field{
		{Output: "title", Source: "Title", Kind: KindString, Policy: Required, Sentinels: DashSentinels},
		{Output: "patent_number", Source: "Patent Number", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "status", Source: "Status", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "year", Source: "Year", Kind: KindNumber, Policy: Optional, Sentinels: DashSentinels},
	},
}

// Project is one funded research project.
var Project = &Schema{
	Name: "project",
	Fields: []Field{
		{Output: "title", Source: "Title", Kind: KindString, Policy: Required, Sentinels: DashSentinels},
		{Output: "funding_agency", Source: "Funding Agency", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "amount", Source: "Amount", Kind: KindNumber, Policy: Optional, Sentinels: DashSentinels},
		{Output: "duration", Source: "Duration", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "status", Source: "Status", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
	},
}

// Scholar is one research scholar supervised by the staff member.
var Scholar = &Schema{
	Name: "scholar",
	Fields: []Field{
		{Output: "name", Source: "Name", Kind: KindString, Policy: Required, Sentinels: DashSentinels},
		{Output: "topic", Source: "Research Topic", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "status", Source: "Status", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
		{Output: "year", Source: "Year", Kind: KindNumber, Policy: Optional, Sentinels: DashSentinels},
	},
}

// PhotoIDPlaceholder is replaced by the escaped identifier in photo URL templates.
const PhotoIDPlaceholder = "{id}"

// PhotoURL returns a derivation that renders template with the identifier.
// A template without the placeholder gets the identifier appended.
func PhotoURL(template string) func(id string) any {
	return func(id string) any {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil
		}
		esc := url.PathEscape(id)
		if !strings.Contains(template, PhotoIDPlaceholder) {
			return template + esc
		}
		return strings.ReplaceAll(template, PhotoIDPlaceholder, esc)
	}
}

// StaffProfile builds the full staff profile schema. The photo field is
// derived from the identifier through photoTemplate.
func StaffProfile(photoTemplate string) *Schema {
	return &Schema{
		Name: "staff_profile",
		Fields: []Field{
			{Output: "name", Source: "Name", Kind: KindString, Policy: Required},
			{Output: "unique_id", Source: "unique_id", Kind: KindString, Policy: Required},
			{Output: "designation", Source: "Designation", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "email", Source: "Mail ID", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "date_of_joining", Source: "Date of Joining", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "photo", Source: "unique_id", Kind: KindString, Policy: Optional, Derive: PhotoURL(photoTemplate)},
			{Output: "google_scholar", Source: "Google Scholar Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "research_gate", Source: "Research Gate", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "orcid", Source: "Orchid Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "publons", Source: "Publon Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "scopus", Source: "Scopus Author Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "linkedin", Source: "LinkedIn Profile", Kind: KindString, Policy: Optional, Sentinels: DashSentinels},
			{Output: "qualification", Source: "Qualification", Policy: Structural, Elem: Qualification},
			{Output: "experience", Source: "Experience", Policy: Structural, Elem: Experience},
			{Output: "publications", Source: "Publications", Policy: Sequence, Elem: Publication},
			{Output: "patents", Source: "Patents", Policy: Sequence, Elem: Patent},
			{Output: "projects", Source: "Projects", Policy: Sequence, Elem: Project},
			{Output: "scholars", Source: "Scholars", Policy: Sequence, Elem: Scholar},
		},
	}
}
