// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package content

import (
	"context"
	"sort"

	"github.com/tomtom215/campusdocs/internal/apperr"
	"github.com/tomtom215/campusdocs/internal/store"
)

// Listing describes a pass-through collection listing.
type Listing struct {
	// Name is the route segment and the entity name in errors.
	Name       string
	Collection string
	// NotFound is the message returned when the collection is empty.
	NotFound string
}

var listings = map[string]Listing{
	"announcements":           {Collection: CollAnnouncements, NotFound: "No announcements found"},
	"special_announcements":   {Collection: CollSpecialAnnouncement, NotFound: "No special_announcement details found"},
	"admin_office":            {Collection: CollAdminOffice, NotFound: "No admin office details found"},
	"committee":               {Collection: CollCommittee, NotFound: "No committee details found"},
	"regulation":              {Collection: CollRegulation, NotFound: "No regulations found"},
	"intakes":                 {Collection: CollIntakes, NotFound: "No intake data found"},
	"placement_team":          {Collection: CollPlacementTeam, NotFound: "No placement team data found"},
	"dean_and_associates":     {Collection: CollDeans, NotFound: "No deans data found"},
	"placements_data":         {Collection: CollPlacements, NotFound: "No placements data found"},
	"all_forms":               {Collection: CollForms, NotFound: "No forms found"},
	"curriculum_and_syllabus": {Collection: CollSyllabus, NotFound: "No curriculum or syllabus found"},
	"alumni":                  {Collection: CollAlumni, NotFound: "No alumni data found"},
	"iqac":                    {Collection: CollIQAC, NotFound: "No IQAC data found"},
}

// Listings returns every pass-through listing, sorted by name.
func Listings() []Listing {
	out := make([]Listing, 0, len(listings))
	for name, l := range listings {
		l.Name = name
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// List returns every document of the named listing, in store order.
func (s *Service) List(ctx context.Context, name string) ([]store.Document, error) {
	l, ok := listings[name]
	if !ok {
		return nil, apperr.NotFound(name, "", "Unknown listing")
	}
	docs, err := s.find(ctx, name, "", all(l.Collection))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, notFound(name, "", l.NotFound)
	}
	return docs, nil
}
