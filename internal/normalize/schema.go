// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package normalize reshapes loosely-typed source documents into canonical
// records with fixed field names.
//
// Each entity type is described by a Schema: an ordered table of fields, each
// naming its source key, value kind and absence policy. Source keys are
// looked up tolerantly, so "Mail ID", "mail id" and "MailID" all resolve to
// the same field. Placeholder tokens that the source data uses in place of a
// missing value are listed per field and become null on entry.
package normalize

import "strings"

// Kind is the value type of an output field.
type Kind int

const (
	// KindAny passes the source value through unchanged.
	KindAny Kind = iota
	// KindString accepts strings and formats numbers as strings.
	KindString
	// KindNumber accepts numbers and numeric strings.
	KindNumber
	// KindObject accepts nested objects.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	default:
		return "any"
	}
}

// Policy decides what happens when a source field is absent.
type Policy int

const (
	// Required fields are expected on every record. Absence still yields null.
	Required Policy = iota
	// Optional fields map absence and sentinel values to null.
	Optional
	// Sequence fields are optional lists. Absence maps to an empty list.
	Sequence
	// Structural fields are lists the record cannot be rendered without.
	// Absence, or a value that is not a list, is a MalformedRecord error.
	Structural
)

func (p Policy) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Sequence:
		return "sequence"
	case Structural:
		return "structural"
	default:
		return "unknown"
	}
}

// Field declares one output field.
type Field struct {
	// Output is the field name in the canonical record.
	Output string
	// Source is the key looked up in the raw document.
	Source string
	Kind   Kind
	Policy Policy
	// Sentinels are placeholder values that mean "absent" for this field.
	// Comparison ignores surrounding whitespace and case.
	Sentinels []string
	// Elem is the element schema for Sequence and Structural fields. When nil,
	// list elements pass through unchanged.
	Elem *Schema
	// Derive computes the output from the source value's string form instead
	// of copying it. It is called only when the source value is present.
	Derive func(source string) any
}

// Schema is an ordered table of fields for one entity type.
type Schema struct {
	// Name identifies the entity in error messages.
	Name   string
	Fields []Field
	// Skip reports whether a raw element is an artifact row that must be
	// dropped before mapping. Only consulted for list elements.
	Skip func(raw map[string]any) bool
}

// Sentinel sets shared by the entity schemas.
var (
	// DashSentinels covers the dash the source uses for empty cells.
	DashSentinels = []string{"-", ""}

	// ExperienceSentinels are header tokens that leak into experience rows
	// from the tabular import.
	ExperienceSentinels = []string{"TOTAL", "TO", "NO.OF.YEARS", "NO.OF MONTHS", "-", ""}
)

func isSentinel(v any, sentinels []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	for _, tok := range sentinels {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}
