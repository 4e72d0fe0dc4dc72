// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package content

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/campusdocs/internal/identifier"
	"github.com/tomtom215/campusdocs/internal/store"
)

// DateLayouts are tried in order when parsing entry dates.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ParseDate parses a date value using DateLayouts.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range DateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func fieldOf(entry any, field string) (any, bool) {
	m, ok := entry.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[field]
	return v, ok
}

// SortByDateDesc returns a copy of entries ordered by the date in field,
// newest first. Entries whose date is missing or unparseable follow all
// dated entries. The sort is stable: ties and undated entries keep their
// input order.
func SortByDateDesc(entries []any, field string) []any {
	type keyed struct {
		entry any
		when  time.Time
		ok    bool
	}
	ks := make([]keyed, len(entries))
	for i, e := range entries {
		v, _ := fieldOf(e, field)
		when, ok := ParseDate(v)
		ks[i] = keyed{entry: e, when: when, ok: ok}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.when.After(b.when)
	})

	out := make([]any, len(ks))
	for i := range ks {
		out[i] = ks[i].entry
	}
	return out
}

// Recent returns the n newest entries by the date in field.
func Recent(entries []any, field string, n int) []any {
	sorted := SortByDateDesc(entries, field)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterStatus keeps entries whose field is exactly the string marker.
// Boolean true or a differently-cased string does not match.
func FilterStatus(entries []any, field, marker string) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		if v, ok := fieldOf(e, field); ok {
			if s, ok := v.(string); ok && s == marker {
				out = append(out, e)
			}
		}
	}
	return out
}

// FilterByScope keeps entries whose identifier in field belongs to the
// matcher's scope, preserving input order.
func FilterByScope(entries []any, field string, m identifier.Matcher) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		if v, ok := fieldOf(e, field); ok {
			if s, ok := v.(string); ok && m.Matches(s) {
				out = append(out, e)
			}
		}
	}
	return out
}

// NarrowBy keeps entries whose field, rendered as a string, equals want.
func NarrowBy(entries []any, field, want string) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		if v, ok := fieldOf(e, field); ok {
			if s, ok := scalarString(v); ok && s == want {
				out = append(out, e)
			}
		}
	}
	return out
}

// Pluck returns field from each entry, in order. Entries without the field
// contribute null.
func Pluck(entries []any, field string) []any {
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i], _ = fieldOf(e, field)
	}
	return out
}

// FindFirst returns the first entry whose field equals want.
func FindFirst(entries []any, field string, want any) (map[string]any, bool) {
	for _, e := range entries {
		if v, ok := fieldOf(e, field); ok && store.Equal(v, want) {
			return e.(map[string]any), true
		}
	}
	return nil, false
}

// Flatten concatenates the field of every document, the way an unwind
// stage does: list values contribute their object elements, a single
// object contributes itself, and anything else is skipped.
func Flatten(docs []store.Document, field string) []any {
	var out []any
	for _, d := range docs {
		switch v := d[field].(type) {
		case []any:
			for _, item := range v {
				if _, ok := item.(map[string]any); ok {
					out = append(out, item)
				}
			}
		case map[string]any:
			out = append(out, v)
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
