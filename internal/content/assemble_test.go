// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package content

import (
	"fmt"
	"testing"

	"github.com/tomtom215/campusdocs/internal/identifier"
	"github.com/tomtom215/campusdocs/internal/store"
)

func dated(label, date string) map[string]any {
	m := map[string]any{"title": label}
	if date != "" {
		m["date"] = date
	}
	return m
}

func titles(entries []any) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i], _ = e.(map[string]any)["title"].(string)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortByDateDesc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []any
		want    []string
	}{
		{
			name: "newest first",
			entries: []any{
				dated("a", "2024-01-01"),
				dated("b", "2023-06-15"),
				dated("c", "2024-03-10"),
			},
			want: []string{"c", "a", "b"},
		},
		{
			name: "undated entries last in input order",
			entries: []any{
				dated("x", "not a date"),
				dated("a", "2024-01-01"),
				dated("y", ""),
				dated("b", "2024-03-10"),
			},
			want: []string{"b", "a", "x", "y"},
		},
		{
			name: "equal dates keep input order",
			entries: []any{
				dated("first", "2024-01-01"),
				dated("second", "2024-01-01"),
			},
			want: []string{"first", "second"},
		},
		{
			name: "mixed layouts",
			entries: []any{
				dated("slash", "15/06/2023"),
				dated("iso", "2024-03-10T09:30:00Z"),
				dated("long", "January 1, 2024"),
			},
			want: []string{"iso", "long", "slash"},
		},
		{
			name:    "empty",
			entries: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := titles(SortByDateDesc(tt.entries, "date"))
			if !equalStrings(got, tt.want) {
				t.Errorf("SortByDateDesc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByDateDesc_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := []any{dated("old", "2020-01-01"), dated("new", "2024-01-01")}
	_ = SortByDateDesc(in, "date")
	if got := titles(in); !equalStrings(got, []string{"old", "new"}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestRecent(t *testing.T) {
	t.Parallel()

	var entries []any
	for i := 1; i <= 15; i++ {
		entries = append(entries, dated(fmt.Sprintf("e%02d", i), fmt.Sprintf("2024-01-%02d", i)))
	}

	got := Recent(entries, "date", 10)
	if len(got) != 10 {
		t.Fatalf("Recent() returned %d entries, want 10", len(got))
	}
	names := titles(got)
	for i, name := range names {
		want := fmt.Sprintf("e%02d", 15-i)
		if name != want {
			t.Errorf("Recent()[%d] = %s, want %s", i, name, want)
		}
	}

	if got := Recent(entries[:3], "date", 10); len(got) != 3 {
		t.Errorf("Recent() over 3 entries returned %d", len(got))
	}
}

func TestFilterStatus(t *testing.T) {
	t.Parallel()
	entries := []any{
		map[string]any{"title": "a", "status": "True"},
		map[string]any{"title": "b", "status": "False"},
		map[string]any{"title": "c", "status": true},
		map[string]any{"title": "d", "status": "true"},
		map[string]any{"title": "e"},
		map[string]any{"title": "f", "status": "True"},
	}
	got := titles(FilterStatus(entries, "status", "True"))
	if !equalStrings(got, []string{"a", "f"}) {
		t.Errorf("FilterStatus() = %v, want [a f]", got)
	}
}

func TestFilterByScope(t *testing.T) {
	t.Parallel()
	m, err := identifier.NewMatcher("ORG", 5)
	if err != nil {
		t.Fatal(err)
	}
	entries := []any{
		map[string]any{"Unique_id": "ORG-5-001"},
		map[string]any{"Unique_id": "ORG-50-001"},
		map[string]any{"Unique_id": "ORG-5-002"},
		map[string]any{"Unique_id": 5},
		map[string]any{"name": "no id"},
	}
	got := FilterByScope(entries, "Unique_id", m)
	if len(got) != 2 {
		t.Fatalf("FilterByScope() returned %d entries, want 2", len(got))
	}
	for i, want := range []string{"ORG-5-001", "ORG-5-002"} {
		if id := got[i].(map[string]any)["Unique_id"]; id != want {
			t.Errorf("entry %d = %v, want %s", i, id, want)
		}
	}
}

func TestNarrowByAndPluck(t *testing.T) {
	t.Parallel()
	mous := []any{
		map[string]any{"unique_id": 2021.0, "org": "A"},
		map[string]any{"unique_id": "2022", "org": "B"},
		map[string]any{"org": "C"},
	}

	if got := NarrowBy(mous, "unique_id", "2021"); len(got) != 1 {
		t.Errorf("NarrowBy(2021) returned %d entries, want 1", len(got))
	}
	if got := NarrowBy(mous, "unique_id", "2022"); len(got) != 1 {
		t.Errorf("NarrowBy(2022) returned %d entries, want 1", len(got))
	}
	if got := NarrowBy(mous, "unique_id", "1999"); len(got) != 0 {
		t.Errorf("NarrowBy(1999) returned %d entries, want 0", len(got))
	}

	ids := Pluck(mous, "unique_id")
	if len(ids) != 3 || ids[0] != 2021.0 || ids[1] != "2022" || ids[2] != nil {
		t.Errorf("Pluck() = %v", ids)
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()
	entries := []any{
		"not an object",
		map[string]any{"Departments": "CSE", "n": 1},
		map[string]any{"Departments": "CSE", "n": 2},
	}
	got, ok := FindFirst(entries, "Departments", "CSE")
	if !ok || got["n"] != 1 {
		t.Errorf("FindFirst() = %v, %v", got, ok)
	}
	if _, ok := FindFirst(entries, "Departments", "ECE"); ok {
		t.Error("FindFirst() matched an absent department")
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()
	docs := []store.Document{
		{"events": []any{map[string]any{"title": "a"}, "junk", map[string]any{"title": "b"}}},
		{"events": map[string]any{"title": "c"}},
		{"events": "scalar"},
		{"other": []any{map[string]any{"title": "z"}}},
		{"events": []any{map[string]any{"title": "d"}}},
	}
	got := titles(Flatten(docs, "events"))
	if !equalStrings(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("Flatten() = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"2024-03-10", "10-03-2024", "10/03/2024", "2024/03/10", "10.03.2024", "Mar 10, 2024", " 2024-03-10 "} {
		ts, ok := ParseDate(s)
		if !ok {
			t.Errorf("ParseDate(%q) failed", s)
			continue
		}
		if ts.Year() != 2024 || ts.Month() != 3 || ts.Day() != 10 {
			t.Errorf("ParseDate(%q) = %v", s, ts)
		}
	}
	for _, v := range []any{nil, "", "soon", 20240310} {
		if _, ok := ParseDate(v); ok {
			t.Errorf("ParseDate(%v) should fail", v)
		}
	}
}
