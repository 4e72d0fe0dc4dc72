// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	doc := Document{
		"dept_id":       "5",
		"department_id": float64(3),
		"data": []any{
			map[string]any{"data": []any{
				map[string]any{"year": "2023"},
				map[string]any{"year": "2024"},
			}},
		},
		"supporting_staff": []any{
			map[string]any{"Unique_id": "VEC-50-001"},
			map[string]any{"Unique_id": "VEC-5-002"},
		},
		"tags": []any{"a", "b"},
	}

	tests := []struct {
		name    string
		filters []Filter
		want    bool
	}{
		{"string eq", []Filter{Eq("dept_id", "5")}, true},
		{"string vs int", []Filter{Eq("dept_id", 5)}, false},
		{"int vs float", []Filter{Eq("department_id", 3)}, true},
		{"int64 vs float", []Filter{Eq("department_id", int64(3))}, true},
		{"nested double array", []Filter{Eq("data.data.year", "2024")}, true},
		{"nested miss", []Filter{Eq("data.data.year", "2025")}, false},
		{"regex in array", []Filter{Regex("supporting_staff.Unique_id", "^VEC-5-")}, true},
		{"regex anchored miss", []Filter{Regex("supporting_staff.Unique_id", "^VEC-6-")}, false},
		{"array contains", []Filter{Eq("tags", "b")}, true},
		{"array index", []Filter{Eq("tags.0", "a")}, true},
		{"and", []Filter{Eq("dept_id", "5"), Eq("data.data.year", "2023")}, true},
		{"and miss", []Filter{Eq("dept_id", "5"), Eq("data.data.year", "1999")}, false},
		{"missing path", []Filter{Eq("nope.x", "a")}, false},
		{"no filters", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := NewMatcher(tt.filters)
			if err != nil {
				t.Fatal(err)
			}
			if got := m.Match(doc); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	doc := Document{"_id": "x", "Name": "A", "Photo": "p", "Secret": "s"}

	if got := Project(doc, nil); len(got) != 4 {
		t.Errorf("nil projection should keep all fields, got %v", got)
	}

	got := Project(doc, &Projection{Include: []string{"Name", "Photo", "Missing"}})
	if len(got) != 3 || got["_id"] != "x" {
		t.Errorf("include projection = %v", got)
	}

	got = Project(doc, &Projection{Include: []string{"Name"}, ExcludeID: true})
	if len(got) != 1 || got["Name"] != "A" {
		t.Errorf("include+exclude projection = %v", got)
	}

	got = Project(doc, &Projection{ExcludeID: true})
	if len(got) != 3 {
		t.Errorf("exclude-only projection = %v", got)
	}
	if _, ok := doc["_id"]; !ok {
		t.Error("Project must not mutate its input")
	}
}

func TestQueryValidate(t *testing.T) {
	t.Parallel()

	bad := []Query{
		{},
		{Collection: "x", Limit: -1},
		{Collection: "x", Filters: []Filter{{Path: "", Op: OpEq}}},
		{Collection: "x", Filters: []Filter{{Path: "a", Op: OpRegex, Value: 5}}},
		{Collection: "x", Filters: []Filter{Regex("a", "[")}},
	}
	for i, q := range bad {
		if err := q.Validate(); err == nil {
			t.Errorf("case %d: Validate() = nil, want error", i)
		}
	}
	if err := (Query{Collection: "x", Filters: []Filter{Regex("a", "^b-")}}).Validate(); err != nil {
		t.Errorf("valid query: %v", err)
	}
}

func TestDecodeDocuments(t *testing.T) {
	t.Parallel()

	docs, err := DecodeDocuments([]byte(`[{"a":1},{"a":2}]`))
	if err != nil || len(docs) != 2 {
		t.Fatalf("array: docs=%v err=%v", docs, err)
	}

	docs, err = DecodeDocuments([]byte("  {\"principal\":\"X\"}\n"))
	if err != nil || len(docs) != 1 || docs[0]["principal"] != "X" {
		t.Fatalf("object: docs=%v err=%v", docs, err)
	}

	docs, err = DecodeDocuments([]byte("   "))
	if err != nil || docs != nil {
		t.Fatalf("empty: docs=%v err=%v", docs, err)
	}

	if _, err := DecodeDocuments([]byte(`"text"`)); err == nil {
		t.Error("scalar should fail")
	}
}

type recordingSeeder struct {
	got map[string]int
}

func (r *recordingSeeder) FindOne(_ context.Context, q Query) (Document, error) {
	if r.got[q.Collection] == 0 {
		return nil, nil
	}
	return Document{"collection": q.Collection}, nil
}

func (r *recordingSeeder) InsertMany(_ context.Context, collection string, docs []Document) (int, error) {
	r.got[collection] += len(docs)
	return len(docs), nil
}

func TestSeed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("IQAC.json", `[{"year":"2023"},{"year":"2024"}]`)
	write("principal_data.json", `{"name":"Dr. P"}`)
	write("empty.json", `[]`)
	write("notes.txt", `ignored`)
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o700); err != nil {
		t.Fatal(err)
	}

	rec := &recordingSeeder{got: map[string]int{}}
	n, err := Seed(context.Background(), rec, dir, SeedIfEmpty)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Seed() = %d, want 3", n)
	}
	if rec.got["IQAC"] != 2 || rec.got["principal_data"] != 1 {
		t.Errorf("seeded = %v", rec.got)
	}
	if _, ok := rec.got["empty"]; ok {
		t.Error("empty files should be skipped")
	}
}

func TestSeed_MissingDir(t *testing.T) {
	t.Parallel()

	rec := &recordingSeeder{got: map[string]int{}}
	if _, err := Seed(context.Background(), rec, filepath.Join(t.TempDir(), "absent"), SeedIfEmpty); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestSeed_Modes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "alumni.json"), []byte(`[{"name":"A"},{"name":"B"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	t.Run("if-empty skips populated collections", func(t *testing.T) {
		rec := &recordingSeeder{got: map[string]int{}}
		for boot := 1; boot <= 2; boot++ {
			if _, err := Seed(ctx, rec, dir, SeedIfEmpty); err != nil {
				t.Fatalf("boot %d: Seed() error = %v", boot, err)
			}
		}
		if rec.got["alumni"] != 2 {
			t.Errorf("alumni documents after two boots = %d, want 2", rec.got["alumni"])
		}
	})

	t.Run("always reinserts", func(t *testing.T) {
		rec := &recordingSeeder{got: map[string]int{}}
		for boot := 1; boot <= 2; boot++ {
			if _, err := Seed(ctx, rec, dir, SeedAlways); err != nil {
				t.Fatalf("boot %d: Seed() error = %v", boot, err)
			}
		}
		if rec.got["alumni"] != 4 {
			t.Errorf("alumni documents after two boots = %d, want 4", rec.got["alumni"])
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := &recordingSeeder{got: map[string]int{}}
		if _, err := Seed(ctx, rec, dir, SeedMode("sometimes")); err == nil {
			t.Error("unknown mode should fail")
		}
		if len(rec.got) != 0 {
			t.Errorf("nothing should be inserted, got %v", rec.got)
		}
	})
}
