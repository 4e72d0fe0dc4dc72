// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package mongostore

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tomtom215/campusdocs/internal/store"
)

func TestFilterTranslation(t *testing.T) {
	t.Parallel()

	got := filter([]store.Filter{
		store.Eq("department_id", 5),
		store.Regex("unique_id", "^VEC-5-"),
	})
	if len(got) != 2 {
		t.Fatalf("filter() len = %d", len(got))
	}
	if got[0].Key != "department_id" || got[0].Value != 5 {
		t.Errorf("eq translated to %v", got[0])
	}
	re, ok := got[1].Value.(primitive.Regex)
	if !ok || re.Pattern != "^VEC-5-" {
		t.Errorf("regex translated to %#v", got[1].Value)
	}
}

func TestProjectionTranslation(t *testing.T) {
	t.Parallel()

	if projection(nil) != nil {
		t.Error("nil projection should translate to nil")
	}
	if projection(&store.Projection{}) != nil {
		t.Error("empty projection should translate to nil")
	}

	got := projection(&store.Projection{Include: []string{"Name", "Google Scholar Profile"}, ExcludeID: true})
	want := bson.D{{Key: "Name", Value: 1}, {Key: "Google Scholar Profile", Value: 1}, {Key: "_id", Value: 0}}
	if len(got) != len(want) {
		t.Fatalf("projection() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("projection()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestToPlain(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	when := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	doc := toDocument(bson.M{
		"_id":   oid,
		"count": int32(7),
		"when":  primitive.NewDateTimeFromTime(when),
		"list":  bson.A{bson.M{"Unique_id": "VEC-5-001"}, "x"},
		"sub":   bson.D{{Key: "a", Value: int32(1)}},
		"none":  primitive.Null{},
	})

	if doc["_id"] != oid.Hex() {
		t.Errorf("_id = %v", doc["_id"])
	}
	if doc["count"] != int64(7) {
		t.Errorf("count = %#v", doc["count"])
	}
	if doc["when"] != "2024-03-10T00:00:00Z" {
		t.Errorf("when = %v", doc["when"])
	}
	list, ok := doc["list"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("list = %#v", doc["list"])
	}
	if m, ok := list[0].(store.Document); !ok || m["Unique_id"] != "VEC-5-001" {
		t.Errorf("list[0] = %#v", list[0])
	}
	sub, ok := doc["sub"].(map[string]any)
	if !ok || sub["a"] != int64(1) {
		t.Errorf("sub = %#v", doc["sub"])
	}
	if doc["none"] != nil {
		t.Errorf("none = %#v", doc["none"])
	}
}
