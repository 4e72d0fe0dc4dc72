// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type flakyStore struct {
	name  string
	fail  atomic.Bool
	calls atomic.Int32
}

var errBackendDown = errors.New("backend down")

func (f *flakyStore) FindOne(ctx context.Context, q Query) (Document, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fail.Load() {
		return nil, errBackendDown
	}
	return Document{"collection": q.Collection}, nil
}

func (f *flakyStore) Find(ctx context.Context, q Query) ([]Document, error) {
	doc, err := f.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}
	return []Document{doc}, nil
}

func (f *flakyStore) Ping(context.Context) error {
	if f.fail.Load() {
		return errBackendDown
	}
	return nil
}

func (f *flakyStore) Name() string { return f.name }
func (f *flakyStore) Close() error { return nil }

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := &flakyStore{name: "pass"}
	b := WithBreaker(inner, testBreakerConfig())

	doc, err := b.FindOne(context.Background(), Query{Collection: "HODS"})
	if err != nil {
		t.Fatal(err)
	}
	if doc["collection"] != "HODS" {
		t.Errorf("FindOne() = %v", doc)
	}
	docs, err := b.Find(context.Background(), Query{Collection: "events"})
	if err != nil || len(docs) != 1 {
		t.Fatalf("Find() = %v, %v", docs, err)
	}
	if b.Name() != "pass" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestBreakerStore_OpensAndFailsFast(t *testing.T) {
	t.Parallel()

	inner := &flakyStore{name: "trip"}
	inner.fail.Store(true)
	b := WithBreaker(inner, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := b.Find(ctx, Query{Collection: "x"}); !errors.Is(err, errBackendDown) {
			t.Fatalf("call %d: err = %v, want backend error", i, err)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	before := inner.calls.Load()
	_, err := b.FindOne(ctx, Query{Collection: "x"})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState", err)
	}
	if inner.calls.Load() != before {
		t.Error("open breaker must not call the backend")
	}

	if err := b.Ping(ctx); !errors.Is(err, errBackendDown) {
		t.Errorf("Ping() should bypass the breaker, got %v", err)
	}
}

func TestBreakerStore_CancellationDoesNotTrip(t *testing.T) {
	t.Parallel()

	inner := &flakyStore{name: "cancel"}
	b := WithBreaker(inner, testBreakerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, _ = b.Find(ctx, Query{Collection: "x"})
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerStore_InsertManyRequiresSeeder(t *testing.T) {
	t.Parallel()

	b := WithBreaker(&flakyStore{name: "noseed"}, testBreakerConfig())
	if _, err := b.InsertMany(context.Background(), "x", []Document{{}}); err == nil {
		t.Error("InsertMany on a non-seeder should fail")
	}
}
