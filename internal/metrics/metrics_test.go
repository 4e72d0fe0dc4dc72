// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestRecordStoreQuery(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		err        error
		wantErrs   float64
		errType    string
	}{
		{name: "success", collection: "test_ok", err: nil, wantErrs: 0, errType: "other"},
		{name: "failure", collection: "test_fail", err: errors.New("connection refused"), wantErrs: 1, errType: "other"},
		{name: "timeout", collection: "test_timeout", err: fmt.Errorf("find: %w", context.DeadlineExceeded), wantErrs: 1, errType: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordStoreQuery("badger", "find", tt.collection, 5*time.Millisecond, tt.err)

			got := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("badger", "find", tt.collection, tt.errType))
			if got != tt.wantErrs {
				t.Errorf("errors = %v, want %v", got, tt.wantErrs)
			}
		})
	}

	if n := testutil.CollectAndCount(StoreQueryDuration); n == 0 {
		t.Error("query duration histogram should have samples")
	}
}

func TestRecordStorePing(t *testing.T) {
	RecordStorePing("test-backend", time.Millisecond, nil)
	if got := testutil.ToFloat64(StoreUp.WithLabelValues("test-backend")); got != 1 {
		t.Errorf("store_up = %v, want 1", got)
	}

	RecordStorePing("test-backend", time.Millisecond, errors.New("down"))
	if got := testutil.ToFloat64(StoreUp.WithLabelValues("test-backend")); got != 0 {
		t.Errorf("store_up = %v, want 0", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test-metrics", "200"))
	RecordAPIRequest("GET", "/api/test-metrics", "200", 10*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test-metrics", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestErrorType(t *testing.T) {
	t.Parallel()

	tests := map[string]error{
		"none":         nil,
		"canceled":     fmt.Errorf("wrap: %w", context.Canceled),
		"timeout":      context.DeadlineExceeded,
		"circuit_open": fmt.Errorf("mongo-store: %w", gobreaker.ErrOpenState),
		"other":        errors.New("x"),
	}
	for want, err := range tests {
		if got := ErrorType(err); got != want {
			t.Errorf("ErrorType(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("test", "badger")
	if n := testutil.CollectAndCount(AppInfo); n < 1 {
		t.Errorf("app_info series = %d", n)
	}
}
