// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package metrics registers the Prometheus collectors for the API process.
//
// Instrumented areas:
//   - HTTP request count, latency and in-flight requests
//   - Document store query latency and errors, per backend and collection
//   - Store reachability as seen by the periodic monitor
//   - Normalization failures (malformed stored records)
//   - Circuit breaker state around the remote store
package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Document Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of document store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "collection"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Total number of failed document store queries",
		},
		[]string{"backend", "operation", "collection", "error_type"},
	)

	StoreUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_up",
			Help: "Whether the last store ping succeeded (1) or failed (0)",
		},
		[]string{"backend"},
	)

	StorePingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_ping_duration_seconds",
			Help:    "Duration of store health pings in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend"},
	)

	// Content Metrics
	NormalizationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_normalization_failures_total",
			Help: "Stored records rejected by the normalizer as malformed",
		},
		[]string{"entity"},
	)

	ContentNotFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_not_found_total",
			Help: "Lookups that legitimately matched nothing",
		},
		[]string{"entity"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version", "store_backend"},
	)
)

// SetAppInfo publishes the build information gauge.
func SetAppInfo(version, backend string) {
	AppInfo.WithLabelValues(version, runtime.Version(), backend).Set(1)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreQuery records the latency of one store query and, when err is
// non-nil, an error classified into a bounded label set.
func RecordStoreQuery(backend, operation, collection string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(backend, operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(backend, operation, collection, ErrorType(err)).Inc()
	}
}

// RecordStorePing records a health ping result.
func RecordStorePing(backend string, duration time.Duration, err error) {
	StorePingDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err != nil {
		StoreUp.WithLabelValues(backend).Set(0)
		return
	}
	StoreUp.WithLabelValues(backend).Set(1)
}

// ErrorType maps an error to a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	default:
		return "other"
	}
}
