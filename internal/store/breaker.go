// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/campusdocs/internal/logging"
	"github.com/tomtom215/campusdocs/internal/metrics"
)

// BreakerConfig configures the circuit breaker around a remote store.
type BreakerConfig struct {
	// MaxRequests allowed while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts reset.
	Interval time.Duration
	// Timeout before an open breaker moves to half-open.
	Timeout time.Duration
	// MinRequests before the failure ratio is considered.
	MinRequests uint32
	// FailureRatio at or above which the breaker opens.
	FailureRatio float64
}

// DefaultBreakerConfig returns the production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerStore wraps a Store with a circuit breaker. While open, queries
// fail fast with gobreaker.ErrOpenState instead of waiting on an unreachable
// backend.
//
// Context cancellation by the caller is not counted as a backend failure.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// WithBreaker wraps inner.
func WithBreaker(inner Store, cfg BreakerConfig) *BreakerStore {
	name := inner.Name() + "-store"

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening store circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Store circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{inner: inner, cb: cb, name: name}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// State returns the breaker's current state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// FindOne implements Store.
func (b *BreakerStore) FindOne(ctx context.Context, q Query) (Document, error) {
	res, err := b.execute(func() (any, error) {
		return b.inner.FindOne(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	doc, _ := res.(Document)
	return doc, nil
}

// Find implements Store.
func (b *BreakerStore) Find(ctx context.Context, q Query) ([]Document, error) {
	res, err := b.execute(func() (any, error) {
		return b.inner.Find(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	docs, _ := res.([]Document)
	return docs, nil
}

// Ping implements Store. Pings bypass the breaker so the health check sees
// the backend's real state while the circuit is open.
func (b *BreakerStore) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx)
}

// Name implements Store.
func (b *BreakerStore) Name() string {
	return b.inner.Name()
}

// Close implements Store.
func (b *BreakerStore) Close() error {
	return b.inner.Close()
}

// InsertMany forwards to the wrapped store when it is a Seeder.
func (b *BreakerStore) InsertMany(ctx context.Context, collection string, docs []Document) (int, error) {
	s, ok := b.inner.(Seeder)
	if !ok {
		return 0, fmt.Errorf("%s store does not support seeding", b.inner.Name())
	}
	return s.InsertMany(ctx, collection, docs)
}
