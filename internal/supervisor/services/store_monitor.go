// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package services

import (
	"context"
	"time"

	"github.com/tomtom215/campusdocs/internal/logging"
	"github.com/tomtom215/campusdocs/internal/metrics"
)

// Pinger is a document store that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

// StoreMonitorService pings the document store on an interval and records
// the result in the store metrics. Transitions between reachable and
// unreachable are logged once each.
type StoreMonitorService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	name     string

	healthy bool
}

// NewStoreMonitorService creates the monitor. A non-positive interval means 30s.
func NewStoreMonitorService(store Pinger, interval time.Duration) *StoreMonitorService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		timeout:  timeout,
		name:     "store-monitor",
		healthy:  true,
	}
}

// Serve implements suture.Service. It pings once immediately, then on
// every tick until ctx is canceled.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *StoreMonitorService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.store.Ping(pingCtx)
	metrics.RecordStorePing(s.store.Name(), time.Since(start), err)

	switch {
	case err != nil && s.healthy:
		logging.Warn().Err(err).Str("backend", s.store.Name()).Msg("Document store unreachable")
	case err == nil && !s.healthy:
		logging.Info().Str("backend", s.store.Name()).Msg("Document store reachable again")
	}
	s.healthy = err == nil
}

// String implements fmt.Stringer for suture's logs.
func (s *StoreMonitorService) String() string {
	return s.name
}
