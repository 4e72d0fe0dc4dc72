// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package main is the entry point of the Campusdocs server.
//
// The server initializes components in this order:
//
//  1. Configuration: defaults, config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Document store: MongoDB (optionally behind a circuit breaker) or Badger
//  4. Seeding: optional bulk load of SEED_PATH into the store
//  5. HTTP server and store monitor under a suture supervisor tree
//
// SIGINT and SIGTERM stop the tree; the HTTP server drains in-flight
// requests within HTTP_SHUTDOWN_TIMEOUT before the store is closed.
//
// Example:
//
//	export MONGO_URI=mongodb://db.internal:27017
//	export DB_NAME=campus
//	export PORT=5000
//	./campusdocs
//
// Local development without MongoDB:
//
//	STORE_BACKEND=badger BADGER_IN_MEMORY=true SEED_PATH=./seed ./campusdocs
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/campusdocs/internal/api"
	"github.com/tomtom215/campusdocs/internal/config"
	"github.com/tomtom215/campusdocs/internal/content"
	"github.com/tomtom215/campusdocs/internal/logging"
	"github.com/tomtom215/campusdocs/internal/metrics"
	"github.com/tomtom215/campusdocs/internal/store"
	"github.com/tomtom215/campusdocs/internal/store/badgerstore"
	"github.com/tomtom215/campusdocs/internal/store/mongostore"
	"github.com/tomtom215/campusdocs/internal/supervisor"
	"github.com/tomtom215/campusdocs/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("store_backend", cfg.Store.Backend).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Campusdocs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, &cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open document store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()

	metrics.SetAppInfo(version, st.Name())

	svc, err := content.NewService(st, content.Config{
		OrgTag:            cfg.Content.OrgTag,
		MOUGroupField:     cfg.Content.MOUGroupField,
		PhotoURLTemplate:  cfg.Content.PhotoURLTemplate,
		RecentEventsLimit: cfg.Content.RecentEventsLimit,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create content service")
		return
	}

	handler := api.NewHandler(svc, st, version)
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, mw),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}
	tree.AddStoreService(services.NewStoreMonitorService(st, cfg.Store.PingInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Campusdocs stopped")
}

// openStore opens the configured backend, seeds it when SEED_PATH is set,
// and wraps MongoDB in a circuit breaker when enabled.
func openStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		ms, err := mongostore.Open(ctx, mongostore.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.Database,
			ConnectTimeout: cfg.ConnectTimeout,
			QueryTimeout:   cfg.QueryTimeout,
			MaxPoolSize:    cfg.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		if err := seed(ctx, ms, cfg); err != nil {
			_ = ms.Close()
			return nil, err
		}
		logging.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")

		if !cfg.Breaker.Enabled {
			return ms, nil
		}
		return store.WithBreaker(ms, store.BreakerConfig{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval,
			Timeout:      cfg.Breaker.Timeout,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		}), nil

	case config.BackendBadger:
		bs, err := badgerstore.Open(badgerstore.Config{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerInMemory,
		})
		if err != nil {
			return nil, err
		}
		if err := seed(ctx, bs, cfg); err != nil {
			_ = bs.Close()
			return nil, err
		}
		logging.Info().Str("path", cfg.BadgerPath).Bool("in_memory", cfg.BadgerInMemory).Msg("Opened Badger store")
		return bs, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func seed(ctx context.Context, s store.Seeder, cfg *config.StoreConfig) error {
	if cfg.SeedPath == "" {
		return nil
	}
	n, err := store.Seed(ctx, s, cfg.SeedPath, store.SeedMode(cfg.SeedMode))
	if err != nil {
		return fmt.Errorf("seed from %s: %w", cfg.SeedPath, err)
	}
	logging.Info().
		Int("documents", n).
		Str("dir", cfg.SeedPath).
		Str("mode", cfg.SeedMode).
		Msg("Seeded document store")
	return nil
}
