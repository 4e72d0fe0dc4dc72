// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateContent(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMongo:
		if err := validateMongoURI(c.Store.MongoURI); err != nil {
			return err
		}
		if strings.TrimSpace(c.Store.Database) == "" {
			return fmt.Errorf("DB_NAME is required when STORE_BACKEND=mongo")
		}
		if c.Store.ConnectTimeout <= 0 {
			return fmt.Errorf("MONGO_CONNECT_TIMEOUT must be positive")
		}
	case BackendBadger:
		if !c.Store.BadgerInMemory && strings.TrimSpace(c.Store.BadgerPath) == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_BACKEND=badger")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMongo, BackendBadger, c.Store.Backend)
	}

	if c.Store.SeedMode != "if-empty" && c.Store.SeedMode != "always" {
		return fmt.Errorf("SEED_MODE must be \"if-empty\" or \"always\", got %q", c.Store.SeedMode)
	}
	if c.Store.PingInterval <= 0 {
		return fmt.Errorf("STORE_PING_INTERVAL must be positive")
	}
	if b := c.Store.Breaker; b.Enabled {
		if b.FailureRatio <= 0 || b.FailureRatio > 1 {
			return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", b.FailureRatio)
		}
		if b.Timeout <= 0 {
			return fmt.Errorf("BREAKER_TIMEOUT must be positive")
		}
	}
	return nil
}

func validateMongoURI(raw string) error {
	if raw == "" {
		return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("MONGO_URI failed to parse: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("MONGO_URI scheme must be mongodb or mongodb+srv, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("MONGO_URI host is required")
	}
	return nil
}

func (c *Config) validateContent() error {
	if strings.Contains(c.Content.OrgTag, "-") {
		return fmt.Errorf("ORG_TAG must not contain '-', got %q", c.Content.OrgTag)
	}
	if c.Content.RecentEventsLimit < 1 {
		return fmt.Errorf("RECENT_EVENTS_LIMIT must be at least 1, got %d", c.Content.RecentEventsLimit)
	}
	if strings.TrimSpace(c.Content.MOUGroupField) == "" {
		return fmt.Errorf("MOU_GROUP_FIELD must not be empty")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
