// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package config loads the application configuration.
//
// Values are layered with Koanf: built-in defaults, then an optional YAML
// file, then environment variables. Only the variables listed in envMappings
// are read.
package config

import (
	"net"
	"strconv"
	"time"
)

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendBadger = "badger"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Content  ContentConfig  `koanf:"content"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	// Backend is "mongo" or "badger".
	Backend string `koanf:"backend"`

	MongoURI       string        `koanf:"mongo_uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`

	BadgerPath     string `koanf:"badger_path"`
	BadgerInMemory bool   `koanf:"badger_in_memory"`

	// SeedPath is a directory of <collection>.json files loaded at startup.
	SeedPath string `koanf:"seed_path"`
	// SeedMode is "if-empty" (skip populated collections) or "always".
	SeedMode string `koanf:"seed_mode"`

	// PingInterval is how often the store monitor checks connectivity.
	PingInterval time.Duration `koanf:"ping_interval"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the MongoDB store.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// ContentConfig holds content shaping settings.
type ContentConfig struct {
	// OrgTag is the organization segment of composite identifiers.
	OrgTag string `koanf:"org_tag"`
	// MOUGroupField is the MOU document field holding per-department lists.
	MOUGroupField string `koanf:"mou_group_field"`
	// PhotoURLTemplate renders staff photo URLs; {id} is the staff identifier.
	PhotoURLTemplate  string `koanf:"photo_url_template"`
	RecentEventsLimit int    `koanf:"recent_events_limit"`
}

// SecurityConfig holds the public-facing protections.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is json or console.
	Format string `koanf:"format"`
	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
