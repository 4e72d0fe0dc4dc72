// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package store defines the read-only document store boundary.
//
// Two backends implement Store: a MongoDB client (store/mongostore) for the
// production deployment and an embedded BadgerDB (store/badgerstore) used for
// single-node deployments and tests. Queries are expressed with a small
// filter model (equality and anchored regular expressions over dotted paths)
// that both backends evaluate with MongoDB semantics: a path that crosses an
// array matches when any element matches.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Document is a schema-less source record.
type Document = map[string]any

// IDField is the primary key field every stored document carries.
const IDField = "_id"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Op is a filter operator.
type Op int

const (
	// OpEq matches when the value at the path equals Value.
	OpEq Op = iota
	// OpRegex matches when a string value at the path matches the pattern in Value.
	OpRegex
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpRegex:
		return "regex"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Filter is one condition of a query. Filters in a query are ANDed.
type Filter struct {
	// Path is a dotted field path. Segments may contain spaces.
	Path  string
	Op    Op
	Value any
}

// Eq builds an equality filter.
func Eq(path string, value any) Filter {
	return Filter{Path: path, Op: OpEq, Value: value}
}

// Regex builds a regular expression filter.
func Regex(path, pattern string) Filter {
	return Filter{Path: path, Op: OpRegex, Value: pattern}
}

// Projection restricts the fields returned for each document.
type Projection struct {
	// Include lists top-level fields to keep. Empty keeps every field.
	Include []string
	// ExcludeID drops the _id field.
	ExcludeID bool
}

// Query describes one read.
type Query struct {
	Collection string
	Filters    []Filter
	Projection *Projection
	// Limit caps the number of documents; zero means no limit.
	Limit int
}

// Validate checks that the query is executable.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Collection) == "" {
		return errors.New("query collection is required")
	}
	if q.Limit < 0 {
		return fmt.Errorf("query limit must be >= 0, got %d", q.Limit)
	}
	for _, f := range q.Filters {
		if f.Path == "" {
			return errors.New("filter path is required")
		}
		if f.Op == OpRegex {
			pattern, ok := f.Value.(string)
			if !ok {
				return fmt.Errorf("regex filter on %q needs a string pattern", f.Path)
			}
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("regex filter on %q: %w", f.Path, err)
			}
		}
	}
	return nil
}

// Store is a read-only document store. Implementations are safe for
// concurrent use.
type Store interface {
	// FindOne returns the first matching document in natural order, or a nil
	// Document when nothing matches.
	FindOne(ctx context.Context, q Query) (Document, error)

	// Find returns every matching document in natural order.
	Find(ctx context.Context, q Query) ([]Document, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs and metrics.
	Name() string

	Close() error
}

// Seeder bulk-loads documents at deployment time. It is not reachable from
// the HTTP API. FindOne lets the loader tell whether a collection is empty.
type Seeder interface {
	FindOne(ctx context.Context, q Query) (Document, error)
	InsertMany(ctx context.Context, collection string, docs []Document) (int, error)
}
