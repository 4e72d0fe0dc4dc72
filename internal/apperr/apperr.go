// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package apperr defines the error taxonomy shared by the content layers.
//
// Every non-success outcome of a content lookup is one of four kinds:
//
//   - NotFound: the query ran but matched nothing. Maps to 404.
//   - InvalidRequest: a path parameter is missing or malformed. Maps to 400.
//   - MalformedRecord: a stored document violates the schema the normalizer
//     relies on. Maps to 500.
//   - StorageFailure: the document store itself failed. Maps to 500.
//
// Errors carry the entity type and identifier of the lookup so that handlers
// can log them meaningfully. The client-facing message never contains the
// wrapped cause.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalidRequest  Kind = "INVALID_REQUEST"
	KindMalformedRecord Kind = "MALFORMED_RECORD"
	KindStorageFailure  Kind = "STORAGE_FAILURE"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is the structured error returned by the content service.
type Error struct {
	Kind Kind
	// Entity names the kind of thing looked up, e.g. "hod" or "staff".
	Entity string
	// ID is the identifier or scope used for the lookup.
	ID string
	// Message is safe to show to API clients.
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Entity != "" {
		msg += " " + e.Entity
	}
	if e.ID != "" {
		msg += fmt.Sprintf(" %q", e.ID)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an empty result for a lookup.
func NotFound(entity, id, message string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Message: message}
}

// InvalidRequest reports a missing or malformed request parameter.
func InvalidRequest(entity, id, message string) *Error {
	return &Error{Kind: KindInvalidRequest, Entity: entity, ID: id, Message: message}
}

// MalformedRecord reports a stored record that does not fit its schema.
func MalformedRecord(entity, id, message string) *Error {
	return &Error{Kind: KindMalformedRecord, Entity: entity, ID: id, Message: message}
}

// StorageFailure wraps a document store error.
func StorageFailure(entity, id string, err error) *Error {
	return &Error{Kind: KindStorageFailure, Entity: entity, ID: id, Message: "storage query failed", Err: err}
}

// WithContext returns a copy of err with entity and id filled in where empty.
// Errors that are not *Error are returned unchanged.
func WithContext(err error, entity, id string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	c := *e
	if c.Entity == "" {
		c.Entity = entity
	}
	if c.ID == "" {
		c.ID = id
	}
	return &c
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps a Kind to the status code returned at the HTTP boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message suitable for an API client.
// Server-side kinds always collapse to a generic message.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Internal server error"
	}
	switch e.Kind {
	case KindNotFound, KindInvalidRequest:
		if e.Message != "" {
			return e.Message
		}
		return string(e.Kind)
	default:
		if e.Entity != "" {
			return "Error fetching " + e.Entity + " data"
		}
		return "Error fetching data"
	}
}
