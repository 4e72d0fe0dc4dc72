// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package api

import (
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusdocs/internal/apperr"
	"github.com/tomtom215/campusdocs/internal/logging"
)

// maxLoggedValueLen bounds client-supplied values in log fields.
const maxLoggedValueLen = 128

// messageBody is the 404 body.
type messageBody struct {
	Message string `json:"message"`
}

// errorBody is the 400 and 500 body.
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes payload as-is. Successful responses carry a weak ETag
// and honor If-None-Match, unless the handler already set Cache-Control.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")
	switch {
	case status != http.StatusOK:
		w.Header().Set("Cache-Control", "no-store")
	case w.Header().Get("Cache-Control") == "":
		etag := generateETag(data)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a weak ETag over the FNV-1a hash of data.
func generateETag(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return `W/"` + strconv.FormatUint(h.Sum64(), 16) + `"`
}

// respondError maps err to its status and body. NotFound is logged at debug
// and InvalidRequest at info; server-side kinds are logged at error with the
// entity and identifier, and the client only sees a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	message := apperr.PublicMessage(err)

	var entity, id string
	var ae *apperr.Error
	if errors.As(err, &ae) {
		entity, id = ae.Entity, logging.Sanitize(ae.ID, maxLoggedValueLen)
	}

	logger := logging.Ctx(r.Context())
	switch kind {
	case apperr.KindNotFound:
		logger.Debug().Str("entity", entity).Str("id", id).Msg(message)
	case apperr.KindInvalidRequest:
		logger.Info().Str("entity", entity).Str("id", id).Str("reason", message).Msg("Invalid request")
	default:
		logger.Error().Err(err).Str("kind", string(kind)).Str("entity", entity).Str("id", id).Msg("Request failed")
	}

	if kind == apperr.KindNotFound {
		respondJSON(w, r, status, messageBody{Message: message})
		return
	}
	respondJSON(w, r, status, errorBody{Error: message})
}
