// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package middleware provides the HTTP middleware of the API router.
//
// All middleware has the chi signature func(http.Handler) http.Handler:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(middleware.AccessLog(time.Second))
package middleware

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/tomtom215/campusdocs/internal/logging"
)

// Header names for request tracing.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// maxInboundIDLen bounds IDs accepted from upstream proxies.
const maxInboundIDLen = 128

// RequestID assigns a request ID (reusing a well-formed X-Request-ID from an
// upstream proxy) and a correlation ID, echoes both in response headers, and
// stores them in the request context for logging.Ctx.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := inboundID(r.Header.Get(HeaderRequestID))
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}
		correlationID := inboundID(r.Header.Get(HeaderCorrelationID))
		if correlationID == "" {
			correlationID = logging.GenerateCorrelationID()
		}

		w.Header().Set(HeaderRequestID, requestID)
		w.Header().Set(HeaderCorrelationID, correlationID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithCorrelationID(ctx, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// inboundID returns id when it is safe to log and echo, else "".
func inboundID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxInboundIDLen {
		return ""
	}
	for _, c := range id {
		if c > unicode.MaxASCII || !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' || c == '.') {
			return ""
		}
	}
	return id
}
