// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/campusdocs/internal/logging"
)

// maxLoggedPathLen bounds the request path written to logs.
const maxLoggedPathLen = 256

// AccessLog logs one event per request through the request-scoped logger.
// 5xx responses are logged at error and requests slower than slow at warn.
// Everything else is logged at debug.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case slow > 0 && duration > slow:
				event = logger.Warn().Dur("threshold", slow)
			}
			event.
				Str("method", r.Method).
				Str("path", logging.Sanitize(r.URL.Path, maxLoggedPathLen)).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg("HTTP request")
		})
	}
}
