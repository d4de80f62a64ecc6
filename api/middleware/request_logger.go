// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// RequestLoggerMiddleware logs requests. Every request is logged while enabled is set. Requests
// slower than slowQueriesThreshold, or answered with a 5xx status when log5xxErrors is set, are
// logged as warnings regardless.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration, log5xxErrors bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && slowQueriesThreshold == 0 && !log5xxErrors {
				next.ServeHTTP(w, r)
				return
			}
			// the body is consumed here and replayed to next
			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("failed to read request body", "uri", r.URL.String(), "err", err)
					http.Error(w, "unreadable body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			rec := newStatusRecorder(w)
			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			fields := []any{
				"method", r.Method,
				"uri", r.URL.String(),
				"status", rec.status,
				"durationMs", duration.Milliseconds(),
				"body", string(body),
			}
			switch {
			case log5xxErrors && rec.status >= http.StatusInternalServerError:
				logger.Warn("API request failed", fields...)
			case slowQueriesThreshold > 0 && duration > slowQueriesThreshold:
				logger.Warn("slow API request", fields...)
			case enabled.Load():
				logger.Info("API request", fields...)
			}
		})
	}
}
