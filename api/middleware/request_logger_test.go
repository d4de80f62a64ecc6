// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	level  slog.Level
	msg    string
	fields map[string]any
}

// recordingLogger keeps what is logged at info and above.
type recordingLogger struct {
	records []record
}

func (l *recordingLogger) add(level slog.Level, msg string, ctx []any) {
	fields := make(map[string]any)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields[ctx[i].(string)] = ctx[i+1]
	}
	l.records = append(l.records, record{level, msg, fields})
}

func (l *recordingLogger) With(...any) log.Logger                       { return l }
func (l *recordingLogger) New(...any) log.Logger                        { return l }
func (l *recordingLogger) Log(level slog.Level, msg string, ctx ...any) { l.add(level, msg, ctx) }
func (l *recordingLogger) Write(level slog.Level, msg string, ctx ...any) {
	l.add(level, msg, ctx)
}
func (l *recordingLogger) Trace(string, ...any)                     {}
func (l *recordingLogger) Debug(string, ...any)                     {}
func (l *recordingLogger) Info(msg string, ctx ...any)              { l.add(slog.LevelInfo, msg, ctx) }
func (l *recordingLogger) Warn(msg string, ctx ...any)              { l.add(slog.LevelWarn, msg, ctx) }
func (l *recordingLogger) Error(msg string, ctx ...any)             { l.add(slog.LevelError, msg, ctx) }
func (l *recordingLogger) Crit(msg string, ctx ...any)              { l.add(log.LevelCrit, msg, ctx) }
func (l *recordingLogger) Enabled(context.Context, slog.Level) bool { return true }
func (l *recordingLogger) Handler() slog.Handler                    { return nil }

func respond(status int, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		// the body must still be readable behind the middleware
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(status)
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name         string
		handler      http.HandlerFunc
		enabled      bool
		slow         time.Duration
		log5xxErrors bool
		wantLevel    slog.Level
		wantMsg      string
	}{
		{"disabled", respond(http.StatusOK, 0), false, 0, false, 0, ""},
		{"enabled", respond(http.StatusOK, 0), true, 0, false, slog.LevelInfo, "API request"},
		{"enabled client error", respond(http.StatusBadRequest, 0), true, 0, true, slog.LevelInfo, "API request"},
		{"slow", respond(http.StatusOK, 20*time.Millisecond), false, 5 * time.Millisecond, false, slog.LevelWarn, "slow API request"},
		{"fast under threshold", respond(http.StatusOK, 0), false, time.Second, false, 0, ""},
		{"5xx", respond(http.StatusInternalServerError, 0), false, 0, true, slog.LevelWarn, "API request failed"},
		{"5xx not logged", respond(http.StatusInternalServerError, 0), false, 0, false, 0, ""},
		{"5xx wins over slow", respond(http.StatusServiceUnavailable, 20*time.Millisecond), true, 5 * time.Millisecond, true, slog.LevelWarn, "API request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			enabled := &atomic.Bool{}
			enabled.Store(tt.enabled)
			handler := RequestLoggerMiddleware(logger, enabled, tt.slow, tt.log5xxErrors)(tt.handler)

			body := `{"to":"0x0000000000000000000000000000000000000001"}`
			req := httptest.NewRequest(http.MethodPost, "/clauses/call?x=1", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if tt.wantMsg == "" {
				assert.Empty(t, logger.records)
				return
			}
			require.Len(t, logger.records, 1)
			r := logger.records[0]
			assert.Equal(t, tt.wantLevel, r.level)
			assert.Equal(t, tt.wantMsg, r.msg)
			assert.Equal(t, http.MethodPost, r.fields["method"])
			assert.Equal(t, "/clauses/call?x=1", r.fields["uri"])
			assert.Equal(t, rec.Code, r.fields["status"])
			assert.Equal(t, body, r.fields["body"])
			assert.Contains(t, r.fields, "durationMs")
		})
	}
}

func TestRequestLoggerToggle(t *testing.T) {
	logger := &recordingLogger{}
	enabled := &atomic.Bool{}
	handler := RequestLoggerMiddleware(logger, enabled, 0, false)(respond(http.StatusOK, 0))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ledger", nil))
	assert.Empty(t, logger.records)

	enabled.Store(true)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ledger", nil))
	assert.Len(t, logger.records, 1)
}

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestRequestLoggerHijack(t *testing.T) {
	enabled := &atomic.Bool{}
	enabled.Store(true)
	handler := RequestLoggerMiddleware(&recordingLogger{}, enabled, 0, false)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _, err := w.(http.Hijacker).Hijack()
			assert.NoError(t, err)
		}))

	rec := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/subscriptions/events", nil))
	assert.True(t, rec.hijacked)

	// a writer that cannot be hijacked reports it
	handler = RequestLoggerMiddleware(&recordingLogger{}, enabled, 0, false)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _, err := w.(http.Hijacker).Hijack()
			assert.Error(t, err)
		}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/subscriptions/events", nil))
}
