// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/health"
	"github.com/umbrella-network/umbledger/test/testledger"
)

type fixture struct {
	handler  http.Handler
	logLevel *slog.LevelVar
	apiLogs  *atomic.Bool
}

func newFixture(t *testing.T) *fixture {
	l := testledger.New(t, nil)
	f := &fixture{logLevel: new(slog.LevelVar), apiLogs: new(atomic.Bool)}
	f.handler = New(f.logLevel, f.apiLogs, health.New(l.Ledger))
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestLogLevel(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin/loglevel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"level":"info"}`, rec.Body.String())

	tests := []struct {
		body   string
		status int
		level  slog.Level
	}{
		{`{"level":"debug"}`, http.StatusOK, log.LevelDebug},
		{`{"level":"TRACE"}`, http.StatusOK, log.LevelTrace},
		{`{"level":"crit"}`, http.StatusOK, log.LevelCrit},
		{`{"level":"loud"}`, http.StatusBadRequest, log.LevelCrit},
		{`{"verbosity":3}`, http.StatusBadRequest, log.LevelCrit},
		{`not json`, http.StatusBadRequest, log.LevelCrit},
	}
	for _, tt := range tests {
		rec := f.do(http.MethodPost, "/admin/loglevel", tt.body)
		assert.Equal(t, tt.status, rec.Code, tt.body)
		assert.Equal(t, tt.level, f.logLevel.Level(), tt.body)
	}

	rec = f.do(http.MethodGet, "/admin/loglevel", "")
	assert.JSONEq(t, `{"level":"crit"}`, rec.Body.String())
}

func TestAPILogs(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/admin/apilogs", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
	assert.True(t, f.apiLogs.Load())

	rec = f.do(http.MethodPost, "/admin/apilogs", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.apiLogs.Load())

	rec = f.do(http.MethodGet, "/admin/apilogs", "")
	assert.JSONEq(t, `{"enabled":false}`, rec.Body.String())

	// subrouters report a method mismatch as not found
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPut, "/admin/apilogs", "").Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status health.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Healthy)
	assert.False(t, status.GenesisHash.IsZero())
}
