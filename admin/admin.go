// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves operator endpoints on a separate listener: the log level, API
// request logging and ledger health.
package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/api/utils"
	"github.com/umbrella-network/umbledger/health"
)

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type LogLevel struct {
	Level string `json:"level"`
}

type APILogs struct {
	Enabled bool `json:"enabled"`
}

func levelName(l slog.Level) string {
	for name, level := range levels {
		if level == l {
			return name
		}
	}
	return strings.ToLower(l.String())
}

type admin struct {
	logLevel *slog.LevelVar
	apiLogs  *atomic.Bool
	health   *health.Health
}

func (a *admin) handleGetLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &LogLevel{levelName(a.logLevel.Level())})
}

func (a *admin) handlePostLogLevel(w http.ResponseWriter, req *http.Request) error {
	var body LogLevel
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	level, ok := levels[strings.ToLower(body.Level)]
	if !ok {
		return utils.BadRequest(errors.Errorf("level: unknown %q", body.Level))
	}
	a.logLevel.Set(level)
	return a.handleGetLogLevel(w, req)
}

func (a *admin) handleGetAPILogs(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &APILogs{a.apiLogs.Load()})
}

func (a *admin) handlePostAPILogs(w http.ResponseWriter, req *http.Request) error {
	var body APILogs
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	a.apiLogs.Store(body.Enabled)
	return a.handleGetAPILogs(w, req)
}

func (a *admin) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status := a.health.Status()
	if status.Healthy {
		return utils.WriteJSON(w, status)
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(http.StatusServiceUnavailable)
	return json.NewEncoder(w).Encode(status)
}

// New returns the handler of the /admin routes. The handler changes logLevel and
// apiLogs in place.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, h *health.Health) http.Handler {
	a := &admin{logLevel, apiLogs, h}
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	sub.Path("/loglevel").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetLogLevel))
	sub.Path("/loglevel").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handlePostLogLevel))
	sub.Path("/apilogs").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAPILogs))
	sub.Path("/apilogs").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handlePostAPILogs))
	sub.Path("/health").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetHealth))

	return handlers.CompressHandler(router)
}
