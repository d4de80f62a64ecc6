// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves the ledger over HTTP and websocket.
package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/umbrella-network/umbledger/api/clauses"
	"github.com/umbrella-network/umbledger/api/contracts"
	ledgerapi "github.com/umbrella-network/umbledger/api/ledger"
	"github.com/umbrella-network/umbledger/api/middleware"
	"github.com/umbrella-network/umbledger/api/subscriptions"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/metrics"
)

var logger = log.New("pkg", "api")

type Options struct {
	// AllowedOrigins is a comma separated CORS origin list, "*" for any. Cross-origin
	// requests are refused when it is empty.
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
}

// New builds the API handler. The returned func closes open websocket subscriptions,
// which outlive the HTTP server's shutdown once hijacked.
func New(l *ledger.Ledger, opts Options) (http.HandlerFunc, func()) {
	origins := parseOrigins(opts.AllowedOrigins)
	router := mux.NewRouter()

	ledgerapi.New(l).Mount(router, "/ledger")
	clauses.New(l).Mount(router, "/clauses")
	contracts.New(l).Mount(router, "/contracts")
	subs := subscriptions.New(l, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		mountPprof(router.PathPrefix("/debug/pprof").Subrouter())
	}
	if opts.EnableMetrics {
		router.Path("/metrics").Methods(http.MethodGet).Handler(metrics.HTTPHandler())
		router.Use(middleware.Metrics)
	}

	reqLogging := opts.EnableReqLogger
	if reqLogging == nil {
		reqLogging = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, reqLogging, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	if len(origins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedHeaders([]string{"content-type"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		)(handler)
	}
	return handler.ServeHTTP, subs.Close
}

func parseOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.ToLower(strings.TrimSpace(o)); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func mountPprof(sub *mux.Router) {
	sub.HandleFunc("/cmdline", pprof.Cmdline)
	sub.HandleFunc("/profile", pprof.Profile)
	sub.HandleFunc("/symbol", pprof.Symbol)
	sub.HandleFunc("/trace", pprof.Trace)
	sub.PathPrefix("/").HandlerFunc(pprof.Index)
}
