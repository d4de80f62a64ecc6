// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/umbrella-network/umbledger/admin"
	"github.com/umbrella-network/umbledger/api"
	"github.com/umbrella-network/umbledger/health"
	"github.com/umbrella-network/umbledger/metrics"
)

const shutdownTimeout = 5 * time.Second

// serveHTTP serves handler on listener until ctx is done, then shuts the server down.
func serveHTTP(ctx context.Context, name string, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%v server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping server...", "name", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func listen(name, addr string) (net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %v addr [%v]: %w", name, addr, err)
	}
	return listener, nil
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	l, closeLedger := openLedger(ctx)
	defer func() { logger.Info("closing ledger..."); closeLedger() }()

	enableReqLogger := &atomic.Bool{}
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler, closeSubs := api.New(l, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      enableReqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
	})
	defer closeSubs()

	apiListener, err := listen("API", ctx.String(apiAddrFlag.Name))
	if err != nil {
		return err
	}

	info, err := newLedgerInfo(l, false)
	if err != nil {
		apiListener.Close()
		return err
	}

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(exitCtx)

	if ctx.Bool(enableAdminFlag.Name) {
		adminListener, err := listen("admin", ctx.String(adminAddrFlag.Name))
		if err != nil {
			apiListener.Close()
			return err
		}
		h := health.New(l)
		waitHealth := h.Start(gctx)
		defer waitHealth()

		logger.Info("admin server started", "url", "http://"+adminListener.Addr().String()+"/admin")
		g.Go(func() error {
			return serveHTTP(gctx, "admin", adminListener, admin.New(logLevel, enableReqLogger, h))
		})
	}

	logger.Info("API server started",
		"url", "http://"+apiListener.Addr().String()+"/",
		"genesis", info.GenesisHash,
		"headTime", info.HeadTimeUTC,
	)
	g.Go(func() error {
		return serveHTTP(gctx, "API", apiListener, handler)
	})
	return g.Wait()
}
