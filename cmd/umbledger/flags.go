// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis config (yaml), the development config is used when omitted",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the ledger caches",
		Value: 1024,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}

	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the account making the call",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: "hex encoded calldata, used instead of method and args",
	}
	valueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "native value sent with the clause",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "unix time of the execution, defaults to the ledger time",
	}
	setTimeFlag = cli.Uint64Flag{
		Name:  "set",
		Usage: "move the ledger time to the given unix time",
	}
	advanceTimeFlag = cli.Uint64Flag{
		Name:  "advance",
		Usage: "move the ledger time forward by the given seconds",
	}

	csvFlag = cli.StringFlag{
		Name:  "csv",
		Usage: "read addresses from an airdrop csv file",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "address to prove",
	}
	rootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "merkle root",
	}
	proofFlag = cli.StringFlag{
		Name:  "proof",
		Usage: "comma separated proof elements",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with execution time(ms) above threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx",
		Usage: "log API requests answered with a 5xx status",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served at /metrics",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "serve the admin API: log level, API logs and health",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin API service listening address",
	}
)

var ledgerFlags = []cli.Flag{
	dataDirFlag,
	genesisFlag,
	cacheFlag,
	verbosityFlag,
}
