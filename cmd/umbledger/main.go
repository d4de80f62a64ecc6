// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.New("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "umbledger"
	app.Usage = "Umbrella token ledger"
	app.Copyright = "2025 The Umbrella Network developers"
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "initialize the ledger database from a genesis config",
			Flags:  ledgerFlags,
			Action: initAction,
		},
		{
			Name:      "exec",
			Usage:     "execute a contract method and commit its effects",
			ArgsUsage: "<contract> <method> [args...]",
			Flags:     append([]cli.Flag{callerFlag, dataFlag, valueFlag, timeFlag}, ledgerFlags...),
			Action:    execAction,
		},
		{
			Name:      "call",
			Usage:     "call a contract method without committing",
			ArgsUsage: "<contract> <method> [args...]",
			Flags:     append([]cli.Flag{callerFlag, dataFlag, valueFlag, timeFlag}, ledgerFlags...),
			Action:    callAction,
		},
		{
			Name:   "time",
			Usage:  "show or move the ledger time",
			Flags:  append([]cli.Flag{setTimeFlag, advanceTimeFlag}, ledgerFlags...),
			Action: timeAction,
		},
		{
			Name:  "merkle",
			Usage: "sorted merkle tree of addresses",
			Subcommands: []cli.Command{
				{
					Name:      "root",
					Usage:     "compute the merkle root",
					ArgsUsage: "[addresses...]",
					Flags:     []cli.Flag{csvFlag},
					Action:    merkleRootAction,
				},
				{
					Name:      "proof",
					Usage:     "compute the inclusion proof of an address",
					ArgsUsage: "[addresses...]",
					Flags:     []cli.Flag{csvFlag, addressFlag},
					Action:    merkleProofAction,
				},
				{
					Name:      "verify",
					Usage:     "verify an inclusion proof",
					ArgsUsage: "<address>",
					Flags:     []cli.Flag{rootFlag, proofFlag},
					Action:    merkleVerifyAction,
				},
			},
		},
		{
			Name:  "airdrop",
			Usage: "airdrop distribution tools",
			Subcommands: []cli.Command{
				{
					Name:      "check",
					Usage:     "validate an airdrop csv and print its totals and merkle root",
					ArgsUsage: "<file>",
					Action:    airdropCheckAction,
				},
			},
		},
		{
			Name:  "serve",
			Usage: "serve the ledger API",
			Flags: append([]cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				enableMetricsFlag,
				pprofFlag,
				enableAdminFlag,
				adminAddrFlag,
			}, ledgerFlags...),
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
