// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/kv"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/lvldb"
	"github.com/umbrella-network/umbledger/umb"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// initLogger installs the terminal logger. The returned level can be changed while running.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	lvl := new(slog.LevelVar)
	lvl.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)))
	return lvl
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "network.umbrella.ledger")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "network.umbrella.ledger")
		default:
			return filepath.Join(home, ".network.umbrella.ledger")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

type ledgerConfig struct {
	dataDir     string
	genesisPath string
	cacheMB     int
	fdCache     int
}

// selectGenesis builds the genesis of the config file when one is given. Otherwise it is the
// genesis the database was initialized with, or the development genesis for an empty database.
func selectGenesis(db kv.Getter, genesisPath string) (*genesis.Genesis, error) {
	if genesisPath != "" {
		cfg, err := genesis.LoadConfig(genesisPath)
		if err != nil {
			return nil, err
		}
		return genesis.New(cfg)
	}
	gene, err := ledger.LoadGenesis(db)
	if errors.Is(err, ledger.ErrNotInitialized) {
		return genesis.New(genesis.DevConfig())
	}
	return gene, err
}

// loadLedger opens the ledger database in cfg.dataDir. The returned func closes both.
func loadLedger(cfg ledgerConfig) (*ledger.Ledger, func(), error) {
	dir := filepath.Join(cfg.dataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cfg.cacheMB / 2,
		OpenFilesCacheCapacity: cfg.fdCache,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open ledger database [%v]", dir)
	}

	gene, err := selectGenesis(db, cfg.genesisPath)
	if err != nil {
		db.Close()
		return nil, nil, errors.WithMessage(err, "genesis")
	}
	// the other half of the cache holds state entries of about 1KB
	l, err := ledger.Open(db, gene, ledger.Options{CacheSize: cfg.cacheMB / 2 * 1024})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, func() {
		l.Close()
		db.Close()
	}, nil
}

func openLedger(ctx *cli.Context) (*ledger.Ledger, func()) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)
	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	l, closeFunc, err := loadLedger(ledgerConfig{
		dataDir:     makeDataDir(ctx),
		genesisPath: ctx.String(genesisFlag.Name),
		cacheMB:     cacheMB,
		fdCache:     fdCache,
	})
	if err != nil {
		fatal(err)
	}
	return l, closeFunc
}

// resolveContract resolves a contract name of the suite, or an address. The ABI is nil when
// the address holds no contract.
func resolveContract(l *ledger.Ledger, s string) (umb.Address, *abi.ABI, error) {
	addr, ok := l.Contracts().Lookup(s)
	if !ok {
		parsed, err := umb.ParseAddress(s)
		if err != nil {
			return umb.Address{}, nil, errors.Errorf("unknown contract %q", s)
		}
		addr = *parsed
	}
	code, err := l.State().GetCode(addr)
	if err != nil {
		return umb.Address{}, nil, err
	}
	contractABI, _ := builtin.ABIByKind(string(code))
	return addr, contractABI, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
