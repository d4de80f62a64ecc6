// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger provides an in-memory ledger with an advanceable clock for tests.
package testledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/lvldb"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

// Contract is a builtin contract, such as builtin.UMB.
type Contract interface {
	EncodeCall(name string, args ...any) ([]byte, error)
	MustMethod(name string) *abi.Method
}

// Ledger wraps a ledger.Ledger running on an in-memory db.
type Ledger struct {
	*ledger.Ledger
	t testing.TB
}

// New creates a ledger from cfg, or from the development config when cfg is nil.
func New(t testing.TB, cfg *genesis.Config) *Ledger {
	if cfg == nil {
		cfg = genesis.DevConfig()
	}
	gene, err := genesis.New(cfg)
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)

	l, err := ledger.Open(db, gene, ledger.Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		l.Close()
		db.Close()
	})
	return &Ledger{l, t}
}

// Accounts returns the development accounts.
func (l *Ledger) Accounts() []genesis.DevAccount {
	return genesis.DevAccounts()
}

// Now returns the ledger time.
func (l *Ledger) Now() uint64 {
	return l.HeadTime()
}

// Advance moves the clock forward by seconds.
func (l *Ledger) Advance(seconds uint64) {
	require.NoError(l.t, l.AdvanceTime(l.HeadTime()+seconds))
}

// Exec executes a call of method name on the contract at to. The output may be reverted.
func (l *Ledger) Exec(caller, to umb.Address, c Contract, name string, args ...any) *tx.Output {
	data, err := c.EncodeCall(name, args...)
	require.NoError(l.t, err)
	out, err := l.Execute(tx.NewClause(to).WithData(data), caller, 0)
	require.NoError(l.t, err)
	return out
}

// MustExec is like Exec, and fails the test when the call is reverted.
func (l *Ledger) MustExec(caller, to umb.Address, c Contract, name string, args ...any) *tx.Output {
	out := l.Exec(caller, to, c, name, args...)
	require.False(l.t, out.Reverted, "%s reverted: %s", name, out.RevertReason)
	return out
}

// ExecRaw executes a clause with raw data and value.
func (l *Ledger) ExecRaw(caller umb.Address, clause *tx.Clause) *tx.Output {
	out, err := l.Execute(clause, caller, 0)
	require.NoError(l.t, err)
	return out
}

// View calls method name without committing, and returns its decoded outputs.
func (l *Ledger) View(to umb.Address, c Contract, name string, args ...any) []any {
	data, err := c.EncodeCall(name, args...)
	require.NoError(l.t, err)
	out, err := l.Call(tx.NewClause(to).WithData(data), umb.Address{}, 0)
	require.NoError(l.t, err)
	require.False(l.t, out.Reverted, "%s reverted: %s", name, out.RevertReason)
	values, err := c.MustMethod(name).DecodeOutputValues(out.Data)
	require.NoError(l.t, err)
	return values
}
