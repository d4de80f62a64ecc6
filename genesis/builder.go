// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/lvldb"
	"github.com/umbrella-network/umbledger/runtime"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	clause *tx.Clause
	caller umb.Address
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call.
func (b *Builder) Call(clause *tx.Clause, caller umb.Address) *Builder {
	b.calls = append(b.calls, call{clause, caller})
	return b
}

// ComputeHash computes the hash of the genesis changes.
func (b *Builder) ComputeHash() (umb.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return umb.Bytes32{}, err
	}
	defer db.Close()

	st := state.New(db)
	if _, err := b.Build(st); err != nil {
		return umb.Bytes32{}, err
	}
	return st.Stage().Hash(), nil
}

// Build applies the presets to state, and returns the events of the calls.
// Nothing is committed.
func (b *Builder) Build(state *state.State) (events tx.Events, err error) {
	for _, proc := range b.stateProcs {
		if err := proc(state); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}

	rt := runtime.New(state, b.timestamp)
	for i, call := range b.calls {
		out, err := rt.ExecuteClause(call.clause, call.caller)
		if err != nil {
			return nil, errors.Wrapf(err, "call %d", i)
		}
		if out.Reverted {
			return nil, errors.Errorf("call %d reverted: %s", i, out.RevertReason)
		}
		events = append(events, out.Events...)
	}
	return events, nil
}
