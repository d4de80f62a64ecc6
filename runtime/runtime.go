// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes clauses against the builtin contracts.
package runtime

import (
	"errors"
	"math/big"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/metrics"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

// ErrCallDepth is the revert raised when nested calls go deeper than umb.MaxCallDepth.
var ErrCallDepth = reverts.New(reverts.InvalidState, "call depth exceeded")

var (
	metricCalls        = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"contract", "method"})
	metricReverts      = metrics.LazyLoadCounterVec("runtime_reverts_count", []string{"contract", "kind"})
	metricCallDuration = metrics.LazyLoadHistogramVec("runtime_call_duration_ms", []string{"contract"}, metrics.BucketExecution)
)

// Runtime is to support clause execution.
type Runtime struct {
	state    *state.State
	blockCtx xenv.BlockContext
}

// New create a Runtime object executing at the given time.
func New(state *state.State, blockTime uint64) *Runtime {
	return &Runtime{
		state:    state,
		blockCtx: xenv.BlockContext{Time: blockTime},
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) BlockTime() uint64   { return rt.blockCtx.Time }

// frame collects the events of one clause, and runs nested calls.
type frame struct {
	rt     *Runtime
	events tx.Events
}

func (f *frame) AddEvent(event *tx.Event) {
	f.events = append(f.events, event)
}

func (f *frame) Invoke(caller, to umb.Address, data []byte, depth int) ([]byte, error) {
	return f.call(caller, to, nil, data, depth+1)
}

// call runs a single call. Changes and events of a failed call are discarded.
func (f *frame) call(caller, to umb.Address, value *big.Int, data []byte, depth int) ([]byte, error) {
	if depth > umb.MaxCallDepth {
		return nil, ErrCallDepth
	}

	checkpoint := f.rt.state.NewCheckpoint()
	nEvents := len(f.events)

	run, err := builtin.HandleNativeCall(f.rt.state, &f.rt.blockCtx, caller, to, value, data, depth, f)
	var out []byte
	switch {
	case err != nil:
	case run != nil:
		out, err = run()
	case value != nil && value.Sign() != 0:
		// plain account
		err = xenv.ErrValueNotAccepted
	}
	if err != nil {
		f.rt.state.RevertTo(checkpoint)
		f.events = f.events[:nEvents]
		return nil, err
	}
	return out, nil
}

// ExecuteClause executes a clause sent by caller. A reverted clause leaves the state untouched
// and is reported in the output. The error is non-nil only on failures of the ledger itself.
func (rt *Runtime) ExecuteClause(clause *tx.Clause, caller umb.Address) (*tx.Output, error) {
	startTime := time.Now()
	contract, method := rt.describe(clause)
	defer func() {
		metricCallDuration().ObserveWithLabels(time.Since(startTime).Milliseconds(), map[string]string{"contract": contract})
	}()
	metricCalls().AddWithLabel(1, map[string]string{"contract": contract, "method": method})

	f := &frame{rt: rt}
	data, err := f.call(caller, clause.To(), clause.Value(), clause.Data(), 0)
	if err != nil {
		var rerr *reverts.ErrRequire
		if !errors.As(err, &rerr) {
			return nil, pkgerrors.Wrap(err, "execute clause")
		}
		metricReverts().AddWithLabel(1, map[string]string{"contract": contract, "kind": rerr.Kind().String()})
		return &tx.Output{
			Data:         rerr.Bytes(),
			Reverted:     true,
			RevertReason: rerr.Error(),
			RevertKind:   rerr.Kind(),
		}, nil
	}
	return &tx.Output{
		Data:   data,
		Events: f.events,
	}, nil
}

// Call executes a clause and discards every change it makes.
func (rt *Runtime) Call(clause *tx.Clause, caller umb.Address) (*tx.Output, error) {
	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)

	return rt.ExecuteClause(clause, caller)
}

// describe returns the metric labels of a clause.
func (rt *Runtime) describe(clause *tx.Clause) (contract string, method string) {
	contract, method = "none", "none"
	if code, err := rt.state.GetCode(clause.To()); err == nil && len(code) > 0 {
		contract = string(code)
	}
	if id, err := abi.ExtractMethodID(clause.Data()); err == nil {
		method = id.String()
		if a, ok := builtin.ABIByKind(contract); ok {
			if m, found := a.MethodByID(id); found {
				method = m.Name()
			}
		}
	}
	return
}
