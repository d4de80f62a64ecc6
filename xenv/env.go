// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	// ErrInvalidInput is the revert raised when call data does not match the method.
	ErrInvalidInput = reverts.New(reverts.InvalidArgument, "invalid input")
	// ErrValueNotAccepted is the revert raised when a call carries native currency.
	ErrValueNotAccepted = reverts.New(reverts.InvalidArgument, "native currency is not accepted")
)

// BlockContext block context.
type BlockContext struct {
	Time uint64
}

// Frame is the call frame hosting a native method invocation.
type Frame interface {
	// AddEvent records an event of the current clause.
	AddEvent(event *tx.Event)
	// Invoke performs a nested call, one level deeper than depth.
	Invoke(caller, to umb.Address, data []byte, depth int) ([]byte, error)
}

type vmError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	abi      *abi.Method
	state    *state.State
	blockCtx *BlockContext
	caller   umb.Address
	to       umb.Address
	value    *big.Int
	input    []byte
	depth    int
	frame    Frame
}

// New create a new env.
func New(
	abi *abi.Method,
	state *state.State,
	blockCtx *BlockContext,
	caller, to umb.Address,
	value *big.Int,
	input []byte,
	depth int,
	frame Frame,
) *Environment {
	return &Environment{
		abi:      abi,
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		to:       to,
		value:    value,
		input:    input,
		depth:    depth,
		frame:    frame,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() umb.Address         { return env.caller }
func (env *Environment) To() umb.Address             { return env.to }
func (env *Environment) Depth() int                  { return env.depth }

// Now returns the time of the execution.
func (env *Environment) Now() uint64 { return env.blockCtx.Time }

func (env *Environment) ParseArgs(val any) {
	if err := env.abi.DecodeInput(env.input, val); err != nil {
		panic(&vmError{ErrInvalidInput})
	}
}

// Require stops the execution with err, unless err is nil.
func (env *Environment) Require(err error) {
	if err != nil {
		panic(&vmError{err})
	}
}

func (env *Environment) Stop(vmerr error) {
	panic(&vmError{vmerr})
}

// Log emits an event of the executing contract.
func (env *Environment) Log(abi *abi.Event, topics []umb.Bytes32, args ...any) {
	data, err := abi.Encode(args...)
	if err != nil {
		panic(errors.WithMessage(err, "encode native event"))
	}

	all := make([]umb.Bytes32, 0, len(topics)+1)
	all = append(all, abi.ID())
	all = append(all, topics...)
	env.frame.AddEvent(&tx.Event{
		Address: env.to,
		Topics:  all,
		Data:    data,
	})
}

// Invoke calls another contract on behalf of the executing one, and returns its output.
func (env *Environment) Invoke(to umb.Address, data []byte) ([]byte, error) {
	return env.frame.Invoke(env.to, to, data, env.depth)
}

func (env *Environment) Call(proc func(env *Environment) []any) func() ([]byte, error) {
	return func() (data []byte, err error) {
		if env.value != nil && env.value.Sign() != 0 {
			// reject value transfer on call
			return nil, ErrValueNotAccepted
		}

		defer func() {
			if e := recover(); e != nil {
				if rec, ok := e.(*vmError); ok {
					err = rec.cause
				} else {
					panic(e)
				}
			}
		}()
		output := proc(env)
		data, err = env.abi.EncodeOutput(output...)
		if err != nil {
			panic(errors.WithMessage(err, "encode native output"))
		}
		return
	}
}
