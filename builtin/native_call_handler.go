// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

var (
	ErrUnknownMethod = reverts.New(reverts.InvalidArgument, "unknown method")
	ErrValueOverflow = reverts.New(reverts.InvalidArgument, "value out of range")
)

type nativeMethod struct {
	abi *abi.Method
	run func(env *xenv.Environment) []any
}

type methodKey struct {
	kind string
	id   abi.MethodID
}

type nativeDefine struct {
	name string
	run  func(env *xenv.Environment) []any
}

var nativeMethods = make(map[methodKey]*nativeMethod)

func registerNatives(c *contract, defines []nativeDefine) {
	for _, def := range defines {
		if method, found := c.ABI.MethodByName(def.name); found {
			nativeMethods[methodKey{c.name, method.ID()}] = &nativeMethod{
				abi: method,
				run: def.run,
			}
		} else {
			panic("method not found: " + def.name)
		}
	}
}

// HandleNativeCall returns the executor of a call to a deployed contract, or nil if to holds
// no contract. A call of a method the contract does not implement reverts.
func HandleNativeCall(
	state *state.State,
	blockCtx *xenv.BlockContext,
	caller, to umb.Address,
	value *big.Int,
	input []byte,
	depth int,
	frame xenv.Frame,
) (func() ([]byte, error), error) {
	code, err := state.GetCode(to)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, nil
	}

	id, err := abi.ExtractMethodID(input)
	if err != nil {
		return unknownMethod, nil
	}
	method := nativeMethods[methodKey{string(code), id}]
	if method == nil {
		return unknownMethod, nil
	}
	env := xenv.New(method.abi, state, blockCtx, caller, to, value, input, depth, frame)
	return env.Call(method.run), nil
}

func unknownMethod() ([]byte, error) {
	return nil, ErrUnknownMethod
}

func topic(addr umb.Address) umb.Bytes32 {
	return umb.BytesToBytes32(addr[:])
}

func addresses(in []common.Address) []umb.Address {
	out := make([]umb.Address, len(in))
	for i, a := range in {
		out[i] = umb.Address(a)
	}
	return out
}

func u256(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func toUint64(env *xenv.Environment, v *big.Int) uint64 {
	if !v.IsUint64() {
		env.Stop(ErrValueOverflow)
	}
	return v.Uint64()
}

func toUint64s(env *xenv.Environment, in []*big.Int) []uint64 {
	out := make([]uint64, len(in))
	for i, v := range in {
		out[i] = toUint64(env, v)
	}
	return out
}
