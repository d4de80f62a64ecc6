// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin/gen"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

type contract struct {
	name string
	ABI  *abi.ABI
}

func mustLoadContract(name string) *contract {
	abi, err := abi.New(gen.MustABI(name))
	if err != nil {
		panic(fmt.Errorf("load ABI for '%s': %w", name, err))
	}

	return &contract{
		name,
		abi,
	}
}

// Kind returns the kind recorded as the code of deployed instances.
func (c *contract) Kind() string {
	return c.name
}

// Deploy marks addr as an instance of the contract.
func (c *contract) Deploy(state *state.State, addr umb.Address) {
	state.SetCode(addr, []byte(c.name))
}

// Is returns whether addr is an instance of the contract.
func (c *contract) Is(state *state.State, addr umb.Address) (bool, error) {
	code, err := state.GetCode(addr)
	if err != nil {
		return false, err
	}
	return string(code) == c.name, nil
}

// MustMethod returns the named method, and panics if it does not exist.
func (c *contract) MustMethod(name string) *abi.Method {
	method, found := c.ABI.MethodByName(name)
	if !found {
		panic(fmt.Errorf("method '%s' not found in '%s'", name, c.name))
	}
	return method
}

// MustEvent returns the named event, and panics if it does not exist.
func (c *contract) MustEvent(name string) *abi.Event {
	event, found := c.ABI.EventByName(name)
	if !found {
		panic(fmt.Errorf("event '%s' not found in '%s'", name, c.name))
	}
	return event
}

// EncodeCall encodes a call of the named method.
func (c *contract) EncodeCall(name string, args ...any) ([]byte, error) {
	return c.MustMethod(name).EncodeInput(args...)
}
