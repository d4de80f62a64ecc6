// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

// Context binds storage wrappers to the contract address they live in.
type Context struct {
	address umb.Address
	state   *state.State
}

func NewContext(address umb.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() umb.Address {
	return c.address
}

// Slot derives the storage position of a named variable.
func Slot(name string) umb.Bytes32 {
	return umb.Blake2b([]byte(name))
}
