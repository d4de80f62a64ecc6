// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package airdrop implements an owner-driven distributor of tokens it holds.
package airdrop

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/ownable"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrNoAddresses   = reverts.New(reverts.InvalidArgument, "there are no _addresses")
	ErrAmountsLength = reverts.New(reverts.InvalidArgument, "the number of _addresses should match _amounts")
)

// Drop is a single payout of an airdrop.
type Drop struct {
	To     umb.Address
	Amount *big.Int
}

type Airdrop struct {
	*ownable.Ownable
	addr umb.Address
}

func New(addr umb.Address, state *state.State) *Airdrop {
	return &Airdrop{
		Ownable: ownable.New(solidity.NewContext(addr, state)),
		addr:    addr,
	}
}

func (a *Airdrop) Address() umb.Address { return a.addr }

// Initialize sets the owner.
func (a *Airdrop) Initialize(owner umb.Address) {
	a.Ownable.Init(owner)
}

// Plan validates an airdrop request and returns the transfers to perform, in order.
func (a *Airdrop) Plan(caller umb.Address, addresses []umb.Address, amounts []*big.Int) ([]Drop, error) {
	if err := a.OnlyOwner(caller); err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, ErrNoAddresses
	}
	if len(addresses) != len(amounts) {
		return nil, ErrAmountsLength
	}
	drops := make([]Drop, 0, len(addresses))
	for i, addr := range addresses {
		drops = append(drops, Drop{To: addr, Amount: amounts[i]})
	}
	return drops, nil
}
