// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ownable implements the single-owner access guard shared by native contracts.
package ownable

import (
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrNotOwner     = reverts.New(reverts.Unauthorized, "Ownable: caller is not the owner")
	ErrZeroNewOwner = reverts.New(reverts.InvalidArgument, "Ownable: new owner is the zero address")
	slotOwner       = solidity.Slot("ownable.owner")
)

// Ownable holds the owner of a contract. A zero owner is burned and never passes OnlyOwner.
type Ownable struct {
	owner *solidity.Address
}

func New(ctx *solidity.Context) *Ownable {
	return &Ownable{owner: solidity.NewAddress(ctx, slotOwner)}
}

// Init sets the initial owner.
func (o *Ownable) Init(owner umb.Address) {
	o.owner.Set(owner)
}

func (o *Ownable) Owner() (umb.Address, error) {
	return o.owner.Get()
}

// OnlyOwner fails unless caller is the current owner.
func (o *Ownable) OnlyOwner(caller umb.Address) error {
	owner, err := o.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership moves ownership to newOwner and returns the previous owner.
func (o *Ownable) TransferOwnership(caller, newOwner umb.Address) (umb.Address, error) {
	if err := o.OnlyOwner(caller); err != nil {
		return umb.Address{}, err
	}
	if newOwner.IsZero() {
		return umb.Address{}, ErrZeroNewOwner
	}
	o.owner.Set(newOwner)
	return caller, nil
}

// Renounce burns ownership.
func (o *Ownable) Renounce(caller umb.Address) (umb.Address, error) {
	if err := o.OnlyOwner(caller); err != nil {
		return umb.Address{}, err
	}
	o.owner.Set(umb.Address{})
	return caller, nil
}
