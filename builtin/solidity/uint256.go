// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/umbrella-network/umbledger/umb"
)

// Uint256 is a wrapper for storage and retrieval of an uint256.
// Values never exceed 256 bits since every mutation goes through checked math.
type Uint256 struct {
	context *Context
	pos     umb.Bytes32
}

func NewUint256(context *Context, pos umb.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(storage.Bytes())
	if v.Sign() == 0 {
		return new(big.Int), nil
	}
	return v, nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, umb.BytesToBytes32(value.Bytes()))
}

// Add adds value with overflow check.
func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	sum, err := Add(storage, value)
	if err != nil {
		return err
	}
	u.Set(sum)
	return nil
}

// Sub subtracts value with underflow check.
func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	diff, err := Sub(storage, value)
	if err != nil {
		return err
	}
	u.Set(diff)
	return nil
}

// Uint64 stores timestamps and counters.
type Uint64 struct {
	context *Context
	pos     umb.Bytes32
}

func NewUint64(context *Context, pos umb.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.context.state.SetStorage(u.context.address, u.pos, umb.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()))
}

// Bool stores a flag.
type Bool struct {
	context *Context
	pos     umb.Bytes32
}

func NewBool(context *Context, pos umb.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(value bool) {
	var storage umb.Bytes32
	if value {
		storage[31] = 1
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}
