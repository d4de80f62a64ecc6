// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/umbrella-network/umbledger/builtin/reverts"
)

var (
	errAddOverflow = reverts.New(reverts.InvalidArgument, "SafeMath: addition overflow")
	errSubOverflow = reverts.New(reverts.InsufficientFunds, "SafeMath: subtraction overflow")
	errMulOverflow = reverts.New(reverts.InvalidArgument, "SafeMath: multiplication overflow")
	errDivByZero   = reverts.New(reverts.InvalidArgument, "SafeMath: division by zero")
)

func toU256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	if x.Sign() < 0 {
		return nil, errSubOverflow
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, errAddOverflow
	}
	return v, nil
}

func binop(a, b *big.Int, op func(z, x, y *uint256.Int) (*uint256.Int, bool), overflowErr error) (*big.Int, error) {
	x, err := toU256(a)
	if err != nil {
		return nil, err
	}
	y, err := toU256(b)
	if err != nil {
		return nil, err
	}
	z, overflow := op(new(uint256.Int), x, y)
	if overflow {
		return nil, overflowErr
	}
	if z.IsZero() {
		return new(big.Int), nil
	}
	return z.ToBig(), nil
}

// Add returns a+b, reverting on uint256 overflow.
func Add(a, b *big.Int) (*big.Int, error) {
	return binop(a, b, (*uint256.Int).AddOverflow, errAddOverflow)
}

// Sub returns a-b, reverting when b > a.
func Sub(a, b *big.Int) (*big.Int, error) {
	return binop(a, b, (*uint256.Int).SubOverflow, errSubOverflow)
}

// Mul returns a*b, reverting on uint256 overflow.
func Mul(a, b *big.Int) (*big.Int, error) {
	return binop(a, b, (*uint256.Int).MulOverflow, errMulOverflow)
}

// Div returns floor(a/b), reverting when b is zero.
func Div(a, b *big.Int) (*big.Int, error) {
	return binop(a, b, func(z, x, y *uint256.Int) (*uint256.Int, bool) {
		if y.IsZero() {
			return z, true
		}
		return z.Div(x, y), false
	}, errDivByZero)
}

// MulDiv returns floor(a*b/c) with the same checks as Mul and Div.
func MulDiv(a, b, c *big.Int) (*big.Int, error) {
	p, err := Mul(a, b)
	if err != nil {
		return nil, err
	}
	return Div(p, c)
}

// Min returns the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
