// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

var (
	ErrSafeERC20   = reverts.New(reverts.ExternalCallFailed, "SafeERC20: ERC20 operation did not succeed")
	ErrNonContract = reverts.New(reverts.ExternalCallFailed, "Address: call to non-contract")
)

// erc20 calls a token contract on behalf of the executing contract.
type erc20 struct {
	env  *xenv.Environment
	addr umb.Address
}

func bindERC20(env *xenv.Environment, addr umb.Address) *erc20 {
	return &erc20{env, addr}
}

func (t *erc20) call(name string, args ...any) ([]any, error) {
	exists, err := t.env.State().Exists(t.addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNonContract
	}

	method := UMB.MustMethod(name)
	data, err := method.EncodeInput(args...)
	if err != nil {
		return nil, err
	}
	out, err := t.env.Invoke(t.addr, data)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return method.DecodeOutputValues(out)
}

// safe calls a method returning an optional bool, and fails on a false result.
func (t *erc20) safe(name string, args ...any) error {
	values, err := t.call(name, args...)
	if err != nil {
		return err
	}
	if len(values) > 0 {
		if ok, _ := values[0].(bool); !ok {
			return ErrSafeERC20
		}
	}
	return nil
}

func (t *erc20) BalanceOf(holder umb.Address) (*big.Int, error) {
	values, err := t.call("balanceOf", holder)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrSafeERC20
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, ErrSafeERC20
	}
	return balance, nil
}

// BalanceOfSelf returns the balance held by the executing contract.
func (t *erc20) BalanceOfSelf() (*big.Int, error) {
	return t.BalanceOf(t.env.To())
}

func (t *erc20) SafeTransfer(to umb.Address, amount *big.Int) error {
	return t.safe("transfer", to, amount)
}

func (t *erc20) SafeTransferFrom(from, to umb.Address, amount *big.Int) error {
	return t.safe("transferFrom", from, to, amount)
}

func (t *erc20) Burn(amount *big.Int) error {
	_, err := t.call("burn", amount)
	return err
}

func (t *erc20) SwapMint(holder umb.Address, amount *big.Int) error {
	_, err := t.call("swapMint", holder, amount)
	return err
}

// selfBalance adapts the token binding to the balance lookups of contract logic.
func selfBalance(env *xenv.Environment) func(token umb.Address) (*big.Int, error) {
	return func(token umb.Address) (*big.Int, error) {
		return bindERC20(env, token).BalanceOfSelf()
	}
}
