// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	errTransferFromZero   = reverts.New(reverts.InvalidArgument, "ERC20: transfer from the zero address")
	errTransferToZero     = reverts.New(reverts.InvalidArgument, "ERC20: transfer to the zero address")
	errTransferExceeds    = reverts.New(reverts.InsufficientFunds, "ERC20: transfer amount exceeds balance")
	errAllowanceExceeds   = reverts.New(reverts.InsufficientFunds, "ERC20: transfer amount exceeds allowance")
	errApproveFromZero    = reverts.New(reverts.InvalidArgument, "ERC20: approve from the zero address")
	errApproveToZero      = reverts.New(reverts.InvalidArgument, "ERC20: approve to the zero address")
	errAllowanceBelowZero = reverts.New(reverts.InsufficientFunds, "ERC20: decreased allowance below zero")
	errMintToZero         = reverts.New(reverts.InvalidArgument, "ERC20: mint to the zero address")
	errBurnFromZero       = reverts.New(reverts.InvalidArgument, "ERC20: burn from the zero address")
	errBurnExceeds        = reverts.New(reverts.InsufficientFunds, "ERC20: burn amount exceeds balance")
)

// ERC20 is the balance and allowance ledger shared by every token kind.
type ERC20 struct {
	name        *solidity.String
	symbol      *solidity.String
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[umb.Address, *big.Int]
	allowances  *solidity.Mapping[solidity.PairKey, *big.Int]
}

func newERC20(ctx *solidity.Context) *ERC20 {
	return &ERC20{
		name:        solidity.NewString(ctx, solidity.Slot("erc20.name")),
		symbol:      solidity.NewString(ctx, solidity.Slot("erc20.symbol")),
		totalSupply: solidity.NewUint256(ctx, solidity.Slot("erc20.totalSupply")),
		balances:    solidity.NewMapping[umb.Address, *big.Int](ctx, solidity.Slot("erc20.balances")),
		allowances:  solidity.NewMapping[solidity.PairKey, *big.Int](ctx, solidity.Slot("erc20.allowances")),
	}
}

func (e *ERC20) Name() (string, error)   { return e.name.Get() }
func (e *ERC20) Symbol() (string, error) { return e.symbol.Get() }
func (e *ERC20) Decimals() uint8         { return umb.TokenDecimals }

func (e *ERC20) TotalSupply() (*big.Int, error) {
	return e.totalSupply.Get()
}

func (e *ERC20) BalanceOf(holder umb.Address) (*big.Int, error) {
	return e.balances.Get(holder)
}

func (e *ERC20) Allowance(owner, spender umb.Address) (*big.Int, error) {
	return e.allowances.Get(solidity.PairKey{A: owner, B: spender})
}

func (e *ERC20) setBalance(holder umb.Address, balance *big.Int) error {
	return e.balances.Set(holder, balance)
}

// Transfer moves amount from sender to recipient.
func (e *ERC20) Transfer(sender, recipient umb.Address, amount *big.Int) error {
	if sender.IsZero() {
		return errTransferFromZero
	}
	if recipient.IsZero() {
		return errTransferToZero
	}
	senderBalance, err := e.balances.Get(sender)
	if err != nil {
		return err
	}
	if senderBalance.Cmp(amount) < 0 {
		return errTransferExceeds
	}
	if err := e.setBalance(sender, new(big.Int).Sub(senderBalance, amount)); err != nil {
		return err
	}
	recipientBalance, err := e.balances.Get(recipient)
	if err != nil {
		return err
	}
	sum, err := solidity.Add(recipientBalance, amount)
	if err != nil {
		return err
	}
	return e.setBalance(recipient, sum)
}

// Approve sets the allowance of spender over owner's tokens.
func (e *ERC20) Approve(owner, spender umb.Address, amount *big.Int) error {
	if owner.IsZero() {
		return errApproveFromZero
	}
	if spender.IsZero() {
		return errApproveToZero
	}
	return e.allowances.Set(solidity.PairKey{A: owner, B: spender}, amount)
}

// TransferFrom moves amount from sender to recipient using the allowance of spender.
// It returns the remaining allowance.
func (e *ERC20) TransferFrom(spender, sender, recipient umb.Address, amount *big.Int) (*big.Int, error) {
	if err := e.Transfer(sender, recipient, amount); err != nil {
		return nil, err
	}
	allowance, err := e.Allowance(sender, spender)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(amount) < 0 {
		return nil, errAllowanceExceeds
	}
	remaining := new(big.Int).Sub(allowance, amount)
	if err := e.Approve(sender, spender, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

// IncreaseAllowance raises the allowance and returns the new value.
func (e *ERC20) IncreaseAllowance(owner, spender umb.Address, added *big.Int) (*big.Int, error) {
	allowance, err := e.Allowance(owner, spender)
	if err != nil {
		return nil, err
	}
	sum, err := solidity.Add(allowance, added)
	if err != nil {
		return nil, err
	}
	return sum, e.Approve(owner, spender, sum)
}

// DecreaseAllowance lowers the allowance and returns the new value.
func (e *ERC20) DecreaseAllowance(owner, spender umb.Address, subtracted *big.Int) (*big.Int, error) {
	allowance, err := e.Allowance(owner, spender)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(subtracted) < 0 {
		return nil, errAllowanceBelowZero
	}
	remaining := new(big.Int).Sub(allowance, subtracted)
	return remaining, e.Approve(owner, spender, remaining)
}

// mint creates amount tokens for account without any cap check.
func (e *ERC20) mint(account umb.Address, amount *big.Int) error {
	if account.IsZero() {
		return errMintToZero
	}
	if err := e.totalSupply.Add(amount); err != nil {
		return err
	}
	balance, err := e.balances.Get(account)
	if err != nil {
		return err
	}
	return e.setBalance(account, new(big.Int).Add(balance, amount))
}

// BurnFrom destroys amount tokens of account. The supply cap is left untouched.
func (e *ERC20) BurnFrom(account umb.Address, amount *big.Int) error {
	if account.IsZero() {
		return errBurnFromZero
	}
	balance, err := e.balances.Get(account)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return errBurnExceeds
	}
	if err := e.setBalance(account, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	return e.totalSupply.Sub(amount)
}
