// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the capped, mintable and burnable UMB token.
package token

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/ownable"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrSupplyLimit        = reverts.New(reverts.InsufficientFunds, "total supply limit exceeded")
	ErrNotEnoughToBurn    = reverts.New(reverts.InsufficientFunds, "not enough tokens to burn")
	ErrNoRewardTokens     = reverts.New(reverts.InvalidArgument, "please pass a positive number of reward tokens")
	ErrRewardTokensLength = reverts.New(reverts.InvalidArgument, "please pass same number of tokens and statuses")
	ErrNotRewardToken     = reverts.New(reverts.Unauthorized, "only reward token can be swapped")
)

// Token is a capped ERC20 with an owner, and a whitelist of reward tokens allowed to mint on swap.
type Token struct {
	*ERC20
	*ownable.Ownable

	addr                  umb.Address
	maxAllowedTotalSupply *solidity.Uint256
	rewardsTokens         *solidity.Mapping[umb.Address, bool]
}

func New(addr umb.Address, state *state.State) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		ERC20:                 newERC20(ctx),
		Ownable:               ownable.New(ctx),
		addr:                  addr,
		maxAllowedTotalSupply: solidity.NewUint256(ctx, solidity.Slot("token.maxAllowedTotalSupply")),
		rewardsTokens:         solidity.NewMapping[umb.Address, bool](ctx, solidity.Slot("token.rewardsTokens")),
	}
}

// Address returns the contract address.
func (t *Token) Address() umb.Address {
	return t.addr
}

// Initialize stores constructor arguments and mints the initial balance.
func (t *Token) Initialize(owner, initialHolder umb.Address, initialBalance, maxAllowedTotalSupply *big.Int, name, symbol string) error {
	t.Ownable.Init(owner)
	if err := t.name.Set(name); err != nil {
		return err
	}
	if err := t.symbol.Set(symbol); err != nil {
		return err
	}
	t.maxAllowedTotalSupply.Set(maxAllowedTotalSupply)
	if initialBalance.Sign() > 0 {
		return t.MintTo(initialHolder, initialBalance)
	}
	return nil
}

func (t *Token) MaxAllowedTotalSupply() (*big.Int, error) {
	return t.maxAllowedTotalSupply.Get()
}

// MintTo mints within the supply cap.
func (t *Token) MintTo(to umb.Address, amount *big.Int) error {
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	limit, err := t.maxAllowedTotalSupply.Get()
	if err != nil {
		return err
	}
	after, err := solidity.Add(supply, amount)
	if err != nil {
		return err
	}
	if after.Cmp(limit) > 0 {
		return ErrSupplyLimit
	}
	return t.mint(to, amount)
}

// Mint is the owner-only mint.
func (t *Token) Mint(caller, to umb.Address, amount *big.Int) error {
	if err := t.OnlyOwner(caller); err != nil {
		return err
	}
	return t.MintTo(to, amount)
}

// Burn destroys the holder's tokens and lowers the supply cap by the same amount.
func (t *Token) Burn(holder umb.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(holder)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrNotEnoughToBurn
	}
	if err := t.BurnFrom(holder, amount); err != nil {
		return err
	}
	return t.maxAllowedTotalSupply.Sub(amount)
}

// SetRewardTokens updates the swap whitelist.
func (t *Token) SetRewardTokens(caller umb.Address, tokens []umb.Address, statuses []bool) error {
	if err := t.OnlyOwner(caller); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return ErrNoRewardTokens
	}
	if len(tokens) != len(statuses) {
		return ErrRewardTokensLength
	}
	for i, token := range tokens {
		if err := t.rewardsTokens.Set(token, statuses[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Token) IsRewardToken(addr umb.Address) (bool, error) {
	return t.rewardsTokens.Get(addr)
}

// SwapMint mints for holder on behalf of a whitelisted reward token, which must be the caller.
func (t *Token) SwapMint(caller, holder umb.Address, amount *big.Int) error {
	ok, err := t.rewardsTokens.Get(caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotRewardToken
	}
	return t.MintTo(holder, amount)
}
