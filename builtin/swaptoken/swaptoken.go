// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package swaptoken implements rUMB, a capped token that unlocks gradually
// for swapping into a reward-minting receiver token after a one year delay.
package swaptoken

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/builtin/token"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrEmptyMaxSupply    = reverts.New(reverts.InvalidArgument, "_maxAllowedTotalSupply is empty")
	ErrEmptySwapDuration = reverts.New(reverts.InvalidArgument, "swapDuration is empty")
	ErrAlreadyStarted    = reverts.New(reverts.InvalidState, "swap is already allowed")
	ErrNotStarted        = reverts.New(reverts.InvalidState, "swapping period has not started yet")
	ErrOverLimit         = reverts.New(reverts.InsufficientFunds, "your swap is over the limit")
	ErrNothingToSwap     = reverts.New(reverts.InvalidArgument, "you dont have tokens to swap")
)

// SwapToken is the vesting token. Balances, cap and ownership come from token.Token.
type SwapToken struct {
	*token.Token

	swapDuration           *solidity.Uint64
	swapStartsOn           *solidity.Uint64
	totalAmountToBeSwapped *solidity.Uint256
	swappedSoFar           *solidity.Uint256
}

func New(addr umb.Address, state *state.State) *SwapToken {
	ctx := solidity.NewContext(addr, state)
	return &SwapToken{
		Token:                  token.New(addr, state),
		swapDuration:           solidity.NewUint64(ctx, solidity.Slot("rumb.swapDuration")),
		swapStartsOn:           solidity.NewUint64(ctx, solidity.Slot("rumb.swapStartsOn")),
		totalAmountToBeSwapped: solidity.NewUint256(ctx, solidity.Slot("rumb.totalAmountToBeSwapped")),
		swappedSoFar:           solidity.NewUint256(ctx, solidity.Slot("rumb.swappedSoFar")),
	}
}

// Initialize validates and stores the constructor arguments. The swap window opens
// one year after deployTime.
func (s *SwapToken) Initialize(
	owner, initialHolder umb.Address,
	initialBalance, maxAllowedTotalSupply *big.Int,
	swapDuration uint64,
	name, symbol string,
	deployTime uint64,
) error {
	if maxAllowedTotalSupply.Sign() == 0 {
		return ErrEmptyMaxSupply
	}
	if swapDuration == 0 {
		return ErrEmptySwapDuration
	}
	if err := s.Token.Initialize(owner, initialHolder, initialBalance, maxAllowedTotalSupply, name, symbol); err != nil {
		return err
	}
	s.swapDuration.Set(swapDuration)
	s.swapStartsOn.Set(deployTime + umb.SwapDelay)
	s.totalAmountToBeSwapped.Set(maxAllowedTotalSupply)
	return nil
}

func (s *SwapToken) SwapDuration() (uint64, error) { return s.swapDuration.Get() }
func (s *SwapToken) SwapStartsOn() (uint64, error) { return s.swapStartsOn.Get() }
func (s *SwapToken) SwapDelay() uint64             { return umb.SwapDelay }

func (s *SwapToken) TotalAmountToBeSwapped() (*big.Int, error) {
	return s.totalAmountToBeSwapped.Get()
}

func (s *SwapToken) SwappedSoFar() (*big.Int, error) {
	return s.swappedSoFar.Get()
}

func (s *SwapToken) IsSwapStarted(now uint64) (bool, error) {
	startsOn, err := s.swapStartsOn.Get()
	if err != nil {
		return false, err
	}
	return now >= startsOn, nil
}

// StartEarlySwap opens the swap window at now.
func (s *SwapToken) StartEarlySwap(caller umb.Address, now uint64) error {
	if err := s.OnlyOwner(caller); err != nil {
		return err
	}
	started, err := s.IsSwapStarted(now)
	if err != nil {
		return err
	}
	if started {
		return ErrAlreadyStarted
	}
	s.swapStartsOn.Set(now)
	return nil
}

// TotalUnlocked returns the amount unlocked for swapping at now, ramping linearly
// over the swap duration.
func (s *SwapToken) TotalUnlocked(now uint64) (*big.Int, error) {
	startsOn, err := s.swapStartsOn.Get()
	if err != nil {
		return nil, err
	}
	if now < startsOn {
		return new(big.Int), nil
	}
	duration, err := s.swapDuration.Get()
	if err != nil {
		return nil, err
	}
	total, err := s.totalAmountToBeSwapped.Get()
	if err != nil {
		return nil, err
	}
	elapsed := min(now-startsOn, duration)
	return solidity.MulDiv(total, new(big.Int).SetUint64(elapsed), new(big.Int).SetUint64(duration))
}

// CanSwapTokens reports whether holder's full balance fits in the unlocked pool.
func (s *SwapToken) CanSwapTokens(holder umb.Address, now uint64) (bool, error) {
	started, err := s.IsSwapStarted(now)
	if err != nil || !started {
		return false, err
	}
	balance, err := s.BalanceOf(holder)
	if err != nil {
		return false, err
	}
	return s.fitsUnlocked(balance, now)
}

func (s *SwapToken) fitsUnlocked(amount *big.Int, now uint64) (bool, error) {
	swapped, err := s.swappedSoFar.Get()
	if err != nil {
		return false, err
	}
	unlocked, err := s.TotalUnlocked(now)
	if err != nil {
		return false, err
	}
	return new(big.Int).Add(swapped, amount).Cmp(unlocked) <= 0, nil
}

// Swap burns the caller's whole balance and returns the amount the receiver must mint.
// The supply cap is not lowered.
func (s *SwapToken) Swap(caller umb.Address, now uint64) (*big.Int, error) {
	started, err := s.IsSwapStarted(now)
	if err != nil {
		return nil, err
	}
	if !started {
		return nil, ErrNotStarted
	}
	balance, err := s.BalanceOf(caller)
	if err != nil {
		return nil, err
	}
	if balance.Sign() == 0 {
		return nil, ErrNothingToSwap
	}
	ok, err := s.fitsUnlocked(balance, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOverLimit
	}
	if err := s.BurnFrom(caller, balance); err != nil {
		return nil, err
	}
	if err := s.swappedSoFar.Add(balance); err != nil {
		return nil, err
	}
	return balance, nil
}
