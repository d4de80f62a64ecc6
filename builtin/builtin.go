// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/builtin/airdrop"
	"github.com/umbrella-network/umbledger/builtin/multisig"
	"github.com/umbrella-network/umbledger/builtin/rewards"
	"github.com/umbrella-network/umbledger/builtin/staking"
	"github.com/umbrella-network/umbledger/builtin/swaptoken"
	"github.com/umbrella-network/umbledger/builtin/token"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

// Builtin contracts binding.
var (
	UMB      = &umbContract{mustLoadContract("UMB")}
	RUMB     = &rumbContract{mustLoadContract("rUMB")}
	Rewards  = &rewardsContract{mustLoadContract("Rewards")}
	Staking  = &stakingContract{mustLoadContract("StakingRewards")}
	MultiSig = &multiSigContract{mustLoadContract("UmbMultiSig")}
	Airdrop  = &airdropContract{mustLoadContract("Airdrop")}
)

type (
	umbContract      struct{ *contract }
	rumbContract     struct{ *contract }
	rewardsContract  struct{ *contract }
	stakingContract  struct{ *contract }
	multiSigContract struct{ *contract }
	airdropContract  struct{ *contract }
)

func (c *umbContract) Native(state *state.State, addr umb.Address) *token.Token {
	return token.New(addr, state)
}

func (c *rumbContract) Native(state *state.State, addr umb.Address) *swaptoken.SwapToken {
	return swaptoken.New(addr, state)
}

func (c *rewardsContract) Native(state *state.State, addr umb.Address) *rewards.Rewards {
	return rewards.New(addr, state)
}

func (c *stakingContract) Native(state *state.State, addr umb.Address) *staking.StakingRewards {
	return staking.New(addr, state)
}

func (c *multiSigContract) Native(state *state.State, addr umb.Address) *multisig.MultiSig {
	return multisig.New(addr, state)
}

func (c *airdropContract) Native(state *state.State, addr umb.Address) *airdrop.Airdrop {
	return airdrop.New(addr, state)
}

func all() []*contract {
	return []*contract{UMB.contract, RUMB.contract, Rewards.contract, Staking.contract, MultiSig.contract, Airdrop.contract}
}

// Kinds lists the kinds of all builtin contracts.
func Kinds() []string {
	kinds := make([]string, 0, 6)
	for _, c := range all() {
		kinds = append(kinds, c.name)
	}
	return kinds
}

// ABIByKind returns the ABI of the contract kind.
func ABIByKind(kind string) (*abi.ABI, bool) {
	for _, c := range all() {
		if c.name == kind {
			return c.ABI, true
		}
	}
	return nil, false
}
