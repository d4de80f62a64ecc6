// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/builtin/staking"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

func withdrawStake(env *xenv.Environment, farm *staking.StakingRewards, amount *big.Int) {
	env.Require(farm.Withdraw(env.Caller(), amount, env.Now()))
	env.Log(Staking.MustEvent("Withdrawn"), []umb.Bytes32{topic(env.Caller())}, amount)

	stakingToken, err := farm.StakingToken()
	env.Require(err)
	env.Require(bindERC20(env, stakingToken).SafeTransfer(env.Caller(), amount))
}

func payReward(env *xenv.Environment, farm *staking.StakingRewards) {
	reward, err := farm.GetReward(env.Caller(), env.Now())
	env.Require(err)
	if reward.Sign() == 0 {
		return
	}
	env.Log(Staking.MustEvent("RewardPaid"), []umb.Bytes32{topic(env.Caller())}, reward)

	rewardsToken, err := farm.RewardsToken()
	env.Require(err)
	env.Require(bindERC20(env, rewardsToken).SafeTransfer(env.Caller(), reward))
}

func init() {
	bind := func(env *xenv.Environment) *staking.StakingRewards {
		return Staking.Native(env.State(), env.To())
	}
	bigView := func(get func(farm *staking.StakingRewards) (*big.Int, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			v, err := get(bind(env))
			env.Require(err)
			return []any{v}
		}
	}
	uintView := func(get func(farm *staking.StakingRewards) (uint64, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			v, err := get(bind(env))
			env.Require(err)
			return []any{u256(v)}
		}
	}
	accountView := func(get func(farm *staking.StakingRewards, account umb.Address) (*big.Int, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			var account common.Address
			env.ParseArgs(&account)

			v, err := get(bind(env), umb.Address(account))
			env.Require(err)
			return []any{v}
		}
	}
	addressView := func(get func(farm *staking.StakingRewards) (umb.Address, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			v, err := get(bind(env))
			env.Require(err)
			return []any{v}
		}
	}

	defines := []nativeDefine{
		{"totalSupply", bigView((*staking.StakingRewards).TotalSupply)},
		{"rewardRate", bigView((*staking.StakingRewards).RewardRate)},
		{"rewardPerTokenStored", bigView((*staking.StakingRewards).RewardPerTokenStored)},
		{"getRewardForDuration", bigView((*staking.StakingRewards).GetRewardForDuration)},
		{"rewardsDuration", uintView((*staking.StakingRewards).RewardsDuration)},
		{"periodFinish", uintView((*staking.StakingRewards).PeriodFinish)},
		{"lastUpdateTime", uintView((*staking.StakingRewards).LastUpdateTime)},
		{"balanceOf", accountView((*staking.StakingRewards).BalanceOf)},
		{"userRewardPerTokenPaid", accountView((*staking.StakingRewards).UserRewardPerTokenPaid)},
		{"rewards", accountView((*staking.StakingRewards).Rewards)},
		{"rewardsDistribution", addressView((*staking.StakingRewards).RewardsDistribution)},
		{"stakingToken", addressView((*staking.StakingRewards).StakingToken)},
		{"rewardsToken", addressView((*staking.StakingRewards).RewardsToken)},
		{"stopped", func(env *xenv.Environment) []any {
			stopped, err := bind(env).Stopped()
			env.Require(err)
			return []any{stopped}
		}},
		{"lastTimeRewardApplicable", func(env *xenv.Environment) []any {
			at, err := bind(env).LastTimeRewardApplicable(env.Now())
			env.Require(err)
			return []any{u256(at)}
		}},
		{"rewardPerToken", func(env *xenv.Environment) []any {
			perToken, err := bind(env).RewardPerToken(env.Now())
			env.Require(err)
			return []any{perToken}
		}},
		{"earned", func(env *xenv.Environment) []any {
			var account common.Address
			env.ParseArgs(&account)

			earned, err := bind(env).Earned(umb.Address(account), env.Now())
			env.Require(err)
			return []any{earned}
		}},
		{"stake", func(env *xenv.Environment) []any {
			var amount *big.Int
			env.ParseArgs(&amount)

			farm := bind(env)
			env.Require(farm.Stake(env.Caller(), amount, env.Now()))
			env.Log(Staking.MustEvent("Staked"), []umb.Bytes32{topic(env.Caller())}, amount)

			stakingToken, err := farm.StakingToken()
			env.Require(err)
			env.Require(bindERC20(env, stakingToken).SafeTransferFrom(env.Caller(), env.To(), amount))
			return nil
		}},
		{"withdraw", func(env *xenv.Environment) []any {
			var amount *big.Int
			env.ParseArgs(&amount)

			withdrawStake(env, bind(env), amount)
			return nil
		}},
		{"getReward", func(env *xenv.Environment) []any {
			payReward(env, bind(env))
			return nil
		}},
		{"exit", func(env *xenv.Environment) []any {
			farm := bind(env)
			balance, err := farm.BalanceOf(env.Caller())
			env.Require(err)

			withdrawStake(env, farm, balance)
			payReward(env, farm)
			return nil
		}},
		{"notifyRewardAmount", func(env *xenv.Environment) []any {
			var reward *big.Int
			env.ParseArgs(&reward)

			env.Require(bind(env).NotifyRewardAmount(env.Caller(), reward, env.Now(), selfBalance(env)))
			env.Log(Staking.MustEvent("RewardAdded"), nil, reward)
			return nil
		}},
		{"setRewardsDuration", func(env *xenv.Environment) []any {
			var duration *big.Int
			env.ParseArgs(&duration)

			env.Require(bind(env).SetRewardsDuration(env.Caller(), toUint64(env, duration), env.Now()))
			env.Log(Staking.MustEvent("RewardsDurationUpdated"), nil, duration)
			return nil
		}},
		{"setRewardsDistribution", func(env *xenv.Environment) []any {
			var distribution common.Address
			env.ParseArgs(&distribution)

			env.Require(bind(env).SetRewardsDistribution(env.Caller(), umb.Address(distribution)))
			return nil
		}},
		{"finishFarming", func(env *xenv.Environment) []any {
			farm := bind(env)
			burned, err := farm.FinishFarming(env.Caller(), env.Now(), selfBalance(env))
			env.Require(err)
			env.Log(Staking.MustEvent("FarmingFinished"), nil, burned)

			rewardsToken, err := farm.RewardsToken()
			env.Require(err)
			env.Require(bindERC20(env, rewardsToken).Burn(burned))
			return nil
		}},
	}
	registerNatives(Staking.contract, defines)
	registerOwnable(Staking.contract, func(env *xenv.Environment) ownableNative { return bind(env) })
}
