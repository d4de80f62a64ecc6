// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

func init() {
	defines := []nativeDefine{
		{"startDistribution", func(env *xenv.Environment) []any {
			var args struct {
				RewardToken  common.Address
				StartTime    *big.Int
				Participants []common.Address
				Rewards      []*big.Int
				Durations    []*big.Int
				Bulks        []*big.Int
			}
			env.ParseArgs(&args)

			startTime := toUint64(env, args.StartTime)
			total, err := Rewards.Native(env.State(), env.To()).StartDistribution(
				env.Caller(),
				umb.Address(args.RewardToken),
				startTime,
				addresses(args.Participants),
				args.Rewards,
				toUint64s(env, args.Durations),
				toUint64s(env, args.Bulks),
				selfBalance(env),
			)
			env.Require(err)

			env.Log(Rewards.MustEvent("LogSetup"), nil, total, args.RewardToken)
			env.Log(Rewards.MustEvent("LogStart"), nil, u256(startTime))
			logOwnershipTransferred(env, Rewards.contract, env.Caller(), umb.Address{})
			env.Log(Rewards.MustEvent("LogBurnKey"), nil)
			return nil
		}},
		{"setupDistribution", func(env *xenv.Environment) []any {
			var args struct {
				RewardToken  common.Address
				Participants []common.Address
				Rewards      []*big.Int
				Durations    []*big.Int
			}
			env.ParseArgs(&args)

			total, err := Rewards.Native(env.State(), env.To()).SetupDistribution(
				env.Caller(),
				umb.Address(args.RewardToken),
				addresses(args.Participants),
				args.Rewards,
				toUint64s(env, args.Durations),
				selfBalance(env),
			)
			env.Require(err)

			env.Log(Rewards.MustEvent("LogSetup"), nil, total, args.RewardToken)
			return nil
		}},
		{"start", func(env *xenv.Environment) []any {
			env.Require(Rewards.Native(env.State(), env.To()).Start(env.Caller(), env.Now()))
			env.Log(Rewards.MustEvent("LogStart"), nil, u256(env.Now()))
			return nil
		}},
		{"balanceOf", func(env *xenv.Environment) []any {
			var participant common.Address
			env.ParseArgs(&participant)

			balance, err := Rewards.Native(env.State(), env.To()).BalanceOf(umb.Address(participant), env.Now())
			env.Require(err)
			return []any{balance}
		}},
		{"claim", func(env *xenv.Environment) []any {
			distributor := Rewards.Native(env.State(), env.To())
			amount, err := distributor.Claim(env.Caller(), env.Now())
			env.Require(err)
			env.Log(Rewards.MustEvent("LogClaimed"), []umb.Bytes32{topic(env.Caller())}, amount)

			rewardToken, err := distributor.RewardToken()
			env.Require(err)
			env.Require(bindERC20(env, rewardToken).SafeTransfer(env.Caller(), amount))
			return nil
		}},
		{"rewards", func(env *xenv.Environment) []any {
			var participant common.Address
			env.ParseArgs(&participant)

			entry, err := Rewards.Native(env.State(), env.To()).Reward(umb.Address(participant))
			env.Require(err)
			return []any{entry.Total, u256(entry.Duration), entry.Paid, u256(entry.Bulk)}
		}},
		{"participantsCount", func(env *xenv.Environment) []any {
			count, err := Rewards.Native(env.State(), env.To()).ParticipantsCount()
			env.Require(err)
			return []any{u256(count)}
		}},
		{"distributionStartTime", func(env *xenv.Environment) []any {
			start, err := Rewards.Native(env.State(), env.To()).DistributionStartTime()
			env.Require(err)
			return []any{u256(start)}
		}},
		{"rewardToken", func(env *xenv.Environment) []any {
			token, err := Rewards.Native(env.State(), env.To()).RewardToken()
			env.Require(err)
			return []any{token}
		}},
		{"setupDone", func(env *xenv.Environment) []any {
			done, err := Rewards.Native(env.State(), env.To()).SetupDone()
			env.Require(err)
			return []any{done}
		}},
	}
	registerNatives(Rewards.contract, defines)
	registerOwnable(Rewards.contract, func(env *xenv.Environment) ownableNative {
		return Rewards.Native(env.State(), env.To())
	})
}
