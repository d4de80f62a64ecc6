// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/builtin/token"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

func init() {
	bindToken := func(env *xenv.Environment) *token.Token {
		return RUMB.Native(env.State(), env.To()).Token
	}
	defines := append(tokenDefines(RUMB.contract, bindToken), []nativeDefine{
		{"swapDuration", func(env *xenv.Environment) []any {
			duration, err := RUMB.Native(env.State(), env.To()).SwapDuration()
			env.Require(err)
			return []any{u256(duration)}
		}},
		{"swapDelay", func(env *xenv.Environment) []any {
			return []any{u256(RUMB.Native(env.State(), env.To()).SwapDelay())}
		}},
		{"swapStartsOn", func(env *xenv.Environment) []any {
			startsOn, err := RUMB.Native(env.State(), env.To()).SwapStartsOn()
			env.Require(err)
			return []any{u256(startsOn)}
		}},
		{"totalAmountToBeSwapped", func(env *xenv.Environment) []any {
			amount, err := RUMB.Native(env.State(), env.To()).TotalAmountToBeSwapped()
			env.Require(err)
			return []any{amount}
		}},
		{"swappedSoFar", func(env *xenv.Environment) []any {
			amount, err := RUMB.Native(env.State(), env.To()).SwappedSoFar()
			env.Require(err)
			return []any{amount}
		}},
		{"isSwapStarted", func(env *xenv.Environment) []any {
			started, err := RUMB.Native(env.State(), env.To()).IsSwapStarted(env.Now())
			env.Require(err)
			return []any{started}
		}},
		{"startEarlySwap", func(env *xenv.Environment) []any {
			env.Require(RUMB.Native(env.State(), env.To()).StartEarlySwap(env.Caller(), env.Now()))
			env.Log(RUMB.MustEvent("LogStartEarlySwapNow"), nil, u256(env.Now()))
			return nil
		}},
		{"totalUnlockedAmountOfToken", func(env *xenv.Environment) []any {
			amount, err := RUMB.Native(env.State(), env.To()).TotalUnlocked(env.Now())
			env.Require(err)
			return []any{amount}
		}},
		{"canSwapTokens", func(env *xenv.Environment) []any {
			var holder common.Address
			env.ParseArgs(&holder)

			ok, err := RUMB.Native(env.State(), env.To()).CanSwapTokens(umb.Address(holder), env.Now())
			env.Require(err)
			return []any{ok}
		}},
		{"swapFor", func(env *xenv.Environment) []any {
			var receiver common.Address
			env.ParseArgs(&receiver)

			amount, err := RUMB.Native(env.State(), env.To()).Swap(env.Caller(), env.Now())
			env.Require(err)
			env.Log(RUMB.MustEvent("Transfer"), []umb.Bytes32{topic(env.Caller()), topic(umb.Address{})}, amount)
			env.Log(RUMB.MustEvent("LogSwap"), []umb.Bytes32{topic(env.Caller())}, amount)

			env.Require(bindERC20(env, umb.Address(receiver)).SwapMint(env.Caller(), amount))
			return nil
		}},
	}...)
	registerNatives(RUMB.contract, defines)
	registerOwnable(RUMB.contract, func(env *xenv.Environment) ownableNative { return bindToken(env) })
}
