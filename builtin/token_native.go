// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/builtin/token"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

// tokenDefines returns the natives shared by capped tokens. bind resolves the token executed by env.
func tokenDefines(c *contract, bind func(env *xenv.Environment) *token.Token) []nativeDefine {
	transferEvent := c.MustEvent("Transfer")
	approvalEvent := c.MustEvent("Approval")

	logTransfer := func(env *xenv.Environment, from, to umb.Address, amount *big.Int) {
		env.Log(transferEvent, []umb.Bytes32{topic(from), topic(to)}, amount)
	}
	logApproval := func(env *xenv.Environment, owner, spender umb.Address, amount *big.Int) {
		env.Log(approvalEvent, []umb.Bytes32{topic(owner), topic(spender)}, amount)
	}

	return []nativeDefine{
		{"name", func(env *xenv.Environment) []any {
			name, err := bind(env).Name()
			env.Require(err)
			return []any{name}
		}},
		{"symbol", func(env *xenv.Environment) []any {
			symbol, err := bind(env).Symbol()
			env.Require(err)
			return []any{symbol}
		}},
		{"decimals", func(env *xenv.Environment) []any {
			return []any{bind(env).Decimals()}
		}},
		{"totalSupply", func(env *xenv.Environment) []any {
			supply, err := bind(env).TotalSupply()
			env.Require(err)
			return []any{supply}
		}},
		{"balanceOf", func(env *xenv.Environment) []any {
			var account common.Address
			env.ParseArgs(&account)

			balance, err := bind(env).BalanceOf(umb.Address(account))
			env.Require(err)
			return []any{balance}
		}},
		{"allowance", func(env *xenv.Environment) []any {
			var args struct {
				Owner   common.Address
				Spender common.Address
			}
			env.ParseArgs(&args)

			allowance, err := bind(env).Allowance(umb.Address(args.Owner), umb.Address(args.Spender))
			env.Require(err)
			return []any{allowance}
		}},
		{"maxAllowedTotalSupply", func(env *xenv.Environment) []any {
			supply, err := bind(env).MaxAllowedTotalSupply()
			env.Require(err)
			return []any{supply}
		}},
		{"transfer", func(env *xenv.Environment) []any {
			var args struct {
				Recipient common.Address
				Amount    *big.Int
			}
			env.ParseArgs(&args)

			env.Require(bind(env).Transfer(env.Caller(), umb.Address(args.Recipient), args.Amount))
			logTransfer(env, env.Caller(), umb.Address(args.Recipient), args.Amount)
			return []any{true}
		}},
		{"approve", func(env *xenv.Environment) []any {
			var args struct {
				Spender common.Address
				Amount  *big.Int
			}
			env.ParseArgs(&args)

			env.Require(bind(env).Approve(env.Caller(), umb.Address(args.Spender), args.Amount))
			logApproval(env, env.Caller(), umb.Address(args.Spender), args.Amount)
			return []any{true}
		}},
		{"transferFrom", func(env *xenv.Environment) []any {
			var args struct {
				Sender    common.Address
				Recipient common.Address
				Amount    *big.Int
			}
			env.ParseArgs(&args)

			sender := umb.Address(args.Sender)
			remaining, err := bind(env).TransferFrom(env.Caller(), sender, umb.Address(args.Recipient), args.Amount)
			env.Require(err)
			logTransfer(env, sender, umb.Address(args.Recipient), args.Amount)
			logApproval(env, sender, env.Caller(), remaining)
			return []any{true}
		}},
		{"increaseAllowance", func(env *xenv.Environment) []any {
			var args struct {
				Spender    common.Address
				AddedValue *big.Int
			}
			env.ParseArgs(&args)

			allowance, err := bind(env).IncreaseAllowance(env.Caller(), umb.Address(args.Spender), args.AddedValue)
			env.Require(err)
			logApproval(env, env.Caller(), umb.Address(args.Spender), allowance)
			return []any{true}
		}},
		{"decreaseAllowance", func(env *xenv.Environment) []any {
			var args struct {
				Spender         common.Address
				SubtractedValue *big.Int
			}
			env.ParseArgs(&args)

			allowance, err := bind(env).DecreaseAllowance(env.Caller(), umb.Address(args.Spender), args.SubtractedValue)
			env.Require(err)
			logApproval(env, env.Caller(), umb.Address(args.Spender), allowance)
			return []any{true}
		}},
		{"mint", func(env *xenv.Environment) []any {
			var args struct {
				Holder common.Address
				Amount *big.Int
			}
			env.ParseArgs(&args)

			env.Require(bind(env).Mint(env.Caller(), umb.Address(args.Holder), args.Amount))
			logTransfer(env, umb.Address{}, umb.Address(args.Holder), args.Amount)
			return nil
		}},
		{"burn", func(env *xenv.Environment) []any {
			var amount *big.Int
			env.ParseArgs(&amount)

			env.Require(bind(env).Burn(env.Caller(), amount))
			logTransfer(env, env.Caller(), umb.Address{}, amount)
			return nil
		}},
	}
}

func init() {
	bind := func(env *xenv.Environment) *token.Token {
		return UMB.Native(env.State(), env.To())
	}
	defines := append(tokenDefines(UMB.contract, bind), []nativeDefine{
		{"setRewardTokens", func(env *xenv.Environment) []any {
			var args struct {
				Tokens   []common.Address
				Statuses []bool
			}
			env.ParseArgs(&args)

			env.Require(bind(env).SetRewardTokens(env.Caller(), addresses(args.Tokens), args.Statuses))
			env.Log(UMB.MustEvent("LogSetRewardTokens"), nil, args.Tokens, args.Statuses)
			return nil
		}},
		{"rewardsTokens", func(env *xenv.Environment) []any {
			var addr common.Address
			env.ParseArgs(&addr)

			ok, err := bind(env).IsRewardToken(umb.Address(addr))
			env.Require(err)
			return []any{ok}
		}},
		{"swapMint", func(env *xenv.Environment) []any {
			var args struct {
				Holder common.Address
				Amount *big.Int
			}
			env.ParseArgs(&args)

			env.Require(bind(env).SwapMint(env.Caller(), umb.Address(args.Holder), args.Amount))
			env.Log(UMB.MustEvent("Transfer"), []umb.Bytes32{topic(umb.Address{}), topic(umb.Address(args.Holder))}, args.Amount)
			return nil
		}},
	}...)
	registerNatives(UMB.contract, defines)
	registerOwnable(UMB.contract, func(env *xenv.Environment) ownableNative { return bind(env) })
}
