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
		{"airdropTokens", func(env *xenv.Environment) []any {
			var args struct {
				Token     common.Address
				Addresses []common.Address
				Amounts   []*big.Int
			}
			env.ParseArgs(&args)

			drops, err := Airdrop.Native(env.State(), env.To()).Plan(env.Caller(), addresses(args.Addresses), args.Amounts)
			env.Require(err)

			token := bindERC20(env, umb.Address(args.Token))
			for _, drop := range drops {
				env.Require(token.SafeTransfer(drop.To, drop.Amount))
			}
			return nil
		}},
	}
	registerNatives(Airdrop.contract, defines)
	registerOwnable(Airdrop.contract, func(env *xenv.Environment) ownableNative {
		return Airdrop.Native(env.State(), env.To())
	})
}
