// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

// ownableNative is implemented by every contract guarded by an owner.
type ownableNative interface {
	Owner() (umb.Address, error)
	TransferOwnership(caller, newOwner umb.Address) (umb.Address, error)
	Renounce(caller umb.Address) (umb.Address, error)
}

func logOwnershipTransferred(env *xenv.Environment, c *contract, prev, next umb.Address) {
	env.Log(c.MustEvent("OwnershipTransferred"), []umb.Bytes32{topic(prev), topic(next)})
}

func registerOwnable(c *contract, bind func(env *xenv.Environment) ownableNative) {
	registerNatives(c, []nativeDefine{
		{"owner", func(env *xenv.Environment) []any {
			owner, err := bind(env).Owner()
			env.Require(err)
			return []any{owner}
		}},
		{"transferOwnership", func(env *xenv.Environment) []any {
			var newOwner common.Address
			env.ParseArgs(&newOwner)

			prev, err := bind(env).TransferOwnership(env.Caller(), umb.Address(newOwner))
			env.Require(err)
			logOwnershipTransferred(env, c, prev, umb.Address(newOwner))
			return nil
		}},
		{"renounceOwnership", func(env *xenv.Environment) []any {
			prev, err := bind(env).Renounce(env.Caller())
			env.Require(err)
			logOwnershipTransferred(env, c, prev, umb.Address{})
			return nil
		}},
	})
}
