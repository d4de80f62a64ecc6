// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/builtin/multisig"
	"github.com/umbrella-network/umbledger/umb"
	"github.com/umbrella-network/umbledger/xenv"
)

func idTopic(id uint64) umb.Bytes32 {
	return umb.BytesToBytes32(u256(id).Bytes())
}

// executeTransaction performs transaction id when its confirmations hold enough power.
// A failure of the destination reverts the whole call.
func executeTransaction(env *xenv.Environment, wallet *multisig.MultiSig, id uint64) {
	tx, err := wallet.PrepareExecution(env.Caller(), id)
	env.Require(err)
	if tx == nil {
		return
	}
	if tx.Value.Sign() != 0 {
		env.Stop(xenv.ErrValueNotAccepted)
	}
	out, err := env.Invoke(tx.Destination, tx.Data)
	env.Require(err)
	env.Log(MultiSig.MustEvent("LogExecution"), []umb.Bytes32{idTopic(id)}, out)
}

func confirmTransaction(env *xenv.Environment, wallet *multisig.MultiSig, id uint64) {
	env.Require(wallet.Confirm(env.Caller(), id))
	env.Log(MultiSig.MustEvent("LogConfirmation"), []umb.Bytes32{topic(env.Caller()), idTopic(id)})
	executeTransaction(env, wallet, id)
}

func submitTransaction(env *xenv.Environment, destination umb.Address, value *big.Int, data []byte) []any {
	wallet := MultiSig.Native(env.State(), env.To())
	id, err := wallet.Submit(env.Caller(), destination, value, data)
	env.Require(err)
	env.Log(MultiSig.MustEvent("LogSubmission"), []umb.Bytes32{idTopic(id)})
	env.Log(MultiSig.MustEvent("LogConfirmation"), []umb.Bytes32{topic(env.Caller()), idTopic(id)})
	executeTransaction(env, wallet, id)
	return []any{u256(id)}
}

// submitCall submits a call of the named method of c at destination.
func submitCall(env *xenv.Environment, destination umb.Address, c *contract, method string, args ...any) []any {
	data, err := c.EncodeCall(method, args...)
	env.Require(err)
	return submitTransaction(env, destination, new(big.Int), data)
}

func init() {
	bind := func(env *xenv.Environment) *multisig.MultiSig {
		return MultiSig.Native(env.State(), env.To())
	}
	uintView := func(get func(wallet *multisig.MultiSig) (uint64, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			v, err := get(bind(env))
			env.Require(err)
			return []any{u256(v)}
		}
	}
	txView := func(get func(wallet *multisig.MultiSig, id uint64) (any, error)) func(env *xenv.Environment) []any {
		return func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			v, err := get(bind(env), toUint64(env, id))
			env.Require(err)
			return []any{v}
		}
	}
	logOwnerAddition := func(env *xenv.Environment, owner umb.Address, power *big.Int) {
		env.Log(MultiSig.MustEvent("LogOwnerAddition"), []umb.Bytes32{topic(owner)}, power)
	}
	logOwnerRemoval := func(env *xenv.Environment, owner umb.Address) {
		env.Log(MultiSig.MustEvent("LogOwnerRemoval"), []umb.Bytes32{topic(owner)})
	}

	defines := []nativeDefine{
		{"addOwner", func(env *xenv.Environment) []any {
			var args struct {
				Owner common.Address
				Power *big.Int
			}
			env.ParseArgs(&args)

			env.Require(bind(env).AddOwner(env.Caller(), umb.Address(args.Owner), toUint64(env, args.Power)))
			logOwnerAddition(env, umb.Address(args.Owner), args.Power)
			return nil
		}},
		{"removeOwner", func(env *xenv.Environment) []any {
			var owner common.Address
			env.ParseArgs(&owner)

			env.Require(bind(env).RemoveOwner(env.Caller(), umb.Address(owner)))
			logOwnerRemoval(env, umb.Address(owner))
			return nil
		}},
		{"replaceOwner", func(env *xenv.Environment) []any {
			var args struct {
				Owner    common.Address
				NewOwner common.Address
			}
			env.ParseArgs(&args)

			wallet := bind(env)
			env.Require(wallet.ReplaceOwner(env.Caller(), umb.Address(args.Owner), umb.Address(args.NewOwner)))
			power, err := wallet.OwnersPowers(umb.Address(args.NewOwner))
			env.Require(err)
			logOwnerRemoval(env, umb.Address(args.Owner))
			logOwnerAddition(env, umb.Address(args.NewOwner), u256(power))
			return nil
		}},
		{"changeRequiredPower", func(env *xenv.Environment) []any {
			var power *big.Int
			env.ParseArgs(&power)

			env.Require(bind(env).ChangeRequiredPower(env.Caller(), toUint64(env, power)))
			env.Log(MultiSig.MustEvent("LogPowerChange"), nil, power)
			return nil
		}},
		{"submitTransaction", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Value       *big.Int
				Data        []byte
			}
			env.ParseArgs(&args)

			return submitTransaction(env, umb.Address(args.Destination), args.Value, args.Data)
		}},
		{"confirmTransaction", func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			confirmTransaction(env, bind(env), toUint64(env, id))
			return nil
		}},
		{"revokeLogConfirmation", func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			env.Require(bind(env).Revoke(env.Caller(), toUint64(env, id)))
			env.Log(MultiSig.MustEvent("LogRevocation"), []umb.Bytes32{topic(env.Caller()), idTopic(id.Uint64())})
			return nil
		}},
		{"executeTransaction", func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			wallet := bind(env)
			isOwner, err := wallet.IsOwner(env.Caller())
			env.Require(err)
			if !isOwner {
				env.Stop(multisig.ErrOwnerNotExists)
			}
			executeTransaction(env, wallet, toUint64(env, id))
			return nil
		}},
		{"requiredPower", uintView((*multisig.MultiSig).RequiredPower)},
		{"totalCurrentPower", uintView((*multisig.MultiSig).TotalCurrentPower)},
		{"ownersCount", uintView((*multisig.MultiSig).OwnersCount)},
		{"transactionCount", uintView((*multisig.MultiSig).TransactionCount)},
		{"maxOwners", uintView((*multisig.MultiSig).MaxOwners)},
		{"owners", txView(func(wallet *multisig.MultiSig, i uint64) (any, error) {
			return wallet.Owner(i)
		})},
		{"isConfirmed", txView(func(wallet *multisig.MultiSig, id uint64) (any, error) {
			return wallet.IsConfirmed(id)
		})},
		{"isExceuted", txView(func(wallet *multisig.MultiSig, id uint64) (any, error) {
			return wallet.IsExecuted(id)
		})},
		{"getLogConfirmationCount", txView(func(wallet *multisig.MultiSig, id uint64) (any, error) {
			count, err := wallet.ConfirmationCount(id)
			return u256(count), err
		})},
		{"getLogConfirmations", txView(func(wallet *multisig.MultiSig, id uint64) (any, error) {
			return wallet.Confirmations(id)
		})},
		{"ownersPowers", func(env *xenv.Environment) []any {
			var owner common.Address
			env.ParseArgs(&owner)

			power, err := bind(env).OwnersPowers(umb.Address(owner))
			env.Require(err)
			return []any{u256(power)}
		}},
		{"isOwner", func(env *xenv.Environment) []any {
			var owner common.Address
			env.ParseArgs(&owner)

			ok, err := bind(env).IsOwner(umb.Address(owner))
			env.Require(err)
			return []any{ok}
		}},
		{"getTransaction", func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			tx, err := bind(env).Transaction(toUint64(env, id))
			env.Require(err)
			return []any{tx.Destination, tx.Value, tx.Data, tx.Executed}
		}},
		{"getTransactionShort", func(env *xenv.Environment) []any {
			var id *big.Int
			env.ParseArgs(&id)

			tx, err := bind(env).Transaction(toUint64(env, id))
			env.Require(err)
			return []any{tx.Destination, tx.Executed}
		}},
		{"getTransactionCount", func(env *xenv.Environment) []any {
			var args struct {
				Pending  bool
				Executed bool
			}
			env.ParseArgs(&args)

			count, err := bind(env).FilteredTransactionCount(args.Pending, args.Executed)
			env.Require(err)
			return []any{u256(count)}
		}},
		{"getTransactionIds", func(env *xenv.Environment) []any {
			var args struct {
				From     *big.Int
				To       *big.Int
				Pending  bool
				Executed bool
			}
			env.ParseArgs(&args)

			to := args.To
			if !to.IsUint64() {
				to = u256(^uint64(0))
			}
			ids, err := bind(env).TransactionIDs(toUint64(env, args.From), to.Uint64(), args.Pending, args.Executed)
			env.Require(err)
			out := make([]*big.Int, len(ids))
			for i, id := range ids {
				out[i] = u256(id)
			}
			return []any{out}
		}},
		{"getOwners", func(env *xenv.Environment) []any {
			owners, err := bind(env).Owners()
			env.Require(err)
			return []any{owners}
		}},
		{"sum", func(env *xenv.Environment) []any {
			var values []*big.Int
			env.ParseArgs(&values)

			sum, err := multisig.Sum(values)
			env.Require(err)
			return []any{sum}
		}},
		{"createFunctionSignature", func(env *xenv.Environment) []any {
			var signature string
			env.ParseArgs(&signature)

			return []any{umb.Keccak256([]byte(signature)).Bytes()[:4]}
		}},
		{"submitAddOwner", func(env *xenv.Environment) []any {
			var args struct {
				Owner common.Address
				Power *big.Int
			}
			env.ParseArgs(&args)
			return submitCall(env, env.To(), MultiSig.contract, "addOwner", args.Owner, args.Power)
		}},
		{"submitRemoveOwner", func(env *xenv.Environment) []any {
			var owner common.Address
			env.ParseArgs(&owner)
			return submitCall(env, env.To(), MultiSig.contract, "removeOwner", owner)
		}},
		{"submitReplaceOwner", func(env *xenv.Environment) []any {
			var args struct {
				Old common.Address
				New common.Address
			}
			env.ParseArgs(&args)
			return submitCall(env, env.To(), MultiSig.contract, "replaceOwner", args.Old, args.New)
		}},
		{"submitChangeRequiredPower", func(env *xenv.Environment) []any {
			var power *big.Int
			env.ParseArgs(&power)
			return submitCall(env, env.To(), MultiSig.contract, "changeRequiredPower", power)
		}},
		{"submitTokenMintTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Holder      common.Address
				Amount      *big.Int
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), UMB.contract, "mint", args.Holder, args.Amount)
		}},
		{"submitUMBSetRewardTokensTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Tokens      []common.Address
				Statuses    []bool
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), UMB.contract, "setRewardTokens", args.Tokens, args.Statuses)
		}},
		{"submitRUMBStartEarlySwapTx", func(env *xenv.Environment) []any {
			var destination common.Address
			env.ParseArgs(&destination)
			return submitCall(env, umb.Address(destination), RUMB.contract, "startEarlySwap")
		}},
		{"submitStakingRewardsSetRewardsDistributionTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination        common.Address
				RewardsDistributor common.Address
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), Staking.contract, "setRewardsDistribution", args.RewardsDistributor)
		}},
		{"submitStakingRewardsSetRewardsDurationTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Duration    *big.Int
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), Staking.contract, "setRewardsDuration", args.Duration)
		}},
		{"submitStakingRewardsFinishFarmingTx", func(env *xenv.Environment) []any {
			var destination common.Address
			env.ParseArgs(&destination)
			return submitCall(env, umb.Address(destination), Staking.contract, "finishFarming")
		}},
		{"submitStakingRewardsNotifyRewardAmountTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Amount      *big.Int
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), Staking.contract, "notifyRewardAmount", args.Amount)
		}},
		{"submitAirdropTokensTx", func(env *xenv.Environment) []any {
			var args struct {
				Destination common.Address
				Token       common.Address
				Addresses   []common.Address
				Amounts     []*big.Int
			}
			env.ParseArgs(&args)
			return submitCall(env, umb.Address(args.Destination), Airdrop.contract, "airdropTokens", args.Token, args.Addresses, args.Amounts)
		}},
	}
	registerNatives(MultiSig.contract, defines)
}
