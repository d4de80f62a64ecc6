// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/test/testledger"
	"github.com/umbrella-network/umbledger/umb"
)

func ether(n int64) *big.Int {
	return genesis.Ether(n).Big()
}

func bigOf(t *testing.T, values []any) *big.Int {
	require.Len(t, values, 1)
	v, ok := values[0].(*big.Int)
	require.True(t, ok, "%T is not a uint256", values[0])
	return v
}

// bigEq compares numbers by value: decoded zeros and new(big.Int) differ in representation.
func bigEq(t *testing.T, want, got *big.Int, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want.String(), got.String(), msgAndArgs...)
}

func boolOf(t *testing.T, values []any) bool {
	require.Len(t, values, 1)
	v, ok := values[0].(bool)
	require.True(t, ok, "%T is not a bool", values[0])
	return v
}

func TestCappedMintThroughMultiSig(t *testing.T) {
	cfg := genesis.DevConfig()
	cfg.UMB.InitialBalance = nil
	cfg.UMB.MaxAllowedTotalSupply = genesis.NewAmount(big.NewInt(100))
	cfg.Rewards.Data = nil

	l := testledger.New(t, cfg)
	accs := l.Accounts()
	c := l.Contracts()
	holder := accs[4].Address

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(100))
	bigEq(t, big.NewInt(100), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))
	bigEq(t, big.NewInt(100), bigOf(t, l.View(c.UMB, builtin.UMB, "totalSupply")))

	out := l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(1))
	assert.True(t, out.Reverted)
	assert.Equal(t, "total supply limit exceeded", out.RevertReason)
	bigEq(t, big.NewInt(1), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "transactionCount")))

	// burning lowers the cap with the supply
	l.MustExec(holder, c.UMB, builtin.UMB, "burn", big.NewInt(40))
	bigEq(t, big.NewInt(60), bigOf(t, l.View(c.UMB, builtin.UMB, "totalSupply")))
	bigEq(t, big.NewInt(60), bigOf(t, l.View(c.UMB, builtin.UMB, "maxAllowedTotalSupply")))

	out = l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(1))
	assert.True(t, out.Reverted)
	assert.Equal(t, "total supply limit exceeded", out.RevertReason)
}

func TestOwnerCannotMintDirectly(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()

	out := l.Exec(accs[0].Address, c.UMB, builtin.UMB, "mint", accs[0].Address, big.NewInt(1))
	assert.True(t, out.Reverted)
	assert.Equal(t, reverts.Unauthorized, out.RevertKind)
}

func TestLinearVesting(t *testing.T) {
	cfg := genesis.DevConfig()
	participant := cfg.Rewards.Data[0].Address
	cfg.Rewards.Data[0].Amount = genesis.NewAmount(big.NewInt(1000))
	cfg.Rewards.Data[0].Duration = 10

	l := testledger.New(t, cfg)
	c := l.Contracts()

	balance := func() *big.Int {
		return bigOf(t, l.View(c.Rewards, builtin.Rewards, "balanceOf", participant))
	}
	bigEq(t, new(big.Int), balance())

	l.Advance(5)
	bigEq(t, big.NewInt(500), balance())

	l.Advance(5)
	bigEq(t, big.NewInt(1000), balance())

	l.MustExec(participant, c.Rewards, builtin.Rewards, "claim")
	bigEq(t, new(big.Int), balance())
	bigEq(t, big.NewInt(1000), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", participant)))

	entry := l.View(c.Rewards, builtin.Rewards, "rewards", participant)
	require.Len(t, entry, 4)
	bigEq(t, big.NewInt(1000), entry[0].(*big.Int))
	bigEq(t, big.NewInt(10), entry[1].(*big.Int))
	bigEq(t, big.NewInt(1000), entry[2].(*big.Int))
	bigEq(t, new(big.Int), entry[3].(*big.Int))

	out := l.Exec(participant, c.Rewards, builtin.Rewards, "claim")
	assert.True(t, out.Reverted)
}

func TestStakingFarm(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()
	staker := accs[0].Address
	reward := ether(123_000)

	bigEq(t, new(big.Int).SetUint64(l.Now()+umb.OneYear),
		bigOf(t, l.View(c.Staking, builtin.Staking, "periodFinish")))

	stake := ether(1000)
	l.MustExec(staker, c.UMB, builtin.UMB, "approve", c.Staking, stake)
	l.MustExec(staker, c.Staking, builtin.Staking, "stake", stake)
	bigEq(t, stake, bigOf(t, l.View(c.Staking, builtin.Staking, "balanceOf", staker)))
	bigEq(t, stake, bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", c.Staking)))

	l.Advance(umb.OneYear)
	earned := bigOf(t, l.View(c.Staking, builtin.Staking, "earned", staker))
	assert.True(t, earned.Cmp(reward) <= 0)
	assert.True(t, new(big.Int).Sub(reward, earned).Cmp(big.NewInt(1e12)) < 0, "earned %v", earned)

	l.MustExec(staker, c.Staking, builtin.Staking, "exit")
	bigEq(t, earned, bigOf(t, l.View(c.RUMB, builtin.RUMB, "balanceOf", staker)))
	bigEq(t, new(big.Int), bigOf(t, l.View(c.Staking, builtin.Staking, "balanceOf", staker)))
	bigEq(t, new(big.Int), bigOf(t, l.View(c.Staking, builtin.Staking, "earned", staker)))
}

func TestMultiSigPowerThreshold(t *testing.T) {
	cfg := genesis.DevConfig()
	cfg.MultiSig.RequiredPower = 4

	l := testledger.New(t, cfg)
	accs := l.Accounts()
	c := l.Contracts()
	holder := accs[4].Address
	before := bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder))

	out := l.MustExec(accs[2].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(7))
	id, err := builtin.MultiSig.MustMethod("submitTokenMintTx").DecodeOutputValues(out.Data)
	require.NoError(t, err)
	bigEq(t, new(big.Int), bigOf(t, id))

	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isExceuted", big.NewInt(0))))
	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isConfirmed", big.NewInt(0))))
	bigEq(t, before, bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))

	l.MustExec(accs[3].Address, c.MultiSig, builtin.MultiSig, "confirmTransaction", big.NewInt(0))
	assert.True(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isExceuted", big.NewInt(0))))
	bigEq(t, new(big.Int).Add(before, big.NewInt(7)), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))

	confirmations := l.View(c.MultiSig, builtin.MultiSig, "getLogConfirmations", big.NewInt(0))
	assert.Equal(t, []any{[]common.Address{common.Address(accs[2].Address), common.Address(accs[3].Address)}}, confirmations)

	out = l.Exec(accs[2].Address, c.MultiSig, builtin.MultiSig, "confirmTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, reverts.InvalidState, out.RevertKind)

	out = l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "confirmTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, "transaction already executed", out.RevertReason)

	out = l.Exec(accs[4].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(7))
	assert.True(t, out.Reverted)
	assert.Equal(t, reverts.Unauthorized, out.RevertKind)
}

func TestMultiSigManagesOwners(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()
	newOwner := accs[4].Address

	out := l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "addOwner", newOwner, big.NewInt(2))
	assert.True(t, out.Reverted)
	assert.Equal(t, "only MultiSigMinter can execute this", out.RevertReason)

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitAddOwner", newOwner, big.NewInt(2))
	assert.True(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isOwner", newOwner)))
	bigEq(t, big.NewInt(2), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "ownersPowers", newOwner)))
	bigEq(t, big.NewInt(11), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "totalCurrentPower")))

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitChangeRequiredPower", big.NewInt(6))
	bigEq(t, big.NewInt(6), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "requiredPower")))

	// the power 5 owner alone is no longer enough
	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitRemoveOwner", newOwner)
	assert.True(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isOwner", newOwner)))
	l.MustExec(accs[3].Address, c.MultiSig, builtin.MultiSig, "confirmTransaction", big.NewInt(2))
	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isOwner", newOwner)))
	bigEq(t, big.NewInt(9), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "totalCurrentPower")))

	bigEq(t, big.NewInt(3), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "getTransactionCount", false, true)))
	ids := l.View(c.MultiSig, builtin.MultiSig, "getTransactionIds", big.NewInt(0), big.NewInt(10), true, true)
	require.Len(t, ids, 1)
	assert.Equal(t, "[0 1 2]", fmt.Sprint(ids[0]))
}

func TestEarlySwap(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()
	holder := accs[4].Address
	amount := ether(1000)

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.RUMB, holder, amount)
	bigEq(t, amount, bigOf(t, l.View(c.RUMB, builtin.RUMB, "balanceOf", holder)))
	assert.False(t, boolOf(t, l.View(c.RUMB, builtin.RUMB, "isSwapStarted")))
	assert.False(t, boolOf(t, l.View(c.RUMB, builtin.RUMB, "canSwapTokens", holder)))

	out := l.Exec(holder, c.RUMB, builtin.RUMB, "swapFor", c.UMB)
	assert.True(t, out.Reverted)
	assert.Equal(t, "swapping period has not started yet", out.RevertReason)

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitRUMBStartEarlySwapTx", c.RUMB)
	assert.True(t, boolOf(t, l.View(c.RUMB, builtin.RUMB, "isSwapStarted")))
	bigEq(t, new(big.Int).SetUint64(l.Now()), bigOf(t, l.View(c.RUMB, builtin.RUMB, "swapStartsOn")))

	out = l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitRUMBStartEarlySwapTx", c.RUMB)
	assert.True(t, out.Reverted)
	assert.Equal(t, "swap is already allowed", out.RevertReason)

	duration := 6 * umb.OneMonth
	l.Advance(duration / 2)
	bigEq(t, ether(250_000_000), bigOf(t, l.View(c.RUMB, builtin.RUMB, "totalUnlockedAmountOfToken")))

	l.Advance(duration - duration/2)
	assert.True(t, boolOf(t, l.View(c.RUMB, builtin.RUMB, "canSwapTokens", holder)))

	umbBefore := bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder))
	l.MustExec(holder, c.RUMB, builtin.RUMB, "swapFor", c.UMB)
	bigEq(t, new(big.Int), bigOf(t, l.View(c.RUMB, builtin.RUMB, "balanceOf", holder)))
	bigEq(t, new(big.Int).Add(umbBefore, amount), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))
	bigEq(t, amount, bigOf(t, l.View(c.RUMB, builtin.RUMB, "swappedSoFar")))

	out = l.Exec(holder, c.RUMB, builtin.RUMB, "swapFor", c.UMB)
	assert.True(t, out.Reverted)
	assert.Equal(t, "you dont have tokens to swap", out.RevertReason)
}

func TestAirdropThroughMultiSig(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()

	// fund the airdrop from the deployer's initial balance
	l.MustExec(accs[0].Address, c.UMB, builtin.UMB, "transfer", c.Airdrop, ether(10))

	receivers := []umb.Address{accs[2].Address, accs[3].Address}
	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitAirdropTokensTx",
		c.Airdrop, c.UMB, receivers, []*big.Int{ether(4), ether(6)})

	bigEq(t, ether(4), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", accs[2].Address)))
	bigEq(t, ether(6), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", accs[3].Address)))
	bigEq(t, new(big.Int), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", c.Airdrop)))

	out := l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitAirdropTokensTx",
		c.Airdrop, c.UMB, receivers, []*big.Int{ether(1), ether(1)})
	assert.True(t, out.Reverted)
	assert.Equal(t, reverts.InsufficientFunds, out.RevertKind)
}

func TestMultiSigExecuteAfterRequirementDrops(t *testing.T) {
	l := testledger.New(t, nil)
	accs := l.Accounts()
	c := l.Contracts()
	holder := accs[4].Address
	before := bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder))

	// power 3 of the required 5
	l.MustExec(accs[2].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(7))
	l.MustExec(accs[2].Address, c.MultiSig, builtin.MultiSig, "executeTransaction", big.NewInt(0))
	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isExceuted", big.NewInt(0))))
	bigEq(t, before, bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))

	out := l.Exec(accs[4].Address, c.MultiSig, builtin.MultiSig, "executeTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, "owner do NOT exists", out.RevertReason)

	out = l.Exec(accs[3].Address, c.MultiSig, builtin.MultiSig, "executeTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, "transaction NOT confirmed by owner", out.RevertReason)

	l.MustExec(accs[1].Address, c.MultiSig, builtin.MultiSig, "submitChangeRequiredPower", big.NewInt(3))
	bigEq(t, big.NewInt(3), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "requiredPower")))

	l.MustExec(accs[2].Address, c.MultiSig, builtin.MultiSig, "executeTransaction", big.NewInt(0))
	assert.True(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isExceuted", big.NewInt(0))))
	bigEq(t, new(big.Int).Add(before, big.NewInt(7)), bigOf(t, l.View(c.UMB, builtin.UMB, "balanceOf", holder)))

	out = l.Exec(accs[2].Address, c.MultiSig, builtin.MultiSig, "executeTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, "transaction already executed", out.RevertReason)
}

func TestMultiSigConfirmRevertsWithInnerReason(t *testing.T) {
	cfg := genesis.DevConfig()
	cfg.UMB.InitialBalance = nil
	cfg.UMB.MaxAllowedTotalSupply = genesis.NewAmount(big.NewInt(100))
	cfg.Rewards.Data = nil

	l := testledger.New(t, cfg)
	accs := l.Accounts()
	c := l.Contracts()
	holder := accs[4].Address

	l.MustExec(accs[2].Address, c.MultiSig, builtin.MultiSig, "submitTokenMintTx", c.UMB, holder, big.NewInt(101))

	out := l.Exec(accs[1].Address, c.MultiSig, builtin.MultiSig, "confirmTransaction", big.NewInt(0))
	assert.True(t, out.Reverted)
	assert.Equal(t, "total supply limit exceeded", out.RevertReason)

	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isExceuted", big.NewInt(0))))
	assert.False(t, boolOf(t, l.View(c.MultiSig, builtin.MultiSig, "isConfirmed", big.NewInt(0))))
	bigEq(t, big.NewInt(1), bigOf(t, l.View(c.MultiSig, builtin.MultiSig, "getLogConfirmationCount", big.NewInt(0))))
	bigEq(t, new(big.Int), bigOf(t, l.View(c.UMB, builtin.UMB, "totalSupply")))
}
