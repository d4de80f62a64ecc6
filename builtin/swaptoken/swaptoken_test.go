// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package swaptoken

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/builtin/ownable"
	"github.com/umbrella-network/umbledger/lvldb"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/test/datagen"
	"github.com/umbrella-network/umbledger/umb"
)

const (
	deployTime   = uint64(1_000_000)
	swapDuration = uint64(23)
)

// M collects multiple return values. Big integers are copied so that zero values compare equal.
func M(a ...any) []any {
	for i, v := range a {
		if b, ok := v.(*big.Int); ok && b != nil {
			a[i] = new(big.Int).Set(b)
		}
	}
	return a
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db)
}

func newSwapToken(t *testing.T, owner, holder umb.Address) *SwapToken {
	s := New(datagen.RandAddress(), newState(t))
	require.NoError(t, s.Initialize(owner, holder, big.NewInt(0), big.NewInt(100), swapDuration, "rUMB", "rUMB", deployTime))
	require.NoError(t, s.Mint(owner, holder, big.NewInt(67)))
	return s
}

func TestInitializeValidation(t *testing.T) {
	owner := datagen.RandAddress()

	s := New(datagen.RandAddress(), newState(t))
	assert.Equal(t, ErrEmptyMaxSupply, s.Initialize(owner, owner, big.NewInt(0), big.NewInt(0), 1, "n", "s", deployTime))
	assert.Equal(t, ErrEmptySwapDuration, s.Initialize(owner, owner, big.NewInt(0), big.NewInt(1), 0, "n", "s", deployTime))

	require.NoError(t, s.Initialize(owner, owner, big.NewInt(5), big.NewInt(100), swapDuration, "n", "s", deployTime))
	tests := []struct {
		ret      []any
		expected []any
	}{
		{M(s.SwapDuration()), M(swapDuration, nil)},
		{M(s.SwapStartsOn()), M(deployTime+umb.SwapDelay, nil)},
		{M(s.SwapDelay()), M(umb.SwapDelay)},
		{M(s.TotalAmountToBeSwapped()), M(big.NewInt(100), nil)},
		{M(s.SwappedSoFar()), M(big.NewInt(0), nil)},
		{M(s.BalanceOf(owner)), M(big.NewInt(5), nil)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}
}

func TestIsSwapStarted(t *testing.T) {
	owner, holder := datagen.RandAddress(), datagen.RandAddress()
	s := newSwapToken(t, owner, holder)

	assert.Equal(t, M(false, nil), M(s.IsSwapStarted(deployTime)))
	assert.Equal(t, M(false, nil), M(s.IsSwapStarted(deployTime+umb.SwapDelay-1)))
	assert.Equal(t, M(true, nil), M(s.IsSwapStarted(deployTime+umb.SwapDelay)))
}

func TestStartEarlySwap(t *testing.T) {
	owner, holder := datagen.RandAddress(), datagen.RandAddress()
	s := newSwapToken(t, owner, holder)

	assert.Equal(t, ownable.ErrNotOwner, s.StartEarlySwap(holder, deployTime+10))
	require.NoError(t, s.StartEarlySwap(owner, deployTime+10))
	assert.Equal(t, M(deployTime+10, nil), M(s.SwapStartsOn()))
	assert.Equal(t, ErrAlreadyStarted, s.StartEarlySwap(owner, deployTime+11))
}

func TestTotalUnlocked(t *testing.T) {
	owner, holder := datagen.RandAddress(), datagen.RandAddress()
	s := newSwapToken(t, owner, holder)
	start := deployTime + umb.SwapDelay

	assert.Equal(t, M(big.NewInt(0), nil), M(s.TotalUnlocked(deployTime)))
	assert.Equal(t, M(big.NewInt(0), nil), M(s.TotalUnlocked(start-1)))

	prev := big.NewInt(0)
	for i := uint64(0); i <= swapDuration; i++ {
		unlocked, err := s.TotalUnlocked(start + i)
		require.NoError(t, err)
		assert.Equal(t, int64(100*i/swapDuration), unlocked.Int64())
		assert.True(t, unlocked.Cmp(prev) >= 0)
		prev = unlocked
	}
	assert.Equal(t, M(big.NewInt(100), nil), M(s.TotalUnlocked(start+swapDuration*10)))
}

func TestSwap(t *testing.T) {
	owner, holder := datagen.RandAddress(), datagen.RandAddress()
	s := newSwapToken(t, owner, holder)
	start := deployTime + umb.SwapDelay

	_, err := s.Swap(holder, start-3)
	assert.Equal(t, ErrNotStarted, err)

	// 67 needs floor(100*i/23) >= 67, i.e. 16 seconds into the window
	assert.Equal(t, M(false, nil), M(s.CanSwapTokens(holder, start+15)))
	_, err = s.Swap(holder, start+15)
	assert.Equal(t, ErrOverLimit, err)

	assert.Equal(t, M(true, nil), M(s.CanSwapTokens(holder, start+16)))
	assert.Equal(t, M(big.NewInt(67), nil), M(s.Swap(holder, start+16)))

	tests := []struct {
		ret      []any
		expected []any
	}{
		{M(s.BalanceOf(holder)), M(big.NewInt(0), nil)},
		{M(s.TotalSupply()), M(big.NewInt(0), nil)},
		{M(s.SwappedSoFar()), M(big.NewInt(67), nil)},
		{M(s.MaxAllowedTotalSupply()), M(big.NewInt(100), nil)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}

	_, err = s.Swap(holder, start+swapDuration)
	assert.Equal(t, ErrNothingToSwap, err)
}

func TestSwapAccountsForSwappedSoFar(t *testing.T) {
	owner, a, b := datagen.RandAddress(), datagen.RandAddress(), datagen.RandAddress()
	s := newSwapToken(t, owner, a)
	require.NoError(t, s.Mint(owner, b, big.NewInt(33)))
	start := deployTime + umb.SwapDelay

	// 33 fits at floor(100*8/23) = 34
	assert.Equal(t, M(big.NewInt(33), nil), M(s.Swap(b, start+8)))
	// 33+67 = 100 only fits once fully unlocked
	_, err := s.Swap(a, start+22)
	assert.Equal(t, ErrOverLimit, err)
	assert.Equal(t, M(big.NewInt(67), nil), M(s.Swap(a, start+23)))
}
