// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"testing"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesRoundTrip(t *testing.T) {
	for _, msg := range []string{"", "total supply limit exceeded", "a reason string longer than thirty two bytes for padding"} {
		e := New(InsufficientFunds, msg)
		reason, err := ethabi.UnpackRevert(e.Bytes())
		require.NoError(t, err)
		assert.Equal(t, msg, reason)
	}
	var nilErr *ErrRequire
	assert.Nil(t, nilErr.Bytes())
}

func TestIsRevertErr(t *testing.T) {
	e := New(Unauthorized, "Ownable: caller is not the owner")

	assert.True(t, IsRevertErr(e))
	assert.True(t, IsRevertErr(errors.WithMessage(e, "call")))
	assert.True(t, IsRevertErr(fmt.Errorf("wrapped: %w", e)))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errors.New("plain")))
	assert.False(t, IsRevertErr((*ErrRequire)(nil)))
}

func TestKind(t *testing.T) {
	assert.Equal(t, Unauthorized, KindOf(New(Unauthorized, "x")))
	assert.Equal(t, Unknown, KindOf(NewRequireError("x")))
	assert.Equal(t, Unknown, KindOf(errors.New("x")))
	assert.Equal(t, "invalid_state", InvalidState.String())

	assert.NoError(t, Require(true, InvalidArgument, "never"))
	err := Require(false, InvalidArgument, "Cannot stake 0")
	assert.EqualError(t, err, "Cannot stake 0")
	assert.Equal(t, InvalidArgument, KindOf(err))
}
