// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/umb"
)

const testABI = `[
	{"type":"function","name":"mint","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"Transfer","anonymous":false,
	 "inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

func TestMethod(t *testing.T) {
	a, err := abi.New([]byte(testABI))
	require.NoError(t, err)

	mint, ok := a.MethodByName("mint")
	require.True(t, ok)
	assert.Equal(t, "40c10f19", hex.EncodeToString(mint.ID().Bytes()))
	assert.Equal(t, "mint(address,uint256)", mint.Sig())
	assert.False(t, mint.Const())

	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	input, err := mint.EncodeInput(to, big.NewInt(7))
	require.NoError(t, err)

	found, err := a.MethodByInput(input)
	require.NoError(t, err)
	assert.Equal(t, mint, found)

	var args struct {
		To     common.Address
		Amount *big.Int
	}
	require.NoError(t, mint.DecodeInput(input, &args))
	assert.Equal(t, to, args.To)
	assert.Equal(t, big.NewInt(7), args.Amount)

	_, err = a.MethodByInput([]byte{1, 2})
	assert.Error(t, err)
	_, err = a.MethodByInput([]byte{1, 2, 3, 4})
	assert.Error(t, err)

	balanceOf, _ := a.MethodByName("balanceOf")
	assert.True(t, balanceOf.Const())
	out, err := balanceOf.EncodeOutput(big.NewInt(99))
	require.NoError(t, err)
	var bal *big.Int
	require.NoError(t, balanceOf.DecodeOutput(out, &bal))
	assert.Equal(t, big.NewInt(99), bal)
}

func TestEvent(t *testing.T) {
	a, err := abi.New([]byte(testABI))
	require.NoError(t, err)

	ev, ok := a.EventByName("Transfer")
	require.True(t, ok)
	assert.Equal(t, umb.Keccak256([]byte("Transfer(address,address,uint256)")), ev.ID())

	data, err := ev.Encode(big.NewInt(5))
	require.NoError(t, err)

	from := umb.BytesToAddress([]byte("from"))
	decoded, err := ev.DecodeToMap([]umb.Bytes32{ev.ID(), umb.BytesToBytes32(from.Bytes()), {}}, data)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), decoded["value"])
	assert.Equal(t, common.Address(from), decoded["from"])
	assert.Equal(t, common.Address{}, decoded["to"])

	_, err = ev.DecodeToMap(nil, data)
	assert.Error(t, err)
}
