// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/umb"
)

func TestClause(t *testing.T) {
	to := umb.BytesToAddress([]byte{0xde, 0xad, 0xbe, 0xef})
	clause := NewClause(to)

	assert.Equal(t, to, clause.To())
	assert.Equal(t, 0, clause.Value().Sign())
	assert.Empty(t, clause.Data())

	data := []byte{1, 2, 3}
	withData := clause.WithData(data).WithValue(big.NewInt(100))
	data[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, withData.Data())
	assert.Equal(t, int64(100), withData.Value().Int64())
	assert.Empty(t, clause.Data(), "original clause is untouched")
}

func TestClauseRLP(t *testing.T) {
	clause := NewClause(umb.BytesToAddress([]byte("rumb"))).WithData([]byte{0xa9, 0x05, 0x9c, 0xbb, 0x01})

	enc, err := rlp.EncodeToBytes(clause)
	require.NoError(t, err)

	var decoded Clause
	require.NoError(t, rlp.DecodeBytes(enc, &decoded))
	assert.Equal(t, clause.To(), decoded.To())
	assert.Equal(t, clause.Data(), decoded.Data())
	assert.Equal(t, 0, decoded.Value().Sign())
	assert.Equal(t, clause.Hash(), decoded.Hash())
	assert.Contains(t, decoded.String(), "selector: 0xa9059cbb")
}

func TestClauseSelectorAndHash(t *testing.T) {
	to := umb.BytesToAddress([]byte("umb"))

	_, ok := NewClause(to).WithData([]byte{1, 2, 3}).Selector()
	assert.False(t, ok)

	sel, ok := NewClause(to).WithData([]byte{0x18, 0x16, 0x0d, 0xdd}).Selector()
	assert.True(t, ok)
	assert.Equal(t, [4]byte{0x18, 0x16, 0x0d, 0xdd}, sel)

	a := NewClause(to).WithData([]byte{1})
	assert.Equal(t, a.Hash(), NewClause(to).WithData([]byte{1}).Hash())
	assert.NotEqual(t, a.Hash(), a.WithValue(big.NewInt(1)).Hash())
	assert.NotEqual(t, a.Hash(), a.WithData([]byte{2}).Hash())
	assert.Contains(t, NewClause(to).String(), "data: 0x)")
}

func TestEventsFilter(t *testing.T) {
	a := umb.BytesToAddress([]byte("a"))
	b := umb.BytesToAddress([]byte("b"))
	id := umb.BytesToBytes32([]byte("id"))

	events := Events{
		{Address: a, Topics: []umb.Bytes32{id}},
		{Address: b, Topics: []umb.Bytes32{id}},
		{Address: a},
		{Address: a, Topics: []umb.Bytes32{{}}},
	}
	assert.Equal(t, Events{events[0]}, events.Filter(a, id))
	assert.Nil(t, events.Filter(b, umb.Bytes32{}))
}
