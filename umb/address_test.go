// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package umb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"1x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", true},
		{"0xzzAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestAddressString(t *testing.T) {
	addr := MustParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addr.String())
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestIsChecksumAddress(t *testing.T) {
	assert.True(t, IsChecksumAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.False(t, IsChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.False(t, IsChecksumAddress("0x5aAeb6053F3E94C9"))
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("holder"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x12"`), &decoded))
}

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte{1})
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", b.String())
	assert.Equal(t, b, MustParseBytes32(b.String()))
	assert.True(t, Bytes32{}.IsZero())
	assert.True(t, Bytes32{}.Less(b))
	assert.False(t, b.Less(b))

	_, err := ParseBytes32("0x01")
	assert.Error(t, err)

	bare, err := ParseBytes32(b.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, b, bare)

	data, err := json.Marshal(map[string]Bytes32{"root": b})
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":"`+b.String()+`"}`, string(data))

	var decoded struct{ Root Bytes32 }
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded.Root)
	assert.Error(t, json.Unmarshal([]byte(`{"root":"0x01"}`), &decoded))
}

func TestKeccak256(t *testing.T) {
	// keccak256("") is a well known constant
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256().String())
	assert.NotEqual(t, Keccak256([]byte("a")), Blake2b([]byte("a")))
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
}
