// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package umb

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes32 is a 32 byte word: a storage slot, a hash or a Merkle node.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return hexutil.Encode(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// Less orders words as big-endian numbers, the order sorted Merkle pairs use.
func (b Bytes32) Less(other Bytes32) bool {
	return bytes.Compare(b[:], other[:]) < 0
}

// MarshalText encodes b as 0x prefixed hex, which covers JSON and YAML.
func (b Bytes32) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

// UnmarshalText requires exactly 32 bytes of 0x prefixed hex.
func (b *Bytes32) UnmarshalText(text []byte) error {
	return hexutil.UnmarshalFixedText("Bytes32", text, b[:])
}

// ParseBytes32 parses 64 hex digits, with or without the 0x prefix.
func ParseBytes32(s string) (Bytes32, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	var b Bytes32
	if err := b.UnmarshalText([]byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 left-pads short input and keeps the rightmost 32 bytes of long input.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
