// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	mathrand "math/rand/v2"

	"github.com/umbrella-network/umbledger/umb"
)

func RandAddress() (addr umb.Address) {
	rand.Read(addr[:])
	return
}

func RandAddresses(n int) []umb.Address {
	addrs := make([]umb.Address, 0, n)
	for range n {
		addrs = append(addrs, RandAddress())
	}
	return addrs
}

func RandBytes32() (b umb.Bytes32) {
	rand.Read(b[:])
	return
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}
