// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package umb

import "math/big"

// time constants, in seconds.
const (
	OneDay   uint64 = 24 * 3600
	OneYear  uint64 = 365 * OneDay
	OneMonth uint64 = OneYear / 12
)

const (
	// SwapDelay is the time between a swap token deployment and the opening of its swap window.
	SwapDelay = OneYear
	// DefaultRewardsDuration is the initial farming period length.
	DefaultRewardsDuration = OneYear
	// DefaultMaxOwners bounds the size of a multisig owner table when none is configured.
	DefaultMaxOwners uint64 = 50
	// MaxCallDepth bounds nested contract calls.
	MaxCallDepth = 64
	// TokenDecimals of every ledger token.
	TokenDecimals uint8 = 18
)

// Ether is 10^18, the base-unit multiplier of a token with 18 decimals.
var Ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
