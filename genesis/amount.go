// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/umbrella-network/umbledger/umb"
)

const etherSuffix = " ether"

// Amount is a token amount in base units. Its text form is hex or decimal, optionally
// followed by " ether" to scale a whole number of tokens by 10^18.
type Amount big.Int

// NewAmount returns an Amount of v base units.
func NewAmount(v *big.Int) *Amount {
	return (*Amount)(new(big.Int).Set(v))
}

// Ether returns an Amount of n whole tokens.
func Ether(n int64) *Amount {
	return (*Amount)(new(big.Int).Mul(big.NewInt(n), umb.Ether))
}

// Big returns the amount as big.Int, zero for a nil amount.
func (a *Amount) Big() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(input []byte) error {
	text := strings.TrimSpace(string(input))
	scale := strings.HasSuffix(text, etherSuffix)
	text = strings.TrimSpace(strings.TrimSuffix(text, etherSuffix))

	v, ok := math.ParseBig256(text)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("invalid hex or decimal amount %q", input)
	}
	if scale {
		v.Mul(v, umb.Ether)
		if v.BitLen() > 256 {
			return fmt.Errorf("amount %q overflows 256 bits", input)
		}
	}
	*a = Amount(*v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a *Amount) MarshalText() ([]byte, error) {
	return (*big.Int)(a).MarshalText()
}
