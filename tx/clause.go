// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/umbrella-network/umbledger/umb"
)

// Clause is a call of a contract: the target, the native value sent along and the ABI calldata.
// Clauses are immutable, the With methods return modified copies.
type Clause struct {
	to    umb.Address
	value *big.Int
	data  []byte
}

// clauseRLP is the encoded form of a clause.
type clauseRLP struct {
	To    umb.Address
	Value *big.Int
	Data  []byte
}

// NewClause creates a clause calling to with no value and no data.
func NewClause(to umb.Address) *Clause {
	return &Clause{to: to, value: new(big.Int)}
}

// WithValue returns a copy of the clause sending value.
func (c *Clause) WithValue(value *big.Int) *Clause {
	cpy := *c
	cpy.value = new(big.Int).Set(value)
	return &cpy
}

// WithData returns a copy of the clause with calldata data.
func (c *Clause) WithData(data []byte) *Clause {
	cpy := *c
	cpy.data = append([]byte(nil), data...)
	return &cpy
}

func (c *Clause) To() umb.Address {
	return c.to
}

func (c *Clause) Value() *big.Int {
	return new(big.Int).Set(c.value)
}

func (c *Clause) Data() []byte {
	return append([]byte(nil), c.data...)
}

// Selector returns the first four bytes of the calldata, which select the called method.
func (c *Clause) Selector() (sel [4]byte, ok bool) {
	if len(c.data) < len(sel) {
		return sel, false
	}
	copy(sel[:], c.data)
	return sel, true
}

// Hash identifies the clause by the blake2b hash of its RLP encoding.
func (c *Clause) Hash() umb.Bytes32 {
	return umb.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, c)
	})
}

// EncodeRLP implements rlp.Encoder.
func (c *Clause) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &clauseRLP{c.to, c.value, c.data})
}

// DecodeRLP implements rlp.Decoder.
func (c *Clause) DecodeRLP(s *rlp.Stream) error {
	var dec clauseRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	*c = Clause{dec.To, dec.Value, dec.Data}
	return nil
}

func (c *Clause) String() string {
	if sel, ok := c.Selector(); ok {
		return fmt.Sprintf("Clause(to: %v, value: %v, selector: 0x%x, data: %d bytes)", c.to, c.value, sel, len(c.data))
	}
	return fmt.Sprintf("Clause(to: %v, value: %v, data: 0x%x)", c.to, c.value, c.data)
}
