// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/umbrella-network/umbledger/umb"
)

type Key interface {
	Bytes() []byte
}

// Uint64Key keys mappings by integer id.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}

// PairKey keys nested address mappings, e.g. allowances or confirmations.
type PairKey struct {
	A, B umb.Address
}

func (k PairKey) Bytes() []byte {
	return append(append(make([]byte, 0, 2*umb.AddressLength), k.A[:]...), k.B[:]...)
}

// IDAddressKey keys mappings by (id, address).
type IDAddressKey struct {
	ID   uint64
	Addr umb.Address
}

func (k IDAddressKey) Bytes() []byte {
	return append(Uint64Key(k.ID).Bytes(), k.Addr[:]...)
}

// Mapping is a key/value storage abstraction for native contracts, similar to the mapping in Solidity.
// Values are RLP encoded; a missing key decodes into the zero value of V.
type Mapping[K Key, V any] struct {
	context *Context
	basePos umb.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos umb.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) umb.Bytes32 {
	return umb.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the value of key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
