// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/umb"
)

var errIndexOutOfRange = reverts.New(reverts.InvalidArgument, "array index out of range")

// Array is a dynamic array in storage: the length lives at pos, elements under a mapping from pos.
type Array[V any] struct {
	length *Uint64
	items  *Mapping[Uint64Key, V]
}

func NewArray[V any](context *Context, pos umb.Bytes32) *Array[V] {
	return &Array[V]{
		length: NewUint64(context, pos),
		items:  NewMapping[Uint64Key, V](context, umb.Blake2b(pos.Bytes(), []byte("items"))),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	return a.length.Get()
}

func (a *Array[V]) Get(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if i >= n {
		return value, errIndexOutOfRange
	}
	return a.items.Get(Uint64Key(i))
}

func (a *Array[V]) Set(i uint64, value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if i >= n {
		return errIndexOutOfRange
	}
	return a.items.Set(Uint64Key(i), value)
}

// Push appends value and returns its index.
func (a *Array[V]) Push(value V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.items.Set(Uint64Key(n), value); err != nil {
		return 0, err
	}
	a.length.Set(n + 1)
	return n, nil
}

// Pop removes the last element.
func (a *Array[V]) Pop() error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		return errIndexOutOfRange
	}
	a.items.Delete(Uint64Key(n - 1))
	a.length.Set(n - 1)
	return nil
}

// All returns every element in order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]V, 0, n)
	for i := range n {
		v, err := a.items.Get(Uint64Key(i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
