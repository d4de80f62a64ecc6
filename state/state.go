// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/umbrella-network/umbledger/kv"
	"github.com/umbrella-network/umbledger/stackedmap"
	"github.com/umbrella-network/umbledger/umb"
)

const (
	// StorageBucket is the kv bucket holding contract storage.
	StorageBucket = kv.Bucket("s")
	// CodeBucket is the kv bucket holding the contract kind of deployed addresses.
	CodeBucket = kv.Bucket("c")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type keyKind byte

const (
	storageKind keyKind = iota
	codeKind
)

type stateKey struct {
	kind keyKind
	addr umb.Address
	key  umb.Bytes32
}

func (k stateKey) dbKey() []byte {
	if k.kind == codeKind {
		return append([]byte(CodeBucket), k.addr[:]...)
	}
	b := make([]byte, 0, len(StorageBucket)+umb.AddressLength+32)
	b = append(b, StorageBucket...)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// State manages contract storage and deployed contracts on top of a kv source.
// All changes are kept in memory until staged and committed.
type State struct {
	src kv.Getter
	sm  *stackedmap.StackedMap[stateKey, []byte]
}

// New create state object.
func New(src kv.Getter) *State {
	s := &State{src: src}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key stateKey) ([]byte, bool, error) {
	val, err := s.src.Get(key.dbKey())
	if err != nil {
		if s.src.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr umb.Address, key umb.Bytes32) (umb.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return umb.Bytes32{}, err
	}
	if len(raw) == 0 {
		return umb.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return umb.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, represented by its hash
		return umb.Blake2b(raw), nil
	}
	return umb.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr umb.Address, key, value umb.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr umb.Address, key umb.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(stateKey{storageKind, addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw. Empty raw deletes the slot.
func (s *State) SetRawStorage(addr umb.Address, key umb.Bytes32, raw rlp.RawValue) {
	s.sm.Put(stateKey{storageKind, addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr umb.Address, key umb.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr umb.Address, key umb.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetCode returns the contract kind deployed at the given address, nil for plain accounts.
func (s *State) GetCode(addr umb.Address) ([]byte, error) {
	v, _, err := s.sm.Get(stateKey{kind: codeKind, addr: addr})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetCode set the contract kind for the given address.
func (s *State) SetCode(addr umb.Address, code []byte) {
	s.sm.Put(stateKey{kind: codeKind, addr: addr}, append([]byte(nil), code...))
}

// Exists returns whether a contract is deployed at the given address.
func (s *State) Exists(addr umb.Address) (bool, error) {
	code, err := s.GetCode(addr)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects all changes made so far, ready to be committed.
func (s *State) Stage() *Stage {
	changes := make(map[stateKey][]byte)
	var order []stateKey
	for _, entry := range s.sm.Journal() {
		if _, ok := changes[entry.Key]; !ok {
			order = append(order, entry.Key)
		}
		changes[entry.Key] = entry.Value
	}
	return newStage(changes, order)
}
