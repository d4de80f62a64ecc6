// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/umbrella-network/umbledger/kv"
	"github.com/umbrella-network/umbledger/umb"
)

// Change is a single staged write. A nil Value deletes the key.
type Change struct {
	Key   []byte
	Value []byte
}

// Stage abstracts a set of changes to be written into the store.
type Stage struct {
	changes []Change
}

func newStage(changes map[stateKey][]byte, order []stateKey) *Stage {
	s := &Stage{changes: make([]Change, 0, len(order))}
	for _, k := range order {
		v := changes[k]
		if len(v) == 0 {
			v = nil
		}
		s.changes = append(s.changes, Change{Key: k.dbKey(), Value: v})
	}
	sort.Slice(s.changes, func(i, j int) bool {
		return bytes.Compare(s.changes[i].Key, s.changes[j].Key) < 0
	})
	return s
}

// Len returns the number of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Changes returns staged changes sorted by key.
func (s *Stage) Changes() []Change {
	return s.changes
}

// Hash computes a digest of the change set.
func (s *Stage) Hash() umb.Bytes32 {
	return umb.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.Key)
			w.Write([]byte{byte(len(c.Value) >> 8), byte(len(c.Value))})
			w.Write(c.Value)
		}
	})
}

// Commit writes all changes through the putter.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, c := range s.changes {
		var err error
		if c.Value == nil {
			err = putter.Delete(c.Key)
		} else {
			err = putter.Put(c.Key, c.Value)
		}
		if err != nil {
			return &Error{err}
		}
	}
	return nil
}
