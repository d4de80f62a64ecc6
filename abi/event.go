// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"errors"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/umbrella-network/umbledger/umb"
)

// Event see abi.Event in go-ethereum.
type Event struct {
	id                 umb.Bytes32
	event              *ethabi.Event
	argsWithoutIndexed ethabi.Arguments
	indexedArgs        ethabi.Arguments
}

func newEvent(event *ethabi.Event) *Event {
	var argsWithoutIndexed, indexedArgs ethabi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexedArgs = append(indexedArgs, arg)
		} else {
			argsWithoutIndexed = append(argsWithoutIndexed, arg)
		}
	}
	return &Event{
		umb.Bytes32(event.ID),
		event,
		argsWithoutIndexed,
		indexedArgs,
	}
}

// ID returns event id.
func (e *Event) ID() umb.Bytes32 {
	return e.id
}

// Name returns event name.
func (e *Event) Name() string {
	return e.event.Name
}

// Inputs returns all arguments, indexed ones included.
func (e *Event) Inputs() ethabi.Arguments {
	return e.event.Inputs
}

// Encode encodes args to data. Only non-indexed args are encoded.
func (e *Event) Encode(args ...any) ([]byte, error) {
	return e.argsWithoutIndexed.Pack(args...)
}

// Decode decodes event data into v. Only non-indexed args are decoded.
func (e *Event) Decode(data []byte, v any) error {
	values, err := e.argsWithoutIndexed.Unpack(data)
	if err != nil {
		return err
	}
	return e.argsWithoutIndexed.Copy(v, values)
}

// DecodeToMap decodes both topics and data into a map keyed by argument name.
// The first topic is expected to be the event id.
func (e *Event) DecodeToMap(topics []umb.Bytes32, data []byte) (map[string]any, error) {
	if len(topics) == 0 || topics[0] != e.id {
		return nil, errors.New("event id mismatch")
	}
	out := make(map[string]any)
	if len(e.argsWithoutIndexed) > 0 {
		if err := e.argsWithoutIndexed.UnpackIntoMap(out, data); err != nil {
			return nil, err
		}
	}
	hashes := make([]common.Hash, 0, len(topics)-1)
	for _, t := range topics[1:] {
		hashes = append(hashes, common.Hash(t))
	}
	if err := ethabi.ParseTopicsIntoMap(out, e.indexedArgs, hashes); err != nil {
		return nil, err
	}
	return out, nil
}
