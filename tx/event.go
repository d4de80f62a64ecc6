// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/umbrella-network/umbledger/umb"
)

// Event represents a contract event log.
type Event struct {
	// address of the contract that emitted the event
	Address umb.Address
	// the first topic is the event id
	Topics []umb.Bytes32
	Data   []byte
}

// Events slice of event logs.
type Events []*Event

// Filter returns events emitted by addr with the given event id.
func (es Events) Filter(addr umb.Address, id umb.Bytes32) Events {
	var out Events
	for _, e := range es {
		if e.Address == addr && len(e.Topics) > 0 && e.Topics[0] == id {
			out = append(out, e)
		}
	}
	return out
}
