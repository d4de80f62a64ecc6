// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/umbrella-network/umbledger/api/clauses"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/umb"
)

// ExecutionMessage is pushed to subscribers for every committed clause that emitted matching events.
type ExecutionMessage struct {
	Time   uint64           `json:"time"`
	Caller umb.Address      `json:"caller"`
	To     umb.Address      `json:"to"`
	Events []*clauses.Event `json:"events"`
}

// EventFilter selects events by emitter and first topic. Zero fields match anything.
type EventFilter struct {
	Address *umb.Address
	Topic0  *umb.Bytes32
}

func (f *EventFilter) match(exec *ledger.Execution) *ExecutionMessage {
	msg := &ExecutionMessage{
		Time:   exec.Time,
		Caller: exec.Caller,
		To:     exec.Clause.To(),
	}
	for _, e := range clauses.ConvertEvents(exec.Events) {
		if f.Address != nil && e.Address != *f.Address {
			continue
		}
		if f.Topic0 != nil && (len(e.Topics) == 0 || e.Topics[0] != *f.Topic0) {
			continue
		}
		msg.Events = append(msg.Events, e)
	}
	if len(msg.Events) == 0 {
		return nil
	}
	return msg
}
