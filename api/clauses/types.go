// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clauses

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

// ClauseRequest is a clause sent by caller, optionally at a later time.
type ClauseRequest struct {
	To     *umb.Address          `json:"to"`
	Value  *math.HexOrDecimal256 `json:"value,omitempty"`
	Data   hexutil.Bytes         `json:"data"`
	Caller *umb.Address          `json:"caller,omitempty"`
	Time   uint64                `json:"time,omitempty"`
}

func (r *ClauseRequest) clause() (*tx.Clause, error) {
	if r.To == nil {
		return nil, errors.New("to: missing")
	}
	clause := tx.NewClause(*r.To).WithData(r.Data)
	if r.Value != nil {
		clause = clause.WithValue((*big.Int)(r.Value))
	}
	return clause, nil
}

func (r *ClauseRequest) caller() umb.Address {
	if r.Caller == nil {
		return umb.Address{}
	}
	return *r.Caller
}

// Event is an event emitted during an execution.
type Event struct {
	Address umb.Address   `json:"address"`
	Topics  []umb.Bytes32 `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
}

// Output is the result of a clause.
type Output struct {
	Data         hexutil.Bytes `json:"data"`
	Events       []*Event      `json:"events"`
	Reverted     bool          `json:"reverted"`
	RevertReason string        `json:"revertReason,omitempty"`
	RevertKind   string        `json:"revertKind,omitempty"`
}

// ConvertEvents converts events into their JSON form.
func ConvertEvents(events tx.Events) []*Event {
	converted := make([]*Event, 0, len(events))
	for _, e := range events {
		converted = append(converted, &Event{
			Address: e.Address,
			Topics:  e.Topics,
			Data:    e.Data,
		})
	}
	return converted
}

func convertOutput(out *tx.Output) *Output {
	converted := &Output{
		Data:     out.Data,
		Events:   ConvertEvents(out.Events),
		Reverted: out.Reverted,
	}
	if out.Reverted {
		converted.RevertReason = out.RevertReason
		converted.RevertKind = out.RevertKind.String()
	}
	return converted
}
