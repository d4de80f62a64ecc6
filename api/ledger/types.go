// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/umbrella-network/umbledger/umb"
)

// Status describes the ledger.
type Status struct {
	GenesisHash umb.Bytes32 `json:"genesisHash"`
	LaunchTime  uint64      `json:"launchTime"`
	HeadTime    uint64      `json:"headTime"`
}

// TimeRequest moves the head time either to Time, or forward by Advance seconds.
type TimeRequest struct {
	Time    uint64 `json:"time,omitempty"`
	Advance uint64 `json:"advance,omitempty"`
}
