// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/umbrella-network/umbledger/builtin/reverts"
)

// Output is the result of a clause execution.
// A reverted output carries no events and its Data is the Error(string) encoding of the reason.
type Output struct {
	Data         []byte
	Events       Events
	Reverted     bool
	RevertReason string
	RevertKind   reverts.Kind
}
