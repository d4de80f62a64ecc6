// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/api/utils"
	"github.com/umbrella-network/umbledger/ledger"
)

type Ledger struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Ledger {
	return &Ledger{ledger}
}

func (l *Ledger) status() *Status {
	return &Status{
		GenesisHash: l.ledger.Genesis().Hash(),
		LaunchTime:  l.ledger.Genesis().LaunchTime(),
		HeadTime:    l.ledger.HeadTime(),
	}
}

func (l *Ledger) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, l.status())
}

func (l *Ledger) handleSetTime(w http.ResponseWriter, req *http.Request) error {
	var body TimeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if (body.Time == 0) == (body.Advance == 0) {
		return utils.BadRequest(errors.New("body: exactly one of time and advance is required"))
	}

	target := body.Time
	if body.Advance != 0 {
		target = l.ledger.HeadTime() + body.Advance
	}
	if err := l.ledger.AdvanceTime(target); err != nil {
		if errors.Is(err, ledger.ErrTimeBackwards) {
			return utils.Conflict(errors.WithMessage(err, "time"))
		}
		return err
	}
	return utils.WriteJSON(w, l.status())
}

func (l *Ledger) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("ledger_get_status").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetStatus))
	sub.Path("/time").
		Methods(http.MethodPost).
		Name("ledger_set_time").
		HandlerFunc(utils.WrapHandlerFunc(l.handleSetTime))
}
