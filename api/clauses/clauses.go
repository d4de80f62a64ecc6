// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clauses

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/api/utils"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/tx"
)

type Clauses struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Clauses {
	return &Clauses{ledger}
}

func (c *Clauses) parse(req *http.Request) (*ClauseRequest, *tx.Clause, error) {
	var body ClauseRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	clause, err := body.clause()
	if err != nil {
		return nil, nil, utils.BadRequest(err)
	}
	return &body, clause, nil
}

func (c *Clauses) handleExecute(w http.ResponseWriter, req *http.Request) error {
	body, clause, err := c.parse(req)
	if err != nil {
		return err
	}
	if body.Caller == nil {
		return utils.BadRequest(errors.New("caller: missing"))
	}
	out, err := c.ledger.Execute(clause, *body.Caller, body.Time)
	if err != nil {
		return timeError(err)
	}
	return utils.WriteJSON(w, convertOutput(out))
}

func (c *Clauses) handleCall(w http.ResponseWriter, req *http.Request) error {
	body, clause, err := c.parse(req)
	if err != nil {
		return err
	}
	out, err := c.ledger.Call(clause, body.caller(), body.Time)
	if err != nil {
		return timeError(err)
	}
	return utils.WriteJSON(w, convertOutput(out))
}

func timeError(err error) error {
	if errors.Is(err, ledger.ErrTimeBackwards) {
		return utils.Conflict(errors.WithMessage(err, "time"))
	}
	return err
}

func (c *Clauses) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/execute").
		Methods(http.MethodPost).
		Name("clauses_execute").
		HandlerFunc(utils.WrapHandlerFunc(c.handleExecute))
	sub.Path("/call").
		Methods(http.MethodPost).
		Name("clauses_call").
		HandlerFunc(utils.WrapHandlerFunc(c.handleCall))
}
