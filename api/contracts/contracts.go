// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/api/utils"
	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/builtin/gen"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/umb"
)

// Contract is a deployed instance of a builtin contract.
type Contract struct {
	Name    string          `json:"name,omitempty"`
	Kind    string          `json:"kind"`
	Address umb.Address     `json:"address"`
	ABI     json.RawMessage `json:"abi,omitempty"`
}

type Contracts struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Contracts {
	return &Contracts{ledger}
}

func (c *Contracts) kindOf(addr umb.Address) (string, error) {
	code, err := c.ledger.State().GetCode(addr)
	if err != nil {
		return "", err
	}
	return string(code), nil
}

func (c *Contracts) handleGetContracts(w http.ResponseWriter, _ *http.Request) error {
	named := c.ledger.Contracts().List()
	list := make([]*Contract, 0, len(named))
	for _, n := range named {
		kind, err := c.kindOf(n.Address)
		if err != nil {
			return err
		}
		list = append(list, &Contract{Name: n.Name, Kind: kind, Address: n.Address})
	}
	return utils.WriteJSON(w, list)
}

func (c *Contracts) handleGetContract(w http.ResponseWriter, req *http.Request) error {
	addr, err := umb.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	kind, err := c.kindOf(*addr)
	if err != nil {
		return err
	}
	if _, ok := builtin.ABIByKind(kind); !ok {
		return utils.NotFound(errors.New("address: not a contract"))
	}
	return utils.WriteJSON(w, &Contract{Kind: kind, Address: *addr, ABI: gen.MustABI(kind)})
}

func (c *Contracts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("contracts_get_contracts").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetContracts))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("contracts_get_contract").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetContract))
}
