// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/umbrella-network/umbledger/abi"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

type contractInfo struct {
	Name    string      `json:"name"`
	Kind    string      `json:"kind"`
	Address umb.Address `json:"address"`
}

type ledgerInfo struct {
	GenesisHash umb.Bytes32     `json:"genesisHash"`
	LaunchTime  uint64          `json:"launchTime"`
	HeadTime    uint64          `json:"headTime"`
	HeadTimeUTC string          `json:"headTimeUTC"`
	Contracts   []*contractInfo `json:"contracts,omitempty"`
}

func newLedgerInfo(l *ledger.Ledger, withContracts bool) (*ledgerInfo, error) {
	head := l.HeadTime()
	info := &ledgerInfo{
		GenesisHash: l.Genesis().Hash(),
		LaunchTime:  l.Genesis().LaunchTime(),
		HeadTime:    head,
		HeadTimeUTC: time.Unix(int64(head), 0).UTC().Format(time.RFC3339),
	}
	if withContracts {
		st := l.State()
		for _, c := range l.Contracts().List() {
			code, err := st.GetCode(c.Address)
			if err != nil {
				return nil, err
			}
			info.Contracts = append(info.Contracts, &contractInfo{c.Name, string(code), c.Address})
		}
	}
	return info, nil
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)
	l, closeLedger := openLedger(ctx)
	defer closeLedger()

	info, err := newLedgerInfo(l, true)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, info)
}

func timeAction(ctx *cli.Context) error {
	initLogger(ctx)
	l, closeLedger := openLedger(ctx)
	defer closeLedger()

	set, advance := ctx.IsSet(setTimeFlag.Name), ctx.IsSet(advanceTimeFlag.Name)
	switch {
	case set && advance:
		return errors.Errorf("-%s and -%s are exclusive", setTimeFlag.Name, advanceTimeFlag.Name)
	case set:
		if err := l.AdvanceTime(ctx.Uint64(setTimeFlag.Name)); err != nil {
			return err
		}
	case advance:
		if err := l.AdvanceTime(l.HeadTime() + ctx.Uint64(advanceTimeFlag.Name)); err != nil {
			return err
		}
	}

	info, err := newLedgerInfo(l, false)
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, info)
}

type eventResult struct {
	Address umb.Address   `json:"address"`
	Name    string        `json:"name,omitempty"`
	Args    []*namedValue `json:"args,omitempty"`
	Topics  []umb.Bytes32 `json:"topics,omitempty"`
	Data    hexutil.Bytes `json:"data,omitempty"`
}

type clauseResult struct {
	Reverted     bool           `json:"reverted"`
	RevertReason string         `json:"revertReason,omitempty"`
	RevertKind   string         `json:"revertKind,omitempty"`
	Data         hexutil.Bytes  `json:"data"`
	Outputs      []*namedValue  `json:"outputs,omitempty"`
	Events       []*eventResult `json:"events,omitempty"`
}

// newClauseResult decodes out with the ABI of method and those of the emitting contracts.
// Anything that fails to decode is left raw.
func newClauseResult(l *ledger.Ledger, method *abi.Method, out *tx.Output) *clauseResult {
	res := &clauseResult{
		Reverted: out.Reverted,
		Data:     out.Data,
	}
	if out.Reverted {
		res.RevertReason = out.RevertReason
		res.RevertKind = out.RevertKind.String()
		return res
	}
	if method != nil {
		if values, err := method.DecodeOutputValues(out.Data); err == nil {
			res.Outputs = formatArgs(method.Outputs(), values)
		}
	}
	for _, ev := range out.Events {
		res.Events = append(res.Events, decodeEvent(l, ev))
	}
	return res
}

func decodeEvent(l *ledger.Ledger, ev *tx.Event) *eventResult {
	res := &eventResult{Address: ev.Address, Topics: ev.Topics, Data: ev.Data}
	_, contractABI, err := resolveContract(l, ev.Address.String())
	if err != nil || contractABI == nil || len(ev.Topics) == 0 {
		return res
	}
	event, ok := contractABI.EventByID(ev.Topics[0])
	if !ok {
		return res
	}
	args, err := event.DecodeToMap(ev.Topics, ev.Data)
	if err != nil {
		return res
	}
	return &eventResult{Address: ev.Address, Name: event.Name(), Args: formatMap(event.Inputs(), args)}
}

// buildClause builds the clause of the exec and call commands, and returns the called method
// when it is known.
func buildClause(ctx *cli.Context, l *ledger.Ledger) (*tx.Clause, *abi.Method, error) {
	if ctx.NArg() < 1 {
		return nil, nil, errors.New("missing contract")
	}
	to, contractABI, err := resolveContract(l, ctx.Args().First())
	if err != nil {
		return nil, nil, err
	}

	var (
		data   []byte
		method *abi.Method
	)
	if raw := ctx.String(dataFlag.Name); raw != "" {
		if ctx.NArg() > 1 {
			return nil, nil, errors.Errorf("method and args are not allowed with -%s", dataFlag.Name)
		}
		if data, err = hexutil.Decode(raw); err != nil {
			return nil, nil, errors.WithMessage(err, "data")
		}
		if contractABI != nil {
			method, _ = contractABI.MethodByInput(data)
		}
	} else {
		if contractABI == nil {
			return nil, nil, errors.Errorf("%v is not a contract, use -%s", to, dataFlag.Name)
		}
		if ctx.NArg() < 2 {
			return nil, nil, errors.New("missing method")
		}
		var ok bool
		if method, ok = contractABI.MethodByName(ctx.Args().Get(1)); !ok {
			return nil, nil, errors.Errorf("method %q not found", ctx.Args().Get(1))
		}
		values, err := parseArgs(method.Inputs(), ctx.Args().Tail()[1:])
		if err != nil {
			return nil, nil, err
		}
		if data, err = method.EncodeInput(values...); err != nil {
			return nil, nil, err
		}
	}

	clause := tx.NewClause(to).WithData(data)
	if v := ctx.String(valueFlag.Name); v != "" {
		var value genesis.Amount
		if err := value.UnmarshalText([]byte(v)); err != nil {
			return nil, nil, errors.WithMessage(err, "value")
		}
		clause = clause.WithValue(value.Big())
	}
	return clause, method, nil
}

func runClause(ctx *cli.Context, commit bool) error {
	initLogger(ctx)
	l, closeLedger := openLedger(ctx)
	defer closeLedger()

	var caller umb.Address
	if s := ctx.String(callerFlag.Name); s != "" {
		addr, err := umb.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "caller")
		}
		caller = *addr
	} else if commit {
		return errors.Errorf("-%s is required", callerFlag.Name)
	}

	clause, method, err := buildClause(ctx, l)
	if err != nil {
		return err
	}

	var out *tx.Output
	if commit {
		out, err = l.Execute(clause, caller, ctx.Uint64(timeFlag.Name))
	} else {
		out, err = l.Call(clause, caller, ctx.Uint64(timeFlag.Name))
	}
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, newClauseResult(l, method, out))
}

func execAction(ctx *cli.Context) error {
	return runClause(ctx, true)
}

func callAction(ctx *cli.Context) error {
	return runClause(ctx, false)
}
