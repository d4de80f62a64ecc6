// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/csv"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/merkle"
	"github.com/umbrella-network/umbledger/umb"
)

type airdropEntry struct {
	Address umb.Address
	Amount  *big.Int
}

type airdropList struct {
	Entries []airdropEntry
	Total   *big.Int
}

func (a *airdropList) Addresses() []umb.Address {
	addrs := make([]umb.Address, 0, len(a.Entries))
	for _, e := range a.Entries {
		addrs = append(addrs, e.Address)
	}
	return addrs
}

// parseCSVAmount parses an amount that may carry thousands separators.
func parseCSVAmount(s string) (*big.Int, error) {
	var amount genesis.Amount
	if err := amount.UnmarshalText([]byte(strings.ReplaceAll(s, ",", ""))); err != nil {
		return nil, err
	}
	return amount.Big(), nil
}

// loadAirdropCSV reads address,amount rows. A leading header row is skipped. Addresses must be
// in checksum form and listed once. An optional last row labelled total must equal the sum of
// the amounts.
func loadAirdropCSV(r io.Reader) (*airdropList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		list     = &airdropList{Total: new(big.Int)}
		declared *big.Int
		seen     = make(map[umb.Address]int)
	)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		first := strings.TrimSpace(record[0])
		if len(record) == 1 && first == "" {
			continue
		}
		if len(record) < 2 {
			return nil, errors.Errorf("row %d: expected address,amount", row)
		}
		if declared != nil {
			return nil, errors.Errorf("row %d: rows after the total", row)
		}

		if strings.EqualFold(first, "total") {
			if declared, err = parseCSVAmount(record[1]); err != nil {
				return nil, errors.WithMessagef(err, "row %d", row)
			}
			continue
		}
		if row == 1 && !strings.HasPrefix(first, "0x") {
			continue
		}

		if !umb.IsChecksumAddress(first) {
			return nil, errors.Errorf("row %d: malformed address %q", row, first)
		}
		addr := umb.MustParseAddress(first)
		if prev, dup := seen[addr]; dup {
			return nil, errors.Errorf("row %d: duplicated address %v, first listed in row %d", row, addr, prev)
		}
		seen[addr] = row

		amount, err := parseCSVAmount(record[1])
		if err != nil {
			return nil, errors.WithMessagef(err, "row %d", row)
		}
		list.Entries = append(list.Entries, airdropEntry{addr, amount})
		list.Total.Add(list.Total, amount)
	}

	if declared != nil && declared.Cmp(list.Total) != 0 {
		return nil, errors.Errorf("total %v does not match the sum of amounts %v", declared, list.Total)
	}
	return list, nil
}

func loadAirdropFile(path string) (*airdropList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := loadAirdropCSV(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return list, nil
}

type airdropSummary struct {
	Count int         `json:"count"`
	Total string      `json:"total"`
	Root  umb.Bytes32 `json:"merkleRoot"`
}

func airdropCheckAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one csv file")
	}
	list, err := loadAirdropFile(ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, &airdropSummary{
		Count: len(list.Entries),
		Total: list.Total.String(),
		Root:  merkle.New(list.Addresses()).Root(),
	})
}
