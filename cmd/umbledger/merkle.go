// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/umbrella-network/umbledger/merkle"
	"github.com/umbrella-network/umbledger/umb"
)

// merkleAddresses reads the tree addresses from the csv flag or the command args.
func merkleAddresses(ctx *cli.Context) ([]umb.Address, error) {
	if path := ctx.String(csvFlag.Name); path != "" {
		if ctx.NArg() > 0 {
			return nil, errors.Errorf("addresses are not allowed with -%s", csvFlag.Name)
		}
		list, err := loadAirdropFile(path)
		if err != nil {
			return nil, err
		}
		return list.Addresses(), nil
	}

	addrs := make([]umb.Address, 0, ctx.NArg())
	for _, arg := range ctx.Args() {
		addr, err := umb.ParseAddress(arg)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, *addr)
	}
	if len(addrs) == 0 {
		return nil, errors.New("no addresses")
	}
	return addrs, nil
}

type merkleResult struct {
	Root    umb.Bytes32  `json:"root"`
	Leaves  int          `json:"leaves"`
	Address *umb.Address `json:"address,omitempty"`
	Leaf    *umb.Bytes32 `json:"leaf,omitempty"`
	Proof   []string     `json:"proof,omitempty"`
}

func merkleRootAction(ctx *cli.Context) error {
	addrs, err := merkleAddresses(ctx)
	if err != nil {
		return err
	}
	tree := merkle.New(addrs)
	return printJSON(ctx.App.Writer, &merkleResult{Root: tree.Root(), Leaves: tree.Len()})
}

func merkleProofAction(ctx *cli.Context) error {
	target, err := umb.ParseAddress(ctx.String(addressFlag.Name))
	if err != nil {
		return errors.WithMessage(err, addressFlag.Name)
	}
	addrs, err := merkleAddresses(ctx)
	if err != nil {
		return err
	}
	tree := merkle.New(addrs)
	proof, err := tree.Proof(*target)
	if err != nil {
		return err
	}
	leaf := merkle.HashLeaf(*target)
	return printJSON(ctx.App.Writer, &merkleResult{
		Root:    tree.Root(),
		Leaves:  tree.Len(),
		Address: target,
		Leaf:    &leaf,
		Proof:   proof.Strings(),
	})
}

func merkleVerifyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one address")
	}
	addr, err := umb.ParseAddress(ctx.Args().First())
	if err != nil {
		return err
	}
	root, err := umb.ParseBytes32(ctx.String(rootFlag.Name))
	if err != nil {
		return errors.WithMessage(err, rootFlag.Name)
	}
	var proof merkle.Proof
	if s := strings.TrimSpace(ctx.String(proofFlag.Name)); s != "" {
		for _, item := range strings.Split(s, ",") {
			h, err := umb.ParseBytes32(strings.TrimSpace(item))
			if err != nil {
				return errors.WithMessage(err, proofFlag.Name)
			}
			proof = append(proof, h)
		}
	}

	valid := merkle.VerifyProof(proof, root, *addr)
	if err := printJSON(ctx.App.Writer, map[string]bool{"valid": valid}); err != nil {
		return err
	}
	if !valid {
		return errors.New("invalid proof")
	}
	return nil
}
