// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/merkle"
	"github.com/umbrella-network/umbledger/test/datagen"
)

func TestMerkleCommands(t *testing.T) {
	addrs := datagen.RandAddresses(5)
	args := make([]string, 0, len(addrs))
	for _, a := range addrs {
		args = append(args, a.String())
	}
	tree := merkle.New(addrs)

	var root merkleResult
	runJSON(t, &root, append([]string{"merkle", "root"}, args...)...)
	assert.Equal(t, tree.Root(), root.Root)
	assert.Equal(t, 5, root.Leaves)

	var proof merkleResult
	runJSON(t, &proof, append([]string{"merkle", "proof", "--address", args[2]}, args...)...)
	want, err := tree.Proof(addrs[2])
	require.NoError(t, err)
	assert.Equal(t, want.Strings(), proof.Proof)
	assert.Equal(t, merkle.HashLeaf(addrs[2]), *proof.Leaf)

	out, err := runApp(t, "merkle", "verify", "--root", root.Root.String(), "--proof", strings.Join(proof.Proof, ","), args[2])
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)

	out, err = runApp(t, "merkle", "verify", "--root", root.Root.String(), "--proof", strings.Join(proof.Proof, ","), args[3])
	assert.Error(t, err)
	assert.Contains(t, out, `"valid": false`)

	_, err = runApp(t, "merkle", "proof", "--address", datagen.RandAddress().String(), args[0])
	assert.Error(t, err)
}

func TestMerkleFromCSV(t *testing.T) {
	list, err := loadAirdropFile("testdata/airdrop.csv")
	require.NoError(t, err)

	var root merkleResult
	runJSON(t, &root, "merkle", "root", "--csv", "testdata/airdrop.csv")
	assert.Equal(t, merkle.New(list.Addresses()).Root(), root.Root)
	assert.Equal(t, 7, root.Leaves)

	_, err = runApp(t, "merkle", "root", "--csv", "testdata/airdrop.csv", list.Entries[0].Address.String())
	assert.Error(t, err)
	_, err = runApp(t, "merkle", "root")
	assert.Error(t, err)
}
