// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/umb"
)

func TestInitAndTime(t *testing.T) {
	dir := t.TempDir()
	gene, err := genesis.New(genesis.DevConfig())
	require.NoError(t, err)

	var info ledgerInfo
	runJSON(t, &info, "init", "--data-dir", dir)
	assert.Equal(t, gene.Hash(), info.GenesisHash)
	assert.Equal(t, gene.LaunchTime(), info.HeadTime)
	assert.Equal(t, "2021-01-01T00:00:00Z", info.HeadTimeUTC)
	require.Len(t, info.Contracts, 6)
	assert.Equal(t, "multiSig", info.Contracts[0].Name)
	assert.Equal(t, "UmbMultiSig", info.Contracts[0].Kind)
	assert.Equal(t, gene.Contracts().UMB, info.Contracts[1].Address)

	runJSON(t, &info, "time", "--data-dir", dir, "--advance", "100")
	assert.Equal(t, gene.LaunchTime()+100, info.HeadTime)

	runJSON(t, &info, "time", "--data-dir", dir, "--set", "1700000000")
	assert.Equal(t, uint64(1700000000), info.HeadTime)

	// the time survives reopening and never moves backwards
	_, err = runApp(t, "time", "--data-dir", dir, "--set", "1600000000")
	assert.Error(t, err)
	runJSON(t, &info, "time", "--data-dir", dir)
	assert.Equal(t, uint64(1700000000), info.HeadTime)

	_, err = runApp(t, "time", "--data-dir", dir, "--set", "1", "--advance", "1")
	assert.Error(t, err)
}

func TestExecAndCall(t *testing.T) {
	dir := t.TempDir()
	accs := genesis.DevAccounts()
	from, to := accs[0].Address.String(), accs[4].Address.String()

	var res clauseResult
	runJSON(t, &res, "exec", "--data-dir", dir, "--caller", from, "umb", "transfer", to, "5 ether")
	assert.False(t, res.Reverted)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, true, res.Outputs[0].Value)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Transfer", res.Events[0].Name)
	require.Len(t, res.Events[0].Args, 3)
	assert.Equal(t, from, res.Events[0].Args[0].Value)
	assert.Equal(t, to, res.Events[0].Args[1].Value)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(5), umb.Ether).String(), res.Events[0].Args[2].Value)

	res = clauseResult{}
	runJSON(t, &res, "call", "--data-dir", dir, "umb", "balanceOf", to)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "5000000000000000000", res.Outputs[0].Value)
	assert.Equal(t, "uint256", res.Outputs[0].Type)

	res = clauseResult{}
	runJSON(t, &res, "call", "--data-dir", dir, "--caller", to, "umb", "transfer", from, "6 ether")
	assert.True(t, res.Reverted)
	assert.Equal(t, "ERC20: transfer amount exceeds balance", res.RevertReason)
	assert.Equal(t, "insufficient_funds", res.RevertKind)

	// a call commits nothing
	res = clauseResult{}
	runJSON(t, &res, "call", "--data-dir", dir, "--caller", to, "umb", "transfer", from, "1 ether")
	assert.False(t, res.Reverted)
	runJSON(t, &res, "call", "--data-dir", dir, "umb", "balanceOf", to)
	assert.Equal(t, "5000000000000000000", res.Outputs[0].Value)
}

func TestExecRawData(t *testing.T) {
	dir := t.TempDir()
	gene, err := genesis.New(genesis.DevConfig())
	require.NoError(t, err)

	var res clauseResult
	runJSON(t, &res, "call", "--data-dir", dir, "--data", "0x18160ddd", gene.Contracts().UMB.String())
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(150_000_012), umb.Ether).String(), res.Outputs[0].Value)
}

func TestExecErrors(t *testing.T) {
	dir := t.TempDir()
	accs := genesis.DevAccounts()
	caller := accs[0].Address.String()

	tests := []struct {
		name string
		args []string
	}{
		{"no caller", []string{"exec", "--data-dir", dir, "umb", "transfer", caller, "1"}},
		{"no contract", []string{"exec", "--data-dir", dir, "--caller", caller}},
		{"unknown contract", []string{"exec", "--data-dir", dir, "--caller", caller, "auction", "start"}},
		{"no method", []string{"exec", "--data-dir", dir, "--caller", caller, "umb"}},
		{"unknown method", []string{"exec", "--data-dir", dir, "--caller", caller, "umb", "steal"}},
		{"bad args", []string{"exec", "--data-dir", dir, "--caller", caller, "umb", "transfer", caller}},
		{"not a contract", []string{"call", "--data-dir", dir, caller, "balanceOf", caller}},
		{"data and method", []string{"call", "--data-dir", dir, "--data", "0x18160ddd", "umb", "totalSupply"}},
		{"time backwards", []string{"exec", "--data-dir", dir, "--caller", caller, "--time", "1", "umb", "totalSupply"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestLoadLedger(t *testing.T) {
	dir := t.TempDir()
	cfg, err := genesis.LoadConfig("testdata/genesis.yaml")
	require.NoError(t, err)
	gene, err := genesis.New(cfg)
	require.NoError(t, err)

	l, closeLedger, err := loadLedger(ledgerConfig{dataDir: dir, genesisPath: "testdata/genesis.yaml"})
	require.NoError(t, err)
	assert.Equal(t, gene.Hash(), l.Genesis().Hash())
	closeLedger()

	// the stored genesis is used when none is given
	l, closeLedger, err = loadLedger(ledgerConfig{dataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, gene.Hash(), l.Genesis().Hash())
	addr, contractABI, err := resolveContract(l, "rUmb")
	require.NoError(t, err)
	assert.Equal(t, gene.Contracts().RUMB, addr)
	require.NotNil(t, contractABI)
	_, found := contractABI.MethodByName("swapFor")
	assert.True(t, found)
	closeLedger()

	_, _, err = loadLedger(ledgerConfig{dataDir: t.TempDir(), genesisPath: "testdata/missing.yaml"})
	assert.Error(t, err)
}
