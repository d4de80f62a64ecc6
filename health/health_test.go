// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/test/testledger"
)

func TestStatus(t *testing.T) {
	l := testledger.New(t, nil)
	h := New(l.Ledger)

	status := h.Status()
	assert.True(t, status.Healthy)
	assert.Empty(t, status.Error)
	assert.Equal(t, l.Genesis().Hash(), status.GenesisHash)
	assert.Equal(t, l.Now(), status.HeadTime)
	assert.Zero(t, status.Executions)
	assert.Nil(t, status.LastExecution)
}

func TestStartCountsExecutions(t *testing.T) {
	l := testledger.New(t, nil)
	h := New(l.Ledger)

	ctx, cancel := context.WithCancel(context.Background())
	wait := h.Start(ctx)

	accs := l.Accounts()
	l.MustExec(accs[0].Address, l.Contracts().UMB, builtin.UMB, "approve", accs[1].Address, big.NewInt(1))
	l.MustExec(accs[0].Address, l.Contracts().UMB, builtin.UMB, "approve", accs[2].Address, big.NewInt(1))

	assert.Eventually(t, func() bool { return h.Status().Executions == 2 }, 5*time.Second, 10*time.Millisecond)
	require.NotNil(t, h.Status().LastExecution)

	cancel()
	wait()
}

func TestStartStopsOnLedgerClose(t *testing.T) {
	l := testledger.New(t, nil)
	h := New(l.Ledger)

	wait := h.Start(context.Background())
	l.Close()

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("recorder still running after the ledger closed")
	}
}
