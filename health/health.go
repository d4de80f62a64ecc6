// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health reports whether a running ledger can still serve reads.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/umbrella-network/umbledger/ledger"
	"github.com/umbrella-network/umbledger/umb"
)

type Status struct {
	Healthy       bool        `json:"healthy"`
	GenesisHash   umb.Bytes32 `json:"genesisHash"`
	HeadTime      uint64      `json:"headTime"`
	Executions    uint64      `json:"executions"`
	LastExecution *time.Time  `json:"lastExecution"`
	Error         string      `json:"error,omitempty"`
}

// Health watches committed executions and probes the ledger storage on demand.
type Health struct {
	ledger *ledger.Ledger

	lock          sync.RWMutex
	executions    uint64
	lastExecution time.Time
}

func New(l *ledger.Ledger) *Health {
	return &Health{ledger: l}
}

// Start subscribes to the ledger and records executions in the background until ctx is
// done or the ledger closes. The returned func waits for the recorder to exit.
func (h *Health) Start(ctx context.Context) (wait func()) {
	ch := make(chan *ledger.Execution, 16)
	sub := h.ledger.Subscribe(ch)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.Err():
				return
			case <-ch:
				h.observe(time.Now())
			}
		}
	}()
	return func() { <-done }
}

func (h *Health) observe(at time.Time) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.executions++
	h.lastExecution = at
}

// Status is healthy when the token contract state can be read back.
func (h *Health) Status() *Status {
	status := &Status{
		GenesisHash: h.ledger.Genesis().Hash(),
		HeadTime:    h.ledger.HeadTime(),
	}

	h.lock.RLock()
	status.Executions = h.executions
	if !h.lastExecution.IsZero() {
		last := h.lastExecution
		status.LastExecution = &last
	}
	h.lock.RUnlock()

	exists, err := h.ledger.State().Exists(h.ledger.Contracts().UMB)
	switch {
	case err != nil:
		status.Error = err.Error()
	case !exists:
		status.Error = "token contract missing"
	default:
		status.Healthy = true
	}
	return status
}
