// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger is the persistent ledger service. It serializes executions, commits
// successful clauses and streams their events.
package ledger

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	pkgerrors "github.com/pkg/errors"

	"github.com/umbrella-network/umbledger/cache"
	"github.com/umbrella-network/umbledger/genesis"
	"github.com/umbrella-network/umbledger/kv"
	"github.com/umbrella-network/umbledger/metrics"
	"github.com/umbrella-network/umbledger/runtime"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

var logger = log.New("pkg", "ledger")

const (
	stateBucket = kv.Bucket("s")
	metaBucket  = kv.Bucket("m")
)

var (
	genesisHashKey   = []byte("genesis-hash")
	genesisConfigKey = []byte("genesis-config")
	headTimeKey      = []byte("head-time")
)

var (
	ErrTimeBackwards   = errors.New("ledger: time must not move backwards")
	ErrNotInitialized  = errors.New("ledger: not initialized")
	ErrGenesisMismatch = errors.New("ledger: genesis mismatch")
)

var (
	metricHeadTime = metrics.LazyLoadGauge("ledger_head_time")
	metricCommits  = metrics.LazyLoadCounter("ledger_commits_count")
)

// Options options for opening a ledger.
type Options struct {
	// CacheSize is the number of state entries kept in memory.
	CacheSize int
}

// Execution is a committed clause, as sent to subscribers.
type Execution struct {
	Time   uint64
	Caller umb.Address
	Clause *tx.Clause
	Events tx.Events
}

// Ledger executes clauses against the persisted state.
type Ledger struct {
	mu sync.Mutex

	db        kv.Store
	getter    *cache.Getter
	genesis   *genesis.Genesis
	headTime  uint64
	feed      event.Feed
	scope     event.SubscriptionScope
	closeOnce sync.Once

	// executions wait in queue, in commit order, for the dispatcher
	queueMu    sync.Mutex
	queue      []*Execution
	queued     chan struct{}
	quit       chan struct{}
	dispatched chan struct{}
}

// Open opens the ledger stored in db. An empty db is initialized with gene.
func Open(db kv.Store, gene *genesis.Genesis, opts Options) (*Ledger, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 4096
	}
	getter, err := cache.NewGetter(stateBucket.NewGetter(db), opts.CacheSize)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		db:      db,
		getter:  getter,
		genesis: gene,
	}

	meta := metaBucket.NewGetter(db)
	stored, err := meta.Get(genesisHashKey)
	if err != nil {
		if !meta.IsNotFound(err) {
			return nil, err
		}
		if err := l.initialize(); err != nil {
			return nil, pkgerrors.Wrap(err, "initialize")
		}
	} else {
		if umb.BytesToBytes32(stored) != gene.Hash() {
			return nil, ErrGenesisMismatch
		}
		data, err := meta.Get(headTimeKey)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "load head time")
		}
		l.headTime = binary.BigEndian.Uint64(data)
	}
	metricHeadTime().Set(int64(l.headTime))
	logger.Info("ledger opened", "genesis", gene.Hash(), "headTime", l.headTime)

	l.queued = make(chan struct{}, 1)
	l.quit = make(chan struct{})
	l.dispatched = make(chan struct{})
	go l.dispatch()
	return l, nil
}

// publish queues exec for subscribers without waiting for them.
func (l *Ledger) publish(exec *Execution) {
	l.queueMu.Lock()
	l.queue = append(l.queue, exec)
	l.queueMu.Unlock()

	select {
	case l.queued <- struct{}{}:
	default:
	}
}

// dispatch sends queued executions to the feed one at a time until Close.
func (l *Ledger) dispatch() {
	defer close(l.dispatched)
	for {
		select {
		case <-l.quit:
			return
		case <-l.queued:
		}
		for {
			l.queueMu.Lock()
			if len(l.queue) == 0 {
				l.queueMu.Unlock()
				break
			}
			exec := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.queueMu.Unlock()

			l.feed.Send(exec)
		}
	}
}

// LoadGenesis recreates the genesis the ledger in db was initialized with.
func LoadGenesis(db kv.Getter) (*genesis.Genesis, error) {
	meta := metaBucket.NewGetter(db)
	data, err := meta.Get(genesisConfigKey)
	if err != nil {
		if meta.IsNotFound(err) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	cfg, err := genesis.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return genesis.New(cfg)
}

func (l *Ledger) initialize() error {
	st := state.New(l.getter)
	if _, err := l.genesis.Build(st); err != nil {
		return err
	}
	cfg, err := l.genesis.Config().Marshal()
	if err != nil {
		return err
	}

	hash := l.genesis.Hash()
	l.headTime = l.genesis.LaunchTime()
	return l.commit(st.Stage(), func(meta kv.Putter) error {
		if err := meta.Put(genesisConfigKey, cfg); err != nil {
			return err
		}
		return meta.Put(genesisHashKey, hash[:])
	})
}

// commit writes stage and the head time in one batch.
func (l *Ledger) commit(stage *state.Stage, extra func(meta kv.Putter) error) error {
	batch := l.db.NewBatch()
	if stage != nil {
		if err := stage.Commit(stateBucket.NewPutter(batch)); err != nil {
			return err
		}
	}
	meta := metaBucket.NewPutter(batch)
	if err := meta.Put(headTimeKey, binary.BigEndian.AppendUint64(nil, l.headTime)); err != nil {
		return err
	}
	if extra != nil {
		if err := extra(meta); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	if stage != nil {
		for _, c := range stage.Changes() {
			l.getter.Update(c.Key, c.Value)
		}
	}
	metricCommits().Add(1)
	return nil
}

// Genesis returns the genesis of the ledger.
func (l *Ledger) Genesis() *genesis.Genesis { return l.genesis }

// Contracts returns the addresses of the contract suite.
func (l *Ledger) Contracts() genesis.Contracts { return l.genesis.Contracts() }

// State returns a view of the committed state. Changes made to it are never committed.
func (l *Ledger) State() *state.State { return state.New(l.getter) }

// HeadTime returns the current ledger time.
func (l *Ledger) HeadTime() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.headTime
}

// AdvanceTime moves the ledger time to t.
func (l *Ledger) AdvanceTime(t uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.advanceTime(t)
}

func (l *Ledger) advanceTime(t uint64) error {
	if t < l.headTime {
		return ErrTimeBackwards
	}
	if t == l.headTime {
		return nil
	}
	prev := l.headTime
	l.headTime = t
	if err := l.commit(nil, nil); err != nil {
		l.headTime = prev
		return pkgerrors.Wrap(err, "commit head time")
	}
	metricHeadTime().Set(int64(t))
	return nil
}

// Execute executes clause at time at, zero for the head time, and commits it unless
// reverted. The head moves to at only together with a committed clause.
func (l *Ledger) Execute(clause *tx.Clause, caller umb.Address, at uint64) (*tx.Output, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if at == 0 {
		at = l.headTime
	}
	if at < l.headTime {
		return nil, ErrTimeBackwards
	}

	st := state.New(l.getter)
	out, err := runtime.New(st, at).ExecuteClause(clause, caller)
	if err != nil {
		return nil, err
	}
	if out.Reverted {
		logger.Debug("clause reverted", "clause", clause.Hash(), "to", clause.To(), "caller", caller, "reason", out.RevertReason)
		return out, nil
	}

	prev := l.headTime
	l.headTime = at
	if err := l.commit(st.Stage(), nil); err != nil {
		l.headTime = prev
		return nil, pkgerrors.Wrap(err, "commit")
	}
	metricHeadTime().Set(int64(at))

	logger.Debug("clause committed", "clause", clause.Hash(), "to", clause.To(), "caller", caller, "events", len(out.Events))
	if len(out.Events) > 0 {
		l.publish(&Execution{Time: at, Caller: caller, Clause: clause, Events: out.Events})
	}
	return out, nil
}

// Call executes clause at time at, zero for the head time, and discards the changes.
func (l *Ledger) Call(clause *tx.Clause, caller umb.Address, at uint64) (*tx.Output, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if at == 0 {
		at = l.headTime
	}
	if at < l.headTime {
		return nil, ErrTimeBackwards
	}
	return runtime.New(state.New(l.getter), at).ExecuteClause(clause, caller)
}

// Subscribe delivers every committed execution carrying events to ch.
func (l *Ledger) Subscribe(ch chan *Execution) event.Subscription {
	return l.scope.Track(l.feed.Subscribe(ch))
}

// Close ends all subscriptions and stops the dispatcher. Executions not yet delivered
// are dropped.
func (l *Ledger) Close() {
	l.closeOnce.Do(func() {
		// unsubscribing first unblocks a dispatcher stuck in Send
		l.scope.Close()
		close(l.quit)
		<-l.dispatched
	})
}
