// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache keeps recently read state entries in memory.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/umbrella-network/umbledger/kv"
	"github.com/umbrella-network/umbledger/metrics"
)

var metricLookups = metrics.LazyLoadCounterVec("cache_lookups_count", []string{"result"})

// entry of a cached read. A missing key is cached as absent.
type entry struct {
	value   []byte
	present bool
}

// Getter is a read-through LRU cache in front of a kv.Getter.
// Writes behind its back must be reported via Update to keep it coherent.
type Getter struct {
	src       kv.Getter
	entries   *lru.Cache
	hit, miss atomic.Int64
}

var _ kv.Getter = (*Getter)(nil)

// NewGetter creates a cache of size entries over src.
func NewGetter(src kv.Getter, size int) (*Getter, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Getter{src: src, entries: entries}, nil
}

func (g *Getter) load(key []byte) (*entry, error) {
	if v, ok := g.entries.Get(string(key)); ok {
		g.hit.Add(1)
		metricLookups().AddWithLabel(1, map[string]string{"result": "hit"})
		return v.(*entry), nil
	}
	g.miss.Add(1)
	metricLookups().AddWithLabel(1, map[string]string{"result": "miss"})

	e := &entry{}
	val, err := g.src.Get(key)
	switch {
	case err == nil:
		e.value, e.present = val, true
	case !g.src.IsNotFound(err):
		return nil, err
	}
	g.entries.Add(string(key), e)
	return e, nil
}

func (g *Getter) Get(key []byte) ([]byte, error) {
	e, err := g.load(key)
	if err != nil {
		return nil, err
	}
	if !e.present {
		return nil, errNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (g *Getter) Has(key []byte) (bool, error) {
	e, err := g.load(key)
	if err != nil {
		return false, err
	}
	return e.present, nil
}

func (g *Getter) IsNotFound(err error) bool {
	return err == errNotFound || g.src.IsNotFound(err)
}

// Update records a committed write. A nil value marks key deleted.
func (g *Getter) Update(key, value []byte) {
	if value == nil {
		g.entries.Add(string(key), &entry{})
		return
	}
	g.entries.Add(string(key), &entry{value: append([]byte(nil), value...), present: true})
}

// Purge drops every cached entry.
func (g *Getter) Purge() {
	g.entries.Purge()
}

// Stats returns the number of cache hits and misses.
func (g *Getter) Stats() (hit, miss int64) {
	return g.hit.Load(), g.miss.Load()
}

type notFoundError struct{}

func (notFoundError) Error() string { return "cache: not found" }

var errNotFound error = notFoundError{}
