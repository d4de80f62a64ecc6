// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb backs kv.Store with goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/umbrella-network/umbledger/kv"
)

const minCapacity = 16

var _ kv.Store = (*LevelDB)(nil)

// Options sizes the database. CacheSize is in MiB; half goes to the block cache and a
// quarter to the write buffer.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheSize, minCapacity)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minCapacity),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
}

// LevelDB owns both the database and its storage; Close releases the directory lock.
type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	return open(stg, opts)
}

// NewMem opens a database that lives in memory, for tests and dry runs.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db, stg}, nil
}

// IsNotFound reports whether err, possibly wrapped, is the missing key error.
func IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *LevelDB) IsNotFound(err error) bool      { return IsNotFound(err) }
func (l *LevelDB) Get(key []byte) ([]byte, error) { return l.db.Get(key, nil) }
func (l *LevelDB) Has(key []byte) (bool, error)   { return l.db.Has(key, nil) }
func (l *LevelDB) Put(key, value []byte) error    { return l.db.Put(key, value, nil) }
func (l *LevelDB) Delete(key []byte) error        { return l.db.Delete(key, nil) }
func (l *LevelDB) NewBatch() kv.Batch             { return &batch{l.db, new(leveldb.Batch)} }

// Close closes the database, then its storage.
func (l *LevelDB) Close() error {
	err := l.db.Close()
	if serr := l.stg.Close(); err == nil {
		err = serr
	}
	return err
}

// batch commits with fsync, as each commit is a ledger head change.
type batch struct {
	db  *leveldb.DB
	ops *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.ops.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops.Delete(key)
	return nil
}

func (b *batch) Len() int     { return b.ops.Len() }
func (b *batch) Write() error { return b.db.Write(b.ops, &opt.WriteOptions{Sync: true}) }
