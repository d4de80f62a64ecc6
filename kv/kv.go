// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value contracts the ledger persists through.
package kv

// Getter reads keys. A missing key is reported as an error that IsNotFound recognizes.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch buffers puts and deletes until Write applies them atomically.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store is what the ledger needs from a database: reads, writes and atomic batches.
type Store interface {
	Getter
	Putter
	NewBatch() Batch
}
