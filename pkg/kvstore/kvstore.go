// Copyright (c) 2019 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kvstore defines the contract of the transactional key-value store
// backing the discrete-resource registry: versioned reads, atomic
// single-key writes and multi-key transactions with optimistic conflict
// detection based on per-key revisions.
package kvstore

import (
	"fmt"
)

var (
	// ErrConflict is returned by Txn.Commit when another transaction
	// modified one of the keys read by this transaction after it was read.
	// The transaction had no effect and it is up to the caller to decide
	// whether to retry the whole operation or give up.
	ErrConflict = fmt.Errorf("optimistic transaction aborted due to a concurrent conflicting write")

	// ErrTxnClosed is returned when a transaction is committed more
	// than once. Transactions are single-use.
	ErrTxnClosed = fmt.Errorf("transaction is already closed")
)

// KeyVal is a single key-value pair returned by iteration.
type KeyVal interface {
	// GetKey returns the key of the pair.
	GetKey() string
	// GetValue returns the value of the pair.
	GetValue() []byte
	// GetRevision returns the revision at which the value was last written.
	GetRevision() int64
}

// KeyValIterator iterates over key-value pairs of a prefix listing.
type KeyValIterator interface {
	// GetNext returns the next key-value pair, or stop=true when
	// the iteration is finished.
	GetNext() (kv KeyVal, stop bool)
	// Close closes the iterator and releases resources tied to it.
	Close() error
}

// Store provides access to a linearizable versioned key-value store.
// Every call may block for the duration of a cluster round trip.
type Store interface {
	// GetValue reads the value stored under the given key, together with
	// the revision at which it was written. A missing key is not an error,
	// it is reported with found=false and revision 0.
	GetValue(key string) (data []byte, found bool, revision int64, err error)

	// ListValues returns an iterator over all key-value pairs under the
	// given key prefix, in ascending key order.
	ListValues(prefix string) (KeyValIterator, error)

	// Put writes the value under the given key, overwriting any
	// previous value.
	Put(key string, data []byte) error

	// PutIfNotExists atomically writes the value under the given key only
	// if the key has no value yet.
	PutIfNotExists(key string, data []byte) (succeeded bool, err error)

	// Delete removes the key. Removing an absent key is not an error,
	// it is reported with existed=false.
	Delete(key string) (existed bool, err error)

	// NewTxn opens a new optimistic transaction against the store.
	NewTxn() Txn

	// Close closes the connection to the store and releases all
	// allocated resources.
	Close() error
}

// Txn is one optimistic multi-key transaction. Reads record the revision
// of each key into the transaction's read set and observe the
// transaction's own staged writes. Commit applies all staged writes
// atomically if and only if every key in the read set is still at its
// recorded revision (absent keys are recorded at revision 0), otherwise
// nothing is written and ErrConflict is returned. An abandoned
// transaction (never committed) has no effect on the stored state.
// A transaction must not be used from multiple goroutines and must not
// be reused after Commit.
type Txn interface {
	// Get reads a key within the transaction.
	Get(key string) (data []byte, found bool, err error)
	// ListValues iterates over the pairs under the given prefix as seen
	// by this transaction: the staged writes overlay the stored state
	// (staged pairs report revision 0) and every stored key returned by
	// the scan joins the read set. Keys created under the prefix by
	// others after the scan are not detected at commit.
	ListValues(prefix string) (KeyValIterator, error)
	// Put stages a write of the given value under the given key.
	Put(key string, data []byte)
	// Delete stages a removal of the given key.
	Delete(key string)
	// Commit validates the read set and applies all staged writes
	// atomically. Returns ErrConflict if the validation fails.
	Commit() error
}
