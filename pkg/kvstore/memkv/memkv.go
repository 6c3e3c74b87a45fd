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

// Package memkv provides an in-process implementation of the kvstore
// contract: a revision-counting map guarded by a mutex. It backs unit
// tests and the standalone (single node) mode of the agent.
package memkv

import (
	"sort"
	"strings"
	"sync"

	"github.com/contiv/resreg/pkg/kvstore"
)

type entry struct {
	data     []byte
	revision int64
}

// Store implements kvstore.Store on top of an in-process map.
type Store struct {
	mu       sync.RWMutex
	data     map[string]*entry
	revision int64
}

// NewStore returns a new empty in-memory store.
func NewStore() *Store {
	return &Store{data: map[string]*entry{}}
}

// GetValue reads the value and revision stored under the given key.
func (s *Store) GetValue(key string) (data []byte, found bool, revision int64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, found := s.data[key]
	if !found {
		return nil, false, 0, nil
	}
	return e.data, true, e.revision, nil
}

// ListValues iterates over a snapshot of all pairs under the given prefix,
// in ascending key order.
func (s *Store) ListValues(prefix string) (kvstore.KeyValIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pairs := make([]*keyVal, 0, len(keys))
	for _, key := range keys {
		e := s.data[key]
		pairs = append(pairs, &keyVal{key: key, data: e.data, revision: e.revision})
	}
	return &iterator{pairs: pairs}, nil
}

// Put writes the value under the given key.
func (s *Store) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	s.data[key] = &entry{data: copyBytes(data), revision: s.revision}
	return nil
}

// PutIfNotExists writes the value only if the key has no value yet.
func (s *Store) PutIfNotExists(key string, data []byte) (succeeded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.revision++
	s.data[key] = &entry{data: copyBytes(data), revision: s.revision}
	return true, nil
}

// Delete removes the key.
func (s *Store) Delete(key string) (existed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed = s.data[key]
	delete(s.data, key)
	return existed, nil
}

// NewTxn opens a new optimistic transaction.
func (s *Store) NewTxn() kvstore.Txn {
	return &txn{
		store:  s,
		reads:  map[string]readEntry{},
		writes: map[string]*stagedWrite{},
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

type readEntry struct {
	data     []byte
	found    bool
	revision int64
}

type stagedWrite struct {
	data []byte
	del  bool
}

type txn struct {
	store  *Store
	reads  map[string]readEntry
	writes map[string]*stagedWrite
	closed bool
}

// Get reads a key within the transaction. Staged writes of this
// transaction are visible, reads are repeatable.
func (t *txn) Get(key string) (data []byte, found bool, err error) {
	if write, staged := t.writes[key]; staged {
		if write.del {
			return nil, false, nil
		}
		return write.data, true, nil
	}
	if read, cached := t.reads[key]; cached {
		return read.data, read.found, nil
	}
	data, found, revision, err := t.store.GetValue(key)
	if err != nil {
		return nil, false, err
	}
	t.reads[key] = readEntry{data: data, found: found, revision: revision}
	return data, found, nil
}

// ListValues iterates over the pairs under the given prefix as seen by
// this transaction: staged writes overlay the stored state and every
// stored key found by the scan joins the read set.
func (t *txn) ListValues(prefix string) (kvstore.KeyValIterator, error) {
	it, err := t.store.ListValues(prefix)
	if err != nil {
		return nil, err
	}

	var pairs []*keyVal
	scanned := map[string]bool{}
	for {
		kv, stop := it.GetNext()
		if stop {
			break
		}
		key := kv.GetKey()
		scanned[key] = true
		if _, cached := t.reads[key]; !cached {
			t.reads[key] = readEntry{data: kv.GetValue(), found: true, revision: kv.GetRevision()}
		}
		if write, staged := t.writes[key]; staged {
			if write.del {
				continue
			}
			pairs = append(pairs, &keyVal{key: key, data: write.data})
			continue
		}
		pairs = append(pairs, &keyVal{key: key, data: kv.GetValue(), revision: kv.GetRevision()})
	}
	it.Close()

	for key, write := range t.writes {
		if write.del || scanned[key] || !strings.HasPrefix(key, prefix) {
			continue
		}
		pairs = append(pairs, &keyVal{key: key, data: write.data})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	return &iterator{pairs: pairs}, nil
}

// Put stages a write.
func (t *txn) Put(key string, data []byte) {
	t.writes[key] = &stagedWrite{data: copyBytes(data)}
}

// Delete stages a removal.
func (t *txn) Delete(key string) {
	t.writes[key] = &stagedWrite{del: true}
}

// Commit validates the read set and applies all staged writes atomically,
// all at the same new revision (as a replicated store would).
func (t *txn) Commit() error {
	if t.closed {
		return kvstore.ErrTxnClosed
	}
	t.closed = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, read := range t.reads {
		var current int64
		if e, exists := s.data[key]; exists {
			current = e.revision
		}
		if current != read.revision {
			return kvstore.ErrConflict
		}
	}

	if len(t.writes) == 0 {
		return nil
	}
	s.revision++
	for key, write := range t.writes {
		if write.del {
			delete(s.data, key)
			continue
		}
		s.data[key] = &entry{data: write.data, revision: s.revision}
	}
	return nil
}

type keyVal struct {
	key      string
	data     []byte
	revision int64
}

func (kv *keyVal) GetKey() string {
	return kv.key
}

func (kv *keyVal) GetValue() []byte {
	return kv.data
}

func (kv *keyVal) GetRevision() int64 {
	return kv.revision
}

type iterator struct {
	pairs []*keyVal
	index int
}

func (i *iterator) GetNext() (kv kvstore.KeyVal, stop bool) {
	if i.index >= len(i.pairs) {
		return nil, true
	}
	kv = i.pairs[i.index]
	i.index++
	return kv, false
}

func (i *iterator) Close() error {
	return nil
}

func copyBytes(data []byte) []byte {
	return append([]byte(nil), data...)
}
