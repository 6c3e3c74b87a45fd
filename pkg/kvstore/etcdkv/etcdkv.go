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

// Package etcdkv implements the kvstore contract on top of an etcd
// cluster. Revisions map to etcd mod-revisions and optimistic
// transactions map to etcd transactions guarded by mod-revision
// comparisons, one per key of the read set.
package etcdkv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coreos/etcd/clientv3"
	"github.com/ligato/cn-infra/logging"

	"github.com/contiv/resreg/pkg/kvstore"
)

const (
	defaultDialTimeout = 1 * time.Second
	defaultOpTimeout   = 3 * time.Second
)

var defaultEndpoints = []string{"127.0.0.1:2379"}

// Config holds the etcd connection settings.
type Config struct {
	Endpoints   []string      `json:"endpoints"`
	DialTimeout time.Duration `json:"dial-timeout"`
	OpTimeout   time.Duration `json:"operation-timeout"`
}

// Store implements kvstore.Store against an etcd cluster.
type Store struct {
	log       logging.Logger
	client    *clientv3.Client
	opTimeout time.Duration
}

// NewStore connects to the etcd cluster described by the config.
func NewStore(config *Config, log logging.Logger) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	endpoints := config.Endpoints
	if len(endpoints) == 0 {
		endpoints = defaultEndpoints
	}
	dialTimeout := config.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = defaultDialTimeout
	}
	opTimeout := config.OpTimeout
	if opTimeout == 0 {
		opTimeout = defaultOpTimeout
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %v", err)
	}
	log.Infof("Connected to etcd (endpoints: %v)", endpoints)

	return &Store{
		log:       log,
		client:    client,
		opTimeout: opTimeout,
	}, nil
}

func (s *Store) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}

// GetValue reads the value stored under the given key together with its
// mod-revision.
func (s *Store) GetValue(key string) (data []byte, found bool, revision int64, err error) {
	ctx, cancel := s.opContext()
	defer cancel()

	resp, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, false, 0, err
	}
	if len(resp.Kvs) == 0 {
		return nil, false, 0, nil
	}
	kv := resp.Kvs[0]
	return kv.Value, true, kv.ModRevision, nil
}

// ListValues returns an iterator over all pairs under the given prefix,
// in ascending key order.
func (s *Store) ListValues(prefix string) (kvstore.KeyValIterator, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	resp, err := s.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	pairs := make([]*keyVal, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		pairs = append(pairs, &keyVal{
			key:      string(kv.Key),
			data:     kv.Value,
			revision: kv.ModRevision,
		})
	}
	return &iterator{pairs: pairs}, nil
}

// Put writes the value under the given key.
func (s *Store) Put(key string, data []byte) error {
	ctx, cancel := s.opContext()
	defer cancel()

	_, err := s.client.Put(ctx, key, string(data))
	return err
}

// PutIfNotExists atomically writes the value only if the key has not been
// created yet.
func (s *Store) PutIfNotExists(key string, data []byte) (succeeded bool, err error) {
	ctx, cancel := s.opContext()
	defer cancel()

	resp, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, string(data))).
		Commit()
	if err != nil {
		return false, err
	}
	return resp.Succeeded, nil
}

// Delete removes the key.
func (s *Store) Delete(key string) (existed bool, err error) {
	ctx, cancel := s.opContext()
	defer cancel()

	resp, err := s.client.Delete(ctx, key)
	if err != nil {
		return false, err
	}
	return resp.Deleted > 0, nil
}

// NewTxn opens a new optimistic transaction.
func (s *Store) NewTxn() kvstore.Txn {
	return &txn{
		store:  s,
		reads:  map[string]readEntry{},
		writes: map[string]*stagedWrite{},
	}
}

// Close closes the connection to etcd.
func (s *Store) Close() error {
	return s.client.Close()
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
	t.writes[key] = &stagedWrite{data: data}
}

// Delete stages a removal.
func (t *txn) Delete(key string) {
	t.writes[key] = &stagedWrite{del: true}
}

// Commit submits one etcd transaction which compares the mod-revision of
// every key of the read set (0 for keys read as absent) and applies all
// staged writes only if every comparison holds.
func (t *txn) Commit() error {
	if t.closed {
		return kvstore.ErrTxnClosed
	}
	t.closed = true

	cmps := make([]clientv3.Cmp, 0, len(t.reads))
	for key, read := range t.reads {
		cmps = append(cmps, clientv3.Compare(clientv3.ModRevision(key), "=", read.revision))
	}
	ops := make([]clientv3.Op, 0, len(t.writes))
	for key, write := range t.writes {
		if write.del {
			ops = append(ops, clientv3.OpDelete(key))
		} else {
			ops = append(ops, clientv3.OpPut(key, string(write.data)))
		}
	}

	ctx, cancel := t.store.opContext()
	defer cancel()

	resp, err := t.store.client.Txn(ctx).If(cmps...).Then(ops...).Commit()
	if err != nil {
		return err
	}
	if !resp.Succeeded {
		t.store.log.Debugf("etcd transaction aborted (%d keys read, %d writes staged)",
			len(t.reads), len(t.writes))
		return kvstore.ErrConflict
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
