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

package kvstore

import (
	"strings"
)

// NewPrefixed returns a view of the store which prepends the given prefix
// to all keys. Iterators of the view report keys relative to the prefix.
func NewPrefixed(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &prefixedStore{store: store, prefix: prefix}
}

type prefixedStore struct {
	store  Store
	prefix string
}

func (p *prefixedStore) GetValue(key string) (data []byte, found bool, revision int64, err error) {
	return p.store.GetValue(p.prefix + key)
}

func (p *prefixedStore) ListValues(prefix string) (KeyValIterator, error) {
	it, err := p.store.ListValues(p.prefix + prefix)
	if err != nil {
		return nil, err
	}
	return &prefixedIterator{it: it, prefix: p.prefix}, nil
}

func (p *prefixedStore) Put(key string, data []byte) error {
	return p.store.Put(p.prefix+key, data)
}

func (p *prefixedStore) PutIfNotExists(key string, data []byte) (succeeded bool, err error) {
	return p.store.PutIfNotExists(p.prefix+key, data)
}

func (p *prefixedStore) Delete(key string) (existed bool, err error) {
	return p.store.Delete(p.prefix + key)
}

func (p *prefixedStore) NewTxn() Txn {
	return &prefixedTxn{txn: p.store.NewTxn(), prefix: p.prefix}
}

func (p *prefixedStore) Close() error {
	return p.store.Close()
}

type prefixedTxn struct {
	txn    Txn
	prefix string
}

func (t *prefixedTxn) Get(key string) (data []byte, found bool, err error) {
	return t.txn.Get(t.prefix + key)
}

func (t *prefixedTxn) ListValues(prefix string) (KeyValIterator, error) {
	it, err := t.txn.ListValues(t.prefix + prefix)
	if err != nil {
		return nil, err
	}
	return &prefixedIterator{it: it, prefix: t.prefix}, nil
}

func (t *prefixedTxn) Put(key string, data []byte) {
	t.txn.Put(t.prefix+key, data)
}

func (t *prefixedTxn) Delete(key string) {
	t.txn.Delete(t.prefix + key)
}

func (t *prefixedTxn) Commit() error {
	return t.txn.Commit()
}

type prefixedIterator struct {
	it     KeyValIterator
	prefix string
}

func (i *prefixedIterator) GetNext() (kv KeyVal, stop bool) {
	next, stop := i.it.GetNext()
	if stop {
		return nil, true
	}
	return &prefixedKeyVal{kv: next, prefix: i.prefix}, false
}

func (i *prefixedIterator) Close() error {
	return i.it.Close()
}

type prefixedKeyVal struct {
	kv     KeyVal
	prefix string
}

func (kv *prefixedKeyVal) GetKey() string {
	return strings.TrimPrefix(kv.kv.GetKey(), kv.prefix)
}

func (kv *prefixedKeyVal) GetValue() []byte {
	return kv.kv.GetValue()
}

func (kv *prefixedKeyVal) GetRevision() int64 {
	return kv.kv.GetRevision()
}
