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

package kvdb

import (
	"github.com/contiv/resreg/pkg/kvstore"
	"github.com/contiv/resreg/pkg/kvstore/memkv"
)

// MockKVDB is a mock implementation of the kvdb plugin, serving a store
// without any plugin lifecycle. Several mock instances can share one store
// to imitate several agents attached to the same database.
type MockKVDB struct {
	store kvstore.Store
}

// NewMockKVDB is a constructor for MockKVDB. Backed by a fresh in-memory
// store when called without one.
func NewMockKVDB(store kvstore.Store) *MockKVDB {
	if store == nil {
		store = memkv.NewStore()
	}
	return &MockKVDB{store: store}
}

// Store returns the backing store.
func (m *MockKVDB) Store() kvstore.Store {
	return m.store
}
