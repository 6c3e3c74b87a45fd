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
	"fmt"

	"github.com/ligato/cn-infra/infra"
	"github.com/ligato/cn-infra/servicelabel"
	"github.com/ligato/cn-infra/utils/safeclose"

	"github.com/contiv/resreg/pkg/kvstore"
	"github.com/contiv/resreg/pkg/kvstore/etcdkv"
	"github.com/contiv/resreg/pkg/kvstore/memkv"
)

const (
	// backendEtcd selects the etcd-backed store (the default).
	backendEtcd = "etcd"
	// backendMemory selects the in-process store, usable only for
	// a single-node deployment or testing.
	backendMemory = "memory"

	// DefaultSharedLabel is the microservice label under which all
	// registry agents share one key-space in the data-store.
	DefaultSharedLabel = "resreg"
)

// Config holds the KVDB plugin configuration.
type Config struct {
	Backend     string        `json:"backend"`
	SharedLabel string        `json:"shared-label"`
	Etcd        etcdkv.Config `json:"etcd"`
}

// KVDB plugin owns the connection to the key-value store backing the
// resource registry. All keys are namespaced by a microservice label
// shared across the cluster, so every agent addresses the same data.
type KVDB struct {
	Deps

	config *Config
	store  kvstore.Store
}

// Deps lists dependencies of the KVDB plugin.
type Deps struct {
	infra.PluginDeps
}

// Init loads the configuration and connects to the selected backend.
func (p *KVDB) Init() error {
	// load configuration from the file
	p.config = &Config{}
	if p.Cfg != nil {
		_, err := p.Cfg.LoadValue(p.config)
		if err != nil {
			return err
		}
	}
	if p.config.Backend == "" {
		p.config.Backend = backendEtcd
	}
	if p.config.SharedLabel == "" {
		p.config.SharedLabel = DefaultSharedLabel
	}

	var (
		store kvstore.Store
		err   error
	)
	switch p.config.Backend {
	case backendEtcd:
		store, err = etcdkv.NewStore(&p.config.Etcd, p.Log)
		if err != nil {
			return err
		}
	case backendMemory:
		store = memkv.NewStore()
		p.Log.Warn("Using the in-process key-value store, data will not survive a restart")
	default:
		return fmt.Errorf("unknown key-value store backend: %q", p.config.Backend)
	}

	prefix := servicelabel.GetDifferentAgentPrefix(p.config.SharedLabel)
	p.store = kvstore.NewPrefixed(store, prefix)
	p.Log.Infof("Key-value store ready (backend: %s, key prefix: %s)", p.config.Backend, prefix)

	return nil
}

// Close closes the connection to the store.
func (p *KVDB) Close() error {
	return safeclose.Close(p.store)
}

// Store returns the store namespaced by the shared microservice label.
func (p *KVDB) Store() kvstore.Store {
	return p.store
}
