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

package registry

import (
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/ligato/cn-infra/infra"
	"github.com/ligato/cn-infra/rpc/rest"
	"github.com/ligato/cn-infra/servicelabel"

	prometheusplugin "github.com/ligato/cn-infra/rpc/prometheus"

	"github.com/contiv/resreg/pkg/kvstore"
	"github.com/contiv/resreg/plugins/kvdb"
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

const (
	// DefaultBootstrapMaxAttempts limits how many times the seeding of the
	// root child set is attempted before plugin initialization fails.
	// Shared by all components bootstrapping their state in the store.
	DefaultBootstrapMaxAttempts = 5

	// DefaultBootstrapRetryDelay is the pause between two seeding attempts.
	DefaultBootstrapRetryDelay = time.Second
)

// errors returned by the Registry plugin:
var (
	errMissingKVDB  = errors.New("missing mandatory KVDB dependency")
	errStoreNotInit = errors.New("the backing key-value store is not initialized")
)

// Registry implements cluster-wide tracking of discrete resource ownership
// on top of the shared key-value store. Every resource is either free or
// allocated to exactly one consumer, concurrent operations from any number
// of agents are serialized by optimistic transactions of the store.
type Registry struct {
	Deps
	queries

	config  *Config
	store   kvstore.Store
	metrics *registryMetrics
}

// Deps lists dependencies of the Registry plugin.
type Deps struct {
	infra.PluginDeps

	KVDB         kvdb.API
	ServiceLabel servicelabel.ReaderAPI
	HTTPHandlers rest.HTTPHandlers
	Prometheus   prometheusplugin.API
}

// Config holds the settings of the Registry plugin. The bootstrap
// parameters are shared by all agents of the cluster and should be
// configured to the same values everywhere.
type Config struct {
	BootstrapMaxAttempts int           `json:"bootstrap-max-attempts"`
	BootstrapRetryDelay  time.Duration `json:"bootstrap-retry-delay"`
}

func defaultConfig() *Config {
	return &Config{
		BootstrapMaxAttempts: DefaultBootstrapMaxAttempts,
		BootstrapRetryDelay:  DefaultBootstrapRetryDelay,
	}
}

// Init loads the configuration, seeds the resource tree root and exposes
// the inspection handlers. Failure to seed the root within the configured
// number of attempts is fatal.
func (p *Registry) Init() error {
	if p.KVDB == nil {
		return errMissingKVDB
	}

	// load configuration
	p.config = defaultConfig()
	if p.Cfg != nil {
		found, err := p.Cfg.LoadValue(p.config)
		if err != nil {
			return err
		}
		if found {
			p.Log.Debugf("Registry configuration loaded: %+v", p.config)
		}
	}

	p.store = p.KVDB.Store()
	if p.store == nil {
		return errStoreNotInit
	}
	p.queries = queries{reader: directReader{store: p.store}}

	if err := p.bootstrap(); err != nil {
		return err
	}

	if err := p.initMetrics(); err != nil {
		return err
	}
	p.registerRESTHandlers()

	return nil
}

// Close is NOOP, the store connection is owned by the KVDB plugin.
func (p *Registry) Close() error {
	return nil
}

// bootstrap seeds the child set of the resource tree root so that the tree
// is never without a root. The seed is a put-if-absent, restarting agents
// and racing peers leave an already seeded root untouched.
func (p *Registry) bootstrap() error {
	empty, err := encodeChildren(nil)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= p.config.BootstrapMaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(p.config.BootstrapRetryDelay)
		}
		created, err := p.store.PutIfNotExists(resmodel.ChildrenKey(resmodel.Root), empty)
		if err == nil {
			if created {
				p.Log.Info("Seeded the resource tree root")
			}
			return nil
		}
		lastErr = err
		p.Log.Warnf("Attempt %d/%d to seed the resource tree root failed: %v",
			attempt, p.config.BootstrapMaxAttempts, err)
	}
	return fmt.Errorf("unable to seed the resource tree root in %d attempts: %v",
		p.config.BootstrapMaxAttempts, lastErr)
}

// NewTxn opens a new optimistic transaction against the backing store.
func (p *Registry) NewTxn() kvstore.Txn {
	return p.metrics.instrument(p.store.NewTxn())
}

// Transactional returns a view of the registry bound to the given
// transaction.
func (p *Registry) Transactional(txn kvstore.Txn) *TxnView {
	return &TxnView{
		queries: queries{reader: txn},
		txn:     txn,
		metrics: p.metrics,
	}
}
