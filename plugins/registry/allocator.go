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
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

// Allocate claims all the given resources for the consumer in one
// transaction, all or nothing. Returns false without writing anything when
// any of the resources is already allocated. A concurrent claim of any of
// the resources aborts the transaction with kvstore.ErrConflict, retrying
// is left to the caller.
func (p *Registry) Allocate(consumer resmodel.Consumer, resources ...resmodel.DiscreteResource) (bool, error) {
	txn := p.NewTxn()
	view := p.Transactional(txn)

	for _, resource := range resources {
		ok, err := view.Allocate(resource, consumer)
		if err != nil {
			return false, err
		}
		if !ok {
			p.Log.Debugf("Resource %s is already allocated, abandoning the allocation for %s",
				resource.ID, consumer)
			return false, nil
		}
	}
	if err := txn.Commit(); err != nil {
		return false, err
	}
	p.Log.Debugf("Allocated %d resource(s) for consumer %s", len(resources), consumer)
	return true, nil
}

// Release frees all the given resources in one transaction. Resources not
// currently allocated are skipped.
func (p *Registry) Release(resources ...resmodel.DiscreteResource) error {
	txn := p.NewTxn()
	view := p.Transactional(txn)

	for _, resource := range resources {
		if err := view.Release(resource); err != nil {
			return err
		}
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	p.Log.Debugf("Released %d resource(s)", len(resources))
	return nil
}

// RegisterChildren adds the given resources under the parent in one
// transaction.
func (p *Registry) RegisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error {
	txn := p.NewTxn()
	view := p.Transactional(txn)

	if err := view.RegisterChildren(parent, resources...); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	p.Log.Debugf("Registered %d resource(s) under %s", len(resources), parent)
	return nil
}

// UnregisterChildren removes the given resources from under the parent in
// one transaction. Allocations of the removed resources are left behind,
// release them in the same transaction via the transactional view when
// tearing resources down for good.
func (p *Registry) UnregisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error {
	txn := p.NewTxn()
	view := p.Transactional(txn)

	if err := view.UnregisterChildren(parent, resources...); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	p.Log.Debugf("Unregistered %d resource(s) from under %s", len(resources), parent)
	return nil
}
