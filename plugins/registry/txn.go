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
	"github.com/contiv/resreg/pkg/kvstore"
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

// TxnView is a view of the registry bound to a single transaction for its
// whole lifetime. Reads observe the transaction's own staged writes, all
// mutations stay invisible to other agents until the bound transaction is
// committed. The view never retries a conflicted commit on its own and
// must not be reused once the transaction was committed or abandoned.
type TxnView struct {
	queries

	txn     kvstore.Txn
	metrics *registryMetrics
}

// Allocate claims the resource for the consumer. Returns false when the
// resource is already allocated in this view. A concurrent allocation of
// the same resource is not detected here, it aborts the transaction at
// commit time instead. The caller is expected to allocate only resources
// registered under their parent, this is not verified.
func (v *TxnView) Allocate(resource resmodel.DiscreteResource, consumer resmodel.Consumer) (bool, error) {
	v.metrics.incAllocations()

	key := resmodel.ConsumerKey(resource.ID)
	_, found, err := v.txn.Get(key)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}
	encoded, err := encodeConsumer(consumer)
	if err != nil {
		return false, err
	}
	v.txn.Put(key, encoded)
	return true, nil
}

// Release frees the resource. Releasing a resource that is not allocated
// is harmless, the view stays committable.
func (v *TxnView) Release(resource resmodel.DiscreteResource) error {
	v.metrics.incReleases()

	key := resmodel.ConsumerKey(resource.ID)
	_, found, err := v.txn.Get(key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	v.txn.Delete(key)
	return nil
}

// RegisterChildren merges the given resources into the child set of the
// parent, creating the set if the parent was unknown. Already registered
// members keep their position, new members are appended in the given
// order, duplicates collapse into a single occurrence.
func (v *TxnView) RegisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error {
	key := resmodel.ChildrenKey(parent)
	data, found, err := v.txn.Get(key)
	if err != nil {
		return err
	}
	children := []resmodel.DiscreteResource{}
	if found {
		if children, err = decodeChildren(data); err != nil {
			return err
		}
	}

	members := make(map[resmodel.ResourceID]bool, len(children))
	for _, child := range children {
		members[child.ID] = true
	}
	added := false
	for _, resource := range resources {
		if members[resource.ID] {
			continue
		}
		members[resource.ID] = true
		children = append(children, resource)
		added = true
	}
	if found && !added {
		// all members were already registered
		return nil
	}

	encoded, err := encodeChildren(children)
	if err != nil {
		return err
	}
	v.txn.Put(key, encoded)
	return nil
}

// UnregisterChildren removes the given resources from the child set of the
// parent. Members not present are skipped. Allocations of the removed
// resources are left untouched, the caller releases them in the same
// transaction when tearing resources down for good.
func (v *TxnView) UnregisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error {
	key := resmodel.ChildrenKey(parent)
	data, found, err := v.txn.Get(key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	children, err := decodeChildren(data)
	if err != nil {
		return err
	}

	removed := make(map[resmodel.ResourceID]bool, len(resources))
	for _, resource := range resources {
		removed[resource.ID] = true
	}
	kept := make([]resmodel.DiscreteResource, 0, len(children))
	for _, child := range children {
		if removed[child.ID] {
			continue
		}
		kept = append(kept, child)
	}
	if len(kept) == len(children) {
		// none of the members was registered
		return nil
	}

	encoded, err := encodeChildren(kept)
	if err != nil {
		return err
	}
	v.txn.Put(key, encoded)
	return nil
}
