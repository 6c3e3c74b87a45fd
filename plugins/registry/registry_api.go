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

// ReadAPI defines the query methods available both directly on the registry
// and inside a transactional view. Absence of a resource or a consumer is
// reported as an empty result, never as an error.
type ReadAPI interface {
	// GetResourceAllocations returns the allocation of the given resource.
	// The returned slice is empty when the resource is not allocated and
	// holds exactly one entry otherwise.
	GetResourceAllocations(id resmodel.ResourceID) ([]resmodel.ResourceAllocation, error)

	// GetChildResources returns the resources registered under the given
	// parent, in registration order. An unknown parent yields an empty
	// slice, indistinguishable from a registered parent with no children.
	GetChildResources(parent resmodel.ResourceID) ([]resmodel.DiscreteResource, error)

	// GetAllocatedResources returns the children of the given parent that
	// are of the given type and currently allocated to some consumer,
	// in registration order.
	GetAllocatedResources(parent resmodel.ResourceID, resourceType string) ([]resmodel.DiscreteResource, error)

	// GetResources returns the IDs of all resources allocated to the given
	// consumer. This is a reverse lookup implemented as a full scan of the
	// allocation key space, linear in the total number of allocations.
	GetResources(consumer resmodel.Consumer) ([]resmodel.ResourceID, error)

	// IsAvailable returns true if the given resource is not allocated to
	// any consumer. Registration of the resource is not verified, an
	// unregistered resource is reported as available.
	IsAvailable(resource resmodel.DiscreteResource) (bool, error)
}

// API defines methods provided by the Registry plugin for use by other
// plugins. All operations address the cluster-wide registry state shared
// through the backing key-value store.
type API interface {
	ReadAPI

	// NewTxn opens a new optimistic transaction against the backing store.
	// The transaction commits only if none of the data it has read was
	// meanwhile changed by another writer, otherwise Commit returns
	// kvstore.ErrConflict and nothing is written.
	NewTxn() kvstore.Txn

	// Transactional returns a view of the registry bound to the given
	// transaction. The view must not be used once the transaction was
	// committed.
	Transactional(txn kvstore.Txn) *TxnView

	// Allocate claims all the given resources for the consumer in one
	// transaction. Returns false without writing anything when any of the
	// resources is already allocated. A concurrent allocation of any of
	// the resources surfaces as kvstore.ErrConflict, the caller decides
	// whether to retry.
	Allocate(consumer resmodel.Consumer, resources ...resmodel.DiscreteResource) (bool, error)

	// Release frees all the given resources in one transaction. Resources
	// not currently allocated are skipped.
	Release(resources ...resmodel.DiscreteResource) error

	// RegisterChildren adds the given resources under the parent in one
	// transaction. Already registered members keep their position.
	RegisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error

	// UnregisterChildren removes the given resources from under the parent
	// in one transaction. Allocations of the removed resources are left
	// behind, compose Release with UnregisterChildren in one transaction
	// to tear a resource down cleanly.
	UnregisterChildren(parent resmodel.ResourceID, resources ...resmodel.DiscreteResource) error
}
