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
	"testing"

	. "github.com/onsi/gomega"

	"github.com/contiv/resreg/pkg/kvstore/memkv"
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

// TestTxnReadYourWrites verifies that a transactional view observes its own
// staged mutations while other readers do not see them until commit.
func TestTxnReadYourWrites(t *testing.T) {
	agent := setupRegistry(t, memkv.NewStore())

	port := resource(childID(resmodel.Root, "port1"), portType)
	Expect(agent.RegisterChildren(resmodel.Root, port)).To(BeNil())

	txn := agent.NewTxn()
	view := agent.Transactional(txn)

	ok, err := view.Allocate(port, consumerA)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())

	allocations, err := view.GetResourceAllocations(port.ID)
	Expect(err).To(BeNil())
	Expect(allocations).To(BeEquivalentTo([]resmodel.ResourceAllocation{
		{Resource: port.ID, Consumer: consumerA},
	}))
	available, err := view.IsAvailable(port)
	Expect(err).To(BeNil())
	Expect(available).To(BeFalse())

	// not committed yet, the direct reads still see the resource free
	available, err = agent.IsAvailable(port)
	Expect(err).To(BeNil())
	Expect(available).To(BeTrue())

	Expect(txn.Commit()).To(BeNil())

	available, err = agent.IsAvailable(port)
	Expect(err).To(BeNil())
	Expect(available).To(BeFalse())
}

// TestTxnStagedTree builds a resource subtree and allocates from it within
// a single transaction, all reads of the view must already see the staged
// state, including the scan-based reverse lookup.
func TestTxnStagedTree(t *testing.T) {
	agent := setupRegistry(t, memkv.NewStore())

	deviceID := childID(resmodel.Root, "device1")
	device := resource(deviceID, deviceType)
	port := resource(childID(deviceID, "port1"), portType)

	txn := agent.NewTxn()
	view := agent.Transactional(txn)

	Expect(view.RegisterChildren(resmodel.Root, device)).To(BeNil())
	Expect(view.RegisterChildren(deviceID, port)).To(BeNil())
	ok, err := view.Allocate(port, consumerA)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())

	children, err := view.GetChildResources(deviceID)
	Expect(err).To(BeNil())
	Expect(children).To(BeEquivalentTo([]resmodel.DiscreteResource{port}))

	allocated, err := view.GetAllocatedResources(deviceID, portType)
	Expect(err).To(BeNil())
	Expect(allocated).To(BeEquivalentTo([]resmodel.DiscreteResource{port}))

	resources, err := view.GetResources(consumerA)
	Expect(err).To(BeNil())
	Expect(resources).To(BeEquivalentTo([]resmodel.ResourceID{port.ID}))

	// the subtree does not exist outside of the transaction yet
	children, err = agent.GetChildResources(deviceID)
	Expect(err).To(BeNil())
	Expect(children).To(BeEmpty())

	Expect(txn.Commit()).To(BeNil())

	children, err = agent.GetChildResources(deviceID)
	Expect(err).To(BeNil())
	Expect(children).To(BeEquivalentTo([]resmodel.DiscreteResource{port}))
}

// TestTxnAllocateOccupied verifies that an allocation attempt fails right
// at staging when the resource is taken in the view, whether by an earlier
// staged claim or by an already committed one.
func TestTxnAllocateOccupied(t *testing.T) {
	agent := setupRegistry(t, memkv.NewStore())

	port1 := resource(childID(resmodel.Root, "port1"), portType)
	port2 := resource(childID(resmodel.Root, "port2"), portType)
	Expect(agent.RegisterChildren(resmodel.Root, port1, port2)).To(BeNil())
	ok, err := agent.Allocate(consumerB, port2)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())

	txn := agent.NewTxn()
	view := agent.Transactional(txn)

	// taken by a committed allocation
	ok, err = view.Allocate(port2, consumerA)
	Expect(err).To(BeNil())
	Expect(ok).To(BeFalse())

	// taken by this view's own staged allocation
	ok, err = view.Allocate(port1, consumerA)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())
	ok, err = view.Allocate(port1, consumerB)
	Expect(err).To(BeNil())
	Expect(ok).To(BeFalse())

	Expect(txn.Commit()).To(BeNil())

	allocations, err := agent.GetResourceAllocations(port1.ID)
	Expect(err).To(BeNil())
	Expect(allocations).To(BeEquivalentTo([]resmodel.ResourceAllocation{
		{Resource: port1.ID, Consumer: consumerA},
	}))
}

// TestTxnReleaseAbsent verifies that releasing a free resource stages
// nothing and keeps the transaction committable.
func TestTxnReleaseAbsent(t *testing.T) {
	agent := setupRegistry(t, memkv.NewStore())

	port := resource(childID(resmodel.Root, "port1"), portType)
	Expect(agent.RegisterChildren(resmodel.Root, port)).To(BeNil())

	txn := agent.NewTxn()
	view := agent.Transactional(txn)
	Expect(view.Release(port)).To(BeNil())
	Expect(txn.Commit()).To(BeNil())
}

// TestTxnAbandoned verifies that a view whose transaction is never
// committed leaves no trace in the registry.
func TestTxnAbandoned(t *testing.T) {
	agent := setupRegistry(t, memkv.NewStore())

	port := resource(childID(resmodel.Root, "port1"), portType)
	Expect(agent.RegisterChildren(resmodel.Root, port)).To(BeNil())

	view := agent.Transactional(agent.NewTxn())
	ok, err := view.Allocate(port, consumerA)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())
	Expect(view.RegisterChildren(resmodel.Root,
		resource(childID(resmodel.Root, "port2"), portType))).To(BeNil())

	// the transaction goes out of scope without a commit
	available, err := agent.IsAvailable(port)
	Expect(err).To(BeNil())
	Expect(available).To(BeTrue())
	children, err := agent.GetChildResources(resmodel.Root)
	Expect(err).To(BeNil())
	Expect(children).To(BeEquivalentTo([]resmodel.DiscreteResource{port}))
}
