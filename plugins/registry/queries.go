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
	"encoding/json"
	"fmt"

	"github.com/contiv/resreg/pkg/kvstore"
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

// storeReader is the read path shared by direct store access and
// transactions. A transaction additionally observes its own staged writes.
type storeReader interface {
	Get(key string) (data []byte, found bool, err error)
	ListValues(prefix string) (kvstore.KeyValIterator, error)
}

// directReader adapts the plain store read methods to the storeReader
// interface, dropping the revision which plain queries do not need.
type directReader struct {
	store kvstore.Store
}

func (r directReader) Get(key string) (data []byte, found bool, err error) {
	data, found, _, err = r.store.GetValue(key)
	return data, found, err
}

func (r directReader) ListValues(prefix string) (kvstore.KeyValIterator, error) {
	return r.store.ListValues(prefix)
}

// queries implements the registry read operations on top of a storeReader.
// It is embedded both by the plugin (reading the store directly) and by
// the transactional view (reading through the transaction).
type queries struct {
	reader storeReader
}

// GetResourceAllocations returns the allocation of the given resource.
// The returned slice is empty when the resource is not allocated and holds
// exactly one entry otherwise.
func (q *queries) GetResourceAllocations(id resmodel.ResourceID) ([]resmodel.ResourceAllocation, error) {
	data, found, err := q.reader.Get(resmodel.ConsumerKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return []resmodel.ResourceAllocation{}, nil
	}
	consumer, err := decodeConsumer(data)
	if err != nil {
		return nil, err
	}
	return []resmodel.ResourceAllocation{
		{Resource: id, Consumer: consumer},
	}, nil
}

// GetChildResources returns the resources registered under the given
// parent, in registration order. An unknown parent yields an empty slice.
func (q *queries) GetChildResources(parent resmodel.ResourceID) ([]resmodel.DiscreteResource, error) {
	data, found, err := q.reader.Get(resmodel.ChildrenKey(parent))
	if err != nil {
		return nil, err
	}
	if !found {
		return []resmodel.DiscreteResource{}, nil
	}
	return decodeChildren(data)
}

// GetAllocatedResources returns the children of the given parent that are
// of the given type and currently allocated, in registration order.
func (q *queries) GetAllocatedResources(parent resmodel.ResourceID, resourceType string) ([]resmodel.DiscreteResource, error) {
	children, err := q.GetChildResources(parent)
	if err != nil {
		return nil, err
	}
	allocated := []resmodel.DiscreteResource{}
	for _, child := range children {
		if child.Type != resourceType {
			continue
		}
		_, found, err := q.reader.Get(resmodel.ConsumerKey(child.ID))
		if err != nil {
			return nil, err
		}
		if found {
			allocated = append(allocated, child)
		}
	}
	return allocated, nil
}

// GetResources returns the IDs of all resources allocated to the given
// consumer. Full scan of the allocation key space, linear in the total
// number of allocations in the cluster.
func (q *queries) GetResources(consumer resmodel.Consumer) ([]resmodel.ResourceID, error) {
	it, err := q.reader.ListValues(resmodel.ConsumerKeyPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()

	resources := []resmodel.ResourceID{}
	for {
		kv, stop := it.GetNext()
		if stop {
			break
		}
		id, ok := resmodel.ParseConsumerKey(kv.GetKey())
		if !ok {
			continue
		}
		owner, err := decodeConsumer(kv.GetValue())
		if err != nil {
			return nil, err
		}
		if owner == consumer {
			resources = append(resources, id)
		}
	}
	return resources, nil
}

// allAllocations dumps the whole allocation key space, in key order.
// Full scan, intended for inspection endpoints.
func (q *queries) allAllocations() ([]resmodel.ResourceAllocation, error) {
	it, err := q.reader.ListValues(resmodel.ConsumerKeyPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()

	allocations := []resmodel.ResourceAllocation{}
	for {
		kv, stop := it.GetNext()
		if stop {
			break
		}
		id, ok := resmodel.ParseConsumerKey(kv.GetKey())
		if !ok {
			continue
		}
		consumer, err := decodeConsumer(kv.GetValue())
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, resmodel.ResourceAllocation{Resource: id, Consumer: consumer})
	}
	return allocations, nil
}

// IsAvailable returns true if the given resource is not allocated to any
// consumer. Registration of the resource is not verified.
func (q *queries) IsAvailable(resource resmodel.DiscreteResource) (bool, error) {
	allocations, err := q.GetResourceAllocations(resource.ID)
	if err != nil {
		return false, err
	}
	return len(allocations) == 0, nil
}

// encodeConsumer serializes a consumer into the value stored under the
// resource's allocation key.
func encodeConsumer(consumer resmodel.Consumer) ([]byte, error) {
	return json.Marshal(consumer)
}

func decodeConsumer(data []byte) (resmodel.Consumer, error) {
	var consumer resmodel.Consumer
	if err := json.Unmarshal(data, &consumer); err != nil {
		return "", fmt.Errorf("unable to decode consumer value: %v", err)
	}
	return consumer, nil
}

// encodeChildren serializes a child set. The serialized form is a JSON
// array keeping the registration order, an empty set is always stored as
// an empty array.
func encodeChildren(children []resmodel.DiscreteResource) ([]byte, error) {
	if children == nil {
		children = []resmodel.DiscreteResource{}
	}
	return json.Marshal(children)
}

func decodeChildren(data []byte) ([]resmodel.DiscreteResource, error) {
	children := []resmodel.DiscreteResource{}
	if err := json.Unmarshal(data, &children); err != nil {
		return nil, fmt.Errorf("unable to decode child resource set: %v", err)
	}
	return children, nil
}
