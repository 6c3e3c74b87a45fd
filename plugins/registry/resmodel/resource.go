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

package resmodel

import (
	"fmt"
	"strings"
)

// idSeparator separates path segments of a resource ID.
const idSeparator = "/"

// ResourceID identifies a discrete resource by its path from the root
// of the resource tree, e.g. "/device1/port5/vlan100".
type ResourceID string

// Root is the ID of the root of the resource tree. The root always exists
// and is never allocated directly.
const Root ResourceID = ResourceID(idSeparator)

// NewResourceID builds a resource ID from path segments, starting at Root.
// An empty segment or a segment containing the path separator is invalid.
func NewResourceID(segments ...string) (ResourceID, error) {
	id := Root
	var err error
	for _, segment := range segments {
		id, err = id.Child(segment)
		if err != nil {
			return Root, err
		}
	}
	return id, nil
}

// Child returns the ID of a direct child of this resource.
func (id ResourceID) Child(segment string) (ResourceID, error) {
	if segment == "" || strings.Contains(segment, idSeparator) {
		return Root, fmt.Errorf("invalid resource ID segment: %q", segment)
	}
	if id == Root {
		return Root + ResourceID(segment), nil
	}
	return id + ResourceID(idSeparator) + ResourceID(segment), nil
}

// Parent returns the ID of the parent resource. The parent of Root is Root.
func (id ResourceID) Parent() ResourceID {
	idx := strings.LastIndex(string(id), idSeparator)
	if idx <= 0 {
		return Root
	}
	return id[:idx]
}

// IsRoot returns true for the root of the resource tree.
func (id ResourceID) IsRoot() bool {
	return id == Root
}

// IsAncestorOf returns true if <other> is located in the subtree below
// this ID. No ID is an ancestor of itself.
func (id ResourceID) IsAncestorOf(other ResourceID) bool {
	if id == Root {
		return other != Root
	}
	return strings.HasPrefix(string(other), string(id)+idSeparator)
}

// Segments returns the path segments of the ID, nil for Root.
func (id ResourceID) Segments() []string {
	if id == Root {
		return nil
	}
	return strings.Split(strings.TrimPrefix(string(id), idSeparator), idSeparator)
}

// String converts the ID into a human-readable form.
func (id ResourceID) String() string {
	return string(id)
}

// DiscreteResource is an indivisible allocatable unit of the resource tree.
// Two resources with an equal ID are the same resource.
type DiscreteResource struct {
	ID   ResourceID `json:"id"`
	Type string     `json:"type"`
}

// String converts the resource into a human-readable form.
func (r DiscreteResource) String() string {
	return fmt.Sprintf("%s (%s)", r.ID, r.Type)
}

// Consumer is an opaque identity of whoever holds a resource allocation
// (a flow, a tunnel, an application instance, ...). Compared by value.
type Consumer string

// String converts the consumer into a human-readable form.
func (c Consumer) String() string {
	return string(c)
}

// ResourceAllocation pairs an allocated resource with its consumer.
// It is reconstructed from the consumers map on each query, never stored.
type ResourceAllocation struct {
	Resource ResourceID `json:"resource"`
	Consumer Consumer   `json:"consumer"`
}

// String converts the allocation into a human-readable form.
func (a ResourceAllocation) String() string {
	return fmt.Sprintf("%s->%s", a.Resource, a.Consumer)
}
