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
	"strings"
)

// Keyword defines the keyword identifying discrete-resource registry data.
const Keyword = "resource-registry"

// rootKeySegment stands in for the empty path of the root resource ID.
const rootKeySegment = "root"

// KeyPrefix returns the prefix under which all registry data is persisted.
func KeyPrefix() string {
	return Keyword + "/"
}

// ConsumerKeyPrefix returns the prefix of the consumers map, holding one
// entry per currently allocated resource.
func ConsumerKeyPrefix() string {
	return KeyPrefix() + "consumers/"
}

// ChildrenKeyPrefix returns the prefix of the children map, holding the set
// of registered child resources per parent node.
func ChildrenKeyPrefix() string {
	return KeyPrefix() + "children/"
}

// ConsumerKey returns the key under which the consumer of the given
// resource is stored.
func ConsumerKey(id ResourceID) string {
	return ConsumerKeyPrefix() + idToKeyPath(id)
}

// ChildrenKey returns the key under which the child set of the given
// resource is stored.
func ChildrenKey(id ResourceID) string {
	return ChildrenKeyPrefix() + idToKeyPath(id)
}

// ParseConsumerKey parses the resource ID from a consumers map key.
// Returns false if the key does not belong to the consumers map.
func ParseConsumerKey(key string) (ResourceID, bool) {
	if !strings.HasPrefix(key, ConsumerKeyPrefix()) {
		return Root, false
	}
	return idFromKeyPath(strings.TrimPrefix(key, ConsumerKeyPrefix()))
}

// ParseChildrenKey parses the resource ID from a children map key.
// Returns false if the key does not belong to the children map.
func ParseChildrenKey(key string) (ResourceID, bool) {
	if !strings.HasPrefix(key, ChildrenKeyPrefix()) {
		return Root, false
	}
	return idFromKeyPath(strings.TrimPrefix(key, ChildrenKeyPrefix()))
}

func idToKeyPath(id ResourceID) string {
	if id == Root {
		return rootKeySegment
	}
	return rootKeySegment + string(id)
}

func idFromKeyPath(path string) (ResourceID, bool) {
	if path == rootKeySegment {
		return Root, true
	}
	if strings.HasPrefix(path, rootKeySegment+idSeparator) {
		return ResourceID(strings.TrimPrefix(path, rootKeySegment)), true
	}
	return Root, false
}
