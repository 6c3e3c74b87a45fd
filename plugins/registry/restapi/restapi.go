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

package restapi

import (
	"github.com/contiv/resreg/plugins/registry/resmodel"
)

const (
	// RESTPrefix is versioned prefix for REST urls.
	RESTPrefix = "/resreg/v1/"

	// RestURLRegistryChildren is versioned URL for the child resource listing
	// REST endpoint.
	RestURLRegistryChildren = RESTPrefix + "registry/children"

	// RestURLRegistryAllocations is versioned URL for the allocation dump
	// REST endpoint.
	RestURLRegistryAllocations = RESTPrefix + "registry/allocations"

	// ParentArg is the query argument selecting the parent resource for the
	// child resource listing. The resource tree root is listed when omitted.
	ParentArg = "parent"
)

// ChildResources lists the resources registered under a parent.
type ChildResources struct {
	Parent   resmodel.ResourceID
	Children []resmodel.DiscreteResource
}

// ResourceAllocations lists resource allocations across the whole cluster.
type ResourceAllocations struct {
	Allocations []resmodel.ResourceAllocation
}
