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
	"net/http"

	"github.com/unrolled/render"

	"github.com/contiv/resreg/plugins/registry/resmodel"
	"github.com/contiv/resreg/plugins/registry/restapi"
)

func (p *Registry) registerRESTHandlers() {
	if p.HTTPHandlers == nil {
		p.Log.Warnf("No http handler provided, skipping registration of resource registry REST handlers")
		return
	}

	p.HTTPHandlers.RegisterHTTPHandler(restapi.RestURLRegistryChildren, p.childrenGetHandler, "GET")
	p.HTTPHandlers.RegisterHTTPHandler(restapi.RestURLRegistryAllocations, p.allocationsGetHandler, "GET")
	p.Log.Infof("Resource registry REST handlers registered: GET %v, GET %v",
		restapi.RestURLRegistryChildren, restapi.RestURLRegistryAllocations)
}

func (p *Registry) childrenGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		parent := resmodel.Root
		if arg := req.URL.Query().Get(restapi.ParentArg); arg != "" {
			parent = resmodel.ResourceID(arg)
		}
		p.Log.Debugf("Listing child resources of %s", parent)

		children, err := p.GetChildResources(parent)
		if err != nil {
			p.Log.Errorf("Error listing child resources: %v", err)
			formatter.JSON(w, http.StatusInternalServerError, err)
			return
		}
		formatter.JSON(w, http.StatusOK, restapi.ChildResources{
			Parent:   parent,
			Children: children,
		})
	}
}

func (p *Registry) allocationsGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p.Log.Debug("Dumping resource allocations")

		allocations, err := p.allAllocations()
		if err != nil {
			p.Log.Errorf("Error dumping resource allocations: %v", err)
			formatter.JSON(w, http.StatusInternalServerError, err)
			return
		}
		formatter.JSON(w, http.StatusOK, restapi.ResourceAllocations{
			Allocations: allocations,
		})
	}
}
