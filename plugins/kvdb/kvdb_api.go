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

package kvdb

import (
	"github.com/contiv/resreg/pkg/kvstore"
)

// API defines the API of the KVDB plugin, as needed by the plugins that
// persist cluster-wide state through it.
type API interface {
	// Store returns the key-value store namespaced by the shared
	// microservice label. Returns nil before Init.
	Store() kvstore.Store
}
