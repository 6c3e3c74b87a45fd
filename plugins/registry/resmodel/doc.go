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

// Package resmodel defines the value types of the discrete-resource registry:
// hierarchical resource identifiers rooted in a distinguished tree root,
// discrete resources with a type tag, opaque consumer identities, derived
// resource allocations, IP prefixes for address-like resources, and the
// schema of keys under which registry data is persisted in the data-store.
package resmodel
