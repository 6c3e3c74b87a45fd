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

// Package kvdb implements the plugin that connects the agent to the
// transactional key-value store holding the resource registry data.
// The backend (etcd for a cluster, in-process map for standalone use)
// and the shared microservice label used to namespace all keys are
// selected through the plugin configuration file.
package kvdb
