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

// Resreg-agent serves the cluster-wide discrete-resource registry on one
// node. It connects to the shared key-value store selected by the kvdb
// plugin, seeds the resource tree root and exposes the registry API to
// in-process callers, the REST inspection endpoints and the Prometheus
// statistics. Any number of agents may run against the same store, the
// registry state is shared by all of them.
package main
