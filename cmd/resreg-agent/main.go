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

package main

import (
	"github.com/ligato/cn-infra/agent"
	"github.com/ligato/cn-infra/health/probe"
	"github.com/ligato/cn-infra/logging/logrus"
	"github.com/ligato/cn-infra/servicelabel"

	"github.com/contiv/resreg/plugins/kvdb"
	"github.com/contiv/resreg/plugins/registry"
)

// ResRegAgent serves the cluster-wide resource registry on this node.
type ResRegAgent struct {
	ServiceLabel servicelabel.ReaderAPI
	HealthProbe  *probe.Plugin
	KVDB         *kvdb.KVDB
	Registry     *registry.Registry
}

func (a *ResRegAgent) String() string {
	return "ResRegAgent"
}

// Init is called at startup phase. Method added in order to implement Plugin interface.
func (a *ResRegAgent) Init() error {
	return nil
}

// Close is called at cleanup phase. Method added in order to implement Plugin interface.
func (a *ResRegAgent) Close() error {
	return nil
}

func main() {

	resRegAgent := &ResRegAgent{
		ServiceLabel: &servicelabel.DefaultPlugin,
		HealthProbe:  &probe.DefaultPlugin,
		KVDB:         &kvdb.DefaultPlugin,
		Registry:     &registry.DefaultPlugin,
	}

	a := agent.NewAgent(agent.AllPlugins(resRegAgent))
	if err := a.Run(); err != nil {
		logrus.DefaultLogger().Fatal(err)
	}
}
