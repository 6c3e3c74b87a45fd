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

package servicelabel

const allAgentsPrefix = "/vnf-agent/"

// MockServiceLabel mocks the servicelabel plugin with a label chosen by
// the test.
type MockServiceLabel struct {
	agentLabel string
}

// NewMockServiceLabel is a constructor for MockServiceLabel.
func NewMockServiceLabel(label string) *MockServiceLabel {
	return &MockServiceLabel{agentLabel: label}
}

// GetAgentLabel returns the label set by the test.
func (m *MockServiceLabel) GetAgentLabel() string {
	return m.agentLabel
}

// GetAgentPrefix returns the key prefix of this agent's own subtree.
func (m *MockServiceLabel) GetAgentPrefix() string {
	return allAgentsPrefix + m.agentLabel + "/"
}

// GetDifferentAgentPrefix returns the key prefix of the subtree of the
// agent with the given microservice label.
func (m *MockServiceLabel) GetDifferentAgentPrefix(microserviceLabel string) string {
	return allAgentsPrefix + microserviceLabel + "/"
}

// GetAllAgentsPrefix returns the key prefix common to all agents.
func (m *MockServiceLabel) GetAllAgentsPrefix() string {
	return allAgentsPrefix
}
