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

package config

import (
	"encoding/json"
)

// MockPluginConfig mocks the cn-infra plugin configuration, serving a
// configuration value injected by the test instead of reading a file.
type MockPluginConfig struct {
	name   string
	config interface{}
}

// NewMockPluginConfig is a constructor for MockPluginConfig. A nil config
// imitates a missing configuration file.
func NewMockPluginConfig(name string, config interface{}) *MockPluginConfig {
	return &MockPluginConfig{name: name, config: config}
}

// LoadValue copies the injected configuration into data.
func (m *MockPluginConfig) LoadValue(data interface{}) (found bool, err error) {
	if m.config == nil {
		return false, nil
	}
	encoded, err := json.Marshal(m.config)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(encoded, data); err != nil {
		return false, err
	}
	return true, nil
}

// GetConfigName returns the injected config file name.
func (m *MockPluginConfig) GetConfigName() string {
	return m.name
}
