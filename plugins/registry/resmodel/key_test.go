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

package resmodel_test

import (
	"testing"

	"github.com/onsi/gomega"

	"github.com/contiv/resreg/plugins/registry/resmodel"
)

func TestKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	id, err := resmodel.NewResourceID("dev1", "port5")
	gomega.Expect(err).To(gomega.BeNil())

	gomega.Expect(resmodel.ConsumerKey(id)).To(gomega.BeEquivalentTo(
		"resource-registry/consumers/root/dev1/port5"))
	gomega.Expect(resmodel.ChildrenKey(resmodel.Root)).To(gomega.BeEquivalentTo(
		"resource-registry/children/root"))

	parsed, ok := resmodel.ParseConsumerKey(resmodel.ConsumerKey(id))
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(parsed).To(gomega.BeEquivalentTo(id))

	parsed, ok = resmodel.ParseChildrenKey(resmodel.ChildrenKey(resmodel.Root))
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(parsed).To(gomega.BeEquivalentTo(resmodel.Root))

	_, ok = resmodel.ParseConsumerKey(resmodel.ChildrenKey(id))
	gomega.Expect(ok).To(gomega.BeFalse())

	_, ok = resmodel.ParseChildrenKey("some/foreign/key")
	gomega.Expect(ok).To(gomega.BeFalse())
}
