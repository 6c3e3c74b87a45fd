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

func prefix(cidrNotation string) resmodel.IPPrefix {
	p, err := resmodel.ParseIPPrefix(cidrNotation)
	gomega.Expect(err).To(gomega.BeNil())
	return p
}

func TestPrefixContains(t *testing.T) {
	gomega.RegisterTestingT(t)

	gomega.Expect(prefix("10.1.0.0/16").Contains(prefix("10.1.2.0/24"))).To(gomega.BeTrue())
	gomega.Expect(prefix("10.1.2.0/24").Contains(prefix("10.1.0.0/16"))).To(gomega.BeFalse())

	gomega.Expect(prefix("10.1.0.0/16").Contains(prefix("10.1.0.0/16"))).To(gomega.BeTrue())
	gomega.Expect(prefix("10.2.0.0/16").Contains(prefix("10.1.2.0/24"))).To(gomega.BeFalse())

	gomega.Expect(prefix("0.0.0.0/0").Contains(prefix("192.168.1.0/24"))).To(gomega.BeTrue())

	// different address families never contain each other
	gomega.Expect(prefix("10.1.0.0/16").Contains(prefix("2001:db8::/32"))).To(gomega.BeFalse())
	gomega.Expect(prefix("2001:db8::/32").Contains(prefix("10.1.0.0/16"))).To(gomega.BeFalse())

	gomega.Expect(prefix("2001:db8::/32").Contains(prefix("2001:db8:1::/48"))).To(gomega.BeTrue())
}

func TestPrefixEquality(t *testing.T) {
	gomega.RegisterTestingT(t)

	gomega.Expect(prefix("10.1.0.0/16").Equal(prefix("10.1.0.0/16"))).To(gomega.BeTrue())

	// host bits are masked away on construction, equality is structural
	p, err := resmodel.NewIPPrefix("10.1.2.3", 16)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(p.Equal(prefix("10.1.0.0/16"))).To(gomega.BeTrue())

	gomega.Expect(prefix("10.1.0.0/16").Equal(prefix("10.1.0.0/17"))).To(gomega.BeFalse())
	gomega.Expect(prefix("10.1.0.0/16").Equal(prefix("10.2.0.0/16"))).To(gomega.BeFalse())
	gomega.Expect(prefix("10.1.0.0/16").Equal(prefix("2001:db8::/16"))).To(gomega.BeFalse())
}

func TestPrefixMaskedConstruction(t *testing.T) {
	gomega.RegisterTestingT(t)

	p, err := resmodel.NewIPPrefix("10.1.2.3", 16)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(p.String()).To(gomega.BeEquivalentTo("10.1.0.0/16"))
	gomega.Expect(p.PrefixLength()).To(gomega.BeEquivalentTo(16))
	gomega.Expect(p.Address().String()).To(gomega.BeEquivalentTo("10.1.0.0"))

	p, err = resmodel.NewIPPrefix("2001:db8:1:2::5", 32)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(p.String()).To(gomega.BeEquivalentTo("2001:db8::/32"))
}

func TestPrefixValidation(t *testing.T) {
	gomega.RegisterTestingT(t)

	_, err := resmodel.NewIPPrefix("10.1.0.0", 33)
	gomega.Expect(err).NotTo(gomega.BeNil())

	_, err = resmodel.NewIPPrefix("10.1.0.0", -1)
	gomega.Expect(err).NotTo(gomega.BeNil())

	_, err = resmodel.NewIPPrefix("2001:db8::", 129)
	gomega.Expect(err).NotTo(gomega.BeNil())

	_, err = resmodel.NewIPPrefix("not-an-address", 16)
	gomega.Expect(err).NotTo(gomega.BeNil())

	_, err = resmodel.NewIPPrefix("2001:db8::", 128)
	gomega.Expect(err).To(gomega.BeNil())

	_, err = resmodel.ParseIPPrefix("10.1.0.0")
	gomega.Expect(err).NotTo(gomega.BeNil())

	_, err = resmodel.ParseIPPrefix("10.1.0.0/sixteen")
	gomega.Expect(err).NotTo(gomega.BeNil())
}

func TestPrefixSubnets(t *testing.T) {
	gomega.RegisterTestingT(t)

	subnets, err := prefix("10.1.0.0/16").Subnets(18)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(subnets).To(gomega.HaveLen(4))

	var rendered []string
	for _, subnet := range subnets {
		rendered = append(rendered, subnet.String())
	}
	gomega.Expect(rendered).To(gomega.BeEquivalentTo([]string{
		"10.1.0.0/18", "10.1.64.0/18", "10.1.128.0/18", "10.1.192.0/18",
	}))

	// shrinking or leaving the address family range is invalid
	_, err = prefix("10.1.0.0/16").Subnets(15)
	gomega.Expect(err).NotTo(gomega.BeNil())
	_, err = prefix("10.1.0.0/16").Subnets(33)
	gomega.Expect(err).NotTo(gomega.BeNil())

	// expansion size is bounded
	_, err = prefix("10.0.0.0/8").Subnets(30)
	gomega.Expect(err).NotTo(gomega.BeNil())
}
