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

package resmodel

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/apparentlymart/go-cidr/cidr"
)

const (
	// maxIPv4PrefixLen is the maximum valid prefix length for IPv4.
	maxIPv4PrefixLen = 8 * net.IPv4len
	// maxIPv6PrefixLen is the maximum valid prefix length for IPv6.
	maxIPv6PrefixLen = 8 * net.IPv6len

	// maxSubnetBits limits how far a prefix can be expanded into subnets
	// in one call (2^maxSubnetBits subnets).
	maxSubnetBits = 12
)

// IPPrefix is an IP network prefix used to describe address-like resources.
// The base address is masked on construction, i.e. host bits are always zero.
type IPPrefix struct {
	address net.IP
	length  int
}

// NewIPPrefix returns the prefix of the given length containing the given
// address. Returns a validation error if the address cannot be parsed or
// the length is outside the valid range of the address family.
func NewIPPrefix(address string, length int) (IPPrefix, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return IPPrefix{}, fmt.Errorf("unable to parse IP address %q", address)
	}
	maxLen := maxIPv6PrefixLen
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
		maxLen = maxIPv4PrefixLen
	}
	if length < 0 || length > maxLen {
		return IPPrefix{}, fmt.Errorf("invalid prefix length %d for %s, valid range is [0, %d]",
			length, address, maxLen)
	}
	return IPPrefix{
		address: ip.Mask(net.CIDRMask(length, maxLen)),
		length:  length,
	}, nil
}

// ParseIPPrefix parses a prefix in the CIDR notation, e.g. "10.1.0.0/16".
func ParseIPPrefix(prefix string) (IPPrefix, error) {
	idx := strings.LastIndex(prefix, "/")
	if idx < 0 {
		return IPPrefix{}, fmt.Errorf("missing prefix length in %q", prefix)
	}
	length, err := strconv.Atoi(prefix[idx+1:])
	if err != nil {
		return IPPrefix{}, fmt.Errorf("unable to parse prefix length in %q", prefix)
	}
	return NewIPPrefix(prefix[:idx], length)
}

// Address returns the masked base address of the prefix.
func (p IPPrefix) Address() net.IP {
	return p.address
}

// PrefixLength returns the length of the prefix in bits.
func (p IPPrefix) PrefixLength() int {
	return p.length
}

// Network converts the prefix into the standard library representation.
func (p IPPrefix) Network() *net.IPNet {
	return &net.IPNet{
		IP:   p.address,
		Mask: net.CIDRMask(p.length, 8*len(p.address)),
	}
}

// Equal returns true if both prefixes have the same base address and the
// same length. Prefixes of different address families are never equal.
func (p IPPrefix) Equal(other IPPrefix) bool {
	return p.length == other.length && p.address.Equal(other.address)
}

// Contains returns true if the given prefix falls within this prefix.
// A longer prefix never contains a shorter one.
func (p IPPrefix) Contains(other IPPrefix) bool {
	if p.length > other.length {
		return false
	}
	if len(p.address) != len(other.address) {
		return false
	}
	// mask the other address with our length, a contained prefix must
	// collapse onto our base address
	masked := other.address.Mask(net.CIDRMask(p.length, 8*len(p.address)))
	return p.address.Equal(masked)
}

// Subnets enumerates all subnets of the given longer prefix length, in
// address order. Used to register an address block as discrete resources.
func (p IPPrefix) Subnets(newLength int) ([]IPPrefix, error) {
	if newLength < p.length || newLength > 8*len(p.address) {
		return nil, fmt.Errorf("cannot expand %s into /%d subnets", p, newLength)
	}
	newBits := newLength - p.length
	if newBits > maxSubnetBits {
		return nil, fmt.Errorf("expansion of %s into /%d subnets is too large", p, newLength)
	}
	network := p.Network()
	subnets := make([]IPPrefix, 0, 1<<uint(newBits))
	for i := 0; i < 1<<uint(newBits); i++ {
		subnet, err := cidr.Subnet(network, newBits, i)
		if err != nil {
			return nil, err
		}
		subnets = append(subnets, IPPrefix{address: subnet.IP, length: newLength})
	}
	return subnets, nil
}

// String converts the prefix into the CIDR notation.
func (p IPPrefix) String() string {
	return fmt.Sprintf("%s/%d", p.address, p.length)
}
