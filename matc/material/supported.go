// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package material

// SupportedPlatforms is the per-platform support map of a pass.
//
// On the wire it is a bitstring whose length equals the number of wire
// addressable platforms under the container version, read as a binary
// numeral: the rightmost character is wire index 0. A string containing
// anything but '0' and '1' degrades to all-on; an over-long string loses
// its leftmost characters; an under-long one is padded with leading zeros.
type SupportedPlatforms map[Platform]bool

// AllPlatforms returns a support map with every wire addressable platform
// under the version switched on.
func AllPlatforms(version uint64) SupportedPlatforms {
	out := SupportedPlatforms{}
	for _, p := range wirePlatforms(version) {
		out[p] = true
	}
	return out
}

// ParseSupportedPlatforms decodes a bitstring under the given version.
func ParseSupportedPlatforms(s string, version uint64) SupportedPlatforms {
	for _, c := range s {
		if c != '0' && c != '1' {
			return AllPlatforms(version)
		}
	}
	table := wirePlatforms(version)
	n := len(table)
	if len(s) > n {
		s = s[len(s)-n:]
	}
	for len(s) < n {
		s = "0" + s
	}
	out := SupportedPlatforms{}
	for i, p := range table {
		out[p] = s[n-1-i] == '1'
	}
	return out
}

// Bitstring encodes the support map as a bitstring under the given version.
// Platforms that alias on the wire (ESSL_300 under version 25 and later)
// are merged with a logical or.
func (sp SupportedPlatforms) Bitstring(version uint64) string {
	table := wirePlatforms(version)
	n := len(table)
	bits := make([]byte, n)
	for i := range bits {
		bits[i] = '0'
	}
	for p, on := range sp {
		if !on {
			continue
		}
		i, err := WireIndex(p, version)
		if err != nil {
			continue
		}
		bits[n-1-int(i)] = '1'
	}
	return string(bits)
}

// Supports returns true if the platform is enabled. Platforms absent from
// the map are unsupported.
func (sp SupportedPlatforms) Supports(p Platform) bool {
	return sp[p]
}
