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

import "strconv"

// Platform is a shader back-end target.
type Platform uint8

const (
	PlatformDirect3DSM40 Platform = iota
	PlatformDirect3DSM50
	PlatformDirect3DSM60
	PlatformDirect3DSM65
	PlatformDirect3DXB1
	PlatformDirect3DXBX
	PlatformGLSL120
	PlatformGLSL430
	PlatformESSL100
	PlatformESSL300
	PlatformESSL310
	PlatformMetal
	PlatformVulkan
	PlatformNvn
	PlatformHlsl
)

var platformNames = [...]string{
	"Direct3D_SM40", "Direct3D_SM50", "Direct3D_SM60", "Direct3D_SM65",
	"Direct3D_XB1", "Direct3D_XBX", "GLSL_120", "GLSL_430",
	"ESSL_100", "ESSL_300", "ESSL_310", "Metal", "Vulkan", "Nvn", "Hlsl",
}

func (p Platform) String() string {
	if int(p) < len(platformNames) {
		return platformNames[p]
	}
	return "?"
}

// PlatformOfName returns the platform with the given name.
func PlatformOfName(name string) (Platform, error) {
	for i, n := range platformNames {
		if n == name {
			return Platform(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "shader platform"}
}

// The wire index assignment changed at version 25: the legacy table
// addresses ESSL_300 directly, the new table drops it (ESSL_300 is
// canonicalized to ESSL_310 on write) and gains ESSL_100.
var (
	legacyWirePlatforms = [...]Platform{
		PlatformDirect3DSM40, PlatformDirect3DSM50, PlatformDirect3DSM60,
		PlatformDirect3DSM65, PlatformDirect3DXB1, PlatformDirect3DXBX,
		PlatformGLSL120, PlatformGLSL430, PlatformESSL300, PlatformESSL310,
		PlatformMetal, PlatformVulkan, PlatformNvn, PlatformHlsl,
	}
	newWirePlatforms = [...]Platform{
		PlatformDirect3DSM40, PlatformDirect3DSM50, PlatformDirect3DSM60,
		PlatformDirect3DSM65, PlatformDirect3DXB1, PlatformDirect3DXBX,
		PlatformGLSL120, PlatformGLSL430, PlatformESSL310,
		PlatformMetal, PlatformVulkan, PlatformNvn, PlatformHlsl,
		PlatformESSL100,
	}
)

func wirePlatforms(version uint64) []Platform {
	if version >= 25 {
		return newWirePlatforms[:]
	}
	return legacyWirePlatforms[:]
}

// PlatformCount returns the number of wire addressable platforms under the
// given container version. It is the length of the supported-platforms
// bitstring.
func PlatformCount(version uint64) int {
	return len(wirePlatforms(version))
}

// WireIndex returns the on-disk index for the platform under the given
// container version. Under version 25 and later ESSL_300 aliases to the
// ESSL_310 slot.
func WireIndex(p Platform, version uint64) (uint8, error) {
	if version >= 25 && p == PlatformESSL300 {
		p = PlatformESSL310
	}
	for i, q := range wirePlatforms(version) {
		if q == p {
			return uint8(i), nil
		}
	}
	return 0, InvalidEnumError{Name: p.String(), Kind: "wire platform under this version"}
}

// PlatformOfWireIndex returns the platform assigned to the on-disk index
// under the given container version. Reading a version 25 or later
// container never produces ESSL_300.
func PlatformOfWireIndex(i uint8, version uint64) (Platform, error) {
	table := wirePlatforms(version)
	if int(i) >= len(table) {
		return 0, InvalidEnumError{Name: strconv.Itoa(int(i)), Kind: "platform wire index"}
	}
	return table[i], nil
}
