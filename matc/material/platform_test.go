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

package material_test

import (
	"bytes"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

func TestWireIndex(t *testing.T) {
	ctx := log.Testing(t)

	for _, test := range []struct {
		platform material.Platform
		version  uint64
		index    uint8
	}{
		{material.PlatformDirect3DSM40, 22, 0},
		{material.PlatformDirect3DSM65, 24, 3},
		{material.PlatformESSL300, 24, 8},
		{material.PlatformESSL310, 24, 9},
		{material.PlatformHlsl, 24, 13},
		{material.PlatformESSL310, 25, 8},
		{material.PlatformESSL300, 25, 8}, // aliases to ESSL_310
		{material.PlatformMetal, 25, 9},
		{material.PlatformESSL100, 25, 13},
	} {
		got, err := material.WireIndex(test.platform, test.version)
		assert.For(ctx, "%v v%d err", test.platform, test.version).ThatError(err).Succeeded()
		assert.For(ctx, "%v v%d", test.platform, test.version).That(got).Equals(test.index)
	}

	// ESSL_100 has no slot before version 25.
	_, err := material.WireIndex(material.PlatformESSL100, 24)
	assert.For(ctx, "ESSL_100 v24").ThatError(err).Failed()
}

func TestPlatformOfWireIndex(t *testing.T) {
	ctx := log.Testing(t)
	got, err := material.PlatformOfWireIndex(8, 24)
	assert.For(ctx, "v24 err").ThatError(err).Succeeded()
	assert.For(ctx, "v24").That(got).Equals(material.PlatformESSL300)

	got, err = material.PlatformOfWireIndex(8, 25)
	assert.For(ctx, "v25 err").ThatError(err).Succeeded()
	assert.For(ctx, "v25").That(got).Equals(material.PlatformESSL310)

	_, err = material.PlatformOfWireIndex(14, 25)
	assert.For(ctx, "range").ThatError(err).Failed()
}

// A legacy container referencing ESSL_300 keeps its slot, while the same
// conceptual material written at version 25 emits the ESSL_310 name on the
// same slot.
func TestEnumRemap(t *testing.T) {
	ctx := log.Testing(t)

	build := func(version uint64) *material.Material {
		return &material.Material{
			Version: version,
			Name:    "Remap",
			Passes: []material.Pass{{
				Name:               "Main",
				SupportedPlatforms: material.AllPlatforms(version),
				Variants: []material.Variant{{
					IsSupported: true,
					Shaders: []material.ShaderDefinition{{
						Stage:    material.StageFragment,
						Platform: material.PlatformESSL300,
						Shader: material.BackendShaderWrapper{
							Tag: "FSH", Version: 5, ShaderBytes: []byte{1}, Size: -1,
						},
					}},
				}},
			}},
		}
	}

	legacy, err := material.Write(build(24))
	assert.For(ctx, "v24 write").ThatError(err).Succeeded()
	assert.For(ctx, "v24 name").That(bytes.Contains(legacy, []byte("ESSL_300"))).IsTrue()
	i := bytes.Index(legacy, []byte("ESSL_300"))
	assert.For(ctx, "v24 index").That(legacy[i+len("ESSL_300")]).Equals(uint8(8))
	back, err := material.Read(legacy)
	assert.For(ctx, "v24 read").ThatError(err).Succeeded()
	assert.For(ctx, "v24 platform").
		That(back.Passes[0].Variants[0].Shaders[0].Platform).Equals(material.PlatformESSL300)

	fresh, err := material.Write(build(25))
	assert.For(ctx, "v25 write").ThatError(err).Succeeded()
	assert.For(ctx, "v25 alias").That(bytes.Contains(fresh, []byte("ESSL_300"))).IsFalse()
	i = bytes.Index(fresh, []byte("ESSL_310"))
	assert.For(ctx, "v25 found").That(i >= 0).IsTrue()
	assert.For(ctx, "v25 index").That(fresh[i+len("ESSL_310")]).Equals(uint8(8))
	back, err = material.Read(fresh)
	assert.For(ctx, "v25 read").ThatError(err).Succeeded()
	assert.For(ctx, "v25 platform").
		That(back.Passes[0].Variants[0].Shaders[0].Platform).Equals(material.PlatformESSL310)
}

func TestEnumNames(t *testing.T) {
	ctx := log.Testing(t)

	p, err := material.PlatformOfName("Vulkan")
	assert.For(ctx, "platform err").ThatError(err).Succeeded()
	assert.For(ctx, "platform").That(p).Equals(material.PlatformVulkan)

	_, err = material.PlatformOfName("Direct3D_SM70")
	assert.For(ctx, "unknown platform").ThatError(err).
		Equals(material.InvalidEnumError{Name: "Direct3D_SM70", Kind: "shader platform"})

	s, err := material.StageOfName("Compute")
	assert.For(ctx, "stage err").ThatError(err).Succeeded()
	assert.For(ctx, "stage").That(s).Equals(material.StageCompute)
	assert.For(ctx, "stage index").That(uint8(material.StageCompute)).Equals(uint8(2))

	b, err := material.BlendModeOfName("InverseSrcAlpha")
	assert.For(ctx, "blend err").ThatError(err).Succeeded()
	assert.For(ctx, "blend").That(b).Equals(material.BlendInverseSrcAlpha)

	u, err := material.UniformTypeOfName("Mat3")
	assert.For(ctx, "uniform err").ThatError(err).Succeeded()
	assert.For(ctx, "uniform value").That(uint16(u)).Equals(uint16(3))
	assert.For(ctx, "uniform words").That(u.Words()).Equals(9)
}

func TestSupportedPlatforms(t *testing.T) {
	ctx := log.Testing(t)

	// The rightmost character is wire index zero.
	sp := material.ParseSupportedPlatforms("10", 25)
	assert.For(ctx, "bit0").That(sp.Supports(material.PlatformDirect3DSM40)).IsFalse()
	assert.For(ctx, "bit1").That(sp.Supports(material.PlatformDirect3DSM50)).IsTrue()
	assert.For(ctx, "padded").That(sp.Supports(material.PlatformESSL100)).IsFalse()
	assert.For(ctx, "string").ThatString(sp.Bitstring(25)).Equals("00000000000010")

	// Unknown characters degrade to all-on.
	sp = material.ParseSupportedPlatforms("1x", 25)
	assert.For(ctx, "degraded").That(sp.Supports(material.PlatformHlsl)).IsTrue()
	assert.For(ctx, "degraded string").ThatString(sp.Bitstring(25)).Equals("11111111111111")

	// Over-long strings lose their leftmost characters.
	long := "111" + "00000000000001"
	sp = material.ParseSupportedPlatforms(long, 25)
	assert.For(ctx, "truncated").ThatString(sp.Bitstring(25)).Equals("00000000000001")

	all := material.AllPlatforms(24)
	assert.For(ctx, "all").ThatString(all.Bitstring(24)).Equals("11111111111111")
}
