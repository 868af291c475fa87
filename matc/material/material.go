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

// Package material implements the compiled material container: the data
// model, the enum catalog with its per-version platform wire tables, and a
// bit-exact reader and writer for container versions 22 through 25.
package material

// Magic is the u64 that both opens and closes every container file.
const Magic uint64 = 168_942_106

// Identifier is the fixed ASCII string that follows the leading magic.
const Identifier = "RenderDragon.CompiledMaterialDefinition"

// The supported container version range. Versions outside it fail with
// UnsupportedVersionError.
const (
	MinVersion uint64 = 22
	MaxVersion uint64 = 25
)

// builtinsName is the one material name whose serialized form carries no
// uniform override block.
const builtinsName = "Core/Builtins"

// Pair is an ordered name/value entry. The container's string-to-string
// mappings are order preserving on the wire, so they are held as slices of
// pairs rather than Go maps.
type Pair struct {
	Name  string
	Value string
}

// Material is the root of the container data model. Materials are immutable
// after construction; operations that change one return a fresh value.
type Material struct {
	// Version of the container format, in [MinVersion, MaxVersion].
	Version uint64
	// Name of the material.
	Name string
	// Encryption mode of the body.
	Encryption EncryptionMode
	// Parent material name, empty for none.
	Parent string
	// Buffers in declaration order.
	Buffers []MaterialBuffer
	// Uniforms in declaration order.
	Uniforms []Uniform
	// UniformOverrides, absent entirely when Name == "Core/Builtins".
	UniformOverrides []Pair
	// Passes in declaration order.
	Passes []Pass
	// EncryptionKey and EncryptionNonce are only set on encrypted
	// containers; they are preserved across read/write round trips.
	EncryptionKey   []byte
	EncryptionNonce []byte
}

// hasOverrideBlock reports whether the serialized form carries the uniform
// override block.
func (m *Material) hasOverrideBlock() bool {
	return m.Name != builtinsName
}

// Pass returns the pass with the given name, or nil.
func (m *Material) Pass(name string) *Pass {
	for i := range m.Passes {
		if m.Passes[i].Name == name {
			return &m.Passes[i]
		}
	}
	return nil
}

// PassNames returns the pass names in declaration order.
func (m *Material) PassNames() []string {
	out := make([]string, len(m.Passes))
	for i := range m.Passes {
		out[i] = m.Passes[i].Name
	}
	return out
}

// WithName returns a copy of the material renamed to name.
func (m *Material) WithName(name string) *Material {
	out := *m
	out.Name = name
	return &out
}

// WithEncryption returns a copy of the material with the encryption mode
// replaced. Key and nonce are only meaningful for the simple passphrase
// mode; passing the key-pair mode fails at write time, not here.
func (m *Material) WithEncryption(mode EncryptionMode, key, nonce []byte) *Material {
	out := *m
	out.Encryption = mode
	out.EncryptionKey = key
	out.EncryptionNonce = nonce
	return &out
}

// MaterialBuffer is a GPU resource binding declared by the material.
type MaterialBuffer struct {
	Name            string
	Reg1            uint16
	Access          BufferAccess
	Precision       Precision
	UnorderedAccess bool
	Reg2            uint8
	Type            BufferType
	TextureFormat   string
	// AlwaysOne is observed to hold 1 in practice; the writer preserves
	// whatever was read and never validates it.
	AlwaysOne      uint64
	SamplerState   *SamplerState
	DefaultTexture *string
	// TexturePath is only serialized at version 24 and later.
	TexturePath    *string
	CustomTypeInfo *CustomTypeInfo
}

// SamplerState is the two bit filter/wrap state of a texture binding.
type SamplerState struct {
	Filter SamplerFilter
	Wrap   TextureWrap
}

// CustomTypeInfo describes the element type of a structured buffer.
type CustomTypeInfo struct {
	Struct string
	Size   uint64
}

// Uniform is a material level uniform declaration.
type Uniform struct {
	Name string
	Type UniformType
	// Count is only serialized for non-External uniforms.
	Count uint32
	// Default holds 4, 9 or 16 f32 words by type, or nil for none.
	Default []float32
}

// Pass is a render step holding pass level metadata and the variant set.
type Pass struct {
	Name               string
	SupportedPlatforms SupportedPlatforms
	FallbackPass       string
	DefaultBlendMode   BlendMode
	DefaultVariant     []Pair
	// FramebufferBinding is only serialized at version 23 and later.
	FramebufferBinding uint32
	Variants           []Variant
}

// Variant is one flag combination within a pass.
type Variant struct {
	IsSupported bool
	Flags       []Pair
	Shaders     []ShaderDefinition
}

// Flag returns the value of the named flag, or the empty string.
func (v *Variant) Flag(name string) string {
	for _, f := range v.Flags {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// ShaderDefinition is the per (platform, stage) shader entry of a variant.
type ShaderDefinition struct {
	Stage    Stage
	Platform Platform
	Inputs   []ShaderInput
	Hash     uint64
	Shader   BackendShaderWrapper
}

// ShaderInput is vertex or varying attribute metadata.
type ShaderInput struct {
	Name             string
	Type             InputType
	Semantic         SemanticIndex
	SemanticSubIndex uint8
	PerInstance      bool
	Precision        *Precision
	Interpolation    *Interpolation
}
