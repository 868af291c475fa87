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

// EncryptionMode declares how the container body is stored.
type EncryptionMode int

const (
	// EncryptionNone stores the body as plaintext.
	EncryptionNone EncryptionMode = iota
	// EncryptionSimplePassphrase stores the body as an unauthenticated
	// AES-GCM data stream with the key and nonce alongside.
	EncryptionSimplePassphrase
	// EncryptionKeyPair is declared by the format but unsupported: readers
	// and writers refuse it.
	EncryptionKeyPair
)

// Tag returns the canonical four character tag for the mode. The tag is
// stored byte-reversed on disk.
func (m EncryptionMode) Tag() string {
	switch m {
	case EncryptionNone:
		return "NONE"
	case EncryptionSimplePassphrase:
		return "SMPL"
	case EncryptionKeyPair:
		return "KYPR"
	default:
		return "????"
	}
}

func (m EncryptionMode) String() string { return m.Tag() }

// EncryptionModeOfTag returns the mode declared by the canonical
// (already un-reversed) tag.
func EncryptionModeOfTag(tag string) (EncryptionMode, error) {
	switch tag {
	case "NONE":
		return EncryptionNone, nil
	case "SMPL":
		return EncryptionSimplePassphrase, nil
	case "KYPR":
		return EncryptionKeyPair, nil
	default:
		return 0, InvalidEnumError{Name: tag, Kind: "encryption mode"}
	}
}

// Stage identifies the shader role.
type Stage uint8

const (
	StageVertex   Stage = 0
	StageFragment Stage = 1
	StageCompute  Stage = 2
	StageUnknown  Stage = 3
)

var stageNames = [...]string{"Vertex", "Fragment", "Compute", "Unknown"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "?"
}

// StageOfName returns the stage with the given name.
func StageOfName(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "stage"}
}

// BufferAccess declares how a shader accesses a buffer binding.
type BufferAccess uint8

const (
	AccessUndefined BufferAccess = iota
	AccessReadonly
	AccessWriteonly
	AccessReadwrite
)

var accessNames = [...]string{"Undefined", "Readonly", "Writeonly", "Readwrite"}

func (a BufferAccess) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return "?"
}

// BufferAccessOfName returns the access mode with the given name.
func BufferAccessOfName(name string) (BufferAccess, error) {
	for i, n := range accessNames {
		if n == name {
			return BufferAccess(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "buffer access"}
}

// Precision is the optional precision qualifier carried by buffers and
// inputs.
type Precision uint8

const (
	PrecisionNone Precision = iota
	PrecisionLowp
	PrecisionMediump
	PrecisionHighp
)

var precisionNames = [...]string{"None", "Lowp", "Mediump", "Highp"}

func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return "?"
}

// PrecisionOfName returns the precision with the given name.
func PrecisionOfName(name string) (Precision, error) {
	for i, n := range precisionNames {
		if n == name {
			return Precision(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "precision"}
}

// BufferType is the resource type of a material buffer binding.
type BufferType uint8

const (
	BufferTexture2D BufferType = iota
	BufferTexture2DArray
	BufferExternal2D
	BufferTexture3D
	BufferTextureCube
	BufferTextureCubeArray
	BufferStructBuffer
	BufferRawBuffer
	BufferAccelerationStructure
	BufferShadow2D
	BufferShadow2DArray
)

var bufferTypeNames = [...]string{
	"Texture2D", "Texture2DArray", "External2D", "Texture3D", "TextureCube",
	"TextureCubeArray", "StructBuffer", "RawBuffer", "AccelerationStructure",
	"Shadow2D", "Shadow2DArray",
}

func (t BufferType) String() string {
	if int(t) < len(bufferTypeNames) {
		return bufferTypeNames[t]
	}
	return "?"
}

// BufferTypeOfName returns the buffer type with the given name.
func BufferTypeOfName(name string) (BufferType, error) {
	for i, n := range bufferTypeNames {
		if n == name {
			return BufferType(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "buffer type"}
}

// UniformType is the data type of a material uniform.
type UniformType uint16

const (
	UniformVec4     UniformType = 2
	UniformMat3     UniformType = 3
	UniformMat4     UniformType = 4
	UniformExternal UniformType = 5
)

func (t UniformType) String() string {
	switch t {
	case UniformVec4:
		return "Vec4"
	case UniformMat3:
		return "Mat3"
	case UniformMat4:
		return "Mat4"
	case UniformExternal:
		return "External"
	default:
		return "?"
	}
}

// UniformTypeOfName returns the uniform type with the given name.
func UniformTypeOfName(name string) (UniformType, error) {
	switch name {
	case "Vec4":
		return UniformVec4, nil
	case "Mat3":
		return UniformMat3, nil
	case "Mat4":
		return UniformMat4, nil
	case "External":
		return UniformExternal, nil
	default:
		return 0, InvalidEnumError{Name: name, Kind: "uniform type"}
	}
}

// Words returns the number of f32 words in a default value of the type, or 0
// if the type carries no default.
func (t UniformType) Words() int {
	switch t {
	case UniformVec4:
		return 4
	case UniformMat3:
		return 9
	case UniformMat4:
		return 16
	default:
		return 0
	}
}

// BlendMode is a pass level blending declaration.
type BlendMode uint16

const (
	BlendUnspecified BlendMode = iota
	BlendNoneMode
	BlendReplace
	BlendAlphaBlend
	BlendColorBlendAlphaAdd
	BlendPreMultiplied
	BlendInvertColor
	BlendAdditive
	BlendAdditiveAlpha
	BlendMultiply
	BlendMultiplyBoth
	BlendInverseSrcAlpha
	BlendSrcAlpha
)

var blendModeNames = [...]string{
	"Unspecified", "NoneMode", "Replace", "AlphaBlend", "ColorBlendAlphaAdd",
	"PreMultiplied", "InvertColor", "Additive", "AdditiveAlpha", "Multiply",
	"MultiplyBoth", "InverseSrcAlpha", "SrcAlpha",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "?"
}

// BlendModeOfName returns the blend mode with the given name.
func BlendModeOfName(name string) (BlendMode, error) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "blend mode"}
}

// InputType is the data type of a vertex or varying attribute.
type InputType uint8

const (
	InputFloat InputType = iota
	InputVec2
	InputVec3
	InputVec4
	InputInt
	InputIVec2
	InputIVec3
	InputIVec4
	InputUint
	InputUVec2
	InputUVec3
	InputUVec4
	InputMat4
)

var inputTypeNames = [...]string{
	"float", "vec2", "vec3", "vec4",
	"int", "ivec2", "ivec3", "ivec4",
	"uint", "uvec2", "uvec3", "uvec4",
	"mat4",
}

func (t InputType) String() string {
	if int(t) < len(inputTypeNames) {
		return inputTypeNames[t]
	}
	return "?"
}

// InputTypeOfName returns the input type with the given name.
func InputTypeOfName(name string) (InputType, error) {
	for i, n := range inputTypeNames {
		if n == name {
			return InputType(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "input type"}
}

// SemanticIndex selects the meaning of an input attribute.
type SemanticIndex uint8

const (
	SemanticPosition SemanticIndex = iota
	SemanticNormal
	SemanticTangent
	SemanticBitangent
	SemanticColor
	SemanticBlendIndices
	SemanticBlendWeight
	SemanticTexcoord
	SemanticUnknown
	SemanticFrontFacing
)

var semanticNames = [...]string{
	"POSITION", "NORMAL", "TANGENT", "BITANGENT", "COLOR",
	"BLENDINDICES", "BLENDWEIGHT", "TEXCOORD", "UNKNOWN", "FRONTFACING",
}

func (s SemanticIndex) String() string {
	if int(s) < len(semanticNames) {
		return semanticNames[s]
	}
	return "?"
}

// SemanticOfName returns the semantic with the given name.
func SemanticOfName(name string) (SemanticIndex, error) {
	for i, n := range semanticNames {
		if n == name {
			return SemanticIndex(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "input semantic"}
}

// Interpolation is the optional varying interpolation qualifier.
type Interpolation uint8

const (
	InterpolationFlat Interpolation = iota
	InterpolationSmooth
	InterpolationNoperspective
	InterpolationCentroid
)

var interpolationNames = [...]string{"Flat", "Smooth", "Noperspective", "Centroid"}

func (i Interpolation) String() string {
	if int(i) < len(interpolationNames) {
		return interpolationNames[i]
	}
	return "?"
}

// InterpolationOfName returns the interpolation with the given name.
func InterpolationOfName(name string) (Interpolation, error) {
	for i, n := range interpolationNames {
		if n == name {
			return Interpolation(i), nil
		}
	}
	return 0, InvalidEnumError{Name: name, Kind: "interpolation"}
}

// SamplerFilter is half of the two bit sampler state.
type SamplerFilter uint8

const (
	FilterPoint SamplerFilter = iota
	FilterBilinear
)

func (f SamplerFilter) String() string {
	if f == FilterPoint {
		return "Point"
	}
	return "Bilinear"
}

// TextureWrap is the other half of the two bit sampler state.
type TextureWrap uint8

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
)

func (w TextureWrap) String() string {
	if w == WrapClamp {
		return "Clamp"
	}
	return "Repeat"
}
