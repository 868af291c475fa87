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

import (
	"github.com/rdtools/matc/core/data/binary"
	"github.com/rdtools/matc/core/data/endian"
	"github.com/rdtools/matc/matc/material/crypt"
)

// Read decodes a container file into a Material.
func Read(data []byte) (*Material, error) {
	r := endian.Reader(data)
	if magic := r.Uint64(); r.Error() == nil && magic != Magic {
		return nil, formatErrf("bad leading magic %#x", magic)
	}
	if id := r.String(); r.Error() == nil && id != Identifier {
		return nil, formatErrf("bad identifier %q", id)
	}
	version := r.Uint64()
	if err := r.Error(); err != nil {
		return nil, FormatError{Reason: err.Error()}
	}
	if version < MinVersion || version > MaxVersion {
		return nil, UnsupportedVersionError{Version: version}
	}

	tag := make([]byte, 4)
	r.Data(tag)
	if err := r.Error(); err != nil {
		return nil, FormatError{Reason: err.Error()}
	}
	reverse4(tag)
	mode, err := EncryptionModeOfTag(string(tag))
	if err != nil {
		return nil, EncryptionError{Reason: err.Error()}
	}

	m := &Material{Version: version, Encryption: mode}
	body := r
	switch mode {
	case EncryptionNone:
	case EncryptionSimplePassphrase:
		m.EncryptionKey = r.ByteArray()
		m.EncryptionNonce = r.ByteArray()
		ciphertext := r.ByteArray()
		if err := r.Error(); err != nil {
			return nil, FormatError{Reason: err.Error()}
		}
		plaintext, err := crypt.Apply(m.EncryptionKey, m.EncryptionNonce, ciphertext)
		if err != nil {
			return nil, EncryptionError{Reason: err.Error()}
		}
		body = endian.Reader(plaintext)
	case EncryptionKeyPair:
		return nil, EncryptionError{Reason: "key-pair encryption is unsupported"}
	}

	if err := readBody(body, m); err != nil {
		return nil, err
	}
	if trailing := body.Uint64(); body.Error() == nil && trailing != Magic {
		return nil, formatErrf("bad trailing magic %#x", trailing)
	}
	if err := body.Error(); err != nil {
		return nil, FormatError{Reason: err.Error()}
	}
	if body.Remaining() > 0 {
		return nil, formatErrf("%d trailing bytes after material body", body.Remaining())
	}
	if mode != EncryptionNone && r.Remaining() > 0 {
		return nil, formatErrf("%d trailing bytes after encrypted body", r.Remaining())
	}
	return m, nil
}

func reverse4(b []byte) {
	b[0], b[3] = b[3], b[0]
	b[1], b[2] = b[2], b[1]
}

func readBody(r binary.Reader, m *Material) error {
	m.Name = r.String()
	if r.Bool() {
		m.Parent = r.String()
	}

	bufferCount := r.Uint8()
	for i := uint8(0); i < bufferCount && r.Error() == nil; i++ {
		b, err := readBuffer(r, m.Version)
		if err != nil {
			return err
		}
		m.Buffers = append(m.Buffers, b)
	}

	uniformCount := r.Uint16()
	for i := uint16(0); i < uniformCount && r.Error() == nil; i++ {
		u, err := readUniform(r)
		if err != nil {
			return err
		}
		m.Uniforms = append(m.Uniforms, u)
	}

	if m.hasOverrideBlock() {
		overrideCount := r.Uint16()
		for i := uint16(0); i < overrideCount && r.Error() == nil; i++ {
			name := r.String()
			value := r.String()
			m.UniformOverrides = append(m.UniformOverrides, Pair{name, value})
		}
	}

	passCount := r.Uint16()
	for i := uint16(0); i < passCount && r.Error() == nil; i++ {
		p, err := readPass(r, m.Version)
		if err != nil {
			return err
		}
		m.Passes = append(m.Passes, p)
	}
	if err := r.Error(); err != nil {
		return FormatError{Reason: err.Error()}
	}
	return nil
}

func readBuffer(r binary.Reader, version uint64) (MaterialBuffer, error) {
	var b MaterialBuffer
	b.Name = r.String()
	b.Reg1 = r.Uint16()
	if access := r.Uint8(); access <= uint8(AccessReadwrite) {
		b.Access = BufferAccess(access)
	} else if r.Error() == nil {
		return b, formatErrf("buffer %q: bad access %d", b.Name, access)
	}
	if precision := r.Uint8(); precision <= uint8(PrecisionHighp) {
		b.Precision = Precision(precision)
	} else if r.Error() == nil {
		return b, formatErrf("buffer %q: bad precision %d", b.Name, precision)
	}
	b.UnorderedAccess = r.Bool()
	b.Reg2 = r.Uint8()
	if t := r.Uint8(); t <= uint8(BufferShadow2DArray) {
		b.Type = BufferType(t)
	} else if r.Error() == nil {
		return b, formatErrf("buffer %q: bad type %d", b.Name, t)
	}
	b.TextureFormat = r.String()
	b.AlwaysOne = r.Uint64()
	if r.Bool() {
		state := r.Uint8()
		if r.Error() == nil && state > 3 {
			return b, formatErrf("buffer %q: bad sampler state %#x", b.Name, state)
		}
		b.SamplerState = &SamplerState{
			Filter: SamplerFilter(state & 1),
			Wrap:   TextureWrap(state >> 1),
		}
	}
	if r.Bool() {
		s := r.String()
		b.DefaultTexture = &s
	}
	if version >= 24 {
		if r.Bool() {
			s := r.String()
			b.TexturePath = &s
		}
	}
	if r.Bool() {
		info := CustomTypeInfo{Struct: r.String(), Size: r.Uint64()}
		b.CustomTypeInfo = &info
	}
	return b, nil
}

func readUniform(r binary.Reader) (Uniform, error) {
	var u Uniform
	u.Name = r.String()
	t := r.Uint16()
	if r.Error() != nil {
		return u, nil
	}
	switch UniformType(t) {
	case UniformVec4, UniformMat3, UniformMat4, UniformExternal:
		u.Type = UniformType(t)
	default:
		return u, formatErrf("uniform %q: bad type %d", u.Name, t)
	}
	if u.Type == UniformExternal {
		return u, nil
	}
	u.Count = r.Uint32()
	if r.Bool() {
		u.Default = r.Float32Array(u.Type.Words())
	}
	return u, nil
}

func readPass(r binary.Reader, version uint64) (Pass, error) {
	var p Pass
	p.Name = r.String()
	p.SupportedPlatforms = ParseSupportedPlatforms(r.String(), version)
	p.FallbackPass = r.String()
	if mode := r.Uint16(); mode <= uint16(BlendSrcAlpha) {
		p.DefaultBlendMode = BlendMode(mode)
	} else if r.Error() == nil {
		return p, formatErrf("pass %q: bad blend mode %d", p.Name, mode)
	}
	variantDefaults := r.Uint16()
	for i := uint16(0); i < variantDefaults && r.Error() == nil; i++ {
		name := r.String()
		value := r.String()
		p.DefaultVariant = append(p.DefaultVariant, Pair{name, value})
	}
	if version >= 23 {
		p.FramebufferBinding = r.Uint32()
	}
	variantCount := r.Uint16()
	for i := uint16(0); i < variantCount && r.Error() == nil; i++ {
		v, err := readVariant(r, version)
		if err != nil {
			return p, err
		}
		p.Variants = append(p.Variants, v)
	}
	return p, nil
}

func readVariant(r binary.Reader, version uint64) (Variant, error) {
	var v Variant
	v.IsSupported = r.Bool()
	flagCount := r.Uint16()
	for i := uint16(0); i < flagCount && r.Error() == nil; i++ {
		name := r.String()
		value := r.String()
		v.Flags = append(v.Flags, Pair{name, value})
	}
	shaderCount := r.Uint16()
	for i := uint16(0); i < shaderCount && r.Error() == nil; i++ {
		s, err := readShaderDefinition(r, version)
		if err != nil {
			return v, err
		}
		v.Shaders = append(v.Shaders, s)
	}
	return v, nil
}

func readShaderDefinition(r binary.Reader, version uint64) (ShaderDefinition, error) {
	var s ShaderDefinition
	stageName := r.String()
	stageIndex := r.Uint8()
	if r.Error() != nil {
		return s, FormatError{Reason: r.Error().Error()}
	}
	stage, err := StageOfName(stageName)
	if err != nil {
		return s, err
	}
	if uint8(stage) != stageIndex {
		return s, formatErrf("stage %q disagrees with stage index %d", stageName, stageIndex)
	}
	s.Stage = stage

	platformName := r.String()
	platformIndex := r.Uint8()
	if r.Error() != nil {
		return s, FormatError{Reason: r.Error().Error()}
	}
	platform, err := PlatformOfName(platformName)
	if err != nil {
		return s, err
	}
	wire, err := WireIndex(platform, version)
	if err != nil {
		return s, err
	}
	if wire != platformIndex {
		return s, formatErrf("platform %q disagrees with wire index %d under version %d",
			platformName, platformIndex, version)
	}
	// The stored platform is the canonical owner of the wire slot, so a
	// ESSL_300 alias read under version 25 and later surfaces as ESSL_310.
	if s.Platform, err = PlatformOfWireIndex(platformIndex, version); err != nil {
		return s, err
	}

	inputCount := r.Uint16()
	for i := uint16(0); i < inputCount && r.Error() == nil; i++ {
		in, err := readInput(r)
		if err != nil {
			return s, err
		}
		s.Inputs = append(s.Inputs, in)
	}
	s.Hash = r.Uint64()
	wrapperBytes := r.ByteArray()
	if err := r.Error(); err != nil {
		return s, FormatError{Reason: err.Error()}
	}
	if s.Shader, err = DecodeWrapper(wrapperBytes, s.Platform, s.Stage); err != nil {
		return s, err
	}
	return s, nil
}

func readInput(r binary.Reader) (ShaderInput, error) {
	var in ShaderInput
	in.Name = r.String()
	if t := r.Uint8(); t <= uint8(InputMat4) {
		in.Type = InputType(t)
	} else if r.Error() == nil {
		return in, formatErrf("input %q: bad type %d", in.Name, t)
	}
	if s := r.Uint8(); s <= uint8(SemanticFrontFacing) {
		in.Semantic = SemanticIndex(s)
	} else if r.Error() == nil {
		return in, formatErrf("input %q: bad semantic %d", in.Name, s)
	}
	in.SemanticSubIndex = r.Uint8()
	in.PerInstance = r.Bool()
	if r.Bool() {
		p := r.Uint8()
		if r.Error() == nil && p > uint8(PrecisionHighp) {
			return in, formatErrf("input %q: bad precision %d", in.Name, p)
		}
		precision := Precision(p)
		in.Precision = &precision
	}
	if r.Bool() {
		i := r.Uint8()
		if r.Error() == nil && i > uint8(InterpolationCentroid) {
			return in, formatErrf("input %q: bad interpolation %d", in.Name, i)
		}
		interpolation := Interpolation(i)
		in.Interpolation = &interpolation
	}
	return in, nil
}
