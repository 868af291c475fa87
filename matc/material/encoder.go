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

// Write serializes the material to container bytes.
func Write(m *Material) ([]byte, error) {
	if m.Version < MinVersion || m.Version > MaxVersion {
		return nil, UnsupportedVersionError{Version: m.Version}
	}
	if m.Encryption == EncryptionKeyPair {
		return nil, EncryptionError{Reason: "key-pair encryption is unsupported"}
	}

	body := endian.Writer()
	if err := writeBody(body, m); err != nil {
		return nil, err
	}
	body.Uint64(Magic)
	bodyBytes, err := body.Finish()
	if err != nil {
		return nil, FormatError{Reason: err.Error()}
	}

	w := endian.Writer()
	w.Uint64(Magic)
	w.String(Identifier)
	w.Uint64(m.Version)
	tag := []byte(m.Encryption.Tag())
	reverse4(tag)
	w.Data(tag)

	switch m.Encryption {
	case EncryptionNone:
		w.Data(bodyBytes)
	case EncryptionSimplePassphrase:
		if len(m.EncryptionKey) == 0 || len(m.EncryptionNonce) == 0 {
			return nil, EncryptionError{Reason: "passphrase encryption needs a key and nonce"}
		}
		ciphertext, err := crypt.Apply(m.EncryptionKey, m.EncryptionNonce, bodyBytes)
		if err != nil {
			return nil, EncryptionError{Reason: err.Error()}
		}
		w.ByteArray(m.EncryptionKey)
		w.ByteArray(m.EncryptionNonce)
		w.ByteArray(ciphertext)
	}

	out, err := w.Finish()
	if err != nil {
		return nil, FormatError{Reason: err.Error()}
	}
	return out, nil
}

func writeBody(w binary.Writer, m *Material) error {
	w.String(m.Name)
	w.Bool(m.Parent != "")
	if m.Parent != "" {
		w.String(m.Parent)
	}

	w.Uint8(uint8(len(m.Buffers)))
	for i := range m.Buffers {
		writeBuffer(w, &m.Buffers[i], m.Version)
	}

	w.Uint16(uint16(len(m.Uniforms)))
	for i := range m.Uniforms {
		writeUniform(w, &m.Uniforms[i])
	}

	if m.hasOverrideBlock() {
		w.Uint16(uint16(len(m.UniformOverrides)))
		for _, o := range m.UniformOverrides {
			w.String(o.Name)
			w.String(o.Value)
		}
	}

	w.Uint16(uint16(len(m.Passes)))
	for i := range m.Passes {
		if err := writePass(w, &m.Passes[i], m.Version); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeBuffer(w binary.Writer, b *MaterialBuffer, version uint64) {
	w.String(b.Name)
	w.Uint16(b.Reg1)
	w.Uint8(uint8(b.Access))
	w.Uint8(uint8(b.Precision))
	w.Bool(b.UnorderedAccess)
	w.Uint8(b.Reg2)
	w.Uint8(uint8(b.Type))
	w.String(b.TextureFormat)
	w.Uint64(b.AlwaysOne)
	w.Bool(b.SamplerState != nil)
	if b.SamplerState != nil {
		w.Uint8(uint8(b.SamplerState.Filter) | uint8(b.SamplerState.Wrap)<<1)
	}
	w.Bool(b.DefaultTexture != nil)
	if b.DefaultTexture != nil {
		w.String(*b.DefaultTexture)
	}
	if version >= 24 {
		w.Bool(b.TexturePath != nil)
		if b.TexturePath != nil {
			w.String(*b.TexturePath)
		}
	}
	w.Bool(b.CustomTypeInfo != nil)
	if b.CustomTypeInfo != nil {
		w.String(b.CustomTypeInfo.Struct)
		w.Uint64(b.CustomTypeInfo.Size)
	}
}

func writeUniform(w binary.Writer, u *Uniform) {
	w.String(u.Name)
	w.Uint16(uint16(u.Type))
	if u.Type == UniformExternal {
		return
	}
	w.Uint32(u.Count)
	w.Bool(u.Default != nil)
	if u.Default != nil {
		w.Float32Array(u.Default)
	}
}

func writePass(w binary.Writer, p *Pass, version uint64) error {
	w.String(p.Name)
	w.String(p.SupportedPlatforms.Bitstring(version))
	w.String(p.FallbackPass)
	w.Uint16(uint16(p.DefaultBlendMode))
	w.Uint16(uint16(len(p.DefaultVariant)))
	for _, d := range p.DefaultVariant {
		w.String(d.Name)
		w.String(d.Value)
	}
	if version >= 23 {
		w.Uint32(p.FramebufferBinding)
	}
	w.Uint16(uint16(len(p.Variants)))
	for i := range p.Variants {
		if err := writeVariant(w, &p.Variants[i], version); err != nil {
			return err
		}
	}
	return nil
}

func writeVariant(w binary.Writer, v *Variant, version uint64) error {
	w.Bool(v.IsSupported)
	w.Uint16(uint16(len(v.Flags)))
	for _, f := range v.Flags {
		w.String(f.Name)
		w.String(f.Value)
	}
	w.Uint16(uint16(len(v.Shaders)))
	for i := range v.Shaders {
		if err := writeShaderDefinition(w, &v.Shaders[i], version); err != nil {
			return err
		}
	}
	return nil
}

func writeShaderDefinition(w binary.Writer, s *ShaderDefinition, version uint64) error {
	w.String(s.Stage.String())
	w.Uint8(uint8(s.Stage))

	// The wire index is re-derived from the platform so a ESSL_300 shader
	// written into a version 25 container emits the ESSL_310 name and slot.
	wire, err := WireIndex(s.Platform, version)
	if err != nil {
		return err
	}
	canonical, err := PlatformOfWireIndex(wire, version)
	if err != nil {
		return err
	}
	w.String(canonical.String())
	w.Uint8(wire)

	w.Uint16(uint16(len(s.Inputs)))
	for i := range s.Inputs {
		writeInput(w, &s.Inputs[i])
	}
	w.Uint64(s.Hash)
	wrapped, err := s.Shader.Encode(canonical, s.Stage)
	if err != nil {
		return err
	}
	w.ByteArray(wrapped)
	return w.Error()
}

func writeInput(w binary.Writer, in *ShaderInput) {
	w.String(in.Name)
	w.Uint8(uint8(in.Type))
	w.Uint8(uint8(in.Semantic))
	w.Uint8(in.SemanticSubIndex)
	w.Bool(in.PerInstance)
	w.Bool(in.Precision != nil)
	if in.Precision != nil {
		w.Uint8(uint8(*in.Precision))
	}
	w.Bool(in.Interpolation != nil)
	if in.Interpolation != nil {
		w.Uint8(uint8(*in.Interpolation))
	}
}
