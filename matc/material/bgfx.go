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
)

// Wrapper versions by stage kind. Vertex and fragment wrappers are version
// 5, compute wrappers version 3.
const (
	wrapperVersionGraphics = 5
	wrapperVersionCompute  = 3
)

// BackendShaderWrapper is the back-end specific sub-container holding one
// compiled shader blob plus its per-blob uniform and attribute metadata.
type BackendShaderWrapper struct {
	// Tag is the three character kind: "VSH", "FSH" or "CSH".
	Tag string
	// Version is 5 for VSH/FSH and 3 for CSH.
	Version uint8
	Hash    uint64
	// Uniforms declared by the blob.
	Uniforms []BackendUniform
	// GroupSize is only serialized for Metal compute shaders.
	GroupSize [3]uint16
	// ShaderBytes is the compiled blob.
	ShaderBytes []byte
	// Attributes and Size form the optional trailing block; Size == -1
	// means the whole block is absent on the wire.
	Attributes []uint16
	Size       int32
}

// BackendUniform is one uniform record of a wrapper.
type BackendUniform struct {
	Name     string
	TypeBits uint8
	Count    uint8
	RegIndex uint16
	RegCount uint16
}

// NewWrapper returns an empty wrapper of the right tag and version for the
// stage, as produced by the compilation pipeline.
func NewWrapper(stage Stage, shaderBytes []byte) BackendShaderWrapper {
	w := BackendShaderWrapper{
		Hash:        0,
		ShaderBytes: shaderBytes,
		Size:        -1,
	}
	switch stage {
	case StageCompute:
		w.Tag, w.Version = "CSH", wrapperVersionCompute
	case StageFragment:
		w.Tag, w.Version = "FSH", wrapperVersionGraphics
	default:
		w.Tag, w.Version = "VSH", wrapperVersionGraphics
	}
	return w
}

func validWrapper(tag string, version uint8) bool {
	switch tag {
	case "VSH", "FSH":
		return version == wrapperVersionGraphics
	case "CSH":
		return version == wrapperVersionCompute
	default:
		return false
	}
}

// readWrapper decodes a wrapper from r. The platform and stage select the
// presence of the group size block.
func readWrapper(r binary.Reader, platform Platform, stage Stage) (BackendShaderWrapper, error) {
	w := BackendShaderWrapper{Size: -1}
	tag := make([]byte, 3)
	r.Data(tag)
	w.Tag = string(tag)
	w.Version = r.Uint8()
	if r.Error() == nil && !validWrapper(w.Tag, w.Version) {
		return w, formatErrf("bad shader wrapper magic %q version %d", w.Tag, w.Version)
	}
	w.Hash = r.Uint64()
	count := r.Uint16()
	for i := uint16(0); i < count && r.Error() == nil; i++ {
		var u BackendUniform
		n := r.Uint8()
		name := r.Bytes(uint32(n))
		u.Name = string(name)
		u.TypeBits = r.Uint8()
		u.Count = r.Uint8()
		u.RegIndex = r.Uint16()
		u.RegCount = r.Uint16()
		w.Uniforms = append(w.Uniforms, u)
	}
	if platform == PlatformMetal && stage == StageCompute {
		for i := range w.GroupSize {
			w.GroupSize[i] = r.Uint16()
		}
	}
	w.ShaderBytes = r.ByteArray()
	if pad := r.Uint8(); r.Error() == nil && pad != 0 {
		return w, formatErrf("bad shader wrapper padding byte %#x", pad)
	}
	if r.Remaining() > 0 {
		n := r.Uint8()
		for i := uint8(0); i < n && r.Error() == nil; i++ {
			w.Attributes = append(w.Attributes, r.Uint16())
		}
		w.Size = int32(r.Uint16())
	}
	if err := r.Error(); err != nil {
		return w, FormatError{Reason: err.Error()}
	}
	if r.Remaining() > 0 {
		return w, formatErrf("%d trailing bytes after shader wrapper", r.Remaining())
	}
	return w, nil
}

// writeWrapper encodes the wrapper to w. The platform and stage select the
// presence of the group size block.
func (s *BackendShaderWrapper) writeWrapper(w binary.Writer, platform Platform, stage Stage) error {
	if !validWrapper(s.Tag, s.Version) {
		return formatErrf("bad shader wrapper magic %q version %d", s.Tag, s.Version)
	}
	w.Data([]byte(s.Tag))
	w.Uint8(s.Version)
	w.Uint64(s.Hash)
	w.Uint16(uint16(len(s.Uniforms)))
	for _, u := range s.Uniforms {
		w.Uint8(uint8(len(u.Name)))
		w.Data([]byte(u.Name))
		w.Uint8(u.TypeBits)
		w.Uint8(u.Count)
		w.Uint16(u.RegIndex)
		w.Uint16(u.RegCount)
	}
	if platform == PlatformMetal && stage == StageCompute {
		for _, g := range s.GroupSize {
			w.Uint16(g)
		}
	}
	w.ByteArray(s.ShaderBytes)
	w.Uint8(0)
	if s.Size != -1 {
		w.Uint8(uint8(len(s.Attributes)))
		for _, a := range s.Attributes {
			w.Uint16(a)
		}
		w.Uint16(uint16(s.Size))
	}
	return w.Error()
}

// Encode serializes the wrapper to the bytes stored inside a
// ShaderDefinition.
func (s *BackendShaderWrapper) Encode(platform Platform, stage Stage) ([]byte, error) {
	w := endian.Writer()
	if err := s.writeWrapper(w, platform, stage); err != nil {
		return nil, err
	}
	return w.Finish()
}

// DecodeWrapper parses the wrapper bytes stored inside a ShaderDefinition.
func DecodeWrapper(data []byte, platform Platform, stage Stage) (BackendShaderWrapper, error) {
	return readWrapper(endian.Reader(data), platform, stage)
}
