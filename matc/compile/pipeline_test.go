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

package compile_test

import (
	"context"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/compile"
	"github.com/rdtools/matc/matc/material"
)

// fakeCompiler records every input and answers from a canned table.
type fakeCompiler struct {
	inputs   []compile.CompileInput
	output   compile.CompileOutput
	fail     bool
	released int
}

func (f *fakeCompiler) Compile(ctx context.Context, in compile.CompileInput) (compile.CompileOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.fail {
		return compile.CompileOutput{Diagnostics: "syntax error at line 3"}, nil
	}
	return f.output, nil
}

func (f *fakeCompiler) Release() { f.released++ }

func manifest() *compile.MaterialManifest {
	return &compile.MaterialManifest{
		MaterialName:    "RTXPostFX",
		PassName:        "Bloom",
		CompilerOptions: []string{"-O3"},
		Shaders: []compile.ShaderEntry{{
			Name:            "BloomCS",
			FileName:        "bloom.hlsl",
			Stage:           material.StageCompute,
			EntryPoint:      "CSMain",
			TargetProfile:   "cs_6_5",
			Defines:         map[string]string{"__PASS_X__": "1", "FOO": "(override)"},
			CompilerOptions: []string{"-Zpr"},
		}},
	}
}

func options() compile.Options {
	return compile.Options{
		Platform:        material.PlatformDirect3DSM65,
		UserDefines:     map[string]string{"FOO": "(1)", "USER_ONLY": "u"},
		RegisterDefines: map[string]string{"s_Buf_REG": "3", "FOO": "(reg)"},
		IncludePaths:    []string{"include"},
		AdditionalArgs:  []string{"-HV", "2021"},
	}
}

func sources() compile.Source {
	return compile.MapSource{"bloom.hlsl": []byte("[numthreads(8,8,1)] void CSMain() {}")}
}

func TestPipeline(t *testing.T) {
	ctx := log.Testing(t)
	fake := &fakeCompiler{output: compile.CompileOutput{
		Success:     true,
		ObjectBytes: []byte{0x44, 0x58, 0x49, 0x4c},
	}}

	m, err := compile.Compile(ctx, manifest(), options(), fake, sources())
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "calls").That(len(fake.inputs)).Equals(1)

	in := fake.inputs[0]
	assert.For(ctx, "source").ThatString(string(in.Source)).Contains("CSMain")
	assert.For(ctx, "entry").ThatString(in.EntryPoint).Equals("CSMain")
	assert.For(ctx, "profile").ThatString(in.TargetProfile).Equals("cs_6_5")
	// Deep merge, rightmost wins: per-shader beats register beats user.
	assert.For(ctx, "defines").That(in.Defines).DeepEquals(map[string]string{
		"FOO":        "(override)",
		"USER_ONLY":  "u",
		"s_Buf_REG":  "3",
		"__PASS_X__": "1",
	})
	assert.For(ctx, "args").That(in.Args).DeepEquals([]string{"-HV", "2021", "-O3", "-Zpr"})
	assert.For(ctx, "includes").That(in.IncludePaths).DeepEquals([]string{"include"})

	// The assembled material: version 25, one pass, one supported variant
	// with no flags, an all-on platform mask, and a fresh wrapper.
	assert.For(ctx, "version").That(m.Version).Equals(material.MaxVersion)
	assert.For(ctx, "name").ThatString(m.Name).Equals("RTXPostFX")
	assert.For(ctx, "passes").That(len(m.Passes)).Equals(1)
	p := &m.Passes[0]
	assert.For(ctx, "pass name").ThatString(p.Name).Equals("Bloom")
	assert.For(ctx, "blend").That(p.DefaultBlendMode).Equals(material.BlendUnspecified)
	assert.For(ctx, "fallback").ThatString(p.FallbackPass).Equals("")
	assert.For(ctx, "binding").That(p.FramebufferBinding).Equals(uint32(0))
	assert.For(ctx, "platforms").ThatString(p.SupportedPlatforms.Bitstring(m.Version)).
		Equals("11111111111111")
	assert.For(ctx, "variants").That(len(p.Variants)).Equals(1)
	v := &p.Variants[0]
	assert.For(ctx, "supported").That(v.IsSupported).IsTrue()
	assert.For(ctx, "flags").That(len(v.Flags)).Equals(0)
	assert.For(ctx, "shaders").That(len(v.Shaders)).Equals(1)
	s := &v.Shaders[0]
	assert.For(ctx, "stage").That(s.Stage).Equals(material.StageCompute)
	assert.For(ctx, "platform").That(s.Platform).Equals(material.PlatformDirect3DSM65)
	assert.For(ctx, "hash").That(s.Hash).Equals(uint64(0))
	assert.For(ctx, "tag").ThatString(s.Shader.Tag).Equals("CSH")
	assert.For(ctx, "wrapper version").That(s.Shader.Version).Equals(uint8(3))
	assert.For(ctx, "blob").ThatSlice(s.Shader.ShaderBytes).Equals([]byte{0x44, 0x58, 0x49, 0x4c})
	assert.For(ctx, "no attributes").That(s.Shader.Size).Equals(int32(-1))
}

// The compiled container is a valid version 25 material that round trips.
func TestPipelineRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	fake := &fakeCompiler{output: compile.CompileOutput{
		Success:     true,
		ObjectBytes: []byte{1, 2, 3, 4, 5},
	}}
	data, err := compile.CompileBytes(ctx, manifest(), options(), fake, sources())
	assert.For(ctx, "compile").ThatError(err).Succeeded()
	m, err := material.Read(data)
	assert.For(ctx, "read").ThatError(err).Succeeded()
	again, err := material.Write(m)
	assert.For(ctx, "write").ThatError(err).Succeeded()
	assert.For(ctx, "bytes").ThatSlice(again).Equals(data)
}

func TestPipelineCompilationError(t *testing.T) {
	ctx := log.Testing(t)
	fake := &fakeCompiler{fail: true}
	_, err := compile.Compile(ctx, manifest(), options(), fake, sources())
	cerr, ok := err.(compile.CompilationError)
	assert.For(ctx, "kind").That(ok).IsTrue()
	assert.For(ctx, "file").ThatString(cerr.FileName).Equals("bloom.hlsl")
	assert.For(ctx, "diagnostics").ThatString(cerr.Diagnostics).Contains("syntax error")
}

func TestPipelineMissingSource(t *testing.T) {
	ctx := log.Testing(t)
	fake := &fakeCompiler{}
	_, err := compile.Compile(ctx, manifest(), options(), fake, compile.MapSource{})
	assert.For(ctx, "err").ThatError(err).
		Equals(compile.SourceNotFoundError{FileName: "bloom.hlsl"})
	assert.For(ctx, "no calls").That(len(fake.inputs)).Equals(0)
}

// Shaders compile in manifest order, and the first failure aborts the rest.
func TestPipelineOrderAndAbort(t *testing.T) {
	ctx := log.Testing(t)
	m := manifest()
	m.Shaders = append(m.Shaders, compile.ShaderEntry{
		Name: "Second", FileName: "missing.hlsl", Stage: material.StageVertex,
		EntryPoint: "VSMain", TargetProfile: "vs_6_5",
	}, compile.ShaderEntry{
		Name: "Third", FileName: "bloom.hlsl", Stage: material.StageFragment,
		EntryPoint: "PSMain", TargetProfile: "ps_6_5",
	})
	fake := &fakeCompiler{output: compile.CompileOutput{Success: true, ObjectBytes: []byte{1}}}
	_, err := compile.Compile(ctx, m, options(), fake, sources())
	assert.For(ctx, "err").ThatError(err).
		Equals(compile.SourceNotFoundError{FileName: "missing.hlsl"})
	// Only the first shader was handed to the compiler.
	assert.For(ctx, "calls").That(len(fake.inputs)).Equals(1)
}

func TestRegisterDefines(t *testing.T) {
	ctx := log.Testing(t)
	base := &material.Material{
		Version: 25,
		Name:    "Base",
		Buffers: []material.MaterialBuffer{
			{Name: "MatTexture", Reg1: 3},
			{Name: "LightData", Reg1: 12},
		},
	}
	got := compile.RegisterDefines(base)
	assert.For(ctx, "defines").That(got).DeepEquals(map[string]string{
		"s_MatTexture_REG": "3",
		"s_LightData_REG":  "12",
	})
}

func TestMergeDefines(t *testing.T) {
	ctx := log.Testing(t)
	got := compile.MergeDefines(
		map[string]string{"A": "1", "B": "1"},
		map[string]string{"B": "2", "C": "2"},
		map[string]string{"C": "3"},
	)
	assert.For(ctx, "merged").That(got).DeepEquals(map[string]string{
		"A": "1", "B": "2", "C": "3",
	})
}
