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

package decompile

import (
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

func input(name string, t material.InputType, s material.SemanticIndex, sub uint8) material.ShaderInput {
	return material.ShaderInput{Name: name, Type: t, Semantic: s, SemanticSubIndex: sub}
}

func TestFormatVaryings(t *testing.T) {
	ctx := log.Testing(t)
	precision := material.PrecisionHighp
	inputs := []material.ShaderInput{
		input("a_position", material.InputVec3, material.SemanticPosition, 0),
		input("a_texcoord0", material.InputVec2, material.SemanticTexcoord, 0),
		{
			Name: "i_data0", Type: material.InputVec4,
			Semantic: material.SemanticTexcoord, SemanticSubIndex: 4,
			PerInstance: true,
		},
		{
			Name: "v_color0", Type: material.InputVec4,
			Semantic: material.SemanticColor, Precision: &precision,
		},
	}
	got := formatVaryings(inputs)
	assert.For(ctx, "text").ThatString(got).Equals(
		"vec3 a_position  : POSITION;\n" +
			"vec2 a_texcoord0 : TEXCOORD0;\n" +
			"vec4 i_data0 : TEXCOORD4;\n" +
			"highp vec4 v_color0 : COLOR0;")
}

func TestRestoreVaryingDefCollapsesPlatforms(t *testing.T) {
	ctx := log.Testing(t)
	common := []material.ShaderInput{
		input("a_position", material.InputVec3, material.SemanticPosition, 0),
	}
	// The extra name has the same width as a_position so the shared line
	// aligns identically on both platforms and survives the diff.
	extended := append([]material.ShaderInput{}, common...)
	extended = append(extended,
		input("a_texcoord", material.InputVec2, material.SemanticTexcoord, 0))

	got, err := RestoreVaryingDef([]PlatformVaryings{
		{Platform: material.PlatformESSL310, Inputs: extended},
		{Platform: material.PlatformMetal, Inputs: common},
	}, 0)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "common").ThatString(got).
		HasPrefix("vec3 a_position : POSITION;")
	assert.For(ctx, "conditional").ThatString(got).
		Contains("#if BGFX_SHADER_LANGUAGE_GLSL == 310\nvec2 a_texcoord : TEXCOORD0;\n#endif")
	assert.For(ctx, "no raw macro").ThatString(got).DoesNotContain("PLATFORM_ESSL_310")
}

func TestVaryingName(t *testing.T) {
	ctx := log.Testing(t)
	in := material.ShaderInput{Name: "a_offset", PerInstance: true}
	assert.For(ctx, "instance").ThatString(varyingName(&in)).Equals("i_offset")
	in = material.ShaderInput{Name: "v_fog"}
	assert.For(ctx, "varying").ThatString(varyingName(&in)).Equals("v_fog")
}
