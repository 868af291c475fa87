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
	"fmt"
	"strings"
	"time"

	"github.com/rdtools/matc/matc/material"
)

// PlatformVaryings is the shader input set collected from one platform's
// shader definitions within a pass.
type PlatformVaryings struct {
	Platform material.Platform
	Inputs   []material.ShaderInput
}

// shaderLanguage maps a platform to the language test used in varying
// definition files.
type shaderLanguage struct {
	lang    string
	version int
}

var platformLanguages = map[material.Platform]shaderLanguage{
	material.PlatformGLSL120:      {"GLSL", 120},
	material.PlatformGLSL430:      {"GLSL", 430},
	material.PlatformESSL100:      {"GLSL", 100},
	material.PlatformESSL300:      {"GLSL", 300},
	material.PlatformESSL310:      {"GLSL", 310},
	material.PlatformMetal:        {"METAL", 1},
	material.PlatformVulkan:       {"SPIRV", 1},
	material.PlatformNvn:          {"SPIRV", 2},
	material.PlatformDirect3DSM40: {"HLSL", 400},
	material.PlatformDirect3DSM50: {"HLSL", 500},
	material.PlatformDirect3DSM60: {"HLSL", 600},
	material.PlatformDirect3DSM65: {"HLSL", 650},
	material.PlatformDirect3DXB1:  {"HLSL", 1000},
	material.PlatformDirect3DXBX:  {"HLSL", 1010},
	material.PlatformHlsl:         {"HLSL", 1},
}

// RestoreVaryingDef rebuilds a single varying definition text from the per
// platform shader input sets of a pass. Per-platform differences collapse
// into language version conditionals by pushing the per-platform texts
// through the decompiler once more, with text normalization disabled.
func RestoreVaryingDef(sets []PlatformVaryings, timeout time.Duration) (string, error) {
	perms := make([]Permutation, 0, len(sets))
	for _, s := range sets {
		perms = append(perms, Permutation{
			Code:  formatVaryings(s.Inputs),
			Flags: Assignment{{Name: "platform", Value: s.Platform.String()}},
		})
	}
	result, err := Decompile(perms, Options{Preprocess: false, SearchTimeout: timeout})
	if err != nil {
		return "", err
	}
	return replacePlatformMacros(result.Code), nil
}

// formatVaryings renders one platform's inputs, column aligning the a_, i_
// and v_ declaration groups.
func formatVaryings(inputs []material.ShaderInput) string {
	type row struct {
		qualifier string
		name      string
		semantic  string
		group     string
	}
	rows := make([]row, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		var parts []string
		if in.Precision != nil && *in.Precision != material.PrecisionNone {
			parts = append(parts, strings.ToLower(in.Precision.String()))
		}
		if in.Interpolation != nil {
			parts = append(parts, strings.ToLower(in.Interpolation.String()))
		}
		parts = append(parts, in.Type.String())
		name := varyingName(in)
		rows = append(rows, row{
			qualifier: strings.Join(parts, " "),
			name:      name,
			semantic:  semanticName(in),
			group:     varyingGroup(name),
		})
	}

	var out []string
	for i := 0; i < len(rows); {
		j := i
		qualWidth, nameWidth := 0, 0
		for j < len(rows) && rows[j].group == rows[i].group {
			if n := len(rows[j].qualifier); n > qualWidth {
				qualWidth = n
			}
			if n := len(rows[j].name); n > nameWidth {
				nameWidth = n
			}
			j++
		}
		for ; i < j; i++ {
			out = append(out, fmt.Sprintf("%-*s %-*s : %s;",
				qualWidth, rows[i].qualifier, nameWidth, rows[i].name, rows[i].semantic))
		}
	}
	return strings.Join(out, "\n")
}

func varyingName(in *material.ShaderInput) string {
	if !in.PerInstance {
		return in.Name
	}
	if strings.HasPrefix(in.Name, "a_") {
		return "i_" + strings.TrimPrefix(in.Name, "a_")
	}
	if strings.HasPrefix(in.Name, "i_") {
		return in.Name
	}
	return "i_" + in.Name
}

func varyingGroup(name string) string {
	if len(name) >= 2 && name[1] == '_' {
		return name[:2]
	}
	return ""
}

func semanticName(in *material.ShaderInput) string {
	s := in.Semantic.String()
	switch in.Semantic {
	case material.SemanticTexcoord, material.SemanticColor:
		return fmt.Sprintf("%s%d", s, in.SemanticSubIndex)
	default:
		return s
	}
}

// replacePlatformMacros rewrites the synthesized per-platform conditionals
// into the language version tests a varying definition file uses.
func replacePlatformMacros(code string) string {
	for p, l := range platformLanguages {
		macro := upperSnake("platform" + p.String())
		test := fmt.Sprintf("BGFX_SHADER_LANGUAGE_%s == %d", l.lang, l.version)
		code = strings.ReplaceAll(code, "#ifdef "+macro, "#if "+test)
		code = strings.ReplaceAll(code, "#ifndef "+macro,
			fmt.Sprintf("#if BGFX_SHADER_LANGUAGE_%s != %d", l.lang, l.version))
		code = strings.ReplaceAll(code, "defined("+macro+")", "("+test+")")
	}
	return code
}
