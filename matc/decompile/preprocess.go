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
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blankRunRe     = regexp.MustCompile(`\n[ \t]*\n+`)

	vertexStageRe = regexp.MustCompile(`(?m)^#define varying out$`)

	engineUniformRe = regexp.MustCompile(`(?m)^[ \t]*uniform\s+(?:\w+\s+)*u_\w+(?:\s*\[[^\]\n]*\])?\s*;[^\n]*\n?`)
	outLineRe       = regexp.MustCompile(`(?m)^out\s+[^;\n]*;[ \t]*\n?`)

	defineLineRe    = regexp.MustCompile(`(?m)^#define[^\n]*\n?`)
	ifBlockOneRe    = regexp.MustCompile(`(?m)^#if[^\n]*#endif[^\n]*\n?`)
	ifBlockMultiRe  = regexp.MustCompile(`(?s)#if[^\n]*\n.*?#endif[^\n]*\n?`)
	extensionLineRe = regexp.MustCompile(`(?m)^#extension[^\n]*\n?`)
	versionLineRe   = regexp.MustCompile(`(?m)^#version[^\n]*\n?`)

	attributeDeclRe = regexp.MustCompile(`(?m)^[ \t]*attribute\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	varyingDeclRe   = regexp.MustCompile(`(?m)^[ \t]*(?:(?:flat|smooth|noperspective|centroid)\s+)?varying\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)

	samplerDeclRe = regexp.MustCompile(`(?m)^[ \t]*uniform\s+(?:(?:lowp|mediump|highp)\s+)?([iu]?sampler\w+)\s+(\w+)\s*;`)
	ssboDeclRe    = regexp.MustCompile(`(?ms)^[ \t]*layout\s*\(\s*std430[^)]*\)\s*(readonly|writeonly)?\s*buffer\s+(\w+)\s*\{\s*(\w+).*?\}\s*;?[ \t]*$`)
	imageDeclRe   = regexp.MustCompile(`(?m)^[ \t]*layout\s*\(\s*(\w+)[^)]*\)\s*(readonly|writeonly)?\s*uniform\s+highp\s+(u?)image(2DArray|2D|3D)\s+(\w+)\s*;`)
	localSizeRe   = regexp.MustCompile(`(?m)^[ \t]*layout\s*\(\s*local_size_x\s*=\s*(\d+)\s*,\s*local_size_y\s*=\s*(\d+)\s*,\s*local_size_z\s*=\s*(\d+)\s*\)\s*in\s*;`)
)

// samplerMacros maps a GLSL sampler type to the matching AUTOREG macro.
var samplerMacros = map[string]string{
	"sampler2D":            "SAMPLER2D_AUTOREG",
	"sampler2DArray":       "SAMPLER2DARRAY_AUTOREG",
	"sampler2DShadow":      "SAMPLER2DSHADOW_AUTOREG",
	"sampler2DArrayShadow": "SAMPLER2DARRAYSHADOW_AUTOREG",
	"sampler3D":            "SAMPLER3D_AUTOREG",
	"samplerCube":          "SAMPLERCUBE_AUTOREG",
	"samplerCubeArray":     "SAMPLERCUBEARRAY_AUTOREG",
	"samplerBuffer":        "SAMPLERBUFFER_AUTOREG",
	"isampler2D":           "ISAMPLER2D_AUTOREG",
	"usampler2D":           "USAMPLER2D_AUTOREG",
	"isampler3D":           "ISAMPLER3D_AUTOREG",
	"usampler3D":           "USAMPLER3D_AUTOREG",
	"isampler2DArray":      "ISAMPLER2DARRAY_AUTOREG",
	"usampler2DArray":      "USAMPLER2DARRAY_AUTOREG",
}

// preprocess normalizes one variant text before diffing: comments and blank
// runs go away, and engine-generated declarations are folded back into the
// source-level pseudo directives and AUTOREG macros they came from.
func preprocess(code string) string {
	code = blockCommentRe.ReplaceAllString(code, "")
	code = lineCommentRe.ReplaceAllString(code, "")
	code = blankRunRe.ReplaceAllString(code, "\n")
	code = strings.Trim(code, "\n")
	return rewriteBackend(code)
}

func rewriteBackend(code string) string {
	// The stage has to be sniffed before the #define lines are dropped.
	isVertex := vertexStageRe.MatchString(code)

	code = engineUniformRe.ReplaceAllString(code, "")
	code = strings.ReplaceAll(code, "bgfx_FragColor", "gl_FragColor")
	code = strings.ReplaceAll(code, "bgfx_FragData", "gl_FragData")
	code = outLineRe.ReplaceAllString(code, "")

	code = ifBlockOneRe.ReplaceAllString(code, "")
	code = ifBlockMultiRe.ReplaceAllString(code, "")
	code = defineLineRe.ReplaceAllString(code, "")
	code = extensionLineRe.ReplaceAllString(code, "")
	code = versionLineRe.ReplaceAllString(code, "")

	code = attributeDeclRe.ReplaceAllString(code, "$$input $1")
	if isVertex {
		code = varyingDeclRe.ReplaceAllString(code, "$$output $1")
	} else {
		code = varyingDeclRe.ReplaceAllString(code, "$$input $1")
	}

	code = samplerDeclRe.ReplaceAllStringFunc(code, func(match string) string {
		sub := samplerDeclRe.FindStringSubmatch(match)
		macro, ok := samplerMacros[sub[1]]
		if !ok {
			return match
		}
		return macro + "(" + sub[2] + ")"
	})

	code = ssboDeclRe.ReplaceAllStringFunc(code, func(match string) string {
		sub := ssboDeclRe.FindStringSubmatch(match)
		return "BUFFER_" + accessSuffix(sub[1]) + "_AUTOREG(" + sub[2] + ", " + sub[3] + ")"
	})

	code = imageDeclRe.ReplaceAllStringFunc(code, func(match string) string {
		sub := imageDeclRe.FindStringSubmatch(match)
		prefix := ""
		if sub[3] == "u" {
			prefix = "U"
		}
		kind := map[string]string{"2D": "2D", "2DArray": "2D_ARRAY", "3D": "3D"}[sub[4]]
		return prefix + "IMAGE" + kind + "_" + accessSuffix(sub[2]) +
			"_AUTOREG(" + sub[5] + ", " + sub[1] + ")"
	})

	code = localSizeRe.ReplaceAllString(code, "NUM_THREADS($1, $2, $3)")

	code = blankRunRe.ReplaceAllString(code, "\n")
	return strings.Trim(code, "\n")
}

func accessSuffix(qualifier string) string {
	switch strings.TrimSpace(qualifier) {
	case "readonly":
		return "RO"
	case "writeonly":
		return "WR"
	default:
		return "RW"
	}
}
