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
)

// assemble renders the grouped main text, then splices every extracted
// function and struct body back into its marker.
func assemble(t *lineTable, main *chunk, functions []*chunk, macros *macroSet) string {
	bodies := map[string]string{}
	structs := map[string]bool{}
	for _, f := range functions {
		bodies[f.name] = renderChunk(t, f, macros)
		structs[f.name] = f.isStruct
	}

	code := renderChunk(t, main, macros)
	code = markerRe.ReplaceAllStringFunc(code, func(marker string) string {
		signature := strings.TrimSuffix(strings.TrimPrefix(marker, markerOpen), markerClose)
		name, _ := markerName(signature)
		body, ok := bodies[name]
		if !ok {
			return marker
		}
		out := signature + " {\n" + body + "\n}"
		if structs[name] {
			out += ";"
		}
		return out
	})
	return code
}

// renderChunk emits the chunk's groups in order, wrapping conditioned
// groups in their synthesized directives and marking approximations.
func renderChunk(t *lineTable, c *chunk, macros *macroSet) string {
	var out []string
	for _, g := range c.groups {
		lines := make([]string, len(g.ids))
		for i, id := range g.ids {
			lines[i] = t.decode(id)
		}
		body := strings.Join(lines, "\n")
		if g.search < 0 {
			out = append(out, body)
			continue
		}
		cond := macros.conditionals[g.search]
		if cond.directive == "" {
			out = append(out, body)
			continue
		}
		block := ""
		if cond.score < cond.total {
			block = fmt.Sprintf("// Approximation, matches %d cases out of %d\n",
				cond.score, cond.total)
		}
		block += cond.directive + "\n" + body + "\n#endif"
		out = append(out, block)
	}
	return strings.Join(out, "\n")
}

// postprocess merges the consecutive $input and $output declarations the
// preprocessor introduced, and flags lines holding constructs that
// historically break under re-preprocessing.
func postprocess(code string) string {
	lines := strings.Split(code, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for _, directive := range []string{"$input ", "$output "} {
			if !strings.HasPrefix(line, directive) {
				continue
			}
			merged := strings.TrimPrefix(line, directive)
			for i+1 < len(lines) && strings.HasPrefix(lines[i+1], directive) {
				merged += ", " + strings.TrimPrefix(lines[i+1], directive)
				i++
			}
			line = directive + merged
			break
		}
		if strings.Contains(line, ") * (") || strings.Contains(line, "][") {
			line += " // Attention!"
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
