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

import "github.com/rdtools/matc/matc/material"

// PassPermutations collects the decompiler inputs for one (platform, stage)
// of a pass: each supported variant's shader text paired with its flag
// assignment, in variant order.
func PassPermutations(p *material.Pass, platform material.Platform, stage material.Stage) []Permutation {
	var out []Permutation
	for vi := range p.Variants {
		v := &p.Variants[vi]
		if !v.IsSupported {
			continue
		}
		for si := range v.Shaders {
			s := &v.Shaders[si]
			if s.Platform != platform || s.Stage != stage {
				continue
			}
			flags := make(Assignment, len(v.Flags))
			for i, f := range v.Flags {
				flags[i] = Flag{Name: f.Name, Value: f.Value}
			}
			out = append(out, Permutation{
				Code:  string(s.Shader.ShaderBytes),
				Flags: flags,
			})
		}
	}
	return out
}

// PassVaryings collects the per-platform shader input sets of a pass, for
// varying definition restoration. Inputs are deduplicated by name per
// platform, keeping first-seen order.
func PassVaryings(p *material.Pass) []PlatformVaryings {
	index := map[material.Platform]int{}
	var out []PlatformVaryings
	seen := map[material.Platform]map[string]bool{}
	for vi := range p.Variants {
		for si := range p.Variants[vi].Shaders {
			s := &p.Variants[vi].Shaders[si]
			i, ok := index[s.Platform]
			if !ok {
				i = len(out)
				index[s.Platform] = i
				out = append(out, PlatformVaryings{Platform: s.Platform})
				seen[s.Platform] = map[string]bool{}
			}
			for _, in := range s.Inputs {
				if seen[s.Platform][in.Name] {
					continue
				}
				seen[s.Platform][in.Name] = true
				out[i].Inputs = append(out[i].Inputs, in)
			}
		}
	}
	return out
}

// PlatformStage is one (platform, stage) combination a pass stores shaders
// for.
type PlatformStage struct {
	Platform material.Platform
	Stage    material.Stage
}

// PassPlatformStages lists the distinct (platform, stage) combinations a
// pass stores shaders for, in first-seen order.
func PassPlatformStages(p *material.Pass) []PlatformStage {
	seen := map[PlatformStage]bool{}
	var out []PlatformStage
	for vi := range p.Variants {
		for si := range p.Variants[vi].Shaders {
			s := &p.Variants[vi].Shaders[si]
			k := PlatformStage{s.Platform, s.Stage}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
