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

// flagDef is the local flag dictionary of one context: the discriminating
// flag names in first-seen order, each with its value list.
type flagDef struct {
	names  []string
	values map[string][]string
}

func (d flagDef) key() string {
	out := ""
	for _, n := range d.names {
		out += n + "\x00"
		for _, v := range d.values[n] {
			out += v + "\x01"
		}
		out += "\x02"
	}
	return out
}

// group merges consecutive lines with identical conditions and derives the
// local flag definitions from the chunk's assignment universe.
func (c *chunk) group() {
	c.groups = nil
	for _, l := range c.lines {
		n := len(c.groups)
		if n > 0 && condKey(c.groups[n-1].cond) == condKey(l.cond) {
			c.groups[n-1].ids = append(c.groups[n-1].ids, l.id)
			continue
		}
		c.groups = append(c.groups, lineGroup{
			ids:    []int{l.id},
			cond:   l.cond,
			search: -1,
		})
	}
	c.def = collectFlagDef(c.universe)
}

func collectFlagDef(universe []Assignment) flagDef {
	def := flagDef{values: map[string][]string{}}
	for _, a := range universe {
		for _, f := range a {
			vs, known := def.values[f.Name]
			if !known {
				def.names = append(def.names, f.Name)
			}
			if !containsString(vs, f.Value) {
				def.values[f.Name] = append(vs, f.Value)
			}
		}
	}

	// A flag with a single value is always set and cannot discriminate.
	kept := def.names[:0]
	for _, n := range def.names {
		if len(def.values[n]) > 1 {
			kept = append(kept, n)
		} else {
			delete(def.values, n)
		}
	}
	def.names = kept

	// Bias the value order: enabled-looking values first, disabled-looking
	// last. This stabilizes the search and keeps the positive form of a
	// flag in the emitted conditionals.
	for n, vs := range def.values {
		def.values[n] = reorderValues(vs)
	}
	return def
}

func reorderValues(vs []string) []string {
	front, middle, back := []string{}, []string{}, []string{}
	for _, v := range vs {
		switch v {
		case "On", "Enabled":
			front = append(front, v)
		case "Off", "Disabled":
			back = append(back, v)
		default:
			middle = append(middle, v)
		}
	}
	out := append(front, middle...)
	return append(out, back...)
}

func containsString(vs []string, v string) bool {
	for _, s := range vs {
		if s == v {
			return true
		}
	}
	return false
}

// bindSearches turns every group whose condition is a strict subset of the
// universe into a search input, deduplicating identical inputs.
func (c *chunk) bindSearches(s *searchSet) {
	for i := range c.groups {
		g := &c.groups[i]
		if len(g.cond) >= len(c.universe) {
			continue
		}
		rows := make([]searchRow, len(c.universe))
		for j, a := range c.universe {
			rows[j] = searchRow{expected: condContains(g.cond, a), assignment: a}
		}
		g.search = s.add(rows, c.def)
	}
}
