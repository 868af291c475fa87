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

import "strings"

// lineTable assigns a global index to every distinct source line, shared by
// every chunk of one decompile run.
type lineTable struct {
	index map[string]int
	lines []string
}

func newLineTable() *lineTable {
	return &lineTable{index: map[string]int{}}
}

func (t *lineTable) encode(line string) int {
	if i, ok := t.index[line]; ok {
		return i
	}
	i := len(t.lines)
	t.index[line] = i
	t.lines = append(t.lines, line)
	return i
}

func (t *lineTable) decode(i int) string { return t.lines[i] }

// encodedPerm is a permutation after line encoding. Permutations with byte
// identical code are deduplicated, merging their flag assignments.
type encodedPerm struct {
	lines []int
	flags []Assignment
}

// condLine is one output line together with the condition accumulated by
// the diff fold: the assignments under which the line appears.
type condLine struct {
	id   int
	cond []Assignment
}

// lineGroup is a run of consecutive lines sharing one condition. search is
// the index into the deduplicated search input list, or -1 when the group
// is unconditional.
type lineGroup struct {
	ids    []int
	cond   []Assignment
	search int
}

// chunk is the per-context working state: the main text or one extracted
// function or struct.
type chunk struct {
	name     string
	isStruct bool
	perms    []encodedPerm
	universe []Assignment
	lines    []condLine
	groups   []lineGroup
	def      flagDef
}

func encodeChunk(t *lineTable, raw rawChunk) *chunk {
	c := &chunk{name: raw.name, isStruct: raw.isStruct}
	byCode := map[string]int{}
	for _, p := range raw.perms {
		if i, ok := byCode[p.Code]; ok {
			c.perms[i].flags = append(c.perms[i].flags, p.Flags)
			c.universe = append(c.universe, p.Flags)
			continue
		}
		byCode[p.Code] = len(c.perms)
		var ids []int
		for _, line := range splitLines(p.Code) {
			ids = append(ids, t.encode(line))
		}
		c.perms = append(c.perms, encodedPerm{lines: ids, flags: []Assignment{p.Flags}})
		c.universe = append(c.universe, p.Flags)
	}
	return c
}

func splitLines(code string) []string {
	code = strings.TrimSuffix(code, "\n")
	if code == "" {
		return nil
	}
	return strings.Split(code, "\n")
}

func condKey(cond []Assignment) string {
	var b strings.Builder
	for _, a := range cond {
		b.WriteString(a.key())
		b.WriteByte('\x02')
	}
	return b.String()
}

func condContains(cond []Assignment, a Assignment) bool {
	k := a.key()
	for _, c := range cond {
		if c.key() == k {
			return true
		}
	}
	return false
}
