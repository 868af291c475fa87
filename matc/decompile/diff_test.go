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
)

// apply replays an edit script, checking it reproduces b from a.
func apply(a, b []int, script []edit) []int {
	var out []int
	for _, e := range script {
		switch e.op {
		case opKeep:
			out = append(out, a[e.a])
		case opInsert:
			out = append(out, b[e.b])
		}
	}
	return out
}

func TestDiffLines(t *testing.T) {
	ctx := log.Testing(t)
	cases := []struct {
		name string
		a, b []int
	}{
		{"identical", []int{1, 2, 3}, []int{1, 2, 3}},
		{"empty both", nil, nil},
		{"empty a", nil, []int{1, 2}},
		{"empty b", []int{1, 2}, nil},
		{"insert middle", []int{1, 3}, []int{1, 2, 3}},
		{"delete middle", []int{1, 2, 3}, []int{1, 3}},
		{"replace", []int{1, 2, 3}, []int{1, 4, 3}},
		{"disjoint", []int{1, 2}, []int{3, 4}},
		{"shift", []int{1, 2, 3, 4}, []int{2, 3, 4, 5}},
		{"repeats", []int{1, 1, 2, 1}, []int{1, 2, 1, 1}},
	}
	for _, test := range cases {
		script := diffLines(test.a, test.b)
		got := apply(test.a, test.b, script)
		assert.For(ctx, "%s result", test.name).That(got).DeepEquals(test.b)

		// Keeps must reference equal elements.
		for _, e := range script {
			if e.op == opKeep {
				assert.For(ctx, "%s keep", test.name).That(test.a[e.a]).Equals(test.b[e.b])
			}
		}
	}
}

func asg(pairs ...string) Assignment {
	var out Assignment
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Flag{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestFoldInvariant(t *testing.T) {
	ctx := log.Testing(t)
	table := newLineTable()
	c := encodeChunk(table, rawChunk{perms: []Permutation{
		{Code: "a\nb\nc\nd", Flags: asg("X", "On", "Y", "On")},
		{Code: "a\nc\nd\ne", Flags: asg("X", "Off", "Y", "On")},
		{Code: "a\nb\nz\nd", Flags: asg("X", "On", "Y", "Off")},
	}})
	assert.For(ctx, "fold").ThatError(c.fold()).Succeeded()

	// Per-assignment selection must reproduce each input exactly; checkFold
	// already asserts this, so a passing fold is the proof. Group and check
	// the shared prefix is unconditional.
	c.group()
	assert.For(ctx, "first group cond").That(len(c.groups[0].cond)).Equals(3)
	assert.For(ctx, "first line").ThatString(table.decode(c.groups[0].ids[0])).Equals("a")
}

func TestFoldDeduplicatesIdenticalCode(t *testing.T) {
	ctx := log.Testing(t)
	table := newLineTable()
	c := encodeChunk(table, rawChunk{perms: []Permutation{
		{Code: "same", Flags: asg("X", "On")},
		{Code: "same", Flags: asg("X", "Off")},
	}})
	assert.For(ctx, "perms").That(len(c.perms)).Equals(1)
	assert.For(ctx, "flags").That(len(c.perms[0].flags)).Equals(2)
	assert.For(ctx, "universe").That(len(c.universe)).Equals(2)
	assert.For(ctx, "fold").ThatError(c.fold()).Succeeded()
}

func TestFlagDefCollection(t *testing.T) {
	ctx := log.Testing(t)
	def := collectFlagDef([]Assignment{
		asg("f_a", "Off", "pass", "Main", "f_b", "Low"),
		asg("f_a", "On", "pass", "Main", "f_b", "High"),
		asg("f_a", "On", "pass", "Main", "f_b", "Low"),
	})
	// pass has a single value and cannot discriminate.
	assert.For(ctx, "names").That(def.names).DeepEquals([]string{"f_a", "f_b"})
	// On moves to the front.
	assert.For(ctx, "f_a values").That(def.values["f_a"]).DeepEquals([]string{"On", "Off"})
	assert.For(ctx, "f_b values").That(def.values["f_b"]).DeepEquals([]string{"Low", "High"})
}
