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
	"time"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
)

func TestEvalTokensShortCircuit(t *testing.T) {
	ctx := log.Testing(t)
	a := asg("X", "On", "Y", "Off")

	// Right-to-left: the rightmost And that is false answers immediately.
	seq := []token{
		{join: joinInitial, name: "X", value: "Off"}, // never reached
		{join: joinAnd, name: "Y", value: "On"},      // false, short-circuits
	}
	assert.For(ctx, "and short").That(evalTokens(seq, a)).IsFalse()

	seq = []token{
		{join: joinInitial, name: "X", value: "Off"}, // never reached
		{join: joinOr, name: "X", value: "On"},       // true, short-circuits
	}
	assert.For(ctx, "or short").That(evalTokens(seq, a)).IsTrue()

	seq = []token{
		{join: joinInitial, name: "X", value: "On"},
		{join: joinAnd, name: "Y", value: "Off"}, // true, falls through
	}
	assert.For(ctx, "fall through").That(evalTokens(seq, a)).IsTrue()

	seq = []token{{join: joinInitial, negative: true, name: "X", value: "On"}}
	assert.For(ctx, "negated").That(evalTokens(seq, a)).IsFalse()

	assert.For(ctx, "empty").That(evalTokens(nil, a)).IsFalse()
}

func conjunctionInput() searchInput {
	universe := []Assignment{
		asg("f_A", "On", "B", "Enabled"),
		asg("f_A", "On", "B", "Disabled"),
		asg("f_A", "Off", "B", "Enabled"),
		asg("f_A", "Off", "B", "Disabled"),
	}
	rows := make([]searchRow, len(universe))
	for i, a := range universe {
		rows[i] = searchRow{
			expected:   a.Get("f_A") == "On" && a.Get("B") == "Enabled",
			assignment: a,
		}
	}
	return searchInput{rows: rows, def: collectFlagDef(universe)}
}

func TestGreedyConjunction(t *testing.T) {
	ctx := log.Testing(t)
	got := greedySearch(conjunctionInput())
	assert.For(ctx, "perfect").That(got.perfect()).IsTrue()
	assert.For(ctx, "score").That(got.score).Equals(4)
	assert.For(ctx, "length").That(len(got.seq)).Equals(2)
}

func TestBruteForceMatchesGreedy(t *testing.T) {
	ctx := log.Testing(t)
	got := bruteSearch(conjunctionInput(), time.Second)
	assert.For(ctx, "perfect").That(got.perfect()).IsTrue()
	assert.For(ctx, "length").That(len(got.seq)).Equals(2)
}

func TestSearchDeduplication(t *testing.T) {
	ctx := log.Testing(t)
	s := newSearchSet()
	in := conjunctionInput()
	first := s.add(in.rows, in.def)
	second := s.add(in.rows, in.def)
	assert.For(ctx, "index").That(second).Equals(first)
	assert.For(ctx, "inputs").That(len(s.inputs)).Equals(1)

	flipped := append([]searchRow{}, in.rows...)
	flipped[0].expected = !flipped[0].expected
	third := s.add(flipped, in.def)
	assert.For(ctx, "distinct").That(third).NotEquals(first)
}

// A condition that is true on exactly one of three assignments of a three
// valued flag needs an equality test, which a single token finds.
func TestGreedyEnumFlag(t *testing.T) {
	ctx := log.Testing(t)
	universe := []Assignment{
		asg("f_q", "Low"),
		asg("f_q", "Medium"),
		asg("f_q", "High"),
	}
	rows := make([]searchRow, len(universe))
	for i, a := range universe {
		rows[i] = searchRow{expected: a.Get("f_q") == "Medium", assignment: a}
	}
	got := greedySearch(searchInput{rows: rows, def: collectFlagDef(universe)})
	assert.For(ctx, "perfect").That(got.perfect()).IsTrue()
	assert.For(ctx, "length").That(len(got.seq)).Equals(1)
	assert.For(ctx, "value").ThatString(got.seq[0].value).Equals("Medium")
}

func TestBruteForceTimeout(t *testing.T) {
	ctx := log.Testing(t)
	// An impossible target: expected values differ on identical assignments,
	// so no sequence is perfect and the search runs until its length bound
	// (two rows) is exhausted or its budget expires, whichever comes first.
	a := asg("X", "On")
	in := searchInput{
		rows: []searchRow{
			{expected: true, assignment: a},
			{expected: false, assignment: a},
		},
		def: collectFlagDef([]Assignment{asg("X", "On"), asg("X", "Off")}),
	}
	start := time.Now()
	got := bruteSearch(in, 50*time.Millisecond)
	assert.For(ctx, "bounded").That(time.Since(start) < 5*time.Second).IsTrue()
	assert.For(ctx, "best effort").That(got.score).Equals(1)
}
