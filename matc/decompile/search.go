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

import "time"

// joinType is how a token combines with the tokens to its left.
type joinType int

const (
	joinInitial joinType = iota
	joinAnd
	joinOr
)

// token is one step of a flag expression. A sequence of tokens is evaluated
// right to left with short-circuiting: the token's own truth is
// (assignment[name] == value) xor negative; an And token that is false
// answers false, an Or token that is true answers true, and the leftmost
// (Initial) token answers its own truth.
type token struct {
	join     joinType
	negative bool
	name     string
	value    string
}

func evalTokens(seq []token, a Assignment) bool {
	for i := len(seq) - 1; i >= 0; i-- {
		t := seq[i]
		v := (a.Get(t.name) == t.value) != t.negative
		switch t.join {
		case joinAnd:
			if !v {
				return false
			}
		case joinOr:
			if v {
				return true
			}
		default:
			return v
		}
	}
	return false
}

// searchRow is one flag assignment of the universe together with the truth
// value the expression must take on it.
type searchRow struct {
	expected   bool
	assignment Assignment
}

// searchResult is the best token sequence found for one input.
type searchResult struct {
	seq   []token
	score int
	total int
}

func (r searchResult) perfect() bool { return r.score == r.total }

// searchSet deduplicates search inputs and holds their results.
type searchSet struct {
	inputs  []searchInput
	index   map[string]int
	results []searchResult
}

type searchInput struct {
	rows []searchRow
	def  flagDef
}

func (in searchInput) key() string {
	out := in.def.key() + "\x03"
	for _, r := range in.rows {
		if r.expected {
			out += "1"
		} else {
			out += "0"
		}
		out += r.assignment.key() + "\x04"
	}
	return out
}

func newSearchSet() *searchSet {
	return &searchSet{index: map[string]int{}}
}

// add registers a search input, returning its index. Identical inputs share
// one search and one result.
func (s *searchSet) add(rows []searchRow, def flagDef) int {
	in := searchInput{rows: rows, def: def}
	k := in.key()
	if i, ok := s.index[k]; ok {
		return i
	}
	i := len(s.inputs)
	s.index[k] = i
	s.inputs = append(s.inputs, in)
	return i
}

// run searches every registered input: the greedy pass always, the brute
// force pass only when the greedy one is imperfect and a timeout budget was
// given.
func (s *searchSet) run(timeout time.Duration) {
	s.results = make([]searchResult, len(s.inputs))
	for i, in := range s.inputs {
		fast := greedySearch(in)
		if fast.perfect() || timeout <= 0 {
			s.results[i] = fast
			continue
		}
		slow := bruteSearch(in, timeout)
		// Prefer the slow result only if it strictly improves the score, or
		// matches it with a shorter sequence.
		if slow.score > fast.score ||
			(slow.score == fast.score && len(slow.seq) < len(fast.seq)) {
			s.results[i] = slow
		} else {
			s.results[i] = fast
		}
	}
}

func score(seq []token, rows []searchRow) int {
	n := 0
	for _, r := range rows {
		if evalTokens(seq, r.assignment) == r.expected {
			n++
		}
	}
	return n
}

// candidateTokens enumerates every token permitted at the given position,
// in the codified order: negative x join x flag name x flag value.
func candidateTokens(def flagDef, initial bool) []token {
	var joins []joinType
	if initial {
		joins = []joinType{joinInitial}
	} else {
		joins = []joinType{joinAnd, joinOr}
	}
	var out []token
	for _, neg := range []bool{false, true} {
		for _, join := range joins {
			for _, name := range def.names {
				for _, value := range def.values[name] {
					out = append(out, token{join: join, negative: neg, name: name, value: value})
				}
			}
		}
	}
	return out
}

// greedySearch appends the locally best token each round, keeping the best
// complete sequence seen across rounds. Ties break on first-seen order.
func greedySearch(in searchInput) searchResult {
	best := searchResult{seq: nil, score: score(nil, in.rows), total: len(in.rows)}
	var seq []token
	rounds := len(in.def.names) + 5
	for round := 0; round < rounds; round++ {
		var roundBest []token
		roundScore := -1
		for _, t := range candidateTokens(in.def, len(seq) == 0) {
			candidate := append(append([]token{}, seq...), t)
			if s := score(candidate, in.rows); s > roundScore {
				roundBest, roundScore = candidate, s
			}
		}
		if roundBest == nil {
			break
		}
		seq = roundBest
		if roundScore > best.score {
			best = searchResult{seq: seq, score: roundScore, total: len(in.rows)}
		}
		if roundScore == len(in.rows) {
			break
		}
	}
	return best
}

// bruteSearch enumerates token sequences as a variable length counter over
// the candidate alphabet, shortest first, until a perfect sequence is found,
// the length bound is exhausted, or the wall-clock budget runs out.
func bruteSearch(in searchInput, timeout time.Duration) searchResult {
	deadline := time.Now().Add(timeout)
	first := candidateTokens(in.def, true)
	rest := candidateTokens(in.def, false)
	best := searchResult{seq: nil, score: -1, total: len(in.rows)}

	maxLen := len(in.rows)
	if maxLen < 1 || len(first) == 0 {
		return searchResult{seq: nil, score: score(nil, in.rows), total: len(in.rows)}
	}
	seq := make([]token, 0, maxLen)
	var digits []int

	for length := 1; length <= maxLen; length++ {
		digits = make([]int, length)
		for {
			seq = seq[:0]
			for i, d := range digits {
				if i == 0 {
					seq = append(seq, first[d])
				} else {
					seq = append(seq, rest[d])
				}
			}
			if s := score(seq, in.rows); s > best.score {
				best = searchResult{seq: append([]token{}, seq...), score: s, total: len(in.rows)}
				if best.perfect() {
					return best
				}
			}
			if time.Now().After(deadline) {
				return best
			}
			// Increment the counter; carry out means this length is done.
			i := length - 1
			for ; i >= 0; i-- {
				limit := len(rest)
				if i == 0 {
					limit = len(first)
				}
				digits[i]++
				if digits[i] < limit {
					break
				}
				digits[i] = 0
			}
			if i < 0 {
				break
			}
		}
	}
	return best
}
