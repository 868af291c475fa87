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

// Package qm implements exact two-level boolean minimization with the
// Quine-McCluskey prime implicant search and a greedy essential cover.
package qm

import (
	"math/bits"
	"sort"
	"strings"
)

// Simplified is a minimized sum-of-products expression.
type Simplified struct {
	// Expression uses &, | and ~ over the variable names, or the constants
	// "True" and "False".
	Expression string
	// Atoms is the set of variable names referenced by the expression.
	Atoms map[string]bool
}

// An implicant is a cube over the variable space: value gives the required
// bits, mask selects which bits are required. It covers minterm m iff
// m & mask == value.
type implicant struct {
	mask  uint
	value uint
}

func (im implicant) covers(m uint) bool { return m&im.mask == im.value }

// Simplify returns a minimal-ish sum-of-products expression that is true
// exactly on the given minterms. Variable names are MSB-first: vars[0] is
// the most significant bit of a minterm index. The result is exact: for
// every assignment the expression evaluates true iff its index is listed.
func Simplify(vars []string, minterms []int) Simplified {
	n := uint(len(vars))
	full := uint(1) << n

	seen := map[uint]bool{}
	var ms []uint
	for _, m := range minterms {
		if um := uint(m); um < full && !seen[um] {
			seen[um] = true
			ms = append(ms, um)
		}
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })

	switch uint(len(ms)) {
	case 0:
		return Simplified{Expression: "False", Atoms: map[string]bool{}}
	case full:
		return Simplified{Expression: "True", Atoms: map[string]bool{}}
	}

	primes := primeImplicants(ms, full-1)
	selected := cover(primes, ms)
	return format(selected, vars)
}

func primeImplicants(ms []uint, allBits uint) []implicant {
	current := make([]implicant, len(ms))
	for i, m := range ms {
		current[i] = implicant{mask: allBits, value: m}
	}

	var primes []implicant
	for len(current) > 0 {
		used := make([]bool, len(current))
		var next []implicant
		nextSeen := map[implicant]bool{}
		for i := 0; i < len(current); i++ {
			for j := i + 1; j < len(current); j++ {
				a, b := current[i], current[j]
				if a.mask != b.mask {
					continue
				}
				diff := a.value ^ b.value
				if bits.OnesCount(diff) != 1 || diff&a.mask == 0 {
					continue
				}
				used[i], used[j] = true, true
				combined := implicant{mask: a.mask &^ diff, value: a.value &^ diff}
				if !nextSeen[combined] {
					nextSeen[combined] = true
					next = append(next, combined)
				}
			}
		}
		for i, im := range current {
			if !used[i] {
				primes = append(primes, im)
			}
		}
		current = next
	}
	return primes
}

func cover(primes []implicant, ms []uint) []implicant {
	var selected []implicant
	taken := make([]bool, len(primes))
	covered := map[uint]bool{}

	// Essential primes first: any implicant that is the sole cover of some
	// minterm has to be in the result.
	for _, m := range ms {
		only, count := -1, 0
		for i, p := range primes {
			if p.covers(m) {
				only = i
				count++
			}
		}
		if count == 1 && !taken[only] {
			taken[only] = true
			selected = append(selected, primes[only])
			for _, c := range ms {
				if primes[only].covers(c) {
					covered[c] = true
				}
			}
		}
	}

	// Greedy pass over the remainder, picking the implicant that covers the
	// most still-uncovered minterms. Ties break on first-seen order.
	for len(covered) < len(ms) {
		best, bestCount := -1, 0
		for i, p := range primes {
			if taken[i] {
				continue
			}
			count := 0
			for _, m := range ms {
				if !covered[m] && p.covers(m) {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = i, count
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		selected = append(selected, primes[best])
		for _, m := range ms {
			if primes[best].covers(m) {
				covered[m] = true
			}
		}
	}
	return selected
}

func format(selected []implicant, vars []string) Simplified {
	n := len(vars)
	atoms := map[string]bool{}
	products := make([]string, 0, len(selected))
	multi := false
	for _, im := range selected {
		var literals []string
		for i := 0; i < n; i++ {
			bit := uint(1) << uint(n-1-i)
			if im.mask&bit == 0 {
				continue
			}
			atoms[vars[i]] = true
			if im.value&bit != 0 {
				literals = append(literals, vars[i])
			} else {
				literals = append(literals, "~"+vars[i])
			}
		}
		if len(literals) > 1 {
			multi = true
		}
		products = append(products, strings.Join(literals, " & "))
	}
	if len(products) > 1 && multi {
		for i, p := range products {
			if strings.Contains(p, "&") {
				products[i] = "(" + p + ")"
			}
		}
	}
	return Simplified{Expression: strings.Join(products, " | "), Atoms: atoms}
}
