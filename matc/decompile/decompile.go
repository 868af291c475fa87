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

// Package decompile reconstructs a single preprocessor-conditional source
// file from the N shader texts a material stores for one (platform, stage),
// each compiled from that source under a different flag combination.
//
// The pipeline is a chain of pure stages: optional text normalization,
// function and struct extraction, line encoding, multi-way diffing with
// per-line condition accumulation, grouping, boolean expression search over
// the flag space, macro synthesis through the qm minimizer, and assembly.
package decompile

import (
	"time"

	"github.com/rdtools/matc/core/fault"
)

// ErrInconsistentDiff's text is embedded in the Reason of a DecompilerError
// when the diff fold loses a permutation; it indicates a bug rather than bad
// input.
const ErrInconsistentDiff = fault.Const(
	"diff fold no longer reproduces every input permutation")

// DecompilerError is the fatal error kind of this package.
type DecompilerError struct {
	Reason string
}

func (e DecompilerError) Error() string {
	return "decompiler error: " + e.Reason
}

// Flag is a single flag assignment entry. Assignments are ordered: the
// container preserves flag order per variant and so does the decompiler.
type Flag struct {
	Name  string
	Value string
}

// Assignment is one full flag combination of an input variant.
type Assignment []Flag

// Get returns the value of the named flag, or the empty string.
func (a Assignment) Get(name string) string {
	for _, f := range a {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func (a Assignment) key() string {
	out := ""
	for _, f := range a {
		out += f.Name + "\x00" + f.Value + "\x01"
	}
	return out
}

// Permutation is one input variant: a shader text and the flag assignment
// it was compiled under.
type Permutation struct {
	Code  string
	Flags Assignment
}

// Options control a decompile run.
type Options struct {
	// Preprocess enables comment stripping and the back-end specific text
	// normalization before diffing, and the matching postprocess steps
	// after assembly.
	Preprocess bool
	// SearchTimeout bounds the brute-force half of every expression search.
	// Zero disables the brute-force pass entirely.
	SearchTimeout time.Duration
}

// Result is the reconstructed source.
type Result struct {
	// Code is the reconstructed source text.
	Code string
	// UsedMacros is the set of preprocessor macro names the code references.
	UsedMacros map[string]bool
}

// Decompile reconstructs one source from the input permutations.
func Decompile(perms []Permutation, opts Options) (Result, error) {
	if len(perms) == 0 {
		return Result{Code: "", UsedMacros: map[string]bool{}}, nil
	}

	if opts.Preprocess {
		normalized := make([]Permutation, len(perms))
		for i, p := range perms {
			normalized[i] = Permutation{Code: preprocess(p.Code), Flags: p.Flags}
		}
		perms = normalized
	}

	main, functions := extractAll(perms)

	table := newLineTable()
	mainChunk := encodeChunk(table, main)
	functionChunks := make([]*chunk, len(functions))
	for i, f := range functions {
		functionChunks[i] = encodeChunk(table, f)
	}

	allChunks := append([]*chunk{mainChunk}, functionChunks...)
	searches := newSearchSet()
	for _, c := range allChunks {
		if err := c.fold(); err != nil {
			return Result{}, err
		}
		c.group()
		c.bindSearches(searches)
	}

	searches.run(opts.SearchTimeout)

	macros := synthesizeMacros(searches)

	code := assemble(table, mainChunk, functionChunks, macros)
	if opts.Preprocess {
		code = postprocess(code)
	}
	return Result{Code: code, UsedMacros: macros.used}, nil
}
