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
	"unicode"

	"github.com/rdtools/matc/matc/qm"
)

// conditional is the synthesized preprocessor directive of one search
// result, ready for assembly.
type conditional struct {
	// directive is "#ifdef X", "#ifndef X" or "#if <formula>"; empty when
	// the synthesized condition degenerated to always-true.
	directive string
	score     int
	total     int
}

// macroSet holds the synthesized conditionals, indexed like the search set,
// and the union of macro names they reference.
type macroSet struct {
	conditionals []conditional
	used         map[string]bool
}

// PassNameMacro is the macro naming rule for the "pass" flag.
func PassNameMacro(value string) string {
	m := upperSnake(value)
	if !strings.HasSuffix(m, "_PASS") {
		m += "_PASS"
	}
	return m
}

// FlagNameMacro is the macro naming rule for f_ flags. Boolean values
// collapse to the bare flag macro; the off half is expressed through
// polarity, not through a second macro.
func FlagNameMacro(name, value string) (macro string, inverted bool) {
	if isBooleanValue(value) {
		return upperSnake(name), isOffValue(value)
	}
	return upperSnake(name + "__" + value), false
}

func tokenMacro(t token) (macro string, inverted bool) {
	switch {
	case t.name == "pass":
		return PassNameMacro(t.value), false
	case strings.HasPrefix(t.name, "f_"):
		return FlagNameMacro(strings.TrimPrefix(t.name, "f_"), t.value)
	default:
		return upperSnake(t.name + t.value), false
	}
}

func isBooleanValue(v string) bool { return isOnValue(v) || isOffValue(v) }

func isOnValue(v string) bool {
	switch v {
	case "On", "True", "Enabled", "1":
		return true
	}
	return false
}

func isOffValue(v string) bool {
	switch v {
	case "Off", "False", "Disabled", "0":
		return true
	}
	return false
}

// upperSnake converts a flag or pass name to SCREAMING_SNAKE_CASE.
func upperSnake(s string) string {
	var out []rune
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			// Separators map one to one so the double underscore of
			// name__value macros survives.
			out = append(out, '_')
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(out) > 0 && out[len(out)-1] != '_' {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				out = append(out, '_')
			}
		}
		out = append(out, unicode.ToUpper(r))
	}
	return strings.Trim(string(out), "_")
}

var atomRe = regexp.MustCompile(`[A-Za-z_]\w*`)

// synthesizeMacros converts every search result into a preprocessor
// conditional: the token sequence becomes a truth table over the macro
// space, the table is minimized, and the minimized formula is rendered as
// an #ifdef, #ifndef or #if directive.
func synthesizeMacros(s *searchSet) *macroSet {
	out := &macroSet{
		conditionals: make([]conditional, len(s.results)),
		used:         map[string]bool{},
	}
	for i, r := range s.results {
		c := conditional{score: r.score, total: r.total}
		c.directive = directiveOf(r.seq, out.used)
		out.conditionals[i] = c
	}
	return out
}

// macroRef is a token's position in the macro list, plus the polarity flip
// applied when an off-valued boolean flag collapsed onto the bare macro.
type macroRef struct {
	index    int
	inverted bool
}

func directiveOf(seq []token, used map[string]bool) string {
	var names []string
	refs := make([]macroRef, len(seq))
	index := map[string]int{}
	for i, t := range seq {
		m, inverted := tokenMacro(t)
		idx, ok := index[m]
		if !ok {
			idx = len(names)
			index[m] = idx
			names = append(names, m)
		}
		refs[i] = macroRef{index: idx, inverted: inverted}
	}

	// Evaluate the sequence over every defined/undefined combination of the
	// macros; each macro's bit is MSB-first like the minimizer expects.
	n := len(names)
	var minterms []int
	for m := 0; m < 1<<uint(n); m++ {
		if evalMacroSeq(seq, refs, n, uint(m)) {
			minterms = append(minterms, m)
		}
	}
	simplified := qm.Simplify(names, minterms)
	for atom := range simplified.Atoms {
		used[atom] = true
	}
	return formatDirective(simplified)
}

func evalMacroSeq(seq []token, refs []macroRef, n int, m uint) bool {
	for i := len(seq) - 1; i >= 0; i-- {
		defined := m&(1<<uint(n-1-refs[i].index)) != 0
		v := (defined != refs[i].inverted) != seq[i].negative
		switch seq[i].join {
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

func formatDirective(s qm.Simplified) string {
	switch s.Expression {
	case "True":
		return ""
	case "False":
		return "#if 0"
	}
	if atomRe.FindString(s.Expression) == s.Expression {
		return "#ifdef " + s.Expression
	}
	if strings.HasPrefix(s.Expression, "~") &&
		atomRe.FindString(s.Expression[1:]) == s.Expression[1:] {
		return "#ifndef " + s.Expression[1:]
	}
	expr := atomRe.ReplaceAllString(s.Expression, "defined($0)")
	expr = strings.ReplaceAll(expr, "~", "!")
	expr = strings.ReplaceAll(expr, "&", "&&")
	expr = strings.ReplaceAll(expr, "|", "||")
	return "#if " + expr
}
