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
)

// Function bodies are lifted out of the main text and replaced with marker
// lines, so that the main diff works on stable one-line placeholders while
// each body is diffed on its own.
const (
	markerOpen  = "START_NAME|||"
	markerClose = "|||END_NAME"
)

var (
	functionRe = regexp.MustCompile(`(?m)^\s*?([^#\s][\w]+)\s+([\w]+)\s*\(([^;]*?)\)\s*\{`)
	structRe   = regexp.MustCompile(`(?ms)^\s*?struct\s+([\w]+)\s*\{(.*?)\};`)
	markerRe   = regexp.MustCompile(regexp.QuoteMeta(markerOpen) + `(.*?)` + regexp.QuoteMeta(markerClose))
)

// rawChunk is the pre-encoding form of the main text or of one extracted
// function or struct.
type rawChunk struct {
	name     string // empty for the main text
	isStruct bool
	perms    []Permutation
}

// extractAll lifts functions and structs out of every permutation, keyed by
// name, and returns the main chunk plus the extracted chunks in first-seen
// order.
func extractAll(perms []Permutation) (rawChunk, []rawChunk) {
	main := rawChunk{}
	index := map[string]int{}
	var extracted []rawChunk

	add := func(name, body string, isStruct bool, flags Assignment) {
		i, ok := index[name]
		if !ok {
			i = len(extracted)
			index[name] = i
			extracted = append(extracted, rawChunk{name: name, isStruct: isStruct})
		}
		extracted[i].perms = append(extracted[i].perms, Permutation{
			Code:  strings.Trim(body, "\n"),
			Flags: flags,
		})
	}

	for _, p := range perms {
		text := extractFunctions(p.Code, p.Flags, add)
		text = extractStructs(text, p.Flags, add)
		main.perms = append(main.perms, Permutation{Code: text, Flags: p.Flags})
	}
	return main, extracted
}

type addChunk func(name, body string, isStruct bool, flags Assignment)

func extractFunctions(text string, flags Assignment, add addChunk) string {
	var out strings.Builder
	for {
		loc := functionRe.FindStringSubmatchIndex(text)
		if loc == nil {
			out.WriteString(text)
			break
		}
		ret := text[loc[2]:loc[3]]
		name := text[loc[4]:loc[5]]
		args := text[loc[6]:loc[7]]

		end, ok := matchBrace(text, loc[1])
		if !ok {
			// Unbalanced braces; leave the rest untouched.
			out.WriteString(text)
			break
		}
		body := text[loc[1] : end-1]
		signature := ret + " " + name + "(" + args + ")"
		add(name, body, false, flags)

		out.WriteString(text[:loc[0]])
		out.WriteString(markerOpen + signature + markerClose + "\n")
		text = text[end:]
		text = strings.TrimPrefix(text, "\n")
	}
	return out.String()
}

func extractStructs(text string, flags Assignment, add addChunk) string {
	return structRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := structRe.FindStringSubmatch(match)
		name, body := sub[1], sub[2]
		add(name, body, true, flags)
		return markerOpen + "struct " + name + markerClose + "\n"
	})
}

// matchBrace returns the index just past the brace that closes the block
// opened right before start. start must point at the first byte after an
// opening '{'.
func matchBrace(text string, start int) (int, bool) {
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// markerName returns the chunk name a marker line refers to, and whether
// the marker is a struct.
func markerName(signature string) (string, bool) {
	if strings.HasPrefix(signature, "struct ") {
		return strings.TrimPrefix(signature, "struct "), true
	}
	if i := strings.IndexByte(signature, '('); i >= 0 {
		head := strings.Fields(signature[:i])
		if len(head) > 0 {
			return head[len(head)-1], false
		}
	}
	return signature, false
}
