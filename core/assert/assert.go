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

// Package assert provides a fluent assertion library for tests.
//
// Usage:
//
//	assert.For(ctx, "read %v", name).That(got).Equals(want)
//	assert.For(t, "bytes").ThatSlice(out).Equals(in)
//	assert.For(ctx, "err").ThatError(err).Succeeded()
package assert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/rdtools/matc/core/log"
)

// Output matches the logging methods of the test host types.
// The output object is normally a *testing.T.
type Output interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Manager wraps an assertion output target in something that can construct
// assertion objects.
type Manager struct {
	out Output
}

type ctxOutput struct{ ctx context.Context }
type stdOutput struct{}

// To creates an assertion manager using the target t for logging.
// t can be a context.Context, Output or nil to log to stdout.
func To(t interface{}) Manager {
	switch t := t.(type) {
	case nil:
		return Manager{stdOutput{}}
	case context.Context:
		return Manager{ctxOutput{t}}
	case Output:
		return Manager{t}
	default:
		panic(fmt.Errorf("Unsupported assertion target type %T", t))
	}
}

// For is shorthand for assert.To(t).For(msg, args...).
func For(t interface{}, msg string, args ...interface{}) *Assertion {
	return To(t).For(msg, args...)
}

// For starts a new assertion with the supplied title.
func (m Manager) For(msg string, args ...interface{}) *Assertion {
	a := &Assertion{to: m.out, out: &bytes.Buffer{}}
	fmt.Fprintf(a.out, msg, args...)
	a.out.WriteString("\n    ")
	return a
}

func (o ctxOutput) Fatal(args ...interface{}) {
	log.F(o.ctx, true, "%v", fmt.Sprint(args...))
}

func (o ctxOutput) Error(args ...interface{}) {
	log.E(o.ctx, "%v", fmt.Sprint(args...))
}

func (o ctxOutput) Log(args ...interface{}) {
	log.I(o.ctx, "%v", fmt.Sprint(args...))
}

func (stdOutput) Fatal(args ...interface{}) {
	fmt.Fprintln(os.Stdout, args...)
	panic("Fatal assertion without test context")
}

func (stdOutput) Error(args ...interface{}) {
	fmt.Fprintln(os.Stdout, args...)
}

func (stdOutput) Log(args ...interface{}) {
	fmt.Fprintln(os.Stdout, args...)
}

// Assertion is the type for the start of an assertion line.
type Assertion struct {
	out   *bytes.Buffer
	to    Output
	fatal bool
}

// Critical switches the assertion from Error to Fatal on failure.
func (a *Assertion) Critical() *Assertion {
	a.fatal = true
	return a
}

func (a *Assertion) printPretty(value interface{}) {
	switch value := value.(type) {
	case error, string:
		fmt.Fprintf(a.out, "`%v`", value)
	default:
		fmt.Fprint(a.out, value)
	}
}

// Got adds the standard "Got" entry to the output buffer.
func (a *Assertion) Got(value interface{}) *Assertion {
	a.out.WriteString("Got\t\t")
	a.printPretty(value)
	a.out.WriteString("\n    ")
	return a
}

// Expect adds the standard "Expect" entry to the output buffer.
func (a *Assertion) Expect(op string, value interface{}) *Assertion {
	a.out.WriteString("Expect\t")
	a.out.WriteString(op)
	a.out.WriteString("\t")
	a.printPretty(value)
	a.out.WriteString("\n    ")
	return a
}

// Compare adds both the "Got" and "Expect" entries to the output buffer.
func (a *Assertion) Compare(value interface{}, op string, expect interface{}) *Assertion {
	return a.Got(value).Expect(op, expect)
}

// Test commits the pending output if the condition is not true.
func (a *Assertion) Test(condition bool) bool {
	if !condition {
		a.commit()
	}
	return condition
}

func (a *Assertion) commit() {
	buf := &bytes.Buffer{}
	tabs := tabwriter.NewWriter(buf, 1, 4, 1, ' ', tabwriter.StripEscape)
	tabs.Write(a.out.Bytes())
	tabs.Flush()
	message := strings.TrimRightFunc(buf.String(), unicode.IsSpace)
	if a.fatal {
		a.to.Fatal("Critical:" + message)
	} else {
		a.to.Error("Error:" + message)
	}
}
