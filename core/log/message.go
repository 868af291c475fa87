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

package log

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Message is a single log entry delivered to a Handler.
type Message struct {
	// Text is the message text.
	Text string
	// Time is the time the message was logged.
	Time time.Time
	// Severity is the message severity.
	Severity Severity
	// Tag is the optional tag bound to the context.
	Tag string
	// Process is the optional process name bound to the context.
	Process string
	// Trace is the chain of Enter names bound to the context.
	Trace []string
	// Values are the key-value pairs bound to the context, in sorted order.
	Values []Value
}

// Value is a single key-value pair bound to a message.
type Value struct {
	Name  string
	Value interface{}
}

func sortValues(vs []Value) {
	sort.Slice(vs, func(i, j int) bool { return vs[i].Name < vs[j].Name })
}

// Format writes the message to f as a single line: severity, time, process,
// tag, trace, text and bound values.
func (m *Message) Format(f fmt.State, c rune) {
	fmt.Fprint(f, m.Severity.Short())
	if !m.Time.IsZero() {
		fmt.Fprint(f, m.Time.Format("15:04:05.000"), " ")
	} else {
		fmt.Fprint(f, " ")
	}
	if m.Process != "" {
		fmt.Fprintf(f, "<%s> ", m.Process)
	}
	if m.Tag != "" {
		fmt.Fprintf(f, "[%s] ", m.Tag)
	}
	if len(m.Trace) > 0 {
		fmt.Fprint(f, strings.Join(m.Trace, "→"), ": ")
	}
	fmt.Fprint(f, m.Text)
	for _, v := range m.Values {
		fmt.Fprintf(f, " %s=%v", v.Name, v.Value)
	}
}
