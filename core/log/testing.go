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
	"context"
	"fmt"
	"testing"
)

// Testing returns a context with a handler that routes messages to t.
func Testing(t *testing.T) context.Context {
	ctx := context.Background()
	ctx = PutHandler(ctx, NewHandler(func(m *Message) {
		switch {
		case m.Severity >= Fatal:
			t.Fatalf("%v", m)
		case m.Severity >= Error:
			t.Errorf("%v", m)
		default:
			t.Logf("%v", m)
		}
	}, nil))
	ctx = PutFilter(ctx, SeverityFilter(Debug))
	return ctx
}

// TestHandler is a handler that can be used to intercept messages in tests.
type TestHandler struct {
	Messages []string
}

// Handle appends the formatted message to Messages.
func (h *TestHandler) Handle(m *Message) {
	h.Messages = append(h.Messages, fmt.Sprintf("%v", m))
}

// Close does nothing.
func (h *TestHandler) Close() {}
