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
	"io"
	"sync"
)

// Handler is the handler of log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

// Filter is used to discard messages before they reach the handler.
type Filter interface {
	ShowSeverity(Severity) bool
}

// SeverityFilter is a Filter that shows messages at or above a minimum
// severity.
type SeverityFilter Severity

// ShowSeverity returns true if s is at or above the filter's minimum.
func (f SeverityFilter) ShowSeverity(s Severity) bool { return s >= Severity(f) }

type handler struct {
	handle func(*Message)
	close  func()
}

func (h *handler) Handle(m *Message) { h.handle(m) }
func (h *handler) Close() {
	if h.close != nil {
		h.close()
	}
}

// NewHandler returns a Handler that calls handle for each message and close
// when the handler is closed. close can be nil.
func NewHandler(handle func(*Message), close func()) Handler {
	return &handler{handle, close}
}

// Channel returns a Handler that delivers messages to inner on a dedicated
// goroutine, decoupling the caller from slow log sinks.
func Channel(inner Handler, size int) Handler {
	c := make(chan *Message, size)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for m := range c {
			inner.Handle(m)
		}
		inner.Close()
	}()
	var once sync.Once
	return NewHandler(func(m *Message) { c <- m }, func() {
		once.Do(func() { close(c); <-done })
	})
}

// Writer returns a Handler that prints each message as a single line to w.
func Writer(w io.Writer) Handler {
	var mu sync.Mutex
	return NewHandler(func(m *Message) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%v\n", m)
	}, nil)
}
