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
	"time"
)

// Logger is a snapshot of the logging state carried by a context.
// Loggers are cheap to construct and are passed by pointer, but hold no
// mutable state; one Logger can emit any number of messages.
type Logger struct {
	handler Handler
	filter  Filter
	clock   Clock
	tag     string
	process string
	trace   []string
	values  []Value
}

// From returns a Logger built from the logging state bound to ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler: GetHandler(ctx),
		filter:  GetFilter(ctx),
		clock:   GetClock(ctx),
		tag:     GetTag(ctx),
		process: GetProcess(ctx),
		trace:   GetTrace(ctx),
		values:  GetValues(ctx),
	}
}

// Message builds a Message at the given severity with the logger's bound
// state and the supplied text.
func (l *Logger) Message(s Severity, text string) *Message {
	var t time.Time
	if l.clock != nil {
		t = l.clock.Time()
	} else {
		t = time.Now()
	}
	return &Message{
		Text:     text,
		Time:     t,
		Severity: s,
		Tag:      l.tag,
		Process:  l.process,
		Trace:    l.trace,
		Values:   l.values,
	}
}

// Active returns true if a message at severity s would be handled.
func (l *Logger) Active(s Severity) bool {
	if l.handler == nil {
		return false
	}
	if l.filter != nil && !l.filter.ShowSeverity(s) {
		return false
	}
	return true
}

// Log emits msg at severity s to the logger's handler.
func (l *Logger) Log(s Severity, msg string) {
	if !l.Active(s) {
		return
	}
	l.handler.Handle(l.Message(s, msg))
}

// Logf emits a formatted message at severity s to the logger's handler.
func (l *Logger) Logf(s Severity, format string, args ...interface{}) {
	if !l.Active(s) {
		return
	}
	l.handler.Handle(l.Message(s, fmt.Sprintf(format, args...)))
}

// Err creates a new error that wraps cause with the logger's bound state.
func (l *Logger) Err(cause error, msg string) error {
	return &err{cause, l.Message(Error, msg)}
}

// Errf creates a new error that wraps cause with the logger's bound state.
func (l *Logger) Errf(cause error, format string, args ...interface{}) error {
	return &err{cause, l.Message(Error, fmt.Sprintf(format, args...))}
}

type err struct {
	cause error
	msg   *Message
}

func (e err) Cause() error { return e.cause }

// Unwrap supports errors.Is / errors.As chains.
func (e err) Unwrap() error { return e.cause }

func (e err) Error() string {
	if e.cause == nil {
		return e.msg.Text
	}
	return fmt.Sprintf("%v\n   Cause: %v", e.msg.Text, e.cause)
}

// Err creates a new error that wraps cause with the current logging
// information.
func Err(ctx context.Context, cause error, msg string) error {
	return From(ctx).Err(cause, msg)
}

// Errf creates a new error that wraps cause with the current logging
// information.
func Errf(ctx context.Context, cause error, fmt string, args ...interface{}) error {
	return From(ctx).Errf(cause, fmt, args...)
}
