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
	"time"
)

type contextKeyTy string

const (
	handlerKey  contextKeyTy = "log.handlerKey"
	filterKey   contextKeyTy = "log.filterKey"
	clockKey    contextKeyTy = "log.clockKey"
	tagKey      contextKeyTy = "log.tagKey"
	processKey  contextKeyTy = "log.processKey"
	traceKey    contextKeyTy = "log.traceKey"
	valuesKey   contextKeyTy = "log.valuesKey"
)

// PutHandler returns a new context with the Handler assigned to h.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// GetHandler returns the Handler assigned to ctx, or nil.
func GetHandler(ctx context.Context) Handler {
	out, _ := ctx.Value(handlerKey).(Handler)
	return out
}

// PutFilter returns a new context with the Filter assigned to f.
func PutFilter(ctx context.Context, f Filter) context.Context {
	return context.WithValue(ctx, filterKey, f)
}

// GetFilter returns the Filter assigned to ctx, or nil.
func GetFilter(ctx context.Context) Filter {
	out, _ := ctx.Value(filterKey).(Filter)
	return out
}

// Clock is the interface to an object used for getting message timestamps.
type Clock interface {
	Time() time.Time
}

// FixedClock is a Clock that always returns the same time. Used for tests
// that need deterministic log output.
type FixedClock time.Time

// Time returns the fixed time.
func (c FixedClock) Time() time.Time { return time.Time(c) }

// PutClock returns a new context with the Clock assigned to c.
func PutClock(ctx context.Context, c Clock) context.Context {
	return context.WithValue(ctx, clockKey, c)
}

// GetClock returns the Clock assigned to ctx, or nil.
func GetClock(ctx context.Context) Clock {
	out, _ := ctx.Value(clockKey).(Clock)
	return out
}

// PutTag returns a new context with the tag assigned to t.
func PutTag(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// GetTag returns the tag assigned to ctx, or an empty string.
func GetTag(ctx context.Context) string {
	out, _ := ctx.Value(tagKey).(string)
	return out
}

// PutProcess returns a new context with the process name assigned to p.
func PutProcess(ctx context.Context, p string) context.Context {
	return context.WithValue(ctx, processKey, p)
}

// GetProcess returns the process name assigned to ctx, or an empty string.
func GetProcess(ctx context.Context) string {
	out, _ := ctx.Value(processKey).(string)
	return out
}

// Enter returns a new context with name appended to the trace chain.
func Enter(ctx context.Context, name string) context.Context {
	trace, _ := ctx.Value(traceKey).([]string)
	out := make([]string, len(trace), len(trace)+1)
	copy(out, trace)
	return context.WithValue(ctx, traceKey, append(out, name))
}

// GetTrace returns the trace chain assigned to ctx.
func GetTrace(ctx context.Context) []string {
	out, _ := ctx.Value(traceKey).([]string)
	return out
}

// V is a map of named values that can be bound to a context with Bind.
type V map[string]interface{}

// Bind returns a new context with the values of v attached.
func (v V) Bind(ctx context.Context) context.Context {
	values, _ := ctx.Value(valuesKey).([]Value)
	out := make([]Value, len(values), len(values)+len(v))
	copy(out, values)
	for name, value := range v {
		out = append(out, Value{Name: name, Value: value})
	}
	sortValues(out[len(values):])
	return context.WithValue(ctx, valuesKey, out)
}

// GetValues returns the values bound to ctx.
func GetValues(ctx context.Context) []Value {
	out, _ := ctx.Value(valuesKey).([]Value)
	return out
}
