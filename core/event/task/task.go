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

// Package task provides the cancellation helpers used across the toolkit.
package task

import (
	"context"
	"time"
)

// Task is the unit of work used by the app runner and the pipelines.
type Task func(ctx context.Context) error

// CancelFunc is called to stop a context.
type CancelFunc context.CancelFunc

// WithCancel returns a copy of ctx with a new Done channel, and the function
// to close it.
func WithCancel(ctx context.Context) (context.Context, CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, CancelFunc(cancel)
}

// WithTimeout returns a copy of ctx that stops itself after the supplied
// duration.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, CancelFunc(cancel)
}

// ShouldStop returns a channel that is closed when the context is cancelled
// or expired.
func ShouldStop(ctx context.Context) <-chan struct{} {
	return ctx.Done()
}

// Stopped returns true if the context has already been cancelled or expired.
func Stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// StopReason returns the reason the context was stopped, or nil if it has
// not stopped yet.
func StopReason(ctx context.Context) error {
	return ctx.Err()
}
