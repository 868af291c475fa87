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

// Package log provides context-carried structured logging.
//
// All logging state (handler, filter, tag, trace chain, bound values) lives
// on the context.Context, so the package interacts cleanly with any library
// that passes contexts around. A filtered-out logging statement costs a
// couple of context value lookups and nothing more.
package log

import "context"

// D logs a debug message to the logging target.
func D(ctx context.Context, fmt string, args ...interface{}) {
	From(ctx).Logf(Debug, fmt, args...)
}

// I logs an informational message to the logging target.
func I(ctx context.Context, fmt string, args ...interface{}) {
	From(ctx).Logf(Info, fmt, args...)
}

// W logs a warning message to the logging target.
func W(ctx context.Context, fmt string, args ...interface{}) {
	From(ctx).Logf(Warning, fmt, args...)
}

// E logs an error message to the logging target.
func E(ctx context.Context, fmt string, args ...interface{}) {
	From(ctx).Logf(Error, fmt, args...)
}

// F logs a fatal message to the logging target. If stopProcess is true the
// message is followed by a panic that unwinds to the application runner,
// which turns it into a failure exit code.
func F(ctx context.Context, stopProcess bool, fmt string, args ...interface{}) {
	From(ctx).Logf(Fatal, fmt, args...)
	if stopProcess {
		panic(FatalExit)
	}
}

// FatalExit is the panic value raised by F when stopProcess is true.
const FatalExit = exitSentinel("log.FatalExit")

type exitSentinel string
