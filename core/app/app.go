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

// Package app provides the startup scaffolding for the command line tools.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rdtools/matc/core/event/task"
	"github.com/rdtools/matc/core/log"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

var (
	// Name is the full name of the application.
	Name string
	// ShortHelp should be set to add a help message to the usage text.
	ShortHelp = ""
	// ShortUsage is usage text for the additional non-flag arguments.
	ShortUsage = ""
	// ExitFuncForTesting can be set to change the behaviour on exit.
	ExitFuncForTesting = os.Exit

	flagVerbose = flag.Bool("verbose", false, "enable debug level logging")
	flagSilent  = flag.Bool("silent", false, "only log warnings and errors")
)

func init() {
	Name = filepath.Base(os.Args[0])
}

// ExitCode can be raised as a panic value to exit with a specific code.
type ExitCode int

// Run wraps doRun in order to let doRun use deferred functions, because
// os.Exit does not execute them.
func Run(main task.Task) {
	ExitFuncForTesting(doRun(main))
}

func doRun(main task.Task) (code int) {
	defer func() {
		switch cause := recover(); cause {
		case nil:
		case log.FatalExit:
			code = exitFailure
		default:
			if c, ok := cause.(ExitCode); ok {
				code = int(c)
				return
			}
			panic(cause)
		}
	}()

	flag.CommandLine.Usage = func() { Usage(context.Background(), "") }
	flag.Parse()

	handler := log.Writer(os.Stderr)
	defer handler.Close()
	ctx := context.Background()
	ctx = log.PutProcess(ctx, Name)
	ctx = log.PutHandler(ctx, handler)
	switch {
	case *flagVerbose:
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Debug))
	case *flagSilent:
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Warning))
	default:
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Info))
	}

	ctx, cancel := task.WithCancel(ctx)
	defer cancel()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		if _, ok := <-interrupts; ok {
			cancel()
		}
	}()
	defer func() { signal.Stop(interrupts); close(interrupts) }()

	if err := main(ctx); err != nil {
		log.E(ctx, "%s failed\nError: %v", Name, err)
		return exitFailure
	}
	return exitSuccess
}

// Usage prints the usage text, prefixed by an optional message.
func Usage(ctx context.Context, message string, args ...interface{}) {
	w := os.Stderr
	if message != "" {
		fmt.Fprintf(w, message, args...)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Usage: %s [flags] %s\n", Name, ShortUsage)
	if ShortHelp != "" {
		fmt.Fprintln(w, ShortHelp)
	}
	if len(globalVerbs.verbs) > 0 {
		fmt.Fprintln(w, "Commands:")
		for _, v := range globalVerbs.verbs {
			fmt.Fprintf(w, "  %-12s %s\n", v.Name, v.ShortHelp)
		}
	}
	fmt.Fprintln(w, "Flags:")
	flag.PrintDefaults()
}
