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

// Package shell runs the external tools the pipeline shells out to,
// chiefly the shader compiler executable.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rdtools/matc/core/log"
)

// Cmd is one tool invocation being assembled. Cmds are values; deriving a
// new one never changes the original, so a base invocation can be shared
// and specialized per call.
type Cmd struct {
	// Name of the executable to run.
	Name string
	// Args handed to the executable, without the executable itself.
	Args []string
	// Target that starts the process, defaulting to LocalTarget.
	Target Target
	// Dir the process runs in, if set.
	Dir string
	// Stdout and Stderr receive the process output. Whatever is left unset
	// is forwarded to the log instead (stdout at debug, stderr at error).
	Stdout io.Writer
	Stderr io.Writer
	// Stdin feeds the process, if set.
	Stdin io.Reader
	// Environment of the process, if set.
	Environment []string
}

// Target is the interface for something that can start processes.
type Target interface {
	// Start begins the execution of the command, returning the process.
	Start(cmd Cmd) (Process, error)
}

// Process is a started command.
type Process interface {
	// Wait blocks until the process completes or the context is cancelled.
	Wait(ctx context.Context) error
	// Kill terminates the process.
	Kill() error
}

// Command starts assembling an invocation of the named executable.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// With returns a copy of the Cmd with the args appended.
func (cmd Cmd) With(args ...string) Cmd {
	old := cmd.Args
	cmd.Args = make([]string, len(old)+len(args))
	copy(cmd.Args, old)
	copy(cmd.Args[len(old):], args)
	return cmd
}

// WithFlagged returns a copy of the Cmd with the flag repeated before each
// operand: WithFlagged("-D", "A=1", "B=2") appends -D A=1 -D B=2. This is
// the shape of the compiler's define and include argument lists.
func (cmd Cmd) WithFlagged(flag string, operands ...string) Cmd {
	old := cmd.Args
	cmd.Args = make([]string, len(old), len(old)+2*len(operands))
	copy(cmd.Args, old)
	for _, operand := range operands {
		cmd.Args = append(cmd.Args, flag, operand)
	}
	return cmd
}

// On returns a copy of the Cmd started by the given target.
func (cmd Cmd) On(target Target) Cmd {
	cmd.Target = target
	return cmd
}

// In returns a copy of the Cmd running in the given directory.
func (cmd Cmd) In(dir string) Cmd {
	cmd.Dir = dir
	return cmd
}

// Capture returns a copy of the Cmd writing its output to stdout and
// stderr.
func (cmd Cmd) Capture(stdout, stderr io.Writer) Cmd {
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd
}

// Env returns a copy of the Cmd with the process environment set.
func (cmd Cmd) Env(env []string) Cmd {
	cmd.Environment = env
	return cmd
}

// Run executes the command and blocks until it completes or the context is
// cancelled. Output streams nobody claimed end up in the log.
func (cmd Cmd) Run(ctx context.Context) error {
	// Value receiver: the fields are patched freely before the start.
	if cmd.Target == nil {
		cmd.Target = LocalTarget
	}
	if cmd.Dir != "" {
		ctx = log.V{"dir": cmd.Dir}.Bind(ctx)
	}
	logger := log.From(log.PutProcess(ctx, cmd.Name))
	if cmd.Stdout == nil {
		w := logger.Writer(log.Debug)
		defer w.Close()
		cmd.Stdout = w
	}
	if cmd.Stderr == nil {
		w := logger.Writer(log.Error)
		defer w.Close()
		cmd.Stderr = w
	}

	log.D(ctx, "Exec: %v", cmd)
	process, err := cmd.Target.Start(cmd)
	if err != nil {
		return log.Errf(ctx, err, "starting %s", cmd.Name)
	}
	if err := process.Wait(ctx); err != nil {
		return log.Errf(ctx, err, "%s returned an error", cmd.Name)
	}
	return nil
}

// Call runs the command with both output streams captured into one string,
// trimmed of surrounding whitespace. The output is returned alongside the
// run error so failures keep their diagnostics.
func (cmd Cmd) Call(ctx context.Context) (string, error) {
	buf := &bytes.Buffer{}
	err := cmd.Capture(buf, buf).Run(ctx)
	return strings.TrimSpace(buf.String()), err
}

// Format implements fmt.Formatter to print the command line the way it
// would be typed, quoting arguments that need it.
func (cmd Cmd) Format(f fmt.State, c rune) {
	fmt.Fprint(f, cmd.Name)
	for _, arg := range cmd.Args {
		if strings.ContainsAny(arg, " \t") {
			fmt.Fprintf(f, " %q", arg)
		} else {
			fmt.Fprintf(f, " %s", arg)
		}
	}
}
