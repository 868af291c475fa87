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

package shell_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/fault"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/core/os/shell"
)

const errStub = fault.Const("StubFailure")

// stubTarget records the command it was started with and plays a scripted
// process.
type stubTarget struct {
	started []shell.Cmd
	stdout  string
	err     error
}

type stubProcess struct {
	err error
}

func (t *stubTarget) Start(cmd shell.Cmd) (shell.Process, error) {
	t.started = append(t.started, cmd)
	if t.stdout != "" && cmd.Stdout != nil {
		fmt.Fprint(cmd.Stdout, t.stdout)
	}
	return &stubProcess{err: t.err}, nil
}

func (p *stubProcess) Wait(ctx context.Context) error { return p.err }
func (p *stubProcess) Kill() error                    { return nil }

func TestCommandBuilder(t *testing.T) {
	ctx := log.Testing(t)
	base := shell.Command("dxc", "-T", "cs_6_5")
	derived := base.With("-E", "CSMain").In("/tmp")

	// The base command is unchanged by derivation.
	assert.For(ctx, "base args").That(base.Args).DeepEquals([]string{"-T", "cs_6_5"})
	assert.For(ctx, "derived args").That(derived.Args).
		DeepEquals([]string{"-T", "cs_6_5", "-E", "CSMain"})
	assert.For(ctx, "dir").ThatString(derived.Dir).Equals("/tmp")
}

func TestWithFlagged(t *testing.T) {
	ctx := log.Testing(t)
	cmd := shell.Command("dxc").
		WithFlagged("-D", "FOO=(1)", "BAR=2").
		WithFlagged("-I", "include")
	assert.For(ctx, "args").That(cmd.Args).
		DeepEquals([]string{"-D", "FOO=(1)", "-D", "BAR=2", "-I", "include"})

	// No operands, no flags.
	assert.For(ctx, "empty").That(len(shell.Command("dxc").WithFlagged("-D").Args)).Equals(0)
}

func TestRunOnTarget(t *testing.T) {
	ctx := log.Testing(t)
	target := &stubTarget{stdout: "compiled ok\n"}
	out, err := shell.Command("dxc", "-help").On(target).Call(ctx)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "output").ThatString(out).Equals("compiled ok")
	assert.For(ctx, "started").That(len(target.started)).Equals(1)
	assert.For(ctx, "name").ThatString(target.started[0].Name).Equals("dxc")
}

func TestRunFailure(t *testing.T) {
	ctx := log.Testing(t)
	target := &stubTarget{err: errStub}
	err := shell.Command("dxc").On(target).Run(ctx)
	assert.For(ctx, "err").ThatError(err).Failed()
}

func TestFormat(t *testing.T) {
	ctx := log.Testing(t)
	cmd := shell.Command("dxc", "-E", "main entry")
	assert.For(ctx, "format").ThatString(fmt.Sprintf("%v", cmd)).
		Equals(`dxc -E "main entry"`)
}
