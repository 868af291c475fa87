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

package compile

import (
	"bytes"
	"context"
	"os/exec"
	"sort"
	"sync"

	"github.com/rdtools/matc/core/event/task"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/core/os/file"
	"github.com/rdtools/matc/core/os/shell"
)

// dxc is the out-of-process compiler adapter: it feeds the dxc executable a
// scratch source file and collects the object file written through -Fo.
// Calls are serialized; dxc itself is fine with concurrency but the
// in-process adapter this shares a contract with is not, and the pipeline
// relies on one behaviour.
type dxc struct {
	path   string
	target shell.Target

	mu sync.Mutex
}

// NewDxcCompiler opens the dxc executable adapter. An empty path searches
// the system path for "dxc".
func NewDxcCompiler(path string) (Compiler, error) {
	if path == "" {
		path = "dxc"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, CompilerLoadError{Path: path, Reason: err.Error()}
	}
	return &dxc{path: resolved}, nil
}

func (d *dxc) Compile(ctx context.Context, in CompileInput) (CompileOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if task.Stopped(ctx) {
		return CompileOutput{}, task.StopReason(ctx)
	}

	src, err := file.TempWithExt("matc-src", "hlsl")
	if err != nil {
		return CompileOutput{}, CompilerInvocationError{Reason: err.Error()}
	}
	defer src.Remove()
	obj, err := file.TempWithExt("matc-obj", "bin")
	if err != nil {
		return CompileOutput{}, CompilerInvocationError{Reason: err.Error()}
	}
	defer obj.Remove()

	if err := src.Write(in.Source); err != nil {
		return CompileOutput{}, CompilerInvocationError{Reason: err.Error()}
	}

	defines := make([]string, 0, len(in.Defines))
	for _, k := range sortedKeys(in.Defines) {
		defines = append(defines, k+"="+in.Defines[k])
	}
	cmd := shell.Command(d.path,
		"-T", in.TargetProfile,
		"-E", in.EntryPoint,
		"-Fo", obj.System(),
	).
		WithFlagged("-D", defines...).
		WithFlagged("-I", in.IncludePaths...).
		With(in.Args...).
		With(src.System())
	if d.target != nil {
		cmd = cmd.On(d.target)
	}

	buf := &bytes.Buffer{}
	runErr := cmd.Capture(buf, buf).Run(ctx)
	if task.Stopped(ctx) {
		return CompileOutput{}, task.StopReason(ctx)
	}
	out := CompileOutput{Diagnostics: buf.String()}
	if runErr != nil {
		log.D(ctx, "dxc rejected %q: %v", in.EntryPoint, runErr)
		return out, nil
	}
	objectBytes, err := obj.Read()
	if err != nil {
		return out, CompilerInvocationError{Reason: "no object file: " + err.Error()}
	}
	out.Success = true
	out.ObjectBytes = objectBytes
	return out, nil
}

// Release is a no-op for the executable adapter; it exists to satisfy the
// shared lifecycle contract.
func (d *dxc) Release() {}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
