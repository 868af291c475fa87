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
	"context"
	"sync"
)

// CompileInput is one request to the external shader compiler.
type CompileInput struct {
	Source        []byte
	EntryPoint    string
	TargetProfile string
	Defines       map[string]string
	IncludePaths  []string
	Args          []string
}

// CompileOutput is the external compiler's answer. ObjectBytes are owned by
// the caller after return.
type CompileOutput struct {
	Success     bool
	ObjectBytes []byte
	Diagnostics string
}

// Compiler is the contract the pipeline depends on. Implementations must be
// callable repeatedly; Release is idempotent.
type Compiler interface {
	Compile(ctx context.Context, in CompileInput) (CompileOutput, error)
	Release()
}

// Shared is the lazily initialized, reference counted compiler instance of
// the process. The underlying compiler is created on first Acquire, calls
// into it are serialized by the adapters, and it is torn down when the last
// holder releases it.
type Shared struct {
	newCompiler func() (Compiler, error)

	mu   sync.Mutex
	c    Compiler
	refs int
}

// NewShared wraps a compiler constructor in a shared lifecycle.
func NewShared(newCompiler func() (Compiler, error)) *Shared {
	return &Shared{newCompiler: newCompiler}
}

// Acquire returns the shared compiler, creating it on first use. Every
// successful Acquire must be paired with a Release on the returned handle.
func (s *Shared) Acquire() (Compiler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		c, err := s.newCompiler()
		if err != nil {
			return nil, err
		}
		s.c = c
	}
	s.refs++
	return &sharedHandle{owner: s}, nil
}

type sharedHandle struct {
	owner    *Shared
	released bool
	mu       sync.Mutex
}

func (h *sharedHandle) Compile(ctx context.Context, in CompileInput) (CompileOutput, error) {
	h.owner.mu.Lock()
	c := h.owner.c
	h.owner.mu.Unlock()
	if c == nil {
		return CompileOutput{}, CompilerInvocationError{Reason: "compiler already released"}
	}
	return c.Compile(ctx, in)
}

// Release drops this handle's reference. Double release is a no-op. The
// underlying compiler is released when the last reference goes.
func (h *sharedHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.mu.Unlock()

	s := h.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs--
	if s.refs == 0 && s.c != nil {
		s.c.Release()
		s.c = nil
	}
}
