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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rdtools/matc/core/app"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/compile"
	"github.com/rdtools/matc/matc/material"
)

var compileVerb = &app.Verb{
	Name:       "compile",
	ShortHelp:  "Compile a material manifest into a container",
	ShortUsage: "-manifest <file> [-settings <file>] [-base <container>] -out <file>",
}

var compileFlags struct {
	manifest string
	settings string
	base     string
	out      string
}

func init() {
	compileVerb.Flags.StringVar(&compileFlags.manifest, "manifest", "", "material manifest JSON")
	compileVerb.Flags.StringVar(&compileFlags.settings, "settings", "", "user settings TOML")
	compileVerb.Flags.StringVar(&compileFlags.base, "base", "", "base container for register defines")
	compileVerb.Flags.StringVar(&compileFlags.out, "out", "", "output container file")
	compileVerb.Action = compileAction
	app.AddVerb(compileVerb)
}

func compileAction(ctx context.Context, args []string) error {
	if compileFlags.manifest == "" || compileFlags.out == "" {
		app.Usage(ctx, "compile needs -manifest and -out")
		return nil
	}

	manifestBytes, err := os.ReadFile(compileFlags.manifest)
	if err != nil {
		return err
	}
	manifest, err := compile.ParseManifest(manifestBytes)
	if err != nil {
		return err
	}

	settings := &compile.Settings{}
	if compileFlags.settings != "" {
		if settings, err = compile.LoadSettings(compileFlags.settings); err != nil {
			return err
		}
	}
	opts, err := settings.Options()
	if err != nil {
		return err
	}

	if compileFlags.base != "" {
		baseBytes, err := os.ReadFile(compileFlags.base)
		if err != nil {
			return err
		}
		base, err := material.Read(baseBytes)
		if err != nil {
			return err
		}
		opts.RegisterDefines = compile.RegisterDefines(base)
	}

	shaderDir := settings.ShaderDir
	if shaderDir == "" {
		shaderDir = filepath.Dir(compileFlags.manifest)
	}
	sources, err := compile.NewDirectorySource(shaderDir)
	if err != nil {
		return err
	}

	shared := compile.NewShared(func() (compile.Compiler, error) {
		return compile.NewDxcCompiler(opts.ExternalCompilerPath)
	})
	compiler, err := shared.Acquire()
	if err != nil {
		return err
	}
	defer compiler.Release()

	out, err := compile.CompileBytes(ctx, manifest, opts, compiler, sources)
	if err != nil {
		return err
	}
	if err := os.WriteFile(compileFlags.out, out, 0666); err != nil {
		return err
	}
	log.I(ctx, "Wrote %s (%d bytes)", compileFlags.out, len(out))
	return nil
}
