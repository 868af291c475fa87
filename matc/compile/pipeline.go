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

// Package compile turns a material manifest and user settings into a
// serialized material container: it resolves per-shader defines, drives the
// external HLSL compiler, wraps the object code in back-end shader
// wrappers, and assembles the result at the latest container version.
package compile

import (
	"context"

	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

// Options is the per-run configuration of the pipeline.
type Options struct {
	// Platform every shader of the run targets.
	Platform material.Platform
	// UserDefines come from settings; they lose against register and
	// per-shader defines.
	UserDefines map[string]string
	// RegisterDefines are the s_<Buffer>_REG bindings extracted from a base
	// material; they lose against per-shader defines.
	RegisterDefines map[string]string
	// IncludePaths handed to the compiler.
	IncludePaths []string
	// AdditionalArgs are prepended to the manifest and per-shader compiler
	// options.
	AdditionalArgs []string
	// ExternalCompilerPath optionally pins the compiler executable.
	ExternalCompilerPath string
}

// Compile builds the manifest into a Material at the latest container
// version: one pass, one all-platform variant, shaders in manifest order.
func Compile(ctx context.Context, manifest *MaterialManifest, opts Options,
	compiler Compiler, sources Source) (*material.Material, error) {

	ctx = log.Enter(ctx, "compile")
	ctx = log.V{"material": manifest.MaterialName}.Bind(ctx)

	shaders := make([]material.ShaderDefinition, 0, len(manifest.Shaders))
	for i := range manifest.Shaders {
		entry := &manifest.Shaders[i]
		def, err := compileShader(ctx, manifest, entry, opts, compiler, sources)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, def)
	}

	m := &material.Material{
		Version:    material.MaxVersion,
		Name:       manifest.MaterialName,
		Encryption: material.EncryptionNone,
		Passes: []material.Pass{{
			Name:               manifest.PassName,
			SupportedPlatforms: material.AllPlatforms(material.MaxVersion),
			DefaultBlendMode:   material.BlendUnspecified,
			Variants: []material.Variant{{
				IsSupported: true,
				Shaders:     shaders,
			}},
		}},
	}
	return m, nil
}

// CompileBytes is Compile followed by serialization.
func CompileBytes(ctx context.Context, manifest *MaterialManifest, opts Options,
	compiler Compiler, sources Source) ([]byte, error) {
	m, err := Compile(ctx, manifest, opts, compiler, sources)
	if err != nil {
		return nil, err
	}
	return material.Write(m)
}

func compileShader(ctx context.Context, manifest *MaterialManifest, entry *ShaderEntry,
	opts Options, compiler Compiler, sources Source) (material.ShaderDefinition, error) {

	var def material.ShaderDefinition
	ctx = log.V{"shader": entry.FileName}.Bind(ctx)

	source, err := sources.Load(ctx, entry.FileName)
	if err != nil {
		return def, err
	}

	defines := MergeDefines(opts.UserDefines, opts.RegisterDefines, entry.Defines)

	args := make([]string, 0,
		len(opts.AdditionalArgs)+len(manifest.CompilerOptions)+len(entry.CompilerOptions))
	args = append(args, opts.AdditionalArgs...)
	args = append(args, manifest.CompilerOptions...)
	args = append(args, entry.CompilerOptions...)

	log.D(ctx, "Compiling %s (%s, entry %s)", entry.Name, entry.TargetProfile, entry.EntryPoint)
	out, err := compiler.Compile(ctx, CompileInput{
		Source:        source,
		EntryPoint:    entry.EntryPoint,
		TargetProfile: entry.TargetProfile,
		Defines:       defines,
		IncludePaths:  opts.IncludePaths,
		Args:          args,
	})
	if err != nil {
		return def, err
	}
	if !out.Success {
		return def, CompilationError{FileName: entry.FileName, Diagnostics: out.Diagnostics}
	}

	return material.ShaderDefinition{
		Stage:    entry.Stage,
		Platform: opts.Platform,
		Hash:     0,
		Shader:   material.NewWrapper(entry.Stage, out.ObjectBytes),
	}, nil
}

// MergeDefines deep-merges define maps, rightmost wins: the user's defines
// lose to register bindings, which lose to per-shader defines.
func MergeDefines(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
