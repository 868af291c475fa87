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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rdtools/matc/core/app"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/decompile"
	"github.com/rdtools/matc/matc/material"
)

var decompileVerb = &app.Verb{
	Name:       "decompile",
	ShortHelp:  "Reconstruct conditional shader sources from a container",
	ShortUsage: "[-pass <name>] [-timeout <duration>] -out <dir> <container file>",
}

var decompileFlags struct {
	pass    string
	timeout time.Duration
	raw     bool
	out     string
}

func init() {
	decompileVerb.Flags.StringVar(&decompileFlags.pass, "pass", "", "only this pass (default: all)")
	decompileVerb.Flags.DurationVar(&decompileFlags.timeout, "timeout", time.Second,
		"brute-force budget per expression search")
	decompileVerb.Flags.BoolVar(&decompileFlags.raw, "raw", false,
		"skip text normalization before diffing")
	decompileVerb.Flags.StringVar(&decompileFlags.out, "out", "", "output directory")
	decompileVerb.Action = decompileAction
	app.AddVerb(decompileVerb)
}

func decompileAction(ctx context.Context, args []string) error {
	if len(args) != 1 || decompileFlags.out == "" {
		app.Usage(ctx, "decompile expects -out and one container file")
		return nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	m, err := material.Read(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(decompileFlags.out, 0777); err != nil {
		return err
	}

	opts := decompile.Options{
		Preprocess:    !decompileFlags.raw,
		SearchTimeout: decompileFlags.timeout,
	}

	for pi := range m.Passes {
		p := &m.Passes[pi]
		if decompileFlags.pass != "" && p.Name != decompileFlags.pass {
			continue
		}
		ctx := log.Enter(ctx, p.Name)
		for _, ps := range decompile.PassPlatformStages(p) {
			perms := decompile.PassPermutations(p, ps.Platform, ps.Stage)
			if len(perms) == 0 {
				continue
			}
			result, err := decompile.Decompile(perms, opts)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s.%s.%s%s", sanitize(p.Name), ps.Platform, ps.Stage, stageExt(ps.Stage))
			path := filepath.Join(decompileFlags.out, name)
			if err := os.WriteFile(path, []byte(result.Code), 0666); err != nil {
				return err
			}
			log.I(ctx, "Wrote %s (%d variants, %d macros)", path, len(perms), len(result.UsedMacros))
		}

		varying, err := decompile.RestoreVaryingDef(decompile.PassVaryings(p), decompileFlags.timeout)
		if err != nil {
			return err
		}
		if varying != "" {
			path := filepath.Join(decompileFlags.out, sanitize(p.Name)+".varying.def.sc")
			if err := os.WriteFile(path, []byte(varying), 0666); err != nil {
				return err
			}
			log.I(ctx, "Wrote %s", path)
		}
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}

func stageExt(s material.Stage) string {
	switch s {
	case material.StageVertex:
		return ".vert.sc"
	case material.StageFragment:
		return ".frag.sc"
	case material.StageCompute:
		return ".comp.sc"
	default:
		return ".sc"
	}
}
