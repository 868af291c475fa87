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
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/rdtools/matc/core/app"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

func init() {
	app.AddVerb(&app.Verb{
		Name:       "info",
		ShortHelp:  "Print a summary of a material container",
		ShortUsage: "<container file>",
		Action:     infoAction,
	})
}

func infoAction(ctx context.Context, args []string) error {
	if len(args) != 1 {
		app.Usage(ctx, "info expects one container file")
		return nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	// The plaintext pre-body describes even containers whose body cannot be
	// decoded, like key-pair encrypted ones or unsupported versions.
	info, err := material.Inspect(data)
	if err != nil {
		return err
	}
	if info.Name != "" {
		fmt.Printf("Name:       %s\n", info.Name)
	}
	fmt.Printf("Version:    %d\n", info.Version)
	fmt.Printf("Encryption: %s\n", info.Encryption)

	m, err := material.Read(data)
	if err != nil {
		log.W(ctx, "Body not decodable: %v", err)
		return nil
	}
	if info.Name == "" {
		fmt.Printf("Name:       %s\n", m.Name)
	}
	if m.Parent != "" {
		fmt.Printf("Parent:     %s\n", m.Parent)
	}
	fmt.Printf("Buffers:    %d   Uniforms: %d   Passes: %d\n\n",
		len(m.Buffers), len(m.Uniforms), len(m.Passes))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Pass", "Variants", "Shaders", "Blend", "Fallback"})
	for i := range m.Passes {
		p := &m.Passes[i]
		shaders := 0
		for vi := range p.Variants {
			shaders += len(p.Variants[vi].Shaders)
		}
		table.Append([]string{
			p.Name,
			strconv.Itoa(len(p.Variants)),
			strconv.Itoa(shaders),
			p.DefaultBlendMode.String(),
			p.FallbackPass,
		})
	}
	table.Render()
	return nil
}
