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
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rdtools/matc/matc/material"
)

// Settings is the user facing configuration of a compile run, loaded from a
// TOML file.
type Settings struct {
	// Platform is the shader platform name, e.g. "Direct3D_SM65".
	Platform string `toml:"platform"`
	// Defines are the user's global preprocessor defines.
	Defines map[string]string `toml:"defines"`
	// IncludePaths are extra include directories handed to the compiler.
	IncludePaths []string `toml:"include_paths"`
	// CompilerArgs are extra arguments appended to every compiler call.
	CompilerArgs []string `toml:"compiler_args"`
	// CompilerPath optionally pins the external compiler executable.
	CompilerPath string `toml:"compiler_path"`
	// ShaderDir is the root the directory source provider serves from.
	ShaderDir string `toml:"shader_dir"`
}

// LoadSettings reads and validates a TOML settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SettingsError{Path: path, Reason: err.Error()}
	}
	return parseSettings(path, data)
}

func parseSettings(path string, data []byte) (*Settings, error) {
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, SettingsError{Path: path, Reason: err.Error()}
	}
	if s.Platform != "" {
		if _, err := material.PlatformOfName(s.Platform); err != nil {
			return nil, SettingsError{Path: path, Reason: err.Error()}
		}
	}
	return &s, nil
}

// Options converts the settings to pipeline options. The platform defaults
// to Direct3D_SM65 when unset.
func (s *Settings) Options() (Options, error) {
	platform := material.PlatformDirect3DSM65
	if s.Platform != "" {
		p, err := material.PlatformOfName(s.Platform)
		if err != nil {
			return Options{}, err
		}
		platform = p
	}
	return Options{
		Platform:             platform,
		UserDefines:          s.Defines,
		IncludePaths:         s.IncludePaths,
		AdditionalArgs:       s.CompilerArgs,
		ExternalCompilerPath: s.CompilerPath,
	}, nil
}
