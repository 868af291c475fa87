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
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rdtools/matc/matc/material"
)

// ShaderEntry describes one shader of a material manifest.
type ShaderEntry struct {
	Name            string            `json:"name"`
	FileName        string            `json:"fileName"`
	Stage           material.Stage    `json:"-"`
	EntryPoint      string            `json:"entryPoint"`
	TargetProfile   string            `json:"targetProfile"`
	Defines         map[string]string `json:"defines"`
	CompilerOptions []string          `json:"compilerOptions"`
}

// UnmarshalJSON decodes the entry with the stage given by name.
func (e *ShaderEntry) UnmarshalJSON(data []byte) error {
	type alias ShaderEntry
	var raw struct {
		alias
		Stage string `json:"stage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stage, err := material.StageOfName(raw.Stage)
	if err != nil {
		return err
	}
	*e = ShaderEntry(raw.alias)
	e.Stage = stage
	return nil
}

// MarshalJSON encodes the entry with the stage given by name.
func (e ShaderEntry) MarshalJSON() ([]byte, error) {
	type alias ShaderEntry
	return json.Marshal(struct {
		alias
		Stage string `json:"stage"`
	}{alias(e), e.Stage.String()})
}

// MaterialManifest describes one material build: its name, the pass being
// built, and the shaders to compile in order.
type MaterialManifest struct {
	MaterialName    string        `json:"materialName"`
	PassName        string        `json:"passName"`
	Shaders         []ShaderEntry `json:"shaders"`
	CompilerOptions []string      `json:"compilerOptions"`
}

// ParseManifest decodes a JSON manifest.
func ParseManifest(data []byte) (*MaterialManifest, error) {
	var m MaterialManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parsing material manifest")
	}
	return &m, nil
}
