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

package compile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/compile"
	"github.com/rdtools/matc/matc/material"
)

const settingsTOML = `
platform = "Direct3D_SM65"
include_paths = ["include", "shared"]
compiler_args = ["-HV", "2021"]
compiler_path = "/opt/dxc/bin/dxc"
shader_dir = "shaders"

[defines]
FOO = "(1)"
BAR = "2"
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	ctx := log.Testing(t)
	s, err := compile.LoadSettings(writeSettings(t, settingsTOML))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "platform").ThatString(s.Platform).Equals("Direct3D_SM65")
	assert.For(ctx, "includes").That(s.IncludePaths).DeepEquals([]string{"include", "shared"})
	assert.For(ctx, "defines").That(s.Defines).DeepEquals(map[string]string{
		"FOO": "(1)", "BAR": "2",
	})

	opts, err := s.Options()
	assert.For(ctx, "options err").ThatError(err).Succeeded()
	assert.For(ctx, "options platform").That(opts.Platform).Equals(material.PlatformDirect3DSM65)
	assert.For(ctx, "options path").ThatString(opts.ExternalCompilerPath).Equals("/opt/dxc/bin/dxc")
}

func TestSettingsDefaults(t *testing.T) {
	ctx := log.Testing(t)
	s, err := compile.LoadSettings(writeSettings(t, ""))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	opts, err := s.Options()
	assert.For(ctx, "options err").ThatError(err).Succeeded()
	assert.For(ctx, "platform").That(opts.Platform).Equals(material.PlatformDirect3DSM65)
}

func TestSettingsErrors(t *testing.T) {
	ctx := log.Testing(t)

	_, err := compile.LoadSettings(writeSettings(t, "platform = ["))
	_, ok := err.(compile.SettingsError)
	assert.For(ctx, "toml kind").That(ok).IsTrue()

	_, err = compile.LoadSettings(writeSettings(t, `platform = "Direct3D_SM99"`))
	_, ok = err.(compile.SettingsError)
	assert.For(ctx, "platform kind").That(ok).IsTrue()

	_, err = compile.LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	_, ok = err.(compile.SettingsError)
	assert.For(ctx, "missing kind").That(ok).IsTrue()
}
