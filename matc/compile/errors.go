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

import "fmt"

// SourceNotFoundError is returned by shader source providers for unknown
// file names.
type SourceNotFoundError struct {
	FileName string
}

func (e SourceNotFoundError) Error() string {
	return fmt.Sprintf("shader source %q not found", e.FileName)
}

// CompilerLoadError is returned when the external compiler cannot be
// opened.
type CompilerLoadError struct {
	Path   string
	Reason string
}

func (e CompilerLoadError) Error() string {
	return fmt.Sprintf("cannot load shader compiler %q: %s", e.Path, e.Reason)
}

// CompilerInvocationError is returned when the external compiler could not
// be run at all, as opposed to running and rejecting the shader.
type CompilerInvocationError struct {
	Reason string
}

func (e CompilerInvocationError) Error() string {
	return "shader compiler invocation failed: " + e.Reason
}

// CompilationError is returned when the external compiler rejects a shader.
// It carries the full diagnostic text so tools can present it verbatim.
type CompilationError struct {
	FileName    string
	Diagnostics string
}

func (e CompilationError) Error() string {
	return fmt.Sprintf("compiling %q failed:\n%s", e.FileName, e.Diagnostics)
}

// SettingsError is returned for unusable user settings files.
type SettingsError struct {
	Path   string
	Reason string
}

func (e SettingsError) Error() string {
	return fmt.Sprintf("bad settings %q: %s", e.Path, e.Reason)
}
