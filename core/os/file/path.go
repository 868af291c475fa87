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

// Package file provides a value type for paths and the scratch-file helpers
// used by the subprocess compiler adapter.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path is a clean absolute path with platform specific separators.
type Path struct{ value string }

// Abs is the primary constructor of new Path objects from strings using
// either the / or system separator.
func Abs(path string) Path {
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return Path{path}
	}
	return Path{filepath.Clean(abs)}
}

// Temp creates a new temp file and returns its path.
func Temp() (Path, error) {
	return TempWithExt("matc", "tmp")
}

// TempWithExt creates a new temp file with the given name and extension and
// returns its path.
func TempWithExt(name string, ext string) (Path, error) {
	p, err := os.CreateTemp("", fmt.Sprintf("%s*.%s", name, ext))
	if err != nil {
		return Path{}, err
	}
	p.Close()
	return Abs(p.Name()), nil
}

// IsEmpty returns true if the path has no value.
func (p Path) IsEmpty() bool { return p.value == "" }

// System returns the path in the system native format.
func (p Path) System() string { return p.value }

// String returns the path in the canonical slash format.
func (p Path) String() string { return filepath.ToSlash(p.value) }

// Basename returns the name part of the path (without directories).
func (p Path) Basename() string { return filepath.Base(p.value) }

// Parent returns the parent directory of the path.
func (p Path) Parent() Path { return Path{filepath.Dir(p.value)} }

// Join returns a path formed from joining this base with a child path.
func (p Path) Join(join ...string) Path {
	if len(join) == 0 {
		return p
	}
	return Abs(filepath.Join(p.value, filepath.Join(join...)))
}

// Exists returns true if the path exists.
func (p Path) Exists() bool {
	_, err := os.Stat(p.value)
	return err == nil
}

// Read returns the contents of the file at the path.
func (p Path) Read() ([]byte, error) {
	return os.ReadFile(p.value)
}

// Write stores the data in the file at the path.
func (p Path) Write(data []byte) error {
	return os.WriteFile(p.value, data, 0666)
}

// Remove deletes the file at the path.
func (p Path) Remove() error {
	return os.Remove(p.value)
}
