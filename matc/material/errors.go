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

package material

import "fmt"

// FormatError is the error returned for any structural violation found while
// reading or writing a container: bad magic, truncated input, length
// mismatches, disagreeing redundant fields.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return "material format error: " + e.Reason
}

func formatErrf(msg string, args ...interface{}) FormatError {
	return FormatError{Reason: fmt.Sprintf(msg, args...)}
}

// UnsupportedVersionError is returned when a container declares a version
// outside the supported range.
type UnsupportedVersionError struct {
	Version uint64
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported material version %d (supported: %d-%d)",
		e.Version, MinVersion, MaxVersion)
}

// InvalidEnumError is returned when a name does not belong to the enum kind
// it was looked up in, or a wire index has no assignment.
type InvalidEnumError struct {
	Name string
	Kind string
}

func (e InvalidEnumError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Name, e.Kind)
}

// EncryptionError is returned for unusable encryption declarations: the
// key-pair mode, or a tag that names no known mode.
type EncryptionError struct {
	Reason string
}

func (e EncryptionError) Error() string {
	return "material encryption error: " + e.Reason
}
