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

import "github.com/rdtools/matc/core/data/endian"

// Info is the plaintext pre-body summary of a container file.
type Info struct {
	Version    uint64
	Encryption EncryptionMode
	// Name is only available for unencrypted containers; the name of an
	// encrypted one lives inside the ciphertext.
	Name string
}

// Inspect reads the plaintext pre-body fields of a container without
// decrypting or validating the body. Unsupported versions and the key-pair
// mode are still reported rather than rejected, so tools can describe files
// they cannot fully read.
func Inspect(data []byte) (Info, error) {
	var info Info
	r := endian.Reader(data)
	if magic := r.Uint64(); r.Error() == nil && magic != Magic {
		return info, formatErrf("bad leading magic %#x", magic)
	}
	if id := r.String(); r.Error() == nil && id != Identifier {
		return info, formatErrf("bad identifier %q", id)
	}
	info.Version = r.Uint64()
	tag := make([]byte, 4)
	r.Data(tag)
	if err := r.Error(); err != nil {
		return info, FormatError{Reason: err.Error()}
	}
	reverse4(tag)
	mode, err := EncryptionModeOfTag(string(tag))
	if err != nil {
		return info, EncryptionError{Reason: err.Error()}
	}
	info.Encryption = mode
	if mode == EncryptionNone {
		info.Name = r.String()
		if err := r.Error(); err != nil {
			return info, FormatError{Reason: err.Error()}
		}
	}
	return info, nil
}
