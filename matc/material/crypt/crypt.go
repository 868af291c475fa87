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

// Package crypt implements the body stream of passphrase encrypted
// containers.
//
// The format stores AES-GCM's data-encryption stream with the
// authentication tag omitted: AES-CTR over a counter block of the 12 byte
// nonce followed by a big-endian 32 bit counter that starts at 2 (GCM
// reserves counter 1 for the tag). There is no tag to verify, so a corrupt
// payload decrypts to garbage rather than an error; that is a property of
// the format, not a defect of this package.
package crypt

import (
	"crypto/aes"
	"encoding/binary"

	"github.com/rdtools/matc/core/fault"
)

// NonceSize is the number of nonce bytes entering the counter block.
const NonceSize = 12

// ErrShortNonce is returned when fewer than NonceSize nonce bytes are
// supplied.
const ErrShortNonce = fault.Const("encryption nonce shorter than 12 bytes")

const counterBase = 2

// Apply runs the keystream over data and returns the result. Encryption and
// decryption are the same operation. The key must be 16, 24 or 32 bytes;
// the nonce at least NonceSize bytes (extra bytes are ignored).
func Apply(key, nonce, data []byte) ([]byte, error) {
	if len(nonce) < NonceSize {
		return nil, ErrShortNonce
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	var counter [aes.BlockSize]byte
	copy(counter[:NonceSize], nonce[:NonceSize])

	out := make([]byte, len(data))
	var stream [aes.BlockSize]byte
	for i, c := 0, uint32(counterBase); i < len(data); i, c = i+aes.BlockSize, c+1 {
		binary.BigEndian.PutUint32(counter[NonceSize:], c)
		block.Encrypt(stream[:], counter[:])
		n := len(data) - i
		if n > aes.BlockSize {
			n = aes.BlockSize
		}
		for j := 0; j < n; j++ {
			out[i+j] = data[i+j] ^ stream[j]
		}
	}
	return out, nil
}
