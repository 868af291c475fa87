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

package material_test

import (
	"bytes"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

func buildEncrypted(version uint64) *material.Material {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	for i := range key {
		key[i] = byte(i + 1)
	}
	for i := range nonce {
		nonce[i] = byte(0xa0 + i)
	}
	return buildMaterial(version).
		WithEncryption(material.EncryptionSimplePassphrase, key, nonce)
}

func TestEncryptedRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	m := buildEncrypted(25)
	data, err := material.Write(m)
	assert.For(ctx, "write").ThatError(err).Succeeded()

	// The body is ciphertext: the material name must not be visible.
	assert.For(ctx, "opaque").That(bytes.Contains(data, []byte("Actor"))).IsFalse()
	// The pre-body stays plaintext.
	assert.For(ctx, "identifier").
		That(bytes.Contains(data, []byte(material.Identifier))).IsTrue()
	assert.For(ctx, "tag").That(bytes.Contains(data, []byte("LPMS"))).IsTrue()

	got, err := material.Read(data)
	assert.For(ctx, "read").ThatError(err).Succeeded()
	assert.For(ctx, "material").That(got).DeepEquals(m)

	again, err := material.Write(got)
	assert.For(ctx, "rewrite").ThatError(err).Succeeded()
	assert.For(ctx, "bytes").ThatSlice(again).Equals(data)
}

// Corruption is not detected by the cipher (no tag); it surfaces as a
// format error once the garbled body is parsed.
func TestEncryptedCorruption(t *testing.T) {
	ctx := log.Testing(t)
	data, err := material.Write(buildEncrypted(25))
	assert.For(ctx, "write").ThatError(err).Succeeded()
	// The last ciphertext byte decrypts into the trailing magic.
	data[len(data)-1] ^= 0x01
	_, err = material.Read(data)
	assertFormatError(ctx, err)
}

func TestEncryptedNeedsKeyAndNonce(t *testing.T) {
	ctx := log.Testing(t)
	m := buildMaterial(25).WithEncryption(material.EncryptionSimplePassphrase, nil, nil)
	_, err := material.Write(m)
	_, ok := err.(material.EncryptionError)
	assert.For(ctx, "kind").That(ok).IsTrue()
}

func TestInspect(t *testing.T) {
	ctx := log.Testing(t)

	plain, err := material.Write(buildMaterial(24))
	assert.For(ctx, "write").ThatError(err).Succeeded()
	info, err := material.Inspect(plain)
	assert.For(ctx, "plain err").ThatError(err).Succeeded()
	assert.For(ctx, "plain").That(info).
		Equals(material.Info{Version: 24, Encryption: material.EncryptionNone, Name: "Actor"})

	sealed, err := material.Write(buildEncrypted(25))
	assert.For(ctx, "sealed write").ThatError(err).Succeeded()
	info, err = material.Inspect(sealed)
	assert.For(ctx, "sealed err").ThatError(err).Succeeded()
	assert.For(ctx, "sealed").That(info).
		Equals(material.Info{Version: 25, Encryption: material.EncryptionSimplePassphrase})
}
