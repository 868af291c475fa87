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

package crypt_test

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material/crypt"
)

func pattern(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = seed + byte(i*7)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	for _, keySize := range []int{16, 24, 32} {
		key := pattern(keySize, 0x11)
		nonce := pattern(12, 0x40)
		for _, n := range []int{0, 1, 15, 16, 17, 64, 1000} {
			plaintext := pattern(n, 0x80)
			ciphertext, err := crypt.Apply(key, nonce, plaintext)
			assert.For(ctx, "key%d n%d encrypt", keySize, n).ThatError(err).Succeeded()
			back, err := crypt.Apply(key, nonce, ciphertext)
			assert.For(ctx, "key%d n%d decrypt", keySize, n).ThatError(err).Succeeded()
			assert.For(ctx, "key%d n%d data", keySize, n).ThatSlice(back).Equals(plaintext)
		}
	}
}

// The stream must be exactly AES-GCM's data-encryption stream: seal with
// the standard library GCM, drop the tag, and the bytes have to match.
func TestMatchesGCMStream(t *testing.T) {
	ctx := log.Testing(t)
	key := pattern(32, 0x01)
	nonce := pattern(12, 0x90)
	plaintext := pattern(100, 0x33)

	block, err := aes.NewCipher(key)
	assert.For(ctx, "cipher").ThatError(err).Succeeded()
	gcm, err := cipher.NewGCM(block)
	assert.For(ctx, "gcm").ThatError(err).Succeeded()
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	want := sealed[:len(sealed)-gcm.Overhead()]

	got, err := crypt.Apply(key, nonce, plaintext)
	assert.For(ctx, "apply").ThatError(err).Succeeded()
	assert.For(ctx, "stream").ThatSlice(got).Equals(want)
}

// Extra nonce bytes beyond the counter block's 12 are ignored.
func TestLongNonce(t *testing.T) {
	ctx := log.Testing(t)
	key := pattern(16, 0x05)
	data := pattern(40, 0x21)
	a, err := crypt.Apply(key, pattern(12, 0x70), data)
	assert.For(ctx, "short").ThatError(err).Succeeded()
	b, err := crypt.Apply(key, append(pattern(12, 0x70), 0xaa, 0xbb), data)
	assert.For(ctx, "long").ThatError(err).Succeeded()
	assert.For(ctx, "streams").ThatSlice(b).Equals(a)
}

func TestShortNonce(t *testing.T) {
	ctx := log.Testing(t)
	_, err := crypt.Apply(pattern(16, 0x05), pattern(11, 0x70), []byte{1})
	assert.For(ctx, "err").ThatError(err).Equals(crypt.ErrShortNonce)
}

func TestBadKey(t *testing.T) {
	ctx := log.Testing(t)
	_, err := crypt.Apply(pattern(15, 0x05), pattern(12, 0x70), []byte{1})
	assert.For(ctx, "err").ThatError(err).Failed()
}

// A corrupted ciphertext decrypts to garbage rather than failing; the
// format stores no authentication tag.
func TestNoAuthentication(t *testing.T) {
	ctx := log.Testing(t)
	key := pattern(16, 0x13)
	nonce := pattern(12, 0x57)
	plaintext := pattern(64, 0x99)
	ciphertext, err := crypt.Apply(key, nonce, plaintext)
	assert.For(ctx, "encrypt").ThatError(err).Succeeded()
	ciphertext[10] ^= 0xff
	garbled, err := crypt.Apply(key, nonce, ciphertext)
	assert.For(ctx, "decrypt").ThatError(err).Succeeded()
	assert.For(ctx, "byte flipped").That(garbled[10]).Equals(plaintext[10] ^ 0xff)
	assert.For(ctx, "rest intact").ThatSlice(garbled[11:]).Equals(plaintext[11:])
}
