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

package endian_test

import (
	"testing"

	"github.com/rdtools/matc/core/assert"
	"github.com/rdtools/matc/core/data/binary"
	"github.com/rdtools/matc/core/data/endian"
	"github.com/rdtools/matc/core/log"
)

type test struct {
	name  string
	write func(binary.Writer)
	read  func(binary.Reader) interface{}
	value interface{}
	data  []byte
}

var tests = []test{
	{"Bool",
		func(w binary.Writer) { w.Bool(true); w.Bool(false) },
		func(r binary.Reader) interface{} { return []bool{r.Bool(), r.Bool()} },
		[]bool{true, false},
		[]byte{1, 0},
	},
	{"Uint8",
		func(w binary.Writer) { w.Uint8(0x00); w.Uint8(0x7f); w.Uint8(0xff) },
		func(r binary.Reader) interface{} { return []uint8{r.Uint8(), r.Uint8(), r.Uint8()} },
		[]uint8{0x00, 0x7f, 0xff},
		[]byte{0x00, 0x7f, 0xff},
	},
	{"Uint16",
		func(w binary.Writer) { w.Uint16(0); w.Uint16(0xbeef); w.Uint16(0xc0de) },
		func(r binary.Reader) interface{} { return []uint16{r.Uint16(), r.Uint16(), r.Uint16()} },
		[]uint16{0, 0xbeef, 0xc0de},
		[]byte{
			0x00, 0x00,
			0xef, 0xbe,
			0xde, 0xc0,
		}},
	{"Uint32",
		func(w binary.Writer) { w.Uint32(0x01234567) },
		func(r binary.Reader) interface{} { return []uint32{r.Uint32()} },
		[]uint32{0x01234567},
		[]byte{0x67, 0x45, 0x23, 0x01},
	},
	{"Uint64",
		func(w binary.Writer) { w.Uint64(0x0123456789abcdef) },
		func(r binary.Reader) interface{} { return []uint64{r.Uint64()} },
		[]uint64{0x0123456789abcdef},
		[]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01},
	},
	{"Float32",
		func(w binary.Writer) { w.Float32(1.0) },
		func(r binary.Reader) interface{} { return []float32{r.Float32()} },
		[]float32{1.0},
		[]byte{0x00, 0x00, 0x80, 0x3f},
	},
	{"String",
		func(w binary.Writer) { w.String("Hello") },
		func(r binary.Reader) interface{} { return []string{r.String()} },
		[]string{"Hello"},
		[]byte{0x05, 0x00, 0x00, 0x00, 'H', 'e', 'l', 'l', 'o'},
	},
	{"ByteArray",
		func(w binary.Writer) { w.ByteArray([]byte{0xaa, 0xbb}) },
		func(r binary.Reader) interface{} { return [][]byte{r.ByteArray()} },
		[][]byte{{0xaa, 0xbb}},
		[]byte{0x02, 0x00, 0x00, 0x00, 0xaa, 0xbb},
	},
	{"Float32Array",
		func(w binary.Writer) { w.Float32Array([]float32{1, 2}) },
		func(r binary.Reader) interface{} { return [][]float32{r.Float32Array(2)} },
		[][]float32{{1, 2}},
		[]byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40},
	},
}

func TestWriter(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range tests {
		w := endian.Writer()
		test.write(w)
		got, err := w.Finish()
		assert.For(ctx, "%s err", test.name).ThatError(err).Succeeded()
		assert.For(ctx, "%s bytes", test.name).ThatSlice(got).Equals(test.data)
	}
}

func TestReader(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range tests {
		r := endian.Reader(test.data)
		got := test.read(r)
		assert.For(ctx, "%s err", test.name).ThatError(r.Error()).Succeeded()
		assert.For(ctx, "%s value", test.name).That(got).DeepEquals(test.value)
		assert.For(ctx, "%s remaining", test.name).That(r.Remaining()).Equals(uint32(0))
	}
}

func TestShortRead(t *testing.T) {
	ctx := log.Testing(t)
	r := endian.Reader([]byte{0x01, 0x02})
	r.Uint32()
	assert.For(ctx, "err").ThatError(r.Error()).Equals(binary.ErrShortRead)
	// Reads after the error keep returning zero values.
	assert.For(ctx, "sticky value").That(r.Uint8()).Equals(uint8(0))
	assert.For(ctx, "sticky err").ThatError(r.Error()).Equals(binary.ErrShortRead)
}

func TestShortArray(t *testing.T) {
	ctx := log.Testing(t)
	// Declares 100 bytes but holds 1.
	r := endian.Reader([]byte{100, 0x00, 0x00, 0x00, 0xff})
	assert.For(ctx, "bytes").That(len(r.ByteArray())).Equals(0)
	assert.For(ctx, "err").ThatError(r.Error()).Equals(binary.ErrShortRead)
}

func TestInvalidUTF8(t *testing.T) {
	ctx := log.Testing(t)
	r := endian.Reader([]byte{0x02, 0x00, 0x00, 0x00, 0xff, 0xfe})
	assert.For(ctx, "value").That(r.String()).Equals("")
	assert.For(ctx, "err").ThatError(r.Error()).Equals(binary.ErrInvalidUTF8)
}

func TestWriterSetError(t *testing.T) {
	ctx := log.Testing(t)
	w := endian.Writer()
	w.Uint8(1)
	w.SetError(binary.ErrShortRead)
	w.Uint8(2)
	got, err := w.Finish()
	assert.For(ctx, "err").ThatError(err).Equals(binary.ErrShortRead)
	assert.For(ctx, "bytes").ThatSlice(got).Equals([]byte{1})
}
