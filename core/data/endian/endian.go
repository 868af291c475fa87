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

// Package endian implements the binary reader and writer contracts over
// owned byte buffers. All multi-byte values are little-endian; the material
// container knows no other byte order.
package endian

import (
	eb "encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/rdtools/matc/core/data/binary"
)

// Reader creates a binary.Reader that consumes data from the front.
// The reader borrows data; callers must not mutate it while reading.
func Reader(data []byte) binary.Reader {
	return &reader{data: data}
}

// Writer creates a binary.Writer over a growable buffer.
func Writer() binary.Writer {
	return &writer{}
}

type reader struct {
	data []byte
	pos  int
	err  error
}

type writer struct {
	buf []byte
	tmp [8]byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.data) || r.pos+n < r.pos {
		r.err = binary.ErrShortRead
		return nil
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *reader) Data(p []byte) {
	if b := r.take(len(p)); b != nil {
		copy(p, b)
	}
}

func (r *reader) Bytes(n uint32) []byte {
	b := r.take(int(n))
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *reader) Bool() bool {
	return r.Uint8() != 0
}

func (r *reader) Uint8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) Uint16() uint16 {
	if b := r.take(2); b != nil {
		return eb.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *reader) Uint32() uint32 {
	if b := r.take(4); b != nil {
		return eb.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) Uint64() uint64 {
	if b := r.take(8); b != nil {
		return eb.LittleEndian.Uint64(b)
	}
	return 0
}

func (r *reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *reader) Float32Array(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.Float32()
	}
	if r.err != nil {
		return nil
	}
	return out
}

func (r *reader) ByteArray() []byte {
	n := r.Uint32()
	return r.Bytes(n)
}

func (r *reader) String() string {
	b := r.ByteArray()
	if r.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.err = binary.ErrInvalidUTF8
		return ""
	}
	return string(b)
}

func (r *reader) Remaining() uint32 {
	return uint32(len(r.data) - r.pos)
}

func (r *reader) Error() error { return r.err }

func (r *reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

func (w *writer) Data(p []byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, p...)
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (w *writer) Uint16(v uint16) {
	eb.LittleEndian.PutUint16(w.tmp[:], v)
	w.Data(w.tmp[:2])
}

func (w *writer) Uint32(v uint32) {
	eb.LittleEndian.PutUint32(w.tmp[:], v)
	w.Data(w.tmp[:4])
}

func (w *writer) Uint64(v uint64) {
	eb.LittleEndian.PutUint64(w.tmp[:], v)
	w.Data(w.tmp[:8])
}

func (w *writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *writer) Float32Array(v []float32) {
	for _, f := range v {
		w.Float32(f)
	}
}

func (w *writer) ByteArray(v []byte) {
	w.Uint32(uint32(len(v)))
	w.Data(v)
}

func (w *writer) String(v string) {
	w.ByteArray([]byte(v))
}

func (w *writer) Finish() ([]byte, error) {
	return w.buf, w.err
}

func (w *writer) Error() error { return w.err }

func (w *writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
