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

// Package binary holds the reader and writer contracts used by the
// container codec.
package binary

import "github.com/rdtools/matc/core/fault"

const (
	// ErrShortRead is the sticky error set when a read runs past the end of
	// the underlying buffer.
	ErrShortRead = fault.Const("short read: offset beyond end of buffer")
	// ErrInvalidUTF8 is the sticky error set when a string read decodes to
	// invalid UTF-8.
	ErrInvalidUTF8 = fault.Const("invalid utf-8 sequence in string")
)

// Reader provides methods for decoding values from a byte stream.
//
// If there is an error reading any input, all further reading returns the
// zero value of the type read. Error() returns the error which stopped
// reading from the stream.
type Reader interface {
	// Data reads len(p) bytes into p in their entirety.
	Data(p []byte)
	// Bytes reads and returns n bytes from the Reader.
	Bytes(n uint32) []byte
	// Bool decodes and returns a boolean value from the Reader.
	Bool() bool
	// Uint8 decodes and returns an unsigned, 8 bit integer value from the Reader.
	Uint8() uint8
	// Uint16 decodes and returns an unsigned, 16 bit integer value from the Reader.
	Uint16() uint16
	// Uint32 decodes and returns an unsigned, 32 bit integer value from the Reader.
	Uint32() uint32
	// Uint64 decodes and returns an unsigned, 64 bit integer value from the Reader.
	Uint64() uint64
	// Float32 decodes and returns a 32 bit floating-point value from the Reader.
	Float32() float32
	// Float32Array decodes and returns n consecutive 32 bit floating-point
	// values from the Reader.
	Float32Array(n int) []float32
	// ByteArray decodes a u32 length followed by that many raw bytes.
	ByteArray() []byte
	// String decodes a u32 length followed by that many bytes of UTF-8.
	String() string
	// Remaining returns the number of unread bytes left in the buffer.
	Remaining() uint32
	// Error returns the error that stopped reading, if any.
	Error() error
	// SetError sets the error state and stops further reading.
	SetError(error)
}

// Writer provides methods for encoding values to a growable byte buffer.
//
// If any write fails, all further writes are ignored and Error() returns the
// error which stopped the stream.
type Writer interface {
	// Data writes the bytes of p in their entirety.
	Data(p []byte)
	// Bool encodes a boolean value to the Writer.
	Bool(v bool)
	// Uint8 encodes an unsigned, 8 bit integer value to the Writer.
	Uint8(v uint8)
	// Uint16 encodes an unsigned, 16 bit integer value to the Writer.
	Uint16(v uint16)
	// Uint32 encodes an unsigned, 32 bit integer value to the Writer.
	Uint32(v uint32)
	// Uint64 encodes an unsigned, 64 bit integer value to the Writer.
	Uint64(v uint64)
	// Float32 encodes a 32 bit floating-point value to the Writer.
	Float32(v float32)
	// Float32Array encodes the values consecutively to the Writer.
	Float32Array(v []float32)
	// ByteArray encodes a u32 length followed by the raw bytes.
	ByteArray(v []byte)
	// String encodes a u32 length followed by the UTF-8 bytes.
	String(v string)
	// Finish returns the accumulated bytes and the sticky error, if any.
	Finish() ([]byte, error)
	// Error returns the error that stopped writing, if any.
	Error() error
	// SetError sets the error state and stops further writing.
	SetError(error)
}
