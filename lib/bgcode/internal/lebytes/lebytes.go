// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

// Package lebytes reads and writes little-endian scalars out of byte
// slices, with explicit bounds checks rather than panicking slice
// expressions. Grounded on the u48LE/u64LE helpers in
// github.com/google/wuffs/lib/rac/chunk_reader.go, generalized to the u16
// and u32 widths the bgcode block and file headers use.
package lebytes

import "errors"

// ErrShortBuffer is returned when buf does not hold enough bytes at offset
// to satisfy the requested read.
var ErrShortBuffer = errors.New("lebytes: short buffer")

// Uint16 reads a little-endian uint16 at offset.
func Uint16(buf []byte, offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(buf) {
		return 0, ErrShortBuffer
	}
	return uint16(buf[offset]) | uint16(buf[offset+1])<<8, nil
}

// Uint32 reads a little-endian uint32 at offset.
func Uint32(buf []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, ErrShortBuffer
	}
	return uint32(buf[offset]) | uint32(buf[offset+1])<<8 |
		uint32(buf[offset+2])<<16 | uint32(buf[offset+3])<<24, nil
}

// PutUint16 appends the little-endian encoding of v to buf.
func PutUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// PutUint32 appends the little-endian encoding of v to buf.
func PutUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
