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

package bgcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Compare against these with errors.Is; the typed errors
// below (InvalidChecksumError, UnsupportedXxxError, ...) also satisfy
// errors.Is against the matching sentinel via Unwrap.
var (
	ErrShortBuffer             = errors.New("bgcode: short buffer")
	ErrMeatpackDecoderRequired = errors.New("bgcode: meatpack decoder required")
	ErrLengthMismatch          = errors.New("bgcode: decompressed length mismatch")
	ErrMeatpack                = errors.New("bgcode: meatpack adapter error")

	errInvalidMagic        = errors.New("bgcode: invalid magic")
	errInvalidChecksumType = errors.New("bgcode: invalid checksum type")
	errInvalidChecksum     = errors.New("bgcode: invalid checksum")
	errUnsupportedKind     = errors.New("bgcode: unsupported block kind")
	errUnsupportedCompress = errors.New("bgcode: unsupported compression")
	errUnsupportedEncoding = errors.New("bgcode: unsupported encoding")
	errDecompress          = errors.New("bgcode: decompress error")
	errSerialise           = errors.New("bgcode: serialise error")
)

// InvalidMagicError reports a file header whose magic number does not match
// the bgcode constant.
type InvalidMagicError struct{ Got uint32 }

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("bgcode: invalid magic: got %#08x", e.Got)
}
func (e *InvalidMagicError) Unwrap() error { return errInvalidMagic }

func newInvalidMagic(got uint32) error { return &InvalidMagicError{Got: got} }

// InvalidChecksumTypeError reports an unknown checksum code in a file header.
type InvalidChecksumTypeError struct{ Got uint16 }

func (e *InvalidChecksumTypeError) Error() string {
	return fmt.Sprintf("bgcode: invalid checksum type: %d", e.Got)
}
func (e *InvalidChecksumTypeError) Unwrap() error { return errInvalidChecksumType }

func newInvalidChecksumType(got uint16) error { return &InvalidChecksumTypeError{Got: got} }

// InvalidChecksumError reports a block whose trailing CRC32 does not match
// the bytes that precede it.
type InvalidChecksumError struct {
	Expected uint32
	Got      uint32
}

func (e *InvalidChecksumError) Error() string {
	return fmt.Sprintf("bgcode: invalid checksum: expected %#08x, got %#08x", e.Expected, e.Got)
}
func (e *InvalidChecksumError) Unwrap() error { return errInvalidChecksum }

// NewInvalidChecksum constructs an InvalidChecksumError. Exported so callers
// constructing synthetic fixtures in tests can match on the same shape the
// deserializer produces.
func NewInvalidChecksum(expected, got uint32) error {
	return &InvalidChecksumError{Expected: expected, Got: got}
}

// UnsupportedBlockKindError reports an out-of-range block kind code.
type UnsupportedBlockKindError struct{ Got uint16 }

func (e *UnsupportedBlockKindError) Error() string {
	return fmt.Sprintf("bgcode: unsupported block kind: %d", e.Got)
}
func (e *UnsupportedBlockKindError) Unwrap() error { return errUnsupportedKind }

func newUnsupportedBlockKind(got uint16) error { return &UnsupportedBlockKindError{Got: got} }

// UnsupportedCompressionError reports an out-of-range compression code.
type UnsupportedCompressionError struct{ Got uint16 }

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("bgcode: unsupported compression: %d", e.Got)
}
func (e *UnsupportedCompressionError) Unwrap() error { return errUnsupportedCompress }

func newUnsupportedCompression(got uint16) error { return &UnsupportedCompressionError{Got: got} }

// UnsupportedEncodingError reports an out-of-range, or kind-incompatible,
// encoding code.
type UnsupportedEncodingError struct{ Got uint16 }

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("bgcode: unsupported encoding: %d", e.Got)
}
func (e *UnsupportedEncodingError) Unwrap() error { return errUnsupportedEncoding }

func newUnsupportedEncoding(got uint16) error { return &UnsupportedEncodingError{Got: got} }

// DecompressError wraps a failure from a Compression backend: a protocol
// violation in the sink/poll/finish pump, or an output length mismatch.
type DecompressError struct{ Reason string }

func (e *DecompressError) Error() string {
	return fmt.Sprintf("bgcode: decompress error: %s", e.Reason)
}
func (e *DecompressError) Unwrap() error { return errDecompress }

func newDecompressError(reason string) error { return &DecompressError{Reason: reason} }

// SerialiseError reports that ASCIIToBinary could not locate a required
// section, or could not decode an embedded thumbnail.
type SerialiseError struct{ Reason string }

func (e *SerialiseError) Error() string {
	return fmt.Sprintf("bgcode: serialise error: %s", e.Reason)
}
func (e *SerialiseError) Unwrap() error { return errSerialise }

func newSerialiseError(reason string) error { return &SerialiseError{Reason: reason} }
