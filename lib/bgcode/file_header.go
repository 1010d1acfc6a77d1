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

import "github.com/prusa3d/bgcode/lib/bgcode/internal/lebytes"

// Magic is the 4-byte ASCII "GCDE" constant, interpreted as a little-endian
// uint32.
const Magic uint32 = 0x45444347

// FileHeaderSize is the fixed, 10-byte size of a FileHeader on the wire.
const FileHeaderSize = 10

// DefaultVersion is the file-header version this package writes.
const DefaultVersion uint32 = 1

// FileHeader is the fixed 10-byte prefix of every bgcode file.
type FileHeader struct {
	Magic    uint32
	Version  uint32
	Checksum Checksum
}

// parseFileHeader parses exactly FileHeaderSize bytes. Callers must ensure
// buf is at least that long; use Deserialiser for incremental input.
func parseFileHeader(buf []byte) (FileHeader, error) {
	magic, err := lebytes.Uint32(buf, 0)
	if err != nil {
		return FileHeader{}, ErrShortBuffer
	}
	if magic != Magic {
		return FileHeader{}, newInvalidMagic(magic)
	}
	version, err := lebytes.Uint32(buf, 4)
	if err != nil {
		return FileHeader{}, ErrShortBuffer
	}
	checksumCode, err := lebytes.Uint16(buf, 8)
	if err != nil {
		return FileHeader{}, ErrShortBuffer
	}
	checksum, err := ParseChecksum(checksumCode)
	if err != nil {
		return FileHeader{}, err
	}
	return FileHeader{Magic: magic, Version: version, Checksum: checksum}, nil
}

// SerialiseFileHeader renders a FileHeader to its 10-byte wire form.
func SerialiseFileHeader(version uint32, checksum Checksum) []byte {
	buf := make([]byte, 0, FileHeaderSize)
	buf = lebytes.PutUint32(buf, Magic)
	buf = lebytes.PutUint32(buf, version)
	buf = lebytes.PutUint16(buf, checksum.Uint16())
	return buf
}
