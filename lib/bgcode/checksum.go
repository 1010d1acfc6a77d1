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

// Checksum is the checksum algorithm named in a file header.
type Checksum uint16

const (
	ChecksumNone  = Checksum(0)
	ChecksumCRC32 = Checksum(1)
)

// ParseChecksum validates a file-header checksum code.
func ParseChecksum(v uint16) (Checksum, error) {
	switch Checksum(v) {
	case ChecksumNone, ChecksumCRC32:
		return Checksum(v), nil
	}
	return 0, newInvalidChecksumType(v)
}

// Uint16 returns the little-endian code for c.
func (c Checksum) Uint16() uint16 { return uint16(c) }

func (c Checksum) String() string {
	switch c {
	case ChecksumNone:
		return "None"
	case ChecksumCRC32:
		return "Crc32"
	}
	return "Unknown"
}

// Size is the trailing CRC footer size in bytes: 0 or 4.
func (c Checksum) Size() int {
	if c == ChecksumCRC32 {
		return 4
	}
	return 0
}
