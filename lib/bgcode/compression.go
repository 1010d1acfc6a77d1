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

// Compression is the per-block compression algorithm.
type Compression uint16

const (
	CompressionNone          = Compression(0)
	CompressionDeflate       = Compression(1)
	CompressionHeatshrink114 = Compression(2)
	CompressionHeatshrink124 = Compression(3)
)

// ParseCompression validates a block-header compression code.
func ParseCompression(v uint16) (Compression, error) {
	switch Compression(v) {
	case CompressionNone, CompressionDeflate, CompressionHeatshrink114, CompressionHeatshrink124:
		return Compression(v), nil
	}
	return 0, newUnsupportedCompression(v)
}

// Uint16 returns the little-endian code for c.
func (c Compression) Uint16() uint16 { return uint16(c) }

// HasCompressedSize reports whether a block header with this compression
// carries an explicit compressed_size field (everything except None).
func (c Compression) HasCompressedSize() bool { return c != CompressionNone }

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionDeflate:
		return "Deflate"
	case CompressionHeatshrink114:
		return "Heatshrink(11,4)"
	case CompressionHeatshrink124:
		return "Heatshrink(12,4)"
	}
	return "Unknown"
}
