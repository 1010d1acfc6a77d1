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

import "fmt"

// Block is a single parsed frame: a block header plus its kind-dependent
// parameters and (still compressed, if Compression != CompressionNone)
// payload bytes.
//
// Parameters and Data are owned copies; the Deserialiser's internal buffer
// may be reused after the Block is emitted.
type Block struct {
	Kind             BlockKind
	Compression      Compression
	Encoding         Encoding
	UncompressedSize uint32

	// CompressedSize is the on-wire compressed size; it is only meaningful
	// (and only present on the wire) when Compression != CompressionNone.
	CompressedSize uint32

	// Parameters holds the kind-dependent parameter bytes following
	// Encoding: empty for non-Thumbnail kinds, 4 bytes (width, height) for
	// Thumbnail.
	Parameters []byte

	// Data holds the payload bytes exactly as they appeared on the wire,
	// i.e. still compressed if Compression != CompressionNone.
	Data []byte
}

// String renders a short human-readable summary of b, grounded on
// DeserialisedBlock's fmt::Display impl in the original Rust crate.
func (b Block) String() string {
	return fmt.Sprintf("%s{compression: %s, encoding: %d, uncompressed_size: %d}",
		b.Kind, b.Compression, b.Encoding, b.UncompressedSize)
}

// Decompress returns b's payload after undoing Compression. For
// CompressionNone it simply returns Data.
func (b Block) Decompress() ([]byte, error) {
	return Decompress(b.Compression, b.Data, int(b.UncompressedSize))
}

// ThumbnailWidth returns the width parameter of a Thumbnail block. Callers
// must check b.Kind == BlockKindThumbnail first.
func (b Block) ThumbnailWidth() uint16 {
	if len(b.Parameters) < 4 {
		return 0
	}
	return uint16(b.Parameters[0]) | uint16(b.Parameters[1])<<8
}

// ThumbnailHeight returns the height parameter of a Thumbnail block.
func (b Block) ThumbnailHeight() uint16 {
	if len(b.Parameters) < 4 {
		return 0
	}
	return uint16(b.Parameters[2]) | uint16(b.Parameters[3])<<8
}
