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

// BlockKind identifies the kind of data a Block carries.
type BlockKind uint16

const (
	BlockKindFileMetadata    = BlockKind(0)
	BlockKindGCode           = BlockKind(1)
	BlockKindSlicerMetadata  = BlockKind(2)
	BlockKindPrinterMetadata = BlockKind(3)
	BlockKindPrintMetadata   = BlockKind(4)
	BlockKindThumbnail       = BlockKind(5)
)

// ParseBlockKind validates a block-header kind code.
func ParseBlockKind(v uint16) (BlockKind, error) {
	switch BlockKind(v) {
	case BlockKindFileMetadata, BlockKindGCode, BlockKindSlicerMetadata,
		BlockKindPrinterMetadata, BlockKindPrintMetadata, BlockKindThumbnail:
		return BlockKind(v), nil
	}
	return 0, newUnsupportedBlockKind(v)
}

// Uint16 returns the little-endian code for k.
func (k BlockKind) Uint16() uint16 { return uint16(k) }

// ParamLen is the byte length of the kind-dependent parameters that follow
// the block header prefix: 6 for Thumbnail (encoding+width+height), 2
// otherwise (encoding only).
func (k BlockKind) ParamLen() int {
	if k == BlockKindThumbnail {
		return 6
	}
	return 2
}

func (k BlockKind) String() string {
	switch k {
	case BlockKindFileMetadata:
		return "FileMetadata"
	case BlockKindGCode:
		return "GCode"
	case BlockKindSlicerMetadata:
		return "SlicerMetadata"
	case BlockKindPrinterMetadata:
		return "PrinterMetadata"
	case BlockKindPrintMetadata:
		return "PrintMetadata"
	case BlockKindThumbnail:
		return "Thumbnail"
	}
	return "Unknown"
}
