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

// Encoding is the payload encoding within a block. Its valid values depend
// on the block's BlockKind: see ParseEncoding.
type Encoding uint16

const (
	EncodingIni = Encoding(0)

	EncodingAscii                = Encoding(0)
	EncodingMeatpack             = Encoding(1)
	EncodingMeatpackWithComments = Encoding(2)

	EncodingPng = Encoding(0)
	EncodingJpg = Encoding(1)
	EncodingQoi = Encoding(2)
)

// ParseEncoding validates an encoding code against the block kind it
// appears in; only some (kind, code) pairs are legal.
func ParseEncoding(v uint16, kind BlockKind) (Encoding, error) {
	switch kind {
	case BlockKindFileMetadata, BlockKindSlicerMetadata, BlockKindPrinterMetadata, BlockKindPrintMetadata:
		if v == 0 {
			return EncodingIni, nil
		}
	case BlockKindGCode:
		switch v {
		case 0, 1, 2:
			return Encoding(v), nil
		}
	case BlockKindThumbnail:
		switch v {
		case 0, 1, 2:
			return Encoding(v), nil
		}
	}
	return 0, newUnsupportedEncoding(v)
}

// Uint16 returns the little-endian code for e.
func (e Encoding) Uint16() uint16 { return uint16(e) }

// String renders e without knowing its BlockKind, so it lists the name the
// code has for every kind (e.g. "Ascii/Ini/Png"); callers that know the
// BlockKind should prefer a kind-specific label.
func (e Encoding) String() string {
	switch e {
	case 0:
		return "Ascii/Ini/Png"
	case 1:
		return "Meatpack/Jpg"
	case 2:
		return "MeatpackWithComments/Qoi"
	}
	return "Unknown"
}
