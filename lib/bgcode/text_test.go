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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prusa3d/bgcode/lib/meatpack"
)

func TestBinaryToASCIIRendersMetadataAndGCode(t *testing.T) {
	var buf []byte
	buf = append(buf, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)

	meta, err := SerialiseBlock(BlockKindPrinterMetadata, CompressionNone, EncodingIni, ChecksumCRC32, nil, []byte("printer_model = MK4\n"))
	require.NoError(t, err)
	buf = append(buf, meta...)

	gcode, err := SerialiseBlock(BlockKindGCode, CompressionNone, EncodingAscii, ChecksumCRC32, nil, []byte("G28\nG1 X10\n"))
	require.NoError(t, err)
	buf = append(buf, gcode...)

	text, err := BinaryToASCII(buf, ConvertOptions{})
	require.NoError(t, err)

	assert.Contains(t, text, "; [PRINTER_METADATA_START]")
	assert.Contains(t, text, "; printer_model = MK4")
	assert.Contains(t, text, "; [PRINTER_METADATA_END]")
	assert.Contains(t, text, "; [GCODE_START]\nG28\nG1 X10\n; [GCODE_END]\n")
}

func TestBinaryToASCIIThumbnailWrapping(t *testing.T) {
	payload := make([]byte, 200)
	for i := range payload {
		payload[i] = byte(i)
	}
	extra := []byte{0x40, 0x00, 0x40, 0x00} // 64x64
	block, err := SerialiseBlock(BlockKindThumbnail, CompressionNone, EncodingPng, ChecksumCRC32, extra, payload)
	require.NoError(t, err)

	var buf []byte
	buf = append(buf, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)
	buf = append(buf, block...)

	text, err := BinaryToASCII(buf, ConvertOptions{IncludeThumbnails: true})
	require.NoError(t, err)

	assert.Contains(t, text, "; [THUMBNAIL_START]")
	assert.Contains(t, text, "; thumbnail begin 64x64")
	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len(line), 80)
	}
}

func TestBinaryToASCIIThumbnailOmittedByDefault(t *testing.T) {
	extra := []byte{0x01, 0x00, 0x01, 0x00}
	block, err := SerialiseBlock(BlockKindThumbnail, CompressionNone, EncodingPng, ChecksumCRC32, extra, []byte{0xAA})
	require.NoError(t, err)

	var buf []byte
	buf = append(buf, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)
	buf = append(buf, block...)

	text, err := BinaryToASCII(buf, ConvertOptions{IncludeThumbnails: false})
	require.NoError(t, err)
	assert.NotContains(t, text, "THUMBNAIL")
}

func TestBinaryToASCIIMeatpackRequiresDecoder(t *testing.T) {
	block, err := SerialiseBlock(BlockKindGCode, CompressionNone, EncodingMeatpack, ChecksumCRC32, nil, []byte("G1\n"))
	require.NoError(t, err)

	var buf []byte
	buf = append(buf, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)
	buf = append(buf, block...)

	_, err = BinaryToASCII(buf, ConvertOptions{})
	assert.ErrorIs(t, err, ErrMeatpackDecoderRequired)

	text, err := BinaryToASCII(buf, ConvertOptions{MeatpackDecoder: meatpack.NopUnpacker{}})
	require.NoError(t, err)
	assert.Contains(t, text, "; [GCODE_START]")
}

func TestASCIIToBinaryExtractsGCodeSection(t *testing.T) {
	text := "; generated by PrusaSlicer 2.7\n\n" +
		"; printer_model = MK4\n\n" +
		"M73 P0\nG28\nG1 X10\nM73 P100 R0\n" +
		"; trailer comment, not part of g-code\n"

	data, err := ASCIIToBinary(text)
	require.NoError(t, err)

	d := NewDeserialiser()
	d.Digest(data)

	ev, err := d.Deserialise()
	require.NoError(t, err)
	require.Equal(t, EventFileHeader, ev.Kind)

	var sawGCode bool
	for {
		ev, err = d.Deserialise()
		require.NoError(t, err)
		if ev.Kind == EventNeedMore {
			break
		}
		if ev.Block.Kind == BlockKindGCode {
			sawGCode = true
			payload, err := ev.Block.Decompress()
			require.NoError(t, err)
			assert.Equal(t, "M73 P0\nG28\nG1 X10\nM73 P100 R0\n", string(payload))
		}
	}
	assert.True(t, sawGCode)
}

func TestChunkGCodeLinesRespectsLineBoundaries(t *testing.T) {
	body := []byte("G1 X1\nG1 X2\nG1 X3\nG1 X4\n")
	chunks := chunkGCodeLines(body, 12)
	var rejoined []byte
	for _, c := range chunks {
		assert.True(t, strings.HasSuffix(string(c), "\n"))
		rejoined = append(rejoined, c...)
	}
	assert.Equal(t, body, rejoined)
}
