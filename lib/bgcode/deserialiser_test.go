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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) []byte {
	t.Helper()
	var buf []byte
	buf = append(buf, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)

	meta, err := SerialiseBlock(BlockKindPrinterMetadata, CompressionNone, EncodingIni, ChecksumCRC32, nil, []byte("printer_model = MK4\n"))
	require.NoError(t, err)
	buf = append(buf, meta...)

	gcode, err := SerialiseBlock(BlockKindGCode, CompressionDeflate, EncodingAscii, ChecksumCRC32, nil, []byte("G28\nG1 X10\n"))
	require.NoError(t, err)
	buf = append(buf, gcode...)

	return buf
}

func TestDeserialiserWholeBuffer(t *testing.T) {
	fixture := buildFixture(t)
	d := NewDeserialiser()
	d.Digest(fixture)

	ev, err := d.Deserialise()
	require.NoError(t, err)
	require.Equal(t, EventFileHeader, ev.Kind)
	assert.Equal(t, Magic, ev.FileHeader.Magic)
	assert.Equal(t, ChecksumCRC32, ev.FileHeader.Checksum)

	ev, err = d.Deserialise()
	require.NoError(t, err)
	require.Equal(t, EventBlock, ev.Kind)
	assert.Equal(t, BlockKindPrinterMetadata, ev.Block.Kind)

	ev, err = d.Deserialise()
	require.NoError(t, err)
	require.Equal(t, EventBlock, ev.Kind)
	assert.Equal(t, BlockKindGCode, ev.Block.Kind)
	payload, err := ev.Block.Decompress()
	require.NoError(t, err)
	assert.Equal(t, "G28\nG1 X10\n", string(payload))

	ev, err = d.Deserialise()
	require.NoError(t, err)
	assert.Equal(t, EventNeedMore, ev.Kind)
}

// TestDeserialiserByteAtATime feeds the same fixture one byte per Digest
// call and checks that it emits the same sequence of event kinds (file
// header, then two blocks) that TestDeserialiserWholeBuffer sees when the
// fixture is fed whole.
func TestDeserialiserByteAtATime(t *testing.T) {
	fixture := buildFixture(t)
	d := NewDeserialiser()

	var kinds []EventKind
	for i := 0; i < len(fixture); i++ {
		d.Digest(fixture[i : i+1])
		for {
			ev, err := d.Deserialise()
			require.NoError(t, err)
			if ev.Kind == EventNeedMore {
				break
			}
			kinds = append(kinds, ev.Kind)
		}
	}

	require.Len(t, kinds, 3)
	assert.Equal(t, EventFileHeader, kinds[0])
	assert.Equal(t, EventBlock, kinds[1])
	assert.Equal(t, EventBlock, kinds[2])
}

func TestDeserialiserInvalidMagic(t *testing.T) {
	d := NewDeserialiser()
	d.Digest([]byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0})
	_, err := d.Deserialise()
	var target *InvalidMagicError
	assert.ErrorAs(t, err, &target)
}

func TestDeserialiserChecksumMismatch(t *testing.T) {
	fixture := buildFixture(t)
	// Flip a byte inside the first block's payload region.
	fixture[FileHeaderSize+12] ^= 0xFF

	d := NewDeserialiser()
	d.Digest(fixture)
	_, err := d.Deserialise() // file header
	require.NoError(t, err)

	_, err = d.Deserialise() // corrupted block
	var target *InvalidChecksumError
	assert.ErrorAs(t, err, &target)
}

func TestDeserialiserResetClearsPending(t *testing.T) {
	d := NewDeserialiser()
	d.Digest([]byte{1, 2, 3})
	d.Reset()
	ev, err := d.Deserialise()
	require.NoError(t, err)
	assert.Equal(t, EventNeedMore, ev.Kind)
	assert.Equal(t, FileHeaderSize, ev.NeedMore)
}
