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

func TestCompressDecompressRoundTrip(t *testing.T) {
	payload := []byte("G1 X10 Y20 Z0.2 E0.5\nG1 X20 Y20 Z0.2 E1.0\n")
	for _, c := range []Compression{CompressionNone, CompressionDeflate, CompressionHeatshrink114, CompressionHeatshrink124} {
		compressed, err := Compress(c, payload)
		require.NoError(t, err, c.String())
		got, err := Decompress(c, compressed, len(payload))
		require.NoError(t, err, c.String())
		assert.Equal(t, payload, got, c.String())
	}
}

func TestDecompressNoneIgnoresExpectedLen(t *testing.T) {
	payload := []byte("hello")
	got, err := Decompress(CompressionNone, payload, 9999)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecompressDeflateLengthMismatch(t *testing.T) {
	payload := []byte("some gcode payload, repeated, some gcode payload, repeated")
	compressed, err := compressDeflate(payload)
	require.NoError(t, err)
	_, err = Decompress(CompressionDeflate, compressed, len(payload)-1)
	assert.Error(t, err)
}

func TestDecompressUnsupportedCompression(t *testing.T) {
	_, err := Decompress(Compression(99), nil, 0)
	var target *UnsupportedCompressionError
	assert.ErrorAs(t, err, &target)
}
