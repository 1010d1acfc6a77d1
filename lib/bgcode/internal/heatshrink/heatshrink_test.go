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

package heatshrink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeAll(t *testing.T, windowBits, lookaheadBits int, input []byte) []byte {
	t.Helper()
	e := NewEncoder(windowBits, lookaheadBits)
	n, err := e.Sink(input)
	require.NoError(t, err)
	require.Equal(t, len(input), n)

	var out []byte
	buf := make([]byte, 64)
	for {
		status, err := e.Finish()
		require.NoError(t, err)
		for {
			m, pollStatus, err := e.Poll(buf)
			require.NoError(t, err)
			out = append(out, buf[:m]...)
			if pollStatus == PollEmpty {
				break
			}
		}
		if status == FinishDone {
			break
		}
	}
	return out
}

func decodeAll(t *testing.T, windowBits, lookaheadBits int, compressed []byte, chunkSize int) []byte {
	t.Helper()
	d := NewDecoder(windowBits, lookaheadBits)
	var out []byte
	buf := make([]byte, 64)

	for len(compressed) > 0 {
		n := chunkSize
		if n > len(compressed) {
			n = len(compressed)
		}
		sunk, err := d.Sink(compressed[:n])
		require.NoError(t, err)
		compressed = compressed[sunk:]

		for {
			m, status, err := d.Poll(buf)
			require.NoError(t, err)
			out = append(out, buf[:m]...)
			if status == PollEmpty {
				break
			}
		}
	}
	status, err := d.Finish()
	require.NoError(t, err)
	require.Equal(t, FinishDone, status)
	return out
}

func TestRoundTripVariousInputs(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("a"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
		[]byte("abcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabc"),
	}
	for _, in := range inputs {
		compressed := encodeAll(t, 11, 4, in)
		got := decodeAll(t, 11, 4, compressed, 1<<20)
		require.Equal(t, in, got)
	}
}

func TestRoundTripChunkIndependence(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog, repeatedly, the quick brown fox jumps over the lazy dog")
	compressed := encodeAll(t, 12, 4, input)

	whole := decodeAll(t, 12, 4, compressed, len(compressed))
	chunked := decodeAll(t, 12, 4, compressed, 3)
	require.Equal(t, whole, chunked)
	require.Equal(t, input, chunked)
}

func TestMaxMatch(t *testing.T) {
	require.Equal(t, minMatch+15, maxMatch(4))
}
