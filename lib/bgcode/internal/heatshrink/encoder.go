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

// Encoder compresses a byte stream into the format Decoder understands,
// using the same window/lookahead parameterization. It buffers all Sunk
// input and performs the match search once Finish is called; Poll only
// drains the already-encoded bitstream. This is a correctness-first
// encoder (brute-force match search), matched to the small G-code chunks
// this codec actually compresses.
type Encoder struct {
	windowBits, lookaheadBits int

	input   []byte
	encoded []byte
	done    bool
	outPos  int
}

// NewEncoder returns an Encoder for the given window/lookahead parameters.
func NewEncoder(windowBits, lookaheadBits int) *Encoder {
	return &Encoder{windowBits: windowBits, lookaheadBits: lookaheadBits}
}

// Sink buffers in for later encoding. This Encoder always accepts all of in.
func (e *Encoder) Sink(in []byte) (int, error) {
	e.input = append(e.input, in...)
	return len(in), nil
}

// Poll drains already-encoded output. Before Finish is called this always
// reports PollEmpty with zero bytes, since encoding happens in one pass at
// Finish time.
func (e *Encoder) Poll(out []byte) (int, PollStatus, error) {
	if !e.done {
		return 0, PollEmpty, nil
	}
	n := copy(out, e.encoded[e.outPos:])
	e.outPos += n
	if e.outPos < len(e.encoded) {
		return n, PollMore, nil
	}
	return n, PollEmpty, nil
}

// Finish runs the match search over all Sunk input exactly once, then
// reports FinishMore until the encoded bitstream has been fully drained by
// Poll, and FinishDone thereafter.
func (e *Encoder) Finish() (FinishStatus, error) {
	if !e.done {
		e.encoded = encode(e.input, e.windowBits, e.lookaheadBits)
		e.done = true
	}
	if e.outPos < len(e.encoded) {
		return FinishMore, nil
	}
	return FinishDone, nil
}

// encode performs a greedy LZSS match search: at each position, the
// longest match within the window (capped by maxMatch) wins; ties prefer
// the nearest (smallest distance) match. Matches are allowed to reference
// positions within themselves (distance < length), which both this
// encoder and Decoder interpret as the usual run-length self-overlap.
func encode(input []byte, windowBits, lookaheadBits int) []byte {
	window := 1 << uint(windowBits)
	longest := maxMatch(lookaheadBits)

	w := &bitWriter{}
	i := 0
	for i < len(input) {
		bestLen, bestDist := 0, 0
		start := i - window
		if start < 0 {
			start = 0
		}
		for j := start; j < i; j++ {
			l := 0
			for i+l < len(input) && l < longest && input[j+l] == input[i+l] {
				l++
			}
			if l >= bestLen {
				bestLen, bestDist = l, i-j
			}
		}
		if bestLen >= minMatch {
			w.writeBits(0, 1)
			w.writeBits(uint32(bestDist-1), windowBits)
			w.writeBits(uint32(bestLen-minMatch), lookaheadBits)
			i += bestLen
		} else {
			w.writeBits(1, 1)
			w.writeBits(uint32(input[i]), 8)
			i++
		}
	}
	return w.bytes()
}
