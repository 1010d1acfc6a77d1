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

type decoderState int

const (
	stateTag decoderState = iota
	stateLiteral
	stateBackrefIndex
	stateBackrefCount
	stateBackrefCopy
)

// Decoder decodes a heatshrink-compressed byte stream, parameterized by a
// window size and lookahead size (both in bits). It is driven by
// Sink/Poll/Finish; see the package doc comment.
type Decoder struct {
	windowBits, lookaheadBits int

	in     bitReader
	window []byte
	total  int64 // total bytes decoded so far, across the lifetime of window

	state        decoderState
	pendingIndex int
	pendingSrc   int64
	pendingCount int
}

// NewDecoder returns a Decoder for the given window/lookahead parameters.
func NewDecoder(windowBits, lookaheadBits int) *Decoder {
	return &Decoder{
		windowBits:    windowBits,
		lookaheadBits: lookaheadBits,
		window:        make([]byte, 1<<uint(windowBits)),
	}
}

// Sink appends in to the pending input and reports how much was accepted.
// This Decoder always accepts all of in.
func (d *Decoder) Sink(in []byte) (int, error) {
	d.in.append(in)
	return len(in), nil
}

func (d *Decoder) writeByte(b byte) {
	d.window[d.total%int64(len(d.window))] = b
	d.total++
}

// Poll decodes as much as fits in out. It returns PollMore if out was
// filled (more output may be available from buffered bits without further
// input), or PollEmpty if decoding is blocked on more input.
func (d *Decoder) Poll(out []byte) (int, PollStatus, error) {
	polled := 0
	for polled < len(out) {
		switch d.state {
		case stateTag:
			bit, ok := d.in.take(1)
			if !ok {
				return polled, PollEmpty, nil
			}
			if bit == 1 {
				d.state = stateLiteral
			} else {
				d.state = stateBackrefIndex
			}

		case stateLiteral:
			v, ok := d.in.take(8)
			if !ok {
				return polled, PollEmpty, nil
			}
			b := byte(v)
			d.writeByte(b)
			out[polled] = b
			polled++
			d.state = stateTag

		case stateBackrefIndex:
			v, ok := d.in.take(d.windowBits)
			if !ok {
				return polled, PollEmpty, nil
			}
			d.pendingIndex = int(v)
			d.state = stateBackrefCount

		case stateBackrefCount:
			v, ok := d.in.take(d.lookaheadBits)
			if !ok {
				return polled, PollEmpty, nil
			}
			d.pendingCount = int(v) + minMatch
			distance := int64(d.pendingIndex) + 1
			if distance > d.total {
				return polled, PollEmpty, ErrCorrupt
			}
			d.pendingSrc = d.total - distance
			d.state = stateBackrefCopy

		case stateBackrefCopy:
			for d.pendingCount > 0 && polled < len(out) {
				b := d.window[d.pendingSrc%int64(len(d.window))]
				d.writeByte(b)
				out[polled] = b
				polled++
				d.pendingSrc++
				d.pendingCount--
			}
			if d.pendingCount == 0 {
				d.state = stateTag
			}
		}
	}
	return polled, PollMore, nil
}

// Finish reports whether decoding has fully drained: since Poll already
// surfaces every decodable byte as soon as its bits are available, Finish
// has nothing further to flush and always reports FinishDone.
func (d *Decoder) Finish() (FinishStatus, error) {
	return FinishDone, nil
}
