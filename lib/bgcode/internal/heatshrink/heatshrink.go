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

// Package heatshrink is a from-scratch, dependency-free implementation of
// the heatshrink family of LZSS byte-stream compressors, parameterized by a
// window size (in bits) and a lookahead size (in bits) for match distances
// and lengths respectively.
//
// Both Encoder and Decoder are driven by the same sink/poll/finish pump
// described by the bgcode specification's decompressor contract: feed
// input with Sink, drain available output with Poll until it reports
// PollEmpty with zero bytes produced, then call Finish in a loop (draining
// with Poll between calls) until it reports FinishDone.
package heatshrink

import "errors"

// ErrProtocol names a violation of the pump contract. Neither Encoder nor
// Decoder returns it: both accept Poll after Finish has reported
// FinishDone, and such a Poll returns whatever output is still buffered.
var ErrProtocol = errors.New("heatshrink: protocol error")

// ErrCorrupt is returned by a Decoder when the bitstream references a match
// distance that predates the start of the stream. A stream that ends
// mid-token is not reported: the unread trailing bits are ignored.
var ErrCorrupt = errors.New("heatshrink: corrupt stream")

// PollStatus is the result of a Poll call.
type PollStatus int

const (
	// PollMore means the output slice passed to Poll was filled; call Poll
	// again with more room for additional output.
	PollMore PollStatus = iota
	// PollEmpty means no further output is available until more input is
	// Sunk (or, after all input is sunk, until Finish is called).
	PollEmpty
)

// FinishStatus is the result of a Finish call.
type FinishStatus int

const (
	// FinishMore means there is still buffered output to drain via Poll
	// before Finish should be called again.
	FinishMore FinishStatus = iota
	// FinishDone means all output has been produced.
	FinishDone
)

// minMatch is the shortest back-reference this codec will ever emit; any
// run shorter than this is cheaper to encode as literals.
const minMatch = 3

// maxMatch returns the longest back-reference length representable with
// lookaheadBits, given the fixed minMatch floor.
func maxMatch(lookaheadBits int) int {
	return (1 << uint(lookaheadBits)) - 1 + minMatch
}
