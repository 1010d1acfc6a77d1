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
	"hash/crc32"

	"github.com/prusa3d/bgcode/lib/bgcode/internal/lebytes"
)

type deserialiserMode int

const (
	expectHeader deserialiserMode = iota
	expectBlock
)

// EventKind discriminates the three possible outcomes of Deserialiser.Deserialise.
type EventKind int

const (
	// EventNeedMore means pending does not yet hold a complete frame;
	// NeedMore is a lower-bound hint, not a contract, on how many more
	// bytes to Digest before retrying.
	EventNeedMore EventKind = iota
	EventFileHeader
	EventBlock
)

// Event is the result of one Deserialise call.
type Event struct {
	Kind       EventKind
	FileHeader FileHeader
	Block      Block
	NeedMore   int
}

// Deserialiser is a resumable, byte-fed state machine that parses a bgcode
// stream. Feed it bytes with Digest; call Deserialise to consume the next
// complete frame, or learn how many more bytes are needed.
//
// A Deserialiser that has consumed k complete frames is in the same state
// regardless of how the preceding bytes were split across Digest calls.
type Deserialiser struct {
	pending  []byte
	mode     deserialiserMode
	checksum Checksum
}

// NewDeserialiser returns a Deserialiser ready to parse a file header.
func NewDeserialiser() *Deserialiser {
	return &Deserialiser{}
}

// Digest appends buf to the pending byte buffer. It never fails.
func (d *Deserialiser) Digest(buf []byte) {
	d.pending = append(d.pending, buf...)
}

// Reset discards all pending bytes and returns to the initial
// expect-file-header state. It is the only recovery path after an error.
func (d *Deserialiser) Reset() {
	d.pending = nil
	d.mode = expectHeader
}

// drop removes the first n bytes of pending in place, without reallocating
// the backing array.
func (d *Deserialiser) drop(n int) {
	copy(d.pending, d.pending[n:])
	d.pending = d.pending[:len(d.pending)-n]
}

// Deserialise consumes the next complete frame from pending, if any.
func (d *Deserialiser) Deserialise() (Event, error) {
	switch d.mode {
	case expectHeader:
		return d.deserialiseFileHeader()
	default:
		return d.deserialiseBlock()
	}
}

func (d *Deserialiser) deserialiseFileHeader() (Event, error) {
	if len(d.pending) < FileHeaderSize {
		return Event{Kind: EventNeedMore, NeedMore: FileHeaderSize - len(d.pending)}, nil
	}
	fh, err := parseFileHeader(d.pending[:FileHeaderSize])
	if err != nil {
		return Event{}, err
	}
	d.checksum = fh.Checksum
	d.mode = expectBlock
	d.drop(FileHeaderSize)
	return Event{Kind: EventFileHeader, FileHeader: fh}, nil
}

// maxBlockPrefix is the number of bytes always probed up front: enough to
// cover kind, compression, uncompressed_size, and (if present)
// compressed_size.
const maxBlockPrefix = 12

func (d *Deserialiser) deserialiseBlock() (Event, error) {
	if len(d.pending) < maxBlockPrefix {
		return Event{Kind: EventNeedMore, NeedMore: maxBlockPrefix - len(d.pending)}, nil
	}

	kindCode, _ := lebytes.Uint16(d.pending, 0)
	kind, err := ParseBlockKind(kindCode)
	if err != nil {
		return Event{}, err
	}
	compressionCode, _ := lebytes.Uint16(d.pending, 2)
	compression, err := ParseCompression(compressionCode)
	if err != nil {
		return Event{}, err
	}
	uncompressedSize, _ := lebytes.Uint32(d.pending, 4)

	headerLen := 8
	var compressedSize uint32
	if compression.HasCompressedSize() {
		compressedSize, _ = lebytes.Uint32(d.pending, 8)
		headerLen = 12
	}

	paramLen := kind.ParamLen()
	payloadLen := int(uncompressedSize)
	if compression.HasCompressedSize() {
		payloadLen = int(compressedSize)
	}
	totalLen := headerLen + paramLen + payloadLen + d.checksum.Size()

	if len(d.pending) < totalLen {
		return Event{Kind: EventNeedMore, NeedMore: totalLen - len(d.pending)}, nil
	}

	if d.checksum == ChecksumCRC32 {
		want, _ := lebytes.Uint32(d.pending, totalLen-4)
		got := crc32.ChecksumIEEE(d.pending[:totalLen-4])
		if want != got {
			return Event{}, NewInvalidChecksum(want, got)
		}
	}

	encodingCode, _ := lebytes.Uint16(d.pending, headerLen)
	encoding, err := ParseEncoding(encodingCode, kind)
	if err != nil {
		return Event{}, err
	}

	extraStart := headerLen + 2
	dataStart := headerLen + paramLen
	dataEnd := totalLen - d.checksum.Size()

	block := Block{
		Kind:             kind,
		Compression:      compression,
		Encoding:         encoding,
		UncompressedSize: uncompressedSize,
		CompressedSize:   compressedSize,
		Parameters:       append([]byte(nil), d.pending[extraStart:dataStart]...),
		Data:             append([]byte(nil), d.pending[dataStart:dataEnd]...),
	}

	d.drop(totalLen)
	return Event{Kind: EventBlock, Block: block}, nil
}
