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
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"

	"github.com/prusa3d/bgcode/lib/bgcode/internal/heatshrink"
)

// Decompress undoes c on in, returning exactly expectedLen bytes. For
// CompressionNone, in is returned unchanged (expectedLen is not checked).
func Decompress(c Compression, in []byte, expectedLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return in, nil
	case CompressionDeflate:
		return decompressDeflate(in, expectedLen)
	case CompressionHeatshrink114:
		return pumpDecompress(heatshrink.NewDecoder(11, 4), in, expectedLen)
	case CompressionHeatshrink124:
		return pumpDecompress(heatshrink.NewDecoder(12, 4), in, expectedLen)
	default:
		return nil, newUnsupportedCompression(c.Uint16())
	}
}

// Compress applies c to payload, returning the compressed bytes. For
// CompressionNone, payload is returned unchanged.
func Compress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionDeflate:
		return compressDeflate(payload)
	case CompressionHeatshrink114:
		return pumpCompress(heatshrink.NewEncoder(11, 4), payload)
	case CompressionHeatshrink124:
		return pumpCompress(heatshrink.NewEncoder(12, 4), payload)
	default:
		return nil, newUnsupportedCompression(c.Uint16())
	}
}

func decompressDeflate(in []byte, expectedLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, errors.Wrap(newDecompressError("cannot open zlib stream"), err.Error())
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(newDecompressError("zlib stream truncated or corrupt"), err.Error())
	}
	if len(out) != expectedLen {
		return nil, newDecompressError("deflate output length mismatch")
	}
	return out, nil
}

func compressDeflate(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		return nil, errors.Wrap(err, "bgcode: zlib compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "bgcode: zlib compress")
	}
	return buf.Bytes(), nil
}

// decompressorPump is the sink/poll/finish contract bgcode's two embedded
// decompressors expose in place of an io.Reader: callers feed input with
// Sink, drain available output with Poll, and call Finish once input is
// exhausted to flush anything still buffered.
type decompressorPump interface {
	Sink(in []byte) (int, error)
	Poll(out []byte) (int, heatshrink.PollStatus, error)
	Finish() (heatshrink.FinishStatus, error)
}

// pumpDecompress drives a decompressorPump to completion: sink all input,
// draining output after each sink call, then finish, draining until done.
func pumpDecompress(d decompressorPump, in []byte, expectedLen int) ([]byte, error) {
	out := make([]byte, expectedLen)
	polled := 0
	remaining := in

	for len(remaining) > 0 {
		n, err := d.Sink(remaining)
		if err != nil {
			return nil, newDecompressError(err.Error())
		}
		remaining = remaining[n:]

		for polled < len(out) {
			m, status, err := d.Poll(out[polled:])
			polled += m
			if err != nil {
				return nil, newDecompressError(err.Error())
			}
			if status == heatshrink.PollEmpty {
				break
			}
		}
	}

	for polled < len(out) {
		status, err := d.Finish()
		if err != nil {
			return nil, newDecompressError(err.Error())
		}
		if status == heatshrink.FinishDone {
			break
		}
		m, _, err := d.Poll(out[polled:])
		polled += m
		if err != nil {
			return nil, newDecompressError(err.Error())
		}
	}

	if polled != expectedLen {
		return nil, newDecompressError("length mismatch")
	}
	return out, nil
}

// compressorPump is the symmetric pump contract for Compress.
type compressorPump interface {
	Sink(in []byte) (int, error)
	Poll(out []byte) (int, heatshrink.PollStatus, error)
	Finish() (heatshrink.FinishStatus, error)
}

// pumpCompress drives a compressorPump to completion. Unlike
// pumpDecompress, the output length is not known ahead of time, so the
// output buffer grows as Poll reports more.
func pumpCompress(e compressorPump, payload []byte) ([]byte, error) {
	if _, err := e.Sink(payload); err != nil {
		return nil, errors.Wrap(err, "bgcode: compress")
	}

	var out []byte
	buf := make([]byte, 4096)
	drain := func() error {
		for {
			n, status, err := e.Poll(buf)
			if err != nil {
				return errors.Wrap(err, "bgcode: compress")
			}
			out = append(out, buf[:n]...)
			if status == heatshrink.PollEmpty {
				return nil
			}
			if n == 0 {
				return nil
			}
		}
	}
	if err := drain(); err != nil {
		return nil, err
	}

	for {
		status, err := e.Finish()
		if err != nil {
			return nil, errors.Wrap(err, "bgcode: compress")
		}
		if status == heatshrink.FinishDone {
			if err := drain(); err != nil {
				return nil, err
			}
			break
		}
		if err := drain(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
