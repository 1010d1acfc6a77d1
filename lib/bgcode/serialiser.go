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

// SerialiseBlock renders a single framed block: kind/compression/size
// header, kind-dependent parameters, payload, and (if checksum ==
// ChecksumCRC32) a trailing CRC32 over every byte written so far.
//
// extraParams is the "after encoding" parameter bytes: empty for every kind
// except Thumbnail, which takes 4 bytes (width, height).
func SerialiseBlock(kind BlockKind, compression Compression, encoding Encoding, checksum Checksum, extraParams, payload []byte) ([]byte, error) {
	if _, err := ParseEncoding(encoding.Uint16(), kind); err != nil {
		return nil, err
	}
	wantExtra := 0
	if kind == BlockKindThumbnail {
		wantExtra = 4
	}
	if len(extraParams) != wantExtra {
		return nil, newSerialiseError("wrong extra parameter length for block kind")
	}

	buf := make([]byte, 0, len(payload)+16)
	buf = lebytes.PutUint16(buf, kind.Uint16())
	buf = lebytes.PutUint16(buf, compression.Uint16())
	buf = lebytes.PutUint32(buf, uint32(len(payload)))

	body := payload
	if compression != CompressionNone {
		compressed, err := Compress(compression, payload)
		if err != nil {
			return nil, err
		}
		buf = lebytes.PutUint32(buf, uint32(len(compressed)))
		body = compressed
	}

	buf = lebytes.PutUint16(buf, encoding.Uint16())
	buf = append(buf, extraParams...)
	buf = append(buf, body...)

	if checksum == ChecksumCRC32 {
		buf = lebytes.PutUint32(buf, crc32.ChecksumIEEE(buf))
	}
	return buf, nil
}
