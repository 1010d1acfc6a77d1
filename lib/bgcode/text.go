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
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/prusa3d/bgcode/lib/meatpack"
)

// MaxGCodeChunkBytes bounds how large a single G-code chunk ASCIIToBinary
// will emit as one Heatshrink(11,4) block. This is an implementation
// limit that keeps each chunk's uncompressed size within 16 bits, not a
// format limit: the block header's size fields are 32-bit, and the
// compressed size of an incompressible chunk can exceed 16 bits.
const MaxGCodeChunkBytes = 0xFF00

// ConvertOptions configures BinaryToASCII and ASCIIToBinary.
type ConvertOptions struct {
	// IncludeThumbnails controls whether Thumbnail blocks are rendered by
	// BinaryToASCII.
	IncludeThumbnails bool

	// MeatpackDecoder is consulted by BinaryToASCII when it encounters a
	// GCode block whose Encoding is Meatpack or MeatpackWithComments. If
	// nil, such a block causes ErrMeatpackDecoderRequired.
	MeatpackDecoder meatpack.Unpacker
}

// BinaryToASCII drives a Deserialiser over data and renders every block to
// the canonical textual G-code form: metadata as commented INI sections,
// thumbnails as wrapped base64, and G-code as Ascii or Meatpack-decoded text.
func BinaryToASCII(data []byte, opts ConvertOptions) (string, error) {
	d := NewDeserialiser()
	d.Digest(data)

	var out strings.Builder
	for {
		ev, err := d.Deserialise()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case EventNeedMore:
			return out.String(), nil
		case EventFileHeader:
			// Nothing to render; the canonical text has no header.
		case EventBlock:
			payload, err := ev.Block.Decompress()
			if err != nil {
				return "", err
			}
			switch ev.Block.Kind {
			case BlockKindFileMetadata:
				out.WriteString(renderMetadataBlock("FILE", payload))
			case BlockKindPrinterMetadata:
				out.WriteString(renderMetadataBlock("PRINTER", payload))
			case BlockKindPrintMetadata:
				out.WriteString(renderMetadataBlock("PRINT", payload))
			case BlockKindSlicerMetadata:
				out.WriteString(renderMetadataBlock("SLICER", payload))
			case BlockKindThumbnail:
				if opts.IncludeThumbnails {
					out.WriteString(renderThumbnail(ev.Block, payload))
				}
			case BlockKindGCode:
				rendered, err := renderGCode(ev.Block, payload, opts)
				if err != nil {
					return "", err
				}
				out.WriteString(rendered)
			}
		}
	}
}

// prefixMetadataLines implements the metadata line-prefixing rule: a line
// not already beginning with ';' is prefixed "; "; a '\n' immediately
// followed by ';' passes through unchanged.
func prefixMetadataLines(payload []byte) string {
	var sb strings.Builder
	atLineStart := true
	for _, b := range payload {
		if atLineStart && b != ';' {
			sb.WriteString("; ")
		}
		sb.WriteByte(b)
		atLineStart = b == '\n'
	}
	return sb.String()
}

func renderMetadataBlock(tag string, payload []byte) string {
	return fmt.Sprintf("; [%s_METADATA_START]\n%s; [%s_METADATA_END]\n", tag, prefixMetadataLines(payload), tag)
}

func thumbnailSuffix(e Encoding) string {
	switch e {
	case EncodingJpg:
		return "_JPG"
	case EncodingQoi:
		return "_QOI"
	default:
		return ""
	}
}

func renderThumbnail(b Block, payload []byte) string {
	suffix := thumbnailSuffix(b.Encoding)
	encoded := base64.StdEncoding.EncodeToString(payload)

	var sb strings.Builder
	sb.WriteString("; [THUMBNAIL_START]\n")
	fmt.Fprintf(&sb, "; thumbnail%s begin %dx%d %d\n", suffix, b.ThumbnailWidth(), b.ThumbnailHeight(), len(encoded))
	for len(encoded) > 78 {
		sb.WriteString("; ")
		sb.WriteString(encoded[:78])
		sb.WriteByte('\n')
		encoded = encoded[78:]
	}
	sb.WriteString("; ")
	sb.WriteString(encoded)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "; thumbnail%s end \n", suffix)
	sb.WriteString(";\n")
	sb.WriteString("; [THUMBNAIL_END]\n")
	return sb.String()
}

func renderGCode(b Block, payload []byte, opts ConvertOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("; [GCODE_START]\n")
	switch b.Encoding {
	case EncodingAscii:
		sb.Write(payload)
	case EncodingMeatpack, EncodingMeatpackWithComments:
		if opts.MeatpackDecoder == nil {
			return "", ErrMeatpackDecoderRequired
		}
		for _, byt := range payload {
			res, err := opts.MeatpackDecoder.Unpack(byt)
			if err != nil {
				return "", errors.Wrap(ErrMeatpack, err.Error())
			}
			if res.Kind == meatpack.LineReady {
				sb.Write(res.Line)
			}
		}
	default:
		return "", newUnsupportedEncoding(b.Encoding.Uint16())
	}
	sb.WriteString("; [GCODE_END]\n")
	return sb.String(), nil
}

// ASCIIToBinary parses the canonical textual G-code form back into a
// framed bgcode byte stream, with checksum=Crc32 and version=DefaultVersion.
func ASCIIToBinary(text string) ([]byte, error) {
	var out []byte
	out = append(out, SerialiseFileHeader(DefaultVersion, ChecksumCRC32)...)

	if block, ok := extractFileMetadata(text); ok {
		b, err := SerialiseBlock(BlockKindFileMetadata, CompressionNone, EncodingIni, ChecksumCRC32, nil, block)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	if block, ok := extractPrinterMetadata(text); ok {
		b, err := SerialiseBlock(BlockKindPrinterMetadata, CompressionNone, EncodingIni, ChecksumCRC32, nil, block)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	if block, ok := extractSlicerMetadata(text); ok {
		b, err := SerialiseBlock(BlockKindSlicerMetadata, CompressionDeflate, EncodingIni, ChecksumCRC32, nil, block)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	thumbs, err := extractThumbnails(text)
	if err != nil {
		return nil, err
	}
	for _, t := range thumbs {
		extra := make([]byte, 0, 4)
		extra = append(extra, byte(t.width), byte(t.width>>8), byte(t.height), byte(t.height>>8))
		b, err := SerialiseBlock(BlockKindThumbnail, CompressionNone, t.encoding, ChecksumCRC32, extra, t.data)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	chunks, err := extractGCodeChunks(text)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		b, err := SerialiseBlock(BlockKindGCode, CompressionHeatshrink114, EncodingAscii, ChecksumCRC32, nil, c)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}

func extractFileMetadata(text string) ([]byte, bool) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, "; "), "generated by") ||
			strings.HasPrefix(line, "; generated by") {
			return []byte(line), true
		}
	}
	return nil, false
}

func extractPrinterMetadata(text string) ([]byte, bool) {
	start := strings.Index(text, "; printer_model")
	if start < 0 {
		return nil, false
	}
	rest := text[start:]
	end := strings.Index(rest, "\n\n")
	if end < 0 {
		return []byte(rest), true
	}
	return []byte(rest[:end+2]), true
}

func extractSlicerMetadata(text string) ([]byte, bool) {
	const beginTag, endTag = "; prusaslicer_config = begin", "; prusaslicer_config = end"
	start := strings.Index(text, beginTag)
	if start < 0 {
		return nil, false
	}
	rest := text[start:]
	endIdx := strings.Index(rest, endTag)
	if endIdx < 0 {
		return nil, false
	}
	region := rest[:endIdx+len(endTag)]
	return []byte(region), true
}

type thumbnailSection struct {
	width, height uint16
	encoding      Encoding
	data          []byte
}

var thumbnailBeginRE = regexp.MustCompile(`(?m)^;\s*thumbnail(_JPG|_QOI)?\s+begin\s+(\d+)x(\d+)\s+(\d+)\s*$`)

func extractThumbnails(text string) ([]thumbnailSection, error) {
	var sections []thumbnailSection
	locs := thumbnailBeginRE.FindAllStringSubmatchIndex(text, -1)
	for _, loc := range locs {
		suffix := ""
		if loc[2] >= 0 {
			suffix = text[loc[2]:loc[3]]
		}
		width, _ := strconv.Atoi(text[loc[4]:loc[5]])
		height, _ := strconv.Atoi(text[loc[6]:loc[7]])

		endTag := "; thumbnail" + suffix + " end"
		bodyStart := loc[1]
		endIdx := strings.Index(text[bodyStart:], endTag)
		if endIdx < 0 {
			return nil, newSerialiseError("thumbnail section missing end marker")
		}
		body := text[bodyStart : bodyStart+endIdx]

		encoding := EncodingPng
		switch suffix {
		case "_JPG":
			encoding = EncodingJpg
		case "_QOI":
			encoding = EncodingQoi
		}

		cleaned := cleanBase64(body)
		data, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return nil, errors.Wrap(newSerialiseError("invalid thumbnail base64"), err.Error())
		}
		sections = append(sections, thumbnailSection{
			width:    uint16(width),
			height:   uint16(height),
			encoding: encoding,
			data:     data,
		})
	}
	return sections, nil
}

// cleanBase64 strips comment markers and whitespace from a thumbnail body.
func cleanBase64(s string) string {
	var sb strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, ";")
		line = strings.TrimSpace(line)
		sb.WriteString(line)
	}
	return sb.String()
}

func extractGCodeChunks(text string) ([][]byte, error) {
	const startMarker = "M73 P0"
	const endMarker = "M73 P100 R0\n"
	start := strings.Index(text, startMarker)
	if start < 0 {
		return nil, nil
	}
	rest := text[start:]
	endIdx := strings.Index(rest, endMarker)
	if endIdx < 0 {
		return nil, newSerialiseError("g-code section missing end marker")
	}
	region := rest[:endIdx+len(endMarker)]
	return chunkGCodeLines([]byte(region), MaxGCodeChunkBytes), nil
}

// chunkGCodeLines splits body into chunks no larger than maxLen, each
// ending on a line boundary (a trailing '\n') where one falls within
// maxLen. A single line longer than maxLen is cut after maxLen bytes, and
// the last chunk ends wherever body ends.
func chunkGCodeLines(body []byte, maxLen int) [][]byte {
	var chunks [][]byte
	for len(body) > 0 {
		if len(body) <= maxLen {
			chunks = append(chunks, body)
			break
		}
		cut := bytesLastIndexByte(body[:maxLen], '\n')
		if cut < 0 {
			cut = maxLen - 1
		}
		chunks = append(chunks, body[:cut+1])
		body = body[cut+1:]
	}
	return chunks
}

func bytesLastIndexByte(b []byte, c byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == c {
			return i
		}
	}
	return -1
}
