// Package pngtest assembles PNG byte streams chunk by chunk for tests.
//
// The standard encoder cannot produce tRNS chunks, gray+alpha images or
// split IDAT payloads, so fixtures are written directly:
//
//	blob := pngtest.New().
//	    Header(2, 1, 8, 0).
//	    Chunk("tRNS", []byte{0, 200}).
//	    Data(pngtest.Rows(0, []byte{1, 2}), 1).
//	    End().
//	    Bytes()
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/tsawler/pdfpng/internal/filters"
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Builder accumulates chunks after the signature.
type Builder struct {
	buf bytes.Buffer
}

// New starts a stream with the PNG signature.
func New() *Builder {
	b := &Builder{}
	b.buf.Write(Signature)
	return b
}

// Chunk appends a chunk with a correct length and CRC.
func (b *Builder) Chunk(tag string, payload []byte) *Builder {
	b.buf.Write(Chunk(tag, payload))
	return b
}

// Header appends an IHDR chunk with compression, filter and interlace method 0.
func (b *Builder) Header(width, height uint32, depth, colorType uint8) *Builder {
	return b.Chunk("IHDR", Header(width, height, depth, colorType))
}

// Data compresses raw scanlines and appends them as parts IDAT chunks of
// roughly equal size. parts below one is treated as one.
func (b *Builder) Data(raw []byte, parts int) *Builder {
	compressed, err := filters.Deflate(raw, filters.DefaultCompression)
	if err != nil {
		panic(err)
	}
	for _, part := range Split(compressed, parts) {
		b.Chunk("IDAT", part)
	}
	return b
}

// End appends an IEND chunk.
func (b *Builder) End() *Builder {
	return b.Chunk("IEND", nil)
}

// Raw appends arbitrary bytes, e.g. a truncated chunk.
func (b *Builder) Raw(data []byte) *Builder {
	b.buf.Write(data)
	return b
}

// Bytes returns the assembled stream.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Chunk encodes one chunk: length, tag, payload and CRC over tag and payload.
func Chunk(tag string, payload []byte) []byte {
	out := make([]byte, 8, 12+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(payload)))
	copy(out[4:8], tag)
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(out[4:])
	return binary.BigEndian.AppendUint32(out, crc)
}

// Header builds a 13-byte IHDR payload.
func Header(width, height uint32, depth, colorType uint8) []byte {
	out := make([]byte, 13)
	binary.BigEndian.PutUint32(out[0:4], width)
	binary.BigEndian.PutUint32(out[4:8], height)
	out[8] = depth
	out[9] = colorType
	return out
}

// Rows prefixes every row with the given PNG filter type and concatenates them.
func Rows(filter byte, rows ...[]byte) []byte {
	var out []byte
	for _, row := range rows {
		out = append(out, filter)
		out = append(out, row...)
	}
	return out
}

// Split cuts data into parts pieces; the last piece takes the remainder.
func Split(data []byte, parts int) [][]byte {
	if parts < 1 {
		parts = 1
	}
	if parts > len(data) {
		parts = len(data)
	}
	if parts <= 1 {
		return [][]byte{data}
	}
	size := len(data) / parts
	out := make([][]byte, 0, parts)
	for i := 0; i < parts-1; i++ {
		out = append(out, data[i*size:(i+1)*size])
	}
	return append(out, data[(parts-1)*size:])
}
