package png

import (
	"encoding/binary"
	"fmt"
)

// Chunk is one record of the PNG container. The set of kinds is closed:
// HeaderChunk, PaletteChunk, DataChunk, TransparencyChunk, EndChunk and
// OtherChunk for everything this package does not interpret.
type Chunk interface {
	Tag() string
}

// HeaderChunk is an IHDR chunk.
type HeaderChunk struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// PaletteChunk is a PLTE chunk.
type PaletteChunk struct {
	Entries []byte
}

// DataChunk is an IDAT chunk holding part of the compressed pixel stream.
type DataChunk struct {
	Payload []byte
}

// TransparencyChunk is a tRNS chunk. Its meaning depends on the color type.
type TransparencyChunk struct {
	Payload []byte
}

// EndChunk is the IEND chunk.
type EndChunk struct{}

// OtherChunk is any chunk that is skipped without interpretation.
type OtherChunk struct {
	Type   string
	Length uint32
}

func (HeaderChunk) Tag() string       { return "IHDR" }
func (PaletteChunk) Tag() string      { return "PLTE" }
func (DataChunk) Tag() string         { return "IDAT" }
func (TransparencyChunk) Tag() string { return "tRNS" }
func (EndChunk) Tag() string          { return "IEND" }
func (c OtherChunk) Tag() string      { return c.Type }

// headerLength is the size of the fixed IHDR payload.
const headerLength = 13

// chunkReader walks the chunks of an in-memory PNG. Payload slices alias
// the input.
type chunkReader struct {
	data []byte
	pos  int
}

// newChunkReader positions the cursor after the 8-byte signature, which is
// not checked.
func newChunkReader(data []byte) (*chunkReader, error) {
	r := &chunkReader{data: data}
	if _, err := r.advance(8); err != nil {
		return nil, fmt.Errorf("signature: %w", err)
	}
	return r, nil
}

// advance returns the next n bytes and moves past them.
func (r *chunkReader) advance(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, r.pos, len(r.data)-r.pos, ErrTruncated)
	}
	r.pos += n
	return r.data[r.pos-n : r.pos], nil
}

// next reads one chunk. The CRC of every chunk but IEND is skipped
// unverified; IEND returns before its CRC is read.
func (r *chunkReader) next() (Chunk, error) {
	start := r.pos
	lengthBytes, err := r.advance(4)
	if err != nil {
		return nil, fmt.Errorf("chunk length: %w", err)
	}
	tagBytes, err := r.advance(4)
	if err != nil {
		return nil, fmt.Errorf("chunk type: %w", err)
	}
	length := binary.BigEndian.Uint32(lengthBytes)
	tag := string(tagBytes)

	if tag == "IEND" {
		return EndChunk{}, nil
	}

	// Lengths above 2^31-1 are invalid PNG and would overflow int on 32-bit targets.
	if length > 1<<31-1 {
		return nil, fmt.Errorf("chunk %q at offset %d: length %d: %w", tag, start, length, ErrTruncated)
	}
	payload, err := r.advance(int(length))
	if err != nil {
		return nil, fmt.Errorf("chunk %q at offset %d: %w", tag, start, err)
	}
	if _, err := r.advance(4); err != nil {
		return nil, fmt.Errorf("chunk %q CRC: %w", tag, err)
	}

	switch tag {
	case "IHDR":
		return parseHeader(payload)
	case "PLTE":
		return PaletteChunk{Entries: payload}, nil
	case "IDAT":
		return DataChunk{Payload: payload}, nil
	case "tRNS":
		return TransparencyChunk{Payload: payload}, nil
	default:
		return OtherChunk{Type: tag, Length: length}, nil
	}
}

// parseHeader unpacks an IHDR payload. Trailing bytes beyond the fixed
// fields are ignored.
func parseHeader(payload []byte) (HeaderChunk, error) {
	if len(payload) < headerLength {
		return HeaderChunk{}, fmt.Errorf("IHDR payload is %d bytes, need %d: %w", len(payload), headerLength, ErrTruncated)
	}
	return HeaderChunk{
		Width:             binary.BigEndian.Uint32(payload[0:4]),
		Height:            binary.BigEndian.Uint32(payload[4:8]),
		BitDepth:          payload[8],
		ColorType:         ColorType(payload[9]),
		CompressionMethod: payload[10],
		FilterMethod:      payload[11],
		InterlaceMethod:   payload[12],
	}, nil
}
