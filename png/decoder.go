package png

import (
	"encoding/binary"
	"fmt"

	"github.com/tsawler/pdfpng/internal/filters"
)

// decodeState accumulates chunk contents during one pass over the input.
type decodeState struct {
	header       HeaderChunk
	haveHeader   bool
	palette      []byte
	compressed   []byte
	transparency Transparency
}

// Decode parses a PNG held in memory. Any failure, structural or
// unsupported, is returned as a *FallbackRequired; the caller then decodes
// the blob with a general-purpose decoder instead. The returned Descriptor
// holds inflated, still-filtered scanlines.
func Decode(data []byte) (*Descriptor, error) {
	d, err := decode(data)
	if err != nil {
		return nil, fallback(err)
	}
	return d, nil
}

func decode(data []byte) (*Descriptor, error) {
	r, err := newChunkReader(data)
	if err != nil {
		return nil, err
	}

	st := &decodeState{transparency: NoTransparency{}}
	for {
		chunk, err := r.next()
		if err != nil {
			return nil, err
		}
		if _, ok := chunk.(EndChunk); ok {
			break
		}
		if err := st.apply(chunk); err != nil {
			return nil, err
		}
	}

	return st.finalize()
}

// apply folds one chunk into the state.
func (st *decodeState) apply(chunk Chunk) error {
	switch c := chunk.(type) {
	case HeaderChunk:
		// The first IHDR wins.
		if !st.haveHeader {
			st.header = c
			st.haveHeader = true
		}
	case PaletteChunk:
		st.palette = append(st.palette, c.Entries...)
	case DataChunk:
		st.compressed = append(st.compressed, c.Payload...)
	case TransparencyChunk:
		t, err := st.parseTransparency(c.Payload)
		if err != nil {
			return err
		}
		if _, ok := t.(DelegatedIndexed); ok {
			return fmt.Errorf("tRNS on indexed image: %w", ErrUnsupportedTransparency)
		}
		st.transparency = t
	case OtherChunk:
	}
	return nil
}

// parseTransparency interprets a tRNS payload against the color type seen so
// far. tRNS before IHDR, or on alpha-bearing color types, is ignored.
func (st *decodeState) parseTransparency(payload []byte) (Transparency, error) {
	if !st.haveHeader {
		return st.transparency, nil
	}

	switch st.header.ColorType {
	case Indexed:
		return DelegatedIndexed{}, nil
	case Grayscale:
		if len(payload) < 2 {
			return nil, fmt.Errorf("grayscale tRNS is %d bytes, need 2: %w", len(payload), ErrTruncated)
		}
		return GrayKey{Value: binary.BigEndian.Uint16(payload)}, nil
	case RGB:
		if len(payload) < 6 {
			return nil, fmt.Errorf("RGB tRNS is %d bytes, need 6: %w", len(payload), ErrTruncated)
		}
		return RGBKey{
			R: binary.BigEndian.Uint16(payload[0:2]),
			G: binary.BigEndian.Uint16(payload[2:4]),
			B: binary.BigEndian.Uint16(payload[4:6]),
		}, nil
	default:
		return st.transparency, nil
	}
}

// finalize inflates the pixel stream and produces the Descriptor.
func (st *decodeState) finalize() (*Descriptor, error) {
	if !st.haveHeader {
		return nil, ErrMissingHeader
	}
	if !st.header.ColorType.valid() {
		return nil, fmt.Errorf("color type %d: %w", st.header.ColorType, ErrUnsupportedColorType)
	}

	// IDAT payloads form one zlib stream and are inflated together.
	pixels, err := filters.Inflate(st.compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInflate, err)
	}

	h := st.header
	return &Descriptor{
		Width:             h.Width,
		Height:            h.Height,
		BitDepth:          h.BitDepth,
		ColorType:         h.ColorType,
		CompressionMethod: h.CompressionMethod,
		FilterMethod:      h.FilterMethod,
		InterlaceMethod:   h.InterlaceMethod,
		Palette:           st.palette,
		Pixels:            pixels,
		Transparency:      st.transparency,
	}, nil
}
