package png

import "fmt"

// ColorType is the IHDR color type.
type ColorType uint8

const (
	Grayscale      ColorType = 0
	RGB            ColorType = 2
	Indexed        ColorType = 3
	GrayscaleAlpha ColorType = 4
	RGBAlpha       ColorType = 6
)

// String returns the name of the color type
func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Grayscale"
	case RGB:
		return "RGB"
	case Indexed:
		return "Indexed"
	case GrayscaleAlpha:
		return "GrayscaleAlpha"
	case RGBAlpha:
		return "RGBAlpha"
	default:
		return "Unknown"
	}
}

// Colors returns the number of color components per pixel, not counting
// alpha. Indexed images have one component (the palette index). Unknown
// color types return 0.
func (c ColorType) Colors() int {
	switch c {
	case Grayscale, Indexed, GrayscaleAlpha:
		return 1
	case RGB, RGBAlpha:
		return 3
	default:
		return 0
	}
}

// HasAlpha reports whether alpha samples are interleaved with color samples.
func (c ColorType) HasAlpha() bool {
	return c == GrayscaleAlpha || c == RGBAlpha
}

func (c ColorType) valid() bool {
	return c.Colors() != 0
}

// Transparency is the tRNS information of an image. It is one of
// NoTransparency, GrayKey, RGBKey or DelegatedIndexed.
type Transparency interface {
	isTransparency()
}

// NoTransparency means no usable tRNS chunk was seen.
type NoTransparency struct{}

// GrayKey makes grayscale samples equal to Value fully transparent.
type GrayKey struct {
	Value uint16
}

// RGBKey makes pixels equal to (R, G, B) fully transparent.
type RGBKey struct {
	R, G, B uint16
}

// DelegatedIndexed marks per-palette-entry alpha, which only the fallback decoder handles.
type DelegatedIndexed struct{}

func (NoTransparency) isTransparency()   {}
func (GrayKey) isTransparency()          {}
func (RGBKey) isTransparency()           {}
func (DelegatedIndexed) isTransparency() {}

// Descriptor is a decoded PNG: header fields, palette, inflated scanlines
// and transparency. Values returned by Decode and Split are not modified
// afterwards; Split returns a new Descriptor.
type Descriptor struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8

	// Palette holds the PLTE payload as RGB triplets.
	Palette []byte

	// Pixels holds filtered scanlines, each led by its filter-type byte.
	// After Split only color samples remain.
	Pixels []byte

	Transparency Transparency

	// AlphaChannel is nil until Split; then it holds filtered alpha scanlines.
	AlphaChannel []byte
}

// Colors returns the number of color components per pixel.
func (d *Descriptor) Colors() int {
	return d.ColorType.Colors()
}

// HasAlpha reports whether the color type interleaves alpha samples.
func (d *Descriptor) HasAlpha() bool {
	return d.ColorType.HasAlpha()
}

// IsSplit reports whether the alpha channel has been separated.
func (d *Descriptor) IsSplit() bool {
	return d.AlphaChannel != nil
}

// Validate checks that Pixels holds exactly Height scanlines of the size
// IHDR implies, each led by a filter byte. Interlaced images are rejected
// first. Failures are *FallbackRequired.
func (d *Descriptor) Validate() error {
	if d.InterlaceMethod != 0 {
		return fallback(fmt.Errorf("interlace method %d: %w", d.InterlaceMethod, ErrInterlaced))
	}
	if d.Width == 0 || d.Height == 0 {
		return fallback(fmt.Errorf("image is %dx%d: %w", d.Width, d.Height, ErrGeometryMismatch))
	}

	samples := uint64(d.Colors())
	if d.HasAlpha() {
		samples++
	}
	rowBytes := (samples*uint64(d.BitDepth)*uint64(d.Width) + 7) / 8
	if want := uint64(d.Height) * (rowBytes + 1); uint64(len(d.Pixels)) != want {
		return fallback(fmt.Errorf("%d bytes of pixel data, want %d for %d scanlines: %w",
			len(d.Pixels), want, d.Height, ErrGeometryMismatch))
	}
	return nil
}

// Split separates interleaved alpha samples into AlphaChannel and returns
// the result as a new Descriptor. Images without alpha, and descriptors
// already split, are returned unchanged.
func (d *Descriptor) Split() (*Descriptor, error) {
	if !d.HasAlpha() || d.IsSplit() {
		return d, nil
	}

	color, alpha, err := Split(d.Pixels, d.Width, d.Height, d.BitDepth, d.Colors())
	if err != nil {
		return nil, err
	}

	out := *d
	out.Pixels = color
	out.AlphaChannel = alpha
	return &out, nil
}
