package png

import "fmt"

// Split de-interleaves scanlines whose pixels carry colors color samples
// followed by one alpha sample. Each output scanline keeps the input's
// filter-type byte, so both planes stay valid input for a PNG predictor
// with the same filter choices; the filters themselves are not undone.
//
// The scanline count is taken from len(raw); height is accepted to mirror
// the IHDR fields and is not checked against it.
//
// bitDepth must be 8 or 16, and raw must hold a whole number of scanlines,
// otherwise a *FallbackRequired wrapping ErrGeometryMismatch is returned.
func Split(raw []byte, width, _ uint32, bitDepth uint8, colors int) (color, alpha []byte, err error) {
	if bitDepth%8 != 0 || bitDepth == 0 {
		return nil, nil, fallback(fmt.Errorf("bit depth %d cannot carry alpha: %w", bitDepth, ErrGeometryMismatch))
	}
	if width == 0 || colors < 1 {
		return nil, nil, fallback(fmt.Errorf("width %d, %d colors: %w", width, colors, ErrGeometryMismatch))
	}

	alphaBytes := int(bitDepth) / 8
	colorBytes := colors * int(bitDepth) / 8
	pixelBytes := colorBytes + alphaBytes
	w := int(width)
	scanlineLength := pixelBytes*w + 1

	if len(raw)%scanlineLength != 0 {
		return nil, nil, fallback(fmt.Errorf("%d bytes is not a multiple of scanline length %d: %w",
			len(raw), scanlineLength, ErrGeometryMismatch))
	}
	scanlines := len(raw) / scanlineLength
	pixels := w * scanlines

	color = make([]byte, pixels*colorBytes+scanlines)
	alpha = make([]byte, pixels*alphaBytes+scanlines)

	src, ci, ai := 0, 0, 0
	for line := 0; line < scanlines; line++ {
		filter := raw[src]
		src++
		color[ci] = filter
		ci++
		alpha[ai] = filter
		ai++

		for x := 0; x < w; x++ {
			ci += copy(color[ci:ci+colorBytes], raw[src:src+colorBytes])
			src += colorBytes
			ai += copy(alpha[ai:ai+alphaBytes], raw[src:src+alphaBytes])
			src += alphaBytes
		}
	}

	return color, alpha, nil
}
