// Package png decodes PNG streams into the pieces a PDF image XObject needs.
//
// Decode walks the chunk container once, collecting the IHDR fields, the
// palette, the tRNS color key and the IDAT payload, then inflates the pixel
// data. Scanlines keep their PNG filter bytes: PDF's FlateDecode predictor 15
// reverses them on the reading side, so the pixel data is never unfiltered
// here.
//
//	d, err := png.Decode(blob)
//	var fr *png.FallbackRequired
//	if errors.As(err, &fr) {
//	    // hand blob to a general-purpose decoder
//	}
//
// CRCs are not verified, unknown chunks are skipped, and reading stops at
// IEND. Palette transparency is not handled and always requests the fallback.
//
// For gray+alpha and RGBA images, Split separates alpha samples from color
// samples so they can be written as a separate soft-mask image.
package png
