// Package pdfpng turns PNG images into PDF image XObjects.
//
// Images are decoded natively where possible: the PNG chunks are walked,
// the pixel data is inflated once, and color and alpha samples are split
// into an image and a soft mask that keep their PNG filter bytes. Inputs
// the native decoder cannot handle (palette transparency, malformed or
// non-PNG data) go to a fallback decoder exactly once.
//
// Basic usage:
//
//	res, err := pdfpng.Render(blob)
//	if err != nil {
//	    // neither decoder could read blob
//	}
//	ref, err := res.Image.Put(table)
//
// With options:
//
//	ref, res, warnings, err := pdfpng.Open("logo.png").
//	    CompressionLevel(9).
//	    Embed(table)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfpng.FormatWarnings(warnings))
//	}
//
// The xobject, png and fallback packages are available for lower-level use.
package pdfpng

import (
	"github.com/tsawler/pdfpng/fallback"
)

// Render converts blob with the default settings and discards warnings.
// It does not register anything; see Result.Image.Put.
func Render(blob []byte) (*Result, error) {
	res, _, err := FromBytes(blob).Render()
	return res, err
}

// CanRender reports whether the default fallback decoder recognizes blob.
// Every input that passes can be rendered by one of the two paths.
func CanRender(blob []byte) bool {
	return fallback.NewImageDecoder().CanDecode(blob)
}

// Open returns a Renderer that reads filename when a terminal operation runs.
//
// Example:
//
//	res, warnings, err := pdfpng.Open("logo.png").Render()
func Open(filename string) *Renderer {
	return &Renderer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Renderer for an image already in memory. blob is not
// copied and must not be modified while the Renderer is in use.
//
// Example:
//
//	res, _, err := pdfpng.FromBytes(blob).NoFallback().Render()
func FromBytes(blob []byte) *Renderer {
	return &Renderer{
		blob:    blob,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := pdfpng.Must(pdfpng.Render(blob))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRender is a helper that wraps a call to Render() and panics if the
// error is non-nil. It discards warnings and returns just the result.
//
// Example:
//
//	res := pdfpng.MustRender(pdfpng.Open("logo.png").Render())
func MustRender[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
