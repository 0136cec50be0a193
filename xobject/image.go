package xobject

import (
	"fmt"

	"github.com/tsawler/pdfpng/core"
	"github.com/tsawler/pdfpng/internal/filters"
)

// Minimum PDF versions an image can require.
var (
	// Baseline is enough for opaque images of up to 8 bits per component.
	Baseline = core.Version{Major: 1, Minor: 0}
	// AlphaCapable is needed for soft masks.
	AlphaCapable = core.Version{Major: 1, Minor: 4}
	// HighBitDepth is needed for 16 bits per component.
	HighBitDepth = core.Version{Major: 1, Minor: 5}
)

// Allocator registers objects with a document and returns references to
// them. *core.Table satisfies it.
type Allocator interface {
	Add(obj core.Object) core.IndirectRef
}

// Image is an image XObject that has not been registered yet.
//
// Dict holds every entry except /Length, /Filter, /DecodeParms and /SMask,
// which Put fills in. For indexed images the last element of the
// /ColorSpace array is the palette as an unregistered *core.Stream.
type Image struct {
	Dict core.Dict

	// Data holds the samples before compression.
	Data []byte

	// Filter is applied to Data by Put. A zero Filter writes Data as is.
	Filter core.Filter

	// SMask is the soft mask, or nil.
	SMask *Image

	// Level is the zlib compression level used by Put.
	Level int

	minVersion core.Version
}

func newImage(width, height, bpc int) *Image {
	return &Image{
		Dict: core.Dict{
			"Type":             core.Name("XObject"),
			"Subtype":          core.Name("Image"),
			"Width":            core.Int(width),
			"Height":           core.Int(height),
			"BitsPerComponent": core.Int(bpc),
		},
		Level:      filters.DefaultCompression,
		minVersion: Baseline,
	}
}

// MinVersion returns the oldest PDF version able to display the image.
func (img *Image) MinVersion() core.Version {
	return img.minVersion
}

// Width returns the /Width entry.
func (img *Image) Width() int {
	w, _ := img.Dict.GetInt("Width")
	return int(w)
}

// Height returns the /Height entry.
func (img *Image) Height() int {
	h, _ := img.Dict.GetInt("Height")
	return int(h)
}

// Palette returns the raw palette of an indexed image, or nil.
func (img *Image) Palette() []byte {
	if s := img.paletteStream(); s != nil {
		return s.Data
	}
	return nil
}

func (img *Image) paletteStream() *core.Stream {
	cs, ok := img.Dict.GetArray("ColorSpace")
	if !ok {
		return nil
	}
	s, _ := cs.Get(cs.Len() - 1).(*core.Stream)
	return s
}

// SetCompressionLevel sets Level on the image and its soft mask.
func (img *Image) SetCompressionLevel(level int) {
	for m := img; m != nil; m = m.SMask {
		m.Level = level
	}
}

// Put encodes the image and registers it with w. The palette and the soft
// mask are registered first and referenced from /ColorSpace and /SMask.
// The Image itself is left unchanged.
func (img *Image) Put(w Allocator) (core.IndirectRef, error) {
	dict := img.Dict.Clone()

	if cs, ok := dict.GetArray("ColorSpace"); ok {
		resolved := make(core.Array, len(cs))
		for i, elem := range cs {
			if s, ok := elem.(*core.Stream); ok {
				resolved[i] = w.Add(s)
				continue
			}
			resolved[i] = elem
		}
		dict["ColorSpace"] = resolved
	}

	if img.SMask != nil {
		ref, err := img.SMask.Put(w)
		if err != nil {
			return core.IndirectRef{}, fmt.Errorf("soft mask: %w", err)
		}
		dict["SMask"] = ref
	}

	var fs []core.Filter
	if img.Filter.Name != "" {
		fs = append(fs, img.Filter)
	}
	stream, err := core.NewStream(dict, img.Data, img.Level, fs...)
	if err != nil {
		return core.IndirectRef{}, fmt.Errorf("failed to encode image stream: %w", err)
	}

	return w.Add(stream), nil
}

func paletteStream(palette []byte) *core.Stream {
	data := append([]byte(nil), palette...)
	return &core.Stream{
		Dict: core.Dict{"Length": core.Int(len(data))},
		Data: data,
	}
}
