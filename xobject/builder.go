package xobject

import (
	"github.com/tsawler/pdfpng/core"
	"github.com/tsawler/pdfpng/fallback"
	"github.com/tsawler/pdfpng/png"
)

// Build converts a natively decoded PNG into an image XObject. The pixel
// data is checked against the header and images with an alpha channel are
// split; either error is returned unchanged so the caller can fall back.
func Build(d *png.Descriptor) (*Image, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	split, err := d.Split()
	if err != nil {
		return nil, err
	}

	img := newImage(int(split.Width), int(split.Height), int(split.BitDepth))
	img.Data = split.Pixels
	img.Filter = predictorFilter(split.Colors(), split.BitDepth, split.Width)
	img.minVersion = MinVersion(split)

	switch {
	// A PLTE chunk on a truecolor image is only a suggested palette.
	case split.ColorType == png.Indexed && len(split.Palette) > 0:
		img.Dict["ColorSpace"] = core.Array{
			core.Name("Indexed"),
			core.Name(fallback.DeviceRGB),
			core.Int(len(split.Palette)/3 - 1),
			paletteStream(split.Palette),
		}
	case split.Colors() == 1:
		img.Dict["ColorSpace"] = core.Name(fallback.DeviceGray)
	default:
		img.Dict["ColorSpace"] = core.Name(fallback.DeviceRGB)
	}

	switch t := split.Transparency.(type) {
	case png.GrayKey:
		v := int(t.Value)
		img.Dict["Mask"] = core.IntArray(v, v)
	case png.RGBKey:
		r, g, b := int(t.R), int(t.G), int(t.B)
		img.Dict["Mask"] = core.IntArray(r, r, g, g, b, b)
	}

	if split.HasAlpha() {
		mask := newImage(int(split.Width), int(split.Height), int(split.BitDepth))
		mask.Dict["ColorSpace"] = core.Name(fallback.DeviceGray)
		mask.Dict["Decode"] = core.IntArray(0, 1)
		mask.Data = split.AlphaChannel
		mask.Filter = predictorFilter(1, split.BitDepth, split.Width)
		img.SMask = mask
	}

	return img, nil
}

// BuildFallback converts an image decoded by a fallback decoder. Geometry
// and color space come from the decoder. A soft mask is attached only when
// the alpha samples hold more than one distinct value.
func BuildFallback(src fallback.Image) *Image {
	img := newImage(src.Width(), src.Height(), src.BitDepth())
	img.Dict["ColorSpace"] = core.Name(src.ColorSpace())
	img.Data = src.Unpack()
	img.Filter = core.Filter{Name: core.FlateDecode}

	if alpha := src.AlphaUnpack(); !uniform(alpha) {
		mask := newImage(src.Width(), src.Height(), src.BitDepth())
		mask.Dict["ColorSpace"] = core.Name(fallback.DeviceRGB)
		mask.Dict["Decode"] = core.IntArray(0, 1)
		mask.Data = alpha
		mask.Filter = core.Filter{Name: core.FlateDecode}
		img.SMask = mask
	}

	if src.BitDepth() > 8 {
		img.minVersion = core.Max(img.minVersion, HighBitDepth)
	}
	if img.SMask != nil {
		img.minVersion = core.Max(img.minVersion, AlphaCapable)
	}

	return img
}

// MinVersion returns the oldest PDF version able to display d: 1.5 above
// 8 bits per component, 1.4 when an alpha channel needs a soft mask, and
// 1.0 otherwise.
func MinVersion(d *png.Descriptor) core.Version {
	switch {
	case d.BitDepth > 8:
		return HighBitDepth
	case d.HasAlpha():
		return AlphaCapable
	default:
		return Baseline
	}
}

// predictorFilter describes PNG-filtered scanlines to a PDF consumer.
func predictorFilter(colors int, bitDepth uint8, width uint32) core.Filter {
	return core.Filter{
		Name: core.FlateDecode,
		Params: core.Dict{
			"Predictor":        core.Int(15),
			"Colors":           core.Int(colors),
			"BitsPerComponent": core.Int(bitDepth),
			"Columns":          core.Int(width),
		},
	}
}

// uniform reports whether every byte of samples is the same. Empty input
// counts as uniform.
func uniform(samples []byte) bool {
	if len(samples) == 0 {
		return true
	}
	for _, s := range samples[1:] {
		if s != samples[0] {
			return false
		}
	}
	return true
}
