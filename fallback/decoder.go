package fallback

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Formats understood by ImageDecoder.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PDF device color spaces reported by Image.ColorSpace.
const (
	DeviceGray = "DeviceGray"
	DeviceRGB  = "DeviceRGB"
	DeviceCMYK = "DeviceCMYK"
)

// Decoder decodes whole images the native PNG path cannot handle.
type Decoder interface {
	// CanDecode reports whether blob is in a format the decoder recognizes.
	CanDecode(blob []byte) bool
	// Decode decodes blob completely.
	Decode(blob []byte) (Image, error)
}

// Image is a decoded raster as seen by the PDF image builder.
type Image interface {
	Width() int
	Height() int
	// BitDepth is the number of bits per color component.
	BitDepth() int
	// ColorSpace is the name of a PDF device color space.
	ColorSpace() string
	// Unpack returns the color samples row by row, without filter bytes.
	Unpack() []byte
	// AlphaUnpack returns one alpha sample per pixel at BitDepth.
	AlphaUnpack() []byte
}

// ImageDecoder decodes any format registered with the image package.
type ImageDecoder struct{}

// NewImageDecoder returns a decoder backed by the image format registry.
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{}
}

// CanDecode reports whether a registered format recognizes blob's header.
func (d *ImageDecoder) CanDecode(blob []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(blob))
	return err == nil
}

// Decode decodes blob into a Raster.
func (d *ImageDecoder) Decode(blob []byte) (Image, error) {
	img, format, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("fallback decode: %w", err)
	}
	return NewRaster(img, format), nil
}

// Raster adapts an image.Image to the Image interface.
type Raster struct {
	img        image.Image
	format     string
	colorSpace string
	bitDepth   int
}

// NewRaster wraps img. format is the registry name it was decoded from and
// may be empty.
func NewRaster(img image.Image, format string) *Raster {
	r := &Raster{img: img, format: format, colorSpace: DeviceRGB, bitDepth: 8}

	switch img.ColorModel() {
	case color.GrayModel:
		r.colorSpace = DeviceGray
	case color.Gray16Model:
		r.colorSpace = DeviceGray
		r.bitDepth = 16
	case color.CMYKModel:
		r.colorSpace = DeviceCMYK
	case color.RGBA64Model, color.NRGBA64Model:
		r.bitDepth = 16
	}

	return r
}

// Format returns the registry name of the source format.
func (r *Raster) Format() string { return r.format }

func (r *Raster) Width() int         { return r.img.Bounds().Dx() }
func (r *Raster) Height() int        { return r.img.Bounds().Dy() }
func (r *Raster) BitDepth() int      { return r.bitDepth }
func (r *Raster) ColorSpace() string { return r.colorSpace }

// components returns the number of color components per pixel.
func (r *Raster) components() int {
	switch r.colorSpace {
	case DeviceGray:
		return 1
	case DeviceCMYK:
		return 4
	default:
		return 3
	}
}

// Unpack returns un-premultiplied color samples, 16-bit samples big-endian.
func (r *Raster) Unpack() []byte {
	b := r.img.Bounds()
	if g, ok := r.img.(*image.Gray); ok && g.Stride == b.Dx() {
		return append([]byte(nil), g.Pix[:b.Dx()*b.Dy()]...)
	}

	out := make([]byte, 0, b.Dx()*b.Dy()*r.components()*r.bitDepth/8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = r.appendColor(out, r.img.At(x, y))
		}
	}
	return out
}

func (r *Raster) appendColor(out []byte, c color.Color) []byte {
	switch r.colorSpace {
	case DeviceGray:
		if r.bitDepth == 16 {
			g := color.Gray16Model.Convert(c).(color.Gray16)
			return append(out, byte(g.Y>>8), byte(g.Y))
		}
		return append(out, color.GrayModel.Convert(c).(color.Gray).Y)
	case DeviceCMYK:
		k := color.CMYKModel.Convert(c).(color.CMYK)
		return append(out, k.C, k.M, k.Y, k.K)
	default:
		if r.bitDepth == 16 {
			n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
			return append(out,
				byte(n.R>>8), byte(n.R),
				byte(n.G>>8), byte(n.G),
				byte(n.B>>8), byte(n.B))
		}
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return append(out, n.R, n.G, n.B)
	}
}

// AlphaUnpack returns one alpha sample per pixel. Formats without alpha
// report every pixel as opaque.
func (r *Raster) AlphaUnpack() []byte {
	b := r.img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*r.bitDepth/8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := r.img.At(x, y).RGBA()
			if r.bitDepth == 16 {
				out = append(out, byte(a>>8), byte(a))
			} else {
				out = append(out, byte(a>>8))
			}
		}
	}
	return out
}
