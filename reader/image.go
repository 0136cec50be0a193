package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/tsawler/pdfpng/core"
)

// Resolver follows indirect references. *core.Table satisfies it.
type Resolver interface {
	Resolve(obj core.Object) (core.Object, error)
}

// Reader extracts images from a set of resolved objects.
type Reader struct {
	objects Resolver
}

// New returns a Reader that resolves references through objects.
func New(objects Resolver) *Reader {
	return &Reader{objects: objects}
}

// Image is a decoded image XObject.
type Image struct {
	Width            int
	Height           int
	ColorSpace       string // DeviceGray, DeviceRGB, DeviceCMYK or Indexed
	BitsPerComponent int
	Palette          []byte // RGB triplets, Indexed only
	Mask             []int  // color-key ranges from /Mask
	Data             []byte // Decoded samples without predictor bytes
	Filter           string // First filter name, empty for raw streams
	SMask            *Image
}

// ExtractImage resolves obj and decodes it as an image XObject, together
// with its palette and soft mask.
func (r *Reader) ExtractImage(obj core.Object) (*Image, error) {
	resolved, err := r.objects.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image: %w", err)
	}

	stream, ok := resolved.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("image is not a stream: %T", resolved)
	}

	if subtype, _ := stream.Dict.GetName("Subtype"); subtype != "Image" {
		return nil, fmt.Errorf("not an image XObject: subtype %q", subtype)
	}

	return r.extractImage(stream)
}

// extractImage extracts a single image from a stream.
func (r *Reader) extractImage(stream *core.Stream) (*Image, error) {
	dict := stream.Dict

	width, ok := dict.GetInt("Width")
	if !ok {
		return nil, fmt.Errorf("image missing Width")
	}
	height, ok := dict.GetInt("Height")
	if !ok {
		return nil, fmt.Errorf("image missing Height")
	}

	bpc := 8
	if bpcInt, ok := dict.GetInt("BitsPerComponent"); ok {
		bpc = int(bpcInt)
	}

	img := &Image{
		Width:            int(width),
		Height:           int(height),
		ColorSpace:       "DeviceGray",
		BitsPerComponent: bpc,
	}

	if csObj := dict.Get("ColorSpace"); csObj != nil {
		if err := r.parseColorSpace(img, csObj); err != nil {
			return nil, err
		}
	}

	switch f := dict.Get("Filter").(type) {
	case core.Name:
		img.Filter = string(f)
	case core.Array:
		if name, ok := f.GetName(0); ok {
			img.Filter = string(name)
		}
	}

	if mask, ok := dict.GetArray("Mask"); ok {
		for i := range mask {
			v, ok := mask.GetInt(i)
			if !ok {
				return nil, fmt.Errorf("invalid Mask entry %d: %T", i, mask[i])
			}
			img.Mask = append(img.Mask, int(v))
		}
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image stream: %w", err)
	}
	img.Data = data

	if smaskObj := dict.Get("SMask"); smaskObj != nil {
		resolved, err := r.objects.Resolve(smaskObj)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve SMask: %w", err)
		}
		smaskStream, ok := resolved.(*core.Stream)
		if !ok {
			return nil, fmt.Errorf("SMask is not a stream: %T", resolved)
		}
		img.SMask, err = r.extractImage(smaskStream)
		if err != nil {
			return nil, fmt.Errorf("SMask: %w", err)
		}
	}

	return img, nil
}

// parseColorSpace fills in the color space name and, for Indexed color
// spaces, the palette.
func (r *Reader) parseColorSpace(img *Image, obj core.Object) error {
	resolved, err := r.objects.Resolve(obj)
	if err != nil {
		return fmt.Errorf("failed to resolve ColorSpace: %w", err)
	}

	switch v := resolved.(type) {
	case core.Name:
		img.ColorSpace = string(v)
		return nil
	case core.Array:
		name, ok := v.GetName(0)
		if !ok {
			return fmt.Errorf("invalid ColorSpace array: %s", v)
		}
		img.ColorSpace = string(name)
		if name != "Indexed" {
			return nil
		}
		// [/Indexed base hival lookup]
		if v.Len() != 4 {
			return fmt.Errorf("Indexed color space has %d elements, want 4", v.Len())
		}
		if base, _ := v.GetName(1); base != "DeviceRGB" {
			return fmt.Errorf("unsupported Indexed base color space: %s", v.Get(1))
		}
		lookup, err := r.objects.Resolve(v.Get(3))
		if err != nil {
			return fmt.Errorf("failed to resolve palette: %w", err)
		}
		stream, ok := lookup.(*core.Stream)
		if !ok {
			return fmt.Errorf("palette is not a stream: %T", lookup)
		}
		img.Palette, err = stream.Decode()
		if err != nil {
			return fmt.Errorf("failed to decode palette: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("invalid ColorSpace type: %T", resolved)
	}
}

// components returns the number of samples per pixel.
func (img *Image) components() (int, error) {
	switch img.ColorSpace {
	case "DeviceGray", "Indexed":
		return 1, nil
	case "DeviceRGB":
		return 3, nil
	case "DeviceCMYK":
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported color space: %s", img.ColorSpace)
	}
}

// rows checks the decoded data against the geometry and returns the
// number of bytes per row.
func (img *Image) rows(comps int) (int, error) {
	switch img.BitsPerComponent {
	case 1, 2, 4, 8, 16:
	default:
		return 0, fmt.Errorf("unsupported bits per component: %d", img.BitsPerComponent)
	}
	rowBytes := (img.Width*comps*img.BitsPerComponent + 7) / 8
	if expected := rowBytes * img.Height; len(img.Data) < expected {
		return 0, fmt.Errorf("insufficient data: got %d, expected %d", len(img.Data), expected)
	}
	return rowBytes, nil
}

// sample returns the i-th raw sample of row.
func sample(row []byte, i, bpc int) uint16 {
	switch bpc {
	case 16:
		return uint16(row[2*i])<<8 | uint16(row[2*i+1])
	case 8:
		return uint16(row[i])
	default:
		// Sub-byte samples are packed MSB first.
		bit := i * bpc
		shift := 8 - bpc - bit%8
		return uint16(row[bit/8]>>shift) & (1<<bpc - 1)
	}
}

// scale maps a bpc-bit sample onto the full 16-bit range.
func scale(v uint16, bpc int) uint16 {
	maxVal := uint32(1)<<bpc - 1
	return uint16(uint32(v) * 0xFFFF / maxVal)
}

// ToImage converts the decoded samples to an NRGBA64 image. Color-key
// masks make matching pixels transparent and a soft mask supplies alpha.
func (img *Image) ToImage() (*image.NRGBA64, error) {
	comps, err := img.components()
	if err != nil {
		return nil, err
	}
	rowBytes, err := img.rows(comps)
	if err != nil {
		return nil, err
	}
	if img.Mask != nil && len(img.Mask) != 2*comps {
		return nil, fmt.Errorf("Mask has %d entries, want %d", len(img.Mask), 2*comps)
	}

	var alpha []uint16
	if img.SMask != nil {
		alpha, err = img.SMask.alphaPlane(img.Width, img.Height)
		if err != nil {
			return nil, fmt.Errorf("SMask: %w", err)
		}
	}

	out := image.NewNRGBA64(image.Rect(0, 0, img.Width, img.Height))
	samples := make([]uint16, comps)
	bpc := img.BitsPerComponent

	for y := 0; y < img.Height; y++ {
		row := img.Data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < img.Width; x++ {
			for c := range samples {
				samples[c] = sample(row, x*comps+c, bpc)
			}

			px, err := img.toColor(samples)
			if err != nil {
				return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			if img.keyed(samples) {
				px.A = 0
			} else if alpha != nil {
				px.A = alpha[y*img.Width+x]
			}
			out.SetNRGBA64(x, y, px)
		}
	}

	return out, nil
}

// toColor converts one pixel's raw samples to an opaque color.
func (img *Image) toColor(samples []uint16) (color.NRGBA64, error) {
	bpc := img.BitsPerComponent
	switch img.ColorSpace {
	case "DeviceGray":
		g := scale(samples[0], bpc)
		return color.NRGBA64{R: g, G: g, B: g, A: 0xFFFF}, nil

	case "DeviceRGB":
		return color.NRGBA64{
			R: scale(samples[0], bpc),
			G: scale(samples[1], bpc),
			B: scale(samples[2], bpc),
			A: 0xFFFF,
		}, nil

	case "DeviceCMYK":
		// Convert CMYK to RGB at 8 bits
		r, g, b := color.CMYKToRGB(
			uint8(scale(samples[0], bpc)>>8),
			uint8(scale(samples[1], bpc)>>8),
			uint8(scale(samples[2], bpc)>>8),
			uint8(scale(samples[3], bpc)>>8))
		return color.NRGBA64{R: uint16(r) * 0x101, G: uint16(g) * 0x101, B: uint16(b) * 0x101, A: 0xFFFF}, nil

	default: // Indexed
		i := int(samples[0]) * 3
		if i+3 > len(img.Palette) {
			return color.NRGBA64{}, fmt.Errorf("palette index %d out of range", samples[0])
		}
		p := img.Palette[i : i+3]
		return color.NRGBA64{R: uint16(p[0]) * 0x101, G: uint16(p[1]) * 0x101, B: uint16(p[2]) * 0x101, A: 0xFFFF}, nil
	}
}

// keyed reports whether every sample falls inside its /Mask range.
func (img *Image) keyed(samples []uint16) bool {
	if img.Mask == nil {
		return false
	}
	for c, s := range samples {
		if int(s) < img.Mask[2*c] || int(s) > img.Mask[2*c+1] {
			return false
		}
	}
	return true
}

// alphaPlane reads a soft mask as one 16-bit alpha value per pixel.
func (img *Image) alphaPlane(width, height int) ([]uint16, error) {
	if img.Width != width || img.Height != height {
		return nil, fmt.Errorf("size %dx%d does not match image %dx%d", img.Width, img.Height, width, height)
	}
	rowBytes, err := img.rows(1)
	if err != nil {
		return nil, err
	}

	alpha := make([]uint16, 0, width*height)
	for y := 0; y < height; y++ {
		row := img.Data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			alpha = append(alpha, scale(sample(row, x, img.BitsPerComponent), img.BitsPerComponent))
		}
	}
	return alpha, nil
}

// ToPNG converts the decoded image to PNG format.
func (img *Image) ToPNG() ([]byte, error) {
	goImg, err := img.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}
