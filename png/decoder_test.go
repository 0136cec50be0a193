package png

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	stdpng "image/png"
	"reflect"
	"testing"

	"github.com/tsawler/pdfpng/internal/pngtest"
)

// grayRows returns height rows of width bytes with filter type 0.
func grayRows(width, height int) []byte {
	rows := make([][]byte, height)
	for y := range rows {
		row := make([]byte, width)
		for x := range row {
			row[x] = byte(x*16 + y)
		}
		rows[y] = row
	}
	return pngtest.Rows(0, rows...)
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name      string
		width     uint32
		height    uint32
		depth     uint8
		colorType ColorType
		rowBytes  int
	}{
		{"gray 8", 4, 3, 8, Grayscale, 4},
		{"gray 1", 9, 2, 1, Grayscale, 2},
		{"gray 16", 2, 2, 16, Grayscale, 4},
		{"rgb 8", 3, 2, 8, RGB, 9},
		{"indexed 4", 5, 1, 4, Indexed, 3},
		{"gray alpha 8", 2, 2, 8, GrayscaleAlpha, 4},
		{"rgba 16", 1, 1, 16, RGBAlpha, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := grayRows(tt.rowBytes, int(tt.height))
			b := pngtest.New().Header(tt.width, tt.height, tt.depth, uint8(tt.colorType))
			if tt.colorType == Indexed {
				b.Chunk("PLTE", []byte{0, 0, 0, 255, 255, 255})
			}
			blob := b.Data(raw, 1).End().Bytes()

			d, err := Decode(blob)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if d.Width != tt.width || d.Height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", d.Width, d.Height, tt.width, tt.height)
			}
			if d.BitDepth != tt.depth {
				t.Errorf("BitDepth = %d, want %d", d.BitDepth, tt.depth)
			}
			if d.ColorType != tt.colorType {
				t.Errorf("ColorType = %v, want %v", d.ColorType, tt.colorType)
			}
			if d.CompressionMethod != 0 || d.FilterMethod != 0 || d.InterlaceMethod != 0 {
				t.Errorf("methods = %d/%d/%d, want 0/0/0", d.CompressionMethod, d.FilterMethod, d.InterlaceMethod)
			}
			if !bytes.Equal(d.Pixels, raw) {
				t.Errorf("Pixels = %v, want %v", d.Pixels, raw)
			}
			if _, ok := d.Transparency.(NoTransparency); !ok {
				t.Errorf("Transparency = %#v, want NoTransparency", d.Transparency)
			}
			if d.AlphaChannel != nil {
				t.Error("AlphaChannel should be nil before Split")
			}
		})
	}
}

func TestDecodeHeaderPassThroughMethods(t *testing.T) {
	header := pngtest.Header(1, 1, 8, 0)
	header[10], header[11], header[12] = 0, 0, 1

	blob := pngtest.New().
		Chunk("IHDR", header).
		Data(pngtest.Rows(0, []byte{7}), 1).
		End().
		Bytes()

	d, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.InterlaceMethod != 1 {
		t.Errorf("InterlaceMethod = %d, want 1", d.InterlaceMethod)
	}
}

func TestDecodeConcatenatedIDAT(t *testing.T) {
	raw := grayRows(16, 16)

	var results [][]byte
	for _, parts := range []int{1, 2, 5} {
		blob := pngtest.New().Header(16, 16, 8, 0).Data(raw, parts).End().Bytes()
		d, err := Decode(blob)
		if err != nil {
			t.Fatalf("%d parts: Decode failed: %v", parts, err)
		}
		results = append(results, d.Pixels)
	}

	for i := 1; i < len(results); i++ {
		if !bytes.Equal(results[0], results[i]) {
			t.Errorf("result %d differs from single-chunk result", i)
		}
	}
	if !bytes.Equal(results[0], raw) {
		t.Error("inflated pixels differ from the encoded scanlines")
	}
}

func TestDecodeUnknownChunkSkip(t *testing.T) {
	raw := grayRows(3, 2)

	plain := pngtest.New().Header(3, 2, 8, 0).Data(raw, 1).End().Bytes()
	spurious := pngtest.New().
		Header(3, 2, 8, 0).
		Chunk("zzZz", []byte("0123456789")).
		Data(raw, 1).
		Chunk("tEXt", []byte("Comment\x00hello")).
		End().
		Bytes()

	want, err := Decode(plain)
	if err != nil {
		t.Fatalf("Decode(plain) failed: %v", err)
	}
	got, err := Decode(spurious)
	if err != nil {
		t.Fatalf("Decode(spurious) failed: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown chunks changed the result\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestDecodeTransparency(t *testing.T) {
	tests := []struct {
		name      string
		colorType ColorType
		rowBytes  int
		trns      []byte
		want      Transparency
	}{
		{"gray key", Grayscale, 2, []byte{0, 200}, GrayKey{Value: 200}},
		{"gray 16-bit key", Grayscale, 2, []byte{0x12, 0x34}, GrayKey{Value: 0x1234}},
		{"rgb key", RGB, 6, []byte{0, 10, 0, 20, 0, 30}, RGBKey{R: 10, G: 20, B: 30}},
		{"ignored on gray alpha", GrayscaleAlpha, 4, []byte{0, 1}, NoTransparency{}},
		{"ignored on rgba", RGBAlpha, 8, []byte{0, 1, 0, 2, 0, 3}, NoTransparency{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := pngtest.New().
				Header(2, 1, 8, uint8(tt.colorType)).
				Chunk("tRNS", tt.trns).
				Data(grayRows(tt.rowBytes, 1), 1).
				End().
				Bytes()

			d, err := Decode(blob)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !reflect.DeepEqual(d.Transparency, tt.want) {
				t.Errorf("Transparency = %#v, want %#v", d.Transparency, tt.want)
			}
		})
	}
}

func TestDecodeTransparencyBeforeHeader(t *testing.T) {
	blob := pngtest.New().
		Chunk("tRNS", []byte{0, 5}).
		Header(1, 1, 8, 0).
		Data(pngtest.Rows(0, []byte{5}), 1).
		End().
		Bytes()

	d, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := d.Transparency.(NoTransparency); !ok {
		t.Errorf("Transparency = %#v, want NoTransparency", d.Transparency)
	}
}

func TestDecodeIndexedTransparencyFallback(t *testing.T) {
	blob := pngtest.New().
		Header(2, 1, 8, uint8(Indexed)).
		Chunk("PLTE", []byte{255, 0, 0, 0, 255, 0}).
		Chunk("tRNS", []byte{0, 255}).
		Data(pngtest.Rows(0, []byte{0, 1}), 1).
		End().
		Bytes()

	d, err := Decode(blob)
	if d != nil {
		t.Error("expected no descriptor on fallback")
	}

	var fr *FallbackRequired
	if !errors.As(err, &fr) {
		t.Fatalf("err = %v, want *FallbackRequired", err)
	}
	if fr.Reason != Unsupported {
		t.Errorf("Reason = %v, want unsupported", fr.Reason)
	}
	if !errors.Is(err, ErrUnsupportedTransparency) {
		t.Errorf("err = %v, want ErrUnsupportedTransparency", err)
	}
}

func TestDecodePalette(t *testing.T) {
	palette := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}
	blob := pngtest.New().
		Header(3, 1, 8, uint8(Indexed)).
		Chunk("PLTE", palette).
		Data(pngtest.Rows(0, []byte{0, 1, 2}), 1).
		End().
		Bytes()

	d, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(d.Palette, palette) {
		t.Errorf("Palette = %v, want %v", d.Palette, palette)
	}
	if d.Colors() != 1 {
		t.Errorf("Colors() = %d, want 1", d.Colors())
	}
}

func TestDecodeStopsAtIEND(t *testing.T) {
	raw := pngtest.Rows(0, []byte{1, 2})
	blob := pngtest.New().
		Header(2, 1, 8, 0).
		Data(raw, 1).
		Raw([]byte{0, 0, 0, 0, 'I', 'E', 'N', 'D'}). // no CRC
		Raw([]byte("trailing garbage that is never parsed")).
		Bytes()

	d, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(d.Pixels, raw) {
		t.Errorf("Pixels = %v, want %v", d.Pixels, raw)
	}
}

func TestDecodeIgnoresSignatureAndCRC(t *testing.T) {
	blob := pngtest.New().Header(1, 1, 8, 0).Data(pngtest.Rows(0, []byte{9}), 1).End().Bytes()
	copy(blob, "NOTAPNG!")
	// Corrupt the IHDR CRC.
	blob[8+8+13] ^= 0xFF

	if _, err := Decode(blob); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func TestDecodeFirstHeaderWins(t *testing.T) {
	blob := pngtest.New().
		Header(2, 1, 8, 0).
		Header(9, 9, 16, 2).
		Data(pngtest.Rows(0, []byte{1, 2}), 1).
		End().
		Bytes()

	d, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Width != 2 || d.Height != 1 || d.BitDepth != 8 || d.ColorType != Grayscale {
		t.Errorf("header = %dx%d depth %d type %v, want the first IHDR", d.Width, d.Height, d.BitDepth, d.ColorType)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := pngtest.New().Header(1, 1, 8, 0).Data(pngtest.Rows(0, []byte{1}), 1).End().Bytes()
	withoutEnd := pngtest.New().Header(1, 1, 8, 0).Data(pngtest.Rows(0, []byte{1}), 1).Bytes()

	tests := []struct {
		name   string
		data   []byte
		want   error
		reason Reason
	}{
		{"empty", nil, ErrTruncated, Malformed},
		{"short signature", pngtest.Signature[:5], ErrTruncated, Malformed},
		{"signature only", pngtest.Signature, ErrTruncated, Malformed},
		{"partial length", valid[:10], ErrTruncated, Malformed},
		{"partial tag", valid[:14], ErrTruncated, Malformed},
		{"partial payload", valid[:20], ErrTruncated, Malformed},
		{"missing CRC", valid[:8+8+13+2], ErrTruncated, Malformed},
		{"missing IEND", withoutEnd, ErrTruncated, Malformed},
		{
			"huge length",
			pngtest.New().Raw([]byte{0xFF, 0xFF, 0xFF, 0xFF, 'I', 'D', 'A', 'T'}).Bytes(),
			ErrTruncated, Malformed,
		},
		{
			"short IHDR",
			pngtest.New().Chunk("IHDR", []byte{0, 0, 0, 1}).End().Bytes(),
			ErrTruncated, Malformed,
		},
		{
			"short gray tRNS",
			pngtest.New().Header(1, 1, 8, 0).Chunk("tRNS", []byte{1}).End().Bytes(),
			ErrTruncated, Malformed,
		},
		{
			"short rgb tRNS",
			pngtest.New().Header(1, 1, 8, 2).Chunk("tRNS", []byte{0, 1, 0, 2}).End().Bytes(),
			ErrTruncated, Malformed,
		},
		{
			"no IHDR",
			pngtest.New().Data(pngtest.Rows(0, []byte{1}), 1).End().Bytes(),
			ErrMissingHeader, Malformed,
		},
		{
			"bad zlib",
			pngtest.New().Header(1, 1, 8, 0).Chunk("IDAT", []byte{0xFF, 0xFF, 0xFF}).End().Bytes(),
			ErrInflate, Malformed,
		},
		{
			"no IDAT",
			pngtest.New().Header(1, 1, 8, 0).End().Bytes(),
			ErrInflate, Malformed,
		},
		{
			"color type 5",
			pngtest.New().Header(1, 1, 8, 5).Data(pngtest.Rows(0, []byte{1}), 1).End().Bytes(),
			ErrUnsupportedColorType, Unsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(tt.data)
			if err == nil {
				t.Fatalf("expected error, got descriptor %+v", d)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			var fr *FallbackRequired
			if !errors.As(err, &fr) {
				t.Fatalf("err = %T, want *FallbackRequired", err)
			}
			if fr.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", fr.Reason, tt.reason)
			}
		})
	}
}

// TestDecodeStandardEncoder checks the decoder against output of image/png.
func TestDecodeStandardEncoder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 60), B: 128, A: uint8(255 - x*y*10)})
		}
	}

	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	d, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if d.Width != 5 || d.Height != 4 || d.BitDepth != 8 || d.ColorType != RGBAlpha {
		t.Fatalf("header = %dx%d depth %d type %v", d.Width, d.Height, d.BitDepth, d.ColorType)
	}
	if len(d.Pixels) != 4*(5*4+1) {
		t.Errorf("len(Pixels) = %d, want %d", len(d.Pixels), 4*(5*4+1))
	}
}
