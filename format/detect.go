// Package format identifies raster image formats by file extension and by
// magic bytes.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// JPEG indicates a JPEG/JFIF image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image in either byte order.
	TIFF
	// WebP indicates a RIFF WebP image.
	WebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case WebP:
		return ".webp"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg", ".jpe":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp", ".dib":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	default:
		return Unknown
	}
}

var (
	pngMagic       = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic      = []byte{0xFF, 0xD8, 0xFF}
	tiffMagicLE    = []byte{'I', 'I', 0x2A, 0x00}
	tiffMagicBE    = []byte{'M', 'M', 0x00, 0x2A}
	riffMagic      = []byte("RIFF")
	webpMagic      = []byte("WEBP")
	gifMagic87     = []byte("GIF87a")
	gifMagic89     = []byte("GIF89a")
	bmpMagic       = []byte("BM")
	magicReadBytes = 12
)

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, gifMagic87), bytes.HasPrefix(data, gifMagic89):
		return GIF
	case bytes.HasPrefix(data, tiffMagicLE), bytes.HasPrefix(data, tiffMagicBE):
		return TIFF
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpMagic):
		return WebP
	case bytes.HasPrefix(data, bmpMagic):
		return BMP
	default:
		return Unknown
	}
}

// DetectFromReader reads the leading bytes of r and inspects them.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, magicReadBytes)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
