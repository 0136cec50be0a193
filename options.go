package pdfpng

import (
	"github.com/tsawler/pdfpng/fallback"
	"github.com/tsawler/pdfpng/internal/filters"
)

// renderOptions holds configuration for rendering.
type renderOptions struct {
	// Decoder for inputs the native path rejects
	decoder fallback.Decoder

	// zlib level for every emitted stream
	level int

	// When false, fallback triggers are returned as errors
	fallback bool
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		decoder:  fallback.NewImageDecoder(),
		level:    filters.DefaultCompression,
		fallback: true,
	}
}

// clone creates a copy of renderOptions. The decoder is shared; decoders
// are expected to be safe for concurrent use.
func (o renderOptions) clone() renderOptions {
	return renderOptions{
		decoder:  o.decoder,
		level:    o.level,
		fallback: o.fallback,
	}
}
