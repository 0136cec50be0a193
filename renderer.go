package pdfpng

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/pdfpng/core"
	"github.com/tsawler/pdfpng/fallback"
	"github.com/tsawler/pdfpng/format"
	"github.com/tsawler/pdfpng/internal/filters"
	"github.com/tsawler/pdfpng/png"
	"github.com/tsawler/pdfpng/xobject"
)

// Path tells which decoder produced an image.
type Path int

const (
	// Native means the PNG was decoded by the png package.
	Native Path = iota
	// Fallback means the input was handed to the fallback decoder.
	Fallback
)

// String returns the path name.
func (p Path) String() string {
	switch p {
	case Native:
		return "native"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is a rendered image that has not been registered yet.
type Result struct {
	Image      *xobject.Image
	Path       Path
	MinVersion core.Version

	// Descriptor is the decoded PNG; nil on the fallback path.
	Descriptor *png.Descriptor

	// Format is the input format identified from its leading bytes.
	Format format.Format
}

// Renderer provides a fluent interface for turning an image into a PDF
// image XObject. Each configuration method returns a new Renderer instance,
// making it safe for concurrent use and allowing method chaining.
type Renderer struct {
	// Source
	filename string
	blob     []byte
	loaded   bool

	// Configuration
	options renderOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Renderer with a copy of options.
func (r *Renderer) clone() *Renderer {
	return &Renderer{
		filename: r.filename,
		blob:     r.blob,
		loaded:   r.loaded,
		options:  r.options.clone(),
		err:      r.err,
	}
}

// ============================================================================
// Configuration Methods (return new Renderer instance)
// ============================================================================

// Decoder replaces the fallback decoder.
//
// Example:
//
//	res, _, err := pdfpng.FromBytes(blob).Decoder(myDecoder).Render()
func (r *Renderer) Decoder(d fallback.Decoder) *Renderer {
	newR := r.clone()
	if d == nil {
		newR.err = errors.New("fallback decoder must not be nil")
		return newR
	}
	newR.options.decoder = d
	return newR
}

// CompressionLevel sets the zlib level of every emitted stream, from
// -2 (Huffman only) to 9 (best compression).
//
// Example:
//
//	res, _, err := pdfpng.Open("logo.png").CompressionLevel(9).Render()
func (r *Renderer) CompressionLevel(level int) *Renderer {
	newR := r.clone()
	if err := filters.CheckLevel(level); err != nil {
		newR.err = err
		return newR
	}
	newR.options.level = level
	return newR
}

// NoFallback disables the fallback decoder. Inputs the native path rejects
// make Render return the *png.FallbackRequired error instead.
//
// Example:
//
//	_, _, err := pdfpng.FromBytes(blob).NoFallback().Render()
//	var fr *png.FallbackRequired
//	if errors.As(err, &fr) {
//	    log.Println("not natively supported:", fr.Reason)
//	}
func (r *Renderer) NoFallback() *Renderer {
	newR := r.clone()
	newR.options.fallback = false
	return newR
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Render decodes the image and builds its XObject. Warnings report a switch
// to the fallback decoder and other non-fatal issues.
//
// Example:
//
//	res, warnings, err := pdfpng.Open("logo.png").Render()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfpng.FormatWarnings(warnings))
//	}
func (r *Renderer) Render() (*Result, []Warning, error) {
	if r.err != nil {
		return nil, nil, r.err
	}

	blob, warnings, err := r.source()
	if err != nil {
		return nil, nil, err
	}

	res, warnings, err := r.render(blob, warnings)
	if err != nil {
		return nil, warnings, err
	}
	res.Image.SetCompressionLevel(r.options.level)
	return res, warnings, nil
}

// Embed renders the image and registers it, with its palette and soft mask,
// through w.
//
// Example:
//
//	table := core.NewTable()
//	ref, res, _, err := pdfpng.Open("logo.png").Embed(table)
func (r *Renderer) Embed(w xobject.Allocator) (core.IndirectRef, *Result, []Warning, error) {
	if w == nil {
		return core.IndirectRef{}, nil, nil, errors.New("allocator must not be nil")
	}

	res, warnings, err := r.Render()
	if err != nil {
		return core.IndirectRef{}, nil, warnings, err
	}

	ref, err := res.Image.Put(w)
	if err != nil {
		return core.IndirectRef{}, nil, warnings, fmt.Errorf("failed to embed image: %w", err)
	}
	return ref, res, warnings, nil
}

// source returns the input bytes, reading the file for Open.
func (r *Renderer) source() ([]byte, []Warning, error) {
	if r.loaded {
		return r.blob, nil, nil
	}
	if r.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	blob, err := os.ReadFile(r.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}

	var warnings []Warning
	byName, byMagic := format.Detect(r.filename), format.DetectFromMagic(blob)
	if byName != format.Unknown && byMagic != format.Unknown && byName != byMagic {
		warnings = append(warnings, Warning{
			Stage:   StageSource,
			Message: fmt.Sprintf("%s has a %s extension but %s content", filepath.Base(r.filename), byName, byMagic),
		})
	}
	return blob, warnings, nil
}

// render tries the native path and falls back once on any
// *png.FallbackRequired from decoding or building.
func (r *Renderer) render(blob []byte, warnings []Warning) (*Result, []Warning, error) {
	sniffed := format.DetectFromMagic(blob)

	stage := StageDecode
	d, err := png.Decode(blob)
	if err == nil {
		stage = StageBuild
		var img *xobject.Image
		img, err = xobject.Build(d)
		if err == nil {
			return &Result{
				Image:      img,
				Path:       Native,
				MinVersion: img.MinVersion(),
				Descriptor: d,
				Format:     sniffed,
			}, warnings, nil
		}
	}

	var fr *png.FallbackRequired
	if !errors.As(err, &fr) || !r.options.fallback {
		return nil, warnings, err
	}

	warnings = append(warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf("%s input (%s), using fallback decoder", fr.Reason, sniffed),
		Err:     err,
	})

	src, err := r.options.decoder.Decode(blob)
	if err != nil {
		return nil, warnings, fmt.Errorf("fallback decoder: %w", err)
	}

	img := xobject.BuildFallback(src)
	return &Result{
		Image:      img,
		Path:       Fallback,
		MinVersion: img.MinVersion(),
		Format:     sniffed,
	}, warnings, nil
}
