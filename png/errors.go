package png

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when a chunk length, tag, payload or CRC runs past the end of the input.
	ErrTruncated = errors.New("png: truncated stream")

	// ErrMissingHeader is returned when IEND is reached without an IHDR chunk.
	ErrMissingHeader = errors.New("png: missing IHDR chunk")

	// ErrUnsupportedColorType is returned for color types outside 0, 2, 3, 4 and 6.
	ErrUnsupportedColorType = errors.New("png: unsupported color type")

	// ErrUnsupportedTransparency is returned for palette-based (tRNS on indexed) transparency.
	ErrUnsupportedTransparency = errors.New("png: palette transparency not supported")

	// ErrInterlaced is returned for Adam7-interlaced images, whose passes are not plain scanlines.
	ErrInterlaced = errors.New("png: interlaced images not supported")

	// ErrInflate is returned when the concatenated IDAT payload cannot be inflated.
	ErrInflate = errors.New("png: inflate failed")

	// ErrGeometryMismatch is returned when pixel data does not divide into whole scanlines.
	ErrGeometryMismatch = errors.New("png: pixel data does not match image geometry")
)

// Reason classifies why native decoding was abandoned.
type Reason int

const (
	// Malformed means the input is not a well-formed PNG this decoder can walk.
	Malformed Reason = iota
	// Unsupported means the input is well-formed but uses a feature handled only by the fallback decoder.
	Unsupported
)

// String returns the reason as a lowercase word.
func (r Reason) String() string {
	switch r {
	case Unsupported:
		return "unsupported"
	default:
		return "malformed"
	}
}

// FallbackRequired reports that an image must be handed to the fallback
// decoder. It is the only error type returned by Decode and Split.
type FallbackRequired struct {
	Reason Reason
	Err    error
}

func (e *FallbackRequired) Error() string {
	return fmt.Sprintf("png: fallback required (%s): %v", e.Reason, e.Err)
}

func (e *FallbackRequired) Unwrap() error {
	return e.Err
}

// fallback wraps err, classifying it by the sentinel it carries.
func fallback(err error) *FallbackRequired {
	reason := Malformed
	if errors.Is(err, ErrUnsupportedTransparency) || errors.Is(err, ErrUnsupportedColorType) || errors.Is(err, ErrInterlaced) {
		reason = Unsupported
	}
	return &FallbackRequired{Reason: reason, Err: err}
}
