// Package fallback defines the general-purpose decoder used when an image
// cannot be taken apart natively, and provides one built on Go's image
// registry.
//
// The contract is deliberately small: a decoder sniffs and decodes a blob,
// and the decoded image reports its geometry, bit depth and PDF color space
// and unpacks its samples:
//
//	dec := fallback.NewImageDecoder()
//	if dec.CanDecode(blob) {
//	    img, err := dec.Decode(blob)
//	    ...
//	    pixels := img.Unpack()     // color samples, row-major, no filter bytes
//	    alpha := img.AlphaUnpack() // one sample per pixel
//	}
//
// ImageDecoder understands PNG, JPEG and GIF through the standard library
// and BMP, TIFF and WebP through golang.org/x/image.
package fallback
