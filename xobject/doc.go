// Package xobject turns decoded images into PDF image XObjects.
//
// Build handles images decoded by the png package. The scanlines keep their
// PNG filter bytes and are compressed with a FlateDecode filter whose
// /DecodeParms name PNG predictor 15, so a PDF consumer undoes the
// filtering itself. Images with an alpha channel get a separate soft mask
// built the same way from the alpha plane. Grayscale and RGB color keys
// from tRNS become a /Mask array.
//
// BuildFallback handles images decoded by a fallback.Decoder. Their samples
// are already unfiltered, so they use a plain FlateDecode filter, and a soft
// mask is attached only when the alpha samples are not all the same.
//
// Neither builder touches a document. Put registers an Image, its palette
// and its soft mask with anything that hands out indirect references:
//
//	img, err := xobject.Build(desc)
//	if err != nil {
//	    // hand the original bytes to a fallback decoder
//	}
//	ref, err := img.Put(table)
package xobject
