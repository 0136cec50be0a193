// Package filters implements the Flate codec used for PNG pixel data and for
// the image streams emitted into PDF documents.
//
// Inflate and Deflate are plain zlib transforms:
//
//	pixels, err := filters.Inflate(idat)
//	stream, err := filters.Deflate(pixels, filters.DefaultCompression)
//
// FlateEncode and FlateDecode add PDF decode parameters. The PNG predictors
// (Predictor 10-15) are supported for 1, 2, 4, 8 and 16 bits per component:
//
//	params := filters.Params{
//	    "Predictor":        15,
//	    "Columns":          100,
//	    "Colors":           3,
//	    "BitsPerComponent": 8,
//	}
//	encoded, err := filters.FlateEncode(scanlines, params, filters.DefaultCompression)
//	samples, err := filters.FlateDecode(encoded, params)
//
// FlateEncode expects scanlines that already carry their PNG filter byte,
// which is how PNG stores them; FlateDecode removes that framing.
package filters
