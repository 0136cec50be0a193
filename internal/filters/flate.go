package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Params represents decode parameters from PDF stream dictionaries.
// Common parameters include Predictor, Columns, Colors, and BitsPerComponent.
type Params map[string]interface{}

// DefaultCompression is the zlib level used when callers have no preference.
const DefaultCompression = zlib.DefaultCompression

// Inflate decompresses a complete zlib stream. It is used for the
// concatenated IDAT payload of a PNG as well as for FlateDecode streams.
func Inflate(data []byte) ([]byte, error) {
	return zlibDecompress(data)
}

// Deflate compresses data into a zlib stream at the given level. Levels
// outside the zlib range are rejected.
func Deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush compressor: %w", err)
	}
	return buf.Bytes(), nil
}

// FlateDecode decompresses Flate (zlib/deflate) compressed data.
// It optionally reverses a PNG predictor for image data.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	decompressed, err := zlibDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	if params != nil {
		if predictorObj, ok := params["Predictor"]; ok && predictorObj != nil {
			predictor := getIntParam(params, "Predictor", 1)
			if predictor != 1 {
				decompressed, err = applyPredictor(decompressed, predictor, params)
				if err != nil {
					return nil, fmt.Errorf("predictor failed: %w", err)
				}
			}
		}
	}

	return decompressed, nil
}

// FlateEncode compresses data for a FlateDecode stream. When params name a
// PNG predictor the data must already carry one predictor byte per row
// (as PNG scanlines do); the rows are checked against the declared geometry
// and passed through, so decoding with the same params reverses them.
func FlateEncode(data []byte, params Params, level int) ([]byte, error) {
	predictor := getIntParam(params, "Predictor", 1)
	switch {
	case predictor == 1:
	case predictor >= 10 && predictor <= 15:
		if err := checkPNGRows(data, params); err != nil {
			return nil, fmt.Errorf("predictor framing: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported predictor: %d", predictor)
	}

	return Deflate(data, level)
}

// zlibDecompress decompresses zlib-compressed data.
func zlibDecompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return buf.Bytes(), nil
}

// applyPredictor reverses a prediction algorithm. Predictor 1 is identity
// and 10-15 are PNG predictors (None, Sub, Up, Average, Paeth, Optimum).
func applyPredictor(data []byte, predictor int, params Params) ([]byte, error) {
	if predictor == 1 {
		return data, nil
	}

	if predictor >= 10 && predictor <= 15 {
		return applyPNGPredictor(data, params)
	}

	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

// rowGeometry returns the filter stride (bytes per complete pixel, at least
// one) and the number of sample bytes in a row, excluding the predictor byte.
func rowGeometry(params Params) (bytesPerPixel, rowBytes int, err error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)

	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return 0, 0, fmt.Errorf("unsupported bits per component: %d", bpc)
	}
	if columns < 1 || colors < 1 {
		return 0, 0, fmt.Errorf("invalid geometry: %d columns, %d colors", columns, colors)
	}

	bytesPerPixel = (colors*bpc + 7) / 8
	rowBytes = (columns*colors*bpc + 7) / 8
	return bytesPerPixel, rowBytes, nil
}

// checkPNGRows verifies that data is a whole number of predictor-framed rows
// and that every row starts with a valid PNG filter type.
func checkPNGRows(data []byte, params Params) error {
	_, rowBytes, err := rowGeometry(params)
	if err != nil {
		return err
	}
	rowSize := rowBytes + 1
	if len(data)%rowSize != 0 {
		return fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}
	for off := 0; off < len(data); off += rowSize {
		if data[off] > 4 {
			return fmt.Errorf("row %d: unknown PNG predictor: %d", off/rowSize, data[off])
		}
	}
	return nil
}

// applyPNGPredictor applies PNG predictor algorithms. Each row starts with
// a predictor byte (0-4) that specifies which algorithm to use for that row.
func applyPNGPredictor(data []byte, params Params) ([]byte, error) {
	bytesPerPixel, rowBytes, err := rowGeometry(params)
	if err != nil {
		return nil, err
	}

	rowSize := rowBytes + 1 // +1 for predictor byte
	if len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	numRows := len(data) / rowSize
	result := make([]byte, numRows*rowBytes) // Output without predictor bytes

	for row := 0; row < numRows; row++ {
		rowStart := row * rowSize
		predictorByte := data[rowStart]
		rowData := data[rowStart+1 : rowStart+rowSize]

		decodedRow, err := decodePNGRow(rowData, predictorByte, bytesPerPixel, row, result, rowBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", row, err)
		}

		copy(result[row*rowBytes:(row+1)*rowBytes], decodedRow)
	}

	return result, nil
}

// decodePNGRow decodes a single PNG-predicted row using the specified predictor.
// Predictor types: 0=None, 1=Sub (left), 2=Up (above), 3=Average, 4=Paeth.
func decodePNGRow(rowData []byte, predictor byte, bytesPerPixel int, rowNum int, prevRows []byte, rowLength int) ([]byte, error) {
	result := make([]byte, len(rowData))

	for i := 0; i < len(rowData); i++ {
		var predicted byte

		switch predictor {
		case 0: // None
			predicted = 0

		case 1: // Sub
			if i >= bytesPerPixel {
				predicted = result[i-bytesPerPixel]
			}

		case 2: // Up
			if rowNum > 0 {
				predicted = prevRows[(rowNum-1)*rowLength+i]
			}

		case 3: // Average
			var left, up byte
			if i >= bytesPerPixel {
				left = result[i-bytesPerPixel]
			}
			if rowNum > 0 {
				up = prevRows[(rowNum-1)*rowLength+i]
			}
			predicted = byte((int(left) + int(up)) / 2)

		case 4: // Paeth
			var left, up, upLeft byte
			if i >= bytesPerPixel {
				left = result[i-bytesPerPixel]
			}
			if rowNum > 0 {
				up = prevRows[(rowNum-1)*rowLength+i]
				if i >= bytesPerPixel {
					upLeft = prevRows[(rowNum-1)*rowLength+i-bytesPerPixel]
				}
			}
			predicted = paethPredictor(left, up, upLeft)

		default:
			return nil, fmt.Errorf("unknown PNG predictor: %d", predictor)
		}

		result[i] = rowData[i] + predicted
	}

	return result, nil
}

// paethPredictor implements the Paeth predictor algorithm from the PNG specification.
// It selects the neighbor (left, above, or upper-left) closest to a linear prediction.
func paethPredictor(a, b, c byte) byte {
	// a = left, b = above, c = upper left
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// getIntParam extracts an integer parameter from Params, returning defaultValue
// if the parameter is missing or cannot be converted to an integer.
func getIntParam(params Params, key string, defaultValue int) int {
	if params == nil {
		return defaultValue
	}

	obj, ok := params[key]
	if !ok {
		return defaultValue
	}

	switch v := obj.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CheckLevel reports an error for compression levels zlib does not accept.
func CheckLevel(level int) error {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return fmt.Errorf("invalid compression level: %d", level)
	}
	return nil
}
