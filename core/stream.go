package core

import (
	"fmt"

	"github.com/tsawler/pdfpng/internal/filters"
)

// Filter names a stream filter together with its decode parameters.
// A nil Params means the filter takes no /DecodeParms entry.
type Filter struct {
	Name   Name
	Params Dict
}

// FlateDecode is the zlib filter name.
const FlateDecode Name = "FlateDecode"

// NewStream encodes data with the given filters and returns a stream whose
// dictionary carries matching /Filter and /DecodeParms entries. The dict is
// copied; level is the zlib compression level.
func NewStream(dict Dict, data []byte, level int, fs ...Filter) (*Stream, error) {
	out := dict.Clone()
	if out == nil {
		out = make(Dict)
	}

	// Filters are listed in decode order, so encoding runs them in reverse.
	encoded := data
	for i := len(fs) - 1; i >= 0; i-- {
		var err error
		encoded, err = encodeWithFilter(encoded, fs[i], level)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, fs[i].Name, err)
		}
	}

	switch len(fs) {
	case 0:
	case 1:
		out["Filter"] = fs[0].Name
		if fs[0].Params != nil {
			out["DecodeParms"] = fs[0].Params
		}
	default:
		names := make(Array, len(fs))
		parms := make(Array, len(fs))
		hasParms := false
		for i, f := range fs {
			names[i] = f.Name
			if f.Params != nil {
				parms[i] = f.Params
				hasParms = true
			} else {
				parms[i] = Null{}
			}
		}
		out["Filter"] = names
		if hasParms {
			out["DecodeParms"] = parms
		}
	}
	out["Length"] = Int(len(encoded))

	return &Stream{Dict: out, Data: encoded}, nil
}

// encodeWithFilter applies a single compression filter to data.
func encodeWithFilter(data []byte, f Filter, level int) ([]byte, error) {
	switch f.Name {
	case FlateDecode, "Fl":
		return filters.FlateEncode(data, dictToParams(f.Params), level)
	default:
		return nil, fmt.Errorf("unsupported encode filter: %s", f.Name)
	}
}

// Decode decodes the stream data according to the Filter(s) specified in the
// stream dictionary. Only FlateDecode is understood; it is the sole filter
// this module writes. Returns the decoded data or an error.
func (s *Stream) Decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")

	if filterName, ok := filterObj.(Name); ok {
		return decodeWithFilter(s.Data, string(filterName), paramsObjToDict(paramsObj))
	}

	if filterArray, ok := filterObj.(Array); ok {
		data := s.Data

		for i, filter := range filterArray {
			filterName, ok := filter.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, filter)
			}

			var params Dict
			if paramsArray, ok := paramsObj.(Array); ok {
				if i < len(paramsArray) {
					params = paramsObjToDict(paramsArray[i])
				}
			} else {
				params = paramsObjToDict(paramsObj)
			}

			var err error
			data, err = decodeWithFilter(data, string(filterName), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s) failed: %w", i, filterName, err)
			}
		}

		return data, nil
	}

	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

// decodeWithFilter applies a single decompression filter to data.
func decodeWithFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, dictToParams(params))
	default:
		return nil, fmt.Errorf("unsupported filter: %s", filterName)
	}
}

// paramsObjToDict converts a DecodeParms object to a Dict.
// Returns nil if the object is nil, Null, or not a Dict.
func paramsObjToDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// dictToParams converts a Dict to filters.Params, translating PDF object
// types to Go primitive types (Int->int, Real->float64, Bool->bool, etc.).
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params)
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
