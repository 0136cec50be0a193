// Package core provides the PDF object types used to describe image XObjects.
//
// The package implements the PDF objects an image needs (null, boolean,
// integer, real, name, array, dictionary), streams with their filters, and
// indirect references. It does not read or write PDF files; a document
// assembler consumes these values.
//
// # Object Types
//
//   - [Null], [Bool], [Int], [Real], [Name] - scalar objects
//   - [Array] and [Dict] - containers
//   - [Stream] - a dictionary plus encoded bytes
//   - [IndirectRef] - a reference to an object held in a [Table]
//
// # Streams
//
// [NewStream] applies filters to raw data and records them in the stream
// dictionary; [Stream.Decode] reverses them:
//
//	s, err := core.NewStream(dict, scanlines, filters.DefaultCompression, core.Filter{
//	    Name:   core.FlateDecode,
//	    Params: core.Dict{"Predictor": core.Int(15), "Columns": core.Int(w)},
//	})
//	samples, err := s.Decode()
//
// # Object Tables
//
// [Table] numbers indirect objects as they are added and resolves references
// back to them. [Version] orders PDF versions for feature requirements.
package core
