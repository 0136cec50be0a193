// Package reader reads image XObjects back out of an object table.
//
// It is the inverse of the xobject package and exists to check embedded
// images: streams are decoded through their /Filter and /DecodeParms
// (including PNG predictor reversal), indexed color spaces are expanded
// through their palette, and color-key masks and soft masks become alpha.
//
//	table := core.NewTable()
//	ref, _ := img.Put(table)
//	extracted, err := reader.New(table).ExtractImage(ref)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rgba, err := extracted.ToImage()
//
// # Soft Masks
//
// A soft mask is always read as one sample per pixel, whatever color space
// its dictionary names.
package reader
