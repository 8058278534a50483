// Package table implements the protocol-1 material table codec and its
// nucpath side table.
//
// A table is written in two phases. NewEncoder receives the complete nuclide
// order up front and encodes the nucpath side table immediately; every row
// added afterwards stores its composition as positions into that order. The
// table header records the nucpath length and hash, so a decoder refuses a
// side table other than the one the rows were encoded against.
//
//	enc, err := table.NewEncoder(lib.Nuclides(), table.WithCompression(format.CompressionZstd))
//	for _, name := range lib.Keylist() {
//	    mat, _ := lib.GetMaterialPtr(name)
//	    if err := enc.AddMaterial(mat); err != nil { ... }
//	}
//	tbl, err := enc.Finish()
//	nucpath := enc.Nucpath()
//
//	dec, err := table.NewDecoder(tbl, nucpath)
//	mats, err := dec.Materials()
package table
