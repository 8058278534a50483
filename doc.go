// Package matlib manages libraries of nuclear materials.
//
// A Library holds materials keyed by name. Each stored material also owns a
// unique, non-negative material number; names and numbers that are missing
// or taken are assigned on insertion. The library tracks the set of nuclides
// its compositions use.
//
// # Basic Usage
//
//	lib, _ := matlib.New()
//
//	water := material.FromComp(map[nucid.ID]float64{nucid.H1: 0.11, nucid.O16: 0.89})
//	_ = lib.AddNamedMaterial("water", water)
//
//	mat, _ := lib.GetMaterial("water")
//	fmt.Println(mat.Number) // 0
//
// # Files
//
// Libraries are stored either as a binary container or as a JSON document.
//
// A container holds a protocol-1 material table at a datapath (by default
// "/materials") and, at "<datapath>/nucid", the nucpath: the ascending list
// of nuclides the table rows index into.
//
//	_ = lib.WriteContainer("lib.mtl", matlib.DefaultDatapath,
//	    matlib.WithCompression(format.CompressionZstd))
//	lib2, _ := matlib.FromContainer("lib.mtl", matlib.DefaultDatapath)
//
// A JSON document is an array of material objects (see material.Material's
// MarshalJSON). Comments and trailing commas are accepted on read.
//
//	_ = lib.WriteJSON("lib.json")
//	lib3, _ := matlib.FromJSON("lib.json")
//
// Open picks the format by looking at the file's first bytes.
//
// # Package Structure
//
//   - material: the Material record and its JSON form
//   - nucid: nuclide identifiers
//   - table: protocol-1 table encoder and decoder
//   - container: container files holding tables and nucpaths
//   - jsondoc: JSON documents
//   - section: fixed-size binary structures
//   - compress: data section codecs
package matlib
