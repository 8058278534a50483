// Package container reads and writes matlib container files: a signature and
// superblock, a set of named binary datasets, and a directory describing them.
//
// Datasets are addressed by slash-separated paths such as "/materials" and
// "/materials/nucid". Each directory entry records the dataset kind, its row
// count and an xxHash64 checksum of the payload, so the row count of a
// table can be probed without reading it.
//
// Readers hold one open file handle until Close. Writers never modify a file
// in place: Update reads the existing datasets, applies changes in memory and
// atomically replaces the file.
package container
