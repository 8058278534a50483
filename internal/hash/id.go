// Package hash provides the xxHash64 digests used by protocol-1 files.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a material name. Row entries carry it so the
// decoder can verify the name stored in the data section.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a payload: container datasets and the
// nucpath binding recorded in table headers.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
