package compress

// ZstdCompressor provides Zstandard compression of table data sections.
//
// Zstd gives the best ratio of the built-in codecs and is the default for
// material tables. Output is deterministic for a given input, so two writers of
// the same library produce identical tables.
//
// The pure-Go implementation (klauspost/compress) is used by default; building
// with the gozstd tag switches to the cgo binding (valyala/gozstd).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(section)
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
