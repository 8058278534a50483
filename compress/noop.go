package compress

// NoOpCompressor stores the data section uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
//
// Returns:
//   - NoOpCompressor: New no-op compressor instance
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
//
// Note: The returned slice shares the same underlying memory as the input.
//
// Parameters:
//   - data: Data section (returned as-is)
//
// Returns:
//   - []byte: Same slice as input data
//   - error: Always nil
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
//
// Note: The returned slice shares the same underlying memory as the input,
// which for a decoded table is the table buffer itself.
//
// Parameters:
//   - data: Stored data section (returned as-is)
//
// Returns:
//   - []byte: Same slice as input data
//   - error: Always nil
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
