package compress

import "github.com/klauspost/compress/s2"

// S2Compressor trades some ratio for speed compared to Zstd.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
//
// Returns:
//   - S2Compressor: New S2 compressor instance
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
//
// Parameters:
//   - data: Data section to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Always nil
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
