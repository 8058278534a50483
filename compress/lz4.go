package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// worth reusing.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block format.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Uses a pooled lz4.Compressor.
//
// Parameters:
//   - data: Data section to compress
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block data.
//
// The block format does not carry the decompressed size, so the buffer size
// is found adaptively:
//  1. Start with a buffer 4x the compressed size
//  2. On ErrInvalidSourceShortBuffer, double the buffer size
//  3. Give up once the buffer would exceed 128MiB
//
// Parameters:
//   - data: Compressed data section
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: ErrInvalidSourceShortBuffer past the 128MiB limit, or other decompression errors
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
