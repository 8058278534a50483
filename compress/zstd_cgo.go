//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
