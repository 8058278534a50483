package compress

import (
	"fmt"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
)

// Compressor compresses the data section of a protocol-1 material table.
//
// The data section holds every row's name, composition pairs and metadata,
// and is compressed as a single unit after all rows are encoded.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	// Corrupt input or input from another algorithm is an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Name of the section being configured (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// The codecs are shared and stateless, so the table decoder looks one up per
// table instead of creating it.
//
// Parameters:
//   - compressionType: Compression type read from a table header
//
// Returns:
//   - Codec: Shared codec instance
//   - error: ErrInvalidCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
