// Package compress provides the codecs used for the data section of protocol-1
// material tables.
//
// A material table stores its fixed-width row entries uncompressed, so the row
// count and per-row offsets stay readable without decompression, and compresses
// the variable-length data section (names, composition pairs, metadata) as one
// unit with the codec named in the table header:
//
//   - None (format.CompressionNone), the default
//   - Zstd (format.CompressionZstd)
//   - S2 (format.CompressionS2)
//   - LZ4 (format.CompressionLZ4)
//
// Codecs are obtained by type:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "data")
//	packed, err := codec.Compress(section)
//	section, err = codec.Decompress(packed)
//
// All built-in codecs are stateless values and safe for concurrent use.
package compress
