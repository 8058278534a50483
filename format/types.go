package format

type (
	CompressionType uint8
	DatasetKind     uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	KindMaterialTable DatasetKind = 0x1 // KindMaterialTable is a protocol-1 material table.
	KindNucpath       DatasetKind = 0x2 // KindNucpath is a nuclide path side table.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType. The second result is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "None", "NONE", "":
		return CompressionNone, true
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// IsValid reports whether k is a known dataset kind.
func (k DatasetKind) IsValid() bool {
	return k == KindMaterialTable || k == KindNucpath
}

func (k DatasetKind) String() string {
	switch k {
	case KindMaterialTable:
		return "MaterialTable"
	case KindNucpath:
		return "Nucpath"
	default:
		return "Unknown"
	}
}
