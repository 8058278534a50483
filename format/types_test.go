package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0x9).String())
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
		ok   bool
	}{
		{"none", CompressionNone, true},
		{"", CompressionNone, true},
		{"zstd", CompressionZstd, true},
		{"S2", CompressionS2, true},
		{"lz4", CompressionLZ4, true},
		{"gzip", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCompression(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDatasetKind_String(t *testing.T) {
	require.Equal(t, "MaterialTable", KindMaterialTable.String())
	require.Equal(t, "Nucpath", KindNucpath.String())
	require.Equal(t, "Unknown", DatasetKind(0).String())
}
