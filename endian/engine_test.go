package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForFlag(t *testing.T) {
	require.Equal(t, binary.BigEndian, ForFlag(true))
	require.Equal(t, binary.LittleEndian, ForFlag(false))
	require.Equal(t, GetLittleEndianEngine(), ForFlag(false))
	require.Equal(t, GetBigEndianEngine(), ForFlag(true))
}

func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{0, -1, 0.11, 0.89, 1e-300, math.MaxFloat64, math.Inf(1), math.SmallestNonzeroFloat64}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		for _, v := range values {
			b := make([]byte, 8)
			PutFloat64(engine, b, v)
			require.Equal(t, math.Float64bits(v), math.Float64bits(Float64(engine, b)))

			appended := AppendFloat64(engine, nil, v)
			require.Equal(t, b, appended)
		}
	}
}

func TestFloat64_ByteOrder(t *testing.T) {
	b := AppendFloat64(GetBigEndianEngine(), nil, 1.0)
	// 1.0 = 0x3FF0000000000000
	require.Equal(t, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, b)

	b = AppendFloat64(GetLittleEndianEngine(), nil, 1.0)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, b)
}

func TestFloat64_NaNBitsPreserved(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	b := AppendFloat64(GetLittleEndianEngine(), nil, nan)
	require.Equal(t, uint64(0x7ff8000000000001), math.Float64bits(Float64(GetLittleEndianEngine(), b)))
}
