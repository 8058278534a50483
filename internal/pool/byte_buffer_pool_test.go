package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.MustWrite([]byte("water"))
	n, err := bb.Write([]byte("air"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte("waterair"), bb.Bytes())
	require.Equal(t, 8, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 8)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2})

	bb.Grow(2)
	require.Equal(t, 4, bb.Cap(), "enough room, no growth")

	bb.Grow(100)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 100)
	require.Equal(t, []byte{1, 2}, bb.Bytes())

	large := NewByteBuffer(8 * RowBufferDefaultSize)
	before := large.Cap()
	large.MustWrite(make([]byte, before))
	large.Grow(1)
	require.GreaterOrEqual(t, large.Cap(), before+before/4)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("nucid"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "nucid", out.String())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)

	oversized := NewByteBuffer(128)
	p.Put(oversized)
}

func TestRowBufferPool(t *testing.T) {
	bb := GetRowBuffer()
	require.NotNil(t, bb)
	require.GreaterOrEqual(t, bb.Cap(), 0)
	PutRowBuffer(bb)
}

func TestSlicePool(t *testing.T) {
	p := NewSlicePool[uint32]()

	s, cleanup := p.Get(10)
	require.Len(t, s, 10)
	for i := range s {
		s[i] = uint32(i)
	}
	cleanup()

	s2, cleanup2 := p.Get(3)
	defer cleanup2()
	require.Len(t, s2, 3)
}
