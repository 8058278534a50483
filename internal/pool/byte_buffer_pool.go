package pool

import (
	"io"
	"sync"
)

const (
	RowBufferDefaultSize  = 1024 * 16  // 16KiB
	RowBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is an append-only byte slice wrapper used to build table data
// sections.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer, retaining its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by RowBufferDefaultSize, larger ones by 25%.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := RowBufferDefaultSize
	if cap(bb.B) > 4*RowBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers grown past
// maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var rowDefaultPool = NewByteBufferPool(RowBufferDefaultSize, RowBufferMaxThreshold)

// GetRowBuffer retrieves a ByteBuffer from the default row data pool.
func GetRowBuffer() *ByteBuffer {
	return rowDefaultPool.Get()
}

// PutRowBuffer returns a ByteBuffer to the default row data pool.
func PutRowBuffer(bb *ByteBuffer) {
	rowDefaultPool.Put(bb)
}
