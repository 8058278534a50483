package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/internal/pool"
)

// RowWriter appends row data fields to a pooled buffer.
//
// Each field is encoded as:
//   - uvarint: base-128 varint, used for counts and nucpath positions
//   - string/bytes: uvarint length followed by the raw bytes
//   - float64: 8 bytes of IEEE-754 bits in the engine's byte order
type RowWriter struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	scratch [binary.MaxVarintLen64]byte
}

// NewRowWriter creates a writer backed by a pooled row buffer.
// Call Release when the encoded bytes are no longer needed.
func NewRowWriter(engine endian.EndianEngine) *RowWriter {
	return &RowWriter{
		buf:    pool.GetRowBuffer(),
		engine: engine,
	}
}

// WriteUvarint appends v as an unsigned varint.
func (w *RowWriter) WriteUvarint(v uint64) {
	n := binary.PutUvarint(w.scratch[:], v)
	w.buf.MustWrite(w.scratch[:n])
}

// WriteString appends a uvarint length prefix and the string bytes.
func (w *RowWriter) WriteString(s string) {
	w.buf.Grow(binary.MaxVarintLen32 + len(s))
	w.WriteUvarint(uint64(len(s)))
	w.buf.B = append(w.buf.B, s...)
}

// WriteBytes appends a uvarint length prefix and b.
func (w *RowWriter) WriteBytes(b []byte) {
	w.buf.Grow(binary.MaxVarintLen32 + len(b))
	w.WriteUvarint(uint64(len(b)))
	w.buf.MustWrite(b)
}

// WriteFloat64 appends the IEEE-754 bits of v.
func (w *RowWriter) WriteFloat64(v float64) {
	w.buf.B = endian.AppendFloat64(w.engine, w.buf.B, v)
}

// Len returns the number of bytes written so far.
func (w *RowWriter) Len() int {
	return w.buf.Len()
}

// Bytes returns the encoded data. The slice is owned by the writer and is
// invalid after Release.
func (w *RowWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Release returns the buffer to the pool. The writer must not be used again.
func (w *RowWriter) Release() {
	if w.buf != nil {
		pool.PutRowBuffer(w.buf)
		w.buf = nil
	}
}

// RowReader reads fields written by RowWriter from a byte slice.
type RowReader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewRowReader creates a reader over data.
func NewRowReader(data []byte, engine endian.EndianEngine) *RowReader {
	return &RowReader{data: data, engine: engine}
}

// Seek moves the read position to off.
func (r *RowReader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return fmt.Errorf("%w: offset %d outside data of %d bytes", errs.ErrInvalidRowOffsets, off, len(r.data))
	}
	r.off = off

	return nil
}

// Offset returns the current read position.
func (r *RowReader) Offset() int {
	return r.off
}

// ReadUvarint reads an unsigned varint.
func (r *RowReader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad uvarint at offset %d", errs.ErrInvalidRowData, r.off)
	}
	r.off += n

	return v, nil
}

// ReadBytes reads a length-prefixed byte string. The result aliases the
// reader's data.
func (r *RowReader) ReadBytes() ([]byte, error) {
	start := r.off
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)-r.off) {
		return nil, fmt.Errorf("%w: length %d at offset %d exceeds data", errs.ErrInvalidRowData, n, start)
	}
	b := r.data[r.off : r.off+int(n)]
	r.off += int(n)

	return b, nil
}

// ReadString reads a length-prefixed string.
func (r *RowReader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadFloat64 reads 8 bytes of IEEE-754 bits.
func (r *RowReader) ReadFloat64() (float64, error) {
	if len(r.data)-r.off < 8 {
		return 0, fmt.Errorf("%w: truncated float64 at offset %d", errs.ErrInvalidRowData, r.off)
	}
	v := endian.Float64(r.engine, r.data[r.off:])
	r.off += 8

	return v, nil
}
