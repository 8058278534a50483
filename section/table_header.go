package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
)

// TableHeader is the fixed 32-byte header of a protocol-1 material table.
//
// The Options word is always stored little-endian so a reader can find the
// endianness bit before choosing an engine; every other field uses the byte
// order the flag names.
type TableHeader struct {
	Flag TableFlag // 4 bytes, offset 0-3

	// RowCount is the number of materials in the table.
	RowCount uint32 // 4 bytes, offset 4-7
	// IndexOffset is the byte offset to the first row entry.
	IndexOffset uint32 // 4 bytes, offset 8-11
	// DataOffset is the byte offset to the (possibly compressed) data section.
	DataOffset uint32 // 4 bytes, offset 12-15
	// DataSize is the uncompressed size of the data section in bytes.
	// Used to calculate the last row's Size field.
	DataSize uint32 // 4 bytes, offset 16-19
	// NucCount is the length of the nucpath the rows index into.
	NucCount uint32 // 4 bytes, offset 20-23
	// NucpathHash is the xxHash64 of the nucpath payload the rows index into.
	NucpathHash uint64 // 8 bytes, offset 24-31
}

// NewTableHeader creates a header for rowCount rows indexing a nucpath of
// nucCount nuclides.
func NewTableHeader(rowCount, nucCount int) (*TableHeader, error) {
	if rowCount < 0 || int64(rowCount)*RowEntrySize+TableHeaderSize > MaxTableOffset {
		return nil, fmt.Errorf("%w: %d rows", errs.ErrTooManyRows, rowCount)
	}
	if nucCount < 0 || int64(nucCount) > MaxTableOffset {
		return nil, fmt.Errorf("%w: %d nuclides", errs.ErrInvalidNucpath, nucCount)
	}

	return &TableHeader{
		Flag:        NewTableFlag(),
		RowCount:    uint32(rowCount), //nolint:gosec
		IndexOffset: IndexOffsetOffset,
		DataOffset:  uint32(IndexOffsetOffset + rowCount*RowEntrySize), //nolint:gosec
		NucCount:    uint32(nucCount),                                  //nolint:gosec
	}, nil
}

// Parse parses the header from a byte slice.
// It returns an error if the data is not exactly 32 bytes or if the flags are invalid.
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != TableHeaderSize {
		return fmt.Errorf("%w: table header is %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.Protocol = data[2]
	h.Flag.DataCompression = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.RowCount = engine.Uint32(data[4:8])
	h.IndexOffset = engine.Uint32(data[8:12])
	h.DataOffset = engine.Uint32(data[12:16])
	h.DataSize = engine.Uint32(data[16:20])
	h.NucCount = engine.Uint32(data[20:24])
	h.NucpathHash = engine.Uint64(data[24:32])

	if h.IndexOffset != IndexOffsetOffset ||
		uint64(h.DataOffset) != uint64(h.IndexOffset)+uint64(h.RowCount)*RowEntrySize {
		return fmt.Errorf("%w: index at %d, data at %d for %d rows",
			errs.ErrInvalidRowOffsets, h.IndexOffset, h.DataOffset, h.RowCount)
	}

	return nil
}

// Bytes serializes the header into a new 32-byte slice.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, TableHeaderSize)
	h.WriteToSlice(b)

	return b
}

// WriteToSlice serializes the header into b, which must hold at least 32 bytes.
func (h *TableHeader) WriteToSlice(b []byte) {
	engine := h.GetEndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.Protocol
	b[3] = h.Flag.DataCompression
	engine.PutUint32(b[4:8], h.RowCount)
	engine.PutUint32(b[8:12], h.IndexOffset)
	engine.PutUint32(b[12:16], h.DataOffset)
	engine.PutUint32(b[16:20], h.DataSize)
	engine.PutUint32(b[20:24], h.NucCount)
	engine.PutUint64(b[24:32], h.NucpathHash)
}

// GetEndianEngine returns the engine matching the header's endianness bit.
func (h *TableHeader) GetEndianEngine() endian.EndianEngine {
	return endian.ForFlag(h.Flag.IsBigEndian())
}
