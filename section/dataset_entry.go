package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
)

// DatasetEntry describes one dataset in the container directory: a 32-byte
// fixed part followed by PathLen bytes of path. Always little-endian.
type DatasetEntry struct {
	Kind format.DatasetKind // 1 byte, offset 0
	// Reserved must be zero.
	Reserved uint8 // 1 byte, offset 1
	// Rows is the row count, probed without reading the payload.
	Rows uint32 // 4 bytes, offset 4-7 (PathLen at 2-3)
	// Offset is the absolute file offset of the payload.
	Offset uint64 // 8 bytes, offset 8-15
	// Size is the payload size in bytes.
	Size uint64 // 8 bytes, offset 16-23
	// Checksum is the xxHash64 of the payload.
	Checksum uint64 // 8 bytes, offset 24-31

	Path string
}

// EncodedSize returns the entry size in the directory.
func (e *DatasetEntry) EncodedSize() int {
	return DatasetEntrySize + len(e.Path)
}

// AppendTo appends the encoded entry to dst.
func (e *DatasetEntry) AppendTo(dst []byte) ([]byte, error) {
	if len(e.Path) == 0 || len(e.Path) > MaxPathLength {
		return nil, fmt.Errorf("%w: path length %d", errs.ErrInvalidDatapath, len(e.Path))
	}

	dst = append(dst, byte(e.Kind), e.Reserved)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(e.Path))) //nolint:gosec
	dst = binary.LittleEndian.AppendUint32(dst, e.Rows)
	dst = binary.LittleEndian.AppendUint64(dst, e.Offset)
	dst = binary.LittleEndian.AppendUint64(dst, e.Size)
	dst = binary.LittleEndian.AppendUint64(dst, e.Checksum)

	return append(dst, e.Path...), nil
}

// ParseDatasetEntry parses one entry from the start of data and returns the
// number of bytes it used.
func ParseDatasetEntry(data []byte) (DatasetEntry, int, error) {
	if len(data) < DatasetEntrySize {
		return DatasetEntry{}, 0, fmt.Errorf("%w: truncated entry (%d bytes)", errs.ErrInvalidDirectory, len(data))
	}

	pathLen := int(binary.LittleEndian.Uint16(data[2:4]))
	if pathLen == 0 || len(data) < DatasetEntrySize+pathLen {
		return DatasetEntry{}, 0, fmt.Errorf("%w: bad path length %d", errs.ErrInvalidDirectory, pathLen)
	}

	e := DatasetEntry{
		Kind:     format.DatasetKind(data[0]),
		Reserved: data[1],
		Rows:     binary.LittleEndian.Uint32(data[4:8]),
		Offset:   binary.LittleEndian.Uint64(data[8:16]),
		Size:     binary.LittleEndian.Uint64(data[16:24]),
		Checksum: binary.LittleEndian.Uint64(data[24:32]),
		Path:     string(data[DatasetEntrySize : DatasetEntrySize+pathLen]),
	}
	if !e.Kind.IsValid() {
		return DatasetEntry{}, 0, fmt.Errorf("%w: unknown kind %d for %q", errs.ErrInvalidDirectory, e.Kind, e.Path)
	}

	return e, DatasetEntrySize + pathLen, nil
}
