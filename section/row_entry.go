package section

import (
	"fmt"

	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
)

// RowEntry is the fixed-width part of one material row.
//
// The variable-length part (name, composition, metadata) lives in the data
// section at Offset. Size is not stored; the decoder derives it from the next
// row's Offset, or from the header's DataSize for the last row.
type RowEntry struct {
	// NameHash is the xxHash64 of the material name.
	NameHash uint64 // 8 bytes, offset 0-7
	// Number is the material number, -1 when absent.
	Number int64 // 8 bytes, offset 8-15

	Mass             float64 // 8 bytes, offset 16-23
	Density          float64 // 8 bytes, offset 24-31
	AtomsPerMolecule float64 // 8 bytes, offset 32-39

	// CompCount is the number of (position, fraction) pairs in the row data.
	CompCount uint32 // 4 bytes, offset 40-43
	// Offset is the absolute byte offset into the decompressed data section.
	Offset uint32 // 4 bytes, offset 44-47

	// Size is calculated by the decoder from offset differences.
	Size uint32
}

// WriteToSlice writes the entry to b using the specified endian engine.
// The slice must be at least 48 bytes long.
func (e *RowEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < RowEntrySize {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidRowEntrySize, RowEntrySize, len(b))
	}

	engine.PutUint64(b[0:8], e.NameHash)
	engine.PutUint64(b[8:16], uint64(e.Number)) //nolint:gosec
	endian.PutFloat64(engine, b[16:24], e.Mass)
	endian.PutFloat64(engine, b[24:32], e.Density)
	endian.PutFloat64(engine, b[32:40], e.AtomsPerMolecule)
	engine.PutUint32(b[40:44], e.CompCount)
	engine.PutUint32(b[44:48], e.Offset)

	return nil
}

// ParseRowEntry parses a row entry from a byte slice.
// The Size field must be calculated separately by the caller.
func ParseRowEntry(data []byte, engine endian.EndianEngine) (RowEntry, error) {
	if len(data) < RowEntrySize {
		return RowEntry{}, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidRowEntrySize, RowEntrySize, len(data))
	}

	return RowEntry{
		NameHash:         engine.Uint64(data[0:8]),
		Number:           int64(engine.Uint64(data[8:16])), //nolint:gosec
		Mass:             endian.Float64(engine, data[16:24]),
		Density:          endian.Float64(engine, data[24:32]),
		AtomsPerMolecule: endian.Float64(engine, data[32:40]),
		CompCount:        engine.Uint32(data[40:44]),
		Offset:           engine.Uint32(data[44:48]),
	}, nil
}
