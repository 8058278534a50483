package table

import (
	"fmt"
	"math"

	"github.com/arloliu/matlib/compress"
	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
	ienc "github.com/arloliu/matlib/internal/encoding"
	"github.com/arloliu/matlib/internal/hash"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
	"github.com/arloliu/matlib/section"
)

// Decoder reads the rows of a protocol-1 table against its nucpath.
//
// NewDecoder validates the header, checks the nucpath binding, parses the row
// index and decompresses the data section. Rows are decoded on demand.
//
// Note: The Decoder is NOT thread-safe.
type Decoder struct {
	header   section.TableHeader
	engine   endian.EndianEngine
	nuclides []nucid.ID
	entries  []section.RowEntry
	data     []byte
}

// NewDecoder creates a decoder for tbl, whose rows index into nucpath.
func NewDecoder(tbl, nucpath []byte) (*Decoder, error) {
	d := &Decoder{}
	if err := d.parseHeader(tbl); err != nil {
		return nil, err
	}

	if got := hash.Checksum(nucpath); got != d.header.NucpathHash {
		return nil, fmt.Errorf("%w: nucpath hash 0x%016x, table expects 0x%016x",
			errs.ErrNucpathMismatch, got, d.header.NucpathHash)
	}
	nuclides, err := DecodeNucpath(nucpath)
	if err != nil {
		return nil, err
	}
	if uint64(len(nuclides)) != uint64(d.header.NucCount) {
		return nil, fmt.Errorf("%w: nucpath holds %d nuclides, table expects %d",
			errs.ErrNucpathMismatch, len(nuclides), d.header.NucCount)
	}
	d.nuclides = nuclides

	if err := d.parseRowEntries(tbl); err != nil {
		return nil, err
	}

	if err := d.decompressData(tbl); err != nil {
		return nil, err
	}

	return d, nil
}

// Len returns the number of rows.
func (d *Decoder) Len() int {
	return len(d.entries)
}

// Header returns a copy of the table header.
func (d *Decoder) Header() section.TableHeader {
	return d.header
}

// Nuclides returns the nucpath order the rows index into.
func (d *Decoder) Nuclides() []nucid.ID {
	return d.nuclides
}

// Row decodes row i into a new material.
func (d *Decoder) Row(i int) (*material.Material, error) {
	if i < 0 || i >= len(d.entries) {
		return nil, fmt.Errorf("%w: row %d of %d", errs.ErrMaterialNotFound, i, len(d.entries))
	}
	entry := d.entries[i]

	start := int(entry.Offset)
	r := ienc.NewRowReader(d.data[start:start+int(entry.Size)], d.engine)

	name, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", i, err)
	}
	if want := hash.ID(name); want != entry.NameHash {
		return nil, fmt.Errorf("%w: row %d name %q: expected hash 0x%016x, got 0x%016x",
			errs.ErrHashMismatch, i, name, want, entry.NameHash)
	}

	if entry.Number < material.NoNumber || entry.Number > math.MaxInt32 {
		return nil, fmt.Errorf("%w: row %d number %d", errs.ErrInvalidMaterialNumber, i, entry.Number)
	}

	mat := material.New()
	mat.Name = name
	mat.Number = int(entry.Number)
	mat.Mass = entry.Mass
	mat.Density = entry.Density
	mat.AtomsPerMolecule = entry.AtomsPerMolecule

	prev := -1
	for j := uint32(0); j < entry.CompCount; j++ {
		pos, err := r.ReadUvarint()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if pos >= uint64(len(d.nuclides)) {
			return nil, fmt.Errorf("%w: row %d position %d of %d", errs.ErrNucpathIndexRange, i, pos, len(d.nuclides))
		}
		if int(pos) <= prev {
			return nil, fmt.Errorf("%w: row %d positions not ascending", errs.ErrInvalidRowData, i)
		}
		prev = int(pos)

		frac, err := r.ReadFloat64()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		mat.Comp[d.nuclides[pos]] = frac
	}

	meta, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", i, err)
	}
	if mat.Metadata, err = decodeMetadata(meta); err != nil {
		return nil, fmt.Errorf("row %d: %w", i, err)
	}

	if r.Offset() != int(entry.Size) {
		return nil, fmt.Errorf("%w: row %d has %d trailing bytes", errs.ErrInvalidRowData, i, int(entry.Size)-r.Offset())
	}

	return mat, nil
}

// Materials decodes every row in table order.
func (d *Decoder) Materials() ([]*material.Material, error) {
	mats := make([]*material.Material, 0, len(d.entries))
	for i := range d.entries {
		mat, err := d.Row(i)
		if err != nil {
			return nil, err
		}
		mats = append(mats, mat)
	}

	return mats, nil
}

func (d *Decoder) parseHeader(tbl []byte) error {
	if len(tbl) < section.TableHeaderSize {
		return fmt.Errorf("%w: table is %d bytes", errs.ErrInvalidHeaderSize, len(tbl))
	}
	if err := d.header.Parse(tbl[:section.TableHeaderSize]); err != nil {
		return err
	}
	d.engine = d.header.GetEndianEngine()

	return nil
}

// parseRowEntries reads the index and derives each row's Size from the next
// row's Offset, or from DataSize for the last row.
func (d *Decoder) parseRowEntries(tbl []byte) error {
	start := int(d.header.IndexOffset)
	end := int(d.header.DataOffset)
	if len(tbl) < end {
		return fmt.Errorf("%w: need %d bytes for row index, have %d",
			errs.ErrInvalidRowEntrySize, end-start, len(tbl)-start)
	}

	count := int(d.header.RowCount)
	d.entries = make([]section.RowEntry, count)
	for i := range count {
		off := start + i*section.RowEntrySize
		entry, err := section.ParseRowEntry(tbl[off:off+section.RowEntrySize], d.engine)
		if err != nil {
			return fmt.Errorf("failed to parse row entry %d: %w", i, err)
		}
		d.entries[i] = entry
	}

	for i := range d.entries {
		next := d.header.DataSize
		if i < count-1 {
			next = d.entries[i+1].Offset
		}
		if d.entries[i].Offset > next {
			return fmt.Errorf("%w: row %d offset %d beyond %d", errs.ErrInvalidRowOffsets, i, d.entries[i].Offset, next)
		}
		d.entries[i].Size = next - d.entries[i].Offset
	}
	if count > 0 && d.entries[0].Offset != 0 {
		return fmt.Errorf("%w: first row at offset %d", errs.ErrInvalidRowOffsets, d.entries[0].Offset)
	}

	return nil
}

func (d *Decoder) decompressData(tbl []byte) error {
	codec, err := compress.GetCodec(d.header.Flag.GetDataCompression())
	if err != nil {
		return err
	}

	data, err := codec.Decompress(tbl[d.header.DataOffset:])
	if err != nil {
		return fmt.Errorf("%w: failed to decompress data: %w", errs.ErrInvalidRowData, err)
	}
	if uint64(len(data)) != uint64(d.header.DataSize) {
		return fmt.Errorf("%w: decompressed data size mismatch: expected %d, got %d",
			errs.ErrInvalidRowData, d.header.DataSize, len(data))
	}
	d.data = data

	return nil
}
