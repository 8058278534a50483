package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/internal/collision"
	ienc "github.com/arloliu/matlib/internal/encoding"
	"github.com/arloliu/matlib/internal/hash"
	"github.com/arloliu/matlib/internal/options"
	"github.com/arloliu/matlib/internal/pool"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
	"github.com/arloliu/matlib/section"
)

var nuclideScratch = pool.NewSlicePool[nucid.ID]()

// Encoder encodes materials into a protocol-1 table bound to one nucpath.
//
// Each row is encoded as:
//   - RowEntry (fixed 48 bytes): name hash, number, scalars, composition count, data offset
//   - Row data: uvarint length + name, CompCount × (uvarint position, float64),
//     uvarint length + CBOR metadata
//
// The entire data section is compressed as a single unit in Finish.
//
// Note: The Encoder is NOT thread-safe and NOT reusable after Finish.
type Encoder struct {
	*EncoderConfig

	nuclides    []nucid.ID
	positions   map[nucid.ID]uint64
	nucpath     []byte
	nucpathHash uint64

	rows    *ienc.RowWriter
	tracker *collision.Tracker

	hasMetadata bool
	finished    bool
}

// NewEncoder creates an encoder for rows whose nuclides all appear in
// nuclides. The nucpath is computed from nuclides right away: sorted
// ascending and deduplicated.
func NewEncoder(nuclides []nucid.ID, opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	order, err := NuclideOrder(nuclides)
	if err != nil {
		return nil, err
	}

	nucpath, err := EncodeNucpath(order, config.header.Flag.IsBigEndian())
	if err != nil {
		return nil, err
	}

	positions := make(map[nucid.ID]uint64, len(order))
	for i, n := range order {
		positions[n] = uint64(i)
	}

	return &Encoder{
		EncoderConfig: config,
		nuclides:      order,
		positions:     positions,
		nucpath:       nucpath,
		nucpathHash:   hash.Checksum(nucpath),
		rows:          ienc.NewRowWriter(config.engine),
		tracker:       collision.NewTracker(),
	}, nil
}

// Nucpath returns the encoded nucpath side table the rows are bound to.
func (e *Encoder) Nucpath() []byte {
	return e.nucpath
}

// Nuclides returns the nucpath order.
func (e *Encoder) Nuclides() []nucid.ID {
	return e.nuclides
}

// AddMaterial appends one row. The material must be named; its name must not
// repeat an earlier row's, and its number, when present, must not be owned
// by another row.
func (e *Encoder) AddMaterial(mat *material.Material) error {
	if e.finished {
		return errs.ErrTableFinished
	}
	if mat == nil {
		return errs.ErrInvalidMaterial
	}
	if int64(len(e.entries)+1)*section.RowEntrySize+section.TableHeaderSize > section.MaxTableOffset {
		return fmt.Errorf("%w: %d rows", errs.ErrTooManyRows, len(e.entries)+1)
	}
	if mat.Number < material.NoNumber || mat.Number > material.MaxNumber {
		return fmt.Errorf("%w: %d for %q", errs.ErrInvalidMaterialNumber, mat.Number, mat.Name)
	}

	meta, err := encodeMetadata(mat.Metadata)
	if err != nil {
		return fmt.Errorf("material %q: %w", mat.Name, err)
	}

	offset := e.rows.Len()
	if offset > section.MaxTableOffset {
		return fmt.Errorf("%w: data section exceeds %d bytes", errs.ErrTooManyRows, uint64(section.MaxTableOffset))
	}

	nuclides, release := nuclideScratch.Get(len(mat.Comp))
	defer release()
	nuclides = nuclides[:0]
	for n := range mat.Comp {
		nuclides = append(nuclides, n)
	}
	slices.Sort(nuclides)
	for _, n := range nuclides {
		if _, ok := e.positions[n]; !ok {
			return fmt.Errorf("%w: %s in %q", errs.ErrNoNuclideOrder, n, mat.Name)
		}
	}

	nameHash := hash.ID(mat.Name)
	if err := e.tracker.TrackName(mat.Name, nameHash); err != nil {
		return err
	}
	if mat.HasNumber() {
		if err := e.tracker.TrackNumber(mat.Name, int64(mat.Number)); err != nil {
			return err
		}
	}

	e.rows.WriteString(mat.Name)
	// ascending ids map to ascending positions
	for _, n := range nuclides {
		e.rows.WriteUvarint(e.positions[n])
		e.rows.WriteFloat64(mat.Comp[n])
	}
	e.rows.WriteBytes(meta)

	if len(meta) > 0 {
		e.hasMetadata = true
	}

	e.entries = append(e.entries, section.RowEntry{
		NameHash:         nameHash,
		Number:           int64(mat.Number),
		Mass:             mat.Mass,
		Density:          mat.Density,
		AtomsPerMolecule: mat.AtomsPerMolecule,
		CompCount:        uint32(len(nuclides)), //nolint:gosec
		Offset:           uint32(offset),        //nolint:gosec
	})

	return nil
}

// Finish completes the table and returns its bytes.
// After calling Finish, the encoder cannot be reused; Nucpath stays valid.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrTableFinished
	}
	e.finished = true
	defer e.rows.Release()

	dataBytes := e.rows.Bytes()
	if len(dataBytes) > section.MaxTableOffset {
		return nil, fmt.Errorf("%w: data section exceeds %d bytes", errs.ErrTooManyRows, uint64(section.MaxTableOffset))
	}

	header, err := section.NewTableHeader(len(e.entries), len(e.nuclides))
	if err != nil {
		return nil, err
	}
	header.Flag = e.header.Flag
	header.Flag.SetHasMetadata(e.hasMetadata)
	header.Flag.SetHasCollision(e.tracker.HasCollision())
	header.DataSize = uint32(len(dataBytes)) //nolint:gosec
	header.NucpathHash = e.nucpathHash

	codec, err := e.dataCodec()
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(dataBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	indexSize := len(e.entries) * section.RowEntrySize
	tbl := make([]byte, section.TableHeaderSize+indexSize+len(compressed))

	header.WriteToSlice(tbl)
	offset := section.TableHeaderSize
	for i := range e.entries {
		if err := e.entries[i].WriteToSlice(tbl[offset+i*section.RowEntrySize:], e.engine); err != nil {
			return nil, fmt.Errorf("failed to write row entry: %w", err)
		}
	}
	offset += indexSize
	copy(tbl[offset:], compressed)

	return tbl, nil
}
