package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/matlib/errs"
	ienc "github.com/arloliu/matlib/internal/encoding"
	"github.com/arloliu/matlib/nucid"
	"github.com/arloliu/matlib/section"
)

// EncodeNucpath encodes a nucpath side table. ids must be valid and strictly
// ascending.
func EncodeNucpath(ids []nucid.ID, bigEndian bool) ([]byte, error) {
	header, err := section.NewNucpathHeader(len(ids), bigEndian)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, section.NucpathHeaderSize+len(ids)*ienc.NuclideIDSize)
	buf = append(buf, header.Bytes()...)

	return ienc.AppendNuclideIDs(buf, ids, header.GetEndianEngine())
}

// DecodeNucpath decodes a nucpath side table into its ascending nuclide ids.
func DecodeNucpath(payload []byte) ([]nucid.ID, error) {
	var header section.NucpathHeader
	if err := header.Parse(payload); err != nil {
		return nil, err
	}

	return ienc.DecodeNuclideIDs(payload[section.NucpathHeaderSize:], int(header.Count), header.GetEndianEngine())
}

// NuclideOrder returns the deterministic nucpath order for a set of nuclides:
// ascending, without duplicates.
func NuclideOrder(nuclides []nucid.ID) ([]nucid.ID, error) {
	order := slices.Clone(nuclides)
	slices.Sort(order)
	order = slices.Compact(order)
	for _, n := range order {
		if !n.Valid() {
			return nil, fmt.Errorf("%w: %d", errs.ErrInvalidNuclide, int32(n))
		}
	}

	return order, nil
}
