package encoding

import (
	"fmt"
	"slices"

	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/nucid"
)

// NuclideIDSize is the encoded size of one nuclide id.
const NuclideIDSize = 4

// AppendNuclideIDs appends ids as int32 values in engine byte order.
// The ids must be valid and strictly ascending.
func AppendNuclideIDs(dst []byte, ids []nucid.ID, engine endian.EndianEngine) ([]byte, error) {
	for i, id := range ids {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: %d at position %d", errs.ErrInvalidNuclide, int32(id), i)
		}
		if i > 0 && ids[i-1] >= id {
			return nil, fmt.Errorf("%w: ids not strictly ascending at position %d", errs.ErrInvalidNucpath, i)
		}
	}

	dst = slices.Grow(dst, len(ids)*NuclideIDSize)
	for _, id := range ids {
		dst = engine.AppendUint32(dst, uint32(id)) //nolint:gosec
	}

	return dst, nil
}

// DecodeNuclideIDs reads count ids from data and checks they are valid and
// strictly ascending.
func DecodeNuclideIDs(data []byte, count int, engine endian.EndianEngine) ([]nucid.ID, error) {
	if count < 0 || len(data) != count*NuclideIDSize {
		return nil, fmt.Errorf("%w: expected %d ids, have %d bytes", errs.ErrInvalidNucpath, count, len(data))
	}

	ids := make([]nucid.ID, count)
	for i := range ids {
		id := nucid.ID(int32(engine.Uint32(data[i*NuclideIDSize:]))) //nolint:gosec
		if !id.Valid() {
			return nil, fmt.Errorf("%w: invalid nuclide %d at position %d", errs.ErrInvalidNucpath, int32(id), i)
		}
		if i > 0 && ids[i-1] >= id {
			return nil, fmt.Errorf("%w: ids not strictly ascending at position %d", errs.ErrInvalidNucpath, i)
		}
		ids[i] = id
	}

	return ids, nil
}
