package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/matlib/endian"
	"github.com/arloliu/matlib/errs"
)

// NucpathHeader is the fixed 16-byte header of a nucpath side table. It is
// followed by Count int32 nuclide ids in strictly ascending order.
type NucpathHeader struct {
	// Options holds the magic number 0xED10 in bits 4-15 and the
	// endianness bit. Stored little-endian.
	Options uint16 // 2 bytes, offset 0-1
	// Reserved1 must be zero.
	Reserved1 uint16 // 2 bytes, offset 2-3
	// Count is the number of nuclide ids that follow.
	Count uint32 // 4 bytes, offset 4-7
	// Reserved2 must be zero.
	Reserved2 [8]byte // 8 bytes, offset 8-15
}

// NewNucpathHeader creates a header for count ids.
func NewNucpathHeader(count int, bigEndian bool) (*NucpathHeader, error) {
	if count < 0 || int64(count) > MaxTableOffset {
		return nil, fmt.Errorf("%w: %d nuclides", errs.ErrInvalidNucpath, count)
	}

	h := &NucpathHeader{Options: MagicNucpathV1Opt, Count: uint32(count)} //nolint:gosec
	if bigEndian {
		h.Options |= EndiannessMask
	}

	return h, nil
}

// IsBigEndian returns whether the ids are big-endian.
func (h *NucpathHeader) IsBigEndian() bool {
	return (h.Options & EndiannessMask) != 0
}

// GetEndianEngine returns the engine matching the endianness bit.
func (h *NucpathHeader) GetEndianEngine() endian.EndianEngine {
	return endian.ForFlag(h.IsBigEndian())
}

// Parse parses the header from the first 16 bytes of data.
func (h *NucpathHeader) Parse(data []byte) error {
	if len(data) < NucpathHeaderSize {
		return fmt.Errorf("%w: nucpath header is %d bytes", errs.ErrInvalidNucpath, len(data))
	}

	h.Options = binary.LittleEndian.Uint16(data[0:2])
	if h.Options&MagicNumberMask != MagicNucpathV1Opt {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidNucpath, h.Options&MagicNumberMask)
	}
	if h.Options&^(MagicNumberMask|EndiannessMask) != 0 {
		return fmt.Errorf("%w: unknown option bits 0x%04x", errs.ErrInvalidNucpath, h.Options)
	}

	engine := h.GetEndianEngine()
	h.Reserved1 = engine.Uint16(data[2:4])
	h.Count = engine.Uint32(data[4:8])
	copy(h.Reserved2[:], data[8:16])

	return nil
}

// Bytes serializes the header into a new 16-byte slice.
func (h *NucpathHeader) Bytes() []byte {
	b := make([]byte, NucpathHeaderSize)
	engine := h.GetEndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Options)
	engine.PutUint16(b[2:4], h.Reserved1)
	engine.PutUint32(b[4:8], h.Count)
	copy(b[8:16], h.Reserved2[:])

	return b
}
