package section

import (
	"fmt"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
)

// TableFlag is the packed flag block at the start of a material table header.
type TableFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is metadata flag, 1 means at least one row carries metadata.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2 is collision flag, 1 means two row names share a hash.
	// Bit 3 is reserved for future use, must be set to 0.
	// Bits 4-15 are magic number 0xEC10.
	Options uint16

	// Protocol is the row layout version, always ProtocolV1.
	Protocol uint8

	// DataCompression indicates the compression used for the data section.
	DataCompression uint8
}

// NewTableFlag creates a little-endian protocol-1 flag with the data section
// uncompressed.
func NewTableFlag() TableFlag {
	return TableFlag{
		Options:         MagicTableV1Opt,
		Protocol:        ProtocolV1,
		DataCompression: uint8(format.CompressionNone),
	}
}

// HasMetadata returns whether any row carries metadata.
func (f TableFlag) HasMetadata() bool {
	return (f.Options & MetadataMask) != 0
}

// SetHasMetadata sets or clears the metadata flag.
func (f *TableFlag) SetHasMetadata(enabled bool) {
	if enabled {
		f.Options |= MetadataMask
	} else {
		f.Options &^= MetadataMask
	}
}

// HasCollision returns whether two row names share a hash.
func (f TableFlag) HasCollision() bool {
	return (f.Options & CollisionMask) != 0
}

// SetHasCollision sets or clears the collision flag.
func (f *TableFlag) SetHasCollision(enabled bool) {
	if enabled {
		f.Options |= CollisionMask
	} else {
		f.Options &^= CollisionMask
	}
}

// IsBigEndian returns whether the table is big-endian.
func (f TableFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithBigEndian sets big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian sets little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f TableFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetDataCompression sets the data compression type.
func (f *TableFlag) SetDataCompression(compression format.CompressionType) {
	f.DataCompression = uint8(compression)
}

// GetDataCompression returns the data compression type.
func (f TableFlag) GetDataCompression() format.CompressionType {
	return format.CompressionType(f.DataCompression)
}

// Validate checks if the flag holds valid values.
func (f TableFlag) Validate() error {
	if f.GetMagicNumber() != MagicTableV1Opt {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidHeaderFlags, f.GetMagicNumber())
	}
	if (f.Options & ReservedBitsMask) != 0 {
		return fmt.Errorf("%w: reserved bit set", errs.ErrInvalidHeaderFlags)
	}
	if f.Protocol != ProtocolV1 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidProtocol, f.Protocol)
	}
	if !f.GetDataCompression().IsValid() {
		return fmt.Errorf("%w: compression %d", errs.ErrInvalidHeaderFlags, f.DataCompression)
	}

	return nil
}
