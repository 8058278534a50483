package section

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/arloliu/matlib/errs"
)

// Superblock is the fixed 32-byte head of a container file. It is always
// little-endian.
type Superblock struct {
	// Version is the container layout version, always ContainerVersion.
	Version uint16 // 2 bytes, offset 8-9
	// Flags is reserved and must be zero.
	Flags uint16 // 2 bytes, offset 10-11
	// DatasetCount is the number of directory entries.
	DatasetCount uint32 // 4 bytes, offset 12-15
	// DirectoryOffset is the absolute file offset of the directory.
	DirectoryOffset uint64 // 8 bytes, offset 16-23
	// DirectorySize is the size of the directory in bytes.
	DirectorySize uint32 // 4 bytes, offset 24-27
	// Reserved must be zero.
	Reserved [4]byte // 4 bytes, offset 28-31
}

// NewSuperblock creates a superblock for an empty container.
func NewSuperblock() *Superblock {
	return &Superblock{Version: ContainerVersion, DirectoryOffset: SuperblockSize}
}

// HasSignature reports whether data starts with the container signature.
func HasSignature(data []byte) bool {
	return len(data) >= len(Signature) && bytes.Equal(data[:len(Signature)], Signature[:])
}

// Parse parses the superblock from the first 32 bytes of data, including the
// signature.
func (s *Superblock) Parse(data []byte) error {
	if !HasSignature(data) {
		return errs.ErrInvalidSignature
	}
	if len(data) < SuperblockSize {
		return fmt.Errorf("%w: superblock is %d bytes", errs.ErrInvalidSuperblock, len(data))
	}

	s.Version = binary.LittleEndian.Uint16(data[8:10])
	if s.Version != ContainerVersion {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, s.Version)
	}
	s.Flags = binary.LittleEndian.Uint16(data[10:12])
	if s.Flags != 0 {
		return fmt.Errorf("%w: flags 0x%04x", errs.ErrInvalidSuperblock, s.Flags)
	}
	s.DatasetCount = binary.LittleEndian.Uint32(data[12:16])
	s.DirectoryOffset = binary.LittleEndian.Uint64(data[16:24])
	s.DirectorySize = binary.LittleEndian.Uint32(data[24:28])
	copy(s.Reserved[:], data[28:32])

	if s.DirectoryOffset < SuperblockSize {
		return fmt.Errorf("%w: directory offset %d", errs.ErrInvalidSuperblock, s.DirectoryOffset)
	}
	if uint64(s.DatasetCount)*DatasetEntrySize > uint64(s.DirectorySize) {
		return fmt.Errorf("%w: %d datasets in %d directory bytes",
			errs.ErrInvalidSuperblock, s.DatasetCount, s.DirectorySize)
	}

	return nil
}

// Bytes serializes the superblock, signature included.
func (s *Superblock) Bytes() []byte {
	b := make([]byte, SuperblockSize)
	copy(b[0:8], Signature[:])
	binary.LittleEndian.PutUint16(b[8:10], s.Version)
	binary.LittleEndian.PutUint16(b[10:12], s.Flags)
	binary.LittleEndian.PutUint32(b[12:16], s.DatasetCount)
	binary.LittleEndian.PutUint64(b[16:24], s.DirectoryOffset)
	binary.LittleEndian.PutUint32(b[24:28], s.DirectorySize)
	copy(b[28:32], s.Reserved[:])

	return b
}
