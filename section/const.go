package section

import "math"

const (
	// Bit masks of the table Options field
	MetadataMask     = 0x0001 // Mask for metadata present bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	CollisionMask    = 0x0004 // Mask for name hash collision bit (bit 2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicTableV1Opt   = 0xEC10 // MagicTableV1Opt identifies a protocol-1 material table.
	MagicNucpathV1Opt = 0xED10 // MagicNucpathV1Opt identifies a version 1 nucpath side table.

	// ProtocolV1 is the only supported material table protocol.
	ProtocolV1 = 1

	// ContainerVersion is the only supported container version.
	ContainerVersion = 1
)

// offset and section sizes
const (
	SuperblockSize    = 32 // fixed container superblock size in bytes
	DatasetEntrySize  = 32 // fixed part of a directory entry in bytes
	TableHeaderSize   = 32 // fixed material table header size in bytes
	RowEntrySize      = 48 // fixed row entry size in bytes
	NucpathHeaderSize = 16 // fixed nucpath header size in bytes
	IndexOffsetOffset = TableHeaderSize

	DataAlignment = 8 // dataset payloads start at multiples of this

	MaxTableOffset = math.MaxUint32 // maximum offset or size inside a table
	MaxPathLength  = math.MaxUint16 // maximum datapath length in bytes
)

// Signature is the first eight bytes of every container file.
var Signature = [8]byte{0x89, 'M', 'T', 'L', '\r', '\n', 0x1a, '\n'}
