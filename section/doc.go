// Package section defines the fixed-size binary structures of matlib container
// files and protocol-1 material tables.
//
// # Container
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Superblock (32 bytes, little-endian)                    │
//	│  - Signature (8 bytes): 0x89 'M' 'T' 'L' \r \n 0x1a \n  │
//	│  - Version, Flags, DatasetCount                         │
//	│  - DirectoryOffset, DirectorySize                       │
//	├─────────────────────────────────────────────────────────┤
//	│ Dataset payloads (each padded to 8-byte alignment)      │
//	├─────────────────────────────────────────────────────────┤
//	│ Directory: DatasetCount × (32-byte entry + path bytes)  │
//	│  - Kind, PathLen, Rows, Offset, Size, Checksum          │
//	└─────────────────────────────────────────────────────────┘
//
// # Material table (protocol 1)
//
//	┌─────────────────────────────────────────────────────────┐
//	│ TableHeader (32 bytes)                                  │
//	├─────────────────────────────────────────────────────────┤
//	│ RowEntry × RowCount (48 bytes each)                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Data section (compressed as one unit)                   │
//	│  - per row: name, composition pairs, CBOR metadata      │
//	└─────────────────────────────────────────────────────────┘
//
// TableHeader:
//
//	Bytes  | Field           | Type   | Description
//	-------|-----------------|--------|----------------------------------
//	0-1    | Options         | uint16 | Flags and magic 0xEC10 (always LE)
//	2      | Protocol        | uint8  | Row layout version (1)
//	3      | DataCompression | uint8  | 0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4
//	4-7    | RowCount        | uint32 | Number of rows
//	8-11   | IndexOffset     | uint32 | Offset of the first row entry
//	12-15  | DataOffset      | uint32 | Offset of the data section
//	16-19  | DataSize        | uint32 | Uncompressed data section size
//	20-23  | NucCount        | uint32 | Length of the bound nucpath
//	24-31  | NucpathHash     | uint64 | xxHash64 of the bound nucpath
//
// Options bits:
//
//	Bit 0: Metadata present
//	Bit 1: Endianness (0=little-endian, 1=big-endian)
//	Bit 2: Name hash collision
//	Bit 3: Reserved (must be 0)
//	Bits 4-15: Magic number
//
// RowEntry:
//
//	Bytes  | Field            | Type    | Description
//	-------|------------------|---------|----------------------------------
//	0-7    | NameHash         | uint64  | xxHash64 of the material name
//	8-15   | Number           | int64   | Material number (-1 = none)
//	16-23  | Mass             | float64 |
//	24-31  | Density          | float64 |
//	32-39  | AtomsPerMolecule | float64 |
//	40-43  | CompCount        | uint32  | Composition pairs in row data
//	44-47  | Offset           | uint32  | Offset into decompressed data
//
// # Nucpath side table
//
// A 16-byte NucpathHeader (magic 0xED10) followed by Count int32 nuclide ids in
// strictly ascending order. Row composition pairs reference positions in this
// list.
package section
