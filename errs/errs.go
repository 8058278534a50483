// Package errs defines the sentinel errors returned by matlib packages.
//
// Errors fall into four categories: ErrNotFound, ErrMalformedData,
// ErrIdentifierConflict and ErrIO. Every specific sentinel wraps exactly one
// category, so callers can match either level:
//
//	if errors.Is(err, errs.ErrMaterialNotFound) { ... } // specific
//	if errors.Is(err, errs.ErrNotFound) { ... }         // category
//
// Call sites attach context with fmt.Errorf("%w: ...", errs.ErrXxx).
package errs

import (
	"errors"
	"fmt"
)

// Categories.
var (
	ErrNotFound           = errors.New("not found")
	ErrMalformedData      = errors.New("malformed data")
	ErrIdentifierConflict = errors.New("identifier conflict")
	ErrIO                 = errors.New("i/o failure")
)

// Not found.
var (
	ErrFileNotFound     = fmt.Errorf("file %w", ErrNotFound)
	ErrDatapathNotFound = fmt.Errorf("datapath %w", ErrNotFound)
	ErrMaterialNotFound = fmt.Errorf("material %w", ErrNotFound)
)

// Malformed data: containers.
var (
	ErrInvalidSignature    = fmt.Errorf("%w: invalid container signature", ErrMalformedData)
	ErrInvalidVersion      = fmt.Errorf("%w: unsupported container version", ErrMalformedData)
	ErrInvalidSuperblock   = fmt.Errorf("%w: invalid container superblock", ErrMalformedData)
	ErrInvalidDirectory    = fmt.Errorf("%w: invalid dataset directory", ErrMalformedData)
	ErrChecksumMismatch    = fmt.Errorf("%w: dataset checksum mismatch", ErrMalformedData)
	ErrDatasetKindMismatch = fmt.Errorf("%w: unexpected dataset kind", ErrMalformedData)
	ErrInvalidDatapath     = fmt.Errorf("%w: invalid datapath", ErrMalformedData)
)

// Malformed data: protocol-1 tables.
var (
	ErrInvalidHeaderSize     = fmt.Errorf("%w: invalid header size", ErrMalformedData)
	ErrInvalidHeaderFlags    = fmt.Errorf("%w: invalid header flags", ErrMalformedData)
	ErrInvalidProtocol       = fmt.Errorf("%w: unsupported table protocol", ErrMalformedData)
	ErrInvalidRowEntrySize   = fmt.Errorf("%w: invalid row entry size", ErrMalformedData)
	ErrInvalidRowOffsets     = fmt.Errorf("%w: invalid row offsets", ErrMalformedData)
	ErrInvalidRowData        = fmt.Errorf("%w: invalid row data", ErrMalformedData)
	ErrInvalidNucpath        = fmt.Errorf("%w: invalid nuclide path", ErrMalformedData)
	ErrNucpathMismatch       = fmt.Errorf("%w: nuclide path does not match table", ErrMalformedData)
	ErrNucpathIndexRange     = fmt.Errorf("%w: nuclide path index out of range", ErrMalformedData)
	ErrHashMismatch          = fmt.Errorf("%w: name hash mismatch", ErrMalformedData)
	ErrInvalidMetadata       = fmt.Errorf("%w: invalid metadata", ErrMalformedData)
	ErrInvalidMaterialNumber = fmt.Errorf("%w: invalid material number", ErrMalformedData)
	ErrInvalidNuclide        = fmt.Errorf("%w: invalid nuclide", ErrMalformedData)
	ErrMalformedDocument     = fmt.Errorf("%w: document is not an array of material objects", ErrMalformedData)
)

// Identifier conflicts.
var (
	ErrDuplicateName   = fmt.Errorf("%w: duplicate material name", ErrIdentifierConflict)
	ErrHashCollision   = fmt.Errorf("%w: name hash collision", ErrIdentifierConflict)
	ErrInvalidName     = fmt.Errorf("%w: empty material name", ErrIdentifierConflict)
	ErrNumberCollision = fmt.Errorf("%w: material number already owned", ErrIdentifierConflict)
)

// Usage errors.
var (
	ErrInvalidMaterial    = errors.New("invalid material: nil")
	ErrTooManyRows        = errors.New("too many rows for protocol 1 table")
	ErrTableFinished      = errors.New("table encoder already finished")
	ErrNoNuclideOrder     = errors.New("nuclide not present in encoder nuclide order")
	ErrInvalidCompression = errors.New("invalid compression type")
)
