package container

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/internal/fsutil"
	"github.com/arloliu/matlib/internal/hash"
	"github.com/arloliu/matlib/section"
)

// Dataset describes one dataset of an open container.
type Dataset struct {
	Path     string
	Kind     format.DatasetKind
	Rows     int
	Size     int64
	Checksum uint64
}

// Reader gives access to the datasets of a container file.
//
// Note: The Reader is NOT thread-safe.
type Reader struct {
	f          *os.File
	name       string
	size       int64
	superblock section.Superblock
	entries    []section.DatasetEntry
	byPath     map[string]int
}

// Open opens a container file and reads its directory.
// A missing file is errs.ErrFileNotFound; a file that is not a container is
// errs.ErrInvalidSignature.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fsutil.WrapOpenError(filename, err)
	}

	r := &Reader{f: f, name: filename}
	if err := r.load(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return r, nil
}

// Close releases the file handle.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return nil
}

// Name returns the file name the reader was opened with.
func (r *Reader) Name() string {
	return r.name
}

// FileSize returns the container size in bytes.
func (r *Reader) FileSize() int64 {
	return r.size
}

// Datasets lists every dataset, sorted by path.
func (r *Reader) Datasets() []Dataset {
	out := make([]Dataset, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Dataset{
			Path:     e.Path,
			Kind:     e.Kind,
			Rows:     int(e.Rows),
			Size:     int64(e.Size), //nolint:gosec
			Checksum: e.Checksum,
		})
	}
	slices.SortFunc(out, func(a, b Dataset) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

// Rows returns the row count recorded for the dataset at p without reading
// its payload. A missing dataset is errs.ErrDatapathNotFound.
func (r *Reader) Rows(p string) (int, error) {
	e, err := r.entry(p)
	if err != nil {
		return 0, err
	}

	return int(e.Rows), nil
}

// Read returns the payload of the dataset at p after checking its kind and
// checksum.
func (r *Reader) Read(p string, kind format.DatasetKind) ([]byte, error) {
	e, err := r.entry(p)
	if err != nil {
		return nil, err
	}
	if e.Kind != kind {
		return nil, fmt.Errorf("%w: %s is %s, want %s", errs.ErrDatasetKindMismatch, e.Path, e.Kind, kind)
	}

	return r.readPayload(e)
}

func (r *Reader) readPayload(e section.DatasetEntry) ([]byte, error) {
	if r.f == nil {
		return nil, fmt.Errorf("%w: reader is closed", errs.ErrIO)
	}

	payload := make([]byte, e.Size)
	if _, err := r.f.ReadAt(payload, int64(e.Offset)); err != nil { //nolint:gosec
		return nil, fmt.Errorf("%w: reading %s: %w", errs.ErrIO, e.Path, err)
	}
	if sum := hash.Checksum(payload); sum != e.Checksum {
		return nil, fmt.Errorf("%w: %s: 0x%016x, directory says 0x%016x", errs.ErrChecksumMismatch, e.Path, sum, e.Checksum)
	}

	return payload, nil
}

func (r *Reader) entry(p string) (section.DatasetEntry, error) {
	cleaned, err := CleanPath(p)
	if err != nil {
		return section.DatasetEntry{}, err
	}
	i, ok := r.byPath[cleaned]
	if !ok {
		return section.DatasetEntry{}, fmt.Errorf("%w: %s in %s", errs.ErrDatapathNotFound, cleaned, r.name)
	}

	return r.entries[i], nil
}

func (r *Reader) load() error {
	info, err := r.f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	r.size = info.Size()

	head := make([]byte, section.SuperblockSize)
	n, err := io.ReadFull(r.f, head)
	if err != nil && n < len(section.Signature) {
		return errs.ErrInvalidSignature
	}
	if err := r.superblock.Parse(head[:n]); err != nil {
		return err
	}

	sb := r.superblock
	dirEnd := sb.DirectoryOffset + uint64(sb.DirectorySize)
	if dirEnd < sb.DirectoryOffset || dirEnd > uint64(r.size) { //nolint:gosec
		return fmt.Errorf("%w: directory [%d,%d) beyond file of %d bytes",
			errs.ErrInvalidSuperblock, sb.DirectoryOffset, dirEnd, r.size)
	}

	dir := make([]byte, sb.DirectorySize)
	if _, err := r.f.ReadAt(dir, int64(sb.DirectoryOffset)); err != nil { //nolint:gosec
		return fmt.Errorf("%w: reading directory: %w", errs.ErrIO, err)
	}

	r.entries = make([]section.DatasetEntry, 0, sb.DatasetCount)
	r.byPath = make(map[string]int, sb.DatasetCount)
	off := 0
	for i := range int(sb.DatasetCount) {
		e, used, err := section.ParseDatasetEntry(dir[off:])
		if err != nil {
			return fmt.Errorf("dataset %d: %w", i, err)
		}
		off += used

		end := e.Offset + e.Size
		if e.Offset < section.SuperblockSize || end < e.Offset || end > sb.DirectoryOffset {
			return fmt.Errorf("%w: %s payload [%d,%d) outside data area", errs.ErrInvalidDirectory, e.Path, e.Offset, end)
		}
		if _, dup := r.byPath[e.Path]; dup {
			return fmt.Errorf("%w: duplicate path %s", errs.ErrInvalidDirectory, e.Path)
		}
		r.byPath[e.Path] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	if off != len(dir) {
		return fmt.Errorf("%w: %d trailing directory bytes", errs.ErrInvalidDirectory, len(dir)-off)
	}

	return nil
}

// IsContainer reports whether filename starts with the container signature.
// It reads only the first eight bytes.
func IsContainer(filename string) (bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return false, fsutil.WrapOpenError(filename, err)
	}
	defer f.Close()

	head := make([]byte, len(section.Signature))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return section.HasSignature(head), nil
}
