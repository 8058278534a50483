package container

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/internal/fsutil"
	"github.com/arloliu/matlib/internal/hash"
	"github.com/arloliu/matlib/section"
)

// FileMode is the permission of newly written container files.
const FileMode fs.FileMode = 0o644

type dataset struct {
	kind    format.DatasetKind
	rows    uint32
	payload []byte
}

// Writer collects datasets in memory and lays them out as a container.
//
// Datasets are written in path order with 8-byte aligned payloads, so equal
// dataset sets always produce identical bytes.
type Writer struct {
	datasets map[string]dataset
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{datasets: make(map[string]dataset)}
}

// Put adds or replaces the dataset at p.
func (w *Writer) Put(p string, kind format.DatasetKind, rows int, payload []byte) error {
	cleaned, err := CleanPath(p)
	if err != nil {
		return err
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %d for %s", errs.ErrInvalidDirectory, kind, cleaned)
	}
	if rows < 0 || int64(rows) > section.MaxTableOffset {
		return fmt.Errorf("%w: %d rows for %s", errs.ErrTooManyRows, rows, cleaned)
	}

	w.datasets[cleaned] = dataset{kind: kind, rows: uint32(rows), payload: payload} //nolint:gosec

	return nil
}

// Get returns the payload and kind of the dataset at p, if present.
func (w *Writer) Get(p string) ([]byte, format.DatasetKind, bool) {
	cleaned, err := CleanPath(p)
	if err != nil {
		return nil, 0, false
	}
	ds, ok := w.datasets[cleaned]

	return ds.payload, ds.kind, ok
}

// Remove deletes the dataset at p and every dataset below it. It reports
// whether anything was removed.
func (w *Writer) Remove(p string) bool {
	cleaned, err := CleanPath(p)
	if err != nil {
		return false
	}

	removed := false
	for key := range w.datasets {
		if key == cleaned || strings.HasPrefix(key, cleaned+"/") {
			delete(w.datasets, key)
			removed = true
		}
	}

	return removed
}

// Paths returns the dataset paths in sorted order.
func (w *Writer) Paths() []string {
	return slices.Sorted(maps.Keys(w.datasets))
}

// Bytes lays out the container.
func (w *Writer) Bytes() ([]byte, error) {
	paths := w.Paths()
	sb := section.NewSuperblock()
	sb.DatasetCount = uint32(len(paths)) //nolint:gosec

	size := section.SuperblockSize
	for _, p := range paths {
		size = align(size) + len(w.datasets[p].payload)
	}
	buf := make([]byte, section.SuperblockSize, align(size))

	dir := make([]byte, 0, len(paths)*(section.DatasetEntrySize+16))
	for _, p := range paths {
		ds := w.datasets[p]
		buf = pad(buf)
		entry := section.DatasetEntry{
			Kind:     ds.kind,
			Rows:     ds.rows,
			Offset:   uint64(len(buf)),
			Size:     uint64(len(ds.payload)),
			Checksum: hash.Checksum(ds.payload),
			Path:     p,
		}
		buf = append(buf, ds.payload...)

		var err error
		if dir, err = entry.AppendTo(dir); err != nil {
			return nil, err
		}
	}
	buf = pad(buf)

	if uint64(len(dir)) > section.MaxTableOffset {
		return nil, fmt.Errorf("%w: directory of %d bytes", errs.ErrInvalidDirectory, len(dir))
	}
	sb.DirectoryOffset = uint64(len(buf))
	sb.DirectorySize = uint32(len(dir)) //nolint:gosec
	buf = append(buf, dir...)
	copy(buf[:section.SuperblockSize], sb.Bytes())

	return buf, nil
}

// WriteFile atomically replaces filename with the laid-out container.
func (w *Writer) WriteFile(filename string) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(filename, data, FileMode)
}

// Update loads the datasets of filename (if it exists) into a Writer, calls
// fn, and atomically rewrites the file with the result. The original file is
// closed before fn runs and is left untouched when fn or the write fails.
func Update(filename string, fn func(w *Writer) error) error {
	w := NewWriter()
	if err := w.load(filename); err != nil {
		return err
	}
	if err := fn(w); err != nil {
		return err
	}

	return w.WriteFile(filename)
}

func (w *Writer) load(filename string) error {
	r, err := Open(filename)
	if errors.Is(err, errs.ErrFileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	defer r.Close()

	for _, e := range r.entries {
		payload, err := r.readPayload(e)
		if err != nil {
			return err
		}
		w.datasets[e.Path] = dataset{kind: e.Kind, rows: e.Rows, payload: payload}
	}

	return nil
}

func align(n int) int {
	return (n + section.DataAlignment - 1) &^ (section.DataAlignment - 1)
}

func pad(b []byte) []byte {
	for len(b)%section.DataAlignment != 0 {
		b = append(b, 0)
	}

	return b
}
