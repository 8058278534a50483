package matlib

import (
	"fmt"
	"path"
	"slices"

	"github.com/arloliu/matlib/container"
	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/internal/options"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
	"github.com/arloliu/matlib/table"
)

const (
	// DefaultDatapath is where materials are stored when no datapath is given.
	DefaultDatapath = "/materials"
	// NucpathName is the name of the nucpath dataset below a table's datapath.
	NucpathName = "nucid"
)

// NucpathFor returns the path of the nucpath bound to the table at datapath.
func NucpathFor(datapath string) string {
	return path.Join(datapath, NucpathName)
}

// FromContainer creates a library from the table at datapath of a container
// file.
func FromContainer(filename, datapath string, opts ...Option) (*Library, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := l.ReadContainer(filename, datapath); err != nil {
		return nil, err
	}

	return l, nil
}

// ReadContainer adds every material of the table at datapath of a container
// file. An empty datapath means DefaultDatapath.
//
// The rows are added in table order. When a row fails to decode, the rows
// before it stay added.
func (l *Library) ReadContainer(filename, datapath string) error {
	datapath, err := cleanDatapath(datapath)
	if err != nil {
		return err
	}

	r, err := container.Open(filename)
	if err != nil {
		return err
	}
	defer r.Close()

	rows, err := r.Rows(datapath)
	if err != nil {
		return err
	}
	if rows == 0 {
		l.logger.Debug().Str("file", filename).Str("datapath", datapath).Msg("empty material table")
		return nil
	}

	dec, err := openTable(r, datapath)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if dec.Len() != rows {
		return fmt.Errorf("%w: %s: directory says %d rows, table has %d", errs.ErrInvalidDirectory, datapath, rows, dec.Len())
	}

	for i := range dec.Len() {
		mat, err := dec.Row(i)
		if err != nil {
			return fmt.Errorf("%s: %s row %d: %w", filename, datapath, i, err)
		}
		if err := l.add(mat); err != nil {
			return fmt.Errorf("%s: %s row %d: %w", filename, datapath, i, err)
		}
	}

	l.logger.Info().Str("file", filename).Str("datapath", datapath).Int("rows", rows).Msg("read material table")

	return nil
}

// WriteContainer writes the library as a table at datapath of a container
// file, together with its nucpath at datapath/nucid. An empty datapath means
// DefaultDatapath. Other datasets of an existing file are kept.
//
// Rows are written in name order against the ascending nuclide order of the
// library, so equal libraries always produce identical files. The file is
// replaced atomically.
//
// In ModeAppend the rows already at datapath are kept in front of the new
// ones. Every nuclide of the library must then appear in the nucpath on disk
// (errs.ErrNucpathMismatch), and no name may already be present on disk
// (errs.ErrDuplicateName).
func (l *Library) WriteContainer(filename, datapath string, opts ...WriteOption) error {
	cfg := newWriteConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	datapath, err := cleanDatapath(datapath)
	if err != nil {
		return err
	}

	rows := make([]*material.Material, 0, l.Len())
	for _, mat := range l.All() {
		rows = append(rows, mat)
	}
	nuclides := l.Nuclides()

	err = container.Update(filename, func(w *container.Writer) error {
		if cfg.mode == ModeAppend {
			existing, order, err := existingTable(w, datapath)
			if err != nil {
				return err
			}
			if order != nil {
				if err := checkAppend(existing, order, rows, nuclides); err != nil {
					return err
				}
				rows = append(existing, rows...)
				nuclides = order
			}
		}

		enc, err := table.NewEncoder(nuclides, cfg.tableOptions()...)
		if err != nil {
			return err
		}
		for _, mat := range rows {
			if err := enc.AddMaterial(mat); err != nil {
				return err
			}
		}
		tbl, err := enc.Finish()
		if err != nil {
			return err
		}

		if err := w.Put(NucpathFor(datapath), format.KindNucpath, len(enc.Nuclides()), enc.Nucpath()); err != nil {
			return err
		}

		return w.Put(datapath, format.KindMaterialTable, enc.RowCount(), tbl)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	l.logger.Info().Str("file", filename).Str("datapath", datapath).Int("rows", len(rows)).
		Str("mode", cfg.mode.String()).Str("compression", cfg.compression.String()).Msg("wrote material table")

	return nil
}

// DropContainerTable removes the table at datapath of a container file
// together with every dataset below it, its nucpath included. An empty
// datapath means DefaultDatapath. A datapath holding nothing is
// errs.ErrDatapathNotFound and leaves the file untouched.
func DropContainerTable(filename, datapath string) error {
	datapath, err := cleanDatapath(datapath)
	if err != nil {
		return err
	}

	err = container.Update(filename, func(w *container.Writer) error {
		if !w.Remove(datapath) {
			return fmt.Errorf("%w: %s", errs.ErrDatapathNotFound, datapath)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	return nil
}

type datasetReader interface {
	Read(p string, kind format.DatasetKind) ([]byte, error)
}

func openTable(r datasetReader, datapath string) (*table.Decoder, error) {
	tbl, err := r.Read(datapath, format.KindMaterialTable)
	if err != nil {
		return nil, err
	}
	nucpath, err := r.Read(NucpathFor(datapath), format.KindNucpath)
	if err != nil {
		return nil, err
	}

	return table.NewDecoder(tbl, nucpath)
}

// writerDatasets adapts a container.Writer to datasetReader.
type writerDatasets struct {
	w *container.Writer
}

func (d writerDatasets) Read(p string, kind format.DatasetKind) ([]byte, error) {
	payload, got, ok := d.w.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatapathNotFound, p)
	}
	if got != kind {
		return nil, fmt.Errorf("%w: %s is %s, want %s", errs.ErrDatasetKindMismatch, p, got, kind)
	}

	return payload, nil
}

// existingTable decodes the table at datapath of w. A missing table yields a
// nil order.
func existingTable(w *container.Writer, datapath string) ([]*material.Material, []nucid.ID, error) {
	if _, _, ok := w.Get(datapath); !ok {
		return nil, nil, nil
	}

	dec, err := openTable(writerDatasets{w: w}, datapath)
	if err != nil {
		return nil, nil, err
	}
	mats, err := dec.Materials()
	if err != nil {
		return nil, nil, err
	}

	return mats, dec.Nuclides(), nil
}

func checkAppend(existing []*material.Material, order []nucid.ID, rows []*material.Material, nuclides []nucid.ID) error {
	for _, n := range nuclides {
		if _, found := slices.BinarySearch(order, n); !found {
			return fmt.Errorf("%w: %s is not in the nucpath on disk", errs.ErrNucpathMismatch, n)
		}
	}

	onDisk := make(map[string]struct{}, len(existing))
	for _, mat := range existing {
		onDisk[mat.Name] = struct{}{}
	}
	for _, mat := range rows {
		if _, dup := onDisk[mat.Name]; dup {
			return fmt.Errorf("%w: %q already on disk", errs.ErrDuplicateName, mat.Name)
		}
	}

	return nil
}

func cleanDatapath(datapath string) (string, error) {
	if datapath == "" {
		datapath = DefaultDatapath
	}

	return container.CleanPath(datapath)
}
