package matlib

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/internal/options"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
)

// Library is a collection of materials keyed by name.
//
// Alongside the materials it keeps three derived indexes: the sorted list of
// names, the set of nuclides used by any composition and the material number
// owned by each entry. Every mutation keeps them consistent with the stored
// materials.
//
// Note: Library is NOT thread-safe.
type Library struct {
	materials map[string]*material.Material
	keylist   []string
	nucSet    map[nucid.ID]struct{}
	numbers   map[int]string // Material number → owning name

	logger zerolog.Logger
}

// New creates an empty library.
func New(opts ...Option) (*Library, error) {
	l := &Library{
		materials: make(map[string]*material.Material),
		keylist:   make([]string, 0),
		nucSet:    make(map[nucid.ID]struct{}),
		numbers:   make(map[int]string),
		logger:    zerolog.Nop(),
	}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Len returns the number of materials.
func (l *Library) Len() int {
	return len(l.materials)
}

// Keylist returns the material names in ascending order.
func (l *Library) Keylist() []string {
	return slices.Clone(l.keylist)
}

// Nuclides returns every nuclide used by a stored composition, ascending.
func (l *Library) Nuclides() []nucid.ID {
	return slices.Sorted(maps.Keys(l.nucSet))
}

// MaterialNumbers returns the material numbers in use, ascending.
func (l *Library) MaterialNumbers() []int {
	return slices.Sorted(maps.Keys(l.numbers))
}

// Materials returns a copy of the name to material mapping. The materials
// themselves are shared with the library.
func (l *Library) Materials() map[string]*material.Material {
	return maps.Clone(l.materials)
}

// All iterates over the stored materials in name order. The materials are
// shared with the library.
func (l *Library) All() iter.Seq2[string, *material.Material] {
	return func(yield func(string, *material.Material) bool) {
		for _, name := range l.keylist {
			if !yield(name, l.materials[name]) {
				return
			}
		}
	}
}

// AddMaterial stores a copy of mat.
//
// A name or material number carried in the metadata is ingested first. A
// missing number is allocated, as is a number owned by another material; a
// missing name is derived from the number. An existing material of the same
// name is replaced.
//
// A number above material.MaxNumber is errs.ErrInvalidMaterialNumber and an
// invalid nuclide in the composition is errs.ErrInvalidNuclide; neither
// could be written to a file.
func (l *Library) AddMaterial(mat *material.Material) error {
	if mat == nil {
		return errs.ErrInvalidMaterial
	}

	return l.add(mat.Clone())
}

// AddNamedMaterial stores a copy of mat under name, overriding the name mat
// carries.
func (l *Library) AddNamedMaterial(name string, mat *material.Material) error {
	if mat == nil {
		return errs.ErrInvalidMaterial
	}
	c := mat.Clone()
	c.Name = name

	return l.add(c)
}

// AddSharedMaterial stores mat itself under name. The library and the caller
// share the material from then on; the library sets its Name and, when
// needed, its Number.
//
// A material already stored under another name is errs.ErrIdentifierConflict,
// as one material cannot carry two names. Nothing is changed on error.
func (l *Library) AddSharedMaterial(name string, mat *material.Material) error {
	if mat == nil {
		return errs.ErrInvalidMaterial
	}
	for key, stored := range l.materials {
		if stored == mat && key != name {
			return fmt.Errorf("%w: material stored as %q cannot be shared as %q", errs.ErrIdentifierConflict, key, name)
		}
	}
	if err := mat.Validate(); err != nil {
		return err
	}
	mat.Name = name

	return l.add(mat)
}

func (l *Library) add(mat *material.Material) error {
	if err := mat.IngestNumber(); err != nil {
		return err
	}
	if err := mat.Validate(); err != nil {
		return fmt.Errorf("material %q: %w", mat.Name, err)
	}

	prev := mat.Number
	name, err := l.EnsureMaterialNameAndNumber(mat)
	if err != nil {
		return err
	}
	if prev != material.NoNumber && prev != mat.Number {
		l.logger.Info().Str("name", name).Int("requested", prev).Int("assigned", mat.Number).
			Msg("material number in use, reassigned")
	}

	_, replaced := l.materials[name]
	if replaced {
		l.releaseNumbers(name)
	} else {
		i, _ := slices.BinarySearch(l.keylist, name)
		l.keylist = slices.Insert(l.keylist, i, name)
	}

	l.materials[name] = mat
	l.numbers[mat.Number] = name

	if replaced {
		l.rebuildNuclist()
	} else {
		l.appendToNuclist(mat)
	}

	l.logger.Debug().Str("name", name).Int("number", mat.Number).Bool("replaced", replaced).
		Int("nuclides", len(mat.Comp)).Msg("material added")

	return nil
}

// DelMaterial removes the named material. Removing an absent name is a no-op.
func (l *Library) DelMaterial(name string) {
	if _, ok := l.materials[name]; !ok {
		return
	}

	delete(l.materials, name)
	if i, found := slices.BinarySearch(l.keylist, name); found {
		l.keylist = slices.Delete(l.keylist, i, i+1)
	}
	l.releaseNumbers(name)
	l.rebuildNuclist()

	l.logger.Debug().Str("name", name).Msg("material deleted")
}

// GetMaterial returns a copy of the named material.
func (l *Library) GetMaterial(name string) (material.Material, error) {
	mat, err := l.GetMaterialPtr(name)
	if err != nil {
		return material.Material{}, err
	}

	return *mat.Clone(), nil
}

// GetMaterialPtr returns the named material itself. Changes made through the
// pointer to anything but the composition and metadata values bypass the
// library's indexes.
func (l *Library) GetMaterialPtr(name string) (*material.Material, error) {
	mat, ok := l.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrMaterialNotFound, name)
	}

	return mat, nil
}

// Merge adds a copy of every material of other, in name order. Materials of
// other replace same-named materials of l. other is not modified.
func (l *Library) Merge(other *Library) error {
	if other == nil || other == l {
		return nil
	}

	for _, name := range other.keylist {
		if err := l.AddNamedMaterial(name, other.materials[name]); err != nil {
			return fmt.Errorf("merging %q: %w", name, err)
		}
	}

	l.logger.Info().Int("merged", other.Len()).Int("total", l.Len()).Msg("libraries merged")

	return nil
}

func (l *Library) releaseNumbers(name string) {
	maps.DeleteFunc(l.numbers, func(_ int, owner string) bool {
		return owner == name
	})
}
