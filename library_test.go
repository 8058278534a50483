package matlib

import (
	"bytes"
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
)

func newMat(name string, number int, comp map[nucid.ID]float64) *material.Material {
	m := material.FromComp(comp)
	m.Name = name
	m.Number = number

	return m
}

func newLibrary(t *testing.T, mats ...*material.Material) *Library {
	t.Helper()

	lib, err := New()
	require.NoError(t, err)
	for _, m := range mats {
		require.NoError(t, lib.AddMaterial(m))
	}

	return lib
}

func water(number int) *material.Material {
	return newMat("water", number, map[nucid.ID]float64{nucid.H1: 0.11, nucid.O16: 0.89})
}

func air(number int) *material.Material {
	return newMat("air", number, map[nucid.ID]float64{nucid.N14: 0.78, nucid.O16: 0.22})
}

// unionOf returns the ascending union of the compositions' nuclides.
func unionOf(lib *Library) []nucid.ID {
	set := make(map[nucid.ID]struct{})
	for _, m := range lib.All() {
		for n := range m.Comp {
			set[n] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(set))
}

// ==============================================================================
// Store
// ==============================================================================

func TestNew_Empty(t *testing.T) {
	lib := newLibrary(t)

	require.Equal(t, 0, lib.Len())
	require.Empty(t, lib.Keylist())
	require.Empty(t, lib.Nuclides())
	require.Empty(t, lib.MaterialNumbers())
	require.Empty(t, lib.Materials())
}

func TestAddMaterial(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))

	require.Equal(t, 2, lib.Len())
	require.Equal(t, []string{"air", "water"}, lib.Keylist())
	require.Equal(t, []nucid.ID{nucid.H1, nucid.N14, nucid.O16}, lib.Nuclides())
	require.Equal(t, []int{1, 2}, lib.MaterialNumbers())

	got, err := lib.GetMaterial("water")
	require.NoError(t, err)
	require.Equal(t, *water(1), got)
}

func TestAddMaterial_StoresCopy(t *testing.T) {
	lib := newLibrary(t)
	m := water(1)
	require.NoError(t, lib.AddMaterial(m))

	m.Comp[nucid.U235] = 1
	m.Name = "renamed"

	got, err := lib.GetMaterialPtr("water")
	require.NoError(t, err)
	require.NotSame(t, m, got)
	require.NotContains(t, got.Comp, nucid.U235)
	require.Equal(t, []nucid.ID{nucid.H1, nucid.O16}, lib.Nuclides())
}

func TestAddMaterial_Nil(t *testing.T) {
	lib := newLibrary(t)

	require.ErrorIs(t, lib.AddMaterial(nil), errs.ErrInvalidMaterial)
	require.ErrorIs(t, lib.AddNamedMaterial("x", nil), errs.ErrInvalidMaterial)
	require.ErrorIs(t, lib.AddSharedMaterial("x", nil), errs.ErrInvalidMaterial)
	require.Equal(t, 0, lib.Len())
}

func TestAddMaterial_LastWriteWins(t *testing.T) {
	lib := newLibrary(t)

	for i, frac := range []float64{0.1, 0.2, 0.3} {
		m := newMat("fuel", material.NoNumber, map[nucid.ID]float64{nucid.U235: frac, nucid.U238: 1 - frac})
		require.NoError(t, lib.AddMaterial(m), "add %d", i)
	}

	require.Equal(t, []string{"fuel"}, lib.Keylist())
	got, err := lib.GetMaterial("fuel")
	require.NoError(t, err)
	require.Equal(t, 0.3, got.Comp[nucid.U235])
	require.Equal(t, 0, got.Number)
	require.Equal(t, []int{0}, lib.MaterialNumbers())
}

func TestAddMaterial_ReplaceShrinksIndexes(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))

	fuel := newMat("water", 5, map[nucid.ID]float64{nucid.U235: 1})
	require.NoError(t, lib.AddMaterial(fuel))

	require.Equal(t, []nucid.ID{nucid.N14, nucid.O16, nucid.U235}, lib.Nuclides())
	require.Equal(t, []int{2, 5}, lib.MaterialNumbers())
}

func TestAddMaterial_IngestsNumber(t *testing.T) {
	lib := newLibrary(t)

	m := material.FromComp(map[nucid.ID]float64{nucid.Fe56: 1})
	m.Metadata = map[string]any{"mat_number": "7", "name": "steel"}
	require.NoError(t, lib.AddMaterial(m))

	got, err := lib.GetMaterial("steel")
	require.NoError(t, err)
	require.Equal(t, 7, got.Number)
	require.Nil(t, got.Metadata)

	// the caller's material is left alone
	require.Equal(t, material.NoNumber, m.Number)
	require.Contains(t, m.Metadata, "mat_number")
}

func TestAddMaterial_InvalidNumber(t *testing.T) {
	lib := newLibrary(t)

	m := newMat("steel", material.NoNumber, nil)
	m.Metadata = map[string]any{"mat_number": "seven"}

	require.ErrorIs(t, lib.AddMaterial(m), errs.ErrInvalidMaterialNumber)
	require.ErrorIs(t, lib.AddMaterial(m), errs.ErrMalformedData)
	require.Equal(t, 0, lib.Len())
}

func TestAddMaterial_NumberBound(t *testing.T) {
	lib := newLibrary(t)

	require.NoError(t, lib.AddMaterial(newMat("top", material.MaxNumber, map[nucid.ID]float64{nucid.H1: 1})))

	err := lib.AddMaterial(newMat("big", 3_000_000_000, map[nucid.ID]float64{nucid.H1: 1}))
	require.ErrorIs(t, err, errs.ErrInvalidMaterialNumber)

	m := newMat("meta", material.NoNumber, nil)
	m.Metadata = map[string]any{"mat_number": "3000000000"}
	require.ErrorIs(t, lib.AddMaterial(m), errs.ErrInvalidMaterialNumber)

	require.Equal(t, []string{"top"}, lib.Keylist())
	require.Equal(t, []int{material.MaxNumber}, lib.MaterialNumbers())
}

func TestAddMaterial_InvalidNuclide(t *testing.T) {
	lib := newLibrary(t, water(1))

	m := newMat("bad", 2, map[nucid.ID]float64{nucid.H1: 0.5, nucid.ID(20010000): 0.5})
	err := lib.AddMaterial(m)
	require.ErrorIs(t, err, errs.ErrInvalidNuclide)
	require.ErrorIs(t, err, errs.ErrMalformedData)

	require.Equal(t, []string{"water"}, lib.Keylist())
	require.Equal(t, []nucid.ID{nucid.H1, nucid.O16}, lib.Nuclides())
	require.Equal(t, []int{1}, lib.MaterialNumbers())
}

func TestAddNamedMaterial(t *testing.T) {
	lib := newLibrary(t)

	m := water(1)
	require.NoError(t, lib.AddNamedMaterial("coolant", m))

	require.Equal(t, []string{"coolant"}, lib.Keylist())
	got, err := lib.GetMaterial("coolant")
	require.NoError(t, err)
	require.Equal(t, "coolant", got.Name)
	require.Equal(t, "water", m.Name)
}

func TestAddSharedMaterial(t *testing.T) {
	lib := newLibrary(t)

	m := water(material.NoNumber)
	require.NoError(t, lib.AddSharedMaterial("coolant", m))
	require.Equal(t, "coolant", m.Name)
	require.Equal(t, 0, m.Number)

	ptr, err := lib.GetMaterialPtr("coolant")
	require.NoError(t, err)
	require.Same(t, m, ptr)

	m.Density = 0.7
	got, err := lib.GetMaterial("coolant")
	require.NoError(t, err)
	require.Equal(t, 0.7, got.Density)
}

func TestAddSharedMaterial_AlreadyStored(t *testing.T) {
	lib := newLibrary(t)

	m := water(material.NoNumber)
	require.NoError(t, lib.AddSharedMaterial("a", m))

	err := lib.AddSharedMaterial("b", m)
	require.ErrorIs(t, err, errs.ErrIdentifierConflict)
	require.Equal(t, "a", m.Name)
	require.Equal(t, 0, m.Number)
	require.Equal(t, []string{"a"}, lib.Keylist())
	require.Equal(t, []int{0}, lib.MaterialNumbers())

	// re-adding under its own name replaces it in place
	m.Density = 0.9
	require.NoError(t, lib.AddSharedMaterial("a", m))
	require.Equal(t, []string{"a"}, lib.Keylist())
	require.Equal(t, []int{0}, lib.MaterialNumbers())

	// the library stays writable
	require.NoError(t, lib.WriteContainer(filepath.Join(t.TempDir(), "lib.mtl"), ""))
}

func TestAddSharedMaterial_Invalid(t *testing.T) {
	lib := newLibrary(t)

	m := newMat("steel", 3_000_000_000, nil)
	require.ErrorIs(t, lib.AddSharedMaterial("coolant", m), errs.ErrInvalidMaterialNumber)
	require.Equal(t, "steel", m.Name)
	require.Equal(t, 0, lib.Len())
}

func TestGetMaterial_ReturnsCopy(t *testing.T) {
	lib := newLibrary(t, water(1))

	got, err := lib.GetMaterial("water")
	require.NoError(t, err)
	got.Comp[nucid.H1] = 1

	again, err := lib.GetMaterial("water")
	require.NoError(t, err)
	require.Equal(t, 0.11, again.Comp[nucid.H1])
}

func TestGetMaterial_NotFound(t *testing.T) {
	lib := newLibrary(t, water(1))

	_, err := lib.GetMaterial("nonexistent")
	require.ErrorIs(t, err, errs.ErrMaterialNotFound)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = lib.GetMaterialPtr("nonexistent")
	require.ErrorIs(t, err, errs.ErrMaterialNotFound)
}

func TestDelMaterial(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))

	lib.DelMaterial("water")

	require.Equal(t, []string{"air"}, lib.Keylist())
	require.Equal(t, []nucid.ID{nucid.N14, nucid.O16}, lib.Nuclides())
	require.Equal(t, []int{2}, lib.MaterialNumbers())

	_, err := lib.GetMaterial("water")
	require.ErrorIs(t, err, errs.ErrMaterialNotFound)

	// the released number is reused
	m := newMat("steel", material.NoNumber, map[nucid.ID]float64{nucid.Fe56: 1})
	n, err := lib.EnsureMaterialNumber(m)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	m.Number = 1
	n, err = lib.EnsureMaterialNumber(m)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDelMaterial_Absent(t *testing.T) {
	lib := newLibrary(t, water(1))

	lib.DelMaterial("nonexistent")

	require.Equal(t, []string{"water"}, lib.Keylist())
	require.Equal(t, []int{1}, lib.MaterialNumbers())
}

func TestAll_StopsEarly(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))

	var names []string
	for name := range lib.All() {
		names = append(names, name)
		break
	}
	require.Equal(t, []string{"air"}, names)
}

func TestNuclides_CompleteAfterEveryAdd(t *testing.T) {
	lib := newLibrary(t)

	mats := []*material.Material{
		water(1),
		air(2),
		newMat("fuel", 3, map[nucid.ID]float64{nucid.U235: 0.05, nucid.U238: 0.95}),
		newMat("water", 4, map[nucid.ID]float64{nucid.H2: 0.2, nucid.O16: 0.8}),
		newMat("void", 5, nil),
		newMat("air", 6, map[nucid.ID]float64{nucid.N14: 1}),
	}
	for _, m := range mats {
		require.NoError(t, lib.AddMaterial(m))
		require.Equal(t, unionOf(lib), lib.Nuclides(), "after adding %q", m.Name)
	}

	lib.DelMaterial("fuel")
	require.Equal(t, unionOf(lib), lib.Nuclides())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	lib, err := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	require.NoError(t, lib.AddMaterial(water(1)))
	require.NoError(t, lib.AddMaterial(newMat("ice", 1, nil)))

	require.Contains(t, buf.String(), `"message":"material added"`)
	require.Contains(t, buf.String(), `"message":"material number in use, reassigned"`)
}

// ==============================================================================
// Merge
// ==============================================================================

func TestMerge_Scenario(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))
	other := newLibrary(t, newMat("water", 3, map[nucid.ID]float64{nucid.H1: 0.12, nucid.O16: 0.88}))

	require.NoError(t, lib.Merge(other))

	require.Equal(t, 2, lib.Len())
	got, err := lib.GetMaterial("water")
	require.NoError(t, err)
	require.Equal(t, 3, got.Number)
	require.Equal(t, map[nucid.ID]float64{nucid.H1: 0.12, nucid.O16: 0.88}, got.Comp)
	require.Equal(t, []nucid.ID{nucid.H1, nucid.N14, nucid.O16}, lib.Nuclides())
	require.Equal(t, []int{2, 3}, lib.MaterialNumbers())
}

func TestMerge_Idempotent(t *testing.T) {
	lib := newLibrary(t, water(1), air(2))
	other := newLibrary(t,
		newMat("water", 3, map[nucid.ID]float64{nucid.H1: 0.12, nucid.O16: 0.88}),
		newMat("steel", 2, map[nucid.ID]float64{nucid.Fe56: 1}),
		newMat("", material.NoNumber, map[nucid.ID]float64{nucid.C12: 1}),
	)

	require.NoError(t, lib.Merge(other))
	keys, nucs, nums := lib.Keylist(), lib.Nuclides(), lib.MaterialNumbers()

	require.NoError(t, lib.Merge(other))
	require.Equal(t, keys, lib.Keylist())
	require.Equal(t, nucs, lib.Nuclides())
	require.Equal(t, nums, lib.MaterialNumbers())
}

func TestMerge_SourceUnchanged(t *testing.T) {
	lib := newLibrary(t, newMat("steel", 3, map[nucid.ID]float64{nucid.Fe56: 1}))
	other := newLibrary(t, water(3))

	require.NoError(t, lib.Merge(other))

	// number 3 belongs to steel, so the merged water gets another one
	got, err := lib.GetMaterial("water")
	require.NoError(t, err)
	require.Equal(t, 0, got.Number)

	src, err := other.GetMaterialPtr("water")
	require.NoError(t, err)
	require.Equal(t, 3, src.Number)
	require.Equal(t, []string{"water"}, other.Keylist())

	dst, err := lib.GetMaterialPtr("water")
	require.NoError(t, err)
	require.NotSame(t, src, dst)
}

func TestMerge_NilAndSelf(t *testing.T) {
	lib := newLibrary(t, water(1))

	require.NoError(t, lib.Merge(nil))
	require.NoError(t, lib.Merge(lib))
	require.Equal(t, []string{"water"}, lib.Keylist())
}
