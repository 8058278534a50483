package matlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/matlib/container"
	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/format"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
	"github.com/arloliu/matlib/section"
)

func sampleLibrary(t *testing.T) *Library {
	t.Helper()

	w := water(1)
	w.Density = 1.0
	w.Mass = 18.015
	w.AtomsPerMolecule = 3
	w.Metadata = map[string]any{"phase": "liquid", "temp": 293.6}

	a := air(2)
	a.Density = 0.001205

	fuel := newMat("fuel", material.NoNumber, map[nucid.ID]float64{
		nucid.U235:  0.0311,
		nucid.U238:  0.8504,
		nucid.O16:   0.1185,
		nucid.Pu239: 1e-9,
	})

	return newLibrary(t, w, a, fuel, newMat("void", 9, nil))
}

func requireSameLibrary(t *testing.T, want, got *Library) {
	t.Helper()

	require.Equal(t, want.Keylist(), got.Keylist())
	require.Equal(t, want.Nuclides(), got.Nuclides())
	require.Equal(t, want.MaterialNumbers(), got.MaterialNumbers())
	for _, name := range want.Keylist() {
		w, err := want.GetMaterial(name)
		require.NoError(t, err)
		g, err := got.GetMaterial(name)
		require.NoError(t, err)
		require.Equal(t, w, g, "material %q", name)
	}
}

// ==============================================================================
// Round trip
// ==============================================================================

func TestContainer_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []WriteOption
	}{
		{name: "default"},
		{name: "zstd", opts: []WriteOption{WithCompression(format.CompressionZstd)}},
		{name: "s2", opts: []WriteOption{WithCompression(format.CompressionS2)}},
		{name: "lz4", opts: []WriteOption{WithCompression(format.CompressionLZ4)}},
		{name: "big endian", opts: []WriteOption{WithBigEndian(), WithCompression(format.CompressionZstd)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := sampleLibrary(t)
			filename := filepath.Join(t.TempDir(), "lib.mtl")

			require.NoError(t, lib.WriteContainer(filename, DefaultDatapath, tt.opts...))

			got, err := FromContainer(filename, DefaultDatapath)
			require.NoError(t, err)
			requireSameLibrary(t, lib, got)
		})
	}
}

func TestContainer_NumberBound(t *testing.T) {
	lib := newLibrary(t,
		newMat("top", material.MaxNumber, map[nucid.ID]float64{nucid.H1: 1}),
		newMat("zero", 0, map[nucid.ID]float64{nucid.O16: 1}),
	)
	filename := filepath.Join(t.TempDir(), "lib.mtl")

	require.NoError(t, lib.WriteContainer(filename, ""))

	got, err := FromContainer(filename, "")
	require.NoError(t, err)
	requireSameLibrary(t, lib, got)
	require.Equal(t, []int{0, material.MaxNumber}, got.MaterialNumbers())
}

func TestContainer_Layout(t *testing.T) {
	lib := sampleLibrary(t)
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, lib.WriteContainer(filename, ""))

	r, err := container.Open(filename)
	require.NoError(t, err)
	defer r.Close()

	datasets := r.Datasets()
	require.Len(t, datasets, 2)
	require.Equal(t, "/materials", datasets[0].Path)
	require.Equal(t, format.KindMaterialTable, datasets[0].Kind)
	require.Equal(t, 4, datasets[0].Rows)
	require.Equal(t, "/materials/nucid", datasets[1].Path)
	require.Equal(t, format.KindNucpath, datasets[1].Kind)
	require.Equal(t, len(lib.Nuclides()), datasets[1].Rows)
}

func TestContainer_Empty(t *testing.T) {
	lib := newLibrary(t)
	filename := filepath.Join(t.TempDir(), "empty.mtl")
	require.NoError(t, lib.WriteContainer(filename, "/empty"))

	got, err := FromContainer(filename, "/empty")
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
}

func TestContainer_Deterministic(t *testing.T) {
	mats := []*material.Material{
		water(1),
		air(2),
		newMat("fuel", 3, map[nucid.ID]float64{nucid.U235: 0.05, nucid.U238: 0.95}),
		newMat("steel", 4, map[nucid.ID]float64{nucid.Fe56: 0.98, nucid.C12: 0.02}),
	}
	reversed := []*material.Material{mats[3], mats[2], mats[1], mats[0]}

	dir := t.TempDir()
	first := filepath.Join(dir, "first.mtl")
	second := filepath.Join(dir, "second.mtl")
	require.NoError(t, newLibrary(t, mats...).WriteContainer(first, DefaultDatapath, WithCompression(format.CompressionZstd)))
	require.NoError(t, newLibrary(t, reversed...).WriteContainer(second, DefaultDatapath, WithCompression(format.CompressionZstd)))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestContainer_KeepsOtherDatapaths(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1)).WriteContainer(filename, "/reactor/coolant"))
	require.NoError(t, newLibrary(t, air(2)).WriteContainer(filename, "/reactor/atmosphere"))

	coolant, err := FromContainer(filename, "/reactor/coolant")
	require.NoError(t, err)
	require.Equal(t, []string{"water"}, coolant.Keylist())

	atmosphere, err := FromContainer(filename, "reactor/atmosphere/")
	require.NoError(t, err)
	require.Equal(t, []string{"air"}, atmosphere.Keylist())
}

func TestContainer_Overwrite(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1), air(2)).WriteContainer(filename, DefaultDatapath))
	require.NoError(t, newLibrary(t, air(7)).WriteContainer(filename, DefaultDatapath, WithWriteMode(ModeOverwrite)))

	got, err := FromContainer(filename, DefaultDatapath)
	require.NoError(t, err)
	require.Equal(t, []string{"air"}, got.Keylist())
	require.Equal(t, []int{7}, got.MaterialNumbers())
}

func TestReadContainer_AddsToLibrary(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1)).WriteContainer(filename, DefaultDatapath))

	lib := newLibrary(t, newMat("steel", 1, map[nucid.ID]float64{nucid.Fe56: 1}))
	require.NoError(t, lib.ReadContainer(filename, DefaultDatapath))

	require.Equal(t, []string{"steel", "water"}, lib.Keylist())
	got, err := lib.GetMaterial("water")
	require.NoError(t, err)
	require.Equal(t, 0, got.Number)
}

// ==============================================================================
// Append
// ==============================================================================

func TestContainer_Append(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1), air(2)).WriteContainer(filename, DefaultDatapath))

	oxygen := newMat("oxygen", 5, map[nucid.ID]float64{nucid.O16: 1})
	require.NoError(t, newLibrary(t, oxygen).WriteContainer(filename, DefaultDatapath, WithWriteMode(ModeAppend)))

	got, err := FromContainer(filename, DefaultDatapath)
	require.NoError(t, err)
	require.Equal(t, []string{"air", "oxygen", "water"}, got.Keylist())
	require.Equal(t, []int{1, 2, 5}, got.MaterialNumbers())
	require.Equal(t, []nucid.ID{nucid.H1, nucid.N14, nucid.O16}, got.Nuclides())
}

func TestContainer_AppendToMissingDatapath(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1)).WriteContainer(filename, DefaultDatapath, WithWriteMode(ModeAppend)))

	got, err := FromContainer(filename, DefaultDatapath)
	require.NoError(t, err)
	require.Equal(t, []string{"water"}, got.Keylist())
}

func TestContainer_AppendErrors(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1), air(2)).WriteContainer(filename, DefaultDatapath))
	before, err := os.ReadFile(filename)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mat     *material.Material
		wantErr error
	}{
		{
			name:    "new nuclide",
			mat:     newMat("steel", 5, map[nucid.ID]float64{nucid.Fe56: 1}),
			wantErr: errs.ErrNucpathMismatch,
		},
		{
			name:    "duplicate name",
			mat:     newMat("water", 5, map[nucid.ID]float64{nucid.H1: 1}),
			wantErr: errs.ErrDuplicateName,
		},
		{
			name:    "number on disk",
			mat:     newMat("oxygen", 2, map[nucid.ID]float64{nucid.O16: 1}),
			wantErr: errs.ErrNumberCollision,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newLibrary(t, tt.mat).WriteContainer(filename, DefaultDatapath, WithWriteMode(ModeAppend))
			require.ErrorIs(t, err, tt.wantErr)

			after, err := os.ReadFile(filename)
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}
}

// ==============================================================================
// Errors
// ==============================================================================

func TestDropContainerTable(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	lib := sampleLibrary(t)
	require.NoError(t, lib.WriteContainer(filename, ""))
	require.NoError(t, lib.WriteContainer(filename, "/backup"))

	require.NoError(t, DropContainerTable(filename, ""))

	_, err := FromContainer(filename, "")
	require.ErrorIs(t, err, errs.ErrDatapathNotFound)
	got, err := FromContainer(filename, "/backup")
	require.NoError(t, err)
	requireSameLibrary(t, lib, got)

	before, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.ErrorIs(t, DropContainerTable(filename, ""), errs.ErrDatapathNotFound)
	after, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestWriteContainer_InvalidOptions(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	lib := sampleLibrary(t)

	require.ErrorIs(t, lib.WriteContainer(filename, DefaultDatapath, WithCompression(format.CompressionType(99))), errs.ErrInvalidCompression)
	require.Error(t, lib.WriteContainer(filename, DefaultDatapath, WithWriteMode(WriteMode(9))))
	require.ErrorIs(t, lib.WriteContainer(filename, "/"), errs.ErrInvalidDatapath)
	require.NoFileExists(t, filename)
}

func TestReadContainer_Errors(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "lib.mtl")
	require.NoError(t, sampleLibrary(t).WriteContainer(filename, DefaultDatapath))

	_, err := FromContainer(filepath.Join(dir, "missing.mtl"), DefaultDatapath)
	require.ErrorIs(t, err, errs.ErrFileNotFound)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = FromContainer(filename, "/elsewhere")
	require.ErrorIs(t, err, errs.ErrDatapathNotFound)

	// the nucpath is not a material table
	_, err = FromContainer(filename, NucpathFor(DefaultDatapath))
	require.ErrorIs(t, err, errs.ErrDatasetKindMismatch)

	notContainer := filepath.Join(dir, "lib.json")
	require.NoError(t, os.WriteFile(notContainer, []byte("[]"), 0o600))
	_, err = FromContainer(notContainer, DefaultDatapath)
	require.ErrorIs(t, err, errs.ErrMalformedData)
}

func TestReadContainer_SwappedNucpath(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, newLibrary(t, water(1)).WriteContainer(filename, "/a"))
	require.NoError(t, newLibrary(t, air(2)).WriteContainer(filename, "/b"))

	err := container.Update(filename, func(w *container.Writer) error {
		nucpath, _, _ := w.Get("/b/nucid")
		return w.Put("/a/nucid", format.KindNucpath, 2, nucpath)
	})
	require.NoError(t, err)

	_, err = FromContainer(filename, "/a")
	require.ErrorIs(t, err, errs.ErrNucpathMismatch)
}

func TestReadContainer_Corrupt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lib.mtl")
	require.NoError(t, sampleLibrary(t).WriteContainer(filename, DefaultDatapath))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	// the table is the first payload, right after the superblock
	data[section.SuperblockSize+section.TableHeaderSize] ^= 0xFF
	require.NoError(t, os.WriteFile(filename, data, 0o600))

	_, err = FromContainer(filename, DefaultDatapath)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	require.ErrorIs(t, err, errs.ErrMalformedData)
}
