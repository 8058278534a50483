package matlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/material"
	"github.com/arloliu/matlib/nucid"
)

func TestEnsureMaterialNumber_SmallestFree(t *testing.T) {
	lib := newLibrary(t)

	first := newMat("a", material.NoNumber, nil)
	n, err := lib.EnsureMaterialNumber(first)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.NoError(t, lib.AddMaterial(first))

	second := newMat("b", material.NoNumber, nil)
	n, err = lib.EnsureMaterialNumber(second)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, second.Number)
}

func TestEnsureMaterialNumber_DoesNotRegister(t *testing.T) {
	lib := newLibrary(t)

	m := newMat("a", material.NoNumber, nil)
	_, err := lib.EnsureMaterialNumber(m)
	require.NoError(t, err)

	require.Empty(t, lib.MaterialNumbers())
}

func TestEnsureMaterialNumber_Collision(t *testing.T) {
	lib := newLibrary(t, newMat("a", 0, nil), newMat("b", 1, nil), newMat("c", 3, nil))

	tests := []struct {
		name string
		mat  *material.Material
		want int
	}{
		{name: "free number kept", mat: newMat("d", 7, nil), want: 7},
		{name: "owned by another", mat: newMat("d", 1, nil), want: 2},
		{name: "owned by itself", mat: newMat("c", 3, nil), want: 3},
		{name: "unnamed on owned", mat: newMat("", 0, nil), want: 2},
		{name: "missing", mat: newMat("d", material.NoNumber, nil), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := lib.EnsureMaterialNumber(tt.mat)
			require.NoError(t, err)
			require.Equal(t, tt.want, n)
			require.Equal(t, tt.want, tt.mat.Number)
		})
	}
}

func TestEnsureMaterialNumber_FromMetadata(t *testing.T) {
	lib := newLibrary(t, newMat("a", 4, nil))

	tests := []struct {
		name string
		raw  any
		want int
	}{
		{name: "string", raw: "12", want: 12},
		{name: "padded string", raw: " 9 ", want: 9},
		{name: "float", raw: 5.0, want: 5},
		{name: "int", raw: 6, want: 6},
		{name: "owned", raw: "4", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMat("b", material.NoNumber, nil)
			m.Metadata = map[string]any{"mat_number": tt.raw}

			n, err := lib.EnsureMaterialNumber(m)
			require.NoError(t, err)
			require.Equal(t, tt.want, n)
			require.Nil(t, m.Metadata)
		})
	}

	for _, raw := range []any{"abc", "-1", 1.5, -2.0, true} {
		m := newMat("b", material.NoNumber, nil)
		m.Metadata = map[string]any{"mat_number": raw}
		_, err := lib.EnsureMaterialNumber(m)
		require.ErrorIs(t, err, errs.ErrInvalidMaterialNumber, "raw %v", raw)
	}

	_, err := lib.EnsureMaterialNumber(nil)
	require.ErrorIs(t, err, errs.ErrInvalidMaterial)
}

func TestEnsureMaterialNameAndNumber(t *testing.T) {
	lib := newLibrary(t)

	m := newMat("", material.NoNumber, map[nucid.ID]float64{nucid.H1: 1})
	name, err := lib.EnsureMaterialNameAndNumber(m)
	require.NoError(t, err)
	require.Equal(t, "mat_0", name)
	require.Equal(t, "mat_0", m.Name)
	require.NoError(t, lib.AddMaterial(m))

	named := newMat("water", material.NoNumber, nil)
	name, err = lib.EnsureMaterialNameAndNumber(named)
	require.NoError(t, err)
	require.Equal(t, "water", name)
	require.Equal(t, 1, named.Number)
}

func TestEnsureMaterialNameAndNumber_DerivedNameTaken(t *testing.T) {
	// "mat_1" is a stored name but number 1 is free
	lib := newLibrary(t, newMat("", material.NoNumber, nil), newMat("mat_1", 5, nil))
	require.Equal(t, []string{"mat_0", "mat_1"}, lib.Keylist())

	m := newMat("", material.NoNumber, nil)
	name, err := lib.EnsureMaterialNameAndNumber(m)
	require.NoError(t, err)
	require.Equal(t, "mat_2", name)
	require.Equal(t, 2, m.Number)
}

func TestAddMaterial_Unnamed(t *testing.T) {
	lib := newLibrary(t,
		newMat("", material.NoNumber, nil),
		newMat("", material.NoNumber, nil),
		newMat("", 10, nil),
	)

	require.Equal(t, []string{"mat_0", "mat_1", "mat_10"}, lib.Keylist())
	require.Equal(t, []int{0, 1, 10}, lib.MaterialNumbers())
}
