package matlib

import (
	"fmt"
	"strconv"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/material"
)

// DerivedNamePrefix prefixes the names derived from material numbers.
const DerivedNamePrefix = "mat_"

// EnsureMaterialNumber makes sure mat carries a material number the library
// can store it under, and returns it.
//
// A number given in the metadata is ingested first. An existing number is
// kept unless another material owns it; otherwise the smallest free number
// is written to mat.Number. The library itself is not modified. A number
// above material.MaxNumber is errs.ErrInvalidMaterialNumber.
func (l *Library) EnsureMaterialNumber(mat *material.Material) (int, error) {
	if mat == nil {
		return 0, errs.ErrInvalidMaterial
	}
	if err := mat.IngestNumber(); err != nil {
		return 0, err
	}
	if mat.Number > material.MaxNumber {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidMaterialNumber, mat.Number)
	}

	if mat.HasNumber() && l.numberAvailable(mat.Number, mat.Name) {
		return mat.Number, nil
	}

	mat.Number = l.nextNumber(mat.Name, 0)

	return mat.Number, nil
}

// EnsureMaterialNameAndNumber makes sure mat carries both a number and a
// name, and returns the name.
//
// An existing name is kept. Otherwise the name is derived from the number,
// e.g. "mat_7"; the number is moved on until the derived name is not used
// by a stored material either.
func (l *Library) EnsureMaterialNameAndNumber(mat *material.Material) (string, error) {
	if _, err := l.EnsureMaterialNumber(mat); err != nil {
		return "", err
	}

	if mat.Name == "" {
		for {
			name := derivedName(mat.Number)
			if _, taken := l.materials[name]; !taken {
				mat.Name = name
				break
			}
			mat.Number = l.nextNumber("", mat.Number+1)
		}
	}
	return mat.Name, nil
}

// numberAvailable reports whether n is unowned or owned by name.
func (l *Library) numberAvailable(n int, name string) bool {
	owner, ok := l.numbers[n]
	return !ok || (name != "" && owner == name)
}

// nextNumber returns the smallest number from start on that is available to
// name.
func (l *Library) nextNumber(name string, start int) int {
	n := start
	for !l.numberAvailable(n, name) {
		n++
	}

	return n
}

func derivedName(n int) string {
	return DerivedNamePrefix + strconv.Itoa(n)
}
