// Package material provides the Material record stored by a library: an
// identity (name and number), a nuclide composition, a few physical scalars
// and free-form metadata.
package material

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/nucid"
)

const (
	// NoNumber marks a material without a material number.
	NoNumber = -1
	// MaxNumber is the largest material number both file formats can carry.
	MaxNumber = math.MaxInt32
	// Unset is the value of a physical scalar that was never set.
	Unset = -1.0

	// NumberKey is the metadata key that may carry a material number
	// given as a string or a number.
	NumberKey = "mat_number"
	// NameKey is the metadata key that may carry a material name.
	NameKey = "name"
)

// Material is a nuclide composition with identity and metadata.
//
// Comp maps nuclides to mass (or atom) fractions; it is stored as given and
// never normalized implicitly.
type Material struct {
	Name             string
	Number           int
	Comp             map[nucid.ID]float64
	Mass             float64
	Density          float64
	AtomsPerMolecule float64
	Metadata         map[string]any
}

// New returns an empty material with no name, no number and unset scalars.
func New() *Material {
	return &Material{
		Number:           NoNumber,
		Comp:             make(map[nucid.ID]float64),
		Mass:             Unset,
		Density:          Unset,
		AtomsPerMolecule: Unset,
	}
}

// FromComp returns a new material holding a copy of comp.
func FromComp(comp map[nucid.ID]float64) *Material {
	m := New()
	maps.Copy(m.Comp, comp)

	return m
}

// HasNumber reports whether the material carries a material number.
func (m *Material) HasNumber() bool {
	return m.Number >= 0
}

// Clone returns a deep copy.
func (m *Material) Clone() *Material {
	c := *m
	c.Comp = maps.Clone(m.Comp)
	if c.Comp == nil {
		c.Comp = make(map[nucid.ID]float64)
	}
	c.Metadata = cloneMetadata(m.Metadata)

	return &c
}

// Nuclides returns the nuclides of the composition in ascending order.
func (m *Material) Nuclides() []nucid.ID {
	return slices.Sorted(maps.Keys(m.Comp))
}

// ElementFraction returns the summed fraction of every nuclide with atomic
// number z.
func (m *Material) ElementFraction(z int) float64 {
	var sum float64
	for _, n := range m.Nuclides() {
		if n.Z() == z {
			sum += m.Comp[n]
		}
	}

	return sum
}

// Normalize scales the composition so fractions sum to one. A composition
// summing to zero is left untouched.
func (m *Material) Normalize() {
	var sum float64
	for _, n := range m.Nuclides() {
		sum += m.Comp[n]
	}
	if sum == 0 {
		return
	}
	for n, f := range m.Comp {
		m.Comp[n] = f / sum
	}
}

// SetMetadata stores a canonicalized metadata value.
func (m *Material) SetMetadata(key string, value any) error {
	v, err := canonicalValue(value)
	if err != nil {
		return fmt.Errorf("%w: key %q", err, key)
	}
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = v

	return nil
}

// Validate checks that the material number is at most MaxNumber and that
// every nuclide of the composition is valid.
func (m *Material) Validate() error {
	if m.Number > MaxNumber {
		return fmt.Errorf("%w: %d", errs.ErrInvalidMaterialNumber, m.Number)
	}
	for n := range m.Comp {
		if !n.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidNuclide, int(n))
		}
	}

	return nil
}

// IngestNumber lifts identity carried in metadata into the typed fields.
//
// A "mat_number" entry, string or number, becomes Number unless the material
// already has one. A "name" string becomes Name unless Name is set. Both keys
// are removed from the metadata.
func (m *Material) IngestNumber() error {
	if raw, ok := m.Metadata[NumberKey]; ok {
		num, err := ParseNumber(raw)
		if err != nil {
			return err
		}
		if !m.HasNumber() {
			m.Number = num
		}
		delete(m.Metadata, NumberKey)
	}

	if raw, ok := m.Metadata[NameKey]; ok {
		if s, isStr := raw.(string); isStr {
			if m.Name == "" {
				m.Name = s
			}
			delete(m.Metadata, NameKey)
		}
	}

	if len(m.Metadata) == 0 {
		m.Metadata = nil
	}

	return nil
}

// ParseNumber converts a material number given as a string or a number.
func ParseNumber(raw any) (int, error) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 || n > MaxNumber {
			return 0, fmt.Errorf("%w: %q", errs.ErrInvalidMaterialNumber, v)
		}

		return n, nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v > MaxNumber {
			return 0, fmt.Errorf("%w: %v", errs.ErrInvalidMaterialNumber, v)
		}

		return int(v), nil
	case int:
		if v < 0 || v > MaxNumber {
			return 0, fmt.Errorf("%w: %d", errs.ErrInvalidMaterialNumber, v)
		}

		return v, nil
	case int64:
		if v < 0 || v > MaxNumber {
			return 0, fmt.Errorf("%w: %d", errs.ErrInvalidMaterialNumber, v)
		}

		return int(v), nil
	case uint64:
		if v > MaxNumber {
			return 0, fmt.Errorf("%w: %d", errs.ErrInvalidMaterialNumber, v)
		}

		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", errs.ErrInvalidMaterialNumber, raw)
	}
}
