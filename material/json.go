package material

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/nucid"
)

type jsonMaterial struct {
	Name             string             `json:"name,omitempty"`
	Number           *int               `json:"mat_number,omitempty"`
	Comp             map[string]float64 `json:"comp"`
	Mass             float64            `json:"mass"`
	Density          float64            `json:"density"`
	AtomsPerMolecule float64            `json:"atoms_per_molecule"`
	Metadata         map[string]any     `json:"metadata,omitempty"`
}

type jsonMaterialIn struct {
	Name             string             `json:"name"`
	Number           any                `json:"mat_number"`
	Comp             map[string]float64 `json:"comp"`
	Mass             *float64           `json:"mass"`
	Density          *float64           `json:"density"`
	AtomsPerMolecule *float64           `json:"atoms_per_molecule"`
	Metadata         map[string]any     `json:"metadata"`
}

// MarshalJSON writes the material as a JSON object. Composition keys are
// decimal ZZZAAASSSS ids.
func (m Material) MarshalJSON() ([]byte, error) {
	out := jsonMaterial{
		Name:             m.Name,
		Comp:             make(map[string]float64, len(m.Comp)),
		Mass:             m.Mass,
		Density:          m.Density,
		AtomsPerMolecule: m.AtomsPerMolecule,
		Metadata:         m.Metadata,
	}
	if m.HasNumber() {
		num := m.Number
		out.Number = &num
	}
	for n, f := range m.Comp {
		out.Comp[strconv.Itoa(int(n))] = f
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads a material object. "mat_number" may be a number or a
// numeric string; composition keys may use any form nucid.Parse accepts.
// Missing scalars stay Unset.
func (m *Material) UnmarshalJSON(data []byte) error {
	var in jsonMaterialIn
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedDocument, err)
	}

	mat := New()
	mat.Name = in.Name
	for key, f := range in.Comp {
		n, err := nucid.Parse(key)
		if err != nil {
			return err
		}
		mat.Comp[n] += f
	}
	if in.Mass != nil {
		mat.Mass = *in.Mass
	}
	if in.Density != nil {
		mat.Density = *in.Density
	}
	if in.AtomsPerMolecule != nil {
		mat.AtomsPerMolecule = *in.AtomsPerMolecule
	}

	md, err := CanonicalMetadata(in.Metadata)
	if err != nil {
		return err
	}
	mat.Metadata = md
	if in.Number != nil {
		if mat.Metadata == nil {
			mat.Metadata = make(map[string]any, 1)
		}
		mat.Metadata[NumberKey] = in.Number
	}
	if err := mat.IngestNumber(); err != nil {
		return err
	}

	*m = *mat

	return nil
}
