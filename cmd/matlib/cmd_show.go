package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/matlib/material"
)

// materialView is the YAML form of a material. Nuclides are keyed by their
// human form, e.g. "U235".
type materialView struct {
	Name             string             `yaml:"name"`
	Number           int                `yaml:"mat_number"`
	Mass             float64            `yaml:"mass"`
	Density          float64            `yaml:"density"`
	AtomsPerMolecule float64            `yaml:"atoms_per_molecule"`
	Comp             map[string]float64 `yaml:"comp"`
	Metadata         map[string]any     `yaml:"metadata,omitempty"`
}

func newMaterialView(mat material.Material) materialView {
	view := materialView{
		Name:             mat.Name,
		Number:           mat.Number,
		Mass:             mat.Mass,
		Density:          mat.Density,
		AtomsPerMolecule: mat.AtomsPerMolecule,
		Comp:             make(map[string]float64, len(mat.Comp)),
		Metadata:         mat.Metadata,
	}
	for n, frac := range mat.Comp {
		view.Comp[n.String()] = frac
	}

	return view
}

func (c *cli) showCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show FILE NAME",
		Short: "Print one material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.openLibrary(args[0])
			if err != nil {
				return err
			}
			mat, err := lib.GetMaterial(args[1])
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(output) {
			case "yaml":
				data, err = yaml.Marshal(newMaterialView(mat))
			case "json":
				data, err = json.MarshalIndent(mat, "", "  ")
			default:
				return fmt.Errorf("unsupported output: %s", output)
			}
			if err != nil {
				return err
			}
			if data[len(data)-1] != '\n' {
				data = append(data, '\n')
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml, json")

	return cmd
}
