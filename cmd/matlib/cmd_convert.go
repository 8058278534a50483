package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) convertCmd() *cobra.Command {
	var outFormat, mode string

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a library between container and JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			lib, err := c.openLibrary(args[0])
			if err != nil {
				return err
			}

			return c.writeLibrary(lib, args[1], outFormat, mode)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "to", "t", formatContainer, "Output format: container, json")
	cmd.Flags().StringVar(&mode, "mode", "overwrite", "Container write mode: overwrite, append")

	return cmd
}
