package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) mergeCmd() *cobra.Command {
	var outFormat, mode string

	cmd := &cobra.Command{
		Use:   "merge OUT IN...",
		Short: "Merge libraries, later inputs replacing same-named materials",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := c.newLibrary()
			if err != nil {
				return err
			}
			for _, in := range args[1:] {
				lib, err := c.openLibrary(in)
				if err != nil {
					return err
				}
				if err := merged.Merge(lib); err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
			}

			if err := c.writeLibrary(merged, args[0], outFormat, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %d materials into %s\n", merged.Len(), args[0])

			return nil
		},
	}
	cmd.Flags().StringVarP(&outFormat, "to", "t", formatContainer, "Output format: container, json")
	cmd.Flags().StringVar(&mode, "mode", "overwrite", "Container write mode: overwrite, append")

	return cmd
}
