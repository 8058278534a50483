package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls FILE",
		Short: "List the materials of a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.openLibrary(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tNUMBER\tNUCLIDES\tDENSITY")
			for name, mat := range lib.All() {
				density := "-"
				if mat.Density >= 0 {
					density = fmt.Sprintf("%g", mat.Density)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", name, mat.Number, len(mat.Comp), density)
			}

			return tw.Flush()
		},
	}
}
