package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) nuclidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nuclides FILE",
		Short: "List the nuclides used by a library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.openLibrary(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNUCLIDE\tZ\tA")
			for _, n := range lib.Nuclides() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", n, n, n.Z(), n.A())
			}

			return tw.Flush()
		},
	}
}
