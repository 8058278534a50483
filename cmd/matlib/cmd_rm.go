package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/matlib/container"
)

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm FILE NAME...",
		Short: "Remove materials from a library file in place",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			isContainer, err := container.IsContainer(filename)
			if err != nil {
				return err
			}
			lib, err := c.openLibrary(filename)
			if err != nil {
				return err
			}

			removed := 0
			for _, name := range args[1:] {
				if _, err := lib.GetMaterialPtr(name); err != nil {
					c.logger.Warn().Str("name", name).Msg("material not in library")
					continue
				}
				lib.DelMaterial(name)
				removed++
			}

			outFormat := formatJSON
			if isContainer {
				outFormat = formatContainer
			}
			if err := c.writeLibrary(lib, filename, outFormat, "overwrite"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d materials, %d left\n", removed, lib.Len())

			return nil
		},
	}
}
