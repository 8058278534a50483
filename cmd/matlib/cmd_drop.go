package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/matlib"
)

func (c *cli) dropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop FILE",
		Short: "Remove the material table at the datapath from a container",
		Long: "Remove the material table at --datapath, its nucpath and anything else\n" +
			"stored below it. Other datasets in the container are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := matlib.DropContainerTable(args[0], c.cfg.Datapath); err != nil {
				return err
			}
			c.logger.Info().Str("file", args[0]).Str("datapath", c.cfg.Datapath).Msg("dropped material table")
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %s\n", c.cfg.Datapath)

			return nil
		},
	}
}
