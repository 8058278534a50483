package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/matlib/container"
	"github.com/arloliu/matlib/internal/fsutil"
)

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe a library file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			isContainer, err := container.IsContainer(filename)
			if err != nil {
				return err
			}
			if isContainer {
				return c.containerInfo(cmd, filename)
			}

			return c.documentInfo(cmd, filename)
		},
	}
}

func (c *cli) containerInfo(cmd *cobra.Command, filename string) error {
	r, err := container.Open(filename)
	if err != nil {
		return err
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:     %s\n", filename)
	fmt.Fprintf(out, "Format:   container\n")
	fmt.Fprintf(out, "Size:     %s\n", humanize.IBytes(uint64(r.FileSize()))) //nolint:gosec
	fmt.Fprintf(out, "Datasets: %s\n\n", humanize.Comma(int64(len(r.Datasets()))))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tROWS\tSIZE\tCHECKSUM")
	for _, ds := range r.Datasets() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%016x\n",
			ds.Path, ds.Kind, humanize.Comma(int64(ds.Rows)), humanize.IBytes(uint64(ds.Size)), ds.Checksum) //nolint:gosec
	}

	return tw.Flush()
}

func (c *cli) documentInfo(cmd *cobra.Command, filename string) error {
	st, err := os.Stat(filename)
	if err != nil {
		return fsutil.WrapOpenError(filename, err)
	}
	lib, err := c.openLibrary(filename)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:      %s\n", filename)
	fmt.Fprintf(out, "Format:    json\n")
	fmt.Fprintf(out, "Size:      %s\n", humanize.IBytes(uint64(st.Size()))) //nolint:gosec
	fmt.Fprintf(out, "Materials: %s\n", humanize.Comma(int64(lib.Len())))
	fmt.Fprintf(out, "Nuclides:  %s\n", humanize.Comma(int64(len(lib.Nuclides()))))

	return nil
}
