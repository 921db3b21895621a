package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy-dashboard/internal/query/interfaces"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  selectionFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the five dashboard views to an XLSX or PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			var build = interfaces.BuildViewsXLSX
			switch format {
			case "xlsx":
			case "pdf":
				build = interfaces.BuildViewsPDF
			default:
				return fmt.Errorf("unsupported format %q (want xlsx or pdf)", format)
			}

			sel, err := flags.selection()
			if err != nil {
				return err
			}
			views, err := opts.evaluate(cmd, sel)
			if err != nil {
				return err
			}
			data, err := build(views)
			if err != nil {
				return fmt.Errorf("building %s: %w", format, err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "xlsx", "export format (xlsx or pdf)")
	cmd.Flags().StringVar(&out, "out", "", "output file")
	return cmd
}
