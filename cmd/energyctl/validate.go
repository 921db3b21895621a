package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load both feeds and print the normalization reports",
		Long:  `Loads the configured feeds, prints per-feed row counts and sample row errors, and exits non-zero when a feed cannot be loaded.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, report := range store.Reports() {
				fmt.Fprintf(out, "%s feed\n", report.Feed)
				fmt.Fprintln(out, "----------------------------------------")
				fmt.Fprintf(out, "%-10s %8d\n", "rows", report.Total)
				fmt.Fprintf(out, "%-10s %8d\n", "accepted", report.Accepted)
				fmt.Fprintf(out, "%-10s %8d\n", "national", report.National)
				fmt.Fprintf(out, "%-10s %8d\n", "excluded", report.Excluded)
				fmt.Fprintf(out, "%-10s %8d\n", "rejected", report.Rejected)
				for _, rowErr := range report.Errors {
					fmt.Fprintf(out, "  %s\n", rowErr.Error())
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "per-state records: %d, national records: %d, consumption records: %d\n",
				store.PerStateCount(), store.NationalCount(), store.ConsumptionCount())
			return nil
		},
	}
}
