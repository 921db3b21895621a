package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	query "energy-dashboard/internal/query/domain"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		flags  selectionFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Evaluate the five dashboard views for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := flags.selection()
			if err != nil {
				return err
			}
			views, err := opts.evaluate(cmd, sel)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}
			printViews(cmd.OutOrStdout(), views)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the views as JSON")
	return cmd
}

func printViews(out io.Writer, views query.FiveViews) {
	fmt.Fprintln(out, views.Label)
	fmt.Fprintf(out, "energy source: %s, producer type: %s\n", views.Selection.EnergySource, views.Selection.ProducerType)

	section(out, "Generation by state (MWh)", len(views.StateChoropleth))
	for _, v := range views.StateChoropleth {
		fmt.Fprintf(out, "%-8s  %16.2f\n", v.State, v.GenerationMWh)
	}
	section(out, "National generation over years (MWh)", len(views.NationalGenerationBySourceOverYears))
	printYears(out, views.NationalGenerationBySourceOverYears)
	section(out, "Total consumption over years", len(views.NationalConsumptionOverYears))
	printYears(out, views.NationalConsumptionOverYears)
	section(out, "National generation by source (MWh)", len(views.NationalGenerationBySourceForYear))
	for _, v := range views.NationalGenerationBySourceForYear {
		fmt.Fprintf(out, "%-32s  %16.2f\n", v.EnergySource, v.GenerationMWh)
	}
	section(out, "Primary consumption for year", len(views.PrimaryConsumptionForYear))
	printYears(out, views.PrimaryConsumptionForYear)
}

func section(out io.Writer, title string, n int) {
	fmt.Fprintf(out, "\n%s\n", title)
	fmt.Fprintln(out, "----------------------------------------")
	if n == 0 {
		fmt.Fprintln(out, "no data")
	}
}

func printYears(out io.Writer, values []query.YearValue) {
	for _, v := range values {
		fmt.Fprintf(out, "%-8d  %16.2f\n", v.Year, v.Value)
	}
}
