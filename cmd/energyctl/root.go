package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"energy-dashboard/internal/config"
	datasetapp "energy-dashboard/internal/dataset/application"
	"energy-dashboard/internal/dataset/infrastructure/feeds"
	queryapp "energy-dashboard/internal/query/application"
	query "energy-dashboard/internal/query/domain"
)

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "energyctl",
		Short: "Inspect and query the US energy dashboard dataset",
		Long: `energyctl loads the annual generation and consumption feeds the dashboard serves,
reports how they normalized, and evaluates or exports the five dashboard views offline.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $ENERGY_CONFIG or built-in defaults)")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// loadStore reads the configuration and both feeds. Loader diagnostics go to stderr.
func (o *rootOptions) loadStore(ctx context.Context, cmd *cobra.Command) (*datasetapp.Store, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	store, err := feeds.LoadStore(ctx, cfg.Feeds, logger)
	if err != nil {
		return nil, fmt.Errorf("loading feeds: %w", err)
	}
	return store, nil
}

// evaluate loads the dataset and evaluates sel.
func (o *rootOptions) evaluate(cmd *cobra.Command, sel query.Selection) (query.FiveViews, error) {
	store, err := o.loadStore(cmd.Context(), cmd)
	if err != nil {
		return query.FiveViews{}, err
	}
	engine, err := queryapp.NewEngine(store)
	if err != nil {
		return query.FiveViews{}, err
	}
	return engine.Evaluate(sel), nil
}

type selectionFlags struct {
	year     string
	source   string
	producer string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.year, "year", "", "selected year (default 2020)")
	cmd.Flags().StringVar(&f.source, "source", "", "energy source (default Total)")
	cmd.Flags().StringVar(&f.producer, "producer", "", "producer type (default Total Electric Power Industry)")
}

func (f *selectionFlags) selection() (query.Selection, error) {
	return query.ParseSelection(f.year, f.source, f.producer)
}
