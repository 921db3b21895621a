package feeds

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"energy-dashboard/internal/config"
	"energy-dashboard/internal/dataset/application"
	dataset "energy-dashboard/internal/dataset/domain"
	"energy-dashboard/internal/dataset/infrastructure/csvfeed"
	"energy-dashboard/internal/dataset/infrastructure/excel"
	"energy-dashboard/internal/dataset/infrastructure/postgres"
)

// LoadStore opens the configured feeds, builds the Store and releases the feed resources.
func LoadStore(ctx context.Context, cfg config.FeedsConfig, logger *log.Logger) (*application.Store, error) {
	source, closeFn, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return application.Load(ctx, source, application.NewNormalizer(logger))
}

// Open builds the FeedSource for cfg. The returned func releases its resources.
func Open(cfg config.FeedsConfig) (application.FeedSource, func(), error) {
	switch cfg.Source {
	case config.SourceExcel, "":
		source, err := excel.NewFeedSource(
			excel.Sheet{Path: cfg.Generation.Path, Name: cfg.Generation.Sheet, HeaderRow: cfg.Generation.HeaderRow},
			excel.Sheet{Path: cfg.Consumption.Path, Name: cfg.Consumption.Sheet, HeaderRow: cfg.Consumption.HeaderRow},
		)
		if err != nil {
			return nil, nil, err
		}
		return source, func() {}, nil
	case config.SourceCSV:
		source, err := csvfeed.NewFeedSource(
			csvfeed.File{Path: cfg.Generation.Path, HeaderRow: cfg.Generation.HeaderRow},
			csvfeed.File{Path: cfg.Consumption.Path, HeaderRow: cfg.Consumption.HeaderRow},
		)
		if err != nil {
			return nil, nil, err
		}
		return source, func() {}, nil
	case config.SourcePostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		source := postgres.NewFeedSource(db,
			postgres.WithGenerationTable(cfg.GenerationTable),
			postgres.WithConsumptionTable(cfg.ConsumptionTable),
		)
		return source, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", dataset.ErrUnsupportedFeed, cfg.Source)
	}
}
