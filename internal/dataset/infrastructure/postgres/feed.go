package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dataset "energy-dashboard/internal/dataset/domain"
)

const (
	defaultGenerationTable  = "energy_generation_feed"
	defaultConsumptionTable = "energy_consumption_feed"
)

// FeedSource reads both feeds from staging tables loaded by an upstream import job.
// Columns are selected as text so the normalizer sees the cells as delivered.
type FeedSource struct {
	db               *sql.DB
	generationTable  string
	consumptionTable string
}

// FeedOption configures the FeedSource.
type FeedOption func(*FeedSource)

// WithGenerationTable overrides the Feed A table name.
func WithGenerationTable(table string) FeedOption {
	return func(s *FeedSource) {
		if table != "" {
			s.generationTable = table
		}
	}
}

// WithConsumptionTable overrides the Feed B table name.
func WithConsumptionTable(table string) FeedOption {
	return func(s *FeedSource) {
		if table != "" {
			s.consumptionTable = table
		}
	}
}

// NewFeedSource constructs a FeedSource.
func NewFeedSource(db *sql.DB, opts ...FeedOption) *FeedSource {
	source := &FeedSource{
		db:               db,
		generationTable:  defaultGenerationTable,
		consumptionTable: defaultConsumptionTable,
	}
	for _, opt := range opts {
		opt(source)
	}
	return source
}

// GenerationRows reads Feed A ordered by id.
func (s *FeedSource) GenerationRows(ctx context.Context) ([]dataset.RawGenerationRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres feed: nil db")
	}

	query := fmt.Sprintf(`
SELECT
	id,
	COALESCE(state::text, ''),
	COALESCE(year::text, ''),
	COALESCE(energy_source::text, ''),
	COALESCE(producer_type::text, ''),
	COALESCE(generation_mwh::text, '')
FROM %s
ORDER BY id ASC`, s.generationTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dataset.NewLoadError(dataset.FeedGeneration, err)
	}
	defer rows.Close()

	var result []dataset.RawGenerationRow
	for rows.Next() {
		var row dataset.RawGenerationRow
		var id int64
		if err := rows.Scan(
			&id,
			&row.State,
			&row.Year,
			&row.EnergySource,
			&row.ProducerType,
			&row.Generation,
		); err != nil {
			return nil, dataset.NewLoadError(dataset.FeedGeneration, err)
		}
		row.Line = int(id)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dataset.NewLoadError(dataset.FeedGeneration, err)
	}
	return result, nil
}

// ConsumptionRows reads Feed B ordered by id.
func (s *FeedSource) ConsumptionRows(ctx context.Context) ([]dataset.RawConsumptionRow, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres feed: nil db")
	}

	query := fmt.Sprintf(`
SELECT
	id,
	COALESCE(annual_total::text, ''),
	COALESCE(total_renewable_consumption::text, ''),
	COALESCE(total_primary_consumption::text, '')
FROM %s
ORDER BY id ASC`, s.consumptionTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dataset.NewLoadError(dataset.FeedConsumption, err)
	}
	defer rows.Close()

	var result []dataset.RawConsumptionRow
	for rows.Next() {
		var row dataset.RawConsumptionRow
		var id int64
		if err := rows.Scan(&id, &row.Year, &row.Renewable, &row.Primary); err != nil {
			return nil, dataset.NewLoadError(dataset.FeedConsumption, err)
		}
		row.Line = int(id)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dataset.NewLoadError(dataset.FeedConsumption, err)
	}
	return result, nil
}
