package csvfeed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	dataset "energy-dashboard/internal/dataset/domain"
)

// File locates a CSV feed. HeaderRow is 1-based; rows above it are skipped.
type File struct {
	Path      string
	HeaderRow int
}

// FeedSource reads both feeds from CSV exports of the workbooks.
type FeedSource struct {
	generation  File
	consumption File
}

// NewFeedSource constructs a FeedSource.
func NewFeedSource(generation, consumption File) (*FeedSource, error) {
	if generation.Path == "" || consumption.Path == "" {
		return nil, errors.New("csv feed: both paths required")
	}
	return &FeedSource{generation: generation, consumption: consumption}, nil
}

// GenerationRows reads Feed A.
func (s *FeedSource) GenerationRows(ctx context.Context) ([]dataset.RawGenerationRow, error) {
	table, err := readFile(ctx, s.generation, dataset.GenerationColumns)
	if err != nil {
		return nil, dataset.NewLoadError(dataset.FeedGeneration, err)
	}
	rows := make([]dataset.RawGenerationRow, 0, len(table))
	for _, row := range table {
		rows = append(rows, dataset.GenerationRowFromCells(row.line, row.cells))
	}
	return rows, nil
}

// ConsumptionRows reads Feed B.
func (s *FeedSource) ConsumptionRows(ctx context.Context) ([]dataset.RawConsumptionRow, error) {
	table, err := readFile(ctx, s.consumption, dataset.ConsumptionColumns)
	if err != nil {
		return nil, dataset.NewLoadError(dataset.FeedConsumption, err)
	}
	rows := make([]dataset.RawConsumptionRow, 0, len(table))
	for _, row := range table {
		rows = append(rows, dataset.ConsumptionRowFromCells(row.line, row.cells))
	}
	return rows, nil
}

type tableRow struct {
	line  int
	cells []string
}

func readFile(ctx context.Context, file File, required []string) ([]tableRow, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTable(ctx, f, file.HeaderRow, required)
}

func readTable(ctx context.Context, r io.Reader, headerRow int, required []string) ([]tableRow, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var index []int
	table := make([]tableRow, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && index != nil {
				// Keep the row so the normalizer counts it as rejected.
				table = append(table, tableRow{line: parseErr.Line})
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if index == nil {
			if line < headerRow {
				continue
			}
			index, err = dataset.ColumnIndex(record, required)
			if err != nil {
				return nil, err
			}
			continue
		}
		if dataset.IsBlankRow(record) {
			continue
		}
		table = append(table, tableRow{line: line, cells: dataset.Project(record, index)})
	}
	if index == nil {
		return nil, dataset.ErrEmptyFeed
	}
	return table, nil
}
