package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	dataset "energy-dashboard/internal/dataset/domain"
)

// Sheet locates a feed inside a workbook. An empty Name selects the first sheet;
// HeaderRow is 1-based.
type Sheet struct {
	Path      string
	Name      string
	HeaderRow int
}

// FeedSource reads both feeds from OOXML workbooks (.xlsx, .xlsm). The EIA
// publishes Feed A as legacy .xls, which must be converted to .xlsx first.
type FeedSource struct {
	generation  Sheet
	consumption Sheet
}

// NewFeedSource constructs a FeedSource.
func NewFeedSource(generation, consumption Sheet) (*FeedSource, error) {
	if generation.Path == "" {
		return nil, fmt.Errorf("excel feed: generation path required")
	}
	if consumption.Path == "" {
		return nil, fmt.Errorf("excel feed: consumption path required")
	}
	for _, sheet := range []Sheet{generation, consumption} {
		if isLegacyWorkbook(sheet.Path) {
			return nil, fmt.Errorf("%w: %s is a legacy .xls workbook, convert it to .xlsx", dataset.ErrUnsupportedFeed, sheet.Path)
		}
	}
	return &FeedSource{generation: withDefaults(generation), consumption: withDefaults(consumption)}, nil
}

func isLegacyWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xls")
}

// GenerationRows reads Feed A.
func (s *FeedSource) GenerationRows(ctx context.Context) ([]dataset.RawGenerationRow, error) {
	table, err := readTable(ctx, s.generation, dataset.GenerationColumns)
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
	table, err := readTable(ctx, s.consumption, dataset.ConsumptionColumns)
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

func readTable(ctx context.Context, sheet Sheet, required []string) ([]tableRow, error) {
	f, err := excelize.OpenFile(sheet.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sheet.Path, err)
	}
	defer f.Close()

	name := sheet.Name
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, dataset.ErrEmptyFeed
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) < sheet.HeaderRow {
		return nil, dataset.ErrEmptyFeed
	}

	index, err := dataset.ColumnIndex(rows[sheet.HeaderRow-1], required)
	if err != nil {
		return nil, err
	}

	table := make([]tableRow, 0, len(rows)-sheet.HeaderRow)
	for i := sheet.HeaderRow; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dataset.IsBlankRow(rows[i]) {
			continue
		}
		table = append(table, tableRow{line: i + 1, cells: dataset.Project(rows[i], index)})
	}
	return table, nil
}

func withDefaults(sheet Sheet) Sheet {
	if sheet.HeaderRow <= 0 {
		sheet.HeaderRow = 1
	}
	return sheet
}
