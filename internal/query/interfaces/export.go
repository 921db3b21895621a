package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	query "energy-dashboard/internal/query/domain"
)

// Sheet names of the XLSX export, in workbook order.
const (
	SheetSelection            = "selection"
	SheetStateChoropleth      = "state_choropleth"
	SheetGenerationOverYears  = "generation_over_years"
	SheetConsumptionOverYears = "consumption_over_years"
	SheetGenerationBySource   = "generation_by_source"
	SheetPrimaryForYear       = "primary_for_year"
)

type exportTable struct {
	sheet   string
	title   string
	headers []string
	rows    [][]any
}

func viewTables(views query.FiveViews) []exportTable {
	states := make([][]any, 0, len(views.StateChoropleth))
	for _, v := range views.StateChoropleth {
		states = append(states, []any{v.State, v.GenerationMWh})
	}
	return []exportTable{
		{
			sheet:   SheetStateChoropleth,
			title:   fmt.Sprintf("Generation by state: %s, %s", views.Selection.EnergySource, views.Selection.ProducerType),
			headers: []string{"State", "Generation (MWh)"},
			rows:    states,
		},
		{
			sheet:   SheetGenerationOverYears,
			title:   fmt.Sprintf("National generation over years: %s", views.Selection.EnergySource),
			headers: []string{"Year", "Generation (MWh)"},
			rows:    yearRows(views.NationalGenerationBySourceOverYears),
		},
		{
			sheet:   SheetConsumptionOverYears,
			title:   "Total consumption over years",
			headers: []string{"Year", "Consumption"},
			rows:    yearRows(views.NationalConsumptionOverYears),
		},
		{
			sheet:   SheetGenerationBySource,
			title:   fmt.Sprintf("National generation by source in %d", views.Selection.Year),
			headers: []string{"Energy source", "Generation (MWh)"},
			rows:    sourceRows(views.NationalGenerationBySourceForYear),
		},
		{
			sheet:   SheetPrimaryForYear,
			title:   "Primary consumption for year",
			headers: []string{"Year", "Primary consumption"},
			rows:    yearRows(views.PrimaryConsumptionForYear),
		},
	}
}

func yearRows(values []query.YearValue) [][]any {
	rows := make([][]any, 0, len(values))
	for _, v := range values {
		rows = append(rows, []any{v.Year, v.Value})
	}
	return rows
}

func sourceRows(values []query.SourceValue) [][]any {
	rows := make([][]any, 0, len(values))
	for _, v := range values {
		rows = append(rows, []any{v.EnergySource, v.GenerationMWh})
	}
	return rows
}

// BuildViewsXLSX renders the five views into a workbook, one sheet per view
// plus a selection sheet.
func BuildViewsXLSX(views query.FiveViews) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetSelection); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(SheetSelection, "A1", views.Label)
	_ = f.SetCellValue(SheetSelection, "A3", "Year")
	_ = f.SetCellValue(SheetSelection, "B3", views.Selection.Year)
	_ = f.SetCellValue(SheetSelection, "A4", "Energy source")
	_ = f.SetCellValue(SheetSelection, "B4", views.Selection.EnergySource)
	_ = f.SetCellValue(SheetSelection, "A5", "Producer type")
	_ = f.SetCellValue(SheetSelection, "B5", views.Selection.ProducerType)

	for _, table := range viewTables(views) {
		if _, err := f.NewSheet(table.sheet); err != nil {
			return nil, err
		}
		header := make([]any, 0, len(table.headers))
		for _, h := range table.headers {
			header = append(header, h)
		}
		if err := f.SetSheetRow(table.sheet, "A1", &header); err != nil {
			return nil, err
		}
		for i, row := range table.rows {
			if err := f.SetSheetRow(table.sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildViewsPDF renders the label and one table per view.
func BuildViewsPDF(views query.FiveViews) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "US Energy Dashboard")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, views.Label)
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Energy source: %s", views.Selection.EnergySource))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Producer type: %s", views.Selection.ProducerType))
	pdf.Ln(8)

	for _, table := range viewTables(views) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, table.title)
		pdf.Ln(7)
		for _, h := range table.headers {
			pdf.CellFormat(60, 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		if len(table.rows) == 0 {
			pdf.CellFormat(120, 6, "no data", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		for _, row := range table.rows {
			for _, cell := range row {
				align := "L"
				text := fmt.Sprint(cell)
				if v, ok := cell.(float64); ok {
					align = "R"
					text = fmt.Sprintf("%.3f", v)
				}
				pdf.CellFormat(60, 6, text, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
