package dataset

// Feed names used in reports and errors.
const (
	FeedGeneration  = "generation"
	FeedConsumption = "consumption"
)

// GenerationRecord is one normalized generation row.
// Per-state records carry a jurisdiction code; national records carry NationalStateCode.
type GenerationRecord struct {
	State         string  `json:"state"`
	Year          int     `json:"year"`
	EnergySource  string  `json:"energy_source"`
	ProducerType  string  `json:"producer_type"`
	GenerationMWh float64 `json:"generation_mwh"`
}

// IsNational reports whether the record belongs to the national-total collection.
func (r GenerationRecord) IsNational() bool {
	return r.State == NationalStateCode
}

// ConsumptionRecord is one normalized national consumption year.
type ConsumptionRecord struct {
	Year                      int     `json:"year"`
	TotalRenewableConsumption float64 `json:"total_renewable_consumption"`
	TotalPrimaryConsumption   float64 `json:"total_primary_consumption"`
}

// TotalConsumption returns renewable plus primary consumption.
func (r ConsumptionRecord) TotalConsumption() float64 {
	return r.TotalRenewableConsumption + r.TotalPrimaryConsumption
}

// GenerationSet holds the two disjoint generation collections.
type GenerationSet struct {
	PerState []GenerationRecord
	National []GenerationRecord
}

// RawGenerationRow is a Feed A row as read, before any parsing.
type RawGenerationRow struct {
	Line         int
	State        string
	Year         string
	EnergySource string
	ProducerType string
	Generation   string
}

// RawConsumptionRow is a Feed B row as read, before any parsing.
// Figures are expected in one consistent energy unit already.
type RawConsumptionRow struct {
	Line      int
	Year      string
	Renewable string
	Primary   string
}

// Feed A column headers.
const (
	ColumnState        = "STATE"
	ColumnYear         = "YEAR"
	ColumnEnergySource = "ENERGY SOURCE"
	ColumnProducerType = "TYPE OF PRODUCER"
	ColumnGeneration   = "GENERATION (Megawatthours)"
)

// Feed B column headers.
const (
	ColumnAnnualTotal          = "Annual Total"
	ColumnRenewableConsumption = "Total Renewable Energy Consumption"
	ColumnPrimaryConsumption   = "Total Primary Energy Consumption"
)

// GenerationColumns lists the required Feed A headers in RawGenerationRow order.
var GenerationColumns = []string{ColumnState, ColumnYear, ColumnEnergySource, ColumnProducerType, ColumnGeneration}

// ConsumptionColumns lists the required Feed B headers in RawConsumptionRow order.
var ConsumptionColumns = []string{ColumnAnnualTotal, ColumnRenewableConsumption, ColumnPrimaryConsumption}

// GenerationRowFromCells builds a raw row from cells ordered like GenerationColumns.
func GenerationRowFromCells(line int, cells []string) RawGenerationRow {
	return RawGenerationRow{
		Line:         line,
		State:        cellAt(cells, 0),
		Year:         cellAt(cells, 1),
		EnergySource: cellAt(cells, 2),
		ProducerType: cellAt(cells, 3),
		Generation:   cellAt(cells, 4),
	}
}

// ConsumptionRowFromCells builds a raw row from cells ordered like ConsumptionColumns.
func ConsumptionRowFromCells(line int, cells []string) RawConsumptionRow {
	return RawConsumptionRow{
		Line:      line,
		Year:      cellAt(cells, 0),
		Renewable: cellAt(cells, 1),
		Primary:   cellAt(cells, 2),
	}
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
