package application

import (
	"log"
	"math"
	"strconv"
	"strings"

	dataset "energy-dashboard/internal/dataset/domain"
)

const maxReportErrors = 20

// LoadReport summarizes one normalization pass over a feed.
type LoadReport struct {
	Feed     string             `json:"feed"`
	Total    int                `json:"total"`
	Accepted int                `json:"accepted"`
	National int                `json:"national"`
	Excluded int                `json:"excluded"`
	Rejected int                `json:"rejected"`
	Errors   []dataset.RowError `json:"errors,omitempty"`
}

func (r *LoadReport) reject(line int, reason string) {
	r.Rejected++
	if len(r.Errors) < maxReportErrors {
		r.Errors = append(r.Errors, dataset.RowError{Line: line, Reason: reason})
	}
}

// Kept returns the number of rows that reached an output collection.
func (r LoadReport) Kept() int {
	return r.Accepted + r.National
}

// Normalizer turns raw feed rows into canonical records.
type Normalizer struct {
	logger *log.Logger
}

// NewNormalizer constructs a Normalizer. A nil logger disables diagnostics.
func NewNormalizer(logger *log.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// NormalizeGeneration splits Feed A into per-state and national collections.
// Row-level problems reject the row; only an empty feed is an error.
func (n *Normalizer) NormalizeGeneration(rows []dataset.RawGenerationRow) (dataset.GenerationSet, LoadReport, error) {
	report := LoadReport{Feed: dataset.FeedGeneration}
	if len(rows) == 0 {
		return dataset.GenerationSet{}, report, dataset.NewLoadError(dataset.FeedGeneration, dataset.ErrEmptyFeed)
	}

	set := dataset.GenerationSet{
		PerState: make([]dataset.GenerationRecord, 0, len(rows)),
		National: make([]dataset.GenerationRecord, 0),
	}
	for _, row := range rows {
		report.Total++

		state, national, ok := dataset.HarmonizeState(row.State)
		if !ok {
			report.reject(row.Line, "unresolved state "+strconv.Quote(row.State))
			continue
		}
		year, err := parseYear(row.Year)
		if err != nil {
			report.reject(row.Line, "malformed year "+strconv.Quote(row.Year))
			continue
		}
		if !dataset.ValidYear(year) {
			report.reject(row.Line, "year out of range "+strconv.Itoa(year))
			continue
		}
		source := strings.TrimSpace(row.EnergySource)
		if source == "" {
			report.reject(row.Line, "blank energy source")
			continue
		}
		producer := strings.TrimSpace(row.ProducerType)
		if producer == "" {
			report.reject(row.Line, "blank producer type")
			continue
		}
		generation, err := parseNumber(row.Generation)
		if err != nil {
			report.reject(row.Line, "malformed generation "+strconv.Quote(row.Generation))
			continue
		}

		record := dataset.GenerationRecord{
			State:         state,
			Year:          year,
			EnergySource:  source,
			ProducerType:  producer,
			GenerationMWh: generation,
		}
		if national {
			set.National = append(set.National, record)
			report.National++
			continue
		}
		set.PerState = append(set.PerState, record)
		report.Accepted++
	}

	n.logReport(report)
	return set, report, nil
}

// NormalizeConsumption keeps Feed B years from MinYear on.
// The first row for a year wins; repeats are rejected.
func (n *Normalizer) NormalizeConsumption(rows []dataset.RawConsumptionRow) ([]dataset.ConsumptionRecord, LoadReport, error) {
	report := LoadReport{Feed: dataset.FeedConsumption}
	if len(rows) == 0 {
		return nil, report, dataset.NewLoadError(dataset.FeedConsumption, dataset.ErrEmptyFeed)
	}

	records := make([]dataset.ConsumptionRecord, 0, len(rows))
	seen := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		report.Total++

		year, err := parseYear(row.Year)
		if err != nil {
			report.reject(row.Line, "malformed year "+strconv.Quote(row.Year))
			continue
		}
		if year < dataset.MinYear {
			report.Excluded++
			continue
		}
		renewable, err := parseNumber(row.Renewable)
		if err != nil {
			report.reject(row.Line, "malformed renewable consumption "+strconv.Quote(row.Renewable))
			continue
		}
		primary, err := parseNumber(row.Primary)
		if err != nil {
			report.reject(row.Line, "malformed primary consumption "+strconv.Quote(row.Primary))
			continue
		}
		if _, dup := seen[year]; dup {
			report.reject(row.Line, "duplicate year "+strconv.Itoa(year))
			continue
		}
		seen[year] = struct{}{}

		records = append(records, dataset.ConsumptionRecord{
			Year:                      year,
			TotalRenewableConsumption: renewable,
			TotalPrimaryConsumption:   primary,
		})
		report.Accepted++
	}

	n.logReport(report)
	return records, report, nil
}

func (n *Normalizer) logReport(report LoadReport) {
	if n == nil || n.logger == nil {
		return
	}
	n.logger.Printf("feed %s: rows=%d kept=%d national=%d excluded=%d dropped=%d",
		report.Feed, report.Total, report.Kept(), report.National, report.Excluded, report.Rejected)
	for _, rowErr := range report.Errors {
		n.logger.Printf("feed %s: dropped %s", report.Feed, rowErr.Error())
	}
}

func parseYear(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if year, err := strconv.ParseInt(value, 10, 32); err == nil {
		return int(year), nil
	}
	// Spreadsheet cells often store years as floats.
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}

func parseNumber(raw string) (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}
