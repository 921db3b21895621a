package query

import (
	"fmt"

	dataset "energy-dashboard/internal/dataset/domain"
)

// Selection is the triple driving one evaluation.
type Selection struct {
	Year         int    `json:"year"`
	EnergySource string `json:"energy_source"`
	ProducerType string `json:"producer_type"`
}

// DefaultSelection is the dashboard's initial state.
func DefaultSelection() Selection {
	return Selection{
		Year:         dataset.DefaultYear,
		EnergySource: dataset.DefaultEnergySource,
		ProducerType: dataset.DefaultProducerType,
	}
}

// YearInDomain reports whether the year is selectable.
func (s Selection) YearInDomain() bool { return dataset.ValidYear(s.Year) }

// SourceInDomain reports whether the energy source is selectable.
func (s Selection) SourceInDomain() bool { return dataset.ValidEnergySource(s.EnergySource) }

// ProducerInDomain reports whether the producer type is selectable.
func (s Selection) ProducerInDomain() bool { return dataset.ValidProducerType(s.ProducerType) }

// InDomain reports whether every field is selectable.
func (s Selection) InDomain() bool {
	return s.YearInDomain() && s.SourceInDomain() && s.ProducerInDomain()
}

// Label echoes the selected year for the dashboard header.
func (s Selection) Label() string {
	return fmt.Sprintf("Selected year: %d", s.Year)
}

// StateValue is one choropleth cell.
type StateValue struct {
	State         string  `json:"state"`
	GenerationMWh float64 `json:"generation_mwh"`
}

// YearValue is one point of a yearly series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// SourceValue is one bar of the per-fuel cross-section.
type SourceValue struct {
	EnergySource  string  `json:"energy_source"`
	GenerationMWh float64 `json:"generation_mwh"`
}

// FiveViews is the result of one evaluation. Every view is a non-nil slice;
// an empty view is a valid outcome.
type FiveViews struct {
	Selection                           Selection     `json:"selection"`
	Label                               string        `json:"label"`
	StateChoropleth                     []StateValue  `json:"state_choropleth"`
	NationalGenerationBySourceOverYears []YearValue   `json:"national_generation_by_source_over_years"`
	NationalConsumptionOverYears        []YearValue   `json:"national_consumption_over_years"`
	NationalGenerationBySourceForYear   []SourceValue `json:"national_generation_by_source_for_year"`
	PrimaryConsumptionForYear           []YearValue   `json:"primary_consumption_for_year"`
}

// IsEmpty reports whether the selection matched nothing in the selection-driven views.
// The consumption reference series does not count.
func (v FiveViews) IsEmpty() bool {
	return len(v.StateChoropleth) == 0 &&
		len(v.NationalGenerationBySourceOverYears) == 0 &&
		len(v.NationalGenerationBySourceForYear) == 0 &&
		len(v.PrimaryConsumptionForYear) == 0
}
