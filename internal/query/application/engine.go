package application

import (
	"errors"
	"iter"
	"slices"

	dataset "energy-dashboard/internal/dataset/domain"
	query "energy-dashboard/internal/query/domain"
)

// Dataset is the read-only view of the normalized collections the engine scans.
type Dataset interface {
	Generation() iter.Seq[dataset.GenerationRecord]
	NationalGeneration() iter.Seq[dataset.GenerationRecord]
	Consumption() iter.Seq[dataset.ConsumptionRecord]
}

// Engine derives the five dashboard views from an immutable dataset.
type Engine struct {
	data Dataset
}

// NewEngine constructs an Engine.
func NewEngine(data Dataset) (*Engine, error) {
	if data == nil {
		return nil, errors.New("query: nil dataset")
	}
	return &Engine{data: data}, nil
}

// Evaluate computes the five views for sel. It never fails: selections with no
// match or outside the catalog yield empty views.
func (e *Engine) Evaluate(sel query.Selection) query.FiveViews {
	return query.FiveViews{
		Selection:                           sel,
		Label:                               sel.Label(),
		StateChoropleth:                     e.stateChoropleth(sel),
		NationalGenerationBySourceOverYears: e.nationalBySourceOverYears(sel),
		NationalConsumptionOverYears:        e.consumptionOverYears(),
		NationalGenerationBySourceForYear:   e.nationalBySourceForYear(sel),
		PrimaryConsumptionForYear:           e.primaryConsumptionForYear(sel),
	}
}

func (e *Engine) stateChoropleth(sel query.Selection) []query.StateValue {
	out := make([]query.StateValue, 0)
	if !sel.InDomain() {
		return out
	}
	for rec := range e.data.Generation() {
		if rec.Year != sel.Year || rec.EnergySource != sel.EnergySource || rec.ProducerType != sel.ProducerType {
			continue
		}
		out = append(out, query.StateValue{State: rec.State, GenerationMWh: rec.GenerationMWh})
	}
	return out
}

func (e *Engine) nationalBySourceOverYears(sel query.Selection) []query.YearValue {
	out := make([]query.YearValue, 0)
	if !sel.SourceInDomain() {
		return out
	}
	for rec := range e.data.NationalGeneration() {
		if rec.EnergySource != sel.EnergySource {
			continue
		}
		out = append(out, query.YearValue{Year: rec.Year, Value: rec.GenerationMWh})
	}
	sortByYear(out)
	return out
}

func (e *Engine) consumptionOverYears() []query.YearValue {
	out := make([]query.YearValue, 0)
	for rec := range e.data.Consumption() {
		out = append(out, query.YearValue{Year: rec.Year, Value: rec.TotalConsumption()})
	}
	sortByYear(out)
	return out
}

func (e *Engine) nationalBySourceForYear(sel query.Selection) []query.SourceValue {
	out := make([]query.SourceValue, 0)
	if !sel.YearInDomain() {
		return out
	}
	for rec := range e.data.NationalGeneration() {
		if rec.Year != sel.Year || rec.EnergySource == dataset.TotalEnergySource {
			continue
		}
		out = append(out, query.SourceValue{EnergySource: rec.EnergySource, GenerationMWh: rec.GenerationMWh})
	}
	return out
}

func (e *Engine) primaryConsumptionForYear(sel query.Selection) []query.YearValue {
	out := make([]query.YearValue, 0, 1)
	if !sel.YearInDomain() {
		return out
	}
	for rec := range e.data.Consumption() {
		if rec.Year == sel.Year {
			out = append(out, query.YearValue{Year: rec.Year, Value: rec.TotalPrimaryConsumption})
			break
		}
	}
	return out
}

// sortByYear keeps feed order among equal years.
func sortByYear(values []query.YearValue) {
	slices.SortStableFunc(values, func(a, b query.YearValue) int {
		return a.Year - b.Year
	})
}
