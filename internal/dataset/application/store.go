package application

import (
	"context"
	"errors"
	"iter"
	"slices"

	dataset "energy-dashboard/internal/dataset/domain"
)

// FeedSource delivers the raw rows of both feeds.
type FeedSource interface {
	GenerationRows(ctx context.Context) ([]dataset.RawGenerationRow, error)
	ConsumptionRows(ctx context.Context) ([]dataset.RawConsumptionRow, error)
}

// Store holds the normalized collections. It is immutable once built and safe
// for concurrent readers.
type Store struct {
	perState    []dataset.GenerationRecord
	national    []dataset.GenerationRecord
	consumption []dataset.ConsumptionRecord
	reports     []LoadReport
}

// NewStore builds a Store from normalized collections. Input slices are copied.
func NewStore(generation dataset.GenerationSet, consumption []dataset.ConsumptionRecord, reports ...LoadReport) (*Store, error) {
	if len(generation.PerState)+len(generation.National) == 0 {
		return nil, dataset.NewLoadError(dataset.FeedGeneration, dataset.ErrNoValidRecords)
	}
	if len(consumption) == 0 {
		return nil, dataset.NewLoadError(dataset.FeedConsumption, dataset.ErrNoValidRecords)
	}
	return &Store{
		perState:    slices.Clone(generation.PerState),
		national:    slices.Clone(generation.National),
		consumption: slices.Clone(consumption),
		reports:     slices.Clone(reports),
	}, nil
}

// Load reads both feeds from source, normalizes them and builds the Store.
func Load(ctx context.Context, source FeedSource, normalizer *Normalizer) (*Store, error) {
	if source == nil {
		return nil, errors.New("dataset: nil feed source")
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}

	genRows, err := source.GenerationRows(ctx)
	if err != nil {
		return nil, asLoadError(dataset.FeedGeneration, err)
	}
	generation, genReport, err := normalizer.NormalizeGeneration(genRows)
	if err != nil {
		return nil, err
	}

	consRows, err := source.ConsumptionRows(ctx)
	if err != nil {
		return nil, asLoadError(dataset.FeedConsumption, err)
	}
	consumption, consReport, err := normalizer.NormalizeConsumption(consRows)
	if err != nil {
		return nil, err
	}

	return NewStore(generation, consumption, genReport, consReport)
}

func asLoadError(feed string, err error) error {
	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return dataset.NewLoadError(feed, err)
}

// Generation yields the per-state generation records in feed order.
func (s *Store) Generation() iter.Seq[dataset.GenerationRecord] {
	return slices.Values(s.perState)
}

// NationalGeneration yields the national-total records in feed order.
func (s *Store) NationalGeneration() iter.Seq[dataset.GenerationRecord] {
	return slices.Values(s.national)
}

// Consumption yields the consumption records in feed order.
func (s *Store) Consumption() iter.Seq[dataset.ConsumptionRecord] {
	return slices.Values(s.consumption)
}

// Reports returns the load reports captured while building the Store.
func (s *Store) Reports() []LoadReport {
	return slices.Clone(s.reports)
}

// PerStateCount returns the size of the per-state collection.
func (s *Store) PerStateCount() int { return len(s.perState) }

// NationalCount returns the size of the national-total collection.
func (s *Store) NationalCount() int { return len(s.national) }

// ConsumptionCount returns the size of the consumption collection.
func (s *Store) ConsumptionCount() int { return len(s.consumption) }

// GenerationYears returns the distinct years present in either generation collection.
func (s *Store) GenerationYears() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, records := range [][]dataset.GenerationRecord{s.perState, s.national} {
		for _, rec := range records {
			if _, ok := seen[rec.Year]; ok {
				continue
			}
			seen[rec.Year] = struct{}{}
			years = append(years, rec.Year)
		}
	}
	slices.Sort(years)
	return years
}
