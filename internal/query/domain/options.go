package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	dataset "energy-dashboard/internal/dataset/domain"
)

// Options is the selectable catalog offered to clients.
type Options struct {
	Years         []int     `json:"years"`
	EnergySources []string  `json:"energy_sources"`
	ProducerTypes []string  `json:"producer_types"`
	Default       Selection `json:"default"`
}

// Catalog returns the selectable domain.
func Catalog() Options {
	return Options{
		Years:         dataset.Years(),
		EnergySources: slices.Clone(dataset.EnergySources),
		ProducerTypes: slices.Clone(dataset.ProducerTypes),
		Default:       DefaultSelection(),
	}
}

// ParseSelection builds a Selection from request parameters. Blank values
// fall back to the defaults; only a non-integer year is an error.
func ParseSelection(year, energySource, producerType string) (Selection, error) {
	sel := DefaultSelection()
	if v := strings.TrimSpace(year); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
		sel.Year = parsed
	}
	if v := strings.TrimSpace(energySource); v != "" {
		sel.EnergySource = v
	}
	if v := strings.TrimSpace(producerType); v != "" {
		sel.ProducerType = v
	}
	return sel, nil
}
