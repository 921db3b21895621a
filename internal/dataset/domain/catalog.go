package dataset

import "slices"

// Year window shared by both feeds.
const (
	MinYear = 1990
	MaxYear = 2020
)

// TotalEnergySource is the synthetic all-fuels category.
const TotalEnergySource = "Total"

// Dashboard defaults.
const (
	DefaultYear         = MaxYear
	DefaultEnergySource = TotalEnergySource
	DefaultProducerType = "Total Electric Power Industry"
)

// EnergySources are the selectable fuel categories.
var EnergySources = []string{
	TotalEnergySource,
	"Coal",
	"Hydroelectric Conventional",
	"Natural Gas",
	"Petroleum",
	"Wind",
	"Wood and Wood Derived Fuels",
	"Nuclear",
	"Other Biomass",
	"Other Gases",
	"Pumped Storage",
	"Geothermal",
	"Other",
	"Solar Thermal and Photovoltaic",
}

// ProducerTypes are the selectable producer categories.
var ProducerTypes = []string{
	DefaultProducerType,
	"Electric Generators, Electric Utilities",
	"Combined Heat and Power, Industrial Power",
	"Combined Heat and Power, Commercial Power",
	"Electric Generators, Independent Power Producers",
	"Combined Heat and Power, Electric Power",
}

// ValidYear reports whether year is inside the dataset window.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// ValidEnergySource reports whether source is a known category.
func ValidEnergySource(source string) bool {
	return slices.Contains(EnergySources, source)
}

// ValidProducerType reports whether producer is a known category.
func ValidProducerType(producer string) bool {
	return slices.Contains(ProducerTypes, producer)
}

// Years returns every year of the window in ascending order.
func Years() []int {
	years := make([]int, 0, MaxYear-MinYear+1)
	for y := MinYear; y <= MaxYear; y++ {
		years = append(years, y)
	}
	return years
}

