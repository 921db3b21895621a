package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// DatasetCounter exposes collection sizes of the loaded dataset.
type DatasetCounter interface {
	PerStateCount() int
	NationalCount() int
	ConsumptionCount() int
}

func registerDatasetMetrics(dataset DatasetCounter, logger *log.Logger) {
	collections := map[string]func() int{
		"per_state":   dataset.PerStateCount,
		"national":    dataset.NationalCount,
		"consumption": dataset.ConsumptionCount,
	}
	for name, count := range collections {
		gauge := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        metricPrefix + "dataset_records",
				Help:        "Records held by the dataset store",
				ConstLabels: prometheus.Labels{"collection": name},
			},
			func() float64 { return float64(count()) },
		)
		if err := prometheus.Register(gauge); err != nil && logger != nil {
			logger.Printf("metrics register %s: %v", name, err)
		}
	}
}
