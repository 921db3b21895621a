package metrics

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "dashboard_"

	resultSuccess = "success"
	resultError   = "error"

	queryResultMatch = "match"
	queryResultEmpty = "empty"
)

var (
	registerOnce sync.Once

	feedRows *prometheus.CounterVec

	queryTotal   *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	wsClients prometheus.Gauge
)

// Init registers dashboard metrics and dataset-backed gauges.
func Init(dataset DatasetCounter, logger *log.Logger) {
	registerOnce.Do(func() {
		feedRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "feed_rows_total",
				Help: "Feed rows seen at load by feed and outcome",
			},
			[]string{"feed", "outcome"},
		)

		queryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "query_total",
				Help: "Total view evaluations by result",
			},
			[]string{"result"},
		)
		queryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "query_latency_seconds",
				Help:    "View evaluation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total view exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "View export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		wsClients = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "ws_clients",
				Help: "Connected websocket clients",
			},
		)

		prometheus.MustRegister(
			feedRows,
			queryTotal,
			queryLatency,
			exportTotal,
			exportLatency,
			wsClients,
		)

		if dataset != nil {
			registerDatasetMetrics(dataset, logger)
		}
	})
}

// AddFeedRows adds count rows for a feed outcome (accepted, national, excluded, rejected).
func AddFeedRows(feed, outcome string, count int) {
	if count <= 0 {
		return
	}
	if feed == "" {
		feed = "unknown"
	}
	if feedRows != nil {
		feedRows.WithLabelValues(feed, outcome).Add(float64(count))
	}
}

// ObserveQuery records an evaluation. empty marks a no-match outcome.
func ObserveQuery(empty bool, duration time.Duration) {
	result := queryResultMatch
	if empty {
		result = queryResultEmpty
	}
	if queryTotal != nil {
		queryTotal.WithLabelValues(result).Inc()
	}
	if queryLatency != nil {
		queryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetWSClients sets the connected websocket client gauge.
func SetWSClients(count int) {
	if count < 0 {
		count = 0
	}
	if wsClients != nil {
		wsClients.Set(float64(count))
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
