// Package metrics registers the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and histograms for dataset loading and
// chart building.
type Metrics struct {
	DatasetLoads      *prometheus.CounterVec // labels: outcome={success,error}
	RecordsLoaded     prometheus.Gauge
	ChartBuilds       *prometheus.CounterVec // labels: chart
	ChartBuildSeconds *prometheus.HistogramVec
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DatasetLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_insights",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		RecordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_insights",
			Name:      "records_loaded",
			Help:      "Number of valid records in the cached dataset.",
		}),
		ChartBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_insights",
			Name:      "chart_builds_total",
			Help:      "Chart pipeline executions by chart id.",
		}, []string{"chart"}),
		ChartBuildSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_insights",
			Name:      "chart_build_duration_seconds",
			Help:      "Duration of one chart pipeline execution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"chart"}),
	}
}
