package charts

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/metrics"
	"github.com/asclaudino/data-visualization-project/summary"
)

func loadRecords(w http.ResponseWriter, r *http.Request, store *dataset.Store) ([]dataset.DisasterRecord, bool) {
	records, err := store.GetRecords(r.Context())
	if err != nil {
		log.Printf("Error loading records: %v", err)
		if errors.Is(err, dataset.ErrUnavailable) {
			http.Error(w, "Data unavailable", http.StatusServiceUnavailable)
		} else {
			http.Error(w, "Failed to load data", http.StatusInternalServerError)
		}
		return nil, false
	}
	if len(records) == 0 {
		http.Error(w, "No data available", http.StatusNotFound)
		return nil, false
	}
	return records, true
}

// timed builds one chart under metrics instrumentation. m may be nil.
func timed[T components.Charter](m *metrics.Metrics, id string, build func() T) T {
	start := time.Now()
	chart := build()
	if m != nil {
		m.ChartBuilds.WithLabelValues(id).Inc()
		m.ChartBuildSeconds.WithLabelValues(id).Observe(time.Since(start).Seconds())
	}
	return chart
}

// ChartsHandler renders the full server-side chart page. Filter state
// comes from query parameters (see ParseParams); every chart is an
// independent pipeline over the same cached record set.
func ChartsHandler(store *dataset.Store, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, ok := loadRecords(w, r, store)
		if !ok {
			return
		}
		p := ParseParams(records, r.URL.Query())

		page := components.NewPage()
		page.PageTitle = "Disaster Insights"
		page.AddCharts(
			timed(m, "typeTimeline", func() *charts.Bar { return buildTypeTimelineChart(records, p) }),
			timed(m, "decadeTotals", func() *charts.Bar { return buildDecadeTotalsChart(records, p) }),
			timed(m, "seasonality", func() *charts.Bar { return buildSeasonalityChart(records, p) }),
			timed(m, "typeShare", func() *charts.Pie { return buildTypeShareChart(records, p) }),
			timed(m, "countryTypeMatrix", func() *charts.HeatMap { return buildCountryTypeMatrixChart(records, p) }),
			timed(m, "deathsBoxplot", func() *charts.BoxPlot { return buildDeathsBoxplotChart(records, p) }),
			timed(m, "damageDensity", func() *charts.Line { return buildDamageDensityChart(records, p) }),
		)

		w.Header().Set("Content-Type", "text/html")
		_ = page.Render(w)
	}
}

// SummaryHandler serves the dataset-level descriptive summary as JSON.
func SummaryHandler(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, ok := loadRecords(w, r, store)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary.Summarize(records)); err != nil {
			log.Printf("Error encoding summary: %v", err)
		}
	}
}
