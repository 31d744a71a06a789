//go:build dev

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asclaudino/data-visualization-project/charts"
	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/metrics"
)

func registerDevRoutes(r chi.Router, store *dataset.Store, m *metrics.Metrics) {
	// Static files for charts
	r.Handle("/chartdata/*", http.StripPrefix("/chartdata/", http.FileServer(http.Dir(consts.ChartDataDir))))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, consts.WebIndexPath)
	})

	// Unthrottled render endpoint for iterating on chart builders
	r.Get("/dev/charts", charts.ChartsHandler(store, m))
}
