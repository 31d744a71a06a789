//go:build !dev

package main

import (
	"github.com/go-chi/chi/v5"

	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/metrics"
)

func registerDevRoutes(_ chi.Router, _ *dataset.Store, _ *metrics.Metrics) {}
