package charts

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/metrics"
	"github.com/asclaudino/data-visualization-project/summary"
)

// ExportChartsJSON generates the charts.json file consumed by the static
// frontend: every chart's options over the unfiltered dataset, plus
// summary metadata and per-country sparklines.
func ExportChartsJSON(ctx context.Context, store *dataset.Store, outputDir string, m *metrics.Metrics) error {
	records, err := store.GetRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.Print("No data to export")
		return nil
	}
	p := DefaultParams(records)

	typeTimeline := buildTypeTimelineChart(records, p)
	typeTimeline.Validate()

	decadeTotals := buildDecadeTotalsChart(records, p)
	decadeTotals.Validate()

	seasonality := buildSeasonalityChart(records, p)
	seasonality.Validate()

	typeShare := buildTypeShareChart(records, p)
	typeShare.Validate()

	countryTypeMatrix := buildCountryTypeMatrixChart(records, p)
	countryTypeMatrix.Validate()

	deathsBoxplot := buildDeathsBoxplotChart(records, p)
	deathsBoxplot.Validate()

	damageDensity := buildDamageDensityChart(records, p)
	damageDensity.Validate()

	if m != nil {
		for _, id := range []string{
			"typeTimeline", "decadeTotals", "seasonality", "typeShare",
			"countryTypeMatrix", "deathsBoxplot", "damageDensity",
		} {
			m.ChartBuilds.WithLabelValues(id).Inc()
		}
	}

	// A single JSON array preserves chart order for the frontend.
	chartsData := []map[string]interface{}{
		{"id": "typeTimeline", "options": typeTimeline.JSON()},
		{"id": "decadeTotals", "options": decadeTotals.JSON()},
		{"id": "seasonality", "options": seasonality.JSON()},
		{"id": "typeShare", "options": typeShare.JSON()},
		{"id": "countryTypeMatrix", "options": countryTypeMatrix.JSON()},
		{"id": "deathsBoxplot", "options": deathsBoxplot.JSON()},
		{"id": "damageDensity", "options": damageDensity.JSON()},
	}

	output := map[string]interface{}{
		"summary":     summary.Summarize(records),
		"sparklines":  countrySparklines(records, p),
		"lastUpdated": clock.Now().UTC().Format(time.RFC3339),
		"charts":      chartsData,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, consts.DirPermissions); err != nil {
		return err
	}
	outputPath := filepath.Join(outputDir, consts.ChartsJSONFile)
	if err := os.WriteFile(outputPath, jsonData, consts.FilePermissions); err != nil {
		return err
	}

	log.Printf("Exported charts to %s", outputPath)
	return nil
}
