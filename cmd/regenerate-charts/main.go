package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/asclaudino/data-visualization-project/charts"
	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
)

func main() {
	datasetPath := flag.String("dataset", "data/disasters.csv", "Path to the dataset file (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "Workbook sheet name (xlsx only, defaults to first sheet)")
	outDir := flag.String("out", consts.ChartDataDir, "Output directory for charts.json")
	flag.Parse()

	var loader dataset.Loader
	if strings.HasSuffix(strings.ToLower(*datasetPath), ".xlsx") {
		loader = dataset.ExcelLoader{Path: *datasetPath, Sheet: *sheet}
	} else {
		loader = dataset.FileLoader{Path: *datasetPath}
	}
	store := dataset.NewStore(loader)

	log.Printf("Generating charts.json in %s", *outDir)
	if err := charts.ExportChartsJSON(context.Background(), store, *outDir, nil); err != nil {
		log.Fatalf("Error exporting charts JSON: %v", err)
	}
	log.Print("Charts JSON generated successfully")
}
