// Command inspect loads a dataset file and prints its summary, for
// eyeballing a new export before pointing the server at it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/summary"
)

func main() {
	datasetPath := flag.String("dataset", "data/disasters.csv", "Path to the dataset file (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "Workbook sheet name (xlsx only, defaults to first sheet)")
	flag.Parse()

	var loader dataset.Loader
	if strings.HasSuffix(strings.ToLower(*datasetPath), ".xlsx") {
		loader = dataset.ExcelLoader{Path: *datasetPath, Sheet: *sheet}
	} else {
		loader = dataset.FileLoader{Path: *datasetPath}
	}

	records, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary.Summarize(records)); err != nil {
		log.Fatalf("Error encoding summary: %v", err)
	}
}
