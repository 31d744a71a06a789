package dataset

import (
	"context"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// ExcelLoader reads the dataset from an XLSX workbook, the format the
// source distributes natively. Sheet defaults to the first sheet.
type ExcelLoader struct {
	Path  string
	Sheet string
}

func (l ExcelLoader) Load(ctx context.Context) ([]DisasterRecord, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []DisasterRecord
	dropped := 0
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := parseRecord(cols, row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		log.Printf("Dropped %d invalid rows while loading workbook %s", dropped, l.Path)
	}
	return records, nil
}
