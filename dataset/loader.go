package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

// Loader produces the full typed record set. Implementations parse a
// concrete source format; validation and derivation rules are shared.
type Loader interface {
	Load(ctx context.Context) ([]DisasterRecord, error)
}

// FileLoader reads a semicolon-delimited text export of the dataset.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) ([]DisasterRecord, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return parseDelimited(ctx, f)
}

func parseDelimited(ctx context.Context, r io.Reader) ([]DisasterRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []DisasterRecord
	dropped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		rec, ok := parseRecord(cols, row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		log.Printf("Dropped %d invalid rows while loading dataset", dropped)
	}
	return records, nil
}

// columnIndex maps the dataset's columns to their positions in a header
// row. -1 means the column is absent.
type columnIndex struct {
	iso, country, region, subregion            int
	startYear, startMonth, startDay            int
	endMonth, endDay                           int
	disasterType                               int
	totalDeaths, totalAffected                 int
	totalDamageAdj, reconstructionAdj, insuredAdj int
}

// Column header variants seen across dataset exports, matched after
// lowercasing and trimming.
var columnAliases = map[string][]string{
	"iso":            {"iso"},
	"country":        {"country"},
	"region":         {"region"},
	"subregion":      {"subregion", "sub-region"},
	"startYear":      {"start year", "year"},
	"startMonth":     {"start month"},
	"startDay":       {"start day"},
	"endMonth":       {"end month"},
	"endDay":         {"end day"},
	"disasterType":   {"disaster type"},
	"totalDeaths":    {"total deaths"},
	"totalAffected":  {"total affected"},
	"totalDamage":    {"total damage, adjusted ('000 us$)", "total damage adjusted ('000 us$)"},
	"reconstruction": {"reconstruction costs, adjusted ('000 us$)", "reconstruction costs adjusted ('000 us$)"},
	"insured":        {"insured damage, adjusted ('000 us$)", "insured damage adjusted ('000 us$)"},
}

func resolveColumns(header []string) (columnIndex, error) {
	find := func(key string) int {
		for i, h := range header {
			h = strings.ToLower(strings.TrimSpace(h))
			for _, alias := range columnAliases[key] {
				if h == alias {
					return i
				}
			}
		}
		return -1
	}

	cols := columnIndex{
		iso:               find("iso"),
		country:           find("country"),
		region:            find("region"),
		subregion:         find("subregion"),
		startYear:         find("startYear"),
		startMonth:        find("startMonth"),
		startDay:          find("startDay"),
		endMonth:          find("endMonth"),
		endDay:            find("endDay"),
		disasterType:      find("disasterType"),
		totalDeaths:       find("totalDeaths"),
		totalAffected:     find("totalAffected"),
		totalDamageAdj:    find("totalDamage"),
		reconstructionAdj: find("reconstruction"),
		insuredAdj:        find("insured"),
	}
	if cols.country < 0 || cols.startYear < 0 || cols.disasterType < 0 {
		return cols, fmt.Errorf("dataset header missing required columns (country/start year/disaster type): %v", header)
	}
	return cols, nil
}

// parseRecord builds a validated record from one raw row. Rows without a
// parsable year, a disaster type, or a country are invalid and dropped.
func parseRecord(cols columnIndex, row []string) (DisasterRecord, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	year, err := strconv.Atoi(field(cols.startYear))
	if err != nil {
		return DisasterRecord{}, false
	}
	country := field(cols.country)
	dtype := field(cols.disasterType)
	if country == "" || dtype == "" {
		return DisasterRecord{}, false
	}

	rec := DisasterRecord{
		ISO:           field(cols.iso),
		Country:       country,
		Region:        field(cols.region),
		Subregion:     field(cols.subregion),
		Year:          year,
		StartMonth:    parseOptionalInt(field(cols.startMonth), 1, 12),
		StartDay:      parseOptionalInt(field(cols.startDay), 1, 31),
		EndMonth:      parseOptionalInt(field(cols.endMonth), 1, 12),
		EndDay:        parseOptionalInt(field(cols.endDay), 1, 31),
		DisasterType:  DisasterType(dtype),
		TotalDeaths:   parseOptionalNumber(field(cols.totalDeaths)),
		TotalAffected: parseOptionalNumber(field(cols.totalAffected)),
	}

	// First non-null damage source wins; converted from '000 US$ to
	// millions once, here, so no pipeline rescales again.
	for _, i := range []int{cols.totalDamageAdj, cols.reconstructionAdj, cols.insuredAdj} {
		if v := parseOptionalNumber(field(i)); v != nil {
			millions := *v / 1000
			rec.EconomicDamageAdj = &millions
			break
		}
	}
	return rec, true
}

// parseOptionalNumber maps blank or unparsable fields to nil, strips
// thousands separators, and rejects negative and non-finite values.
func parseOptionalNumber(s string) *float64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseOptionalInt(s string, lo, hi int) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < lo || v > hi {
		return nil
	}
	return &v
}
