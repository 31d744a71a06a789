package aggregate

import (
	"github.com/asclaudino/data-visualization-project/dataset"
)

// Row accumulates every metric for one bucket. It is mutable only while
// a fold is running; completed pipelines hand out fresh copies.
type Row struct {
	Events   int
	Deaths   float64
	Affected float64
	Economic float64
}

func (r *Row) accumulate(rec dataset.DisasterRecord) {
	r.Events++
	r.Deaths += dataset.MetricDeaths.Value(rec)
	r.Affected += dataset.MetricAffected.Value(rec)
	r.Economic += dataset.MetricEconomic.Value(rec)
}

// MetricValue selects one accumulated metric from the row.
func (r Row) MetricValue(m dataset.Metric) float64 {
	switch m {
	case dataset.MetricDeaths:
		return r.Deaths
	case dataset.MetricAffected:
		return r.Affected
	case dataset.MetricEconomic:
		return r.Economic
	default:
		return float64(r.Events)
	}
}

// BinRow is one dense-series entry: a time bucket with its aggregates.
type BinRow struct {
	Bin   int
	Label string
	Row
}

// AggregateByBin folds records into size-wide year bins and emits the
// dense sequence over [yearStart, yearEnd]: one row per structural bin,
// zero-filled where nothing matched. Records are expected to be
// pre-filtered to the same year range.
func AggregateByBin(records []dataset.DisasterRecord, yearStart, yearEnd, size int) []BinRow {
	acc := make(map[int]*Row)
	for _, rec := range records {
		key := YearBin(rec.Year, size)
		row, ok := acc[key]
		if !ok {
			row = &Row{}
			acc[key] = row
		}
		row.accumulate(rec)
	}

	bins := DenseBins(yearStart, yearEnd, size)
	out := make([]BinRow, len(bins))
	for i, b := range bins {
		out[i] = BinRow{Bin: b, Label: BinLabel(b, size)}
		if row, ok := acc[b]; ok {
			out[i].Row = *row
		}
	}
	return out
}

// AggregateByDecade is AggregateByBin with decade bins and decade labels.
func AggregateByDecade(records []dataset.DisasterRecord, yearStart, yearEnd int) []BinRow {
	rows := AggregateByBin(records, yearStart, yearEnd, 10)
	for i := range rows {
		rows[i].Label = DecadeLabel(rows[i].Bin)
	}
	return rows
}

// AggregateByMonth folds records into the 12 calendar months, keyed by
// start month. Records without a valid start month are skipped. The
// result is always dense: index 0 is January.
func AggregateByMonth(records []dataset.DisasterRecord) [12]Row {
	var months [12]Row
	for _, rec := range records {
		m, ok := MonthOf(rec)
		if !ok {
			continue
		}
		months[m-1].accumulate(rec)
	}
	return months
}

// AggregateByBinType folds records into composite (bin × type) buckets.
// The result is sparse; series builders zero-fill it against their own
// dense domains.
func AggregateByBinType(records []dataset.DisasterRecord, size int) map[BinType]Row {
	acc := make(map[BinType]*Row)
	for _, rec := range records {
		key := BinType{Bin: YearBin(rec.Year, size), Type: rec.DisasterType}
		row, ok := acc[key]
		if !ok {
			row = &Row{}
			acc[key] = row
		}
		row.accumulate(rec)
	}
	out := make(map[BinType]Row, len(acc))
	for k, v := range acc {
		out[k] = *v
	}
	return out
}

// CountByType counts events per disaster type over records. Only types
// actually observed appear in the result.
func CountByType(records []dataset.DisasterRecord) map[dataset.DisasterType]int {
	counts := make(map[dataset.DisasterType]int)
	for _, rec := range records {
		counts[rec.DisasterType]++
	}
	return counts
}
