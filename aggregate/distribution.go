package aggregate

import (
	"sort"

	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/stats"
)

// Distribution is the five-number summary of the raw per-record metric
// values inside one bucket. N == 0 marks a bucket with no samples,
// distinct from a bucket of all-zero samples.
type Distribution struct {
	Bin   int
	Label string
	stats.FiveNum
}

// DistributionByDecade collects, per decade in the filter's year range,
// the raw metric samples of the matching records and summarizes them.
// Records whose metric value is missing contribute no sample. The result
// is dense: every decade of the range is present, empty ones with N == 0.
//
// Empty-type-selection policy for this pipeline: a non-nil empty
// Filter.Types yields the dense range with every decade empty.
func DistributionByDecade(records []dataset.DisasterRecord, f Filter, metric dataset.Metric) []Distribution {
	matched := FilterRecords(records, f)

	samples := make(map[int][]float64)
	for _, rec := range matched {
		v, ok := metric.Sample(rec)
		if !ok {
			continue
		}
		d := Decade(rec.Year)
		samples[d] = append(samples[d], v)
	}

	decades := DenseBins(f.YearStart, f.YearEnd, 10)
	out := make([]Distribution, len(decades))
	for i, d := range decades {
		out[i] = Distribution{Bin: d, Label: DecadeLabel(d)}
		if s := samples[d]; len(s) > 0 {
			out[i].FiveNum = stats.Summarize(s)
		}
	}
	return out
}

// MetricSamples extracts the raw, present metric values of records,
// sorted ascending, for density estimation.
func MetricSamples(records []dataset.DisasterRecord, metric dataset.Metric) []float64 {
	var out []float64
	for _, rec := range records {
		if v, ok := metric.Sample(rec); ok {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
