package aggregate

import (
	"cmp"
	"slices"

	"github.com/asclaudino/data-visualization-project/dataset"
)

// SeriesPoint is one entry of a dense single-metric time series.
type SeriesPoint struct {
	Bin   int
	Label string
	Value float64
}

// DenseSeries projects one metric out of a dense bin sequence.
func DenseSeries(rows []BinRow, metric dataset.Metric) []SeriesPoint {
	out := make([]SeriesPoint, len(rows))
	for i, r := range rows {
		out[i] = SeriesPoint{Bin: r.Bin, Label: r.Label, Value: r.MetricValue(metric)}
	}
	return out
}

// StackedLayer is one key of a stacked series. Values and Offsets are
// parallel to the series' bins; layer i renders the interval
// [Offsets[i], Offsets[i]+Values[i]) at each bin.
type StackedLayer struct {
	Key     string
	Values  []float64
	Offsets []float64
}

// StackedSeries is a dense stacked layout: the layer order is fixed once
// for the whole series and offsets accumulate bottom-up in that order.
type StackedSeries struct {
	Bins   []int
	Labels []string
	Layers []StackedLayer
}

// TypeTimeline builds the stacked (year bin × disaster type) series for
// the active metric. The top topN types plus a trailing "Other" layer
// keep their own stack position; ranking uses event counts from records
// matching the country/year filter regardless of the type selection,
// while the layers themselves honor the selection.
//
// Empty-type-selection policy for this pipeline: a non-nil empty
// Filter.Types early-returns an empty series ("no data"), it is not
// treated as unrestricted.
func TypeTimeline(records []dataset.DisasterRecord, f Filter, metric dataset.Metric, binSize, topN int) StackedSeries {
	if f.Types != nil && len(f.Types) == 0 {
		return StackedSeries{}
	}

	unrestricted := FilterRecords(records, f.WithoutTypes())
	kept, collapsed := CollapseTopN(CountByType(unrestricted), dataset.AllDisasterTypes, topN)

	selected := f.TypeSet()
	isSelected := func(t dataset.DisasterType) bool {
		return selected == nil || selected[t]
	}

	matched := FilterRecords(records, f)
	byBinType := AggregateByBinType(matched, binSize)
	bins := DenseBins(f.YearStart, f.YearEnd, binSize)

	series := StackedSeries{
		Bins:   bins,
		Labels: make([]string, len(bins)),
	}
	for i, b := range bins {
		series.Labels[i] = BinLabel(b, binSize)
	}

	layerFor := func(key string) *StackedLayer {
		series.Layers = append(series.Layers, StackedLayer{
			Key:     key,
			Values:  make([]float64, len(bins)),
			Offsets: make([]float64, len(bins)),
		})
		return &series.Layers[len(series.Layers)-1]
	}

	for _, t := range kept {
		if !isSelected(t) {
			continue
		}
		layer := layerFor(string(t))
		for i, b := range bins {
			layer.Values[i] = byBinType[BinType{Bin: b, Type: t}].MetricValue(metric)
		}
	}
	if len(collapsed) > 0 {
		other := layerFor(OtherLabel)
		for _, t := range collapsed {
			if !isSelected(t) {
				continue
			}
			for i, b := range bins {
				other.Values[i] += byBinType[BinType{Bin: b, Type: t}].MetricValue(metric)
			}
		}
	}

	// Cumulative offsets, bottom-up in the fixed layer order.
	for i := range bins {
		var running float64
		for l := range series.Layers {
			series.Layers[l].Offsets[i] = running
			running += series.Layers[l].Values[i]
		}
	}
	return series
}

// MatrixCell is one (country, type) cell of the grouped matrix. Enabled
// distinguishes a category excluded by the type filter from a true zero;
// disabled cells always carry a zero value.
type MatrixCell struct {
	Value   float64
	Enabled bool
}

// Matrix is the dense country × type grid: every pair is present.
type Matrix struct {
	Countries []string
	Types     []dataset.DisasterType
	Cells     [][]MatrixCell // Cells[country][type]
}

// CountryTypeMatrix builds the dense grid for the active metric over the
// top topCountries countries by event count within the filter. Columns
// cover the full type enumeration; unselected types yield disabled,
// zero-valued cells.
//
// Empty-type-selection policy for this pipeline: a non-nil empty
// Filter.Types keeps the full grid with every cell disabled.
func CountryTypeMatrix(records []dataset.DisasterRecord, f Filter, metric dataset.Metric, topCountries int) Matrix {
	unrestricted := FilterRecords(records, f.WithoutTypes())

	countryEvents := make(map[string]int)
	for _, r := range unrestricted {
		countryEvents[r.Country]++
	}
	countries := make([]string, 0, len(countryEvents))
	for c := range countryEvents {
		countries = append(countries, c)
	}
	slices.SortStableFunc(countries, func(a, b string) int {
		if c := cmp.Compare(countryEvents[b], countryEvents[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if topCountries > 0 && len(countries) > topCountries {
		countries = countries[:topCountries]
	}

	selected := f.TypeSet()
	enabled := func(t dataset.DisasterType) bool {
		return selected == nil || selected[t]
	}

	matched := FilterRecords(records, f)
	acc := make(map[string]map[dataset.DisasterType]*Row, len(countries))
	for _, c := range countries {
		acc[c] = make(map[dataset.DisasterType]*Row)
	}
	for _, rec := range matched {
		byType, ok := acc[rec.Country]
		if !ok {
			continue
		}
		row, ok := byType[rec.DisasterType]
		if !ok {
			row = &Row{}
			byType[rec.DisasterType] = row
		}
		row.accumulate(rec)
	}

	m := Matrix{
		Countries: countries,
		Types:     slices.Clone(dataset.AllDisasterTypes),
		Cells:     make([][]MatrixCell, len(countries)),
	}
	for i, c := range countries {
		m.Cells[i] = make([]MatrixCell, len(m.Types))
		for j, t := range m.Types {
			cell := MatrixCell{Enabled: enabled(t)}
			if row, ok := acc[c][t]; ok && cell.Enabled {
				cell.Value = row.MetricValue(metric)
			}
			m.Cells[i][j] = cell
		}
	}
	return m
}
