package charts

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/asclaudino/data-visualization-project/aggregate"
	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
)

// Params is the full user-controlled pipeline input parsed from query
// parameters: the filter itself plus metric and bin resolution.
type Params struct {
	Filter  aggregate.Filter
	Metric  dataset.Metric
	BinSize int
}

// DefaultParams covers the whole dataset: all countries, no type
// restriction, year range spanning the records.
func DefaultParams(records []dataset.DisasterRecord) Params {
	yearStart, yearEnd, ok := dataset.YearExtent(records)
	if !ok {
		yearStart, yearEnd = 0, 0
	}
	return Params{
		Filter:  aggregate.Filter{YearStart: yearStart, YearEnd: yearEnd},
		Metric:  dataset.MetricEvents,
		BinSize: consts.DefaultYearBin,
	}
}

// ParseParams reads filter state from query parameters, falling back to
// DefaultParams for anything absent or malformed. Recognized parameters:
//
//	countries  comma-separated country names or ISO codes
//	types      comma-separated disaster types ("types=" selects none)
//	from, to   inclusive year range
//	metric     events | deaths | affected | economic
//	bin        1 | 5 | 10
func ParseParams(records []dataset.DisasterRecord, q url.Values) Params {
	p := DefaultParams(records)

	if v := q.Get("countries"); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.Filter.Countries = append(p.Filter.Countries, c)
			}
		}
	}
	if q.Has("types") {
		// A present but empty types parameter is an explicit empty
		// selection, not "all types".
		p.Filter.Types = []dataset.DisasterType{}
		for _, t := range strings.Split(q.Get("types"), ",") {
			if t = strings.TrimSpace(t); t != "" {
				p.Filter.Types = append(p.Filter.Types, dataset.DisasterType(t))
			}
		}
	}
	if y, err := strconv.Atoi(q.Get("from")); err == nil {
		p.Filter.YearStart = y
	}
	if y, err := strconv.Atoi(q.Get("to")); err == nil {
		p.Filter.YearEnd = y
	}
	switch m := dataset.Metric(q.Get("metric")); m {
	case dataset.MetricEvents, dataset.MetricDeaths, dataset.MetricAffected, dataset.MetricEconomic:
		p.Metric = m
	}
	switch q.Get("bin") {
	case "1":
		p.BinSize = 1
	case "5":
		p.BinSize = 5
	case "10":
		p.BinSize = 10
	}
	return p
}

// unrestrictedTypes returns a filter where an explicit empty type
// selection is treated as "all types". Pipelines that instead
// early-return on empty selection must not use this.
func unrestrictedTypes(f aggregate.Filter) aggregate.Filter {
	if f.Types != nil && len(f.Types) == 0 {
		f.Types = nil
	}
	return f
}
