// Package charts builds the go-echarts visualizations over the
// aggregation pipelines and serves/exports them.
package charts

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/asclaudino/data-visualization-project/aggregate"
	"github.com/asclaudino/data-visualization-project/consts"
	"github.com/asclaudino/data-visualization-project/dataset"
	"github.com/asclaudino/data-visualization-project/stats"
)

// printer renders thousands-separated numbers in titles and labels.
var printer = message.NewPrinter(language.English)

func metricAxisName(m dataset.Metric) string {
	switch m {
	case dataset.MetricDeaths:
		return "Deaths"
	case dataset.MetricAffected:
		return "People affected"
	case dataset.MetricEconomic:
		return "Damage (million US$)"
	default:
		return "Events"
	}
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:           consts.ChartWidth,
		Height:          consts.ChartHeight,
		BackgroundColor: consts.ChartBackgroundColor,
	})
}

func titleOpts(title, subtitle string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		TitleStyle:    &opts.TextStyle{Color: consts.ChartTextColor},
		SubtitleStyle: &opts.TextStyle{Color: consts.ChartTextColor},
	})
}

func axisOpts(xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{
			Name:         xName,
			NameLocation: "center",
			NameGap:      30,
			AxisLabel:    &opts.AxisLabel{Color: consts.ChartTextColor},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         yName,
			NameLocation: "center",
			NameGap:      60,
			AxisLabel:    &opts.AxisLabel{Color: consts.ChartTextColor},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "90",
			Right:  "260",
			Bottom: "60",
		}),
	}
}

func legendOpts() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{
		Show:      opts.Bool(true),
		Right:     "10",
		Orient:    "vertical",
		TextStyle: &opts.TextStyle{Color: consts.ChartTextColor},
		Type:      "scroll",
	})
}

// buildTypeTimelineChart renders the stacked (year bin × type) series:
// the top disaster types keep their own layer, everything else stacks
// into "Other". An explicit empty type selection yields a chart with no
// series.
func buildTypeTimelineChart(records []dataset.DisasterRecord, p Params) *charts.Bar {
	series := aggregate.TypeTimeline(records, p.Filter, p.Metric, p.BinSize, consts.TopTypesCount)

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(axisOpts("Period", metricAxisName(p.Metric)),
		initOpts(),
		titleOpts(metricAxisName(p.Metric)+" by period and disaster type", ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		legendOpts(),
	)...)

	bar.SetXAxis(series.Labels)
	for _, layer := range series.Layers {
		data := make([]opts.BarData, len(layer.Values))
		for i, v := range layer.Values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(layer.Key, data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}
	return bar
}

// buildDecadeTotalsChart renders the active metric per decade. An empty
// type selection is treated as unrestricted here.
func buildDecadeTotalsChart(records []dataset.DisasterRecord, p Params) *charts.Bar {
	matched := aggregate.FilterRecords(records, unrestrictedTypes(p.Filter))
	points := aggregate.DenseSeries(
		aggregate.AggregateByDecade(matched, p.Filter.YearStart, p.Filter.YearEnd), p.Metric)

	labels := make([]string, len(points))
	data := make([]opts.BarData, len(points))
	var total float64
	for i, pt := range points {
		labels[i] = pt.Label
		data[i] = opts.BarData{Value: pt.Value}
		total += pt.Value
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(axisOpts("Decade", metricAxisName(p.Metric)),
		initOpts(),
		titleOpts(metricAxisName(p.Metric)+" per decade",
			printer.Sprintf("%.0f total between %d and %d", total, p.Filter.YearStart, p.Filter.YearEnd)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)
	bar.SetXAxis(labels).AddSeries(metricAxisName(p.Metric), data)
	return bar
}

// buildSeasonalityChart renders the metric per calendar month. Records
// without a valid start month are excluded. An empty type selection is
// treated as unrestricted here.
func buildSeasonalityChart(records []dataset.DisasterRecord, p Params) *charts.Bar {
	matched := aggregate.FilterRecords(records, unrestrictedTypes(p.Filter))
	months := aggregate.AggregateByMonth(matched)

	labels := make([]string, 12)
	data := make([]opts.BarData, 12)
	for i := range months {
		labels[i] = aggregate.MonthLabels[i+1]
		data[i] = opts.BarData{Value: months[i].MetricValue(p.Metric)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(axisOpts("Start month", metricAxisName(p.Metric)),
		initOpts(),
		titleOpts("Seasonality", "Events without a reported start month are not shown"),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)
	bar.SetXAxis(labels).AddSeries(metricAxisName(p.Metric), data)
	return bar
}

// buildTypeShareChart renders the share of events per disaster type,
// grouping sub-threshold types into "Other". An empty type selection is
// treated as unrestricted here.
func buildTypeShareChart(records []dataset.DisasterRecord, p Params) *charts.Pie {
	matched := aggregate.FilterRecords(records, unrestrictedTypes(p.Filter))
	counts := aggregate.CountByType(matched)

	var total int
	for _, c := range counts {
		total += c
	}
	threshold := float64(total) * consts.TypeShareThreshold

	var data []opts.PieData
	var otherCount int
	for _, t := range dataset.AllDisasterTypes {
		c, ok := counts[t]
		if !ok {
			continue
		}
		if float64(c) < threshold {
			otherCount += c
		} else {
			data = append(data, opts.PieData{Name: string(t), Value: c})
		}
	}
	if otherCount > 0 {
		data = append(data, opts.PieData{Name: aggregate.OtherLabel, Value: otherCount})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		titleOpts("Share of events by disaster type",
			printer.Sprintf("%d events between %d and %d", total, p.Filter.YearStart, p.Filter.YearEnd)),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		legendOpts(),
	)
	pie.AddSeries("Disaster type", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"0%", "75%"},
				Center: []string{"40%", "50%"},
			}),
		)
	return pie
}

// buildCountryTypeMatrixChart renders the country × type heatmap.
// Disabled cells (type excluded by the filter) carry a nil value so they
// render blank, visually distinct from a true zero.
func buildCountryTypeMatrixChart(records []dataset.DisasterRecord, p Params) *charts.HeatMap {
	matrix := aggregate.CountryTypeMatrix(records, p.Filter, p.Metric, consts.TopCountriesCount)

	typeLabels := make([]string, len(matrix.Types))
	for j, t := range matrix.Types {
		typeLabels[j] = string(t)
	}

	var data []opts.HeatMapData
	var maxValue float64
	for i := range matrix.Countries {
		for j := range matrix.Types {
			cell := matrix.Cells[i][j]
			if !cell.Enabled {
				data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, nil}})
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, cell.Value}})
			maxValue = math.Max(maxValue, cell.Value)
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(),
		titleOpts(metricAxisName(p.Metric)+" by country and disaster type", ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      typeLabels,
			AxisLabel: &opts.AxisLabel{Color: consts.ChartTextColor, Rotate: 30},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      matrix.Countries,
			AxisLabel: &opts.AxisLabel{Color: consts.ChartTextColor},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(maxValue),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#f6efa6", "#d88273", "#bf444c"},
			},
		}),
		charts.WithGridOpts(opts.Grid{Left: "160", Bottom: "100"}),
	)
	hm.AddSeries(metricAxisName(p.Metric), data)
	return hm
}

// buildDeathsBoxplotChart renders the per-decade distribution of death
// tolls. Decades without any reported toll render an empty box. An
// explicit empty type selection yields all-empty boxes.
func buildDeathsBoxplotChart(records []dataset.DisasterRecord, p Params) *charts.BoxPlot {
	distributions := aggregate.DistributionByDecade(records, p.Filter, dataset.MetricDeaths)

	labels := make([]string, len(distributions))
	data := make([]opts.BoxPlotData, len(distributions))
	for i, d := range distributions {
		labels[i] = d.Label
		if d.N == 0 {
			data[i] = opts.BoxPlotData{Value: nil}
			continue
		}
		data[i] = opts.BoxPlotData{Value: []float64{d.Min, d.Q1, d.Median, d.Q3, d.Max}}
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(append(axisOpts("Decade", "Deaths per event"),
		initOpts(),
		titleOpts("Distribution of deaths per event, by decade", ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)
	bp.SetXAxis(labels).AddSeries("Deaths", data)
	return bp
}

// buildDamageDensityChart renders a kernel density estimate over log10
// economic damage. Values at or below zero are clamped to a small
// positive floor before the log, so the log scale never sees -Inf.
func buildDamageDensityChart(records []dataset.DisasterRecord, p Params) *charts.Line {
	matched := aggregate.FilterRecords(records, unrestrictedTypes(p.Filter))
	samples := aggregate.MetricSamples(matched, dataset.MetricEconomic)
	logSamples := make([]float64, len(samples))
	for i, v := range samples {
		logSamples[i] = math.Log10(math.Max(v, consts.LogFloor))
	}

	density := stats.KDE(logSamples, consts.KDEGridSteps, consts.KDEBandwidthFraction)

	labels := make([]string, len(density))
	data := make([]opts.LineData, len(density))
	for i, pt := range density {
		labels[i] = fmt.Sprintf("%.2f", pt.X)
		data[i] = opts.LineData{Value: pt.Density}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(axisOpts("log10 damage (million US$)", "Density"),
		initOpts(),
		titleOpts("Density of economic damage",
			printer.Sprintf("%d events with reported damage", len(samples))),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)
	line.SetXAxis(labels).AddSeries("Density", data)
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}

// countrySparklines builds one normalized point series per top country:
// the metric aggregated by year bin, mapped into the sparkline box.
func countrySparklines(records []dataset.DisasterRecord, p Params) map[string][]aggregate.Point {
	matched := aggregate.FilterRecords(records, unrestrictedTypes(p.Filter))

	countryEvents := make(map[string]int)
	for _, r := range matched {
		countryEvents[r.Country]++
	}
	kept := getTopKeys(countryEvents, consts.TopCountriesCount)

	out := make(map[string][]aggregate.Point, len(kept))
	for _, country := range kept {
		f := unrestrictedTypes(p.Filter)
		f.Countries = []string{country}
		rows := aggregate.AggregateByBin(
			aggregate.FilterRecords(matched, f), f.YearStart, f.YearEnd, p.BinSize)
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = r.MetricValue(p.Metric)
		}
		out[country] = aggregate.SparklinePoints(values, consts.SparklineWidth, consts.SparklineHeight)
	}
	return out
}

// getTopKeys returns the top n keys of counts, descending, ties broken
// by name so the ordering is deterministic.
func getTopKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortStableFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if n < len(keys) {
		keys = keys[:n]
	}
	return keys
}
