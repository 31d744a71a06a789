package aggregate

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asclaudino/data-visualization-project/dataset"
)

func TestAggregate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Aggregate Suite")
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func rec(country, iso string, year int, t dataset.DisasterType) dataset.DisasterRecord {
	return dataset.DisasterRecord{Country: country, ISO: iso, Year: year, DisasterType: t}
}

func recDeaths(country, iso string, year int, t dataset.DisasterType, deaths float64) dataset.DisasterRecord {
	r := rec(country, iso, year, t)
	r.TotalDeaths = fptr(deaths)
	return r
}

var _ = Describe("FilterRecords", func() {
	records := []dataset.DisasterRecord{
		rec("Brazil", "BRA", 2001, dataset.TypeFlood),
		rec("Brazil", "BRA", 2005, dataset.TypeStorm),
		rec("Chile", "CHL", 2003, dataset.TypeEarthquake),
		rec("Japan", "JPN", 2011, dataset.TypeEarthquake),
	}

	It("matches countries by name, case-insensitively", func() {
		out := FilterRecords(records, Filter{Countries: []string{"  brazil "}, YearStart: 2000, YearEnd: 2020})
		Expect(out).To(HaveLen(2))
	})

	It("matches countries by ISO code", func() {
		out := FilterRecords(records, Filter{Countries: []string{"chl"}, YearStart: 2000, YearEnd: 2020})
		Expect(out).To(HaveLen(1))
		Expect(out[0].Country).To(Equal("Chile"))
	})

	It("applies the year range inclusively", func() {
		out := FilterRecords(records, Filter{YearStart: 2003, YearEnd: 2005})
		Expect(out).To(HaveLen(2))
		Expect(out[0].Year).To(Equal(2005))
		Expect(out[1].Year).To(Equal(2003))
	})

	It("restricts to the supplied type set", func() {
		out := FilterRecords(records, Filter{
			Types:     []dataset.DisasterType{dataset.TypeEarthquake},
			YearStart: 2000, YearEnd: 2020,
		})
		Expect(out).To(HaveLen(2))
	})

	It("matches nothing for a non-nil empty type set", func() {
		out := FilterRecords(records, Filter{
			Types:     []dataset.DisasterType{},
			YearStart: 2000, YearEnd: 2020,
		})
		Expect(out).To(BeEmpty())
	})

	It("preserves input order", func() {
		out := FilterRecords(records, Filter{YearStart: 2000, YearEnd: 2020})
		Expect(out).To(Equal(records))
	})
})

var _ = Describe("Bucketing", func() {
	It("maps years to bin starts by floored division", func() {
		Expect(YearBin(2001, 5)).To(Equal(2000))
		Expect(YearBin(2004, 5)).To(Equal(2000))
		Expect(YearBin(2005, 5)).To(Equal(2005))
		Expect(YearBin(1999, 10)).To(Equal(1990))
		Expect(YearBin(-3, 5)).To(Equal(-5))
	})

	It("labels single-year bins with the bare year", func() {
		Expect(BinLabel(2001, 1)).To(Equal("2001"))
	})

	It("labels wider bins with the inclusive range", func() {
		Expect(BinLabel(2000, 5)).To(Equal("2000–2004"))
		Expect(BinLabel(1990, 10)).To(Equal("1990–1999"))
	})

	It("labels decades with the trailing s", func() {
		Expect(DecadeLabel(1990)).To(Equal("1990s"))
	})

	It("enumerates the dense bin domain for any range", func() {
		Expect(DenseBins(2000, 2009, 5)).To(Equal([]int{2000, 2005}))
		Expect(DenseBins(1999, 2010, 5)).To(Equal([]int{1995, 2000, 2005, 2010}))
		Expect(DenseBins(2001, 2001, 1)).To(Equal([]int{2001}))
		Expect(DenseBins(2010, 2000, 5)).To(BeEmpty())
	})

	It("excludes records without a valid start month from month buckets", func() {
		r := rec("X", "XXX", 2000, dataset.TypeFlood)
		_, ok := MonthOf(r)
		Expect(ok).To(BeFalse())

		r.StartMonth = iptr(7)
		m, ok := MonthOf(r)
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(7))
	})
})

var _ = Describe("AggregateByBin", func() {
	It("bins and zero-fills the documented example", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 2001, dataset.TypeFlood, 10),
			recDeaths("X", "XXX", 2006, dataset.TypeStorm, 5),
		}
		f := Filter{Countries: []string{"X"}, YearStart: 2000, YearEnd: 2009,
			Types: []dataset.DisasterType{dataset.TypeFlood, dataset.TypeStorm}}
		rows := AggregateByBin(FilterRecords(records, f), f.YearStart, f.YearEnd, 5)

		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Bin).To(Equal(2000))
		Expect(rows[0].Deaths).To(Equal(10.0))
		Expect(rows[1].Bin).To(Equal(2005))
		Expect(rows[1].Deaths).To(Equal(5.0))
	})

	It("emits every structural bin even when no record matches", func() {
		rows := AggregateByBin(nil, 1950, 1999, 10)
		Expect(rows).To(HaveLen(5))
		for _, r := range rows {
			Expect(r.Events).To(BeZero())
		}
	})

	It("conserves sums across bins for every metric", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 1991, dataset.TypeFlood, 3),
			recDeaths("X", "XXX", 1994, dataset.TypeStorm, 7),
			recDeaths("X", "XXX", 1999, dataset.TypeDrought, 1),
		}
		records[0].TotalAffected = fptr(100)
		records[2].EconomicDamageAdj = fptr(2.5)

		rows := AggregateByBin(records, 1990, 1999, 5)
		var events int
		var deaths, affected, economic float64
		for _, r := range rows {
			events += r.Events
			deaths += r.Deaths
			affected += r.Affected
			economic += r.Economic
		}
		Expect(events).To(Equal(3))
		Expect(deaths).To(Equal(11.0))
		Expect(affected).To(Equal(100.0))
		Expect(economic).To(Equal(2.5))
	})

	It("is idempotent for identical input", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 1991, dataset.TypeFlood, 3),
			recDeaths("X", "XXX", 1994, dataset.TypeStorm, 7),
		}
		Expect(AggregateByBin(records, 1990, 1999, 5)).To(Equal(AggregateByBin(records, 1990, 1999, 5)))
	})
})

var _ = Describe("AggregateByMonth", func() {
	It("folds by start month and skips records without one", func() {
		withMonth := rec("X", "XXX", 2000, dataset.TypeFlood)
		withMonth.StartMonth = iptr(3)
		months := AggregateByMonth([]dataset.DisasterRecord{
			withMonth,
			rec("X", "XXX", 2000, dataset.TypeFlood), // no month
		})
		Expect(months[2].Events).To(Equal(1))
		var total int
		for _, m := range months {
			total += m.Events
		}
		Expect(total).To(Equal(1))
	})
})

var _ = Describe("CollapseTopN", func() {
	It("keeps the top n and collapses the rest", func() {
		counts := map[dataset.DisasterType]int{
			dataset.TypeFlood:      10,
			dataset.TypeStorm:      8,
			dataset.TypeEarthquake: 5,
			dataset.TypeDrought:    3,
			dataset.TypeWildfire:   2,
			dataset.TypeFog:        1,
		}
		kept, collapsed := CollapseTopN(counts, dataset.AllDisasterTypes, 5)
		Expect(kept).To(HaveLen(5))
		Expect(collapsed).To(Equal([]dataset.DisasterType{dataset.TypeFog}))

		var keptTotal, collapsedTotal, total int
		for _, t := range kept {
			keptTotal += counts[t]
		}
		for _, t := range collapsed {
			collapsedTotal += counts[t]
		}
		for _, c := range counts {
			total += c
		}
		Expect(keptTotal + collapsedTotal).To(Equal(total))
	})

	It("breaks ties by the enumeration order", func() {
		counts := map[dataset.DisasterType]int{
			dataset.TypeStorm:   4,
			dataset.TypeFlood:   4,
			dataset.TypeDrought: 4,
		}
		kept, collapsed := CollapseTopN(counts, dataset.AllDisasterTypes, 2)
		// Drought precedes Flood precedes Storm in the enumeration.
		Expect(kept).To(Equal([]dataset.DisasterType{dataset.TypeDrought, dataset.TypeFlood}))
		Expect(collapsed).To(Equal([]dataset.DisasterType{dataset.TypeStorm}))
	})

	It("ranks only types that actually appear", func() {
		counts := map[dataset.DisasterType]int{dataset.TypeFlood: 1}
		kept, collapsed := CollapseTopN(counts, dataset.AllDisasterTypes, 5)
		Expect(kept).To(Equal([]dataset.DisasterType{dataset.TypeFlood}))
		Expect(collapsed).To(BeEmpty())
	})
})

var _ = Describe("TypeTimeline", func() {
	records := []dataset.DisasterRecord{
		recDeaths("X", "XXX", 2001, dataset.TypeFlood, 10),
		recDeaths("X", "XXX", 2002, dataset.TypeFlood, 4),
		recDeaths("X", "XXX", 2006, dataset.TypeStorm, 5),
		recDeaths("X", "XXX", 2007, dataset.TypeDrought, 2),
	}
	f := Filter{YearStart: 2000, YearEnd: 2009}

	It("early-returns an empty series for an explicit empty type selection", func() {
		empty := f
		empty.Types = []dataset.DisasterType{}
		series := TypeTimeline(records, empty, dataset.MetricEvents, 5, 5)
		Expect(series.Bins).To(BeEmpty())
		Expect(series.Layers).To(BeEmpty())
	})

	It("produces dense bins with one layer per kept type", func() {
		series := TypeTimeline(records, f, dataset.MetricEvents, 5, 5)
		Expect(series.Bins).To(Equal([]int{2000, 2005}))
		Expect(series.Labels).To(Equal([]string{"2000–2004", "2005–2009"}))
		Expect(series.Layers).To(HaveLen(3)) // Flood, Storm, Drought
		Expect(series.Layers[0].Key).To(Equal(string(dataset.TypeFlood)))
	})

	It("keeps the stacking invariant at every bin", func() {
		series := TypeTimeline(records, f, dataset.MetricDeaths, 5, 2)
		for i := range series.Bins {
			var sum float64
			for _, layer := range series.Layers {
				sum += layer.Values[i]
			}
			last := series.Layers[len(series.Layers)-1]
			Expect(last.Offsets[i] + last.Values[i]).To(BeNumerically("~", sum, 1e-9))
		}
	})

	It("folds everything beyond the top n into Other", func() {
		series := TypeTimeline(records, f, dataset.MetricEvents, 5, 2)
		last := series.Layers[len(series.Layers)-1]
		Expect(last.Key).To(Equal(OtherLabel))
		// Storm loses its tie with Drought and is the only collapsed type.
		Expect(last.Values[0] + last.Values[1]).To(Equal(1.0))
	})
})

var _ = Describe("CountryTypeMatrix", func() {
	records := []dataset.DisasterRecord{
		rec("Brazil", "BRA", 2001, dataset.TypeFlood),
		rec("Brazil", "BRA", 2002, dataset.TypeFlood),
		rec("Chile", "CHL", 2003, dataset.TypeEarthquake),
	}
	f := Filter{YearStart: 2000, YearEnd: 2009}

	It("produces the full dense grid with explicit zeros", func() {
		m := CountryTypeMatrix(records, f, dataset.MetricEvents, 10)
		Expect(m.Countries).To(Equal([]string{"Brazil", "Chile"}))
		Expect(m.Types).To(HaveLen(len(dataset.AllDisasterTypes)))
		for i := range m.Countries {
			Expect(m.Cells[i]).To(HaveLen(len(m.Types)))
		}
		// Brazil × Flood = 2, Chile × Flood = 0 but enabled.
		floodIdx := -1
		for j, t := range m.Types {
			if t == dataset.TypeFlood {
				floodIdx = j
			}
		}
		Expect(m.Cells[0][floodIdx].Value).To(Equal(2.0))
		Expect(m.Cells[1][floodIdx].Value).To(BeZero())
		Expect(m.Cells[1][floodIdx].Enabled).To(BeTrue())
	})

	It("marks filtered-out types as disabled, distinct from true zeros", func() {
		sel := f
		sel.Types = []dataset.DisasterType{dataset.TypeFlood}
		m := CountryTypeMatrix(records, sel, dataset.MetricEvents, 10)
		for j, t := range m.Types {
			for i := range m.Countries {
				if t == dataset.TypeFlood {
					Expect(m.Cells[i][j].Enabled).To(BeTrue())
				} else {
					Expect(m.Cells[i][j].Enabled).To(BeFalse())
					Expect(m.Cells[i][j].Value).To(BeZero())
				}
			}
		}
	})

	It("keeps the full grid, all disabled, for an empty type selection", func() {
		sel := f
		sel.Types = []dataset.DisasterType{}
		m := CountryTypeMatrix(records, sel, dataset.MetricEvents, 10)
		Expect(m.Countries).NotTo(BeEmpty())
		for i := range m.Countries {
			for j := range m.Types {
				Expect(m.Cells[i][j].Enabled).To(BeFalse())
			}
		}
	})

	It("bounds the country axis by event rank", func() {
		m := CountryTypeMatrix(records, f, dataset.MetricEvents, 1)
		Expect(m.Countries).To(Equal([]string{"Brazil"}))
	})
})

var _ = Describe("DistributionByDecade", func() {
	It("summarizes raw samples with interpolated quartiles", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 1991, dataset.TypeFlood, 1),
			recDeaths("X", "XXX", 1992, dataset.TypeFlood, 2),
			recDeaths("X", "XXX", 1993, dataset.TypeFlood, 3),
			recDeaths("X", "XXX", 1994, dataset.TypeFlood, 4),
		}
		f := Filter{YearStart: 1990, YearEnd: 1999}
		out := DistributionByDecade(records, f, dataset.MetricDeaths)
		Expect(out).To(HaveLen(1))
		d := out[0]
		Expect(d.N).To(Equal(4))
		Expect(d.Min).To(Equal(1.0))
		Expect(d.Q1).To(Equal(1.75))
		Expect(d.Median).To(Equal(2.5))
		Expect(d.Q3).To(Equal(3.25))
		Expect(d.Max).To(Equal(4.0))
	})

	It("keeps quartiles monotonic", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 1991, dataset.TypeFlood, 12),
			recDeaths("X", "XXX", 1992, dataset.TypeFlood, 0),
			recDeaths("X", "XXX", 1995, dataset.TypeFlood, 7),
		}
		f := Filter{YearStart: 1990, YearEnd: 1999}
		d := DistributionByDecade(records, f, dataset.MetricDeaths)[0]
		Expect(d.Min).To(BeNumerically("<=", d.Q1))
		Expect(d.Q1).To(BeNumerically("<=", d.Median))
		Expect(d.Median).To(BeNumerically("<=", d.Q3))
		Expect(d.Q3).To(BeNumerically("<=", d.Max))
	})

	It("marks empty decades with N == 0, distinct from all-zero samples", func() {
		records := []dataset.DisasterRecord{
			recDeaths("X", "XXX", 1991, dataset.TypeFlood, 0),
		}
		f := Filter{YearStart: 1990, YearEnd: 2009}
		out := DistributionByDecade(records, f, dataset.MetricDeaths)
		Expect(out).To(HaveLen(2))
		Expect(out[0].N).To(Equal(1)) // a reported zero is a sample
		Expect(out[1].N).To(BeZero())
	})

	It("excludes records with a missing metric value", func() {
		records := []dataset.DisasterRecord{
			rec("X", "XXX", 1991, dataset.TypeFlood), // no death toll
		}
		f := Filter{YearStart: 1990, YearEnd: 1999}
		out := DistributionByDecade(records, f, dataset.MetricDeaths)
		Expect(out[0].N).To(BeZero())
	})
})

var _ = Describe("Sparkline", func() {
	collect := func(values []float64) []Point {
		return SparklinePoints(values, 100, 28)
	}

	It("yields nothing for an empty series", func() {
		Expect(collect(nil)).To(BeEmpty())
	})

	It("normalizes x by index span and y by value span", func() {
		points := collect([]float64{0, 5, 10})
		Expect(points).To(HaveLen(3))
		Expect(points[0].X).To(Equal(0.0))
		Expect(points[1].X).To(Equal(50.0))
		Expect(points[2].X).To(Equal(100.0))
		// Largest value at the top of the box.
		Expect(points[0].Y).To(Equal(28.0))
		Expect(points[2].Y).To(Equal(0.0))
	})

	It("substitutes 1 for a zero value span", func() {
		points := collect([]float64{7, 7, 7})
		for _, p := range points {
			Expect(p.Y).To(Equal(28.0))
		}
	})

	It("substitutes 1 for a zero index span", func() {
		points := collect([]float64{3})
		Expect(points).To(HaveLen(1))
		Expect(points[0].X).To(Equal(0.0))
	})

	It("is restartable: ranging twice replays the same points", func() {
		seq := Sparkline([]float64{1, 2, 3}, 100, 28)
		var first, second []Point
		for p := range seq {
			first = append(first, p)
		}
		for p := range seq {
			second = append(second, p)
		}
		Expect(second).To(Equal(first))
	})
})
