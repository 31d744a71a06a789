package summary

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asclaudino/data-visualization-project/dataset"
)

func TestSummary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Suite")
}

func fptr(v float64) *float64 { return &v }

var _ = Describe("Summarize", func() {
	records := []dataset.DisasterRecord{
		{Country: "Brazil", ISO: "BRA", Year: 2011, DisasterType: dataset.TypeFlood,
			TotalDeaths: fptr(916), TotalAffected: fptr(45000), EconomicDamageAdj: fptr(4)},
		{Country: "Brazil", ISO: "BRA", Year: 2013, DisasterType: dataset.TypeDrought,
			TotalDeaths: fptr(4)},
		{Country: "Chile", ISO: "CHL", Year: 2010, DisasterType: dataset.TypeEarthquake,
			TotalDeaths: fptr(550)},
		{Country: "Japan", ISO: "JPN", Year: 1995, DisasterType: dataset.TypeEarthquake},
	}

	It("accumulates totals with missing values as zero", func() {
		s := Summarize(records)
		Expect(s.TotalEvents).To(Equal(4))
		Expect(s.TotalDeaths).To(Equal(1470.0))
		Expect(s.TotalAffected).To(Equal(45000.0))
		Expect(s.TotalDamage).To(Equal(4.0))
	})

	It("reports the year extent", func() {
		s := Summarize(records)
		Expect(s.YearStart).To(Equal(1995))
		Expect(s.YearEnd).To(Equal(2013))
	})

	It("counts events per type and per decade", func() {
		s := Summarize(records)
		Expect(s.EventsByType["Earthquake"]).To(Equal(2))
		Expect(s.EventsByType["Flood"]).To(Equal(1))
		Expect(s.EventsByDecade["2010s"]).To(Equal(3))
		Expect(s.EventsByDecade["1990s"]).To(Equal(1))
	})

	It("ranks top countries by event count, ties by name", func() {
		s := Summarize(records)
		Expect(s.TopCountries).To(HaveLen(3))
		Expect(s.TopCountries[0]).To(Equal(CountryCount{Country: "Brazil", Events: 2}))
		Expect(s.TopCountries[1]).To(Equal(CountryCount{Country: "Chile", Events: 1}))
	})

	It("computes death statistics only over reported tolls", func() {
		s := Summarize(records)
		// Tolls: 4, 550, 916 — the record without one is excluded.
		Expect(s.MeanDeaths).To(BeNumerically("~", 490.0, 1e-9))
		Expect(s.MedianDeaths).To(Equal(550.0))
	})

	It("returns an empty summary for no records", func() {
		s := Summarize(nil)
		Expect(s.TotalEvents).To(BeZero())
		Expect(s.EventsByType).To(BeEmpty())
		Expect(s.TopCountries).To(BeEmpty())
	})
})
