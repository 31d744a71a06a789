// Package summary computes dataset-level descriptive statistics shown
// alongside the charts and embedded in the JSON export metadata.
package summary

import (
	"cmp"
	"log"
	"slices"

	mstats "github.com/montanaflynn/stats"

	"github.com/asclaudino/data-visualization-project/aggregate"
	"github.com/asclaudino/data-visualization-project/dataset"
)

type CountryCount struct {
	Country string `json:"country"`
	Events  int    `json:"events"`
}

type Summary struct {
	TotalEvents   int     `json:"totalEvents"`
	TotalDeaths   float64 `json:"totalDeaths"`
	TotalAffected float64 `json:"totalAffected"`
	// TotalDamage is adjusted economic damage in millions of US$.
	TotalDamage float64 `json:"totalDamage"`

	YearStart int `json:"yearStart,omitempty"`
	YearEnd   int `json:"yearEnd,omitempty"`

	EventsByType   map[string]int `json:"eventsByType,omitempty"`
	EventsByDecade map[string]int `json:"eventsByDecade,omitempty"`

	TopCountries []CountryCount `json:"topCountries,omitempty"`

	// Per-event death statistics over records that report a death toll.
	MeanDeaths   float64 `json:"meanDeaths,omitempty"`
	MedianDeaths float64 `json:"medianDeaths,omitempty"`
}

// Summarize folds the whole record set into one Summary. It is pure and
// recomputed from scratch on every call.
func Summarize(records []dataset.DisasterRecord) Summary {
	s := Summary{
		EventsByType:   make(map[string]int),
		EventsByDecade: make(map[string]int),
	}
	if len(records) == 0 {
		return s
	}

	s.YearStart, s.YearEnd, _ = dataset.YearExtent(records)

	countryEvents := make(map[string]int)
	var deathTolls []float64
	for _, r := range records {
		s.TotalEvents++
		s.TotalDeaths += dataset.MetricDeaths.Value(r)
		s.TotalAffected += dataset.MetricAffected.Value(r)
		s.TotalDamage += dataset.MetricEconomic.Value(r)
		s.EventsByType[string(r.DisasterType)]++
		s.EventsByDecade[aggregate.DecadeLabel(aggregate.Decade(r.Year))]++
		countryEvents[r.Country]++
		if r.TotalDeaths != nil {
			deathTolls = append(deathTolls, *r.TotalDeaths)
		}
	}

	s.TopCountries = topCountries(countryEvents, 10)

	if len(deathTolls) > 0 {
		mean, err := mstats.Mean(deathTolls)
		if err != nil {
			log.Printf("Error computing mean death toll: %v", err)
		} else {
			s.MeanDeaths = mean
		}
		median, err := mstats.Median(deathTolls)
		if err != nil {
			log.Printf("Error computing median death toll: %v", err)
		} else {
			s.MedianDeaths = median
		}
	}
	return s
}

func topCountries(counts map[string]int, n int) []CountryCount {
	out := make([]CountryCount, 0, len(counts))
	for c, v := range counts {
		out = append(out, CountryCount{Country: c, Events: v})
	}
	slices.SortStableFunc(out, func(a, b CountryCount) int {
		if c := cmp.Compare(b.Events, a.Events); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
