// Package aggregate is the data-shaping layer between the raw record set
// and the chart builders: filtering, bucketing, folding, top-N collapsing
// and series assembly. Everything here is a pure function of
// (records, filter state); nothing caches or mutates across calls.
package aggregate

import (
	"strings"

	"github.com/asclaudino/data-visualization-project/dataset"
)

// Filter is the user-controlled state every pipeline consumes.
//
// Types is the selected disaster-type set, in enumeration order. A nil
// Types means "no type restriction"; a non-nil empty Types means "nothing
// selected" — pipelines handle that case individually (some early-return
// an empty result, others treat it as unrestricted), so FilterRecords
// applies it strictly.
type Filter struct {
	Countries []string
	Types     []dataset.DisasterType
	YearStart int
	YearEnd   int
}

// TypeSet returns Types as a membership set, or nil when unrestricted.
func (f Filter) TypeSet() map[dataset.DisasterType]bool {
	if f.Types == nil {
		return nil
	}
	set := make(map[dataset.DisasterType]bool, len(f.Types))
	for _, t := range f.Types {
		set[t] = true
	}
	return set
}

// WithoutTypes returns a copy of f with the type restriction removed,
// used when ranking groups over type-unfiltered counts.
func (f Filter) WithoutTypes() Filter {
	f.Types = nil
	return f
}

// normalizeKey is the country-matching normalization: trimmed and
// case-folded, applied to both the filter keys and the record fields.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterRecords returns the subset of records matching f, preserving
// input order. A country key matches a record when it equals either the
// country name or the ISO code, case-insensitively.
func FilterRecords(records []dataset.DisasterRecord, f Filter) []dataset.DisasterRecord {
	countryKeys := make(map[string]bool, len(f.Countries))
	for _, c := range f.Countries {
		countryKeys[normalizeKey(c)] = true
	}
	typeSet := f.TypeSet()

	var out []dataset.DisasterRecord
	for _, r := range records {
		if r.Year < f.YearStart || r.Year > f.YearEnd {
			continue
		}
		if len(countryKeys) > 0 &&
			!countryKeys[normalizeKey(r.Country)] && !countryKeys[normalizeKey(r.ISO)] {
			continue
		}
		if typeSet != nil && !typeSet[r.DisasterType] {
			continue
		}
		out = append(out, r)
	}
	return out
}
