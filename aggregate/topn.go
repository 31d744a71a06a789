package aggregate

import (
	"cmp"
	"slices"

	"github.com/asclaudino/data-visualization-project/dataset"
)

// OtherLabel names the synthetic bucket absorbing collapsed groups.
const OtherLabel = "Other"

// CollapseTopN ranks the types present in counts by event count,
// descending, and splits them into the n kept leaders and the collapsed
// remainder. Ties are broken by position in order (the type enumeration
// order), so the ranking is stable across runs.
//
// Counts should come from records filtered by country and year but not
// by type: the ranking is over whichever types actually appear there.
func CollapseTopN(counts map[dataset.DisasterType]int, order []dataset.DisasterType, n int) (kept, collapsed []dataset.DisasterType) {
	rank := make(map[dataset.DisasterType]int, len(order))
	for i, t := range order {
		rank[t] = i
	}

	present := make([]dataset.DisasterType, 0, len(counts))
	for _, t := range order {
		if _, ok := counts[t]; ok {
			present = append(present, t)
		}
	}
	// Types outside the known enumeration still participate, ranked after
	// it in name order so the result stays deterministic.
	var unknown []dataset.DisasterType
	for t := range counts {
		if _, known := rank[t]; !known {
			unknown = append(unknown, t)
		}
	}
	slices.Sort(unknown)
	for i, t := range unknown {
		rank[t] = len(order) + i
		present = append(present, t)
	}

	slices.SortStableFunc(present, func(a, b dataset.DisasterType) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(rank[a], rank[b])
	})

	if n >= len(present) {
		return present, nil
	}
	return present[:n], present[n:]
}
