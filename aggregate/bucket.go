package aggregate

import (
	"fmt"

	"github.com/asclaudino/data-visualization-project/dataset"
)

// YearBin maps a year to the start of its size-wide bin. Uses floored
// division so the mapping stays correct for years below zero.
func YearBin(year, size int) int {
	q := year / size
	if year%size != 0 && year < 0 {
		q--
	}
	return q * size
}

// Decade maps a year to the start of its decade.
func Decade(year int) int {
	return YearBin(year, 10)
}

// BinLabel renders a bin for an axis: the bare year for size 1, an
// inclusive range otherwise.
func BinLabel(start, size int) string {
	if size == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d–%d", start, start+size-1)
}

// DecadeLabel renders a decade bucket, e.g. "1990s".
func DecadeLabel(decade int) string {
	return fmt.Sprintf("%ds", decade)
}

// MonthLabels indexes calendar months 1..12 (index 0 unused).
var MonthLabels = [13]string{"",
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthOf returns the record's start month bucket. Records without a
// valid start month are excluded from month-based aggregation (they
// still count toward every non-month view).
func MonthOf(r dataset.DisasterRecord) (int, bool) {
	if r.StartMonth == nil || *r.StartMonth < 1 || *r.StartMonth > 12 {
		return 0, false
	}
	return *r.StartMonth, true
}

// BinType is the composite (time bucket × disaster type) key. A struct
// key in a typed map cannot collide the way concatenated strings can.
type BinType struct {
	Bin  int
	Type dataset.DisasterType
}

// DenseBins enumerates every structurally expected bin start for the
// inclusive year range, stepped by size. This is the zero-fill domain of
// dense series: charts render it gap-free regardless of data sparsity.
func DenseBins(yearStart, yearEnd, size int) []int {
	if size < 1 || yearEnd < yearStart {
		return nil
	}
	first := YearBin(yearStart, size)
	last := YearBin(yearEnd, size)
	bins := make([]int, 0, (last-first)/size+1)
	for b := first; b <= last; b += size {
		bins = append(bins, b)
	}
	return bins
}
