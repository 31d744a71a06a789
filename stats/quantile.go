// Package stats holds the statistical primitives behind the distribution
// and density views. All functions operate on finite samples and return
// explicit empty sentinels instead of NaN on degenerate input.
package stats

import "sort"

// Quantile computes the p-quantile of sorted (ascending) by linear
// interpolation between adjacent order statistics (the R-7 definition):
// i = p*(n-1), interpolated between floor(i) and ceil(i).
// ok is false when sorted is empty.
func Quantile(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}
	if p <= 0 {
		return sorted[0], true
	}
	if p >= 1 {
		return sorted[n-1], true
	}
	i := p * float64(n-1)
	lo := int(i)
	frac := i - float64(lo)
	if frac == 0 {
		return sorted[lo], true
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), true
}

// FiveNum summarizes a sample as min, q1, median, q3, max.
// N is the sample size; a zero-value FiveNum with N==0 is the "no data"
// sentinel, distinct from a summary of all-zero samples.
type FiveNum struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	N      int
}

// Summarize sorts a copy of the sample and computes its five-number
// summary. The input is never mutated.
func Summarize(sample []float64) FiveNum {
	if len(sample) == 0 {
		return FiveNum{}
	}
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1, _ := Quantile(sorted, 0.25)
	med, _ := Quantile(sorted, 0.5)
	q3, _ := Quantile(sorted, 0.75)
	return FiveNum{
		Min:    sorted[0],
		Q1:     q1,
		Median: med,
		Q3:     q3,
		Max:    sorted[len(sorted)-1],
		N:      len(sorted),
	}
}
