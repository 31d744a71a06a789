package stats

import (
	"gonum.org/v1/gonum/floats"
)

// DensityPoint is one evaluation of a kernel density estimate.
type DensityPoint struct {
	X       float64
	Density float64
}

// KDE estimates the density of sample over an evenly spaced grid of
// steps+1 points spanning [min(sample), max(sample)], using an
// Epanechnikov kernel with bandwidth = bandwidthFrac of the domain span.
// The fixed-fraction bandwidth is a tuning heuristic, not an optimal
// selector. Returns nil for an empty sample; a zero-span sample uses a
// span of 1 so the grid and bandwidth stay finite.
func KDE(sample []float64, steps int, bandwidthFrac float64) []DensityPoint {
	if len(sample) == 0 || steps < 1 {
		return nil
	}

	lo, hi := floats.Min(sample), floats.Max(sample)
	span := hi - lo
	if span == 0 {
		span = 1
		hi = lo + span
	}
	h := span * bandwidthFrac

	grid := make([]float64, steps+1)
	floats.Span(grid, lo, hi)

	points := make([]DensityPoint, len(grid))
	for i, t := range grid {
		var sum float64
		for _, s := range sample {
			sum += epanechnikov(t-s, h)
		}
		points[i] = DensityPoint{X: t, Density: sum / float64(len(sample))}
	}
	return points
}

// epanechnikov evaluates the scaled kernel 0.75*(1-(v/h)²)/h for
// |v| ≤ h, 0 elsewhere.
func epanechnikov(v, h float64) float64 {
	u := v / h
	if u < -1 || u > 1 {
		return 0
	}
	return 0.75 * (1 - u*u) / h
}
