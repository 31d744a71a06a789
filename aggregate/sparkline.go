package aggregate

import "iter"

// Point is one normalized sparkline path point.
type Point struct {
	X float64
	Y float64
}

// Sparkline maps a dense value series into the logical width×height box:
// x scales by index span, y by value span, with a degenerate span of
// either kind substituting 1 so single-point or flat series still yield
// finite coordinates. Larger values map to smaller y (screen-style axis).
//
// The returned sequence is finite and restartable; every range over it
// replays the same points.
func Sparkline(values []float64, width, height float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if len(values) == 0 {
			return
		}

		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		xSpan := float64(len(values) - 1)
		if xSpan == 0 {
			xSpan = 1
		}
		ySpan := hi - lo
		if ySpan == 0 {
			ySpan = 1
		}

		for i, v := range values {
			p := Point{
				X: float64(i) / xSpan * width,
				Y: height - (v-lo)/ySpan*height,
			}
			if !yield(p) {
				return
			}
		}
	}
}

// SparklinePoints materializes a sparkline into a slice, for JSON export.
func SparklinePoints(values []float64, width, height float64) []Point {
	var out []Point
	for p := range Sparkline(values, width, height) {
		out = append(out, p)
	}
	return out
}
