package forecast

import "gonum.org/v1/gonum/stat"

// line is a fitted y = intercept + slope*x model.
type line struct {
	intercept float64
	slope     float64
}

func (l line) at(x float64) float64 {
	return l.intercept + l.slope*x
}

// fitWeightedLine fits an ordinary least-squares line with per-point weights.
// A series with no x spread (every observation on one calendar day) has no
// slope to estimate; it degenerates to a flat line at the weighted mean
// rather than a NaN fit.
func fitWeightedLine(xs, ys, weights []float64) line {
	if !hasSpread(xs) {
		return line{intercept: stat.Mean(ys, weights)}
	}
	intercept, slope := stat.LinearRegression(xs, ys, weights, false)
	return line{intercept: intercept, slope: slope}
}

// hasSpread reports whether xs contains at least two distinct values.
func hasSpread(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}

// fitExactLine fits a line through two points. ok is false when the points
// share an x value.
func fitExactLine(x0, y0, x1, y1 float64) (line, bool) {
	dx := x1 - x0
	if dx == 0 {
		return line{}, false
	}
	slope := (y1 - y0) / dx
	return line{intercept: y0 - slope*x0, slope: slope}, true
}
