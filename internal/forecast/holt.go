package forecast

import (
	"errors"
	"math"
)

// holtPhi is the trend damping factor: the trend's influence decays toward
// zero over the forecast horizon.
const holtPhi = 0.98

var errHoltFit = errors.New("holt fit failed")

// holtFit is a fitted damped additive exponential smoothing model.
type holtFit struct {
	level float64
	trend float64
	alpha float64
	beta  float64
}

// forecast predicts h steps ahead with damped trend accumulation.
func (f holtFit) forecast(h int) float64 {
	damp := 0.0
	phi := 1.0
	for i := 0; i < h; i++ {
		phi *= holtPhi
		damp += phi
	}
	return f.level + damp*f.trend
}

// fitHolt fits damped additive smoothing by grid-searching the level and
// trend smoothing parameters against one-step-ahead squared error. Errors
// when the series is too short or the recursion diverges.
func fitHolt(ys []float64) (holtFit, error) {
	if len(ys) < 2 {
		return holtFit{}, errHoltFit
	}
	for _, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return holtFit{}, errHoltFit
		}
	}

	best := holtFit{}
	bestSSE := math.Inf(1)
	for a := 0.05; a < 1.0; a += 0.05 {
		for b := 0.05; b < 1.0; b += 0.05 {
			fit, sse, ok := runHolt(ys, a, b)
			if !ok {
				continue
			}
			if sse < bestSSE {
				bestSSE = sse
				best = fit
			}
		}
	}

	if math.IsInf(bestSSE, 1) {
		return holtFit{}, errHoltFit
	}
	return best, nil
}

// runHolt runs the smoothing recursion for one (alpha, beta) pair and
// returns the end state plus the in-sample one-step squared error.
func runHolt(ys []float64, alpha, beta float64) (holtFit, float64, bool) {
	level := ys[0]
	trend := ys[1] - ys[0]

	sse := 0.0
	for t := 1; t < len(ys); t++ {
		pred := level + holtPhi*trend
		err := ys[t] - pred
		sse += err * err

		prevLevel := level
		level = alpha*ys[t] + (1-alpha)*(prevLevel+holtPhi*trend)
		trend = beta*(level-prevLevel) + (1-beta)*holtPhi*trend

		if math.IsNaN(level) || math.IsInf(level, 0) || math.IsNaN(trend) || math.IsInf(trend, 0) {
			return holtFit{}, 0, false
		}
	}

	return holtFit{level: level, trend: trend, alpha: alpha, beta: beta}, sse, true
}
