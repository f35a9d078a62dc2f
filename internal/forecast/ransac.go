package forecast

import (
	"math"
	"math/rand"
	"sort"
)

// ransacSeed fixes the sampling sequence so forecasts are reproducible.
const ransacSeed = 1

// fitRANSAC runs a RANSAC-style robust line fit: sample minimal two-point
// subsets, fit a line through each, keep the largest consensus set, then
// refit a weighted line on its inliers. ok is false when no trial reaches
// the minimum inlier fraction.
func fitRANSAC(xs, ys, weights []float64, trials int, minInlierFraction float64) (line, bool) {
	n := len(xs)
	if n < 2 {
		return line{}, false
	}

	threshold := madThreshold(ys)
	minInliers := int(math.Ceil(minInlierFraction * float64(n)))
	if minInliers < 2 {
		minInliers = 2
	}

	rng := rand.New(rand.NewSource(ransacSeed))

	var (
		bestInliers []int
		found       bool
	)
	for trial := 0; trial < trials; trial++ {
		i := rng.Intn(n)
		j := rng.Intn(n)
		if i == j {
			continue
		}

		candidate, ok := fitExactLine(xs[i], ys[i], xs[j], ys[j])
		if !ok {
			continue
		}

		var inliers []int
		for k := 0; k < n; k++ {
			if math.Abs(ys[k]-candidate.at(xs[k])) <= threshold {
				inliers = append(inliers, k)
			}
		}
		if len(inliers) < minInliers {
			continue
		}
		if len(inliers) > len(bestInliers) {
			bestInliers = inliers
			found = true
		}
	}

	if !found {
		return line{}, false
	}

	inX := make([]float64, len(bestInliers))
	inY := make([]float64, len(bestInliers))
	inW := make([]float64, len(bestInliers))
	for i, k := range bestInliers {
		inX[i] = xs[k]
		inY[i] = ys[k]
		inW[i] = weights[k]
	}
	return fitWeightedLine(inX, inY, inW), true
}

// madThreshold derives the inlier residual threshold from the median
// absolute deviation of the values, with a small floor so a constant series
// still admits its own points.
func madThreshold(ys []float64) float64 {
	med := median(ys)
	devs := make([]float64, len(ys))
	for i, y := range ys {
		devs[i] = math.Abs(y - med)
	}
	mad := median(devs)
	if mad < 1e-9 {
		mad = 1e-9
	}
	return mad
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
