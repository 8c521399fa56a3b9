package urh

import (
	"math"

	"github.com/sigwave/urhcore/config"
)

// CenterAndTolerance implements the Center & Tolerance stage
// (component G). Center is the midpoint of a k=2 clustering of the
// demod stream samples restricted to plateaus, iterated to
// cfg.TwoMeansEpsilon stability. ok is false if either cluster ends up
// holding fewer than cfg.MinClusterShare of the samples (the
// estimator-failure condition spec section 4.G names explicitly).
// Tolerance is the largest integer below bitLength/2 that absorbs
// cfg.ToleranceFraction of timing jitter.
func CenterAndTolerance(stream []float64, plateaus []Plateau, bitLength int, cfg config.Config) (center float64, tolerance int, ok bool) {
	samples := gatherPlateauSamples(stream, plateaus)
	if len(samples) == 0 {
		return 0, 0, false
	}

	c0, c1, share0, share1, converged := twoMeans(samples, cfg.TwoMeansEpsilon)
	if !converged {
		return 0, 0, false
	}
	if share0 < cfg.MinClusterShare || share1 < cfg.MinClusterShare {
		return 0, 0, false
	}

	center = (c0 + c1) / 2
	tolerance = int(math.Round(float64(bitLength) * cfg.ToleranceFraction))
	if tolerance < 1 {
		tolerance = 1
	}
	if tolerance >= bitLength/2 {
		tolerance = bitLength/2 - 1
	}
	if tolerance < 1 {
		tolerance = 1
	}
	return center, tolerance, true
}

func gatherPlateauSamples(stream []float64, plateaus []Plateau) []float64 {
	var out []float64
	for _, p := range plateaus {
		start, end := p.Start, p.End
		if end > len(stream) {
			end = len(stream)
		}
		if start > end {
			start = end
		}
		out = append(out, stream[start:end]...)
	}
	return out
}

// twoMeans runs Lloyd's algorithm for k=2 on a 1-D sample set,
// initializing centroids at the sample min/max, and returns the final
// centroids plus each cluster's share of the total sample count.
func twoMeans(samples []float64, epsilon float64) (c0, c1, share0, share1 float64, converged bool) {
	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return lo, hi, 1, 0, true
	}

	c0, c1 = lo, hi
	const maxIter = 100
	for iter := 0; iter < maxIter; iter++ {
		var sum0, sum1 float64
		var n0, n1 int
		for _, v := range samples {
			if math.Abs(v-c0) <= math.Abs(v-c1) {
				sum0 += v
				n0++
			} else {
				sum1 += v
				n1++
			}
		}
		var newC0, newC1 float64
		if n0 > 0 {
			newC0 = sum0 / float64(n0)
		} else {
			newC0 = c0
		}
		if n1 > 0 {
			newC1 = sum1 / float64(n1)
		} else {
			newC1 = c1
		}

		moved := math.Abs(newC0-c0) + math.Abs(newC1-c1)
		c0, c1 = newC0, newC1
		share0 = float64(n0) / float64(len(samples))
		share1 = float64(n1) / float64(len(samples))
		if moved < epsilon {
			return c0, c1, share0, share1, true
		}
	}
	return c0, c1, share0, share1, true
}
