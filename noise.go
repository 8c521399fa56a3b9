package urh

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sigwave/urhcore/config"
)

// EstimateNoise implements the Noise Estimator (component C): it
// partitions the magnitude envelope into consecutive windows, takes
// each window's mean, and returns the requested low quantile of those
// means as the noise floor, clamped to a small positive floor to
// avoid zero-threshold division hazards downstream.
//
// Window means and the quantile itself are computed with
// gonum.org/v1/gonum/stat rather than a hand-rolled sort+interpolate,
// the idiomatic Go choice for exactly this order-statistic.
func EstimateNoise(magnitude []float32, cfg config.Config) float64 {
	if len(magnitude) == 0 {
		return cfg.NoiseFloor
	}

	window := cfg.NoiseWindow
	if window < 1 {
		window = 1
	}

	numWindows := (len(magnitude) + window - 1) / window
	means := make([]float64, 0, numWindows)
	buf := make([]float64, 0, window)
	for start := 0; start < len(magnitude); start += window {
		end := start + window
		if end > len(magnitude) {
			end = len(magnitude)
		}
		buf = buf[:0]
		for _, v := range magnitude[start:end] {
			buf = append(buf, float64(v))
		}
		means = append(means, stat.Mean(buf, nil))
	}

	sort.Float64s(means)
	q := stat.Quantile(cfg.NoiseQuantile, stat.Empirical, means, nil)

	if q < cfg.NoiseFloor {
		q = cfg.NoiseFloor
	}
	return q
}

// NoiseDominated reports whether the estimated noise floor exceeds
// 95% of the maximum magnitude observed, the noise_dominated error
// kind from spec section 7.
func NoiseDominated(magnitude []float32, noise float64) bool {
	if len(magnitude) == 0 {
		return true
	}
	var maxMag float32
	for _, v := range magnitude {
		if v > maxMag {
			maxMag = v
		}
	}
	return noise > 0.95*float64(maxMag)
}
