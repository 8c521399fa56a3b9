package urh

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sigwave/urhcore/config"
)

// ClassifyModulation implements the Modulation Classifier (component
// E). For every plateau it computes three dispersion features -
// sigma_m (magnitude stddev), sigma_f (instantaneous-frequency
// stddev), and sigma_dphi (per-symbol phase-difference stddev) -
// takes each feature's median across plateaus, and scores each
// modulation as that median divided by the same feature's baseline
// measured on the noise-only gaps between plateaus. Ties break FSK, ASK, PSK per spec section 4.E;
// ambiguous reports the modulation_ambiguous condition from section 7
// (all three scores within cfg.ModulationAmbiguityBand of each
// other), in which case the returned Modulation is already the FSK
// default tie-break and the caller should proceed without recording
// an error.
func ClassifyModulation(streams *Streams, plateaus []Plateau, cfg config.Config) (mod Modulation, ambiguous bool) {
	mag := streams.Magnitude()
	freq := streams.Frequency()
	phase := streams.Phase()

	sigmaM := plateauStdDevs(plateaus, mag)
	sigmaF := plateauStdDevsFreq(plateaus, freq)
	sigmaPhi := plateauStdDevsPhaseDiff(plateaus, phase, cfg)

	baseM, baseF, basePhi := noiseBaseline(plateaus, mag, freq, phase, cfg)

	scoreM := normalizedScore(sigmaM, baseM)
	scoreF := normalizedScore(sigmaF, baseF)
	scorePhi := normalizedScore(sigmaPhi, basePhi)

	ambiguous = withinBand(scoreM, scoreF, cfg.ModulationAmbiguityBand) &&
		withinBand(scoreF, scorePhi, cfg.ModulationAmbiguityBand) &&
		withinBand(scoreM, scorePhi, cfg.ModulationAmbiguityBand)

	if ambiguous {
		return ModulationFSK, true
	}

	// Tie-break order FSK, ASK, PSK on equal top scores.
	best := scoreF
	mod = ModulationFSK
	if scoreM > best {
		best = scoreM
		mod = ModulationASK
	}
	if scorePhi > best {
		best = scorePhi
		mod = ModulationPSK
	}
	return mod, false
}

func withinBand(a, b, band float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return true
	}
	return math.Abs(a-b)/denom <= band
}

func normalizedScore(perPlateau []float64, baseline float64) float64 {
	if len(perPlateau) == 0 {
		return 0
	}
	if baseline <= 0 {
		baseline = 1e-12
	}
	return median(perPlateau) / baseline
}

func plateauStdDevs(plateaus []Plateau, arr []float32) []float64 {
	out := make([]float64, 0, len(plateaus))
	for _, p := range plateaus {
		out = append(out, stdDevF32(clipF32(arr, p.Start, p.End)))
	}
	return out
}

func plateauStdDevsFreq(plateaus []Plateau, freq []float32) []float64 {
	out := make([]float64, 0, len(plateaus))
	for _, p := range plateaus {
		end := p.End
		if end > len(freq) {
			end = len(freq)
		}
		start := p.Start
		if start > end {
			start = end
		}
		out = append(out, stdDevF32(freq[start:end]))
	}
	return out
}

func plateauStdDevsPhaseDiff(plateaus []Plateau, phase []float32, cfg config.Config) []float64 {
	out := make([]float64, 0, len(plateaus))
	for _, p := range plateaus {
		out = append(out, perSymbolPhaseDiffStdDev(clipF32(phase, p.Start, p.End), cfg))
	}
	return out
}

// perSymbolPhaseDiffStdDev estimates a bit-length hint for this
// plateau's phase stream via the same run-length GCD primitive the
// Symbol-Rate Estimator uses (spec section 4.F), then samples phase
// once per estimated symbol and returns the stddev of consecutive
// differences - the per-symbol phase-difference dispersion spec
// section 4.E calls sigma_dphi.
func perSymbolPhaseDiffStdDev(phase []float32, cfg config.Config) float64 {
	if len(phase) < 2 {
		return 0
	}
	asFloat64 := make([]float64, len(phase))
	for i, v := range phase {
		asFloat64[i] = float64(v)
	}

	hint, ok := EstimateBitLength(asFloat64, cfg)
	if !ok || hint < 1 {
		hint = 1
	}

	var samples []float64
	for i := 0; i < len(phase); i += hint {
		samples = append(samples, float64(phase[i]))
	}
	if len(samples) < 2 {
		return 0
	}
	diffs := make([]float64, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		diffs[i-1] = samples[i] - samples[i-1]
	}
	return stat.StdDev(diffs, nil)
}

func clipF32(arr []float32, start, end int) []float32 {
	if start < 0 {
		start = 0
	}
	if end > len(arr) {
		end = len(arr)
	}
	if start > end {
		start = end
	}
	return arr[start:end]
}

func stdDevF32(arr []float32) float64 {
	if len(arr) < 2 {
		return 0
	}
	xs := make([]float64, len(arr))
	for i, v := range arr {
		xs[i] = float64(v)
	}
	return stat.StdDev(xs, nil)
}

// noiseBaseline computes the same three dispersion features over the
// silent gaps between plateaus (and before the first/after the last),
// giving the "baseline computed on noise-only windows" spec section
// 4.E measures every modulation's dispersion against.
func noiseBaseline(plateaus []Plateau, mag, freq, phase []float32, cfg config.Config) (m, f, p float64) {
	var gaps []Plateau
	cursor := 0
	for _, pl := range plateaus {
		if pl.Start > cursor {
			gaps = append(gaps, Plateau{Start: cursor, End: pl.Start})
		}
		cursor = pl.End
	}
	if cursor < len(mag) {
		gaps = append(gaps, Plateau{Start: cursor, End: len(mag)})
	}
	if len(gaps) == 0 {
		return 1e-9, 1e-9, 1e-9
	}

	mScores := plateauStdDevs(gaps, mag)
	fScores := plateauStdDevsFreq(gaps, freq)
	pScores := plateauStdDevsPhaseDiff(gaps, phase, cfg)

	return medianOrFloor(mScores), medianOrFloor(fScores), medianOrFloor(pScores)
}

func medianOrFloor(xs []float64) float64 {
	if len(xs) == 0 {
		return 1e-9
	}
	v := median(xs)
	if v <= 0 {
		return 1e-9
	}
	return v
}
