package urh

import "github.com/sigwave/urhcore/config"

// Plateau is a half-open [Start, End) index interval over a demod
// stream identifying one candidate message.
type Plateau struct {
	Start, End int
}

// Segment implements the Message Segmenter (component D): it scans
// the magnitude envelope for hysteresis rising/falling edges above
// the noise floor, discards glitches shorter than MinPlateau, and
// requires at least minPause samples of silence between two
// plateaus. minPause is a parameter (rather than always cfg.MinPause)
// because spec section 3 calls for 8x the estimated symbol length
// once one is known, falling back to cfg.MinPause (the configured
// minimum, 1000 samples) only on the first pass before any bit_length
// estimate exists.
func Segment(m []float32, noise float64, minPause int, cfg config.Config) []Plateau {
	if len(m) == 0 {
		return nil
	}
	if minPause < 1 {
		minPause = cfg.MinPause
	}

	riseThresh := float32(noise * (1 + cfg.HysteresisIn))
	fallThresh := float32(noise * (1 - cfg.HysteresisOut))

	var plateaus []Plateau
	i := 0
	n := len(m)
	for i < n {
		// Seek a rising edge.
		for i < n && m[i] < riseThresh {
			i++
		}
		if i >= n {
			break
		}
		start := i

		// Seek a falling edge sustained for minPause samples.
		end := n
		j := i
		for j < n {
			if m[j] < fallThresh {
				// Candidate fall; check it's sustained.
				k := j
				for k < n && k-j < minPause && m[k] < fallThresh {
					k++
				}
				if k-j >= minPause || k >= n {
					end = j
					break
				}
				j = k
				continue
			}
			j++
		}

		if end-start >= cfg.MinPlateau {
			plateaus = append(plateaus, Plateau{Start: start, End: end})
		}
		i = end
		// Skip the silence run itself so the next search starts
		// looking for a fresh rising edge past the enforced gap.
		if i < n {
			i += minPause
		}
	}

	return plateaus
}

// Pauses derives the trailing-silence sample count for each plateau
// in order: pause(k) = start(k+1) - end(k), and 0 for the last
// plateau, per spec section 3.
func Pauses(plateaus []Plateau) []int {
	pauses := make([]int, len(plateaus))
	for k := 0; k < len(plateaus)-1; k++ {
		pauses[k] = plateaus[k+1].Start - plateaus[k].End
	}
	return pauses
}
