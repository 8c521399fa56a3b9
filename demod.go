package urh

import "github.com/sigwave/urhcore/config"

// DemodulatePlateau implements the Demodulator (component H) for one
// plateau: quantize the stream around center, locate symbol
// boundaries at bitLength-wide steps from the plateau's first
// transition, majority-vote each symbol window (with tolerance
// samples of slack excluded from the vote at each boundary to avoid
// counting jittery transition samples), and emit one bit per symbol.
// ok is false when more than cfg.MaxAmbiguousSymbolFraction of
// symbols tie in their majority vote, the drop condition spec section
// 4.H names.
func DemodulatePlateau(stream []float64, plateau Plateau, center float64, bitLength, tolerance int, higherIsOne bool, cfg config.Config) (bits []byte, ok bool) {
	start, end := plateau.Start, plateau.End
	if end > len(stream) {
		end = len(stream)
	}
	if end-start < bitLength {
		return nil, false
	}
	seg := stream[start:end]

	q := make([]byte, len(seg))
	for i, v := range seg {
		above := v > center
		if above == higherIsOne {
			q[i] = 1
		}
	}

	phase := firstTransition(q)
	numSymbols := (len(q) - phase) / bitLength
	if numSymbols < 1 {
		return nil, false
	}

	bits = make([]byte, numSymbols)
	ambiguous := 0
	for sym := 0; sym < numSymbols; sym++ {
		winStart := phase + sym*bitLength
		winEnd := winStart + bitLength
		innerStart := winStart + tolerance
		innerEnd := winEnd - tolerance
		if innerStart >= innerEnd {
			innerStart, innerEnd = winStart, winEnd
		}
		if innerEnd > len(q) {
			innerEnd = len(q)
		}

		ones, zeros := 0, 0
		for _, b := range q[innerStart:innerEnd] {
			if b == 1 {
				ones++
			} else {
				zeros++
			}
		}
		if ones == zeros {
			ambiguous++
		}
		if ones >= zeros {
			bits[sym] = 1
		} else {
			bits[sym] = 0
		}
	}

	if float64(ambiguous)/float64(numSymbols) > cfg.MaxAmbiguousSymbolFraction {
		return nil, false
	}
	return bits, true
}

// firstTransition returns the index of the first sample that differs
// from its predecessor, setting the phase symbol boundaries are
// measured from. If the quantized stream never transitions, 0 is
// used (no information to align to).
func firstTransition(q []byte) int {
	for i := 1; i < len(q); i++ {
		if q[i] != q[0] {
			return i
		}
	}
	return 0
}
