package urh

import "github.com/sigwave/urhcore/config"

// preamblePeriods are the candidate repeat periods spec section 4.I.1
// names, smallest first (used as the tie-break when two periods tie
// on matched length).
var preamblePeriods = []int{1, 2, 4, 8}

// findPreamble implements stage I.1: the longest prefix built from a
// repeating period-p pattern (p in {1,2,4,8}) identical across every
// message, tolerating mismatch only in the final partial period.
// Returns (0, false) if no candidate reaches cfg.MinPreambleBits.
func findPreamble(messages []Message, l int, cfg config.Config) (end int, ok bool) {
	if len(messages) == 0 || l == 0 {
		return 0, false
	}

	bestLen := -1
	bestPeriod := 0
	for _, p := range preamblePeriods {
		if p > l {
			continue
		}
		matched := fullPeriodsMatched(messages, p, l)
		if matched > bestLen {
			bestLen = matched
			bestPeriod = p
		}
	}
	_ = bestPeriod

	if bestLen >= cfg.MinPreambleBits {
		return bestLen, true
	}
	return 0, false
}

// fullPeriodsMatched returns the number of bits (a multiple of p) for
// which every message agrees with message 0's first-p-bits pattern,
// repeated. It stops at the first bit position where some message
// disagrees, so a trailing partial period is naturally excluded.
func fullPeriodsMatched(messages []Message, p, l int) int {
	pattern := bitRange(messages[0], 0, p)

	matchedBits := 0
	for pos := 0; pos+p <= l; pos += p {
		for _, m := range messages {
			for i := 0; i < p; i++ {
				if m.bits[pos+i] != pattern[i] {
					return matchedBits
				}
			}
		}
		matchedBits += p
	}
	return matchedBits
}
