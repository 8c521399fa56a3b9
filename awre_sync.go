package urh

import "github.com/sigwave/urhcore/config"

// findSync implements stage I.2: starting at from (the preamble end,
// or 0), the longest maximal contiguous bit run identical across
// every message whose length is a multiple of 4 bits and at least
// cfg.MinSyncBits.
func findSync(messages []Message, from, l int, cfg config.Config) (end int, ok bool) {
	if from >= l {
		return 0, false
	}

	mismatch := l
	for pos := from; pos < l; pos++ {
		ref := messages[0].bits[pos]
		for _, m := range messages[1:] {
			if m.bits[pos] != ref {
				mismatch = pos
				break
			}
		}
		if mismatch != l {
			break
		}
	}

	length := mismatch - from
	length -= length % 4
	if length < cfg.MinSyncBits {
		return 0, false
	}
	return from + length, true
}
