package urh

import (
	"github.com/sigwave/urhcore/config"
	"github.com/sigwave/urhcore/internal/fsked"
)

// findChecksum implements stage I.6: the trailing c in {8,16,32} bits
// of every message, for the widest catalogue entry that reproduces
// them from the preceding bytes. The catalogue is searched in the
// order given (config.DefaultChecksumCatalogue is already
// widest-first); the first entry that matches every message wins.
func findChecksum(messages []Message, l int, cfg config.Config) (Field, bool) {
	if l%8 != 0 || l < 16 {
		return Field{}, false
	}

	for _, alg := range cfg.ChecksumCatalogue {
		if alg.Width > l-8 {
			continue
		}
		if matchesAllMessages(messages, l, alg) {
			start := l - alg.Width
			return Field{Name: "checksum", Start: start, End: l, Label: FieldChecksum}, true
		}
	}
	return Field{}, false
}

func matchesAllMessages(messages []Message, l int, alg config.ChecksumAlgorithm) bool {
	for _, m := range messages {
		precedingBits := bitRange(m, 0, l-alg.Width)
		if len(precedingBits)%8 != 0 {
			return false
		}
		trailingBits := bitRange(m, l-alg.Width, l)
		want := bitsToUint(trailingBits, true)

		got := fsked.Compute(alg, fsked.BitsToBytes(precedingBits))
		if uint64(got) != want {
			return false
		}
	}
	return true
}
