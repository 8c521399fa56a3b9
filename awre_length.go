package urh

import "github.com/sigwave/urhcore/config"

// lengthCandidate is one (offset, width, byte-order) hypothesis for
// the length field.
type lengthCandidate struct {
	offset, width int
	bigEndian     bool
	bytesUnit     bool // a=1/8 (value counts bytes) vs a=1 (value counts bits)
}

// findLength implements stage I.3: scans byte-aligned offsets in
// [from, min(from+64, l)) at the widths in cfg.LengthFieldWidths
// (default {4,8,12,16}), in both
// byte orders, and accepts the first (by the documented tie-break)
// whose value is an exact affine function of message bit-length with
// a in {1, 1/8}. Payload length P_i is taken as the message's total
// bit length: a constant structural prefix before the length field
// only shifts the affine intercept b, which the residual-0 check
// already absorbs, so this is equivalent in discriminating power to
// offsetting P_i by a fixed address-region width without needing to
// resolve addresses first (which, per stage ordering, have not been
// assigned yet).
func findLength(messages []Message, from, l int, cfg config.Config) (field Field, ok bool) {
	if !lengthsVary(messages) {
		// P_i constant across the type (the common case once I.8 has
		// clustered by exact length): v_i = a*P_i + b is solvable by
		// any constant field, so there is nothing to discriminate a
		// real length field from an arbitrary fixed one. Report none
		// rather than mislabel the first constant-valued byte.
		return Field{}, false
	}

	limit := from + 64
	if limit > l {
		limit = l
	}

	firstByteAligned := (from + 7) / 8 * 8

	var best *lengthCandidate
	for offset := firstByteAligned; offset+4 <= limit; offset += 8 {
		for _, width := range cfg.LengthFieldWidths {
			if offset+width > l {
				continue
			}
			orders := []bool{true}
			if width >= 8 && width%8 == 0 {
				orders = []bool{true, false}
			}
			for _, bigEndian := range orders {
				for _, bytesUnit := range []bool{true, false} {
					if lengthCandidateFits(messages, offset, width, bigEndian, bytesUnit) {
						cand := lengthCandidate{offset: offset, width: width, bigEndian: bigEndian, bytesUnit: bytesUnit}
						if best == nil || betterLengthCandidate(cand, *best) {
							c := cand
							best = &c
						}
					}
				}
			}
		}
	}

	if best == nil {
		return Field{}, false
	}
	return Field{Name: "length", Start: best.offset, End: best.offset + best.width, Label: FieldLength}, true
}

// betterLengthCandidate applies the tie-break: earliest offset, then
// narrower width.
func betterLengthCandidate(a, b lengthCandidate) bool {
	if a.offset != b.offset {
		return a.offset < b.offset
	}
	return a.width < b.width
}

func lengthsVary(messages []Message) bool {
	if len(messages) == 0 {
		return false
	}
	first := messages[0].Len()
	for _, m := range messages[1:] {
		if m.Len() != first {
			return true
		}
	}
	return false
}

func lengthCandidateFits(messages []Message, offset, width int, bigEndian, bytesUnit bool) bool {
	if len(messages) < 2 {
		return false
	}
	a := 1.0
	if bytesUnit {
		a = 1.0 / 8.0
	}

	var b float64
	for i, m := range messages {
		v := float64(bitsToUint(bitRange(m, offset, offset+width), bigEndian))
		p := float64(m.Len())
		residual := v - a*p
		if i == 0 {
			b = residual
			continue
		}
		if residual != b {
			return false
		}
	}
	return true
}
