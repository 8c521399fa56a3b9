package urh

// findSequence implements stage I.5: a byte-aligned window (width 8
// or 16) outside already-assigned ranges whose per-message values,
// read in arrival order, form a strictly increasing (mod 2^width)
// sequence with a constant increment of 1 or 2. At most one field is
// emitted per message type: every 8-bit window is tried before any
// 16-bit window, each width from the earliest offset up, and the
// first qualifying window wins.
func findSequence(messages []Message, l int, assigned []Field) (Field, bool) {
	if len(messages) < 2 {
		return Field{}, false
	}

	for _, width := range []int{8, 16} {
		modulus := uint64(1) << uint(width)
		for offset := 0; offset+width <= l; offset += 8 {
			if overlapsAny(offset, offset+width, assigned) {
				continue
			}
			values := make([]uint64, len(messages))
			for i, m := range messages {
				values[i] = bitsToUint(bitRange(m, offset, offset+width), true)
			}
			if increment, ok := constantIncrement(values, modulus); ok && (increment == 1 || increment == 2) {
				return Field{Name: "sequence_number", Start: offset, End: offset + width, Label: FieldSequenceNumber}, true
			}
		}
	}
	return Field{}, false
}

// constantIncrement reports the common (value[i+1]-value[i]) mod m
// across all consecutive pairs, if there is exactly one such value
// and it is positive.
func constantIncrement(values []uint64, modulus uint64) (uint64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	inc := (values[1] + modulus - values[0]%modulus) % modulus
	if inc == 0 {
		return 0, false
	}
	for i := 1; i < len(values)-1; i++ {
		d := (values[i+1] + modulus - values[i]%modulus) % modulus
		if d != inc {
			return 0, false
		}
	}
	return inc, true
}
