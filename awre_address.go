package urh

// addressWidths are the candidate byte-aligned widths spec section
// 4.I.4 names, narrowest first.
var addressWidths = []int{8, 16, 24, 32, 48, 64}

// findAddresses implements stage I.4: byte-aligned windows outside
// already-assigned ranges qualify as an address if their values are
// drawn from a set no larger than the message count (condition a)
// and at least one value also appears at a *different* offset in
// some message (condition b, cross-message/cross-position symmetry --
// the hallmark of paired source/destination addressing). Up to two
// fields are emitted, earliest offset first.
func findAddresses(messages []Message, l int, assigned []Field) []Field {
	k := len(messages)
	if k < 2 {
		return nil
	}

	type window struct {
		offset, width int
		values        []uint64
	}
	var windows []window
	valueLocations := map[uint64]map[int]bool{} // value -> set of offsets it was seen at

	for _, width := range addressWidths {
		for offset := 0; offset+width <= l; offset += 8 {
			if overlapsAny(offset, offset+width, assigned) {
				continue
			}
			values := make([]uint64, k)
			for i, m := range messages {
				values[i] = bitsToUint(bitRange(m, offset, offset+width), true)
			}
			windows = append(windows, window{offset: offset, width: width, values: values})
			for _, v := range values {
				if valueLocations[v] == nil {
					valueLocations[v] = map[int]bool{}
				}
				valueLocations[v][offset] = true
			}
		}
	}

	var candidates []Field
	for _, w := range windows {
		distinct := map[uint64]bool{}
		for _, v := range w.values {
			distinct[v] = true
		}
		if len(distinct) > k {
			continue
		}
		symmetric := false
		for v := range distinct {
			if len(valueLocations[v]) > 1 {
				symmetric = true
				break
			}
		}
		if !symmetric {
			continue
		}
		candidates = append(candidates, Field{Start: w.offset, End: w.offset + w.width, Label: FieldAddress})
	}

	sortFieldsByStart(candidates)

	var chosen []Field
	for _, c := range candidates {
		if overlapsAny(c.Start, c.End, chosen) {
			continue
		}
		chosen = append(chosen, c)
		if len(chosen) == 2 {
			break
		}
	}
	for i := range chosen {
		if i == 0 {
			chosen[i].Name = "address_1"
		} else {
			chosen[i].Name = "address_2"
		}
	}
	return chosen
}

func sortFieldsByStart(fields []Field) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Start > fields[j].Start; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}
