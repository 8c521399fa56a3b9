package urh

// findPayload implements stage I.7: whatever bits are left between
// the last already-assigned field and the end of the common prefix
// (the checksum, if one was found, else the message length) become a
// single data field. A zero-width remainder yields no field at all.
func findPayload(l int, assigned []Field, checksumStart int) (Field, bool) {
	end := l
	if checksumStart >= 0 {
		end = checksumStart
	}

	start := 0
	for _, f := range assigned {
		if f.End > start {
			start = f.End
		}
	}

	if start >= end {
		return Field{}, false
	}
	return Field{Name: "data", Start: start, End: end, Label: FieldData}, true
}
