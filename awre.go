package urh

import (
	"sync"

	"github.com/sigwave/urhcore/config"
)

// findFormat implements the top-level AWRE Format Finder (spec
// section 4.I): preamble and sync are structural to the whole capture
// and are found once, across every message; the messages are then
// split into message types (stage I.8), and the remaining per-type
// stages (length, address, sequence, checksum, payload) run
// concurrently, one goroutine per type, each working only on its own
// slice of messages and returning its own immutable field list --
// there is no shared mutable state between types (spec section 5).
func findFormat(messages []Message, cfg config.Config) ([]Field, []MessageType) {
	if len(messages) == 0 {
		return nil, nil
	}

	l := commonPrefixLength(messages)

	var shared []Field
	preambleEnd := 0
	if end, ok := findPreamble(messages, l, cfg); ok {
		f := Field{Name: "preamble", Start: 0, End: end, Label: FieldPreamble}
		shared = append(shared, f)
		preambleEnd = end
	}
	if end, ok := findSync(messages, preambleEnd, l, cfg); ok {
		shared = append(shared, Field{Name: "sync", Start: preambleEnd, End: end, Label: FieldSync})
	}

	types := clusterMessages(messages)

	perType := make([][]Field, len(types))
	var wg sync.WaitGroup
	for i, mt := range types {
		wg.Add(1)
		go func(i int, mt MessageType) {
			defer wg.Done()
			typeMessages := messagesFor(messages, mt.indices)
			perType[i] = findTypeFields(typeMessages, l, shared, cfg)
		}(i, mt)
	}
	wg.Wait()

	var allFields []Field
	for i := range types {
		fields := make([]Field, 0, len(shared)+len(perType[i]))
		for _, f := range shared {
			f.MessageTypeID = types[i].ID
			fields = append(fields, f)
		}
		for _, f := range perType[i] {
			f.MessageTypeID = types[i].ID
			fields = append(fields, f)
		}
		sortFieldsByStart(fields)
		types[i].Fields = fields
		allFields = append(allFields, fields...)
	}

	return allFields, types
}

// findTypeFields runs stages I.3 through I.7 for a single message
// type, starting from the fields (preamble, sync) already assigned to
// every message.
func findTypeFields(messages []Message, l int, shared []Field, cfg config.Config) []Field {
	assigned := append([]Field{}, shared...)
	from := 0
	for _, f := range assigned {
		if f.End > from {
			from = f.End
		}
	}

	if lengthField, ok := findLength(messages, from, l, cfg); ok {
		assigned = append(assigned, lengthField)
	}

	assigned = append(assigned, findAddresses(messages, l, assigned)...)

	if seqField, ok := findSequence(messages, l, assigned); ok {
		assigned = append(assigned, seqField)
	}

	checksumStart := -1
	if checksumField, ok := findChecksum(messages, l, cfg); ok && !overlapsAny(checksumField.Start, checksumField.End, assigned) {
		assigned = append(assigned, checksumField)
		checksumStart = checksumField.Start
	}

	if dataField, ok := findPayload(l, assigned, checksumStart); ok {
		assigned = append(assigned, dataField)
	}

	// Only the per-type stages belong in the per-type result; the
	// caller merges the shared fields (preamble, sync) into each
	// type's list itself.
	var out []Field
	for _, f := range assigned {
		isShared := false
		for _, s := range shared {
			if f.Start == s.Start && f.End == s.End && f.Label == s.Label {
				isShared = true
				break
			}
		}
		if !isShared {
			out = append(out, f)
		}
	}
	sortFieldsByStart(out)
	return out
}
