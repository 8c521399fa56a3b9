package urh

import "strconv"

// clusterMessages implements stage I.8. Messages are clustered first
// by exact bit length; any length shared by at least two messages
// becomes its own candidate type, named DefaultMessageTypeID for the
// first such repeated length to appear and "Type 2", "Type 3", ... for
// the rest in order of first appearance. A length observed in only one
// message does not get a singleton type of its own: it is folded into
// whichever existing cluster has the closest length, so that every
// message ends up assigned to some type and the finder below always
// has at least one sibling to compare against. (Decided as an Open
// Question: the original reverse-engineering tool's clustering is a
// multi-pass heuristic with no single documented invariant, so this
// package pins a deterministic rule instead of chasing behavioral
// equivalence.)
func clusterMessages(messages []Message) []MessageType {
	if len(messages) == 0 {
		return nil
	}

	lengthCounts := map[int]int{}
	for _, m := range messages {
		lengthCounts[m.Len()]++
	}

	var clusterLengths []int
	firstSeen := map[int]int{}
	for i, m := range messages {
		l := m.Len()
		if lengthCounts[l] < 2 {
			continue
		}
		if _, ok := firstSeen[l]; !ok {
			firstSeen[l] = i
			clusterLengths = append(clusterLengths, l)
		}
	}

	// No length repeats: everything is one type.
	if len(clusterLengths) == 0 {
		indices := make([]int, len(messages))
		for i := range indices {
			indices[i] = i
		}
		return []MessageType{{ID: DefaultMessageTypeID, indices: indices}}
	}

	// Sort clusterLengths by first appearance (insertion order already
	// satisfies this since we appended in index order).
	typeOf := func(l int) int {
		best, bestDist := -1, 0
		for i, cl := range clusterLengths {
			dist := cl - l
			if dist < 0 {
				dist = -dist
			}
			if best == -1 || dist < bestDist {
				best, bestDist = i, dist
			}
		}
		return best
	}

	buckets := make([][]int, len(clusterLengths))
	for i, m := range messages {
		idx := typeOf(m.Len())
		buckets[idx] = append(buckets[idx], i)
	}

	types := make([]MessageType, len(clusterLengths))
	for i, indices := range buckets {
		id := DefaultMessageTypeID
		if i > 0 {
			id = typeName(i + 1)
		}
		types[i] = MessageType{ID: id, indices: indices}
	}
	return types
}

func typeName(n int) string {
	return "Type " + strconv.Itoa(n)
}

func messagesFor(all []Message, indices []int) []Message {
	out := make([]Message, len(indices))
	for i, idx := range indices {
		out[i] = all[idx]
	}
	return out
}
