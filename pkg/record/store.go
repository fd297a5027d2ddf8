package record

import "slices"

// FindByItemCode returns the first record whose ItemCode equals code.
// The second return value reports whether a record was found.
func FindByItemCode(records []Record, code string) (Record, bool) {
	for _, r := range records {
		if r.ItemCode == code {
			return r, true
		}
	}
	return Record{}, false
}

// FindByModule returns all records assigned to the given module, in their
// stored order.
func FindByModule(records []Record, moduleID string) []Record {
	var out []Record
	for _, r := range records {
		if r.Module == moduleID {
			out = append(out, r)
		}
	}
	return out
}

// FindMatching returns the first record matching the product identified by
// itemCode/originalItemCode (see [Record.Matches]). The second return value
// reports whether a record was found.
//
// When several records match, the first in stored order wins. Callers that
// need to surface ambiguity can use [Matching] instead.
func FindMatching(records []Record, itemCode, originalItemCode string) (Record, bool) {
	for _, r := range records {
		if r.Matches(itemCode, originalItemCode) {
			return r, true
		}
	}
	return Record{}, false
}

// Matching returns every record matching the product identified by
// itemCode/originalItemCode, in stored order. More than one result means
// the record set is ambiguous for this product; first-hit resolution
// applies everywhere else in the package.
func Matching(records []Record, itemCode, originalItemCode string) []Record {
	var out []Record
	for _, r := range records {
		if r.Matches(itemCode, originalItemCode) {
			out = append(out, r)
		}
	}
	return out
}

// Update applies patch to every record satisfying match and returns the
// resulting record set. Records that do not match are copied through
// unchanged. The input slice is not modified.
func Update(records []Record, match func(Record) bool, patch func(Record) Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if match(r) {
			r = patch(r)
		}
		out[i] = r
	}
	return out
}

// RemoveByItemCode returns the record set with every record whose ItemCode
// equals code removed. Records sharing only the original item code are
// kept: removing one duplicate must not delete its siblings.
func RemoveByItemCode(records []Record, code string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ItemCode == code {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RenumberPositions rewrites the positions of the given module's records to
// sequential integers (1, 2, 3, ...) following newOrder, a list of item
// codes in the desired arrangement. Records of other modules and records
// whose item code does not appear in newOrder are unchanged.
func RenumberPositions(records []Record, moduleID string, newOrder []string) []Record {
	rank := make(map[string]int, len(newOrder))
	for i, code := range newOrder {
		rank[code] = i + 1
	}

	out := slices.Clone(records)
	for i, r := range out {
		if r.Module != moduleID {
			continue
		}
		if n, ok := rank[r.ItemCode]; ok {
			out[i].Position = float64(n)
		}
	}
	return out
}

// SwapPositions exchanges the position encodings of the records identified
// by codeA and codeB. If either code has no record, the set is returned
// unchanged.
func SwapPositions(records []Record, codeA, codeB string) []Record {
	a, okA := FindByItemCode(records, codeA)
	b, okB := FindByItemCode(records, codeB)
	if !okA || !okB {
		return slices.Clone(records)
	}

	posA, posB := a.Position, b.Position
	out := slices.Clone(records)
	for i, r := range out {
		switch r.ItemCode {
		case codeA:
			out[i].Position = posB
		case codeB:
			out[i].Position = posA
		}
	}
	return out
}
