// Package position implements the fractional position encoding used to
// arrange products inside a shelf module.
//
// A position is a single non-negative float. Its integer part selects the
// column (the "group") a product belongs to, and its fractional part orders
// products stacked inside that column:
//
//	position 3.0  -> column 3, bottom of the stack
//	position 3.1  -> column 3, above 3.0
//	position 4.0  -> column 4, bottom
//
// Columns are laid out left to right by ascending group key; stacks grow
// bottom to top by ascending rank. Products that carry no position are
// assigned the next unused integer column in the order they appear.
package position

import "math"

// GroupKey returns the integer column key of a position.
// Non-finite or negative positions map to column 0.
func GroupKey(pos float64) int {
	if !isFinite(pos) || pos < 0 {
		return 0
	}
	return int(math.Floor(pos))
}

// StackRank returns the fractional stacking rank of a position.
// The rank orders members within a column: 0 is the bottom of the stack,
// larger ranks sit higher. Non-finite or negative positions rank 0.
func StackRank(pos float64) float64 {
	if !isFinite(pos) || pos < 0 {
		return 0
	}
	return pos - math.Floor(pos)
}

// IsSet reports whether pos carries an explicit position assignment.
// Zero, negative and non-finite values all count as unset.
func IsSet(pos float64) bool {
	return isFinite(pos) && pos > 0
}

// AssignMissing fills unset entries with fresh integer column keys.
//
// Entries are scanned in slice order. Each unset entry (see IsSet) receives
// the smallest integer >= 1 that is not yet used as a group key by any
// earlier assignment or any set entry. Set entries are returned unchanged.
// The input slice is not modified.
func AssignMissing(positions []float64) []float64 {
	out := make([]float64, len(positions))
	used := make(map[int]bool, len(positions))

	for i, p := range positions {
		if IsSet(p) {
			out[i] = p
			used[GroupKey(p)] = true
		}
	}

	next := 1
	for i, p := range positions {
		if IsSet(p) {
			continue
		}
		for used[next] {
			next++
		}
		out[i] = float64(next)
		used[next] = true
	}

	return out
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
