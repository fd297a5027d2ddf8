// Package record implements the tabular record mirror for shelf plans.
//
// Every physical product instance placed on a plan is backed by exactly one
// Record, originally one spreadsheet row. The record set is the source of
// truth for position encodings and module membership: layout resolves a
// product's position through its record first, and every mutation that moves
// a product must write the new module and position back into the record set.
//
// All store operations are pure: they take a record slice and return a new
// one, leaving the input untouched. This keeps the reducers'
// "read snapshot, compute, commit" pattern free of hidden aliasing.
package record

// Record is one row of the tabular product data.
//
// ItemCode identifies the physical good (e.g., a barcode). Quantity
// expansion rewrites item codes with a duplicate suffix while preserving
// the original in OriginalItemCode, so matching a product to its record
// must consider both (see Matches).
type Record struct {
	ItemCode         string  `json:"itemCode"`
	OriginalItemCode string  `json:"originalItemCode,omitempty"`
	Module           string  `json:"module"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height,omitempty"`
	Depth            float64 `json:"depth,omitempty"`
	Name             string  `json:"name,omitempty"`
	Position         float64 `json:"position,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	DupIndex         int     `json:"dupIndex,omitempty"`
}

// Matches reports whether the record describes the product identified by
// the given item code and original item code.
//
// Three comparisons are required because quantity expansion rewrites item
// codes but keeps the original code as a breadcrumb:
//   - record.ItemCode == product.ItemCode (exact instance)
//   - record.OriginalItemCode == product.OriginalItemCode (both expanded
//     from the same source row)
//   - record.ItemCode == product.OriginalItemCode (record still carries the
//     pre-expansion code)
//
// Empty codes never match; a blank field on either side would otherwise
// pair unrelated rows.
func (r Record) Matches(itemCode, originalItemCode string) bool {
	if itemCode != "" && r.ItemCode == itemCode {
		return true
	}
	if originalItemCode != "" && r.OriginalItemCode == originalItemCode {
		return true
	}
	if originalItemCode != "" && r.ItemCode == originalItemCode {
		return true
	}
	return false
}
