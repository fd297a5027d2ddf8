package record

import (
	"fmt"
	"math"

	"github.com/planora/shelfplan/pkg/position"
)

// Expand converts quantity rows into one record per physical instance.
//
// A row with Quantity <= 1 passes through unchanged. A row with Quantity n
// becomes n records, each with:
//   - a duplicate-suffixed item code ("<code>-<q>" for q >= 2; the first
//     instance keeps the original code)
//   - OriginalItemCode set to the source row's code
//   - DupIndex set to the instance number q (1-based)
//   - a synthesized position derived from the source position:
//     integer positions expand in tenths (2 -> 2.1, 2.2, 2.3) so all
//     instances stack in the source column; decimal positions expand in
//     hundredths (2.4 -> 2.41, 2.42) to keep them ordered inside the
//     source slot without colliding with neighbouring tenths.
//
// Rows without a position expand with position 0 and are assigned columns
// later by the layout engine.
func Expand(rows []Record) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if row.Quantity <= 1 {
			out = append(out, row)
			continue
		}

		for q := 1; q <= row.Quantity; q++ {
			dup := row
			dup.OriginalItemCode = row.ItemCode
			dup.DupIndex = q
			if q > 1 {
				dup.ItemCode = fmt.Sprintf("%s-%d", row.ItemCode, q)
			}
			dup.Position = expandPosition(row.Position, q)
			out = append(out, dup)
		}
	}
	return out
}

// expandPosition synthesizes the position for duplicate instance q of a
// source row. Integer source positions spread duplicates across tenths,
// decimal source positions across hundredths. Unset positions stay unset.
func expandPosition(pos float64, q int) float64 {
	if !position.IsSet(pos) {
		return 0
	}
	if pos == math.Trunc(pos) {
		return pos + float64(q)*0.1
	}
	return pos + float64(q)*0.01
}
