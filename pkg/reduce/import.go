package reduce

import (
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

// Import merges a batch of tabular rows into the plan.
//
// Quantity rows are expanded into one record per physical instance first
// (see [record.Expand]). Every referenced module is created with defaults
// when absent, one product is created per expanded record, and each touched
// module is relayouted. The expanded records replace any prior record with
// the same item code and are appended to the mirror otherwise.
func Import(p plan.Plan, rows []record.Record) plan.Plan {
	expanded := record.Expand(rows)

	out := p.Clone()
	touched := make(map[string]bool)

	for _, row := range expanded {
		out.Records = upsertRecord(out.Records, row)

		if row.Module == "" {
			continue
		}
		mi := ensureModule(&out, row.Module)

		// One product per physical instance; re-imports of a known item
		// code update the existing product in place.
		pi := findProductByItemCode(&out.Modules[mi], row.ItemCode)
		if pi < 0 {
			out.Modules[mi].Products = append(out.Modules[mi].Products, productFromRecord(row))
		} else {
			updateProductFromRecord(&out.Modules[mi].Products[pi], row)
		}
		touched[row.Module] = true
	}

	for moduleID := range touched {
		relayoutModule(&out, out.FindModule(moduleID))
	}
	return out
}

// upsertRecord replaces the record with row's item code, or appends.
func upsertRecord(records []record.Record, row record.Record) []record.Record {
	for i, r := range records {
		if r.ItemCode == row.ItemCode {
			out := make([]record.Record, len(records))
			copy(out, records)
			out[i] = row
			return out
		}
	}
	return append(records, row)
}

func findProductByItemCode(m *plan.Module, itemCode string) int {
	for i, p := range m.Products {
		if p.ItemCode == itemCode {
			return i
		}
	}
	return -1
}

// productFromRecord builds the in-plan product for one expanded record.
// Display dimensions start at the real-world dimensions; the presentation
// layer applies its own scale on top.
func productFromRecord(row record.Record) plan.Product {
	return plan.Product{
		ID:               plan.NewProductID(),
		Name:             row.Name,
		DisplayWidth:     row.Width,
		DisplayHeight:    row.Height,
		ItemCode:         row.ItemCode,
		OriginalItemCode: row.OriginalItemCode,
		RealWidth:        row.Width,
		RealHeight:       row.Height,
		RealDepth:        row.Depth,
		Position:         row.Position,
		Quantity:         row.Quantity,
		DupIndex:         row.DupIndex,
		ModuleID:         row.Module,
	}
}

// updateProductFromRecord refreshes an existing product from a re-imported
// record, keeping its identity and placement.
func updateProductFromRecord(p *plan.Product, row record.Record) {
	p.Name = row.Name
	p.RealWidth = row.Width
	p.RealHeight = row.Height
	p.RealDepth = row.Depth
	p.Position = row.Position
	p.Quantity = row.Quantity
	p.DupIndex = row.DupIndex
	p.OriginalItemCode = row.OriginalItemCode
}
