package reduce

import (
	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/position"
	"github.com/planora/shelfplan/pkg/record"
)

// SwapProducts exchanges the position encodings of two products in the same
// module: each takes the column/rank the other had, nothing else moves.
// The cross-assignment goes through the record store so the mirror and the
// stored fallback positions stay in sync, then the module relayouts.
func SwapProducts(p plan.Plan, productA, productB string) (plan.Plan, error) {
	if productA == productB {
		return p, nil
	}

	miA, piA := p.FindProduct(productA)
	miB, piB := p.FindProduct(productB)
	if miA < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productA)
	}
	if miB < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productB)
	}
	if miA != miB {
		return p, errors.New(errors.ErrCodeInvalidInput,
			"swap requires both products in the same module")
	}

	out := p.Clone()
	m := &out.Modules[miA]
	a := &m.Products[piA]
	b := &m.Products[piB]

	posA := resolvedPosition(out.Records, *a)
	posB := resolvedPosition(out.Records, *b)

	out.Records = syncRecord(out.Records, *a, func(r record.Record) record.Record {
		r.Position = posB
		return r
	})
	out.Records = syncRecord(out.Records, *b, func(r record.Record) record.Record {
		r.Position = posA
		return r
	})
	a.Position, b.Position = posB, posA

	relayoutModule(&out, miA)
	return out, nil
}

// InsertProductAt removes a product from its module's array and reinserts
// it at the given index, then renumbers the positions of every product in
// the module sequentially (1, 2, 3, ...) following the new array order.
// The renumbering is written to both the record mirror and the stored
// fallback positions before the module relayouts.
func InsertProductAt(p plan.Plan, productID string, index int) (plan.Plan, error) {
	mi, pi := p.FindProduct(productID)
	if mi < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productID)
	}

	out := p.Clone()
	m := &out.Modules[mi]

	prod := m.Products[pi]
	m.Products = append(m.Products[:pi], m.Products[pi+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(m.Products) {
		index = len(m.Products)
	}
	m.Products = append(m.Products[:index], append([]plan.Product{prod}, m.Products[index:]...)...)

	order := make([]string, len(m.Products))
	for i := range m.Products {
		m.Products[i].Position = float64(i + 1)
		order[i] = m.Products[i].ItemCode
	}
	out.Records = record.RenumberPositions(out.Records, m.ID, order)

	relayoutModule(&out, mi)
	return out, nil
}

// DropOn applies the session drag mode to a same-module drop of the dragged
// product onto the target product: swap mode exchanges their positions,
// insert mode reinserts the dragged product at the target's slot and
// renumbers the module.
func DropOn(p plan.Plan, draggedID, targetID string) (plan.Plan, error) {
	if p.DragMode == plan.DragModeInsert {
		mi, ti := p.FindProduct(targetID)
		if mi < 0 {
			return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", targetID)
		}
		dmi, _ := p.FindProduct(draggedID)
		if dmi >= 0 && dmi != mi {
			return p, errors.New(errors.ErrCodeInvalidInput,
				"insert drop requires both products in the same module")
		}
		return InsertProductAt(p, draggedID, ti)
	}
	return SwapProducts(p, draggedID, targetID)
}

// resolvedPosition returns the product's effective position encoding the
// same way the layout engine resolves it: record first, stored second.
func resolvedPosition(records []record.Record, prod plan.Product) float64 {
	if rec, ok := record.FindMatching(records, prod.ItemCode, prod.OriginalItemCode); ok && position.IsSet(rec.Position) {
		return rec.Position
	}
	return prod.Position
}
