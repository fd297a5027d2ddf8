package reduce

import (
	"math"

	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/position"
	"github.com/planora/shelfplan/pkg/record"
)

// AddProduct appends a product to the given module and relayouts it. The
// module is created with defaults when absent. A missing product ID is
// filled with a fresh one.
func AddProduct(p plan.Plan, moduleID string, prod plan.Product) (plan.Plan, string, error) {
	if moduleID == "" {
		return p, "", errors.New(errors.ErrCodeInvalidInput, "module ID required")
	}
	if prod.ItemCode != "" {
		if err := errors.ValidateItemCode(prod.ItemCode); err != nil {
			return p, "", err
		}
	}

	out := p.Clone()
	mi := ensureModule(&out, moduleID)

	if prod.ID == "" {
		prod.ID = plan.NewProductID()
	}
	prod.ModuleID = moduleID

	out.Modules[mi].Products = append(out.Modules[mi].Products, prod)
	relayoutModule(&out, mi)
	return out, prod.ID, nil
}

// MoveProduct moves a product into another module. The product is detached
// from its source, appended to the target (created with defaults when
// absent) and assigned a fresh column: one past the highest integer group
// key already present in the target. The matching record's module and
// position are updated to mirror the move, and both modules relayout.
func MoveProduct(p plan.Plan, productID, targetModuleID string) (plan.Plan, error) {
	if targetModuleID == "" {
		return p, errors.New(errors.ErrCodeInvalidInput, "target module ID required")
	}

	srcMi, pi := p.FindProduct(productID)
	if srcMi < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productID)
	}
	if p.Modules[srcMi].ID == targetModuleID {
		return p, nil
	}

	out := p.Clone()
	dstMi := ensureModule(&out, targetModuleID)

	src := &out.Modules[srcMi]
	prod := src.Products[pi]
	src.Products = append(src.Products[:pi], src.Products[pi+1:]...)

	newPos := float64(maxGroupKey(&out, dstMi) + 1)
	prod.ModuleID = targetModuleID
	prod.Position = newPos
	prod.Placement = plan.Placement{}

	out.Modules[dstMi].Products = append(out.Modules[dstMi].Products, prod)

	out.Records = syncRecord(out.Records, prod, func(r record.Record) record.Record {
		r.Module = targetModuleID
		r.Position = newPos
		return r
	})

	relayoutModule(&out, srcMi)
	relayoutModule(&out, dstMi)
	return out, nil
}

// FreeDrag sets a product's coordinates directly, bypassing the layout
// engine. The manual override is authoritative until the next relayout of
// the owning module collapses it. Malformed coordinates keep the prior
// placement.
func FreeDrag(p plan.Plan, productID string, x, y float64) (plan.Plan, error) {
	mi, pi := p.FindProduct(productID)
	if mi < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productID)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return p, nil
	}

	out := p.Clone()
	out.Modules[mi].Products[pi].Placement = plan.Placement{
		Mode: plan.PlacementManual,
		X:    math.Max(0, x),
		Y:    math.Max(0, y),
	}
	return out, nil
}

// RemoveProduct detaches a product from its module, deletes the record rows
// carrying its exact item code and relayouts the remaining products.
// Records of duplicate siblings (same original item code, different suffix)
// are kept.
func RemoveProduct(p plan.Plan, productID string) (plan.Plan, error) {
	mi, pi := p.FindProduct(productID)
	if mi < 0 {
		return p, errors.New(errors.ErrCodeProductNotFound, "product %s not found", productID)
	}

	out := p.Clone()
	m := &out.Modules[mi]
	prod := m.Products[pi]
	m.Products = append(m.Products[:pi], m.Products[pi+1:]...)

	if prod.ItemCode != "" {
		out.Records = record.RemoveByItemCode(out.Records, prod.ItemCode)
	}

	relayoutModule(&out, mi)
	return out, nil
}

// maxGroupKey returns the highest integer group key currently used in the
// module at index mi, resolving positions the same way the layout engine
// does. Returns 0 for an empty module, so the first assigned column is 1.
func maxGroupKey(p *plan.Plan, mi int) int {
	m := &p.Modules[mi]
	maxKey := 0
	for _, prod := range m.Products {
		pos := prod.Position
		if rec, ok := record.FindMatching(p.Records, prod.ItemCode, prod.OriginalItemCode); ok && position.IsSet(rec.Position) {
			pos = rec.Position
		}
		if k := position.GroupKey(pos); k > maxKey {
			maxKey = k
		}
	}
	return maxKey
}

// syncRecord patches the first record matching prod (three-way item-code
// match). Only the first hit is touched so duplicate siblings keep their
// own rows.
func syncRecord(records []record.Record, prod plan.Product, patch func(record.Record) record.Record) []record.Record {
	for i, r := range records {
		if r.Matches(prod.ItemCode, prod.OriginalItemCode) {
			out := make([]record.Record, len(records))
			copy(out, records)
			out[i] = patch(r)
			return out
		}
	}
	return records
}
