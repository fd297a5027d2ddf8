// Package metrics computes read-only display indicators over a committed
// plan snapshot: remaining shelf width and front-to-back depth capacity.
// Nothing here mutates state; the presentation layer calls these after
// every commit.
package metrics

import (
	"math"

	"github.com/planora/shelfplan/pkg/layout"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

// DefaultProductDepth substitutes for products without a real depth when
// computing stack counts.
const DefaultProductDepth = 100.0

// FreeSpace returns the module width not claimed by product widths.
//
// This is a simplified capacity indicator, not geometric free area: it sums
// the real-or-display widths of all direct products, ignoring that stacked
// products share a column. Kept deliberately, because the number feeds a
// "remaining width" readout that users calibrate against.
func FreeSpace(m plan.Module) float64 {
	var used float64
	for _, p := range m.Products {
		used += sanitize(p.LayoutWidth())
	}
	return math.Max(0, m.Width-used)
}

// DepthInfo is the depth-capacity readout for one product.
type DepthInfo struct {
	ProductID string
	GroupKey  int

	// Capacity counts how many units fit front to back across the whole
	// column: each member contributes floor(module.Depth / memberDepth)
	// and co-located members are added together, not maxed.
	Capacity int

	// IsVisible is true only for the column's bottom member, so one label
	// renders per column instead of one per product.
	IsVisible bool

	// LabelX / LabelWidth span the union bounding box of the column
	// members' horizontal extents, anchoring the on-screen label.
	LabelX     float64
	LabelWidth float64
}

// DepthCapacity computes the per-column stack counts for a module.
// Products are grouped exactly like the layout engine groups them; results
// are returned in product array order.
func DepthCapacity(m plan.Module, records []record.Record) []DepthInfo {
	placed, _ := layout.Compute(m, records, layout.Options{})
	if len(placed) == 0 {
		return nil
	}

	type groupAgg struct {
		capacity   int
		minX       float64
		maxX       float64
		bottomID   string
		bottomRank float64
	}
	groups := make(map[int]*groupAgg)

	for i, pl := range placed {
		depth := sanitize(m.Products[i].RealDepth)
		if depth <= 0 {
			depth = DefaultProductDepth
		}

		g := groups[pl.GroupKey]
		if g == nil {
			g = &groupAgg{minX: pl.X, maxX: pl.X + pl.Width, bottomID: pl.ProductID, bottomRank: pl.StackRank}
			groups[pl.GroupKey] = g
		}

		if moduleDepth := sanitize(m.Depth); moduleDepth > 0 {
			g.capacity += int(math.Floor(moduleDepth / depth))
		}
		g.minX = math.Min(g.minX, pl.X)
		g.maxX = math.Max(g.maxX, pl.X+pl.Width)
		// Lowest rank is the stack bottom; array order wins ties.
		if pl.StackRank < g.bottomRank {
			g.bottomID = pl.ProductID
			g.bottomRank = pl.StackRank
		}
	}

	out := make([]DepthInfo, len(placed))
	for i, pl := range placed {
		g := groups[pl.GroupKey]
		out[i] = DepthInfo{
			ProductID:  pl.ProductID,
			GroupKey:   pl.GroupKey,
			Capacity:   g.capacity,
			IsVisible:  pl.ProductID == g.bottomID,
			LabelX:     g.minX,
			LabelWidth: g.maxX - g.minX,
		}
	}
	return out
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
