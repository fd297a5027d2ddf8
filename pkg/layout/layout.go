// Package layout computes product placements inside a shelf module from
// position encodings.
//
// The algorithm is a fixed, deterministic layout rule, not an optimizer:
// products are partitioned into columns by the integer part of their
// position, columns are placed left to right with zero gap, and each
// column's members stack bottom to top by the fractional part, again with
// zero gap. The module is then auto-fitted around its contents, floored at
// a minimum size, and every coordinate is clamped into the module so
// rounding can never push a product outside.
//
// Compute is idempotent: running it on its own output yields identical
// placements and dimensions.
package layout

import (
	"math"
	"slices"
	"sort"

	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/position"
	"github.com/planora/shelfplan/pkg/record"
)

// Default spacing reserved around the content area.
const (
	// DefaultHeaderHeight is reserved at the top of a module for its label.
	DefaultHeaderHeight = 20.0

	// DefaultEdgePadding is added once per axis when auto-fitting the
	// module around its contents. There is deliberately no padding between
	// products: columns and stacks touch ("no spacing" rule).
	DefaultEdgePadding = 10.0
)

// Options configures the fixed spacing constants of the layout rule.
// The zero value selects the defaults.
type Options struct {
	HeaderHeight float64 // vertical space reserved above the content area
	EdgePadding  float64 // auto-fit margin per axis
}

func (o Options) headerHeight() float64 {
	if o.HeaderHeight > 0 {
		return o.HeaderHeight
	}
	return DefaultHeaderHeight
}

func (o Options) edgePadding() float64 {
	if o.EdgePadding > 0 {
		return o.EdgePadding
	}
	return DefaultEdgePadding
}

// Placed is one product's computed placement.
// X/Y are relative to the module's content area origin (top-left, below
// the header), with Y growing downward.
type Placed struct {
	ProductID string
	X, Y      float64
	Width     float64
	Height    float64

	// Position is the resolved position encoding the placement came from.
	Position  float64
	GroupKey  int
	StackRank float64
}

// Size is a module's auto-fitted dimensions.
type Size struct {
	Width  float64
	Height float64
}

// Compute lays out every product of module m and derives the module's
// auto-fitted size.
//
// Position resolution per product, first hit wins:
//  1. the matching tabular record's position (three-way item-code match)
//  2. the product's own stored position
//  3. auto-assignment of the next unused integer column, in array order
//
// Malformed dimensions (NaN, infinite, negative) contribute zero; the
// result never contains a non-finite coordinate.
func Compute(m plan.Module, records []record.Record, opts Options) ([]Placed, Size) {
	header := opts.headerHeight()
	pad := opts.edgePadding()

	if len(m.Products) == 0 {
		return nil, Size{Width: plan.MinModuleWidth, Height: plan.MinModuleHeight}
	}

	positions := resolvePositions(m.Products, records)

	// Partition into columns by integer group key, keeping array order
	// within each column so equal ranks break ties stably.
	groups := make(map[int][]int)
	for i := range m.Products {
		key := position.GroupKey(positions[i])
		groups[key] = append(groups[key], i)
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	// Stack order inside a column: ascending rank, array order on ties.
	for _, k := range keys {
		idxs := groups[k]
		sort.SliceStable(idxs, func(a, b int) bool {
			return position.StackRank(positions[idxs[a]]) < position.StackRank(positions[idxs[b]])
		})
	}

	// Column widths and stack heights determine the auto-fit size.
	colWidth := make(map[int]float64, len(keys))
	stackHeight := make(map[int]float64, len(keys))
	for _, k := range keys {
		for _, i := range groups[k] {
			w := sanitize(m.Products[i].LayoutWidth())
			h := sanitize(m.Products[i].LayoutHeight())
			colWidth[k] = math.Max(colWidth[k], w)
			stackHeight[k] += h
		}
	}

	var totalWidth, maxStack float64
	for _, k := range keys {
		totalWidth += colWidth[k]
		maxStack = math.Max(maxStack, stackHeight[k])
	}

	size := Size{
		Width:  math.Max(plan.MinModuleWidth, totalWidth+pad),
		Height: math.Max(plan.MinModuleHeight, maxStack+pad+header),
	}
	contentHeight := size.Height - header

	// Placements are emitted in product array order so callers can zip the
	// result with m.Products directly.
	placed := make([]Placed, len(m.Products))
	var x float64
	for _, k := range keys {
		// Bottom member sits on the content-area floor; each subsequent
		// member stacks directly on top, zero gap.
		y := contentHeight
		for _, i := range groups[k] {
			p := m.Products[i]
			w := sanitize(p.LayoutWidth())
			h := sanitize(p.LayoutHeight())
			y -= h
			placed[i] = Placed{
				ProductID: p.ID,
				X:         clamp(x, 0, size.Width-w),
				Y:         clamp(y, 0, contentHeight-h),
				Width:     w,
				Height:    h,
				Position:  positions[i],
				GroupKey:  k,
				StackRank: position.StackRank(positions[i]),
			}
		}
		x += colWidth[k]
	}

	return placed, size
}

// resolvePositions determines each product's effective position encoding:
// record first, stored position second, auto-assignment last.
func resolvePositions(products []plan.Product, records []record.Record) []float64 {
	positions := make([]float64, len(products))
	for i, p := range products {
		if rec, ok := record.FindMatching(records, p.ItemCode, p.OriginalItemCode); ok && position.IsSet(rec.Position) {
			positions[i] = rec.Position
			continue
		}
		if position.IsSet(p.Position) {
			positions[i] = p.Position
		}
	}
	return position.AssignMissing(positions)
}

// sanitize maps malformed dimensions to zero contribution.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// clamp bounds v into [lo, hi]. A degenerate range (hi < lo, possible when
// a product is larger than its module) collapses to lo so the product pins
// to the module edge instead of escaping it.
func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
