// Package plan defines the data model for shelf plans: modules (rectangular
// shelf sections placed on a canvas) and the products arranged inside them.
//
// A Plan is a value snapshot. Mutation goes through the pure reducers in
// package reduce, which take a Plan and return a new one; nothing in this
// package mutates shared state. Product pixel coordinates are derived by
// package layout from the position encodings in the tabular record mirror
// and must not be edited directly, with one exception: a free-drag sets a
// manual override that survives until the next relayout.
package plan

import (
	"slices"

	"github.com/google/uuid"

	"github.com/planora/shelfplan/pkg/record"
)

// Minimum module dimensions enforced after auto-resize.
const (
	MinModuleWidth  = 100.0
	MinModuleHeight = 50.0
)

// Default dimensions for modules created implicitly by imports.
const (
	DefaultModuleWidth  = 300.0
	DefaultModuleHeight = 200.0
	DefaultModuleDepth  = 400.0
)

// PlacementMode distinguishes computed coordinates from a manual override.
type PlacementMode int

const (
	// PlacementComputed marks coordinates produced by the layout engine.
	// This is the normal state: X/Y are a pure function of the module's
	// dimensions and the position encodings of its products.
	PlacementComputed PlacementMode = iota

	// PlacementManual marks coordinates set directly by a free drag. The
	// override is authoritative until the next relayout collapses it back
	// to PlacementComputed.
	PlacementManual
)

// Placement holds a product's coordinates inside its module together with
// the mode that produced them.
type Placement struct {
	Mode PlacementMode `json:"mode,omitempty"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
}

// Product is an image-backed item owned by exactly one module.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	ImageRef string `json:"image,omitempty"`

	// Natural dimensions of the backing image in pixels.
	NaturalWidth  float64 `json:"naturalWidth,omitempty"`
	NaturalHeight float64 `json:"naturalHeight,omitempty"`

	// Current scaled display dimensions.
	DisplayWidth  float64 `json:"displayWidth"`
	DisplayHeight float64 `json:"displayHeight"`

	Placement Placement `json:"placement"`

	// ItemCode identifies the physical good; OriginalItemCode preserves the
	// pre-duplication code when quantity expansion rewrote ItemCode.
	ItemCode         string `json:"itemCode,omitempty"`
	OriginalItemCode string `json:"originalItemCode,omitempty"`

	// Real-world dimensions in physical units.
	RealWidth  float64 `json:"realWidth,omitempty"`
	RealHeight float64 `json:"realHeight,omitempty"`
	RealDepth  float64 `json:"realDepth,omitempty"`

	// Position is the stored fallback position encoding; the record mirror
	// takes precedence during layout.
	Position float64 `json:"position,omitempty"`

	Quantity int `json:"quantity,omitempty"`
	DupIndex int `json:"dupIndex,omitempty"`

	ModuleID string `json:"module"`
}

// LayoutWidth returns the width the layout engine should use for this
// product: the real-world width when present, otherwise the scaled display
// width.
func (p Product) LayoutWidth() float64 {
	if p.RealWidth > 0 {
		return p.RealWidth
	}
	return p.DisplayWidth
}

// LayoutHeight returns the height the layout engine should use for this
// product: the real-world height when present, otherwise the scaled
// display height.
func (p Product) LayoutHeight() float64 {
	if p.RealHeight > 0 {
		return p.RealHeight
	}
	return p.DisplayHeight
}

// Module is a rectangular shelf section holding products.
//
// The order of Products is the insertion order; it is not the visual order,
// which is derived from position encodings. It does act as the tie-break
// for equal stack ranks and as the base order for insert-mode renumbering.
type Module struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`

	// Canvas position of the module's top-left corner.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Products []Product `json:"products"`
}

// FindProduct returns the index of the product with the given ID, or -1.
func (m *Module) FindProduct(productID string) int {
	return slices.IndexFunc(m.Products, func(p Product) bool { return p.ID == productID })
}

// DragMode selects how a same-module drop rearranges products.
type DragMode string

const (
	// DragModeSwap exchanges the positions of the dragged and the target
	// product. This is the default.
	DragModeSwap DragMode = "swap"

	// DragModeInsert removes the dragged product from its slot, reinserts
	// it at the target index and renumbers the whole module sequentially.
	DragModeInsert DragMode = "insert"
)

// Workspace describes the canvas the modules are placed on.
type Workspace struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Background is an optional backdrop image behind the canvas.
type Background struct {
	Image  string  `json:"image,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// FontSettings configures label rendering.
type FontSettings struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// Plan is one complete editing session snapshot: the module graph, the
// tabular record mirror and session-wide settings.
type Plan struct {
	Modules []Module        `json:"modules"`
	Records []record.Record `json:"records"`

	Scale      float64      `json:"scale,omitempty"`
	Workspace  Workspace    `json:"workspace"`
	Background *Background  `json:"background,omitempty"`
	Font       FontSettings `json:"font"`

	// Selected is the ID of the currently selected module, if any.
	Selected string `json:"selected,omitempty"`

	// DragMode is process-wide session state, not per-drag.
	DragMode DragMode `json:"dragMode,omitempty"`
}

// NewModuleID returns a fresh unique module identifier.
func NewModuleID() string { return uuid.NewString() }

// NewProductID returns a fresh unique product identifier.
func NewProductID() string { return uuid.NewString() }

// FindModule returns the index of the module with the given ID, or -1.
func (p *Plan) FindModule(moduleID string) int {
	return slices.IndexFunc(p.Modules, func(m Module) bool { return m.ID == moduleID })
}

// FindProduct locates a product anywhere in the plan, returning the module
// index and the product index within it, or (-1, -1) when absent.
func (p *Plan) FindProduct(productID string) (moduleIdx, productIdx int) {
	for mi := range p.Modules {
		if pi := p.Modules[mi].FindProduct(productID); pi >= 0 {
			return mi, pi
		}
	}
	return -1, -1
}

// ProductCount returns the total number of products across all modules.
func (p *Plan) ProductCount() int {
	n := 0
	for i := range p.Modules {
		n += len(p.Modules[i].Products)
	}
	return n
}

// Clone returns a deep copy of the plan. Reducers clone before editing so
// the previous snapshot stays intact.
func (p *Plan) Clone() Plan {
	out := *p
	out.Modules = make([]Module, len(p.Modules))
	for i, m := range p.Modules {
		m.Products = slices.Clone(m.Products)
		out.Modules[i] = m
	}
	out.Records = slices.Clone(p.Records)
	if p.Background != nil {
		bg := *p.Background
		out.Background = &bg
	}
	return out
}
