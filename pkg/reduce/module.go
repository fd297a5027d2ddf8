package reduce

import (
	"math"

	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/layout"
	"github.com/planora/shelfplan/pkg/plan"
)

// ModuleSpec describes a module to create explicitly.
type ModuleSpec struct {
	Name   string
	Width  float64
	Height float64
	Depth  float64
	X, Y   float64
}

// AddModule creates a new empty module from spec and returns the updated
// plan together with the new module's ID.
//
// Name and positive width/height are required; depth defaults to the
// standard module depth when unset.
func AddModule(p plan.Plan, spec ModuleSpec) (plan.Plan, string, error) {
	if err := errors.ValidateModuleName(spec.Name); err != nil {
		return p, "", err
	}
	if !(spec.Width > 0) || !(spec.Height > 0) {
		return p, "", errors.New(errors.ErrCodeInvalidInput,
			"module dimensions must be positive, got %vx%v", spec.Width, spec.Height)
	}

	depth := spec.Depth
	if !(depth > 0) {
		depth = plan.DefaultModuleDepth
	}

	out := p.Clone()
	id := plan.NewModuleID()
	out.Modules = append(out.Modules, plan.Module{
		ID:     id,
		Name:   spec.Name,
		Width:  math.Max(spec.Width, plan.MinModuleWidth),
		Height: math.Max(spec.Height, plan.MinModuleHeight),
		Depth:  depth,
		X:      sanitizeCoord(spec.X),
		Y:      sanitizeCoord(spec.Y),
	})
	return out, id, nil
}

// EnsureModule returns a plan that contains a module with the given ID,
// creating one with default dimensions if absent. Imports reference modules
// by name before they exist; self-healing here beats surfacing an error for
// loosely structured spreadsheet data.
func EnsureModule(p plan.Plan, moduleID string) plan.Plan {
	if moduleID == "" || p.FindModule(moduleID) >= 0 {
		return p
	}

	out := p.Clone()
	ensureModule(&out, moduleID)
	return out
}

// ensureModule appends a default-dimension module when absent and returns
// its index. The plan must already be the caller's private copy: unlike
// [EnsureModule] this edits in place, so reducers can ensure a target after
// cloning without aliasing the input snapshot.
func ensureModule(p *plan.Plan, moduleID string) int {
	if mi := p.FindModule(moduleID); mi >= 0 {
		return mi
	}
	p.Modules = append(p.Modules, plan.Module{
		ID:     moduleID,
		Name:   moduleID,
		Width:  plan.DefaultModuleWidth,
		Height: plan.DefaultModuleHeight,
		Depth:  plan.DefaultModuleDepth,
	})
	return len(p.Modules) - 1
}

// UpdateModuleDims applies a dimension patch to a module. Non-positive or
// non-finite patch values keep the prior dimension. When width or height
// changed, the module is relayouted (which may auto-fit the dimensions
// around the contents again).
func UpdateModuleDims(p plan.Plan, moduleID string, width, height, depth float64) (plan.Plan, error) {
	mi := p.FindModule(moduleID)
	if mi < 0 {
		return p, errors.New(errors.ErrCodeModuleNotFound, "module %s not found", moduleID)
	}

	out := p.Clone()
	m := &out.Modules[mi]

	resized := false
	if isUsable(width) && width != m.Width {
		m.Width = width
		resized = true
	}
	if isUsable(height) && height != m.Height {
		m.Height = height
		resized = true
	}
	if isUsable(depth) {
		m.Depth = depth
	}

	if resized {
		relayoutModule(&out, mi)
	}
	return out, nil
}

// MoveModule repositions a module on the canvas. Coordinates are clamped to
// be non-negative; product placements are unaffected (they are relative to
// the module).
func MoveModule(p plan.Plan, moduleID string, x, y float64) (plan.Plan, error) {
	mi := p.FindModule(moduleID)
	if mi < 0 {
		return p, errors.New(errors.ErrCodeModuleNotFound, "module %s not found", moduleID)
	}

	out := p.Clone()
	out.Modules[mi].X = sanitizeCoord(x)
	out.Modules[mi].Y = sanitizeCoord(y)
	return out, nil
}

// RemoveModule deletes a module and all products it owns. Products cannot
// outlive their module. The selection is cleared when it pointed at the
// removed module. Records of the removed module's products stay in the
// mirror so a re-import can restore them.
func RemoveModule(p plan.Plan, moduleID string) plan.Plan {
	mi := p.FindModule(moduleID)
	if mi < 0 {
		return p
	}

	out := p.Clone()
	out.Modules = append(out.Modules[:mi], out.Modules[mi+1:]...)
	if out.Selected == moduleID {
		out.Selected = ""
	}
	return out
}

// SelectModule marks a module as selected. Selecting an unknown ID clears
// the selection.
func SelectModule(p plan.Plan, moduleID string) plan.Plan {
	out := p.Clone()
	if p.FindModule(moduleID) < 0 {
		out.Selected = ""
		return out
	}
	out.Selected = moduleID
	return out
}

// SetDragMode switches the session-wide drag mode.
// Unknown values fall back to swap, the default mode.
func SetDragMode(p plan.Plan, mode plan.DragMode) plan.Plan {
	out := p.Clone()
	if mode != plan.DragModeInsert {
		mode = plan.DragModeSwap
	}
	out.DragMode = mode
	return out
}

// Relayout recomputes placements and auto-fit sizes for every module.
// Manual drag overrides collapse back to computed placements.
func Relayout(p plan.Plan) plan.Plan {
	out := p.Clone()
	for mi := range out.Modules {
		relayoutModule(&out, mi)
	}
	return out
}

// relayoutModule recomputes placements and auto-fit size for the module at
// index mi, committing the results into the plan. Manual overrides collapse
// back to computed placements here.
func relayoutModule(p *plan.Plan, mi int) {
	m := &p.Modules[mi]
	if len(m.Products) == 0 {
		// Nothing to fit around; keep the module's explicit dimensions.
		m.Width = math.Max(m.Width, plan.MinModuleWidth)
		m.Height = math.Max(m.Height, plan.MinModuleHeight)
		return
	}
	placed, size := layout.Compute(*m, p.Records, layout.Options{})
	for i := range m.Products {
		m.Products[i].Placement = plan.Placement{
			Mode: plan.PlacementComputed,
			X:    placed[i].X,
			Y:    placed[i].Y,
		}
	}
	m.Width = size.Width
	m.Height = size.Height
}

// isUsable reports whether a patch dimension should replace the prior one.
func isUsable(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// sanitizeCoord coerces malformed canvas coordinates to zero and floors
// them at the canvas origin.
func sanitizeCoord(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
