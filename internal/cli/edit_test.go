package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/reduce"
)

func editSeed(t *testing.T) editModel {
	t.Helper()

	p := reduce.EnsureModule(plan.Plan{DragMode: plan.DragModeSwap}, "m1")
	p = reduce.EnsureModule(p, "m2")

	var err error
	for i, code := range []string{"A1", "A2", "A3"} {
		p, _, err = reduce.AddProduct(p, "m1", plan.Product{
			ItemCode: code, Name: code, RealWidth: 50, RealHeight: 40,
			Position: float64(i + 1),
		})
		if err != nil {
			t.Fatalf("AddProduct(%s) error: %v", code, err)
		}
	}
	return newEditModel(p, "unused.json")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m editModel, keys ...string) editModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(editModel)
	}
	return m
}

func TestEditCursorWraps(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "k")
	if m.productIdx != 2 {
		t.Errorf("up from first product should wrap to last, got %d", m.productIdx)
	}
	m = press(t, m, "j")
	if m.productIdx != 0 {
		t.Errorf("down from last product should wrap to first, got %d", m.productIdx)
	}

	m = press(t, m, "tab", "tab")
	if m.moduleIdx != 0 {
		t.Errorf("module cursor should wrap around two modules, got %d", m.moduleIdx)
	}
}

func TestEditModuleCursorUpdatesSelection(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "tab")
	if m.plan.Selected != "m2" {
		t.Errorf("selected = %q, want m2", m.plan.Selected)
	}
}

func TestEditMarkAndSwap(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "m", "j", "enter")

	mod := m.plan.Modules[0]
	if mod.Products[0].Position != 2 || mod.Products[1].Position != 1 {
		t.Errorf("swap should trade positions, got %v and %v",
			mod.Products[0].Position, mod.Products[1].Position)
	}
	if m.markedID != "" {
		t.Error("mark should clear after a drop")
	}
	if !m.dirty {
		t.Error("a drop should mark the plan dirty")
	}
}

func TestEditDropOnSelfIsNoop(t *testing.T) {
	m := editSeed(t)
	before := m.plan.Modules[0].Products[0].Position

	m = press(t, m, "m", "enter")

	if m.plan.Modules[0].Products[0].Position != before {
		t.Error("dropping a product on itself should not move it")
	}
	if m.dirty {
		t.Error("self-drop should not dirty the plan")
	}
}

func TestEditDropAcrossModulesMoves(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "m", "tab", "enter")

	if len(m.plan.Modules[0].Products) != 2 {
		t.Errorf("source module should have 2 products, got %d", len(m.plan.Modules[0].Products))
	}
	if len(m.plan.Modules[1].Products) != 1 {
		t.Fatalf("target module should have 1 product, got %d", len(m.plan.Modules[1].Products))
	}
	if m.plan.Modules[1].Products[0].ItemCode != "A1" {
		t.Errorf("moved product = %q, want A1", m.plan.Modules[1].Products[0].ItemCode)
	}
}

func TestEditNudgeSetsManualOverride(t *testing.T) {
	m := editSeed(t)
	before := m.plan.Modules[0].Products[0].Placement

	m = press(t, m, "L")

	got := m.plan.Modules[0].Products[0].Placement
	if got.Mode != plan.PlacementManual {
		t.Errorf("placement mode = %v, want manual", got.Mode)
	}
	if got.X != before.X+5 {
		t.Errorf("X = %v, want %v", got.X, before.X+5)
	}
	if !m.dirty {
		t.Error("nudge should mark the plan dirty")
	}
}

func TestEditToggleDragMode(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "i")
	if m.plan.DragMode != plan.DragModeInsert {
		t.Errorf("drag mode = %q, want insert", m.plan.DragMode)
	}
	m = press(t, m, "i")
	if m.plan.DragMode != plan.DragModeSwap {
		t.Errorf("drag mode = %q, want swap", m.plan.DragMode)
	}
}

func TestEditRemoveProduct(t *testing.T) {
	m := editSeed(t)

	m = press(t, m, "d")

	if len(m.plan.Modules[0].Products) != 2 {
		t.Errorf("remove should leave 2 products, got %d", len(m.plan.Modules[0].Products))
	}
	if !m.dirty {
		t.Error("remove should mark the plan dirty")
	}
}

func TestEditViewRenders(t *testing.T) {
	m := editSeed(t)

	view := m.View()
	for _, want := range []string{"Shelfplan Editor", "A1", "A2", "A3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
