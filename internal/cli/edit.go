package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/config"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/reduce"
)

// editCommand creates the edit command for the interactive terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [plan.json]",
		Short: "Edit a plan interactively",
		Long: `Edit a plan interactively.

The editor shows one shelf module at a time with its products in layout
order. Mark a product, move the cursor, and drop: in swap mode the two
products trade positions, in insert mode the marked product is spliced in
at the cursor and the column sequence renumbers. Dropping onto another
module appends the product after that module's last column. Every change
re-runs the layout immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0])
		},
	}
}

func (c *CLI) runEdit(input string) error {
	p, err := config.ReadPlanFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	model := newEditModel(p, input)
	prog := tea.NewProgram(model, tea.WithAltScreen())

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	m := final.(editModel)
	if m.dirty {
		printWarning("Unsaved changes discarded (quit without 's')")
	}
	return nil
}

// =============================================================================
// editModel - Interactive plan editing
// =============================================================================

// Editor styles
var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editMarkedStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	editDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editStatusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

// editModel is the bubbletea model for interactive plan editing.
type editModel struct {
	plan plan.Plan
	path string

	moduleIdx  int
	productIdx int
	markedID   string // product picked up for the next drop

	status string
	dirty  bool
}

func newEditModel(p plan.Plan, path string) editModel {
	m := editModel{plan: p, path: path}
	if idx := p.FindModule(p.Selected); idx >= 0 {
		m.moduleIdx = idx
	}
	return m
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h", "shift+tab":
		m.moveModuleCursor(-1)
	case "right", "l", "tab":
		m.moveModuleCursor(1)
	case "up", "k":
		m.moveProductCursor(-1)
	case "down", "j":
		m.moveProductCursor(1)

	case "m", " ":
		m.toggleMark()
	case "enter":
		m.drop()
	case "H":
		m.nudge(-nudgeStep, 0)
	case "L":
		m.nudge(nudgeStep, 0)
	case "K":
		m.nudge(0, -nudgeStep)
	case "J":
		m.nudge(0, nudgeStep)
	case "i":
		m.toggleDragMode()
	case "x", "d":
		m.removeProduct()
	case "s":
		m.save()
	}
	return m, nil
}

func (m *editModel) currentModule() *plan.Module {
	if m.moduleIdx < 0 || m.moduleIdx >= len(m.plan.Modules) {
		return nil
	}
	return &m.plan.Modules[m.moduleIdx]
}

func (m *editModel) currentProduct() *plan.Product {
	mod := m.currentModule()
	if mod == nil || m.productIdx < 0 || m.productIdx >= len(mod.Products) {
		return nil
	}
	return &mod.Products[m.productIdx]
}

func (m *editModel) moveModuleCursor(delta int) {
	if len(m.plan.Modules) == 0 {
		return
	}
	m.moduleIdx = (m.moduleIdx + delta + len(m.plan.Modules)) % len(m.plan.Modules)
	m.productIdx = 0
	m.plan = reduce.SelectModule(m.plan, m.plan.Modules[m.moduleIdx].ID)
}

func (m *editModel) moveProductCursor(delta int) {
	mod := m.currentModule()
	if mod == nil || len(mod.Products) == 0 {
		return
	}
	m.productIdx = (m.productIdx + delta + len(mod.Products)) % len(mod.Products)
}

func (m *editModel) toggleMark() {
	prod := m.currentProduct()
	if prod == nil {
		return
	}
	if m.markedID == prod.ID {
		m.markedID = ""
		m.status = "Mark cleared"
		return
	}
	m.markedID = prod.ID
	m.status = "Marked " + productLabel(prod)
}

// drop applies the pending move: onto a product in the same module via the
// session drag mode, onto another module by appending after its last column.
func (m *editModel) drop() {
	if m.markedID == "" {
		m.status = "Nothing marked (press m first)"
		return
	}
	target := m.currentProduct()
	srcModule, _ := m.plan.FindProduct(m.markedID)

	var (
		next plan.Plan
		err  error
	)
	switch {
	case target != nil && target.ID == m.markedID:
		m.status = "Dropped on itself"
		m.markedID = ""
		return
	case target != nil && srcModule == m.moduleIdx:
		next, err = reduce.DropOn(m.plan, m.markedID, target.ID)
	default:
		next, err = reduce.MoveProduct(m.plan, m.markedID, m.plan.Modules[m.moduleIdx].ID)
	}
	if err != nil {
		m.status = "Drop failed: " + err.Error()
		return
	}

	m.plan = next
	m.markedID = ""
	m.dirty = true
	m.status = "Dropped (" + string(m.plan.DragMode) + " mode)"
	m.clampCursors()
}

// nudgeStep is how far one free-drag nudge moves a product, in plan units.
const nudgeStep = 5.0

// nudge moves the product under the cursor by a manual override. The
// override survives until the next relayout.
func (m *editModel) nudge(dx, dy float64) {
	prod := m.currentProduct()
	if prod == nil {
		return
	}
	next, err := reduce.FreeDrag(m.plan, prod.ID, prod.Placement.X+dx, prod.Placement.Y+dy)
	if err != nil {
		m.status = "Nudge failed: " + err.Error()
		return
	}
	m.plan = next
	m.dirty = true
	m.status = "Nudged " + productLabel(prod)
}

func (m *editModel) toggleDragMode() {
	mode := plan.DragModeSwap
	if m.plan.DragMode == plan.DragModeSwap {
		mode = plan.DragModeInsert
	}
	m.plan = reduce.SetDragMode(m.plan, mode)
	m.dirty = true
	m.status = "Drag mode: " + string(mode)
}

func (m *editModel) removeProduct() {
	prod := m.currentProduct()
	if prod == nil {
		return
	}
	next, err := reduce.RemoveProduct(m.plan, prod.ID)
	if err != nil {
		m.status = "Remove failed: " + err.Error()
		return
	}
	if m.markedID == prod.ID {
		m.markedID = ""
	}
	m.plan = next
	m.dirty = true
	m.status = "Removed " + productLabel(prod)
	m.clampCursors()
}

func (m *editModel) save() {
	if err := config.WritePlanFile(&m.plan, m.path); err != nil {
		m.status = "Save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "Saved " + m.path
}

func (m *editModel) clampCursors() {
	if m.moduleIdx >= len(m.plan.Modules) {
		m.moduleIdx = max(0, len(m.plan.Modules)-1)
	}
	if mod := m.currentModule(); mod != nil && m.productIdx >= len(mod.Products) {
		m.productIdx = max(0, len(mod.Products)-1)
	}
}

func productLabel(p *plan.Product) string {
	if p.Name != "" {
		return p.Name
	}
	if p.ItemCode != "" {
		return p.ItemCode
	}
	return p.ID
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shelfplan Editor"))
	b.WriteString("  ")
	b.WriteString(editDimStyle.Render(fmt.Sprintf("[%s mode]", m.plan.DragMode)))
	if m.dirty {
		b.WriteString("  ")
		b.WriteString(StyleWarning.Render("*unsaved"))
	}
	b.WriteString("\n")
	b.WriteString(editDimStyle.Render("←/→ module  ↑/↓ product  m mark  ⏎ drop  HJKL nudge  i mode  d delete  s save  q quit"))
	b.WriteString("\n\n")

	if len(m.plan.Modules) == 0 {
		b.WriteString(editDimStyle.Render("Plan has no modules. Import a sheet first."))
		return b.String()
	}

	b.WriteString(m.moduleTabs())
	b.WriteString("\n\n")
	b.WriteString(m.productView())

	b.WriteString("\n")
	if m.markedID != "" {
		b.WriteString(editMarkedStyle.Render("● carrying " + m.markedLabel()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(editStatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m editModel) markedLabel() string {
	mi, pi := m.plan.FindProduct(m.markedID)
	if mi < 0 {
		return m.markedID
	}
	return productLabel(&m.plan.Modules[mi].Products[pi])
}

func (m editModel) moduleTabs() string {
	names := make([]string, len(m.plan.Modules))
	for i := range m.plan.Modules {
		name := moduleName(&m.plan.Modules[i])
		if i == m.moduleIdx {
			names[i] = editSelectedStyle.Render("[" + name + "]")
		} else {
			names[i] = editDimStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(names, " ")
}

func (m editModel) productView() string {
	mod := m.currentModule()
	if len(mod.Products) == 0 {
		return editDimStyle.Render("  (empty module)")
	}

	rows := make([][]string, 0, len(mod.Products))
	for i := range mod.Products {
		prod := &mod.Products[i]

		cursor := "  "
		if i == m.productIdx {
			cursor = "▸ "
		}
		mark := " "
		if prod.ID == m.markedID {
			mark = "●"
		}
		rows = append(rows, []string{
			cursor,
			mark,
			productLabel(prod),
			prod.ItemCode,
			trimFloat(prod.Position),
			fmt.Sprintf("%g x %g", prod.LayoutWidth(), prod.LayoutHeight()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Product", "Item code", "Pos", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if row == m.productIdx {
				if mod.Products[row].ID == m.markedID {
					return base.Foreground(colorYellow).Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			if row >= 0 && row < len(mod.Products) && mod.Products[row].ID == m.markedID {
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}
