package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/config"
	"github.com/planora/shelfplan/pkg/metrics"
	"github.com/planora/shelfplan/pkg/plan"
)

// inspectCommand creates the inspect command for capacity metrics.
func (c *CLI) inspectCommand() *cobra.Command {
	var showProducts bool

	cmd := &cobra.Command{
		Use:   "inspect [plan.json]",
		Short: "Show per-module capacity metrics",
		Long: `Show per-module capacity metrics.

For every module the inspect command reports its dimensions, product count,
remaining free width, and the summed front-to-back depth capacity of its
columns. With --products each product row is listed with its position code
and column capacity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], showProducts)
		},
	}

	cmd.Flags().BoolVar(&showProducts, "products", false, "list individual products per module")

	return cmd
}

func (c *CLI) runInspect(input string, showProducts bool) error {
	p, err := config.ReadPlanFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	fmt.Println(StyleTitle.Render("Plan: " + input))
	printStats(len(p.Modules), p.ProductCount(), false)
	printNewline()

	fmt.Println(moduleTable(&p).Render())

	if showProducts {
		for mi := range p.Modules {
			m := &p.Modules[mi]
			if len(m.Products) == 0 {
				continue
			}
			printNewline()
			fmt.Println(StyleHighlight.Render(moduleName(m)))
			fmt.Println(productTable(m, &p).Render())
		}
	}
	return nil
}

func moduleName(m *plan.Module) string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// moduleTable builds the per-module summary table.
func moduleTable(p *plan.Plan) *table.Table {
	rows := make([][]string, 0, len(p.Modules))
	for mi := range p.Modules {
		m := &p.Modules[mi]
		rows = append(rows, []string{
			moduleName(m),
			fmt.Sprintf("%g x %g x %g", m.Width, m.Height, m.Depth),
			fmt.Sprintf("%d", len(m.Products)),
			fmt.Sprintf("%g", metrics.FreeSpace(*m)),
			fmt.Sprintf("%d", moduleDepthCapacity(m, p)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Module", "W x H x D", "Products", "Free width", "Depth capacity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

// moduleDepthCapacity sums the capacity of each distinct column.
func moduleDepthCapacity(m *plan.Module, p *plan.Plan) int {
	total := 0
	for _, info := range metrics.DepthCapacity(*m, p.Records) {
		if info.IsVisible {
			total += info.Capacity
		}
	}
	return total
}

// productTable builds the per-product detail table for one module.
func productTable(m *plan.Module, p *plan.Plan) *table.Table {
	infos := metrics.DepthCapacity(*m, p.Records)

	rows := make([][]string, 0, len(m.Products))
	for i := range m.Products {
		prod := &m.Products[i]
		label := prod.Name
		if label == "" {
			label = prod.ItemCode
		}
		capacity := ""
		if i < len(infos) {
			capacity = fmt.Sprintf("x%d", infos[i].Capacity)
		}
		rows = append(rows, []string{
			label,
			prod.ItemCode,
			trimFloat(prod.Position),
			fmt.Sprintf("%g x %g", prod.LayoutWidth(), prod.LayoutHeight()),
			capacity,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Product", "Item code", "Position", "Size", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

// trimFloat renders a position code without trailing zeros.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
