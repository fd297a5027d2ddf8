package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/config"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/reduce"
	"github.com/planora/shelfplan/pkg/sheet"
)

// importCommand creates the import command for building plans from sheets.
func (c *CLI) importCommand() *cobra.Command {
	var (
		output   string
		planPath string
	)

	cmd := &cobra.Command{
		Use:   "import [sheet.csv]",
		Short: "Build or update a plan from a product sheet",
		Long: `Build or update a plan from a product sheet.

The import command reads a CSV product sheet and turns each row into a placed
product. Rows name the target module; missing modules are created with default
dimensions. Rows with a quantity expand into one product per unit, stacked in
the same column. Re-importing into an existing plan (--plan) updates matching
products in place instead of duplicating them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], planPath, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output plan file (default: <sheet>.plan.json)")
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "existing plan to update instead of starting fresh")

	return cmd
}

// runImport reads the sheet, folds its rows into the plan, and writes the
// resulting plan document.
func (c *CLI) runImport(input, planPath, output string) error {
	prog := newProgress(c.Logger)
	c.Logger.Infof("Importing %s", input)

	rows, err := sheet.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", input, err)
	}
	c.Logger.Debugf("Sheet rows: %d", len(rows))

	p := plan.Plan{DragMode: plan.DragModeSwap}
	if planPath != "" {
		p, err = config.ReadPlanFile(planPath)
		if err != nil {
			return fmt.Errorf("load plan %s: %w", planPath, err)
		}
		c.Logger.Debugf("Updating existing plan: %d modules", len(p.Modules))
	}

	p = reduce.Import(p, rows)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".plan.json"
	}

	if err := config.WritePlanFile(&p, outputPath); err != nil {
		return fmt.Errorf("write plan %s: %w", outputPath, err)
	}

	prog.done(fmt.Sprintf("Imported %d rows", len(rows)))
	printSuccess("Import complete")
	printFile(outputPath)
	printStats(len(p.Modules), p.ProductCount(), false)
	printNewline()
	printNextStep("Render", "shelfplan render "+outputPath)

	return nil
}
