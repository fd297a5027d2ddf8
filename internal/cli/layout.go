package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/config"
	"github.com/planora/shelfplan/pkg/reduce"
)

// layoutCommand creates the layout command for recomputing placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout [plan.json]",
		Short: "Recompute placements and auto-fit sizes for a plan",
		Long: `Recompute placements and auto-fit sizes for a plan.

The layout command re-runs the column/stack layout for every module: products
group into columns by the integer part of their position, stack by the
fractional part, and each module auto-fits around its contents. Manual drag
overrides collapse back to computed placements. Running layout twice produces
identical output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

// runLayout loads the plan, recomputes every module, and writes the result.
func (c *CLI) runLayout(input, output string) error {
	prog := newProgress(c.Logger)
	c.Logger.Infof("Laying out %s", input)

	p, err := config.ReadPlanFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	p = reduce.Relayout(p)

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := config.WritePlanFile(&p, outputPath); err != nil {
		return fmt.Errorf("write plan %s: %w", outputPath, err)
	}

	prog.done(fmt.Sprintf("Laid out %d modules", len(p.Modules)))
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(p.Modules), p.ProductCount(), false)
	printNewline()
	printNextStep("Render", "shelfplan render "+outputPath)

	return nil
}
