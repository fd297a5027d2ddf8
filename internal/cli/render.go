package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planora/shelfplan/pkg/cache"
	"github.com/planora/shelfplan/pkg/config"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/render"
	"github.com/planora/shelfplan/pkg/render/structure"
)

const (
	vizPlan      = "plan"      // to-scale drawing of modules and products
	vizStructure = "structure" // node-link view of columns and stacks

	// artifactTTL bounds how long rendered artifacts stay cached.
	artifactTTL = 30 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs)
	vizTypes    []string // visualization types: "plan", "structure"
	formats     []string // output formats: "svg", "pdf", "png", "dot", "json"
	detailed    bool     // show position and dimension details in structure view
	depthLabels bool     // draw per-column depth capacity labels
	noLabels    bool     // suppress product name labels
	scale       float64  // render scale factor
	noCache     bool     // disable the artifact cache
}

// renderCommand creates the render command for generating visualizations.
// It supports the to-scale plan drawing and the structure node-link view,
// in SVG, PDF, PNG, DOT, and JSON formats.
func (c *CLI) renderCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{
		scale:       c.Settings.Scale,
		depthLabels: c.Settings.DepthLabels,
		noCache:     c.Settings.NoCache,
	}

	cmd := &cobra.Command{
		Use:   "render [plan.json]",
		Short: "Render a plan to SVG, PDF, PNG, DOT, or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr, c.Settings.Format)
			if err := validateVizTypes(opts.vizTypes); err != nil {
				return err
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): plan (default), structure (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show positions and dimensions (structure)")
	cmd.Flags().BoolVar(&opts.depthLabels, "depth-labels", opts.depthLabels, "draw per-column depth capacity labels (plan)")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "suppress product name labels (plan)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "render scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", opts.noCache, "disable the artifact cache")

	return cmd
}

// parseVizTypes parses the --type flag into a slice of visualization types.
// If empty, defaults to ["plan"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{vizPlan}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats,
// falling back to the settings-file default.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = "svg"
		}
		return []string{fallback}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "pdf": true, "png": true, "dot": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'pdf', 'png', 'dot', or 'json')", f)
		}
	}
	return nil
}

// validateVizTypes checks that all requested visualization types are valid.
func validateVizTypes(types []string) error {
	for _, t := range types {
		if t != vizPlan && t != vizStructure {
			return fmt.Errorf("invalid type: %s (must be 'plan' or 'structure')", t)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the plan and renders it to the requested type/format
// combinations. Rendered artifacts are cached by plan content hash.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	c.Logger.Infof("Rendering %s", input)

	p, err := config.ReadPlanFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	c.Logger.Infof("Loaded plan: %d modules, %d products", len(p.Modules), p.ProductCount())

	planBytes, err := config.MarshalPlan(&p)
	if err != nil {
		return fmt.Errorf("hash plan: %w", err)
	}
	planHash := cache.Hash(planBytes)

	artifacts, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer artifacts.Close()

	single := len(opts.vizTypes) == 1 && len(opts.formats) == 1
	base := basePath(opts.output, input)

	for _, vizType := range opts.vizTypes {
		for _, format := range opts.formats {
			data, cached, err := c.renderCached(ctx, artifacts, &p, planHash, vizType, format, opts)
			if errors.Is(err, errSkipFormat) {
				c.Logger.Debugf("Skipping %s/%s (unsupported combination)", vizType, format)
				continue
			}
			if err != nil {
				return fmt.Errorf("%s/%s: %w", vizType, format, err)
			}

			path := outputPath(base, vizType, format, opts, single)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Generated %s", path)
			printStats(len(p.Modules), p.ProductCount(), cached)
		}
	}
	return nil
}

// outputPath builds the output file name: base.format, or base_type.format
// when multiple visualization types are requested.
func outputPath(base, vizType, format string, opts *renderOpts, single bool) string {
	if single && opts.output != "" {
		return opts.output
	}
	if len(opts.vizTypes) == 1 {
		return fmt.Sprintf("%s.%s", base, format)
	}
	return fmt.Sprintf("%s_%s.%s", base, vizType, format)
}

// renderCached returns the rendered artifact, consulting the cache first.
// The second result reports a cache hit.
func (c *CLI) renderCached(ctx context.Context, artifacts cache.Cache, p *plan.Plan, planHash, vizType, format string, opts *renderOpts) ([]byte, bool, error) {
	key := cache.ArtifactKey(planHash, cache.ArtifactKeyOpts{
		Format:      format,
		Scale:       opts.scale,
		DepthLabels: opts.depthLabels,
		Labels:      !opts.noLabels,
		Structure:   vizType == vizStructure,
	})

	if data, ok, err := artifacts.Get(ctx, key); err == nil && ok {
		c.Logger.Debugf("Cache hit for %s/%s", vizType, format)
		return data, true, nil
	}

	data, err := c.renderPlan(p, vizType, format, opts)
	if err != nil {
		return nil, false, err
	}
	c.Logger.Debugf("Generated %s/%s: %d bytes", vizType, format, len(data))

	if err := artifacts.Set(ctx, key, data, artifactTTL); err != nil {
		c.Logger.Warnf("Cache write failed: %v", err)
	}
	return data, false, nil
}

// errSkipFormat is a sentinel error indicating an unsupported
// format/visualization combination.
var errSkipFormat = fmt.Errorf("skip unsupported format")

// renderPlan dispatches to the appropriate renderer based on vizType.
func (c *CLI) renderPlan(p *plan.Plan, vizType, format string, opts *renderOpts) ([]byte, error) {
	switch vizType {
	case vizStructure:
		return c.renderStructure(p, format, opts)
	case vizPlan:
		return c.renderScale(p, format, opts)
	default:
		return nil, fmt.Errorf("unknown visualization type: %s", vizType)
	}
}

// renderScale generates the to-scale plan drawing.
// DOT output only makes sense for the structure view (returns errSkipFormat);
// JSON output is the versioned plan document itself.
func (c *CLI) renderScale(p *plan.Plan, format string, opts *renderOpts) ([]byte, error) {
	if format == "dot" {
		return nil, errSkipFormat
	}
	if format == "json" {
		return config.MarshalPlan(p)
	}

	renderOpts := []render.Option{render.WithScale(opts.scale)}
	if opts.depthLabels {
		renderOpts = append(renderOpts, render.WithDepthLabels())
	}
	if opts.noLabels {
		renderOpts = append(renderOpts, render.WithoutLabels())
	}
	if p.Font == (plan.FontSettings{}) && c.Settings.Font.Family != "" {
		renderOpts = append(renderOpts, render.WithFont(plan.FontSettings{
			Family: c.Settings.Font.Family,
			Size:   c.Settings.Font.Size,
		}))
	}

	svg := render.SVG(p, renderOpts...)
	switch format {
	case "svg":
		return svg, nil
	case "pdf":
		return render.ToPDF(svg)
	case "png":
		return render.ToPNG(svg, max(opts.scale, 1)*2)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// renderStructure generates the node-link structure view via Graphviz.
func (c *CLI) renderStructure(p *plan.Plan, format string, opts *renderOpts) ([]byte, error) {
	if format == "json" {
		return nil, errSkipFormat
	}
	dot := structure.ToDOT(p, structure.Options{Detailed: opts.detailed})
	if format == "dot" {
		return []byte(dot), nil
	}

	svg, err := structure.RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case "svg":
		return svg, nil
	case "pdf":
		return render.ToPDF(svg)
	case "png":
		return render.ToPNG(svg, 2.0)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
