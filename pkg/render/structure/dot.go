// Package structure renders the column/stack structure of a plan as a
// Graphviz node-link diagram. Unlike the to-scale drawing in the parent
// package, this view answers "what sits on what": one cluster per module,
// one node per product, and an edge from each product to the stack member
// directly beneath it.
package structure

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planora/shelfplan/pkg/layout"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

// Options configures structure diagram rendering.
type Options struct {
	// Detailed includes position codes and real dimensions in node labels.
	// When false, only the product name or item code is shown.
	Detailed bool
}

// ToDOT converts a plan to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Stack edges point upward: "A -> B" means A rests on B. Each column's
// bottom member connects to an invisible shelf node so columns of the same
// module rank together.
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph shelfplan {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for mi := range p.Modules {
		writeModuleCluster(&buf, &p.Modules[mi], p.Records, mi, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeModuleCluster(buf *bytes.Buffer, m *plan.Module, records []record.Record, idx int, opts Options) {
	fmt.Fprintf(buf, "\n  subgraph cluster_%d {\n", idx)
	name := m.Name
	if name == "" {
		name = m.ID
	}
	fmt.Fprintf(buf, "    label=%q;\n", name)
	buf.WriteString("    style=rounded;\n")

	placed, _ := layout.Compute(*m, records, layout.Options{})

	shelf := fmt.Sprintf("shelf_%d", idx)
	fmt.Fprintf(buf, "    %q [shape=point, style=invis];\n", shelf)

	// Group indices by column, ordered bottom-up within each.
	columns := make(map[int][]int)
	for i, pl := range placed {
		columns[pl.GroupKey] = append(columns[pl.GroupKey], i)
	}
	keys := make([]int, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		members := columns[k]
		sort.SliceStable(members, func(a, b int) bool {
			return placed[members[a]].StackRank < placed[members[b]].StackRank
		})

		for rank, i := range members {
			prod := &m.Products[i]
			fmt.Fprintf(buf, "    %q [label=%q];\n", prod.ID, nodeLabel(prod, placed[i], opts.Detailed))
			if rank == 0 {
				fmt.Fprintf(buf, "    %q -> %q [style=invis];\n", shelf, prod.ID)
			} else {
				below := m.Products[members[rank-1]].ID
				fmt.Fprintf(buf, "    %q -> %q;\n", below, prod.ID)
			}
		}
	}

	buf.WriteString("  }\n")
}

func nodeLabel(p *plan.Product, pl layout.Placed, detailed bool) string {
	label := p.Name
	if label == "" {
		label = p.ItemCode
	}
	if label == "" {
		label = p.ID
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("pos: %g", pl.Position)}
	if p.RealWidth > 0 || p.RealHeight > 0 {
		parts = append(parts, fmt.Sprintf("%g x %g", p.RealWidth, p.RealHeight))
	}
	if p.Quantity > 1 {
		parts = append(parts, fmt.Sprintf("qty: %d", p.Quantity))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns SVG bytes ready for display or conversion with render.ToPDF or
// render.ToPNG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag so the document has an
// origin-anchored viewBox and explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
