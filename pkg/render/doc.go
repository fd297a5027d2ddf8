// Package render turns a shelf plan into visual outputs.
//
// # Overview
//
// The renderer draws the committed layout of every module: the module frame
// with its header label, each product box at its placed coordinates, and
// optional depth-capacity labels under each column. Output is SVG; the
// [ToPDF] and [ToPNG] helpers convert it with the external rsvg-convert
// tool (from librsvg).
//
//	svg := render.SVG(p, render.WithDepthLabels())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Structure View
//
// The [structure] subpackage renders the column/stack structure of a module
// as a Graphviz node-link diagram instead of a to-scale drawing.
//
// [structure]: github.com/planora/shelfplan/pkg/render/structure
package render
