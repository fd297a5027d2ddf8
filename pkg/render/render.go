package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/planora/shelfplan/pkg/layout"
	"github.com/planora/shelfplan/pkg/metrics"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

const (
	defaultFontFamily = "Helvetica, Arial, sans-serif"
	defaultFontSize   = 11.0

	frameMargin      = 20.0
	depthLabelHeight = 14.0

	moduleFill   = "#f8f8f6"
	moduleStroke = "#444444"
	headerFill   = "#e8e8e4"
	productFill  = "#cfe3f5"
	manualFill   = "#f5dfc9"
	textColor    = "#222222"
)

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	records     []record.Record
	depthLabels bool
	labels      bool
	scale       float64
	font        plan.FontSettings
}

// WithRecords supplies the tabular records used for position resolution,
// matching what the layout engine sees in the editor.
func WithRecords(records []record.Record) Option {
	return func(r *renderer) { r.records = records }
}

// WithDepthLabels draws the per-column depth capacity under each module.
func WithDepthLabels() Option { return func(r *renderer) { r.depthLabels = true } }

// WithLabels draws product names inside the boxes. Enabled by default;
// the option exists so callers composing their own overlays can opt out
// with WithLabels() omitted and plain boxes via [WithoutLabels].
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithoutLabels suppresses product name text.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithScale multiplies all coordinates by the given factor. Values <= 0
// fall back to 1.
func WithScale(scale float64) Option {
	return func(r *renderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithFont overrides the label font.
func WithFont(f plan.FontSettings) Option { return func(r *renderer) { r.font = f } }

// SVG renders the plan as an SVG document.
//
// Every module is laid out fresh via the layout engine, so the drawing always
// shows committed geometry even if a caller hands in a plan whose placements
// are stale. Free-dragged products keep their manual coordinates.
func SVG(p *plan.Plan, opts ...Option) []byte {
	r := renderer{labels: true, scale: 1, records: p.Records, font: p.Font}
	for _, opt := range opts {
		opt(&r)
	}

	frameW, frameH := frameExtent(p, r.depthLabels)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frameW, frameH, frameW*r.scale, frameH*r.scale)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", frameW, frameH)

	for i := range p.Modules {
		r.renderModule(&buf, &p.Modules[i])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frameExtent computes the drawing canvas from module bounding boxes.
// The workspace extent wins when it is larger, so exports line up with
// the editor canvas.
func frameExtent(p *plan.Plan, depthLabels bool) (w, h float64) {
	for i := range p.Modules {
		m := &p.Modules[i]
		w = max(w, m.X+m.Width)
		h = max(h, m.Y+m.Height)
	}
	if depthLabels {
		h += depthLabelHeight
	}
	w = max(w+frameMargin, p.Workspace.Width)
	h = max(h+frameMargin, p.Workspace.Height)
	if w <= frameMargin {
		w = 400
	}
	if h <= frameMargin {
		h = 300
	}
	return w, h
}

func (r *renderer) renderModule(buf *bytes.Buffer, m *plan.Module) {
	placed, _ := layout.Compute(*m, r.records, layout.Options{})

	fmt.Fprintf(buf, `  <g id="module-%s">`+"\n", escape(m.ID))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		m.X, m.Y, m.Width, m.Height, moduleFill, moduleStroke)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		m.X, m.Y, m.Width, layout.DefaultHeaderHeight, headerFill, moduleStroke)
	if m.Name != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
			m.X+4, m.Y+layout.DefaultHeaderHeight-6, r.fontFamily(), r.fontSize(), textColor, escape(m.Name))
	}

	contentX := m.X
	contentY := m.Y + layout.DefaultHeaderHeight

	for i, pl := range placed {
		prod := &m.Products[i]
		x, y := contentX+pl.X, contentY+pl.Y
		fill := productFill
		if prod.Placement.Mode == plan.PlacementManual {
			x, y = contentX+prod.Placement.X, contentY+prod.Placement.Y
			fill = manualFill
		}
		fmt.Fprintf(buf, `    <rect id="product-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
			escape(prod.ID), x, y, pl.Width, pl.Height, fill, moduleStroke)

		if r.labels {
			label := prod.Name
			if label == "" {
				label = prod.ItemCode
			}
			if label != "" {
				size := fitFontSize(pl.Width, pl.Height, len(label))
				fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
					x+pl.Width/2, y+pl.Height/2+size/3, r.fontFamily(), size, textColor,
					escape(truncateLabel(label, pl.Width, size)))
			}
		}
	}

	if r.depthLabels {
		r.renderDepthLabels(buf, m, contentX)
	}

	buf.WriteString("  </g>\n")
}

// renderDepthLabels writes one "xN" capacity label per column, anchored
// under the module on the column's horizontal span.
func (r *renderer) renderDepthLabels(buf *bytes.Buffer, m *plan.Module, contentX float64) {
	infos := metrics.DepthCapacity(*m, r.records)
	for _, info := range infos {
		if !info.IsVisible {
			continue
		}
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="middle">x%d</text>`+"\n",
			contentX+info.LabelX+info.LabelWidth/2, m.Y+m.Height+depthLabelHeight-3,
			r.fontFamily(), r.fontSize(), textColor, info.Capacity)
	}
}

func (r *renderer) fontFamily() string {
	if r.font.Family != "" {
		return r.font.Family
	}
	return defaultFontFamily
}

func (r *renderer) fontSize() float64 {
	if r.font.Size > 0 {
		return r.font.Size
	}
	return defaultFontSize
}

const (
	fontHeightRatio = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 14.0
)

// fitFontSize picks a label size that fits the box both ways.
func fitFontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRatio
	byWidth := w / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func truncateLabel(label string, w, fontSize float64) string {
	maxChars := int(w / (fontSize * fontCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
