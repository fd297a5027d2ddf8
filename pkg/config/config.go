// Package config persists shelf plans as versioned JSON documents.
//
// The document schema is deliberately decoupled from the in-memory model in
// package plan: it carries an explicit format version validated at the
// import boundary, so old editors fail loudly on documents from the future
// instead of silently dropping fields. Conversion in both directions is
// lossless for everything the core owns (modules, products, the tabular
// record mirror, session settings).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

// FormatVersion is the document schema version this package writes.
// Readers accept documents up to and including this version.
const FormatVersion = 1

// Document is the canonical serialization format for a shelf plan.
type Document struct {
	Version   int             `json:"version"`
	Modules   []Module        `json:"modules"`
	Scale     float64         `json:"scale,omitempty"`
	Workspace Workspace       `json:"workspace"`
	ExcelData []record.Record `json:"excelData,omitempty"`

	BackgroundImage      string     `json:"backgroundImage,omitempty"`
	BackgroundDimensions *Dimension `json:"backgroundDimensions,omitempty"`

	FontSettings *FontSettings `json:"fontSettings,omitempty"`

	Selected string `json:"selected,omitempty"`
	DragMode string `json:"dragMode,omitempty"`
}

// Module is the serialized form of one shelf module.
type Module struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Depth    float64   `json:"depth,omitempty"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Products []Product `json:"products"`
}

// Product is the serialized form of one placed product.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name,omitempty"`
	Image            string  `json:"image,omitempty"`
	NaturalWidth     float64 `json:"naturalWidth,omitempty"`
	NaturalHeight    float64 `json:"naturalHeight,omitempty"`
	DisplayWidth     float64 `json:"displayWidth"`
	DisplayHeight    float64 `json:"displayHeight"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Manual           bool    `json:"manual,omitempty"`
	ItemCode         string  `json:"itemCode,omitempty"`
	OriginalItemCode string  `json:"originalItemCode,omitempty"`
	RealWidth        float64 `json:"realWidth,omitempty"`
	RealHeight       float64 `json:"realHeight,omitempty"`
	RealDepth        float64 `json:"realDepth,omitempty"`
	Position         float64 `json:"position,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	DupIndex         int     `json:"dupIndex,omitempty"`
}

// Workspace is the serialized canvas extent.
type Workspace struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dimension is a width/height pair.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontSettings is the serialized label font configuration.
type FontSettings struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// FromPlan converts an in-memory plan to its document form.
func FromPlan(p *plan.Plan) Document {
	doc := Document{
		Version:   FormatVersion,
		Modules:   make([]Module, len(p.Modules)),
		Scale:     p.Scale,
		Workspace: Workspace{Width: p.Workspace.Width, Height: p.Workspace.Height},
		ExcelData: p.Records,
		Selected:  p.Selected,
		DragMode:  string(p.DragMode),
	}

	if p.Background != nil {
		doc.BackgroundImage = p.Background.Image
		doc.BackgroundDimensions = &Dimension{Width: p.Background.Width, Height: p.Background.Height}
	}
	if p.Font != (plan.FontSettings{}) {
		doc.FontSettings = &FontSettings{Family: p.Font.Family, Size: p.Font.Size}
	}

	for i, m := range p.Modules {
		dm := Module{
			ID: m.ID, Name: m.Name,
			Width: m.Width, Height: m.Height, Depth: m.Depth,
			X: m.X, Y: m.Y,
			Products: make([]Product, len(m.Products)),
		}
		for j, prod := range m.Products {
			dm.Products[j] = Product{
				ID:               prod.ID,
				Name:             prod.Name,
				Image:            prod.ImageRef,
				NaturalWidth:     prod.NaturalWidth,
				NaturalHeight:    prod.NaturalHeight,
				DisplayWidth:     prod.DisplayWidth,
				DisplayHeight:    prod.DisplayHeight,
				X:                prod.Placement.X,
				Y:                prod.Placement.Y,
				Manual:           prod.Placement.Mode == plan.PlacementManual,
				ItemCode:         prod.ItemCode,
				OriginalItemCode: prod.OriginalItemCode,
				RealWidth:        prod.RealWidth,
				RealHeight:       prod.RealHeight,
				RealDepth:        prod.RealDepth,
				Position:         prod.Position,
				Quantity:         prod.Quantity,
				DupIndex:         prod.DupIndex,
			}
		}
		doc.Modules[i] = dm
	}
	return doc
}

// ToPlan converts a validated document back into the in-memory model.
func ToPlan(doc Document) (plan.Plan, error) {
	if err := validate(doc); err != nil {
		return plan.Plan{}, err
	}

	p := plan.Plan{
		Modules:   make([]plan.Module, len(doc.Modules)),
		Records:   doc.ExcelData,
		Scale:     doc.Scale,
		Workspace: plan.Workspace{Width: doc.Workspace.Width, Height: doc.Workspace.Height},
		Selected:  doc.Selected,
		DragMode:  plan.DragMode(doc.DragMode),
	}
	if p.DragMode == "" {
		p.DragMode = plan.DragModeSwap
	}

	if doc.BackgroundImage != "" || doc.BackgroundDimensions != nil {
		bg := plan.Background{Image: doc.BackgroundImage}
		if doc.BackgroundDimensions != nil {
			bg.Width = doc.BackgroundDimensions.Width
			bg.Height = doc.BackgroundDimensions.Height
		}
		p.Background = &bg
	}
	if doc.FontSettings != nil {
		p.Font = plan.FontSettings{Family: doc.FontSettings.Family, Size: doc.FontSettings.Size}
	}

	for i, dm := range doc.Modules {
		m := plan.Module{
			ID: dm.ID, Name: dm.Name,
			Width: dm.Width, Height: dm.Height, Depth: dm.Depth,
			X: dm.X, Y: dm.Y,
			Products: make([]plan.Product, len(dm.Products)),
		}
		for j, dp := range dm.Products {
			mode := plan.PlacementComputed
			if dp.Manual {
				mode = plan.PlacementManual
			}
			m.Products[j] = plan.Product{
				ID:               dp.ID,
				Name:             dp.Name,
				ImageRef:         dp.Image,
				NaturalWidth:     dp.NaturalWidth,
				NaturalHeight:    dp.NaturalHeight,
				DisplayWidth:     dp.DisplayWidth,
				DisplayHeight:    dp.DisplayHeight,
				Placement:        plan.Placement{Mode: mode, X: dp.X, Y: dp.Y},
				ItemCode:         dp.ItemCode,
				OriginalItemCode: dp.OriginalItemCode,
				RealWidth:        dp.RealWidth,
				RealHeight:       dp.RealHeight,
				RealDepth:        dp.RealDepth,
				Position:         dp.Position,
				Quantity:         dp.Quantity,
				DupIndex:         dp.DupIndex,
				ModuleID:         dm.ID,
			}
		}
		p.Modules[i] = m
	}
	return p, nil
}

// validate checks the structural invariants of a decoded document.
func validate(doc Document) error {
	if doc.Version <= 0 {
		return errors.New(errors.ErrCodeInvalidVersion, "document has no format version")
	}
	if doc.Version > FormatVersion {
		return errors.New(errors.ErrCodeInvalidVersion,
			"document version %d is newer than supported version %d", doc.Version, FormatVersion)
	}

	seen := make(map[string]bool, len(doc.Modules))
	for _, m := range doc.Modules {
		if m.ID == "" {
			return errors.New(errors.ErrCodeInvalidPlan, "module without ID")
		}
		if seen[m.ID] {
			return errors.New(errors.ErrCodeInvalidPlan, "duplicate module ID %s", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// MarshalPlan converts a plan to JSON document bytes.
func MarshalPlan(p *plan.Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePlan(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlan writes a plan as an indented JSON document to w.
func WritePlan(p *plan.Plan, w io.Writer) error {
	doc := FromPlan(p)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WritePlanFile writes a plan document to a JSON file.
// The file is created with 0644 permissions.
func WritePlanFile(p *plan.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlan(p, f)
}

// ReadPlan decodes a JSON plan document from r.
// Returns validation errors for malformed documents or unsupported versions.
func ReadPlan(r io.Reader) (plan.Plan, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return plan.Plan{}, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode document")
	}
	return ToPlan(doc)
}

// ReadPlanFile reads a JSON file and returns the decoded plan.
func ReadPlanFile(path string) (plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPlan(f)
}
