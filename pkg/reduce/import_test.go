package reduce

import (
	"testing"

	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

func TestImportCreatesModulesAndProducts(t *testing.T) {
	rows := []record.Record{
		{ItemCode: "A1", Module: "shelf-1", Width: 50, Height: 40, Position: 1},
		{ItemCode: "B2", Module: "shelf-1", Width: 60, Height: 30, Position: 2},
		{ItemCode: "C3", Module: "shelf-2", Width: 40, Height: 40},
	}

	got := Import(plan.Plan{}, rows)

	if got.FindModule("shelf-1") < 0 || got.FindModule("shelf-2") < 0 {
		t.Fatal("Import() should create referenced modules")
	}
	if got.ProductCount() != 3 {
		t.Errorf("product count = %d, want 3", got.ProductCount())
	}
	if len(got.Records) != 3 {
		t.Errorf("record count = %d, want 3", len(got.Records))
	}

	// Imported modules were laid out: every placement is computed.
	for _, m := range got.Modules {
		for _, prod := range m.Products {
			if prod.Placement.Mode != plan.PlacementComputed {
				t.Errorf("product %s not laid out", prod.ItemCode)
			}
		}
	}
}

func TestImportExpandsQuantities(t *testing.T) {
	rows := []record.Record{
		{ItemCode: "A1", Module: "m1", Width: 50, Height: 40, Position: 2, Quantity: 3},
	}

	got := Import(plan.Plan{}, rows)

	if got.ProductCount() != 3 {
		t.Fatalf("product count = %d, want 3 (quantity expansion)", got.ProductCount())
	}
	if len(got.Records) != 3 {
		t.Fatalf("record count = %d, want 3", len(got.Records))
	}

	// Expanded instances stack in one column: all share x.
	m := got.Modules[0]
	x0 := m.Products[0].Placement.X
	for _, prod := range m.Products {
		if prod.Placement.X != x0 {
			t.Errorf("product %s x = %v, want %v (stacked column)", prod.ItemCode, prod.Placement.X, x0)
		}
	}
}

func TestImportRowWithoutModule(t *testing.T) {
	rows := []record.Record{
		{ItemCode: "A1", Width: 50, Height: 40},
	}

	got := Import(plan.Plan{}, rows)

	if len(got.Modules) != 0 {
		t.Error("rows without module reference should not create modules")
	}
	if len(got.Records) != 1 {
		t.Error("record should still be kept in the mirror")
	}
}

func TestImportReimportUpdatesInPlace(t *testing.T) {
	rows := []record.Record{
		{ItemCode: "A1", Module: "m1", Width: 50, Height: 40, Position: 1, Name: "Old"},
	}
	p := Import(plan.Plan{}, rows)

	updated := []record.Record{
		{ItemCode: "A1", Module: "m1", Width: 70, Height: 45, Position: 2, Name: "New"},
	}
	got := Import(p, updated)

	if got.ProductCount() != 1 {
		t.Fatalf("re-import duplicated the product: count = %d", got.ProductCount())
	}
	prod := got.Modules[got.FindModule("m1")].Products[0]
	if prod.Name != "New" || prod.RealWidth != 70 {
		t.Errorf("re-import did not refresh the product: %+v", prod)
	}
	if len(got.Records) != 1 {
		t.Errorf("re-import duplicated the record: count = %d", len(got.Records))
	}
}
