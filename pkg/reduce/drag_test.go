package reduce

import (
	"testing"

	"github.com/planora/shelfplan/pkg/errors"
	"github.com/planora/shelfplan/pkg/plan"
	"github.com/planora/shelfplan/pkg/record"
)

func TestSwapProducts(t *testing.T) {
	p := seedPlan(t)

	got, err := SwapProducts(p, "p1", "p3")
	if err != nil {
		t.Fatalf("SwapProducts() error: %v", err)
	}

	r1, _ := record.FindByItemCode(got.Records, "p1")
	r3, _ := record.FindByItemCode(got.Records, "p3")
	if r1.Position != 3 || r3.Position != 1 {
		t.Errorf("record positions = %v/%v, want 3/1", r1.Position, r3.Position)
	}

	// Stored fallback positions cross-assigned too.
	_, pi1 := got.FindProduct("p1")
	_, pi3 := got.FindProduct("p3")
	if got.Modules[0].Products[pi1].Position != 3 {
		t.Errorf("p1 stored position = %v, want 3", got.Modules[0].Products[pi1].Position)
	}
	if got.Modules[0].Products[pi3].Position != 1 {
		t.Errorf("p3 stored position = %v, want 1", got.Modules[0].Products[pi3].Position)
	}

	// Conservation.
	if got.ProductCount() != 3 {
		t.Errorf("product count = %d, want 3", got.ProductCount())
	}

	// The swap changes columns, so the x order flips.
	x1 := got.Modules[0].Products[pi1].Placement.X
	x3 := got.Modules[0].Products[pi3].Placement.X
	if !(x3 < x1) {
		t.Errorf("after swap p3 (x=%v) should sit left of p1 (x=%v)", x3, x1)
	}
}

func TestSwapProductsAcrossModulesRejected(t *testing.T) {
	p := seedPlan(t)
	p, err := MoveProduct(p, "p3", "m2")
	if err != nil {
		t.Fatalf("MoveProduct() error: %v", err)
	}

	_, err = SwapProducts(p, "p1", "p3")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT (different modules)", err)
	}
}

func TestSwapProductsSelf(t *testing.T) {
	p := seedPlan(t)
	got, err := SwapProducts(p, "p1", "p1")
	if err != nil {
		t.Fatalf("SwapProducts() error: %v", err)
	}
	r1, _ := record.FindByItemCode(got.Records, "p1")
	if r1.Position != 1 {
		t.Errorf("self-swap changed position to %v", r1.Position)
	}
}

func TestInsertProductAtRenumbersSequentially(t *testing.T) {
	p := seedPlan(t)

	// Move the product at array index 0 to index 2: order becomes p2, p3, p1.
	got, err := InsertProductAt(p, "p1", 2)
	if err != nil {
		t.Fatalf("InsertProductAt() error: %v", err)
	}

	m := got.Modules[0]
	wantOrder := []string{"p2", "p3", "p1"}
	for i, want := range wantOrder {
		if m.Products[i].ItemCode != want {
			t.Errorf("array[%d] = %s, want %s", i, m.Products[i].ItemCode, want)
		}
	}

	// All records renumbered 1, 2, 3 matching the new array order exactly.
	for i, code := range wantOrder {
		rec, ok := record.FindByItemCode(got.Records, code)
		if !ok {
			t.Fatalf("record %s missing", code)
		}
		if rec.Position != float64(i+1) {
			t.Errorf("record %s position = %v, want %d", code, rec.Position, i+1)
		}
	}
}

func TestInsertProductAtClampsIndex(t *testing.T) {
	p := seedPlan(t)

	got, err := InsertProductAt(p, "p2", 99)
	if err != nil {
		t.Fatalf("InsertProductAt() error: %v", err)
	}
	m := got.Modules[0]
	if m.Products[len(m.Products)-1].ItemCode != "p2" {
		t.Error("out-of-range index should append at the end")
	}

	got, err = InsertProductAt(p, "p2", -1)
	if err != nil {
		t.Fatalf("InsertProductAt() error: %v", err)
	}
	if got.Modules[0].Products[0].ItemCode != "p2" {
		t.Error("negative index should insert at the front")
	}
}

func TestDropOnSwapMode(t *testing.T) {
	p := SetDragMode(seedPlan(t), plan.DragModeSwap)

	got, err := DropOn(p, "p1", "p2")
	if err != nil {
		t.Fatalf("DropOn() error: %v", err)
	}

	r1, _ := record.FindByItemCode(got.Records, "p1")
	r2, _ := record.FindByItemCode(got.Records, "p2")
	if r1.Position != 2 || r2.Position != 1 {
		t.Errorf("swap mode positions = %v/%v, want 2/1", r1.Position, r2.Position)
	}
}

func TestDropOnInsertMode(t *testing.T) {
	p := SetDragMode(seedPlan(t), plan.DragModeInsert)

	got, err := DropOn(p, "p1", "p3")
	if err != nil {
		t.Fatalf("DropOn() error: %v", err)
	}

	m := got.Modules[0]
	wantOrder := []string{"p2", "p3", "p1"}
	for i, want := range wantOrder {
		if m.Products[i].ItemCode != want {
			t.Errorf("array[%d] = %s, want %s", i, m.Products[i].ItemCode, want)
		}
		rec, _ := record.FindByItemCode(got.Records, want)
		if rec.Position != float64(i+1) {
			t.Errorf("record %s position = %v, want %d", want, rec.Position, i+1)
		}
	}
}
