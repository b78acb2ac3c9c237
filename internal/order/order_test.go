package order

import (
	"testing"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
)

var (
	nasiPutih = models.MenuItem{ID: "1", Name: "Nasi Putih", Price: 5000, Category: models.CategoryMakanan}
	esTeh     = models.MenuItem{ID: "9", Name: "Es Teh Manis", Price: 5000, Category: models.CategoryMinuman}
	kerupuk   = models.MenuItem{ID: "14", Name: "Kerupuk", Price: 2000, Category: models.CategoryTambahan}
)

func TestAddItemMergesLines(t *testing.T) {
	o := New()
	o.AddItem(nasiPutih)
	o.AddItem(nasiPutih)
	o.AddItem(esTeh)

	lines := o.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].MenuItem.ID != "1" || lines[0].Quantity != 2 {
		t.Errorf("line 0 = %s x%d, want 1 x2", lines[0].MenuItem.ID, lines[0].Quantity)
	}
	if lines[1].MenuItem.ID != "9" || lines[1].Quantity != 1 {
		t.Errorf("line 1 = %s x%d, want 9 x1", lines[1].MenuItem.ID, lines[1].Quantity)
	}
	if got := o.Total(); got != 15000 {
		t.Errorf("Total() = %d, want 15000", got)
	}
}

func TestRemoveItemDecrementsThenDrops(t *testing.T) {
	o := New()
	o.AddItem(nasiPutih)
	o.AddItem(nasiPutih)

	o.RemoveItem("1")
	if lines := o.Lines(); len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("after one remove, lines = %+v", lines)
	}

	o.RemoveItem("1")
	if !o.IsEmpty() {
		t.Fatal("expected empty order after removing last unit")
	}
	if got := o.Total(); got != 0 {
		t.Errorf("Total() = %d, want 0", got)
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	o := New()
	o.AddItem(esTeh)
	o.RemoveItem("does-not-exist")

	if lines := o.Lines(); len(lines) != 1 || lines[0].MenuItem.ID != "9" {
		t.Fatalf("order changed by removing unknown id: %+v", lines)
	}
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	o := New()
	o.AddItem(nasiPutih)
	o.AddItem(esTeh)
	o.AddItem(kerupuk)

	// Drop the middle line, then keep editing the lines around it.
	o.RemoveItem("9")
	o.AddItem(kerupuk)
	o.RemoveItem("14")

	lines := o.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", lines)
	}
	if lines[1].MenuItem.ID != "14" || lines[1].Quantity != 1 {
		t.Errorf("line 1 = %s x%d, want 14 x1", lines[1].MenuItem.ID, lines[1].Quantity)
	}
}

func TestNetAddsMinusRemoves(t *testing.T) {
	o := New()
	for i := 0; i < 5; i++ {
		o.AddItem(nasiPutih)
	}
	for i := 0; i < 7; i++ {
		o.RemoveItem("1") // two extra removes must not go negative
	}
	if !o.IsEmpty() {
		t.Fatalf("expected empty order, got %+v", o.Lines())
	}

	o.AddItem(nasiPutih)
	if got := o.Total(); got != 5000 {
		t.Errorf("Total() after re-add = %d, want 5000", got)
	}
}

func TestAddQuantityAndClear(t *testing.T) {
	o := New()
	o.Add(nasiPutih, 3)
	o.Add(nasiPutih, 0) // no-op
	o.Add(esTeh, -2)    // no-op

	if got := o.Total(); got != 15000 {
		t.Errorf("Total() = %d, want 15000", got)
	}

	o.Clear()
	if !o.IsEmpty() || o.Total() != 0 {
		t.Errorf("Clear() left state behind: %+v", o.Lines())
	}
}

func TestLinesReturnsSnapshot(t *testing.T) {
	o := New()
	o.AddItem(nasiPutih)

	snapshot := o.Lines()
	o.AddItem(nasiPutih)

	if snapshot[0].Quantity != 1 {
		t.Errorf("snapshot mutated by later edits: %+v", snapshot)
	}
}
