package order

import (
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
)

// Order accumulates menu selections for a single cashier session. Lines keep
// insertion order and there is at most one line per menu item id; adding an
// item that is already present bumps its quantity instead of duplicating the
// line. Pure in-memory state, single owner, no locking.
type Order struct {
	lines []models.OrderLine
	index map[string]int // menu item id -> position in lines
}

func New() *Order {
	return &Order{index: make(map[string]int)}
}

// AddItem adds one unit of the given menu item.
func (o *Order) AddItem(item models.MenuItem) {
	o.Add(item, 1)
}

// Add adds qty units of the given menu item. qty <= 0 is a no-op.
func (o *Order) Add(item models.MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	if pos, ok := o.index[item.ID]; ok {
		o.lines[pos].Quantity += qty
		return
	}
	o.index[item.ID] = len(o.lines)
	o.lines = append(o.lines, models.OrderLine{MenuItem: item, Quantity: qty})
}

// RemoveItem removes one unit of the menu item with the given id. The line is
// dropped entirely when its quantity reaches zero; an unknown id is a no-op.
func (o *Order) RemoveItem(menuItemID string) {
	pos, ok := o.index[menuItemID]
	if !ok {
		return
	}
	if o.lines[pos].Quantity > 1 {
		o.lines[pos].Quantity--
		return
	}
	o.lines = append(o.lines[:pos], o.lines[pos+1:]...)
	delete(o.index, menuItemID)
	for i := pos; i < len(o.lines); i++ {
		o.index[o.lines[i].MenuItem.ID] = i
	}
}

// Clear empties the order unconditionally.
func (o *Order) Clear() {
	o.lines = nil
	o.index = make(map[string]int)
}

// Total recomputes the order total from the current lines on every call.
func (o *Order) Total() int {
	total := 0
	for _, line := range o.lines {
		total += line.MenuItem.Price * line.Quantity
	}
	return total
}

// Lines returns a snapshot copy, safe to hand to the store while the cashier
// keeps editing.
func (o *Order) Lines() []models.OrderLine {
	snapshot := make([]models.OrderLine, len(o.lines))
	copy(snapshot, o.lines)
	return snapshot
}

func (o *Order) IsEmpty() bool {
	return len(o.lines) == 0
}
