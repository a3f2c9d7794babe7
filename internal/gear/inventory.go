package gear

import (
	"fmt"
	"sort"

	"github.com/samdwyer/delvecore/internal/item"
)

// Inventory is a bounded ordered item collection with a gold balance.
type Inventory struct {
	items    []*item.Item
	maxSlots int
	gold     int
}

// NewInventory creates an empty inventory with the given capacity.
func NewInventory(maxSlots int) *Inventory {
	return &Inventory{
		items:    make([]*item.Item, 0, maxSlots),
		maxSlots: maxSlots,
	}
}

// Items returns the items in inventory order.
func (inv *Inventory) Items() []*item.Item {
	return inv.items
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// MaxSlots returns the inventory capacity.
func (inv *Inventory) MaxSlots() int {
	return inv.maxSlots
}

// IsFull reports whether the inventory is at capacity.
func (inv *Inventory) IsFull() bool {
	return len(inv.items) >= inv.maxSlots
}

// Gold returns the current gold balance.
func (inv *Inventory) Gold() int {
	return inv.gold
}

// AddGold credits gold to the balance.
func (inv *Inventory) AddGold(amount int) {
	if amount > 0 {
		inv.gold += amount
	}
}

// SpendGold debits gold, failing when the balance is insufficient.
func (inv *Inventory) SpendGold(amount int) Result {
	if amount > inv.gold {
		return fail("Not enough gold")
	}
	inv.gold -= amount
	return ok(fmt.Sprintf("Spent %d gold", amount))
}

// Add appends an item, failing when the inventory is full.
func (inv *Inventory) Add(it *item.Item) Result {
	if inv.IsFull() {
		return fail("Inventory is full")
	}
	inv.items = append(inv.items, it)
	return ok(fmt.Sprintf("Picked up %s", it.Name))
}

// Get returns the item with the given id, or nil.
func (inv *Inventory) Get(id string) *item.Item {
	for _, it := range inv.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Remove takes the item with the given id out of the inventory and returns
// it, or nil when absent.
func (inv *Inventory) Remove(id string) *item.Item {
	for i, it := range inv.items {
		if it.ID == id {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return it
		}
	}
	return nil
}

// Sell removes the item and credits its full gold value.
func (inv *Inventory) Sell(id string) Result {
	it := inv.Remove(id)
	if it == nil {
		return fail("Item not found")
	}
	inv.gold += it.GoldValue()
	return ok(fmt.Sprintf("Sold %s for %d gold", it.Name, it.GoldValue()))
}

// Salvage removes the item and credits half its gold value.
func (inv *Inventory) Salvage(id string) Result {
	it := inv.Remove(id)
	if it == nil {
		return fail("Item not found")
	}
	recovered := it.GoldValue() / 2
	inv.gold += recovered
	return ok(fmt.Sprintf("Salvaged %s for %d gold", it.Name, recovered))
}

// SortKey selects an inventory ordering.
type SortKey int

const (
	// SortByScore orders by item score descending.
	SortByScore SortKey = iota
	// SortByRarity orders by rarity descending, then score.
	SortByRarity
	// SortByLevel orders by level descending, then score.
	SortByLevel
)

// Sort reorders the inventory in place by the given key. Ties fall back to
// name so the ordering is stable across runs.
func (inv *Inventory) Sort(key SortKey) {
	sort.SliceStable(inv.items, func(i, j int) bool {
		a, b := inv.items[i], inv.items[j]
		switch key {
		case SortByRarity:
			if a.Rarity != b.Rarity {
				return a.Rarity > b.Rarity
			}
		case SortByLevel:
			if a.Level != b.Level {
				return a.Level > b.Level
			}
		}
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.Name < b.Name
	})
}

// FilterSlot returns the held items matching the given general item slot.
func (inv *Inventory) FilterSlot(slot item.Slot) []*item.Item {
	var matches []*item.Item
	for _, it := range inv.items {
		if it.Slot == slot {
			matches = append(matches, it)
		}
	}
	return matches
}
