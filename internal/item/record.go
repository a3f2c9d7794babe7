package item

import "fmt"

// Record is the plain persisted form of an item. It round-trips losslessly:
// FromRecord(it.Record()) produces an item with identical effective stats,
// score and gold value.
type Record struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	Level        int    `json:"level"`
	Slot         string `json:"slot"`
	Type         string `json:"type"`
	Stats        Stats  `json:"stats"`
	EnchantLevel int    `json:"enchantLevel"`
	SetID        string `json:"setId,omitempty"`
	GoldValue    int    `json:"goldValue"`
	Icon         string `json:"icon,omitempty"`
}

// recordType tags equipment records so other persisted item kinds can share
// the table later.
const recordType = "equipment"

// Record returns the persisted form of the item.
func (it *Item) Record() Record {
	return Record{
		ID:           it.ID,
		Name:         it.Name,
		Rarity:       it.Rarity.String(),
		Level:        it.Level,
		Slot:         it.Slot.String(),
		Type:         recordType,
		Stats:        it.Base,
		EnchantLevel: it.EnchantLevel,
		SetID:        it.SetID,
		GoldValue:    it.goldValue,
		Icon:         it.Icon,
	}
}

// FromRecord reconstructs an item from its persisted form. The gold value is
// rederived rather than trusted, so stale records heal on load.
func FromRecord(r Record) (*Item, error) {
	rarity, err := ParseRarity(r.Rarity)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", r.ID, err)
	}
	slot, err := ParseSlot(r.Slot)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", r.ID, err)
	}
	if r.EnchantLevel < 0 || r.EnchantLevel > MaxEnchantLevel {
		return nil, fmt.Errorf("item %s: enchant level %d out of range", r.ID, r.EnchantLevel)
	}

	it := New(r.ID, r.Name, rarity, r.Level, slot, r.Stats)
	it.EnchantLevel = r.EnchantLevel
	it.SetID = r.SetID
	it.Icon = r.Icon
	it.refreshValue()
	return it, nil
}
