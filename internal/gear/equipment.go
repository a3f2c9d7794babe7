package gear

import (
	"fmt"

	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/item"
)

// EquipSlot is one of the eight named equipment slots. The two accessory
// slots are independent but accept the same general accessory item slot.
type EquipSlot int

const (
	EquipHelmet EquipSlot = iota
	EquipWeapon
	EquipChest
	EquipGloves
	EquipLegs
	EquipBoots
	EquipAccessory1
	EquipAccessory2
)

// AllEquipSlots lists every equipment slot in advisor iteration order.
var AllEquipSlots = [...]EquipSlot{
	EquipHelmet,
	EquipWeapon,
	EquipChest,
	EquipGloves,
	EquipLegs,
	EquipBoots,
	EquipAccessory1,
	EquipAccessory2,
}

// String returns the slot name.
func (s EquipSlot) String() string {
	switch s {
	case EquipHelmet:
		return "helmet"
	case EquipWeapon:
		return "weapon"
	case EquipChest:
		return "chest"
	case EquipGloves:
		return "gloves"
	case EquipLegs:
		return "legs"
	case EquipBoots:
		return "boots"
	case EquipAccessory1:
		return "accessory1"
	case EquipAccessory2:
		return "accessory2"
	default:
		return "unknown"
	}
}

// ItemSlot returns the general item slot this equipment slot accepts.
func (s EquipSlot) ItemSlot() item.Slot {
	switch s {
	case EquipHelmet:
		return item.SlotHelmet
	case EquipWeapon:
		return item.SlotWeapon
	case EquipChest:
		return item.SlotChest
	case EquipGloves:
		return item.SlotGloves
	case EquipLegs:
		return item.SlotLegs
	case EquipBoots:
		return item.SlotBoots
	default:
		return item.SlotAccessory
	}
}

// Equipment holds at most one item per named slot. Items in equipment are
// owned exclusively; they are never simultaneously present in an inventory.
type Equipment struct {
	slots map[EquipSlot]*item.Item
}

// NewEquipment creates an empty equipment set.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[EquipSlot]*item.Item)}
}

// Get returns the item in the given slot, or nil.
func (e *Equipment) Get(slot EquipSlot) *item.Item {
	return e.slots[slot]
}

// Items returns all equipped items.
func (e *Equipment) Items() []*item.Item {
	items := make([]*item.Item, 0, len(e.slots))
	for _, slot := range AllEquipSlots {
		if it := e.slots[slot]; it != nil {
			items = append(items, it)
		}
	}
	return items
}

// Equip moves the identified item from the inventory into the slot. Any
// displaced item returns to the inventory in the same call, so ownership
// transfer is atomic: either both moves happen or neither does.
func (e *Equipment) Equip(slot EquipSlot, inv *Inventory, itemID string) Result {
	candidate := inv.Get(itemID)
	if candidate == nil {
		return fail("Item not found in inventory")
	}
	if candidate.Slot != slot.ItemSlot() {
		return fail(fmt.Sprintf("%s does not fit the %s slot", candidate.Name, slot))
	}

	inv.Remove(itemID)
	if previous := e.slots[slot]; previous != nil {
		// Removal above freed a slot, so this add cannot fail.
		inv.Add(previous)
	}
	e.slots[slot] = candidate
	return ok(fmt.Sprintf("Equipped %s", candidate.Name))
}

// Unequip moves the item in the slot back into the inventory.
func (e *Equipment) Unequip(slot EquipSlot, inv *Inventory) Result {
	equipped := e.slots[slot]
	if equipped == nil {
		return fail("Nothing equipped in that slot")
	}
	if inv.IsFull() {
		return fail("Inventory is full")
	}

	delete(e.slots, slot)
	inv.Add(equipped)
	return ok(fmt.Sprintf("Unequipped %s", equipped.Name))
}

// TotalStats returns the sum of all equipped items' effective stats plus
// every active set bonus.
func (e *Equipment) TotalStats(sets *gamedata.SetRegistry) item.Stats {
	var total item.Stats
	for _, it := range e.slots {
		total = total.Add(it.EffectiveStats())
	}
	for _, bonus := range e.ActiveSetBonuses(sets) {
		total = total.Add(bonus.Stats)
	}
	return total
}

// SetPieces counts equipped pieces per set identifier.
func (e *Equipment) SetPieces() map[string]int {
	pieces := make(map[string]int)
	for _, it := range e.slots {
		if it.SetID != "" {
			pieces[it.SetID]++
		}
	}
	return pieces
}

// ActiveBonus is one unlocked set tier.
type ActiveBonus struct {
	SetID   string
	SetName string
	Pieces  int
	Stats   item.Stats
	Special string
}

// ActiveSetBonuses returns every set tier whose piece threshold is met.
// Tiers are cumulative: meeting a higher threshold keeps all lower tiers of
// the same set active.
func (e *Equipment) ActiveSetBonuses(sets *gamedata.SetRegistry) []ActiveBonus {
	if sets == nil {
		return nil
	}

	var active []ActiveBonus
	for setID, count := range e.SetPieces() {
		def := sets.GetByID(setID)
		if def == nil {
			continue
		}
		for _, tier := range def.Tiers {
			if tier.Pieces <= count {
				active = append(active, ActiveBonus{
					SetID:   def.ID,
					SetName: def.Name,
					Pieces:  tier.Pieces,
					Stats:   bonusStats(tier.Bonus),
					Special: tier.Special,
				})
			}
		}
	}
	return active
}

func bonusStats(b gamedata.StatBlock) item.Stats {
	return item.Stats{HP: b.HP, ATK: b.ATK, DEF: b.DEF, SPD: b.SPD, CRIT: b.CRIT}
}
