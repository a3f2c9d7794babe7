package gear

import (
	"testing"

	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/item"
)

func testSets(t *testing.T) *gamedata.SetRegistry {
	t.Helper()
	sets, err := gamedata.LoadSetRegistry()
	if err != nil {
		t.Fatalf("load sets: %v", err)
	}
	return sets
}

func wardenPiece(id string, slot item.Slot) *item.Item {
	it := item.New(id, "Warden "+slot.String(), item.RarityRare, 10, slot, item.Stats{DEF: 5})
	it.SetID = "warden"
	return it
}

func TestInventoryCapacity(t *testing.T) {
	inv := NewInventory(1)

	first := item.New("i1", "Iron Sword", item.RarityCommon, 1, item.SlotWeapon, item.Stats{ATK: 5})
	second := item.New("i2", "Leather Cap", item.RarityCommon, 1, item.SlotHelmet, item.Stats{DEF: 2})

	if result := inv.Add(first); !result.Success {
		t.Fatalf("First add failed: %s", result.Message)
	}
	if !inv.IsFull() {
		t.Error("Inventory with maxSlots=1 and one item should be full")
	}

	result := inv.Add(second)
	if result.Success {
		t.Error("Add to full inventory should fail")
	}
	if inv.Len() != 1 {
		t.Errorf("Len = %d, want 1", inv.Len())
	}
}

func TestSellCreditsGoldAndRemoves(t *testing.T) {
	inv := NewInventory(10)
	it := item.New("i1", "Iron Sword", item.RarityRare, 10, item.SlotWeapon, item.Stats{ATK: 5})
	inv.Add(it)

	result := inv.Sell("i1")
	if !result.Success {
		t.Fatalf("Sell failed: %s", result.Message)
	}
	if inv.Gold() != it.GoldValue() {
		t.Errorf("Gold = %d, want %d", inv.Gold(), it.GoldValue())
	}
	if inv.Get("i1") != nil {
		t.Error("Sold item still present")
	}

	if result := inv.Sell("i1"); result.Success {
		t.Error("Selling a missing item should fail")
	}
}

func TestSpendGoldInsufficient(t *testing.T) {
	inv := NewInventory(10)
	inv.AddGold(50)

	if result := inv.SpendGold(80); result.Success {
		t.Error("Spending more than the balance should fail")
	}
	if result := inv.SpendGold(50); !result.Success || inv.Gold() != 0 {
		t.Errorf("Spend failed or wrong balance: %d", inv.Gold())
	}
}

func TestEquipOwnershipIsExclusive(t *testing.T) {
	inv := NewInventory(10)
	eq := NewEquipment()

	sword := item.New("i1", "Iron Sword", item.RarityCommon, 1, item.SlotWeapon, item.Stats{ATK: 5})
	inv.Add(sword)

	if result := eq.Equip(EquipWeapon, inv, "i1"); !result.Success {
		t.Fatalf("Equip failed: %s", result.Message)
	}
	if inv.Get("i1") != nil {
		t.Error("Equipped item still in inventory")
	}
	if eq.Get(EquipWeapon) != sword {
		t.Error("Item not in weapon slot")
	}

	// Equipping a replacement returns the old item to the inventory
	better := item.New("i2", "Warden Blade", item.RarityRare, 1, item.SlotWeapon, item.Stats{ATK: 9})
	inv.Add(better)
	if result := eq.Equip(EquipWeapon, inv, "i2"); !result.Success {
		t.Fatalf("Replace failed: %s", result.Message)
	}
	if inv.Get("i1") == nil {
		t.Error("Displaced item did not return to inventory")
	}
	if inv.Get("i2") != nil {
		t.Error("New item still in inventory after equip")
	}
}

func TestEquipRejectsWrongSlot(t *testing.T) {
	inv := NewInventory(10)
	eq := NewEquipment()

	cap := item.New("i1", "Leather Cap", item.RarityCommon, 1, item.SlotHelmet, item.Stats{DEF: 2})
	inv.Add(cap)

	if result := eq.Equip(EquipWeapon, inv, "i1"); result.Success {
		t.Error("Helmet should not equip into the weapon slot")
	}
	if inv.Get("i1") == nil {
		t.Error("Failed equip must leave the item in the inventory")
	}
}

func TestUnequipRequiresInventorySpace(t *testing.T) {
	inv := NewInventory(1)
	eq := NewEquipment()

	sword := item.New("i1", "Iron Sword", item.RarityCommon, 1, item.SlotWeapon, item.Stats{ATK: 5})
	inv.Add(sword)
	eq.Equip(EquipWeapon, inv, "i1")

	blocker := item.New("i2", "Leather Cap", item.RarityCommon, 1, item.SlotHelmet, item.Stats{DEF: 2})
	inv.Add(blocker)

	if result := eq.Unequip(EquipWeapon, inv); result.Success {
		t.Error("Unequip into a full inventory should fail")
	}
	if eq.Get(EquipWeapon) == nil {
		t.Error("Failed unequip must leave the item equipped")
	}
}

func TestSetBonusesAreCumulative(t *testing.T) {
	sets := testSets(t)
	eq := NewEquipment()
	inv := NewInventory(10)

	inv.Add(wardenPiece("w1", item.SlotWeapon))
	inv.Add(wardenPiece("w2", item.SlotHelmet))
	inv.Add(wardenPiece("w3", item.SlotChest))

	eq.Equip(EquipWeapon, inv, "w1")
	if bonuses := eq.ActiveSetBonuses(sets); len(bonuses) != 0 {
		t.Errorf("1 piece should activate no tiers, got %d", len(bonuses))
	}

	eq.Equip(EquipHelmet, inv, "w2")
	if bonuses := eq.ActiveSetBonuses(sets); len(bonuses) != 1 {
		t.Errorf("2 pieces should activate 1 tier, got %d", len(bonuses))
	}

	eq.Equip(EquipChest, inv, "w3")
	bonuses := eq.ActiveSetBonuses(sets)
	if len(bonuses) != 2 {
		t.Fatalf("3 pieces should activate both tiers, got %d", len(bonuses))
	}

	// Both tier bonuses contribute to the aggregate
	total := eq.TotalStats(sets)
	pieceDEF := 0
	for _, it := range eq.Items() {
		pieceDEF += it.EffectiveStats().DEF
	}
	if total.DEF != pieceDEF+5+10 {
		t.Errorf("Total DEF = %d, want %d", total.DEF, pieceDEF+15)
	}
}

func TestBestForSlotTieBreaks(t *testing.T) {
	advisor := NewAdvisor(RoleBalanced)
	inv := NewInventory(10)
	eq := NewEquipment()

	// Equal power score, higher rarity wins
	common := item.New("i1", "Iron Sword", item.RarityCommon, 5, item.SlotWeapon, item.Stats{ATK: 10})
	rare := item.New("i2", "Iron Sword", item.RarityRare, 5, item.SlotWeapon, item.Stats{ATK: 10})
	inv.Add(common)
	inv.Add(rare)

	if best := advisor.BestForSlot(EquipWeapon, eq, inv, 10); best != rare {
		t.Errorf("Expected rarity tie-break to pick i2, got %v", best.ID)
	}

	// Higher power beats higher rarity
	strong := item.New("i3", "Warden Blade", item.RarityCommon, 5, item.SlotWeapon, item.Stats{ATK: 30})
	inv.Add(strong)
	if best := advisor.BestForSlot(EquipWeapon, eq, inv, 10); best != strong {
		t.Errorf("Expected power to dominate, got %v", best.ID)
	}

	// Candidates above the hero's level are filtered out
	overLevel := item.New("i4", "Storm Blade", item.RarityMythic, 50, item.SlotWeapon, item.Stats{ATK: 99})
	inv.Add(overLevel)
	if best := advisor.BestForSlot(EquipWeapon, eq, inv, 10); best != strong {
		t.Errorf("Over-level item should not win, got %v", best.ID)
	}
}

func TestAutoEquipIsIdempotent(t *testing.T) {
	advisor := NewAdvisor(RoleBalanced)
	inv := NewInventory(20)
	eq := NewEquipment()

	inv.Add(item.New("i1", "Iron Sword", item.RarityCommon, 3, item.SlotWeapon, item.Stats{ATK: 10}))
	inv.Add(item.New("i2", "Leather Cap", item.RarityCommon, 3, item.SlotHelmet, item.Stats{DEF: 4}))
	inv.Add(item.New("i3", "Silver Ring", item.RarityUncommon, 3, item.SlotAccessory, item.Stats{SPD: 3}))
	inv.Add(item.New("i4", "Ember Amulet", item.RarityCommon, 3, item.SlotAccessory, item.Stats{ATK: 4}))

	first := advisor.AutoEquip(eq, inv, 10)
	swaps := 0
	for _, change := range first {
		if change.Swapped {
			swaps++
		}
	}
	if swaps != 4 {
		t.Errorf("First pass swaps = %d, want 4", swaps)
	}
	if eq.Get(EquipAccessory1) == nil || eq.Get(EquipAccessory2) == nil {
		t.Error("Both accessory slots should be filled")
	}

	second := advisor.AutoEquip(eq, inv, 10)
	for _, change := range second {
		if change.Swapped {
			t.Errorf("Second pass swapped %s in %v", change.Item.Name, change.Slot)
		}
	}
}

func TestAutoEquipReportsSkippedItems(t *testing.T) {
	advisor := NewAdvisor(RoleBalanced)
	inv := NewInventory(10)
	eq := NewEquipment()

	inv.Add(item.New("i1", "Storm Blade", item.RarityEpic, 40, item.SlotWeapon, item.Stats{ATK: 60}))

	changes := advisor.AutoEquip(eq, inv, 5)
	skipped := false
	for _, change := range changes {
		if !change.Swapped && change.Item != nil && change.Item.ID == "i1" {
			skipped = true
		}
	}
	if !skipped {
		t.Error("Over-level item should appear as a skipped entry")
	}
	if eq.Get(EquipWeapon) != nil {
		t.Error("Over-level item must not be equipped")
	}
}

func TestRoleProfilesChangeSelection(t *testing.T) {
	inv := NewInventory(10)
	eq := NewEquipment()

	offense := item.New("i1", "Ember Amulet", item.RarityCommon, 5, item.SlotAccessory, item.Stats{ATK: 10})
	defense := item.New("i2", "Silver Ring", item.RarityCommon, 5, item.SlotAccessory, item.Stats{DEF: 10, HP: 5})
	inv.Add(offense)
	inv.Add(defense)

	if best := NewAdvisor(RoleDPS).BestForSlot(EquipAccessory1, eq, inv, 10); best != offense {
		t.Errorf("DPS profile picked %s", best.Name)
	}
	if best := NewAdvisor(RoleTank).BestForSlot(EquipAccessory1, eq, inv, 10); best != defense {
		t.Errorf("Tank profile picked %s", best.Name)
	}
}
