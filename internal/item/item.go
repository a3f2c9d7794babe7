// Package item provides the equippable item model: stats, rarity,
// enchantment, valuation and persistence records.
package item

import (
	"fmt"
	"math"
)

// Rarity is the six-level item rarity ordinal.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// String returns the rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return "unknown"
	}
}

// ParseRarity converts a rarity name back to its ordinal.
func ParseRarity(s string) (Rarity, error) {
	for r := RarityCommon; r <= RarityMythic; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", s)
}

// Slot is the equip slot an item occupies.
type Slot int

const (
	SlotHelmet Slot = iota
	SlotWeapon
	SlotChest
	SlotGloves
	SlotLegs
	SlotBoots
	SlotAccessory
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotHelmet:
		return "helmet"
	case SlotWeapon:
		return "weapon"
	case SlotChest:
		return "chest"
	case SlotGloves:
		return "gloves"
	case SlotLegs:
		return "legs"
	case SlotBoots:
		return "boots"
	case SlotAccessory:
		return "accessory"
	default:
		return "unknown"
	}
}

// ParseSlot converts a slot name back to its ordinal.
func ParseSlot(s string) (Slot, error) {
	for slot := SlotHelmet; slot <= SlotAccessory; slot++ {
		if slot.String() == s {
			return slot, nil
		}
	}
	return SlotHelmet, fmt.Errorf("unknown slot %q", s)
}

// Stats is an item stat block. Values are flat additive contributions;
// CRIT is a percentage.
type Stats struct {
	HP   int `json:"hp"`
	ATK  int `json:"atk"`
	DEF  int `json:"def"`
	SPD  int `json:"spd"`
	CRIT int `json:"crit"`
}

// Add returns the component-wise sum of two stat blocks.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		HP:   s.HP + o.HP,
		ATK:  s.ATK + o.ATK,
		DEF:  s.DEF + o.DEF,
		SPD:  s.SPD + o.SPD,
		CRIT: s.CRIT + o.CRIT,
	}
}

// Scale returns the stat block multiplied by factor, floored per stat.
func (s Stats) Scale(factor float64) Stats {
	return Stats{
		HP:   int(math.Floor(float64(s.HP) * factor)),
		ATK:  int(math.Floor(float64(s.ATK) * factor)),
		DEF:  int(math.Floor(float64(s.DEF) * factor)),
		SPD:  int(math.Floor(float64(s.SPD) * factor)),
		CRIT: int(math.Floor(float64(s.CRIT) * factor)),
	}
}

// Item is one equippable item. Base stats never change after construction;
// enchanting raises EnchantLevel, which scales the effective stats and the
// cached gold value.
type Item struct {
	ID           string
	Name         string
	Rarity       Rarity
	Level        int
	Slot         Slot
	Base         Stats
	EnchantLevel int
	SetID        string
	Icon         string

	goldValue int // cached, derived from rarity/level/enchant
}

// New constructs an item and computes its cached gold value.
func New(id, name string, rarity Rarity, level int, slot Slot, base Stats) *Item {
	it := &Item{
		ID:     id,
		Name:   name,
		Rarity: rarity,
		Level:  level,
		Slot:   slot,
		Base:   base,
	}
	it.refreshValue()
	return it
}

// EffectiveStats returns the base stats scaled by the enchant multiplier
// (1 + 0.1 per enchant level).
func (it *Item) EffectiveStats() Stats {
	return it.Base.Scale(1 + 0.1*float64(it.EnchantLevel))
}

// GoldValue returns the cached sell value.
func (it *Item) GoldValue() int {
	return it.goldValue
}

func (it *Item) refreshValue() {
	value := float64(rarityBaseValue[it.Rarity]) *
		(float64(it.Level) / 5) *
		(1 + 0.2*float64(it.EnchantLevel))
	it.goldValue = int(math.Floor(value))
	if it.goldValue < 0 {
		it.goldValue = 0
	}
}

// Score returns the item valuation metric used for loot display and
// comparisons: rarity base x level x enchant x slot weighting, floored.
func (it *Item) Score() int {
	score := float64(rarityBaseScore[it.Rarity]) *
		(1 + float64(it.Level)/50) *
		(1 + float64(it.EnchantLevel)*0.15) *
		slotMultiplier[it.Slot]
	return int(math.Floor(score))
}

var rarityBaseValue = map[Rarity]int{
	RarityCommon:    10,
	RarityUncommon:  25,
	RarityRare:      60,
	RarityEpic:      150,
	RarityLegendary: 400,
	RarityMythic:    1000,
}

var rarityBaseScore = map[Rarity]int{
	RarityCommon:    10,
	RarityUncommon:  20,
	RarityRare:      40,
	RarityEpic:      80,
	RarityLegendary: 160,
	RarityMythic:    320,
}

var slotMultiplier = map[Slot]float64{
	SlotHelmet:    1.1,
	SlotWeapon:    1.5,
	SlotChest:     1.2,
	SlotGloves:    1.0,
	SlotLegs:      1.1,
	SlotBoots:     1.0,
	SlotAccessory: 1.3,
}
