package entity

import (
	"github.com/samdwyer/delvecore/internal/combat"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/item"
)

// Hero is a player-controlled combatant. Its combat stats combine intrinsic
// per-level stats with equipped gear and active set bonuses.
type Hero struct {
	core

	Role gear.Role

	base      item.Stats
	equipment *gear.Equipment
	sets      *gamedata.SetRegistry
}

// NewHero creates a hero with the given intrinsic stats and empty equipment.
func NewHero(name string, level int, base item.Stats, sets *gamedata.SetRegistry) *Hero {
	h := &Hero{
		core:      newCore(name, level),
		base:      base,
		equipment: gear.NewEquipment(),
		sets:      sets,
	}
	h.Refresh()
	h.hp = h.maxHP
	return h
}

// Equipment returns the hero's equipment set.
func (h *Hero) Equipment() *gear.Equipment {
	return h.equipment
}

// TotalStats returns intrinsic stats plus gear and set bonuses, before
// status-effect modifiers.
func (h *Hero) TotalStats() item.Stats {
	return h.base.Add(h.equipment.TotalStats(h.sets))
}

// Refresh recomputes max HP from the current stat total. Current HP is
// clamped so the HP invariant holds after gear changes.
func (h *Hero) Refresh() {
	total := h.TotalStats()
	h.maxHP = total.HP
	if h.maxHP < 1 {
		h.maxHP = 1
	}
	if h.hp > h.maxHP {
		h.hp = h.maxHP
	}
}

// SetLevel raises the hero's level. Levels never decrease.
func (h *Hero) SetLevel(level int) {
	if level > h.level {
		h.level = level
	}
}

// GetCombatStats returns the hero's derived stats after status modifiers.
// Accuracy and evasion derive from speed: ACC = 90 + 0.4*SPD,
// EVA = 0.25*SPD.
func (h *Hero) GetCombatStats() combat.Stats {
	total := h.TotalStats()
	stats := combat.Stats{
		ATK:  total.ATK,
		DEF:  total.DEF,
		SPD:  total.SPD,
		CRIT: total.CRIT,
		ACC:  90 + int(0.4*float64(total.SPD)),
		EVA:  int(0.25 * float64(total.SPD)),
	}
	return h.applyModifiers(stats)
}

// Ensure Hero implements combat.Combatant
var _ combat.Combatant = (*Hero)(nil)
