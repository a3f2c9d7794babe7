// Package entity provides the concrete combatants: heroes and enemies.
package entity

import (
	"math"

	"github.com/samdwyer/delvecore/internal/combat"
)

// core holds the combatant state shared by Hero and Enemy: health, status
// effects, battlefield position and the elemental profile.
type core struct {
	name     string
	level    int
	hp       int
	maxHP    int
	position combat.Position
	element  combat.Element

	resistances   map[combat.Element]int
	weaknesses    map[combat.Element]bool
	statusEffects []combat.StatusEffect
}

func newCore(name string, level int) core {
	if level < 1 {
		level = 1
	}
	return core{
		name:        name,
		level:       level,
		resistances: make(map[combat.Element]int),
		weaknesses:  make(map[combat.Element]bool),
	}
}

// GetName returns the combatant's name.
func (c *core) GetName() string { return c.name }

// GetLevel returns the combatant's level.
func (c *core) GetLevel() int { return c.level }

// IsAlive returns true while HP remains.
func (c *core) IsAlive() bool { return c.hp > 0 }

// GetHP returns current HP.
func (c *core) GetHP() int { return c.hp }

// GetMaxHP returns maximum HP.
func (c *core) GetMaxHP() int { return c.maxHP }

// GetPosition returns the battlefield row.
func (c *core) GetPosition() combat.Position { return c.position }

// SetPosition moves the combatant to another battlefield row.
func (c *core) SetPosition(p combat.Position) { c.position = p }

// GetAttackElement returns the element the combatant's attacks carry.
func (c *core) GetAttackElement() combat.Element { return c.element }

// GetResistance returns the resistance percentage for an element. Negative
// values mark vulnerabilities.
func (c *core) GetResistance(e combat.Element) int { return c.resistances[e] }

// IsWeakTo reports whether the combatant takes amplified damage from the
// element.
func (c *core) IsWeakTo(e combat.Element) bool { return c.weaknesses[e] }

// TakeDamage reduces HP, floored at zero, and returns actual damage taken.
func (c *core) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.hp {
		actual = c.hp
	}
	c.hp -= actual
	return actual
}

// Heal restores HP, capped at max, and returns the actual amount healed.
func (c *core) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if c.hp+actual > c.maxHP {
		actual = c.maxHP - c.hp
	}
	c.hp += actual
	return actual
}

// GetStatusEffects returns active status effects.
func (c *core) GetStatusEffects() []combat.StatusEffect {
	return c.statusEffects
}

// AddStatusEffect adds a status effect, refreshing the duration of an
// existing effect with the same name instead of stacking it.
func (c *core) AddStatusEffect(effect combat.StatusEffect) {
	for i, existing := range c.statusEffects {
		if existing.Name == effect.Name {
			c.statusEffects[i] = effect
			return
		}
	}
	c.statusEffects = append(c.statusEffects, effect)
}

// RemoveStatusEffect removes a status effect by name.
func (c *core) RemoveStatusEffect(name string) {
	for i, existing := range c.statusEffects {
		if existing.Name == name {
			c.statusEffects = append(c.statusEffects[:i], c.statusEffects[i+1:]...)
			return
		}
	}
}

// TickStatusEffects decrements every effect's duration once and evicts any
// at or below zero.
func (c *core) TickStatusEffects() []combat.StatusTick {
	var ticks []combat.StatusTick
	remaining := []combat.StatusEffect{}

	for _, effect := range c.statusEffects {
		effect.RemainingTurns--
		tick := combat.StatusTick{Name: effect.Name}
		if effect.RemainingTurns <= 0 {
			tick.Ended = true
		} else {
			remaining = append(remaining, effect)
		}
		ticks = append(ticks, tick)
	}

	c.statusEffects = remaining
	return ticks
}

// modified applies the summed status-effect modifier percentages for a stat:
// floor(base * (1 + total/100)).
func (c *core) modified(base int, stat combat.Stat) int {
	total := 0
	for _, effect := range c.statusEffects {
		if effect.Stat == stat {
			total += effect.Percent
		}
	}
	if total == 0 {
		return base
	}
	return int(math.Floor(float64(base) * (1 + float64(total)/100)))
}

// applyModifiers runs every combat stat through the active status effects.
func (c *core) applyModifiers(stats combat.Stats) combat.Stats {
	return combat.Stats{
		ATK:  c.modified(stats.ATK, combat.StatATK),
		DEF:  c.modified(stats.DEF, combat.StatDEF),
		SPD:  c.modified(stats.SPD, combat.StatSPD),
		CRIT: c.modified(stats.CRIT, combat.StatCRIT),
		ACC:  c.modified(stats.ACC, combat.StatACC),
		EVA:  c.modified(stats.EVA, combat.StatEVA),
	}
}
