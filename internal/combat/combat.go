// Package combat provides the turn-level combat resolver and the Combatant
// abstraction shared by heroes and enemies.
package combat

import "fmt"

// Element keys elemental resistances and weaknesses. ElementNone marks an
// unaspected attack that skips the elemental modifier entirely.
type Element int

const (
	ElementNone Element = iota
	ElementFire
	ElementIce
	ElementLightning
	ElementPoison
	ElementHoly
	ElementShadow
)

// String returns the element name.
func (e Element) String() string {
	switch e {
	case ElementNone:
		return "none"
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementLightning:
		return "lightning"
	case ElementPoison:
		return "poison"
	case ElementHoly:
		return "holy"
	case ElementShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// ParseElement converts an element name to its value. The empty string maps
// to ElementNone.
func ParseElement(s string) (Element, error) {
	if s == "" {
		return ElementNone, nil
	}
	for e := ElementNone; e <= ElementShadow; e++ {
		if e.String() == s {
			return e, nil
		}
	}
	return ElementNone, fmt.Errorf("unknown element %q", s)
}

// Position is a combatant's battlefield row.
type Position int

const (
	PositionFront Position = iota
	PositionMiddle
	PositionBack
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case PositionFront:
		return "front"
	case PositionMiddle:
		return "middle"
	case PositionBack:
		return "back"
	default:
		return "unknown"
	}
}

// Stats is a combatant's derived combat stat block, after status-effect
// modifiers. CRIT, ACC and EVA are percentages.
type Stats struct {
	ATK  int
	DEF  int
	SPD  int
	CRIT int
	ACC  int
	EVA  int
}

// Stat identifies which combat stat a status effect modifies.
type Stat int

const (
	// StatNone marks effects without a stat modifier (pure stun/immunity).
	StatNone Stat = iota
	StatATK
	StatDEF
	StatSPD
	StatCRIT
	StatACC
	StatEVA
	// StatDamageReduction effects reduce incoming damage by their
	// percentage; the resolver caps the total at 90%.
	StatDamageReduction
)

// StatusEffect represents an active status effect on a combatant.
// Re-adding an effect with the same name refreshes its duration instead of
// stacking.
type StatusEffect struct {
	Name           string
	RemainingTurns int
	Stun           bool
	Immune         bool
	Stat           Stat
	Percent        int // signed modifier percentage for Stat
}

// StatusTick reports what happened to one effect during a tick.
type StatusTick struct {
	Name  string
	Ended bool
}

// Combatant is the interface for any entity participating in combat.
// Heroes and enemies both implement it.
type Combatant interface {
	// Identity
	GetName() string
	GetLevel() int
	IsAlive() bool

	// Health
	GetHP() int
	GetMaxHP() int
	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed

	// Derived stats, after status-effect modifiers
	GetCombatStats() Stats
	GetPosition() Position

	// Elemental profile
	GetAttackElement() Element
	GetResistance(e Element) int // Percentage; negative means vulnerable
	IsWeakTo(e Element) bool

	// Status effects
	GetStatusEffects() []StatusEffect
	AddStatusEffect(effect StatusEffect)
	RemoveStatusEffect(name string)
	TickStatusEffects() []StatusTick
}

// IsStunned reports whether any active effect carries the stun flag.
func IsStunned(c Combatant) bool {
	for _, effect := range c.GetStatusEffects() {
		if effect.Stun {
			return true
		}
	}
	return false
}

// IsImmune reports whether any active effect carries the immunity flag.
func IsImmune(c Combatant) bool {
	for _, effect := range c.GetStatusEffects() {
		if effect.Immune {
			return true
		}
	}
	return false
}

// StatModifier sums the signed modifier percentages targeting the given
// stat across all active effects.
func StatModifier(c Combatant, stat Stat) int {
	total := 0
	for _, effect := range c.GetStatusEffects() {
		if effect.Stat == stat {
			total += effect.Percent
		}
	}
	return total
}
