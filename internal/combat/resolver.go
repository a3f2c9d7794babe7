package combat

import (
	"fmt"
	"math"

	"github.com/samdwyer/delvecore/internal/rng"
)

// AttackResult contains the outcome of resolving one attack.
type AttackResult struct {
	Hit     bool
	Miss    bool // didMiss: the hit roll failed, no further steps ran
	Crit    bool
	Immune  bool // defender immunity blocked all damage
	Damage  int  // actual damage applied to the defender
	Element Element
	Message string
}

// AttackResolver resolves attacks between combatants. The random source is
// injected so combat stays reproducible under a fixed seed.
type AttackResolver struct {
	src rng.Source
}

// NewAttackResolver creates a resolver drawing from the given source.
func NewAttackResolver(src rng.Source) *AttackResolver {
	return &AttackResolver{src: src}
}

// HitChance computes the clamped hit probability for an attacker/defender
// stat pairing. The result is always within [5, 95].
func HitChance(attacker, defender Stats) float64 {
	chance := 100 + float64(attacker.ACC-defender.EVA)/10
	if chance < 5 {
		return 5
	}
	if chance > 95 {
		return 95
	}
	return chance
}

// Resolve applies one attack from attacker to defender and returns the
// result. Resolution order: immunity short-circuit, hit roll, crit roll,
// defense curve, elemental modifier, status damage reduction, then the
// minimum-damage floor of 1.
func (r *AttackResolver) Resolve(attacker, defender Combatant) AttackResult {
	element := attacker.GetAttackElement()

	if IsImmune(defender) {
		return AttackResult{
			Element: element,
			Immune:  true,
			Message: fmt.Sprintf("%s is immune to all damage!", defender.GetName()),
		}
	}

	atkStats := attacker.GetCombatStats()
	defStats := defender.GetCombatStats()

	if r.src.Float64()*100 >= HitChance(atkStats, defStats) {
		return AttackResult{
			Element: element,
			Miss:    true,
			Message: fmt.Sprintf("%s misses %s!", attacker.GetName(), defender.GetName()),
		}
	}

	crit := r.src.Float64()*100 < float64(atkStats.CRIT)
	damage := r.CalculateDamage(atkStats, defStats, defender, element, crit)

	actual := defender.TakeDamage(damage)

	message := fmt.Sprintf("%s hits %s for %d damage", attacker.GetName(), defender.GetName(), actual)
	if crit {
		message = fmt.Sprintf("%s critically hits %s for %d damage!", attacker.GetName(), defender.GetName(), actual)
	}

	return AttackResult{
		Hit:     true,
		Crit:    crit,
		Damage:  actual,
		Element: element,
		Message: message,
	}
}

// CalculateDamage computes the damage an attack would deal without applying
// it (for AI previews and the resolver itself).
func (r *AttackResolver) CalculateDamage(atkStats, defStats Stats, defender Combatant, element Element, crit bool) int {
	raw := float64(atkStats.ATK)

	var damage float64
	if crit {
		damage = 1.5 * raw * 100 / (100 + float64(defStats.DEF)*0.5)
	} else {
		damage = raw * 100 / (100 + float64(defStats.DEF))
	}

	// Elemental modifier: resistance scales first, then weakness multiplies
	// on top, so a defender can be resistant and weak simultaneously.
	if element != ElementNone {
		damage *= 1 - float64(defender.GetResistance(element))/100
		if defender.IsWeakTo(element) {
			damage *= 1.5
		}
	}

	reduction := StatModifier(defender, StatDamageReduction)
	if reduction > 90 {
		reduction = 90
	}
	if reduction > 0 {
		damage *= 1 - float64(reduction)/100
	}

	result := int(math.Floor(damage))
	if result < 1 {
		result = 1
	}
	return result
}

// SelectTarget picks an opponent using the simple combat AI: a 20% chance
// to focus the lowest-HP living opponent, otherwise a uniform random living
// opponent. Returns nil when no opponent is alive.
func SelectTarget(src rng.Source, opponents []Combatant) Combatant {
	living := make([]Combatant, 0, len(opponents))
	for _, c := range opponents {
		if c.IsAlive() {
			living = append(living, c)
		}
	}
	if len(living) == 0 {
		return nil
	}

	if src.Float64() < 0.20 {
		weakest := living[0]
		for _, c := range living[1:] {
			if c.GetHP() < weakest.GetHP() {
				weakest = c
			}
		}
		return weakest
	}

	return living[src.Intn(len(living))]
}
