package entity

import "github.com/samdwyer/delvecore/internal/combat"

// Party is the player's band of heroes moving through the dungeon together.
type Party struct {
	Heroes []*Hero
}

// NewParty creates a party from the given heroes.
func NewParty(heroes ...*Hero) *Party {
	return &Party{Heroes: heroes}
}

// Alive returns the heroes still standing.
func (p *Party) Alive() []*Hero {
	var alive []*Hero
	for _, h := range p.Heroes {
		if h.IsAlive() {
			alive = append(alive, h)
		}
	}
	return alive
}

// AnyAlive reports whether at least one hero is still standing.
func (p *Party) AnyAlive() bool {
	for _, h := range p.Heroes {
		if h.IsAlive() {
			return true
		}
	}
	return false
}

// Combatants returns the living heroes as combat participants.
func (p *Party) Combatants() []combat.Combatant {
	var out []combat.Combatant
	for _, h := range p.Heroes {
		if h.IsAlive() {
			out = append(out, h)
		}
	}
	return out
}

// MaxLevel returns the highest hero level, or 1 for an empty party.
func (p *Party) MaxLevel() int {
	level := 1
	for _, h := range p.Heroes {
		if h.GetLevel() > level {
			level = h.GetLevel()
		}
	}
	return level
}
