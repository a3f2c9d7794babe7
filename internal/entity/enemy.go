package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delvecore/internal/combat"
	"github.com/samdwyer/delvecore/internal/gamedata"
)

// Kind classifies an enemy's tier, which scales its stats and accuracy.
type Kind int

const (
	KindNormal Kind = iota
	KindElite
	KindMiniboss
	KindBoss
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindElite:
		return "elite"
	case KindMiniboss:
		return "miniboss"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// statMultiplier returns the kind's aggregate stat multiplier.
func (k Kind) statMultiplier() float64 {
	switch k {
	case KindElite:
		return 1.4
	case KindMiniboss:
		return 1.5
	case KindBoss:
		return 1.6
	default:
		return 1.0
	}
}

// accBonus and evaBonus are flat accuracy/evasion additions per kind.
func (k Kind) accBonus() int {
	switch k {
	case KindElite, KindMiniboss:
		return 10
	case KindBoss:
		return 20
	default:
		return 0
	}
}

func (k Kind) evaBonus() int {
	switch k {
	case KindElite, KindMiniboss:
		return 8
	case KindBoss:
		return 15
	default:
		return 0
	}
}

// Enemy is a hostile combatant built from a data-driven template.
type Enemy struct {
	core

	Def   *gamedata.EnemyDef
	Kind  Kind
	Glyph rune

	stats combat.Stats // scaled base stats, before status modifiers
}

// NewEnemyFromDef creates an enemy of the given level and kind from a
// template. Stats scale as (base + perLevel*(level-1)), then by the kind
// multiplier, then by the aggregate level factor 1 + 0.15*(level-1), so
// early levels stay weak and later levels escalate superlinearly.
func NewEnemyFromDef(def *gamedata.EnemyDef, level int, kind Kind) *Enemy {
	e := &Enemy{
		core:  newCore(def.Name, level),
		Def:   def,
		Kind:  kind,
		Glyph: def.GlyphRune(),
	}

	factor := kind.statMultiplier() * (1 + 0.15*float64(e.level-1))
	scale := func(base, perLevel int) int {
		return int(math.Floor(float64(base+perLevel*(e.level-1)) * factor))
	}

	e.maxHP = scale(def.Base.HP, def.PerLevel.HP)
	e.hp = e.maxHP

	spd := scale(def.Base.SPD, def.PerLevel.SPD)
	e.stats = combat.Stats{
		ATK:  scale(def.Base.ATK, def.PerLevel.ATK),
		DEF:  scale(def.Base.DEF, def.PerLevel.DEF),
		SPD:  spd,
		CRIT: scale(def.Base.CRIT, def.PerLevel.CRIT),
		ACC:  90 + int(0.4*float64(spd)) + kind.accBonus(),
		EVA:  int(0.25*float64(spd)) + kind.evaBonus(),
	}

	element, err := combat.ParseElement(def.Element)
	if err == nil {
		e.element = element
	}
	for name, pct := range def.Resistances {
		if el, err := combat.ParseElement(name); err == nil && el != combat.ElementNone {
			e.resistances[el] = pct
		}
	}
	for _, name := range def.Weaknesses {
		if el, err := combat.ParseElement(name); err == nil && el != combat.ElementNone {
			e.weaknesses[el] = true
		}
	}

	return e
}

// GetCombatStats returns the enemy's stats after status-effect modifiers.
func (e *Enemy) GetCombatStats() combat.Stats {
	return e.applyModifiers(e.stats)
}

// Color returns the tcell color for rendering, falling back per template.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorWhite
}

// ID returns the enemy's template identifier.
func (e *Enemy) ID() string {
	if e.Def != nil {
		return e.Def.ID
	}
	return e.name
}

// Ensure Enemy implements combat.Combatant
var _ combat.Combatant = (*Enemy)(nil)
