package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delvecore/internal/combat"
	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/telemetry"
)

// Outcome is how an encounter ended.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomeDefeat
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// maxEncounterRounds bounds pathological stalemates; with the minimum-damage
// floor of 1 a real fight always ends well before this.
const maxEncounterRounds = 200

// Encounter plays out one combat between the party and a room's enemies.
// Heroes and enemies alternate sides each round; targets come from the
// combat AI and every combatant's status effects tick once per round.
type Encounter struct {
	Rounds int
	Log    []string

	src      rng.Source
	resolver *combat.AttackResolver
	party    *entity.Party
	enemies  []*entity.Enemy
}

// NewEncounter creates an encounter over the given sides.
func NewEncounter(src rng.Source, party *entity.Party, enemies []*entity.Enemy) *Encounter {
	return &Encounter{
		src:      src,
		resolver: combat.NewAttackResolver(src),
		party:    party,
		enemies:  enemies,
	}
}

// Run resolves the encounter to completion and returns the outcome.
func (e *Encounter) Run(ctx context.Context) Outcome {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "encounter.run")
	defer span.End()

	span.SetAttributes(
		attribute.Int("encounter.party_size", len(e.party.Alive())),
		attribute.Int("encounter.enemy_count", len(e.enemies)),
	)

	outcome := OutcomeVictory
	for e.Rounds = 0; e.Rounds < maxEncounterRounds; {
		e.Rounds++

		if !e.heroPhase() {
			break
		}
		if !e.enemyPhase() {
			outcome = OutcomeDefeat
			break
		}
		e.tickAll()

		if len(e.aliveEnemies()) == 0 {
			break
		}
		if !e.party.AnyAlive() {
			outcome = OutcomeDefeat
			break
		}
	}

	span.SetAttributes(
		attribute.String("encounter.outcome", outcome.String()),
		attribute.Int("encounter.rounds", e.Rounds),
	)
	return outcome
}

// heroPhase runs every living hero's attack. Returns false when no enemies
// remain afterwards.
func (e *Encounter) heroPhase() bool {
	for _, h := range e.party.Heroes {
		if !h.IsAlive() || combat.IsStunned(h) {
			continue
		}
		target := combat.SelectTarget(e.src, e.enemyCombatants())
		if target == nil {
			return false
		}
		result := e.resolver.Resolve(h, target)
		e.Log = append(e.Log, result.Message)
	}
	return len(e.aliveEnemies()) > 0
}

// enemyPhase runs every living enemy's attack. Returns false when the party
// is wiped afterwards.
func (e *Encounter) enemyPhase() bool {
	for _, en := range e.enemies {
		if !en.IsAlive() || combat.IsStunned(en) {
			continue
		}
		target := combat.SelectTarget(e.src, e.party.Combatants())
		if target == nil {
			return false
		}
		result := e.resolver.Resolve(en, target)
		e.Log = append(e.Log, result.Message)
	}
	return e.party.AnyAlive()
}

func (e *Encounter) tickAll() {
	for _, h := range e.party.Heroes {
		h.TickStatusEffects()
	}
	for _, en := range e.enemies {
		en.TickStatusEffects()
	}
}

func (e *Encounter) aliveEnemies() []*entity.Enemy {
	var alive []*entity.Enemy
	for _, en := range e.enemies {
		if en.IsAlive() {
			alive = append(alive, en)
		}
	}
	return alive
}

func (e *Encounter) enemyCombatants() []combat.Combatant {
	out := make([]combat.Combatant, 0, len(e.enemies))
	for _, en := range e.enemies {
		out = append(out, en)
	}
	return out
}
