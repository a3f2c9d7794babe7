package gear

import (
	"fmt"

	"github.com/samdwyer/delvecore/internal/item"
)

// Role selects the stat weighting profile the advisor scores with.
type Role int

const (
	RoleBalanced Role = iota
	RoleTank
	RoleDPS
	RoleHealer
	RoleSupport
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleBalanced:
		return "balanced"
	case RoleTank:
		return "tank"
	case RoleDPS:
		return "dps"
	case RoleHealer:
		return "healer"
	case RoleSupport:
		return "support"
	default:
		return "unknown"
	}
}

// ParseRole parses a role name. The empty string means balanced.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "balanced":
		return RoleBalanced, nil
	case "tank":
		return RoleTank, nil
	case "dps":
		return RoleDPS, nil
	case "healer":
		return RoleHealer, nil
	case "support":
		return RoleSupport, nil
	default:
		return RoleBalanced, fmt.Errorf("unknown role %q", s)
	}
}

// Weights are the per-stat multipliers of the power score.
type Weights struct {
	HP   float64
	ATK  float64
	DEF  float64
	SPD  float64
	CRIT float64
}

var roleWeights = map[Role]Weights{
	RoleBalanced: {HP: 1, ATK: 2, DEF: 1.5, SPD: 1, CRIT: 10},
	RoleTank:     {HP: 2, ATK: 1, DEF: 3, SPD: 0.5, CRIT: 2},
	RoleDPS:      {HP: 0.5, ATK: 3, DEF: 0.5, SPD: 1.5, CRIT: 15},
	RoleHealer:   {HP: 2, ATK: 1, DEF: 1.5, SPD: 1, CRIT: 4},
	RoleSupport:  {HP: 1.5, ATK: 1, DEF: 1.5, SPD: 2, CRIT: 4},
}

// PowerScore is the weighted scalar used to rank items for equip decisions.
// It is computed over effective (enchant-scaled) stats and is distinct from
// the item score valuation metric.
func PowerScore(it *item.Item, w Weights) float64 {
	stats := it.EffectiveStats()
	return float64(stats.HP)*w.HP +
		float64(stats.ATK)*w.ATK +
		float64(stats.DEF)*w.DEF +
		float64(stats.SPD)*w.SPD +
		float64(stats.CRIT)*w.CRIT
}

// Advisor recommends and applies best-gear assignments.
type Advisor struct {
	weights Weights
}

// NewAdvisor creates an advisor using the role's weight profile.
func NewAdvisor(role Role) *Advisor {
	w, ok := roleWeights[role]
	if !ok {
		w = roleWeights[RoleBalanced]
	}
	return &Advisor{weights: w}
}

// better reports whether a beats b under the selection order: power score
// descending, then rarity, then level. Ties in all three keep b.
func (a *Advisor) better(x, y *item.Item) bool {
	px, py := PowerScore(x, a.weights), PowerScore(y, a.weights)
	if px != py {
		return px > py
	}
	if x.Rarity != y.Rarity {
		return x.Rarity > y.Rarity
	}
	return x.Level > y.Level
}

// BestForSlot returns the winning item for the slot among the currently
// equipped item and every usable inventory candidate. The equipped item wins
// all ties, which keeps repeated runs from churning. Returns nil when the
// slot is empty and no candidate qualifies.
func (a *Advisor) BestForSlot(slot EquipSlot, eq *Equipment, inv *Inventory, heroLevel int) *item.Item {
	best := eq.Get(slot)
	for _, candidate := range inv.FilterSlot(slot.ItemSlot()) {
		if candidate.Level > heroLevel {
			continue
		}
		if best == nil || a.better(candidate, best) {
			best = candidate
		}
	}
	return best
}

// Change is one per-slot outcome of an auto-equip pass.
type Change struct {
	Slot    EquipSlot
	Item    *item.Item
	Swapped bool
	Message string
}

// AutoEquip assigns the best available item to all eight slots. The two
// accessory slots run as independent passes over the shared accessory pool.
// Slots whose winner is already equipped are left untouched; inventory items
// above the hero's level are reported as skipped rather than silently
// ignored.
func (a *Advisor) AutoEquip(eq *Equipment, inv *Inventory, heroLevel int) []Change {
	var changes []Change

	for _, slot := range AllEquipSlots {
		for _, candidate := range inv.FilterSlot(slot.ItemSlot()) {
			if candidate.Level > heroLevel {
				changes = append(changes, Change{
					Slot:    slot,
					Item:    candidate,
					Message: fmt.Sprintf("Skipped %s: hero level too low", candidate.Name),
				})
			}
		}

		winner := a.BestForSlot(slot, eq, inv, heroLevel)
		if winner == nil {
			continue
		}
		if current := eq.Get(slot); current != nil && current.ID == winner.ID {
			continue // already wearing the winner, no swap
		}

		result := eq.Equip(slot, inv, winner.ID)
		if !result.Success {
			changes = append(changes, Change{Slot: slot, Item: winner, Message: result.Message})
			continue
		}
		changes = append(changes, Change{
			Slot:    slot,
			Item:    winner,
			Swapped: true,
			Message: result.Message,
		})
	}

	return changes
}
