package gamedata

import (
	"errors"

	"github.com/samdwyer/delvecore/internal/rng"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning
// utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded
// enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Definitions with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(src rng.Source) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := src.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item base definitions and provides drop-roll
// utilities.
type ItemRegistry struct {
	items       []ItemDef
	totalWeight int
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	totalWeight := 0
	for _, it := range items {
		totalWeight += it.SpawnWeight
	}
	return &ItemRegistry{
		items:       items,
		totalWeight: totalWeight,
	}
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// RollRandom selects a random item base using weighted probability.
func (r *ItemRegistry) RollRandom(src rng.Source) *ItemDef {
	if r.totalWeight <= 0 || len(r.items) == 0 {
		return nil
	}

	roll := src.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.items {
		cumulative += r.items[i].SpawnWeight
		if roll < cumulative {
			return &r.items[i]
		}
	}
	return &r.items[0]
}

// RollForSlot selects a random item base restricted to the given slot name,
// or nil when no definition matches.
func (r *ItemRegistry) RollForSlot(src rng.Source, slot string) *ItemDef {
	candidates := make([]*ItemDef, 0, len(r.items))
	totalWeight := 0
	for i := range r.items {
		if r.items[i].Slot == slot {
			candidates = append(candidates, &r.items[i])
			totalWeight += r.items[i].SpawnWeight
		}
	}
	if len(candidates) == 0 || totalWeight <= 0 {
		return nil
	}

	roll := src.Intn(totalWeight)
	cumulative := 0
	for _, def := range candidates {
		cumulative += def.SpawnWeight
		if roll < cumulative {
			return def
		}
	}
	return candidates[0]
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	for i := range r.items {
		if r.items[i].ID == id {
			return &r.items[i]
		}
	}
	return nil
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.items
}

// Count returns the number of item bases in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.items)
}

// =============================================================================
// SetRegistry
// =============================================================================

// SetRegistry holds loaded equipment set definitions.
type SetRegistry struct {
	sets map[string]*SetDef
	all  []SetDef
}

// NewSetRegistry creates a registry from loaded set definitions.
func NewSetRegistry(sets []SetDef) *SetRegistry {
	registry := &SetRegistry{
		sets: make(map[string]*SetDef),
		all:  sets,
	}
	for i := range sets {
		registry.sets[sets[i].ID] = &sets[i]
	}
	return registry
}

// LoadSetRegistry loads and creates a registry from the embedded sets.json.
func LoadSetRegistry() (*SetRegistry, error) {
	sets, err := LoadSets()
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, errors.New("no sets loaded from sets.json")
	}
	return NewSetRegistry(sets), nil
}

// MustLoadSetRegistry loads a registry, panicking on error.
func MustLoadSetRegistry() *SetRegistry {
	registry, err := LoadSetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the set definition with the given ID, or nil if not found.
func (r *SetRegistry) GetByID(id string) *SetDef {
	return r.sets[id]
}

// All returns all set definitions.
func (r *SetRegistry) All() []SetDef {
	return r.all
}

// Count returns the number of sets in the registry.
func (r *SetRegistry) Count() int {
	return len(r.all)
}
