package entity

import (
	"testing"

	"github.com/samdwyer/delvecore/internal/combat"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/item"
)

func goblinDef() *gamedata.EnemyDef {
	return &gamedata.EnemyDef{
		ID:    "goblin",
		Name:  "Goblin",
		Glyph: "g",
		Base: gamedata.StatBlock{
			HP: 50, ATK: 8, DEF: 4, SPD: 10, CRIT: 5,
		},
		PerLevel: gamedata.StatBlock{
			HP: 12, ATK: 3, DEF: 2, SPD: 1,
		},
		Element:     "poison",
		Resistances: map[string]int{"poison": 50},
		Weaknesses:  []string{"fire"},
		SpawnWeight: 10,
	}
}

func TestNewEnemyLevelOneUsesBaseStats(t *testing.T) {
	e := NewEnemyFromDef(goblinDef(), 1, KindNormal)

	if e.GetMaxHP() != 50 {
		t.Errorf("Level-1 goblin max HP = %d, want 50", e.GetMaxHP())
	}
	if e.GetHP() != e.GetMaxHP() {
		t.Errorf("Fresh enemy HP = %d, want full %d", e.GetHP(), e.GetMaxHP())
	}

	stats := e.GetCombatStats()
	if stats.ATK != 8 || stats.DEF != 4 || stats.SPD != 10 || stats.CRIT != 5 {
		t.Errorf("Level-1 stats = %+v, want base block", stats)
	}
	// ACC = 90 + 0.4*10, EVA = 0.25*10
	if stats.ACC != 94 {
		t.Errorf("ACC = %d, want 94", stats.ACC)
	}
	if stats.EVA != 2 {
		t.Errorf("EVA = %d, want 2", stats.EVA)
	}
}

func TestNewEnemyLevelScaling(t *testing.T) {
	e := NewEnemyFromDef(goblinDef(), 3, KindNormal)

	// (50 + 12*2) * 1.3 = 96.2, floored
	if e.GetMaxHP() != 96 {
		t.Errorf("Level-3 goblin max HP = %d, want 96", e.GetMaxHP())
	}
	// (8 + 3*2) * 1.3 = 18.2
	if stats := e.GetCombatStats(); stats.ATK != 18 {
		t.Errorf("Level-3 goblin ATK = %d, want 18", stats.ATK)
	}
}

func TestNewEnemyKindMultipliers(t *testing.T) {
	normal := NewEnemyFromDef(goblinDef(), 1, KindNormal)
	elite := NewEnemyFromDef(goblinDef(), 1, KindElite)
	boss := NewEnemyFromDef(goblinDef(), 1, KindBoss)

	if elite.GetMaxHP() != 70 {
		t.Errorf("Elite max HP = %d, want 70 (1.4x)", elite.GetMaxHP())
	}
	if boss.GetMaxHP() != 80 {
		t.Errorf("Boss max HP = %d, want 80 (1.6x)", boss.GetMaxHP())
	}

	nStats := normal.GetCombatStats()
	bStats := boss.GetCombatStats()
	if bStats.ACC != 90+int(0.4*float64(bStats.SPD))+20 {
		t.Errorf("Boss ACC = %d missing flat bonus", bStats.ACC)
	}
	if bStats.EVA <= nStats.EVA {
		t.Errorf("Boss EVA %d not above normal EVA %d", bStats.EVA, nStats.EVA)
	}
}

func TestNewEnemyElementalProfile(t *testing.T) {
	e := NewEnemyFromDef(goblinDef(), 1, KindNormal)

	if e.GetAttackElement() != combat.ElementPoison {
		t.Errorf("Attack element = %v, want poison", e.GetAttackElement())
	}
	if e.GetResistance(combat.ElementPoison) != 50 {
		t.Errorf("Poison resistance = %d, want 50", e.GetResistance(combat.ElementPoison))
	}
	if !e.IsWeakTo(combat.ElementFire) {
		t.Error("Goblin should be weak to fire")
	}
	if e.IsWeakTo(combat.ElementIce) {
		t.Error("Goblin should not be weak to ice")
	}
}

func TestStatusModifiersScaleStats(t *testing.T) {
	e := NewEnemyFromDef(goblinDef(), 1, KindNormal)

	e.AddStatusEffect(combat.StatusEffect{
		Name: "rage", RemainingTurns: 2, Stat: combat.StatATK, Percent: 50,
	})
	if stats := e.GetCombatStats(); stats.ATK != 12 {
		t.Errorf("ATK under +50%% = %d, want 12", stats.ATK)
	}

	e.AddStatusEffect(combat.StatusEffect{
		Name: "sunder", RemainingTurns: 2, Stat: combat.StatDEF, Percent: -50,
	})
	if stats := e.GetCombatStats(); stats.DEF != 2 {
		t.Errorf("DEF under -50%% = %d, want 2", stats.DEF)
	}

	// Effects expire on tick and stats revert
	e.TickStatusEffects()
	e.TickStatusEffects()
	if stats := e.GetCombatStats(); stats.ATK != 8 || stats.DEF != 4 {
		t.Errorf("Stats after expiry = %+v, want base block", stats)
	}
}

func TestStatusEffectRefreshNotStack(t *testing.T) {
	e := NewEnemyFromDef(goblinDef(), 1, KindNormal)

	e.AddStatusEffect(combat.StatusEffect{
		Name: "rage", RemainingTurns: 1, Stat: combat.StatATK, Percent: 50,
	})
	e.AddStatusEffect(combat.StatusEffect{
		Name: "rage", RemainingTurns: 4, Stat: combat.StatATK, Percent: 50,
	})

	if len(e.GetStatusEffects()) != 1 {
		t.Fatalf("Effect count = %d, want 1 (refresh, not stack)", len(e.GetStatusEffects()))
	}
	if e.GetStatusEffects()[0].RemainingTurns != 4 {
		t.Errorf("RemainingTurns = %d, want refreshed 4", e.GetStatusEffects()[0].RemainingTurns)
	}
	if stats := e.GetCombatStats(); stats.ATK != 12 {
		t.Errorf("ATK = %d, want 12 (single application)", stats.ATK)
	}
}

func TestHeroStatsIncludeEquipment(t *testing.T) {
	sets := gamedata.NewSetRegistry(nil)
	h := NewHero("Asha", 5, item.Stats{HP: 100, ATK: 10, SPD: 20}, sets)

	if h.GetMaxHP() != 100 || h.GetHP() != 100 {
		t.Fatalf("Fresh hero HP = %d/%d, want 100/100", h.GetHP(), h.GetMaxHP())
	}

	inv := gear.NewInventory(10)
	helm := item.New("helm-1", "Iron Helm", item.RarityCommon, 5, item.SlotHelmet, item.Stats{HP: 30, DEF: 5})
	inv.Add(helm)
	if res := h.Equipment().Equip(gear.EquipHelmet, inv, helm.ID); !res.Success {
		t.Fatalf("Equip failed: %s", res.Message)
	}
	h.Refresh()

	if h.GetMaxHP() != 130 {
		t.Errorf("Max HP with helm = %d, want 130", h.GetMaxHP())
	}

	stats := h.GetCombatStats()
	if stats.DEF != 5 {
		t.Errorf("DEF = %d, want 5 from helm", stats.DEF)
	}
	if stats.ACC != 98 {
		t.Errorf("ACC = %d, want 98 (90 + 0.4*20)", stats.ACC)
	}
	if stats.EVA != 5 {
		t.Errorf("EVA = %d, want 5 (0.25*20)", stats.EVA)
	}
}

func TestHeroRefreshClampsHP(t *testing.T) {
	sets := gamedata.NewSetRegistry(nil)
	h := NewHero("Asha", 1, item.Stats{HP: 100}, sets)

	inv := gear.NewInventory(10)
	plate := item.New("plate-1", "Bulwark Plate", item.RarityRare, 1, item.SlotChest, item.Stats{HP: 50})
	inv.Add(plate)
	h.Equipment().Equip(gear.EquipChest, inv, plate.ID)
	h.Refresh()
	h.Heal(50)

	if h.GetHP() != 150 {
		t.Fatalf("HP after heal = %d, want 150", h.GetHP())
	}

	// Removing the chest piece shrinks max HP and clamps current HP with it
	h.Equipment().Unequip(gear.EquipChest, inv)
	h.Refresh()
	if h.GetMaxHP() != 100 {
		t.Errorf("Max HP after unequip = %d, want 100", h.GetMaxHP())
	}
	if h.GetHP() != 100 {
		t.Errorf("HP after unequip = %d, want clamped to 100", h.GetHP())
	}
}

func TestHeroLevelNeverDecreases(t *testing.T) {
	sets := gamedata.NewSetRegistry(nil)
	h := NewHero("Asha", 5, item.Stats{HP: 100}, sets)

	h.SetLevel(3)
	if h.GetLevel() != 5 {
		t.Errorf("Level = %d after lowering attempt, want 5", h.GetLevel())
	}
	h.SetLevel(7)
	if h.GetLevel() != 7 {
		t.Errorf("Level = %d after raise, want 7", h.GetLevel())
	}
}

func TestPartyAliveTracking(t *testing.T) {
	sets := gamedata.NewSetRegistry(nil)
	a := NewHero("Asha", 3, item.Stats{HP: 100}, sets)
	b := NewHero("Brith", 5, item.Stats{HP: 80}, sets)
	p := NewParty(a, b)

	if len(p.Alive()) != 2 || !p.AnyAlive() {
		t.Fatal("Fresh party should be fully alive")
	}
	if p.MaxLevel() != 5 {
		t.Errorf("MaxLevel = %d, want 5", p.MaxLevel())
	}

	a.TakeDamage(100)
	if len(p.Alive()) != 1 {
		t.Errorf("Alive count = %d after one death, want 1", len(p.Alive()))
	}
	if len(p.Combatants()) != 1 {
		t.Errorf("Combatants = %d, want 1 living", len(p.Combatants()))
	}

	b.TakeDamage(80)
	if p.AnyAlive() {
		t.Error("Party with no living heroes reported alive")
	}
}
