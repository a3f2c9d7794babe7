package game

import (
	"context"
	"testing"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/world"
)

// scriptedSource cycles scripted Float64 results; Intn and Shuffle are
// deterministic so state-machine rolls can be forced.
type scriptedSource struct {
	floats []float64
	next   int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.next%len(s.floats)]
	s.next++
	return v
}

func (s *scriptedSource) Intn(n int) int                     { return 0 }
func (s *scriptedSource) Shuffle(n int, swap func(i, j int)) {}

func testParty(hp, atk, def int) *entity.Party {
	sets := gamedata.NewSetRegistry(nil)
	return entity.NewParty(entity.NewHero("Asha", 5, item.Stats{HP: hp, ATK: atk, DEF: def, SPD: 10}, sets))
}

func newTestDungeon(src rng.Source, party *entity.Party) *Dungeon {
	gen := world.NewGenerator(
		rng.New(42),
		id.NewSequence("room"),
		gamedata.MustLoadEnemyRegistry(),
		item.NewGenerator(gamedata.MustLoadItemRegistry(), id.NewSequence("item")),
	)
	cfg := Config{RoomCount: 8, Difficulty: 1, GuaranteeBoss: true}
	return NewDungeon(context.Background(), cfg, src, gen, party, gear.NewInventory(20))
}

// enterRoom repoints the current floor at a path room reshaped to the given
// type, so resolvers can be exercised without depending on generation rolls.
func enterRoom(d *Dungeon, roomType world.RoomType) *world.Room {
	floor := d.CurrentFloor()
	room := floor.Rooms()[1]
	room.Type = roomType
	room.Combat = nil
	room.Treasure = nil
	room.Trap = nil
	room.Rest = nil
	room.Shrine = nil
	room.Mystery = nil
	room.Resolved = false
	room.Status = world.StatusCurrent
	floor.CurrentID = room.ID
	return room
}

func TestMoveToRoom(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	floor := d.CurrentFloor()
	start := floor.Current()

	// The start room always has at least one connection
	var dir world.Direction
	found := false
	for _, candidate := range world.AllDirections {
		if _, ok := start.Connections[candidate]; ok {
			dir = candidate
			found = true
			break
		}
	}
	if !found {
		t.Fatal("Start room has no connections")
	}

	res := d.MoveToRoom(dir)
	if !res.Success {
		t.Fatalf("MoveToRoom(%v) failed: %s", dir, res.Message)
	}
	if start.Status != world.StatusCompleted {
		t.Errorf("Source room status = %v, want completed", start.Status)
	}
	if floor.Current().Status != world.StatusCurrent {
		t.Errorf("Target room status = %v, want current", floor.Current().Status)
	}
	if floor.Current() == start {
		t.Error("Current room pointer did not move")
	}
}

func TestMoveToRoomWithoutConnectionFails(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	start := d.CurrentFloor().Current()

	for _, dir := range world.AllDirections {
		if _, ok := start.Connections[dir]; !ok {
			if res := d.MoveToRoom(dir); res.Success {
				t.Errorf("MoveToRoom(%v) succeeded without a connection", dir)
			}
			return
		}
	}
	t.Skip("start room connected in all four directions")
}

func TestResolversRejectWrongRoomType(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	// Party starts in the start room, which matches no resolver
	if res := d.LootTreasure(); res.Success {
		t.Error("LootTreasure succeeded in a start room")
	}
	if res := d.DisarmTrap(); res.Success {
		t.Error("DisarmTrap succeeded in a start room")
	}
	if res := d.UseRest(); res.Success {
		t.Error("UseRest succeeded in a start room")
	}
	if res := d.UseShrine(); res.Success {
		t.Error("UseShrine succeeded in a start room")
	}
	if res := d.ResolveMystery(); res.Success {
		t.Error("ResolveMystery succeeded in a start room")
	}
	if res := d.CompleteCombat(context.Background()); res.Success {
		t.Error("CompleteCombat succeeded in a start room")
	}
	if res := d.ProceedToNextFloor(context.Background()); res.Success {
		t.Error("ProceedToNextFloor succeeded outside the exit room")
	}
}

func TestLootTreasureIsOneTime(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	room := enterRoom(d, world.TypeTreasure)
	room.Treasure = &world.TreasurePayload{
		Gold:  100,
		Items: []*item.Item{item.New("it-1", "Old Blade", item.RarityCommon, 1, item.SlotWeapon, item.Stats{ATK: 5})},
	}

	res := d.LootTreasure()
	if !res.Success {
		t.Fatalf("LootTreasure failed: %s", res.Message)
	}
	if res.Reward == nil || res.Reward.Gold != 100 || len(res.Reward.Items) != 1 {
		t.Errorf("Reward = %+v, want 100 gold and 1 item", res.Reward)
	}
	if d.Inventory.Gold() != 100 {
		t.Errorf("Inventory gold = %d, want 100", d.Inventory.Gold())
	}
	if d.GoldEarned != 100 || d.ItemsFound != 1 {
		t.Errorf("Totals gold=%d items=%d, want 100/1", d.GoldEarned, d.ItemsFound)
	}

	if res := d.LootTreasure(); res.Success {
		t.Error("Second loot of the same room succeeded")
	}
	if d.Inventory.Gold() != 100 {
		t.Errorf("Gold credited twice: %d", d.Inventory.Gold())
	}
}

func TestDisarmTrapSuccess(t *testing.T) {
	d := newTestDungeon(&scriptedSource{floats: []float64{0.5}}, testParty(100, 10, 5))
	room := enterRoom(d, world.TypeTrap)
	room.Trap = &world.TrapPayload{Damage: 12, Description: "Spikes!"}

	res := d.DisarmTrap()
	if !res.Success {
		t.Fatalf("DisarmTrap failed: %s", res.Message)
	}
	if len(res.Damage) != 0 {
		t.Errorf("Disarmed trap dealt damage: %+v", res.Damage)
	}
	if d.Party.Heroes[0].GetHP() != d.Party.Heroes[0].GetMaxHP() {
		t.Error("Hero lost HP on a disarmed trap")
	}
}

func TestDisarmTrapTriggerDamagesEveryHero(t *testing.T) {
	party := testParty(100, 10, 5)
	d := newTestDungeon(&scriptedSource{floats: []float64{0.9}}, party)
	room := enterRoom(d, world.TypeTrap)
	room.Trap = &world.TrapPayload{Damage: 12, Description: "Spikes!"}

	res := d.DisarmTrap()
	if !res.Success {
		t.Fatalf("DisarmTrap failed: %s", res.Message)
	}
	// max(1, 12 - 5 DEF) = 7
	if len(res.Damage) != 1 || res.Damage[0].Damage != 7 {
		t.Fatalf("Damage = %+v, want one entry of 7", res.Damage)
	}
	if hp := party.Heroes[0].GetHP(); hp != 93 {
		t.Errorf("Hero HP = %d, want 93", hp)
	}
}

func TestTrapDamageFloorsAtOne(t *testing.T) {
	party := testParty(100, 10, 500)
	d := newTestDungeon(&scriptedSource{floats: []float64{0.9}}, party)
	room := enterRoom(d, world.TypeTrap)
	room.Trap = &world.TrapPayload{Damage: 3, Description: "A weak dart."}

	res := d.DisarmTrap()
	if res.Damage[0].Damage != 1 {
		t.Errorf("Damage = %d, want floor of 1", res.Damage[0].Damage)
	}
}

func TestUseRestHealsByPercent(t *testing.T) {
	party := testParty(100, 10, 5)
	hero := party.Heroes[0]
	hero.TakeDamage(80)

	d := newTestDungeon(rng.New(1), party)
	room := enterRoom(d, world.TypeRest)
	room.Rest = &world.RestPayload{HealPercent: 50}

	if res := d.UseRest(); !res.Success {
		t.Fatalf("UseRest failed: %s", res.Message)
	}
	if hero.GetHP() != 70 {
		t.Errorf("Hero HP = %d, want 70 (20 + 50%% of 100)", hero.GetHP())
	}

	if res := d.UseRest(); res.Success {
		t.Error("Second rest at the same site succeeded")
	}
}

func TestUseShrineGrantsFloorScopedBuff(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	room := enterRoom(d, world.TypeShrine)
	room.Shrine = &world.ShrinePayload{Buff: world.BuffGold}

	if d.HasActiveBuff(world.BuffGold) {
		t.Fatal("Buff active before visiting the shrine")
	}
	if res := d.UseShrine(); !res.Success {
		t.Fatalf("UseShrine failed: %s", res.Message)
	}
	if !d.HasActiveBuff(world.BuffGold) {
		t.Error("Shrine buff not active on the current floor")
	}

	// Descend: buffs are floor-scoped and must not carry over
	enterRoom(d, world.TypeExit)
	if res := d.ProceedToNextFloor(context.Background()); !res.Success {
		t.Fatalf("ProceedToNextFloor failed: %s", res.Message)
	}
	if d.HasActiveBuff(world.BuffGold) {
		t.Error("Shrine buff carried over to the next floor")
	}
}

func TestResolveMysteryUsesPreRolledOutcome(t *testing.T) {
	party := testParty(100, 10, 5)
	party.Heroes[0].TakeDamage(50)
	d := newTestDungeon(rng.New(1), party)

	room := enterRoom(d, world.TypeMystery)
	room.Mystery = &world.MysteryPayload{
		Outcome:     world.MysteryPositive,
		Description: "A warm light.",
		Gold:        30,
		Heal:        10,
	}

	res := d.ResolveMystery()
	if !res.Success {
		t.Fatalf("ResolveMystery failed: %s", res.Message)
	}
	if d.Inventory.Gold() != 30 {
		t.Errorf("Gold = %d, want 30", d.Inventory.Gold())
	}
	if party.Heroes[0].GetHP() != 60 {
		t.Errorf("Hero HP = %d, want 60", party.Heroes[0].GetHP())
	}

	if res := d.ResolveMystery(); res.Success {
		t.Error("Second resolve of the same mystery succeeded")
	}
}

func TestResolveMysteryNegativeDamagesParty(t *testing.T) {
	party := testParty(100, 10, 5)
	d := newTestDungeon(rng.New(1), party)

	room := enterRoom(d, world.TypeMystery)
	room.Mystery = &world.MysteryPayload{
		Outcome:     world.MysteryNegative,
		Description: "The floor gives way.",
		Damage:      25,
	}

	res := d.ResolveMystery()
	if !res.Success || len(res.Damage) != 1 || res.Damage[0].Damage != 25 {
		t.Fatalf("Result = %+v, want 25 damage to one hero", res)
	}
	if party.Heroes[0].GetHP() != 75 {
		t.Errorf("Hero HP = %d, want 75", party.Heroes[0].GetHP())
	}
}

func TestCompleteCombatVictory(t *testing.T) {
	party := testParty(10000, 500, 50)
	d := newTestDungeon(&scriptedSource{floats: []float64{0.5}}, party)

	def := &gamedata.EnemyDef{
		ID: "rat", Name: "Rat", Glyph: "r",
		Base:        gamedata.StatBlock{HP: 10, ATK: 2, DEF: 1, SPD: 5},
		SpawnWeight: 1,
	}
	room := enterRoom(d, world.TypeCombat)
	room.Combat = &world.CombatPayload{Enemies: []*entity.Enemy{
		entity.NewEnemyFromDef(def, 1, entity.KindNormal),
		entity.NewEnemyFromDef(def, 1, entity.KindNormal),
	}}

	res := d.CompleteCombat(context.Background())
	if !res.Success {
		t.Fatalf("CompleteCombat failed: %s", res.Message)
	}
	if res.Reward == nil || res.Reward.Gold <= 0 || res.Reward.Experience <= 0 {
		t.Errorf("Reward = %+v, want positive gold and experience", res.Reward)
	}
	if d.EnemiesDefeated != 2 {
		t.Errorf("EnemiesDefeated = %d, want 2", d.EnemiesDefeated)
	}
	if d.Inventory.Gold() != res.Reward.Gold {
		t.Errorf("Inventory gold = %d, want %d", d.Inventory.Gold(), res.Reward.Gold)
	}

	if res := d.CompleteCombat(context.Background()); res.Success {
		t.Error("Second combat completion in a cleared room succeeded")
	}
}

func TestCompleteCombatDefeatEndsRun(t *testing.T) {
	party := testParty(1, 0, 0)
	d := newTestDungeon(&scriptedSource{floats: []float64{0.5}}, party)

	def := &gamedata.EnemyDef{
		ID: "ogre", Name: "Ogre", Glyph: "O",
		Base:        gamedata.StatBlock{HP: 10000, ATK: 100, DEF: 50, SPD: 5},
		SpawnWeight: 1,
	}
	room := enterRoom(d, world.TypeCombat)
	room.Combat = &world.CombatPayload{Enemies: []*entity.Enemy{
		entity.NewEnemyFromDef(def, 5, entity.KindBoss),
	}}

	res := d.CompleteCombat(context.Background())
	if res.Success {
		t.Fatal("CompleteCombat reported success on a party wipe")
	}
	if d.Active {
		t.Error("Run still active after defeat")
	}
	if party.AnyAlive() {
		t.Error("Party reported alive after wipe")
	}
}

func TestProceedToNextFloorLazilyGenerates(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	firstFloor := d.CurrentFloor()

	enterRoom(d, world.TypeExit)
	res := d.ProceedToNextFloor(context.Background())
	if !res.Success {
		t.Fatalf("ProceedToNextFloor failed: %s", res.Message)
	}

	if d.FloorNumber() != 2 || d.MaxFloor() != 2 {
		t.Errorf("Floor = %d, max = %d, want 2/2", d.FloorNumber(), d.MaxFloor())
	}
	if !firstFloor.Completed {
		t.Error("Previous floor not marked completed")
	}
	second := d.CurrentFloor()
	if second == firstFloor {
		t.Fatal("Did not move to a new floor")
	}
	if second.Current() == nil || second.Current().Type != world.TypeStart {
		t.Error("New floor does not begin in its start room")
	}
	if !second.FullyConnected() {
		t.Error("Lazily generated floor is not fully connected")
	}
}

func TestBlessingsFollowFloorBuffs(t *testing.T) {
	party := testParty(100, 40, 20)
	d := newTestDungeon(rng.New(1), party)
	hero := party.Heroes[0]

	d.applyBlessings()
	if got := hero.GetCombatStats().ATK; got != 40 {
		t.Errorf("ATK without buffs = %d, want 40", got)
	}

	d.CurrentFloor().AddBuff(world.BuffDamage)
	d.CurrentFloor().AddBuff(world.BuffStats)
	d.applyBlessings()
	stats := hero.GetCombatStats()
	if stats.ATK != 50 {
		t.Errorf("Blessed ATK = %d, want 50 (+25%%)", stats.ATK)
	}
	if stats.DEF != 23 {
		t.Errorf("Blessed DEF = %d, want 23 (+15%%)", stats.DEF)
	}

	d.clearBlessings()
	if got := hero.GetCombatStats().ATK; got != 40 {
		t.Errorf("ATK after clearing = %d, want 40", got)
	}
	if effects := hero.GetStatusEffects(); len(effects) != 0 {
		t.Errorf("Lingering effects after clearing: %+v", effects)
	}
}

func TestGoldBuffScalesTreasure(t *testing.T) {
	d := newTestDungeon(rng.New(1), testParty(100, 10, 5))
	d.CurrentFloor().AddBuff(world.BuffGold)

	room := enterRoom(d, world.TypeTreasure)
	room.Treasure = &world.TreasurePayload{Gold: 100}

	res := d.LootTreasure()
	if res.Reward.Gold != 150 {
		t.Errorf("Buffed gold = %d, want 150", res.Reward.Gold)
	}
}
