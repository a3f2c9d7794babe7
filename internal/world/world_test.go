package world

import (
	"context"
	"testing"

	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/rng"
)

func newTestGenerator(seed int64) *Generator {
	enemies := gamedata.MustLoadEnemyRegistry()
	items := item.NewGenerator(gamedata.MustLoadItemRegistry(), id.NewSequence("item"))
	return NewGenerator(rng.New(seed), id.NewSequence("room"), enemies, items)
}

func TestGenerateFloorConnectivity(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := newTestGenerator(seed)
		floor := g.GenerateFloor(context.Background(), 1, 12, 1, seed%2 == 0, 1)

		if !floor.FullyConnected() {
			t.Fatalf("Seed %d produced a floor with unreachable rooms", seed)
		}
	}
}

func TestGenerateFloorRoomCensus(t *testing.T) {
	g := newTestGenerator(7)
	floor := g.GenerateFloor(context.Background(), 1, 8, 1, true, 1)

	counts := map[RoomType]int{}
	for _, room := range floor.Rooms() {
		counts[room.Type]++
	}

	if counts[TypeStart] != 1 {
		t.Errorf("Start rooms = %d, want 1", counts[TypeStart])
	}
	if counts[TypeExit] != 1 {
		t.Errorf("Exit rooms = %d, want 1", counts[TypeExit])
	}
	if counts[TypeBoss] != 1 {
		t.Errorf("Boss rooms = %d, want 1", counts[TypeBoss])
	}
	if floor.RoomCount() != 8 {
		t.Errorf("Total rooms = %d, want 8", floor.RoomCount())
	}
	// 8 rooms minus start, boss and exit leaves 5 intermediate rooms
	intermediate := floor.RoomCount() - counts[TypeStart] - counts[TypeBoss] - counts[TypeExit]
	if intermediate != 5 {
		t.Errorf("Intermediate rooms = %d, want 5", intermediate)
	}

	start := floor.Room(floor.StartID)
	if len(start.Connections) == 0 {
		t.Error("Start room has no connections")
	}
	if start.Status != StatusCurrent {
		t.Errorf("Start status = %v, want current", start.Status)
	}
}

func TestGenerateFloorDistinctKeyRooms(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		g := newTestGenerator(seed)
		floor := g.GenerateFloor(context.Background(), 2, 10, 1.5, true, 3)

		start := floor.Room(floor.StartID)
		boss := floor.Room(floor.BossID)
		exit := floor.Room(floor.ExitID)
		if start == nil || boss == nil || exit == nil {
			t.Fatalf("Seed %d: missing key room (start=%v boss=%v exit=%v)", seed, start, boss, exit)
		}
		if start.Pos == boss.Pos || start.Pos == exit.Pos || boss.Pos == exit.Pos {
			t.Fatalf("Seed %d: key rooms share a grid cell", seed)
		}
	}
}

func TestGenerateFloorReproducibility(t *testing.T) {
	// Two generators with the same seed must produce identical floors
	f1 := newTestGenerator(12345).GenerateFloor(context.Background(), 1, 10, 1, true, 1)
	f2 := newTestGenerator(12345).GenerateFloor(context.Background(), 1, 10, 1, true, 1)

	r1, r2 := f1.Rooms(), f2.Rooms()
	if len(r1) != len(r2) {
		t.Fatalf("Room count mismatch: %d != %d", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].ID != r2[i].ID || r1[i].Type != r2[i].Type || r1[i].Pos != r2[i].Pos {
			t.Errorf("Room %d mismatch: (%s,%v,%v) != (%s,%v,%v)",
				i, r1[i].ID, r1[i].Type, r1[i].Pos,
				r2[i].ID, r2[i].Type, r2[i].Pos)
		}
		if len(r1[i].Connections) != len(r2[i].Connections) {
			t.Errorf("Room %d connection count mismatch", i)
		}
	}
}

func TestGenerateFloorDifferentSeeds(t *testing.T) {
	f1 := newTestGenerator(12345).GenerateFloor(context.Background(), 1, 12, 1, false, 1)
	f2 := newTestGenerator(54321).GenerateFloor(context.Background(), 1, 12, 1, false, 1)

	identical := len(f1.Rooms()) == len(f2.Rooms())
	if identical {
		for i, room := range f1.Rooms() {
			other := f2.Rooms()[i]
			if room.Pos != other.Pos || room.Type != other.Type {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("Floors with different seeds should not be identical")
	}
}

func TestConnectionsAreSymmetric(t *testing.T) {
	g := newTestGenerator(9)
	floor := g.GenerateFloor(context.Background(), 1, 14, 1, true, 1)

	for _, room := range floor.Rooms() {
		for dir, otherID := range room.Connections {
			other := floor.Room(otherID)
			if other == nil {
				t.Fatalf("Room %s connects %v to unknown room %s", room.ID, dir, otherID)
			}
			if back, ok := other.Connections[dir.Opposite()]; !ok || back != room.ID {
				t.Errorf("Room %s -> %s (%v) has no reciprocal connection", room.ID, otherID, dir)
			}
			if other.Pos != room.Pos.Step(dir) {
				t.Errorf("Connection %v from %s does not match grid positions", dir, room.ID)
			}
		}
	}
}

func TestPopulationMatchesRoomType(t *testing.T) {
	g := newTestGenerator(21)
	floor := g.GenerateFloor(context.Background(), 3, 16, 1, true, 5)

	for _, room := range floor.Rooms() {
		switch room.Type {
		case TypeCombat, TypeElite, TypeMiniboss, TypeBoss:
			if room.Combat == nil || len(room.Combat.Enemies) == 0 {
				t.Errorf("%v room %s has no enemies", room.Type, room.ID)
			}
		case TypeTreasure:
			if room.Treasure == nil || room.Treasure.Gold <= 0 || len(room.Treasure.Items) == 0 {
				t.Errorf("Treasure room %s has empty payload", room.ID)
			}
		case TypeTrap:
			if room.Trap == nil || room.Trap.Damage < 1 {
				t.Errorf("Trap room %s has no damage", room.ID)
			}
		case TypeRest:
			if room.Rest == nil || room.Rest.HealPercent < 30 || room.Rest.HealPercent > 50 {
				t.Errorf("Rest room %s heal out of range: %+v", room.ID, room.Rest)
			}
		case TypeShrine:
			if room.Shrine == nil {
				t.Errorf("Shrine room %s has no buff", room.ID)
			}
		case TypeMystery:
			if room.Mystery == nil || room.Mystery.Description == "" {
				t.Errorf("Mystery room %s has no outcome", room.ID)
			}
		case TypeStart, TypeExit:
			if room.Combat != nil || room.Treasure != nil || room.Trap != nil {
				t.Errorf("%v room %s should carry no payload", room.Type, room.ID)
			}
		}
	}
}

func TestFloorBuffTracking(t *testing.T) {
	floor := NewFloor(1, 1)

	if floor.HasActiveBuff(BuffDamage) {
		t.Error("Fresh floor reports an active buff")
	}
	floor.AddBuff(BuffDamage)
	floor.AddBuff(BuffGold)
	if !floor.HasActiveBuff(BuffDamage) || !floor.HasActiveBuff(BuffGold) {
		t.Error("Added buffs not reported active")
	}
	if floor.HasActiveBuff(BuffStats) {
		t.Error("Unearned buff reported active")
	}
}
