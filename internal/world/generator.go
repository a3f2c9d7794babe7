package world

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/telemetry"
)

// roomTypeWeights drive the weighted roll for path rooms. Treasure, rest
// and shrine get extra weight in the middle 40% of the path.
var roomTypeWeights = []struct {
	roomType RoomType
	weight   int
}{
	{TypeCombat, 38},
	{TypeElite, 10},
	{TypeMiniboss, 4},
	{TypeTreasure, 14},
	{TypeTrap, 10},
	{TypeRest, 8},
	{TypeShrine, 7},
	{TypeMystery, 9},
}

var trapDescriptions = []string{
	"A pressure plate clicks underfoot.",
	"Rusted spikes spring from the floor.",
	"A tripwire releases a volley of darts.",
	"The ceiling groans and sheds loose stone.",
}

var mysteryPositive = []string{
	"A forgotten shrine hums with warm light.",
	"A dying adventurer presses their purse into your hands.",
}

var mysteryNegative = []string{
	"The floor gives way into a spiked pit.",
	"Cursed fog seeps from the walls.",
}

var mysteryNeutral = []string{
	"Scratched tallies cover the wall. Someone counted the days here.",
	"An empty chest, long since looted.",
}

// Generator builds floors. The random source and ID generator are injected
// so generation stays reproducible under a fixed seed.
type Generator struct {
	src     rng.Source
	ids     id.Generator
	enemies *gamedata.EnemyRegistry
	items   *item.Generator
}

// NewGenerator creates a floor generator.
func NewGenerator(src rng.Source, ids id.Generator, enemies *gamedata.EnemyRegistry, items *item.Generator) *Generator {
	return &Generator{
		src:     src,
		ids:     ids,
		enemies: enemies,
		items:   items,
	}
}

// GenerateFloor builds one floor: a start room at the grid center, a random
// walk of path rooms, an optional boss room at the path's end, and an exit.
// Sequential path rooms are connected first, then a grid-adjacency pass adds
// a bidirectional connection between every orthogonally adjacent pair so
// navigation is not restricted to the generation path.
//
// Generation always succeeds structurally; the returned floor is fully
// connected and the start, boss and exit rooms occupy distinct cells.
func (g *Generator) GenerateFloor(ctx context.Context, floorNumber, roomCount int, difficulty float64, guaranteeBoss bool, heroLevel int) *Floor {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	startTime := time.Now()

	if roomCount < 4 {
		roomCount = 4
	}
	if difficulty <= 0 {
		difficulty = 1
	}

	floor := NewFloor(floorNumber, difficulty)
	side := int(math.Ceil(math.Sqrt(float64(roomCount * 2))))

	pathLen := roomCount - 2
	if guaranteeBoss {
		pathLen = roomCount - 3
	}

	start := newRoom(g.ids.NewID(), TypeStart, Position{X: side / 2, Y: side / 2})
	floor.addRoom(start)
	floor.StartID = start.ID
	floor.CurrentID = start.ID
	start.Status = StatusCurrent

	// Random orthogonal walk. When the walk boxes itself in, fall back to
	// the first free cell that touches an already-placed room so the
	// adjacency pass can still reach it.
	path := make([]*Room, 0, pathLen)
	cur := start
	for i := 0; i < pathLen; i++ {
		pos, ok := g.freeNeighbor(floor, cur.Pos, side)
		if !ok {
			pos, ok = g.scanFreeCell(floor, side)
			if !ok {
				break
			}
		}
		room := newRoom(g.ids.NewID(), g.rollRoomType(i, pathLen), pos)
		floor.addRoom(room)
		floor.connect(cur, room)
		path = append(path, room)
		cur = room
	}

	pathEnd := cur
	anchor := pathEnd
	if guaranteeBoss {
		if pos, ok := g.freeNeighbor(floor, pathEnd.Pos, side); ok {
			boss := newRoom(g.ids.NewID(), TypeBoss, pos)
			floor.addRoom(boss)
			floor.connect(pathEnd, boss)
			floor.BossID = boss.ID
			anchor = boss
		} else if pos, ok := g.scanFreeCell(floor, side); ok {
			boss := newRoom(g.ids.NewID(), TypeBoss, pos)
			floor.addRoom(boss)
			floor.BossID = boss.ID
			anchor = boss
		}
	}

	// Exit goes in the first free cell of the anchor's 8 neighbors,
	// cardinals before diagonals. A diagonal is only reachable when all
	// cardinals are occupied, so the adjacency pass always links it.
	if pos, ok := g.exitCell(floor, anchor.Pos, side); ok {
		exit := newRoom(g.ids.NewID(), TypeExit, pos)
		floor.addRoom(exit)
		floor.connect(anchor, exit)
		floor.ExitID = exit.ID
	} else if pos, ok := g.scanFreeCell(floor, side); ok {
		exit := newRoom(g.ids.NewID(), TypeExit, pos)
		floor.addRoom(exit)
		floor.ExitID = exit.ID
	}

	g.connectAdjacent(floor)

	level := int(math.Round(float64(floorNumber) * difficulty))
	if level < 1 {
		level = 1
	}
	itemLevel := level
	if heroLevel > itemLevel {
		itemLevel = heroLevel
	}
	for _, room := range floor.Rooms() {
		g.populate(room, level, itemLevel)
	}

	span.SetAttributes(
		attribute.Int("floor.number", floorNumber),
		attribute.Int("floor.room_count", floor.RoomCount()),
		attribute.Bool("floor.boss", floor.BossID != ""),
		attribute.Int64("floor.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return floor
}

// freeNeighbor returns a random free orthogonal neighbor of pos, trying
// directions in shuffled order.
func (g *Generator) freeNeighbor(floor *Floor, pos Position, side int) (Position, bool) {
	dirs := []Direction{North, South, East, West}
	g.src.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	for _, dir := range dirs {
		next := pos.Step(dir)
		if g.inBounds(next, side) && floor.RoomAt(next) == nil {
			return next, true
		}
	}
	return Position{}, false
}

// scanFreeCell scans the grid row-major for a free cell orthogonally
// adjacent to an existing room.
func (g *Generator) scanFreeCell(floor *Floor, side int) (Position, bool) {
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			pos := Position{X: x, Y: y}
			if floor.RoomAt(pos) != nil {
				continue
			}
			for _, dir := range AllDirections {
				if n := pos.Step(dir); g.inBounds(n, side) && floor.RoomAt(n) != nil {
					return pos, true
				}
			}
		}
	}
	return Position{}, false
}

// exitCell returns the first free cell among the 8 neighbors of pos,
// cardinal directions before diagonals.
func (g *Generator) exitCell(floor *Floor, pos Position, side int) (Position, bool) {
	offsets := [8][2]int{
		{0, -1}, {0, 1}, {1, 0}, {-1, 0}, // cardinals first
		{1, -1}, {1, 1}, {-1, -1}, {-1, 1},
	}
	for _, off := range offsets {
		next := Position{X: pos.X + off[0], Y: pos.Y + off[1]}
		if g.inBounds(next, side) && floor.RoomAt(next) == nil {
			return next, true
		}
	}
	return Position{}, false
}

func (g *Generator) inBounds(pos Position, side int) bool {
	return pos.X >= 0 && pos.X < side && pos.Y >= 0 && pos.Y < side
}

// connectAdjacent adds connections between every orthogonally adjacent pair
// of rooms. East and south checks cover each pair exactly once.
func (g *Generator) connectAdjacent(floor *Floor) {
	for _, room := range floor.Rooms() {
		for _, dir := range [2]Direction{East, South} {
			if other := floor.RoomAt(room.Pos.Step(dir)); other != nil {
				floor.connect(room, other)
			}
		}
	}
}

// rollRoomType picks a weighted room type for path index i. Treasure, rest
// and shrine weights double in the middle 40% of the path.
func (g *Generator) rollRoomType(i, pathLen int) RoomType {
	middle := false
	if pathLen > 0 {
		frac := float64(i) / float64(pathLen)
		middle = frac >= 0.3 && frac < 0.7
	}

	total := 0
	for _, w := range roomTypeWeights {
		total += g.effectiveWeight(w.roomType, w.weight, middle)
	}

	roll := g.src.Intn(total)
	cumulative := 0
	for _, w := range roomTypeWeights {
		cumulative += g.effectiveWeight(w.roomType, w.weight, middle)
		if roll < cumulative {
			return w.roomType
		}
	}
	return TypeCombat
}

func (g *Generator) effectiveWeight(roomType RoomType, weight int, middle bool) int {
	if middle && (roomType == TypeTreasure || roomType == TypeRest || roomType == TypeShrine) {
		return weight * 2
	}
	return weight
}

// populate fills a room's payload with content scaled to the floor level.
func (g *Generator) populate(room *Room, level, itemLevel int) {
	switch room.Type {
	case TypeCombat:
		count := 2 + g.src.Intn(2)
		room.Combat = &CombatPayload{Enemies: g.spawn(count, level, entity.KindNormal)}
	case TypeElite:
		enemies := g.spawn(1, level, entity.KindElite)
		enemies = append(enemies, g.spawn(g.src.Intn(2), level, entity.KindNormal)...)
		room.Combat = &CombatPayload{Enemies: enemies}
	case TypeMiniboss:
		room.Combat = &CombatPayload{Enemies: g.spawn(1, level, entity.KindMiniboss)}
	case TypeBoss:
		room.Combat = &CombatPayload{Enemies: g.spawn(1, level, entity.KindBoss)}
	case TypeTreasure:
		treasure := &TreasurePayload{
			Gold:  (25 + g.src.Intn(26)) * level,
			Items: []*item.Item{g.items.Random(g.src, itemLevel)},
		}
		if g.src.Float64() < 0.2 {
			treasure.Items = append(treasure.Items, g.items.Random(g.src, itemLevel))
		}
		room.Treasure = treasure
	case TypeTrap:
		room.Trap = &TrapPayload{
			Damage:      6 + 4*level + g.src.Intn(5),
			Description: trapDescriptions[g.src.Intn(len(trapDescriptions))],
		}
	case TypeRest:
		room.Rest = &RestPayload{HealPercent: 30 + g.src.Intn(21)}
	case TypeShrine:
		buffs := [4]BuffType{BuffDamage, BuffExperience, BuffGold, BuffStats}
		room.Shrine = &ShrinePayload{Buff: buffs[g.src.Intn(len(buffs))]}
	case TypeMystery:
		room.Mystery = g.rollMystery(level)
	}
}

// rollMystery fixes a mystery room's outcome at generation time.
func (g *Generator) rollMystery(level int) *MysteryPayload {
	roll := g.src.Float64()
	switch {
	case roll < 0.4:
		return &MysteryPayload{
			Outcome:     MysteryPositive,
			Description: mysteryPositive[g.src.Intn(len(mysteryPositive))],
			Gold:        (10 + g.src.Intn(11)) * level,
			Heal:        15 + g.src.Intn(11),
		}
	case roll < 0.7:
		return &MysteryPayload{
			Outcome:     MysteryNegative,
			Description: mysteryNegative[g.src.Intn(len(mysteryNegative))],
			Damage:      5 + 3*level + g.src.Intn(4),
		}
	default:
		return &MysteryPayload{
			Outcome:     MysteryNeutral,
			Description: mysteryNeutral[g.src.Intn(len(mysteryNeutral))],
			Gold:        (1 + g.src.Intn(5)) * level,
		}
	}
}

func (g *Generator) spawn(count, level int, kind entity.Kind) []*entity.Enemy {
	enemies := make([]*entity.Enemy, 0, count)
	for i := 0; i < count; i++ {
		def := g.enemies.SpawnRandom(g.src)
		if def == nil {
			continue
		}
		enemies = append(enemies, entity.NewEnemyFromDef(def, level, kind))
	}
	return enemies
}
