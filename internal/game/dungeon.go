package game

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/telemetry"
	"github.com/samdwyer/delvecore/internal/world"
)

// Dungeon is one run through the dungeon: an ordered list of floors extended
// lazily as the party descends, plus running totals. A floor is never
// regenerated once created.
type Dungeon struct {
	Party     *entity.Party
	Inventory *gear.Inventory

	GoldEarned      int
	ItemsFound      int
	EnemiesDefeated int
	Active          bool
	StartedAt       time.Time

	cfg          Config
	src          rng.Source
	gen          *world.Generator
	floors       []*world.Floor
	currentFloor int
	maxFloor     int
}

// NewDungeon starts a run and generates the first floor.
func NewDungeon(ctx context.Context, cfg Config, src rng.Source, gen *world.Generator, party *entity.Party, inv *gear.Inventory) *Dungeon {
	cfg = cfg.withDefaults()
	d := &Dungeon{
		Party:     party,
		Inventory: inv,
		Active:    true,
		StartedAt: time.Now(),
		cfg:       cfg,
		src:       src,
		gen:       gen,
	}
	d.floors = append(d.floors, d.generateFloor(ctx, 1))
	d.maxFloor = 1
	return d
}

func (d *Dungeon) generateFloor(ctx context.Context, number int) *world.Floor {
	return d.gen.GenerateFloor(ctx, number, d.cfg.RoomCount, d.cfg.Difficulty, d.cfg.GuaranteeBoss, d.Party.MaxLevel())
}

// CurrentFloor returns the floor the party occupies.
func (d *Dungeon) CurrentFloor() *world.Floor {
	return d.floors[d.currentFloor]
}

// CurrentRoom returns the room the party occupies.
func (d *Dungeon) CurrentRoom() *world.Room {
	return d.CurrentFloor().Current()
}

// FloorNumber returns the 1-based number of the current floor.
func (d *Dungeon) FloorNumber() int {
	return d.currentFloor + 1
}

// MaxFloor returns the deepest floor number reached this run.
func (d *Dungeon) MaxFloor() int {
	return d.maxFloor
}

// HasActiveBuff reports whether a shrine buff is active on the current floor.
func (d *Dungeon) HasActiveBuff(buff world.BuffType) bool {
	return d.CurrentFloor().HasActiveBuff(buff)
}

// MoveToRoom moves the party through a connection of the current room. The
// source room is marked completed and the target becomes current.
func (d *Dungeon) MoveToRoom(dir world.Direction) Result {
	floor := d.CurrentFloor()
	cur := floor.Current()

	targetID, found := cur.Connections[dir]
	if !found {
		return fail(fmt.Sprintf("no passage %s from here", dir))
	}
	target := floor.Room(targetID)
	if target == nil {
		return fail(fmt.Sprintf("nothing lies %s", dir))
	}
	if target.Status == world.StatusLocked {
		return fail("the way is locked")
	}

	cur.Status = world.StatusCompleted
	target.Status = world.StatusCurrent
	floor.CurrentID = target.ID
	return ok(fmt.Sprintf("You enter a %s room", target.Type))
}

// ProceedToNextFloor descends through the exit room, lazily generating the
// next floor. Shrine buffs do not carry over; they are floor-scoped.
func (d *Dungeon) ProceedToNextFloor(ctx context.Context) Result {
	floor := d.CurrentFloor()
	cur := floor.Current()
	if cur.Type != world.TypeExit {
		return fail("this is not the exit")
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "dungeon.descend")
	defer span.End()

	cur.Status = world.StatusCompleted
	floor.Completed = true

	d.currentFloor++
	if d.currentFloor >= len(d.floors) {
		d.floors = append(d.floors, d.generateFloor(ctx, d.currentFloor+1))
	}
	if d.currentFloor+1 > d.maxFloor {
		d.maxFloor = d.currentFloor + 1
	}

	span.SetAttributes(
		attribute.Int("dungeon.floor", d.currentFloor+1),
		attribute.Int("dungeon.max_floor", d.maxFloor),
	)
	return ok(fmt.Sprintf("You descend to floor %d", d.currentFloor+1))
}

// checkRoom is the common resolver guard: the current room must match the
// wanted type and its one-time action flag must be clear.
func (d *Dungeon) checkRoom(want world.RoomType) (*world.Room, Result) {
	room := d.CurrentRoom()
	if room.Type != want {
		return nil, fail(fmt.Sprintf("this is not a %s room", want))
	}
	if room.Resolved {
		return nil, fail("there is nothing more to do here")
	}
	return room, Result{Success: true}
}
