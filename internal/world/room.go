// Package world provides the floor model and room-graph generation.
package world

import (
	"fmt"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/item"
)

// RoomType identifies what a room contains and which resolver applies to it.
type RoomType int

const (
	TypeStart RoomType = iota
	TypeCombat
	TypeElite
	TypeMiniboss
	TypeBoss
	TypeTreasure
	TypeTrap
	TypeRest
	TypeShrine
	TypeMystery
	TypeExit
)

// String returns the room type name.
func (t RoomType) String() string {
	switch t {
	case TypeStart:
		return "start"
	case TypeCombat:
		return "combat"
	case TypeElite:
		return "elite"
	case TypeMiniboss:
		return "miniboss"
	case TypeBoss:
		return "boss"
	case TypeTreasure:
		return "treasure"
	case TypeTrap:
		return "trap"
	case TypeRest:
		return "rest"
	case TypeShrine:
		return "shrine"
	case TypeMystery:
		return "mystery"
	case TypeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// RoomStatus tracks a room's exploration state. StatusLocked is reserved for
// special generation and never produced by the default generator.
type RoomStatus int

const (
	StatusUnexplored RoomStatus = iota
	StatusCurrent
	StatusCompleted
	StatusLocked
)

// String returns the status name.
func (s RoomStatus) String() string {
	switch s {
	case StatusUnexplored:
		return "unexplored"
	case StatusCurrent:
		return "current"
	case StatusCompleted:
		return "completed"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Direction is a cardinal movement direction on the floor grid.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// AllDirections lists the cardinal directions in a stable order.
var AllDirections = [4]Direction{North, South, East, West}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "north":
		return North, nil
	case "south":
		return South, nil
	case "east":
		return East, nil
	case "west":
		return West, nil
	default:
		return North, fmt.Errorf("unknown direction %q", s)
	}
}

// Delta returns the grid offset for the direction. North decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reciprocal direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Position is an integer cell on the floor grid.
type Position struct {
	X, Y int
}

// Step returns the neighboring position in the given direction.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// BuffType is a floor-scoped bonus granted by a shrine.
type BuffType int

const (
	BuffDamage BuffType = iota
	BuffExperience
	BuffGold
	BuffStats
)

// String returns the buff name.
func (b BuffType) String() string {
	switch b {
	case BuffDamage:
		return "damage"
	case BuffExperience:
		return "experience"
	case BuffGold:
		return "gold"
	case BuffStats:
		return "stats"
	default:
		return "unknown"
	}
}

// MysteryOutcome is the event category a mystery room resolves to. It is
// fixed at generation time so resolving is deterministic.
type MysteryOutcome int

const (
	MysteryPositive MysteryOutcome = iota
	MysteryNegative
	MysteryNeutral
)

// CombatPayload holds the enemies waiting in a combat-type room.
type CombatPayload struct {
	Enemies []*entity.Enemy
}

// Alive returns the enemies still standing.
func (p *CombatPayload) Alive() []*entity.Enemy {
	var alive []*entity.Enemy
	for _, e := range p.Enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	return alive
}

// TreasurePayload holds the loot in a treasure room.
type TreasurePayload struct {
	Gold  int
	Items []*item.Item
}

// TrapPayload holds a trap's damage and flavor.
type TrapPayload struct {
	Damage      int
	Description string
}

// RestPayload holds the heal fraction a rest site grants.
type RestPayload struct {
	HealPercent int
}

// ShrinePayload holds the buff a shrine grants.
type ShrinePayload struct {
	Buff BuffType
}

// MysteryPayload holds the pre-rolled outcome of a mystery room.
type MysteryPayload struct {
	Outcome     MysteryOutcome
	Description string
	Gold        int
	Heal        int
	Damage      int
}

// Room is one node of the floor graph. Exactly one payload pointer is set,
// matching the room type; rooms without content (start, exit) carry none.
type Room struct {
	ID          string
	Type        RoomType
	Status      RoomStatus
	Pos         Position
	Connections map[Direction]string // direction -> neighboring room ID
	Resolved    bool                 // one-time action flag

	Combat   *CombatPayload
	Treasure *TreasurePayload
	Trap     *TrapPayload
	Rest     *RestPayload
	Shrine   *ShrinePayload
	Mystery  *MysteryPayload
}

func newRoom(id string, roomType RoomType, pos Position) *Room {
	return &Room{
		ID:          id,
		Type:        roomType,
		Pos:         pos,
		Connections: make(map[Direction]string),
	}
}
