// Package game owns the dungeon run: the floor sequence, the current-room
// pointer and per-room-type event resolution.
package game

import (
	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/item"
)

// Reward is what a resolved room event yields.
type Reward struct {
	Gold       int
	Items      []*item.Item
	Experience int
}

// HeroDamage records damage dealt to one hero by a room event.
type HeroDamage struct {
	Hero   *entity.Hero
	Damage int
}

// Result is the structured outcome of a state-machine operation. Expected
// domain failures (wrong room type, already resolved, missing connection)
// come back as Success=false with a message, never as an error.
type Result struct {
	Success bool
	Message string
	Reward  *Reward
	Damage  []HeroDamage
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}
