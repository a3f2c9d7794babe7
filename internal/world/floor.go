package world

// Floor is one level of the dungeon: a connected graph of rooms on a sparse
// grid plus the shrine buffs active while the party remains on it.
type Floor struct {
	Number     int
	Difficulty float64

	StartID   string
	ExitID    string
	BossID    string // empty when no boss was generated
	CurrentID string

	Completed bool
	Buffs     []BuffType

	rooms map[string]*Room
	byPos map[Position]*Room
	order []string // placement order, for stable iteration
}

// NewFloor creates an empty floor.
func NewFloor(number int, difficulty float64) *Floor {
	return &Floor{
		Number:     number,
		Difficulty: difficulty,
		rooms:      make(map[string]*Room),
		byPos:      make(map[Position]*Room),
	}
}

// Room returns the room with the given ID, or nil.
func (f *Floor) Room(id string) *Room {
	return f.rooms[id]
}

// RoomAt returns the room occupying the grid cell, or nil.
func (f *Floor) RoomAt(pos Position) *Room {
	return f.byPos[pos]
}

// Rooms returns all rooms in placement order.
func (f *Floor) Rooms() []*Room {
	out := make([]*Room, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.rooms[id])
	}
	return out
}

// RoomCount returns the number of rooms on the floor.
func (f *Floor) RoomCount() int {
	return len(f.rooms)
}

// Current returns the room the party occupies, or nil before entry.
func (f *Floor) Current() *Room {
	return f.rooms[f.CurrentID]
}

// addRoom registers a room. The cell must be free.
func (f *Floor) addRoom(r *Room) {
	f.rooms[r.ID] = r
	f.byPos[r.Pos] = r
	f.order = append(f.order, r.ID)
}

// connect adds the bidirectional connection between two orthogonally
// adjacent rooms. Non-adjacent pairs are ignored.
func (f *Floor) connect(a, b *Room) {
	for _, dir := range AllDirections {
		if a.Pos.Step(dir) == b.Pos {
			a.Connections[dir] = b.ID
			b.Connections[dir.Opposite()] = a.ID
			return
		}
	}
}

// Neighbor returns the room connected in the given direction from the room
// with the given ID, or nil when no connection exists.
func (f *Floor) Neighbor(fromID string, dir Direction) *Room {
	from := f.rooms[fromID]
	if from == nil {
		return nil
	}
	toID, ok := from.Connections[dir]
	if !ok {
		return nil
	}
	return f.rooms[toID]
}

// AddBuff records a floor-scoped shrine buff.
func (f *Floor) AddBuff(buff BuffType) {
	f.Buffs = append(f.Buffs, buff)
}

// HasActiveBuff reports whether a buff of the given type is active.
func (f *Floor) HasActiveBuff(buff BuffType) bool {
	for _, b := range f.Buffs {
		if b == buff {
			return true
		}
	}
	return false
}

// FullyConnected reports whether every room is reachable from the start
// room over the connection graph. Generation must always produce a fully
// connected floor; an unreachable room is a structural invariant violation.
func (f *Floor) FullyConnected() bool {
	start := f.rooms[f.StartID]
	if start == nil {
		return len(f.rooms) == 0
	}

	visited := map[string]bool{start.ID: true}
	queue := []*Room{start}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		for _, id := range r.Connections {
			if !visited[id] {
				visited[id] = true
				queue = append(queue, f.rooms[id])
			}
		}
	}
	return len(visited) == len(f.rooms)
}
