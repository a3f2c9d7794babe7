package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/game"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/store"
	"github.com/samdwyer/delvecore/internal/world"
)

type newRunRequest struct {
	Seed          int64   `json:"seed,omitempty"`
	RoomCount     int     `json:"roomCount,omitempty"`
	Difficulty    float64 `json:"difficulty,omitempty"`
	GuaranteeBoss bool    `json:"guaranteeBoss,omitempty"`
	HeroName      string  `json:"heroName,omitempty"`
	HeroLevel     int     `json:"heroLevel,omitempty"`
	InventorySize int     `json:"inventorySize,omitempty"`
}

// starterStats derives a fresh hero's intrinsic stats from level.
func starterStats(level int) item.Stats {
	return item.Stats{
		HP:   100 + 20*(level-1),
		ATK:  12 + 3*(level-1),
		DEF:  8 + 2*(level-1),
		SPD:  10 + (level - 1),
		CRIT: 5,
	}
}

func (s *Server) handleNewRun(w http.ResponseWriter, r *http.Request) {
	var req newRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := req.Seed
	if seed == 0 {
		var err error
		if seed, err = rng.NewSeed(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if req.HeroName == "" {
		req.HeroName = "Adventurer"
	}
	if req.HeroLevel < 1 {
		req.HeroLevel = 1
	}
	if req.InventorySize <= 0 {
		req.InventorySize = 20
	}

	src := rng.New(seed)
	gen := world.NewGenerator(
		src,
		id.NewSequence(fmt.Sprintf("room-%d", seed)),
		s.enemies,
		item.NewGenerator(s.items, id.NewSequence(fmt.Sprintf("item-%d", seed))),
	)

	hero := entity.NewHero(req.HeroName, req.HeroLevel, starterStats(req.HeroLevel), s.sets)
	party := entity.NewParty(hero)
	inv := gear.NewInventory(req.InventorySize)

	cfg := game.Config{
		Seed:          seed,
		RoomCount:     req.RoomCount,
		Difficulty:    req.Difficulty,
		GuaranteeBoss: req.GuaranteeBoss,
	}
	dungeon := game.NewDungeon(r.Context(), cfg, src, gen, party, inv)

	runID := s.ids.NewID()
	s.mu.Lock()
	s.runs[runID] = dungeon
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, s.stateJSON(runID, dungeon))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, s.stateJSON(mux.Vars(r)["id"], d))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := world.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	res := d.MoveToRoom(dir)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, toResultJSON(res))
}

// handleResolve dispatches to the resolver matching the current room type.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	s.mu.Lock()
	var res game.Result
	switch d.CurrentRoom().Type {
	case world.TypeCombat, world.TypeElite, world.TypeMiniboss, world.TypeBoss:
		res = d.CompleteCombat(r.Context())
	case world.TypeTreasure:
		res = d.LootTreasure()
	case world.TypeTrap:
		res = d.DisarmTrap()
	case world.TypeRest:
		res = d.UseRest()
	case world.TypeShrine:
		res = d.UseShrine()
	case world.TypeMystery:
		res = d.ResolveMystery()
	case world.TypeExit:
		res = d.ProceedToNextFloor(r.Context())
	default:
		res = game.Result{Success: false, Message: "nothing to resolve here"}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, toResultJSON(res))
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]item.Record, 0, d.Inventory.Len())
	for _, it := range d.Inventory.Items() {
		items = append(items, it.Record())
	}
	equipped := make(map[string]item.Record)
	for _, slot := range gear.AllEquipSlots {
		if it := d.Party.Heroes[0].Equipment().Get(slot); it != nil {
			equipped[slot.String()] = it.Record()
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"gold":     d.Inventory.Gold(),
		"items":    items,
		"equipped": equipped,
	})
}

func (s *Server) handleAutoEquip(w http.ResponseWriter, r *http.Request) {
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	var req struct {
		Role string `json:"role,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := gear.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	hero := d.Party.Heroes[0]
	changes := gear.NewAdvisor(role).AutoEquip(hero.Equipment(), d.Inventory, hero.GetLevel())
	hero.Refresh()
	s.mu.Unlock()

	type changeJSON struct {
		Slot    string `json:"slot"`
		Item    string `json:"item,omitempty"`
		Swapped bool   `json:"swapped"`
		Message string `json:"message,omitempty"`
	}
	out := make([]changeJSON, 0, len(changes))
	for _, c := range changes {
		cj := changeJSON{Slot: c.Slot.String(), Swapped: c.Swapped, Message: c.Message}
		if c.Item != nil {
			cj.Item = c.Item.Name
		}
		out = append(out, cj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"changes": out})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}
	d := s.run(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	runID := mux.Vars(r)["id"]

	s.mu.Lock()
	run := store.RunRecord{
		ID:              runID,
		MaxFloor:        d.MaxFloor(),
		Gold:            d.Inventory.Gold(),
		GoldEarned:      d.GoldEarned,
		ItemsFound:      d.ItemsFound,
		EnemiesDefeated: d.EnemiesDefeated,
		Active:          d.Active,
		StartedAt:       d.StartedAt,
	}
	records := make([]item.Record, 0, d.Inventory.Len())
	for _, it := range d.Inventory.Items() {
		records = append(records, it.Record())
	}
	s.mu.Unlock()

	if err := s.store.SaveRun(r.Context(), run); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.SaveItems(r.Context(), runID, records); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// stateJSON summarizes a run for clients. Callers hold no lock; state reads
// are serialized here.
func (s *Server) stateJSON(runID string, d *game.Dungeon) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := d.CurrentRoom()
	connections := make(map[string]map[string]string)
	for dir, otherID := range room.Connections {
		other := d.CurrentFloor().Room(otherID)
		connections[dir.String()] = map[string]string{
			"id":     other.ID,
			"type":   other.Type.String(),
			"status": other.Status.String(),
		}
	}

	heroes := make([]map[string]any, 0, len(d.Party.Heroes))
	for _, h := range d.Party.Heroes {
		heroes = append(heroes, map[string]any{
			"name":  h.GetName(),
			"level": h.GetLevel(),
			"hp":    h.GetHP(),
			"maxHp": h.GetMaxHP(),
			"alive": h.IsAlive(),
		})
	}

	return map[string]any{
		"id":              runID,
		"floor":           d.FloorNumber(),
		"maxFloor":        d.MaxFloor(),
		"active":          d.Active,
		"goldEarned":      d.GoldEarned,
		"itemsFound":      d.ItemsFound,
		"enemiesDefeated": d.EnemiesDefeated,
		"heroes":          heroes,
		"currentRoom": map[string]any{
			"id":          room.ID,
			"type":        room.Type.String(),
			"status":      room.Status.String(),
			"resolved":    room.Resolved,
			"connections": connections,
		},
	}
}
