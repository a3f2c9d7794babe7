package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/game"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/gear"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/rng"
	"github.com/samdwyer/delvecore/internal/ui"
	"github.com/samdwyer/delvecore/internal/world"
)

// explorer wires the engine to a tcell screen for interactive play.
type explorer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	dungeon  *game.Dungeon
	message  string
}

func newExplorer(ctx context.Context, seed int64) (*explorer, error) {
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	sets, err := gamedata.LoadSetRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading sets: %w", err)
	}

	src := rng.New(seed)
	gen := world.NewGenerator(
		src,
		id.NewSequence("room"),
		enemies,
		item.NewGenerator(items, id.NewSequence("item")),
	)

	hero := entity.NewHero("Wanderer", 1, item.Stats{HP: 100, ATK: 12, DEF: 8, SPD: 10, CRIT: 5}, sets)
	party := entity.NewParty(hero)
	inv := gear.NewInventory(20)

	cfg := game.Config{Seed: seed, RoomCount: 10, Difficulty: 1, GuaranteeBoss: true}
	dungeon := game.NewDungeon(ctx, cfg, src, gen, party, inv)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	return &explorer{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		dungeon:  dungeon,
		message:  fmt.Sprintf("Seed %d. Arrows move, Enter resolves, q quits.", seed),
	}, nil
}

// Run drives the event loop until the player quits or the run ends.
func (e *explorer) Run(ctx context.Context) error {
	defer e.screen.Close()

	for {
		e.renderer.Render(e.dungeon.CurrentFloor(), e.dungeon.Party, e.message)

		ev := e.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if e.handleKey(ctx, ev) {
				return nil
			}
		}

		if !e.dungeon.Active {
			e.renderer.Render(e.dungeon.CurrentFloor(), e.dungeon.Party, e.message+" The delve is over. Press any key.")
			e.screen.PollEvent()
			return nil
		}
	}
}

// handleKey processes one key event and reports whether to quit.
func (e *explorer) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		e.move(world.North)
	case tcell.KeyDown:
		e.move(world.South)
	case tcell.KeyLeft:
		e.move(world.West)
	case tcell.KeyRight:
		e.move(world.East)
	case tcell.KeyEnter:
		e.resolve(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			e.resolve(ctx)
		case 'g':
			e.equip()
		}
	}
	return false
}

func (e *explorer) move(dir world.Direction) {
	res := e.dungeon.MoveToRoom(dir)
	if res.Success {
		e.message = fmt.Sprintf("Moved %s into a %s room.", dir, e.dungeon.CurrentRoom().Type)
	} else {
		e.message = res.Message
	}
}

// resolve triggers the action matching the current room type.
func (e *explorer) resolve(ctx context.Context) {
	d := e.dungeon
	var res game.Result
	switch d.CurrentRoom().Type {
	case world.TypeCombat, world.TypeElite, world.TypeMiniboss, world.TypeBoss:
		res = d.CompleteCombat(ctx)
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
		res = d.ProceedToNextFloor(ctx)
	default:
		res = game.Result{Message: "Nothing to do here."}
	}
	e.message = res.Message
	if res.Reward != nil {
		e.message += fmt.Sprintf(" (+%dg, +%dxp)", res.Reward.Gold, res.Reward.Experience)
	}
}

// equip runs the balanced advisor over the whole inventory.
func (e *explorer) equip() {
	hero := e.dungeon.Party.Heroes[0]
	changes := gear.NewAdvisor(gear.RoleBalanced).AutoEquip(hero.Equipment(), e.dungeon.Inventory, hero.GetLevel())
	hero.Refresh()
	e.message = fmt.Sprintf("Advisor made %d gear changes.", len(changes))
}
