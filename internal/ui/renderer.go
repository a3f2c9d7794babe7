package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delvecore/internal/entity"
	"github.com/samdwyer/delvecore/internal/world"
)

// Cell spacing of the room grid. Rooms sit on every fourth column and
// second row so connection lines fit between them.
const (
	cellWidth  = 4
	cellHeight = 2
	originX    = 2
	originY    = 1
)

// Renderer draws the current floor's room graph to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the floor graph, the party summary and a message line.
func (r *Renderer) Render(floor *world.Floor, party *entity.Party, message string) {
	r.screen.Clear()

	for _, room := range floor.Rooms() {
		r.drawConnections(room)
	}
	for _, room := range floor.Rooms() {
		r.drawRoom(room)
	}

	_, height := r.screen.Size()
	r.drawText(0, height-4, fmt.Sprintf("Floor %d", floor.Number), tcell.StyleDefault.Bold(true))
	r.drawText(0, height-3, partySummary(party), tcell.StyleDefault)
	r.drawEnemies(0, height-2, floor.Current())
	r.drawText(0, height-1, message, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.Show()
}

func partySummary(party *entity.Party) string {
	summary := ""
	for i, h := range party.Heroes {
		if i > 0 {
			summary += "  "
		}
		summary += fmt.Sprintf("%s %d/%d HP", h.GetName(), h.GetHP(), h.GetMaxHP())
	}
	return summary
}

// drawEnemies lists the current room's living enemies, each glyph in the
// template's color.
func (r *Renderer) drawEnemies(x, y int, room *world.Room) {
	if room == nil || room.Combat == nil || room.Resolved {
		return
	}
	col := x
	for _, e := range room.Combat.Enemies {
		if !e.IsAlive() {
			continue
		}
		r.screen.SetContent(col, y, e.Glyph, tcell.StyleDefault.Foreground(e.Color()))
		col++
		label := fmt.Sprintf(" %s (%s) %d/%d  ", e.GetName(), e.Kind, e.GetHP(), e.GetMaxHP())
		r.drawText(col, y, label, tcell.StyleDefault)
		col += len(label)
	}
}

func (r *Renderer) drawRoom(room *world.Room) {
	x := originX + room.Pos.X*cellWidth
	y := originY + room.Pos.Y*cellHeight
	r.screen.SetContent(x, y, roomGlyph(room.Type), r.roomStyle(room))
}

// drawConnections draws east and south links; each pair is covered once.
func (r *Renderer) drawConnections(room *world.Room) {
	x := originX + room.Pos.X*cellWidth
	y := originY + room.Pos.Y*cellHeight
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	if _, ok := room.Connections[world.East]; ok {
		for i := 1; i < cellWidth; i++ {
			r.screen.SetContent(x+i, y, '-', style)
		}
	}
	if _, ok := room.Connections[world.South]; ok {
		for i := 1; i < cellHeight; i++ {
			r.screen.SetContent(x, y+i, '|', style)
		}
	}
}

// roomGlyph maps a room type to its map symbol.
func roomGlyph(t world.RoomType) rune {
	switch t {
	case world.TypeStart:
		return 'S'
	case world.TypeCombat:
		return 'c'
	case world.TypeElite:
		return 'E'
	case world.TypeMiniboss:
		return 'M'
	case world.TypeBoss:
		return 'B'
	case world.TypeTreasure:
		return '$'
	case world.TypeTrap:
		return '^'
	case world.TypeRest:
		return 'r'
	case world.TypeShrine:
		return '+'
	case world.TypeMystery:
		return '?'
	case world.TypeExit:
		return '>'
	default:
		return '.'
	}
}

func (r *Renderer) roomStyle(room *world.Room) tcell.Style {
	switch room.Status {
	case world.StatusCurrent:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case world.StatusCompleted:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.StatusLocked:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
