package cave

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 1

// view maps world units onto screen cells. World space is y-up with the
// top edge at y=0; screen rows grow downwards below the HUD.
type view struct {
	worldW, worldH float64
	cols, rows     int
}

func newView(cfg config.Cave, screenW, screenH int) view {
	return view{
		worldW: cfg.World.Width,
		worldH: cfg.World.Height,
		cols:   max(screenW, 1),
		rows:   max(screenH-hudRows, 1),
	}
}

func (v view) toCell(p sim.Vec2) (int, int) {
	x := int(math.Floor(p.X / v.worldW * float64(v.cols)))
	y := int(math.Floor(-p.Y / v.worldH * float64(v.rows)))
	return x, y + hudRows
}

// toWorld returns the world point at the centre of a screen cell.
func (v view) toWorld(col, row float64) sim.Vec2 {
	x := (col + 0.5) / float64(v.cols) * v.worldW
	y := (row - hudRows + 0.5) / float64(v.rows) * v.worldH
	return sim.V(x, -y)
}

// span returns the cells covered by a world box; every box covers at least
// the cell holding its centre.
func (v view) span(b core.RectF) core.Rect {
	x0 := int(math.Floor(b.X / v.worldW * float64(v.cols)))
	x1 := int(math.Ceil((b.X+b.W)/v.worldW*float64(v.cols))) - 1
	y0 := int(math.Floor(-(b.Y+b.H)/v.worldH*float64(v.rows))) + hudRows
	y1 := int(math.Ceil(-b.Y/v.worldH*float64(v.rows))) - 1 + hudRows
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

var headings = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// heading picks the arrow closest to angle degrees.
func heading(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return headings[int(math.Round(a/45))%len(headings)]
}

// Render draws the world back to front, then the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	if g.view.cols != dst.Width() || g.view.rows != dst.Height()-hudRows {
		g.view = newView(g.world.Config(), dst.Width(), dst.Height())
	}

	for _, e := range g.world.DrawList() {
		g.drawEntity(dst, e)
	}
	g.drawHUD(dst)

	switch {
	case g.gameOver:
		g.drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press Enter to restart", g.score()))
	case g.paused:
		g.drawMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawEntity(dst *core.Screen, e *sim.Entity) {
	c := sim.Tint(e)
	x, y := g.view.toCell(e.Pos)

	switch v := e.Variant.(type) {
	case *sim.Tile:
		r := g.view.span(e.Bounds())
		glyph := '█'
		if v.Status == sim.TileHealing {
			glyph = '▓'
		}
		dst.DrawRect(r, glyph, c)
	case *sim.Player:
		dst.SetCell(x, y, heading(e.Angle), c)
	case *sim.Cannon:
		if e.Boss != g.world.PlayerID() {
			return
		}
		tip := e.Pos.Add(sim.Unit(e.Angle).Scale(e.Width))
		tx, ty := g.view.toCell(tip)
		if tx != x || ty != y {
			dst.SetCell(tx, ty, '+', core.ColorRed)
		}
	case *sim.Rocket:
		dst.SetCell(x, y, '•', c)
	case *sim.Turret:
		dst.SetCell(x, y, '▣', c)
	case *sim.Guardian:
		dst.SetCell(x, y, '◆', c)
	case *sim.Spark:
		dst.SetCell(x, y, '·', c)
	case *sim.Flame:
		fx, fy := g.view.toCell(e.Pos.Add(sim.Unit(e.Angle).Scale(e.Height)))
		dst.SetCell(fx, fy, '*', c)
	case *sim.Smoke:
		dst.SetCell(x, y, '░', c)
	case *sim.Flytext:
		if v.Visible(e) {
			dst.DrawText(x-len([]rune(v.Text))/2, y, v.Text, c)
		}
	case *sim.Number:
		if v.Label != 0 {
			dst.SetCell(x, y, v.Label, c.Scale(0.5+v.Size/120))
		}
	}
}

// drawHUD writes the status line: a framed hitpoint bar whose fill fades
// from green to red, then rockets, gold, level, truce and frame rate.
func (g *Game) drawHUD(dst *core.Screen) {
	cfg := g.world.Config()
	hp, maxHP := 0.0, cfg.Player.Hitpoints
	if p, ok := g.world.Player(); ok {
		hp, maxHP = p.HP, p.MaxHP
	}
	ratio := 0.0
	if maxHP > 0 {
		ratio = core.ClampF(hp/maxHP, 0, 1)
	}

	const barWidth = 10
	filled := int(math.Round(ratio * barWidth))
	dst.DrawText(0, 0, "hp [", core.ColorYellow)
	dst.DrawText(4, 0, strings.Repeat("█", filled), core.Lerp(core.ColorRed, core.ColorGreen, ratio))
	dst.DrawText(4+filled, 0, strings.Repeat(" ", barWidth-filled), core.ColorDefault)
	dst.DrawText(4+barWidth, 0, "]", core.ColorYellow)

	status := fmt.Sprintf(" %4.0f  rockets %d  gold %d  level %d  fps %2.0f",
		hp, cfg.Weapons.Rockets, cfg.Economy.Gold, g.world.ActiveLevel()+1, g.fps)
	if g.world.Truce() {
		status += "  truce"
	}
	dst.DrawText(5+barWidth, 0, status, core.ColorWhite)
}

func (g *Game) drawMessage(dst *core.Screen, title, subtitle string) {
	centerY := dst.Height() / 2
	width := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.NewRect((dst.Width()-width)/2, centerY-2, width, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(centerY-1, title, core.ColorYellow)
	dst.DrawTextCentered(centerY+1, subtitle, core.ColorWhite)
}
