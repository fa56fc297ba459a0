package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

// The window is laid out 1:1 with the world: x maps straight across and the
// y-up world is flipped so its top edge (y=0) is the first pixel row.
func toScreen(p sim.Vec2) (float32, float32) {
	return float32(p.X), float32(-p.Y)
}

func toWorld(x, y float64) sim.Vec2 {
	return sim.V(x, -y)
}

// screenRect converts a world box, whose Y is its bottom edge, into the
// top-left corner and size of the pixel rectangle.
func screenRect(b core.RectF) (x, y, w, h float32) {
	return float32(b.X), float32(-(b.Y + b.H)), float32(b.W), float32(b.H)
}

// rgba converts a cell color; the terminal default becomes white.
func rgba(c core.Color) color.RGBA {
	if c.IsDefault() {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	r, g, b := c.Channels()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (v *Viewer) drawEntity(dst *ebiten.Image, e *sim.Entity) {
	c := rgba(sim.Tint(e))
	x, y := toScreen(e.Pos)

	switch l := e.Variant.(type) {
	case *sim.Tile:
		rx, ry, rw, rh := screenRect(e.Bounds())
		vector.DrawFilledRect(dst, rx, ry, rw, rh, c, false)
		if l.Status == sim.TileHealing {
			vector.StrokeRect(dst, rx, ry, rw, rh, 1, colornames.Black, false)
		}
	case *sim.Player:
		vector.DrawFilledCircle(dst, x, y, float32(e.Width/2), c, true)
		nx, ny := toScreen(e.Pos.Add(sim.Unit(e.Angle).Scale(e.Width)))
		vector.StrokeLine(dst, x, y, nx, ny, 2, c, true)
	case *sim.Cannon:
		tx, ty := toScreen(e.Pos.Add(sim.Unit(e.Angle).Scale(e.Width)))
		barrel := c
		if e.Boss == v.world.PlayerID() {
			barrel = colornames.Red
		}
		vector.StrokeLine(dst, x, y, tx, ty, 3, barrel, true)
	case *sim.Rocket:
		vector.DrawFilledCircle(dst, x, y, 2, c, true)
	case *sim.Turret:
		rx, ry, rw, rh := screenRect(e.Bounds())
		vector.DrawFilledRect(dst, rx, ry, rw, rh, c, false)
	case *sim.Guardian:
		vector.DrawFilledCircle(dst, x, y, float32(e.Width/2), c, true)
		vector.StrokeCircle(dst, x, y, float32(e.Width/2), 1, colornames.Yellow, true)
	case *sim.Spark:
		vector.DrawFilledRect(dst, x-1, y-1, 2, 2, c, false)
	case *sim.Flame:
		fx, fy := toScreen(e.Pos.Add(sim.Unit(e.Angle).Scale(e.Height)))
		vector.StrokeLine(dst, x, y, fx, fy, 3, c, true)
	case *sim.Smoke:
		vector.DrawFilledCircle(dst, x, y, float32(max(e.Width/2, 2)), c, true)
	case *sim.Flytext:
		if l.Visible(e) {
			v.drawText(dst, l.Text, float64(x), float64(y), 1, c)
		}
	case *sim.Number:
		if l.Label != 0 {
			v.drawText(dst, string(l.Label), float64(x), float64(y), max(l.Size/13, 1), c)
		}
	}
}

// drawText centers s horizontally on x with its top at y.
func (v *Viewer) drawText(dst *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, s, v.face, op)
}

// hpPixels is how many world units of bar one hitpoint takes.
const hpPixels = 0.2

// drawHUD draws a yellow frame sized to the ship's maximum hitpoints, filled
// from red to green as they run out, then the status line below it.
func (v *Viewer) drawHUD(dst *ebiten.Image) {
	cfg := v.world.Config()
	hp, maxHP := 0.0, cfg.Player.Hitpoints
	if p, ok := v.world.Player(); ok {
		hp, maxHP = p.HP, p.MaxHP
	}
	ratio := 0.0
	if maxHP > 0 {
		ratio = core.ClampF(hp/maxHP, 0, 1)
	}

	frameW := float32(min(maxHP*hpPixels, cfg.World.Width-20))
	fill := rgba(core.Lerp(core.ColorRed, core.ColorGreen, ratio))
	vector.DrawFilledRect(dst, 10, 10, frameW*float32(ratio), 12, fill, false)
	vector.StrokeRect(dst, 10, 10, frameW, 12, 2, colornames.Yellow, false)

	status := fmt.Sprintf("hp %.0f  rockets %d  gold %d  level %d  score %d  fps %.0f",
		hp, cfg.Weapons.Rockets, cfg.Economy.Gold, v.world.ActiveLevel()+1, v.score(), ebiten.ActualFPS())
	if v.world.Truce() {
		status += "  truce"
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 28)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(dst, status, v.face, op)
}

func (v *Viewer) drawMessage(dst *ebiten.Image, title, subtitle string) {
	cfg := v.world.Config()
	cx, cy := cfg.World.Width/2, cfg.World.Height/2
	vector.DrawFilledRect(dst, float32(cx-180), float32(cy-40), 360, 80, color.RGBA{A: 0xc0}, false)
	vector.StrokeRect(dst, float32(cx-180), float32(cy-40), 360, 80, 2, colornames.Yellow, false)
	v.drawText(dst, title, cx, cy-28, 2, colornames.Yellow)
	v.drawText(dst, subtitle, cx, cy+12, 1, colornames.White)
}
