package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-cave/internal/config"
)

// Cell is one grid symbol.
type Cell byte

// Grid legend.
const (
	CellEmpty    Cell = '.'
	CellNormal   Cell = '0'
	CellGolden   Cell = '1'
	CellHealing  Cell = '2'
	CellTurret   Cell = '!'
	CellGuardian Cell = '+'
)

// Teleport marker labels. A source in one level leads to the matching
// lowercase destination in the next.
const (
	MarkerSourceA rune = 'A'
	MarkerDestA   rune = 'a'
	MarkerSourceB rune = 'B'
	MarkerDestB   rune = 'b'
)

// IsMarker reports whether c is a teleport marker letter.
func (c Cell) IsMarker() bool {
	return strings.ContainsRune("abcABC", rune(c))
}

// TileStatus returns the tile material of a terrain cell.
func (c Cell) TileStatus() (TileStatus, bool) {
	switch c {
	case CellNormal:
		return TileNormal, true
	case CellGolden:
		return TileGolden, true
	case CellHealing:
		return TileHealing, true
	default:
		return 0, false
	}
}

// Grid is a level layout, row-major with row 0 at the top.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid returns a w×h grid of empty cells.
func NewGrid(w, h int) Grid {
	g := Grid{W: max(0, w), H: max(0, h)}
	g.cells = make([]Cell, g.W*g.H)
	for i := range g.cells {
		g.cells[i] = CellEmpty
	}
	return g
}

func (g Grid) inside(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y); out of range reads as empty.
func (g Grid) At(x, y int) Cell {
	if !g.inside(x, y) {
		return CellEmpty
	}
	return g.cells[y*g.W+x]
}

// Set writes a cell; out of range writes are dropped.
func (g *Grid) Set(x, y int, c Cell) {
	if g.inside(x, y) {
		g.cells[y*g.W+x] = c
	}
}

// RectangleHole empties the w×h rectangle whose top-left cell is (x, y),
// clipped to the grid.
func (g *Grid) RectangleHole(x, y, w, h int) {
	for yy := max(0, y); yy < min(g.H, y+h); yy++ {
		for xx := max(0, x); xx < min(g.W, x+w); xx++ {
			g.cells[yy*g.W+xx] = CellEmpty
		}
	}
}

// RoundHole empties every cell within the box [m-r, m+r) whose rounded
// distance to (mx, my) is below r.
func (g *Grid) RoundHole(mx, my, r int) {
	for y := my - r; y < my+r; y++ {
		for x := mx - r; x < mx+r; x++ {
			d := math.Hypot(float64(mx-x), float64(my-y))
			if math.Round(d) < float64(r) {
				g.Set(x, y, CellEmpty)
			}
		}
	}
}

// Clone returns an independent copy.
func (g Grid) Clone() Grid {
	c := g
	c.cells = append([]Cell(nil), g.cells...)
	return c
}

// Equal reports whether both grids have the same size and cells.
func (g Grid) Equal(o Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells hold c.
func (g Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Find returns the first cell holding c in row-major order.
func (g Grid) Find(c Cell) (x, y int, ok bool) {
	for i, v := range g.cells {
		if v == c {
			return i % g.W, i / g.W, true
		}
	}
	return 0, 0, false
}

// String renders the grid in the legend, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for y := range g.H {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.W {
			sb.WriteByte(byte(g.At(x, y)))
		}
	}
	return sb.String()
}

// Grid placement offsets in world units.
const (
	gridOffsetX = 10
	gridOffsetY = 30
)

// GenParams controls level generation.
type GenParams struct {
	Width, Height float64
	TileSize      int
	Rooms         int
	Holes         int
	Enemies       int
	Slot          int
}

// ParamsFor derives generation parameters for a slot from the configuration.
func ParamsFor(cfg config.Cave, slot int) GenParams {
	rooms, _ := cfg.Terrain.Rooms.Count()
	holes, _ := cfg.Terrain.Holes.Count()
	enemies, _ := cfg.Enemies.Density.Count()
	return GenParams{
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		TileSize: cfg.Terrain.TileSize,
		Rooms:    rooms,
		Holes:    holes,
		Enemies:  enemies,
		Slot:     slot,
	}
}

// GridSize returns the number of tile columns and rows that fit the world.
func (p GenParams) GridSize() (xtiles, ytiles int) {
	if p.TileSize <= 0 {
		return 0, 0
	}
	return (int(p.Width) - gridOffsetX) / p.TileSize, (int(p.Height) - gridOffsetY) / p.TileSize
}

type room struct{ x, y, w, h int }

// Generate builds one level: random tiles, carved rooms and holes, the spawn
// clearing, enemies, and the slot's teleport markers.
func Generate(p GenParams, rng *RNG) Grid {
	xtiles, ytiles := p.GridSize()
	g := NewGrid(xtiles, ytiles)
	if xtiles == 0 || ytiles == 0 {
		return g
	}

	for i := range g.cells {
		switch r := rng.Intn(37); {
		case r < 33:
			g.cells[i] = CellNormal
		case r < 36:
			g.cells[i] = CellGolden
		default:
			g.cells[i] = CellHealing
		}
	}

	rooms := make([]room, 0, p.Rooms)
	for range p.Rooms {
		x := rng.Range(0, xtiles)
		y := rng.Range(0, ytiles)
		w := rng.Range(5, 10)
		h := rng.Range(5, 10)
		r := room{x - w, y - h, w, h}
		g.RectangleHole(r.x, r.y, r.w, r.h)
		rooms = append(rooms, r)
	}
	for range p.Holes {
		g.RoundHole(rng.Range(5, xtiles-5), rng.Range(5, ytiles-5), rng.Range(2, 5))
	}
	g.RoundHole(xtiles/2, ytiles/2, 4)

	placeEnemies(&g, rooms, p.Enemies, rng)
	placeTeleports(&g, p.Slot, rng)
	return g
}

// placeEnemies puts a turret in a corner and a guardian in the middle of
// randomly chosen rooms, away from the spawn clearing.
func placeEnemies(g *Grid, rooms []room, n int, rng *RNG) {
	if len(rooms) == 0 {
		return
	}
	cx, cy := g.W/2, g.H/2
	safe := func(x, y int) bool {
		return g.inside(x, y) && math.Hypot(float64(x-cx), float64(y-cy)) >= 6
	}
	for range n {
		r := Pick(rng, rooms)
		corners := [4][2]int{
			{r.x, r.y},
			{r.x + r.w - 1, r.y},
			{r.x, r.y + r.h - 1},
			{r.x + r.w - 1, r.y + r.h - 1},
		}
		c := corners[rng.Intn(len(corners))]
		if safe(c[0], c[1]) {
			g.Set(c[0], c[1], CellTurret)
		}
		mx, my := r.x+r.w/2, r.y+r.h/2
		if safe(mx, my) && g.At(mx, my) == CellEmpty {
			g.Set(mx, my, CellGuardian)
		}
	}
}

func placeTeleports(g *Grid, slot int, rng *RNG) {
	pick := func() (int, int) {
		return min(rng.Range(0, g.W), g.W-1), min(rng.Range(0, g.H), g.H-1)
	}
	clearing := func(x, y int, label rune) {
		g.RectangleHole(x-2, y-2, 5, 5)
		g.Set(x, y, Cell(label))
	}

	switch slot {
	case 0:
		x, y := pick()
		g.Set(x, y, Cell(MarkerSourceA))
	case 1:
		ax, ay := pick()
		clearing(ax, ay, MarkerDestA)
		x, y := pick()
		for tries := 0; x == ax && y == ay && tries < 8; tries++ {
			x, y = pick()
		}
		if x != ax || y != ay {
			g.Set(x, y, Cell(MarkerSourceB))
		}
	case 2:
		x, y := pick()
		clearing(x, y, MarkerDestB)
	}
}

// CellCenter returns the world position of a grid cell.
func CellCenter(x, y, tileSize int) Vec2 {
	return V(float64(x*tileSize+gridOffsetX), float64(-y*tileSize-gridOffsetY))
}

func (w *World) generateLevels() {
	for slot := range LevelCount {
		w.levels[slot] = Generate(ParamsFor(w.cfg, slot), w.rng)
	}
}

// paint spawns the entities of the active level's grid.
func (w *World) paint() {
	g := w.levels[w.active]
	ts := w.cfg.Terrain.TileSize
	for y := range g.H {
		for x := range g.W {
			c := g.At(x, y)
			pos := CellCenter(x, y, ts)
			if status, ok := c.TileStatus(); ok {
				w.mustSpawn(Attrs{Pos: pos}, &Tile{Status: status})
				continue
			}
			switch {
			case c.IsMarker():
				w.mustSpawn(Attrs{Pos: pos}, &Number{Label: rune(c)})
			case c == CellTurret:
				turret := w.mustSpawn(Attrs{Pos: pos, Static: true}, &Turret{})
				w.mustSpawn(Attrs{Pos: pos, Boss: turret}, &Cannon{})
			case c == CellGuardian:
				w.mustSpawn(Attrs{Pos: pos}, &Guardian{})
			}
		}
	}
}

// unpaint silently removes the level's entities. Enemy cannons follow their
// mounts through the boss rule on the next tick.
func (w *World) unpaint() {
	for _, e := range w.Entities() {
		switch e.kind {
		case KindTile, KindNumber, KindTurret, KindGuardian:
			w.discard(e)
		}
	}
}

// ChangeLevel repaints the world from the stored grid of slot n.
// The grids themselves are never regenerated here.
func (w *World) ChangeLevel(n int) error {
	if n < 0 || n >= LevelCount {
		return fmt.Errorf("sim: level %d out of range [0, %d)", n, LevelCount)
	}
	w.unpaint()
	w.active = n
	w.stats.MaxLevel = max(w.stats.MaxLevel, n)
	w.paint()
	w.log.Debug("level changed", "level", n)
	return nil
}

// GoToTeleport moves the player onto the marker with the given label.
func (w *World) GoToTeleport(label rune) bool {
	p, ok := w.Player()
	if !ok {
		return false
	}
	for _, e := range w.Entities() {
		if n, ok := e.Variant.(*Number); ok && n.Label == label {
			p.Pos = e.Pos
			if pl, ok := p.Variant.(*Player); ok {
				pl.OldPos = e.Pos
			}
			w.follow(p)
			w.log.Debug("teleported", "label", string(label), "level", w.active)
			return true
		}
	}
	return false
}

// Regenerate builds fresh grids for every slot from the current config,
// repaints the active one and puts the ship back in the spawn clearing.
func (w *World) Regenerate() {
	w.unpaint()
	w.generateLevels()
	w.paint()
	if p, ok := w.Player(); ok {
		p.Pos = V(w.cfg.World.Width/2, -w.cfg.World.Height/2)
		p.Vel = Vec2{}
		if pl, ok := p.Variant.(*Player); ok {
			pl.OldPos = p.Pos
		}
		w.follow(p)
	}
	w.log.Debug("terrain regenerated", "tile_size", w.cfg.Terrain.TileSize, "level", w.active)
}
