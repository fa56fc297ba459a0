package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-cave/internal/config"
)

func filledGrid(w, h int) Grid {
	g := NewGrid(w, h)
	for y := range h {
		for x := range w {
			g.Set(x, y, CellNormal)
		}
	}
	return g
}

func TestRectangleHole(t *testing.T) {
	g := filledGrid(20, 20)
	g.RectangleHole(3, 4, 5, 6)

	for y := range g.H {
		for x := range g.W {
			inside := x >= 3 && x < 8 && y >= 4 && y < 10
			want := CellNormal
			if inside {
				want = CellEmpty
			}
			if got := g.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %q, expected %q", x, y, got, want)
			}
		}
	}
	if got := g.Count(CellEmpty); got != 30 {
		t.Errorf("Count(empty) = %d, expected 30", got)
	}
}

func TestRectangleHoleClips(t *testing.T) {
	g := filledGrid(10, 10)
	g.RectangleHole(-2, -2, 4, 4)
	g.RectangleHole(8, 8, 10, 10)

	tests := []struct {
		x, y int
		want Cell
	}{
		{0, 0, CellEmpty},
		{1, 1, CellEmpty},
		{2, 2, CellNormal},
		{7, 7, CellNormal},
		{8, 8, CellEmpty},
		{9, 9, CellEmpty},
	}
	for _, tt := range tests {
		if got := g.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRoundHole(t *testing.T) {
	g := filledGrid(20, 20)
	g.RoundHole(10, 10, 3)

	tests := []struct {
		name string
		x, y int
		want Cell
	}{
		{"centre", 10, 10, CellEmpty},
		{"two above", 10, 8, CellEmpty},
		{"one diagonal", 11, 11, CellEmpty},
		{"box edge excluded", 13, 10, CellNormal},
		{"corner too far", 7, 7, CellNormal},
		{"outside box", 15, 10, CellNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(-1, 0, CellNormal)
	g.Set(3, 3, CellNormal)
	if got := g.At(5, 5); got != CellEmpty {
		t.Errorf("At(5, 5) = %q, expected empty", got)
	}
	if got := g.Count(CellEmpty); got != 9 {
		t.Errorf("Count(empty) = %d, expected 9", got)
	}
	if got := g.String(); got != "...\n...\n..." {
		t.Errorf("String() = %q, expected three empty rows", got)
	}
}

func TestGenerateSlots(t *testing.T) {
	cfg := config.DefaultCave()
	rng := NewRNG(99)

	for slot := range LevelCount {
		p := ParamsFor(cfg, slot)
		g := Generate(p, rng)

		xt, yt := p.GridSize()
		if g.W != xt || g.H != yt {
			t.Fatalf("slot %d: grid %dx%d, expected %dx%d", slot, g.W, g.H, xt, yt)
		}
		if _, ok := g.At(xt/2, yt/2).TileStatus(); ok {
			t.Errorf("slot %d: spawn cell holds a tile", slot)
		}

		markers := map[int][]Cell{
			0: {Cell(MarkerSourceA)},
			1: {Cell(MarkerDestA)},
			2: {Cell(MarkerDestB)},
		}
		for _, m := range markers[slot] {
			if got := g.Count(m); got != 1 {
				t.Errorf("slot %d: Count(%q) = %d, expected 1", slot, m, got)
			}
		}
		if slot != 0 && g.Count(Cell(MarkerSourceA)) != 0 {
			t.Errorf("slot %d: unexpected source marker A", slot)
		}
		if slot != 1 && g.Count(Cell(MarkerSourceB)) != 0 {
			t.Errorf("slot %d: unexpected source marker B", slot)
		}

		for y := range g.H {
			for x := range g.W {
				c := g.At(x, y)
				if c != CellTurret && c != CellGuardian {
					continue
				}
				if d := math.Hypot(float64(x-xt/2), float64(y-yt/2)); d < 6 {
					t.Errorf("slot %d: enemy %q at distance %.1f from spawn", slot, c, d)
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := ParamsFor(config.DefaultCave(), 0)
	a := Generate(p, NewRNG(5))
	b := Generate(p, NewRNG(5))
	c := Generate(p, NewRNG(6))

	if !a.Equal(b) {
		t.Error("same seed produced different grids")
	}
	if a.Equal(c) {
		t.Error("different seeds produced identical grids")
	}
}

func TestGenerateWithoutRoomsHasNoEnemies(t *testing.T) {
	cfg := config.DefaultCave()
	cfg.Terrain.Rooms = config.DensityNone
	cfg.Enemies.Density = config.DensityLots

	g := Generate(ParamsFor(cfg, 0), NewRNG(1))
	if n := g.Count(CellTurret) + g.Count(CellGuardian); n != 0 {
		t.Errorf("enemy cells = %d, expected 0 without rooms", n)
	}
}

func TestCellCenter(t *testing.T) {
	tests := []struct {
		x, y, ts int
		want     Vec2
	}{
		{0, 0, 20, V(10, -30)},
		{3, 2, 20, V(70, -70)},
		{1, 1, 5, V(15, -35)},
	}
	for _, tt := range tests {
		if got := CellCenter(tt.x, tt.y, tt.ts); got != tt.want {
			t.Errorf("CellCenter(%d, %d, %d) = %v, expected %v", tt.x, tt.y, tt.ts, got, tt.want)
		}
	}
}

func TestPaintMatchesGrid(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 11)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	g := w.Level(0)
	want := g.Count(CellNormal) + g.Count(CellGolden) + g.Count(CellHealing)
	if got := len(w.kind(KindTile)); got != want {
		t.Errorf("tile entities = %d, expected %d", got, want)
	}
	if got := len(w.kind(KindTurret)); got != g.Count(CellTurret) {
		t.Errorf("turrets = %d, expected %d", got, g.Count(CellTurret))
	}
	if got := len(w.kind(KindGuardian)); got != g.Count(CellGuardian) {
		t.Errorf("guardians = %d, expected %d", got, g.Count(CellGuardian))
	}
}

func TestLevelRoundTrip(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 21)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	before := w.Level(0)
	tiles := len(w.kind(KindTile))

	if err := w.ChangeLevel(1); err != nil {
		t.Fatalf("ChangeLevel(1) error = %v", err)
	}
	if w.ActiveLevel() != 1 {
		t.Errorf("ActiveLevel() = %d, expected 1", w.ActiveLevel())
	}
	if err := w.ChangeLevel(0); err != nil {
		t.Fatalf("ChangeLevel(0) error = %v", err)
	}

	if !w.Level(0).Equal(before) {
		t.Error("level 0 grid changed after a round trip")
	}
	if got := len(w.kind(KindTile)); got != tiles {
		t.Errorf("tiles after round trip = %d, expected %d", got, tiles)
	}
	if w.Stats().MaxLevel != 1 {
		t.Errorf("Stats().MaxLevel = %d, expected 1", w.Stats().MaxLevel)
	}
}

func TestChangeLevelRejectsOutOfRange(t *testing.T) {
	w := newArena(t)
	for _, n := range []int{-1, LevelCount, 10} {
		if err := w.ChangeLevel(n); err == nil {
			t.Errorf("ChangeLevel(%d) error = nil, expected an error", n)
		}
	}
	if w.ActiveLevel() != 0 {
		t.Errorf("ActiveLevel() = %d, expected 0", w.ActiveLevel())
	}
}

func TestLevelOutOfRangeIsEmpty(t *testing.T) {
	w := newArena(t)
	if g := w.Level(LevelCount); g.W != 0 || g.H != 0 {
		t.Errorf("Level(%d) = %dx%d, expected empty", LevelCount, g.W, g.H)
	}
}

func TestGoToTeleport(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 8)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	if err := w.ChangeLevel(1); err != nil {
		t.Fatalf("ChangeLevel(1) error = %v", err)
	}
	if !w.GoToTeleport(MarkerDestA) {
		t.Fatal("GoToTeleport('a') = false, expected true")
	}

	p, _ := w.Player()
	x, y, ok := w.Level(1).Find(Cell(MarkerDestA))
	if !ok {
		t.Fatal("level 1 has no destination marker")
	}
	if want := CellCenter(x, y, w.Config().Terrain.TileSize); p.Pos != want {
		t.Errorf("player pos = %v, expected %v", p.Pos, want)
	}
	if w.GoToTeleport('z') {
		t.Error("GoToTeleport('z') = true, expected false")
	}
}

func TestSourceMarkerTeleports(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 8)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	x, y, ok := w.Level(0).Find(Cell(MarkerSourceA))
	if !ok {
		t.Fatal("level 0 has no source marker")
	}
	p, _ := w.Player()
	p.Pos = CellCenter(x, y, w.Config().Terrain.TileSize)
	p.Variant.(*Player).OldPos = p.Pos

	w.resolver.Resolve()

	if w.ActiveLevel() != 1 {
		t.Fatalf("ActiveLevel() = %d, expected 1", w.ActiveLevel())
	}
	dx, dy, _ := w.Level(1).Find(Cell(MarkerDestA))
	if want := CellCenter(dx, dy, w.Config().Terrain.TileSize); p.Pos != want {
		t.Errorf("player pos = %v, expected the destination marker at %v", p.Pos, want)
	}
}

func TestTeleportCarriesCannon(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 8)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	x, y, ok := w.Level(0).Find(Cell(MarkerSourceA))
	if !ok {
		t.Fatal("level 0 has no source marker")
	}
	p, _ := w.Player()
	p.Pos = CellCenter(x, y, w.Config().Terrain.TileSize)
	p.Vel = Vec2{}
	p.Variant.(*Player).OldPos = p.Pos

	w.Step(Intent{}, 0.001)

	if w.ActiveLevel() != 1 {
		t.Fatalf("ActiveLevel() = %d, expected 1", w.ActiveLevel())
	}
	c, ok := w.Lookup(w.CannonID())
	if !ok {
		t.Fatal("cannon gone after teleport")
	}
	if c.Pos != p.Pos {
		t.Errorf("cannon pos = %v, expected %v", c.Pos, p.Pos)
	}
}

func TestRegenerateResetsPlayer(t *testing.T) {
	w, err := NewWorld(config.DefaultCave(), 4)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	before := w.Level(0)
	p, _ := w.Player()
	p.Pos = V(100, -100)
	p.Vel = V(5, 5)

	w.Step(Intent{Regenerate: true}, 0)

	if w.Level(0).Equal(before) {
		t.Error("Regenerate kept the same grid")
	}
	if p.Vel.X != 0 {
		t.Errorf("player vel = %v, expected horizontal speed reset", p.Vel)
	}
	if c, _ := w.Lookup(w.CannonID()); c.Pos != p.Pos {
		t.Errorf("cannon pos = %v, expected %v", c.Pos, p.Pos)
	}
}
