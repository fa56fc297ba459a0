package tui

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
	"github.com/vovakirdan/tui-cave/internal/storage"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func quietCave() config.Cave {
	cfg := config.DefaultCave()
	cfg.Enemies.Density = config.DensityNone
	return cfg
}

func newTestModel(t *testing.T, opts ...Option) (Model, *cave.Game) {
	t.Helper()
	g := cave.New()
	if err := g.SetConfig(quietCave()); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42}, opts...)
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestModelFrameTime(t *testing.T) {
	m, _ := newTestModel(t)

	if got := m.frameTime(t0); got != time.Second/30 {
		t.Errorf("first frameTime() = %v, expected %v", got, time.Second/30)
	}
	if got := m.frameTime(t0.Add(100 * time.Millisecond)); got != 100*time.Millisecond {
		t.Errorf("frameTime() = %v, expected 100ms", got)
	}
	if got := m.frameTime(t0); got != 0 {
		t.Errorf("frameTime() going backwards = %v, expected 0", got)
	}
}

func TestModelForwardsSounds(t *testing.T) {
	rec := &sim.Recorder{}
	m, g := newTestModel(t, WithSink(rec))

	m = update(t, m, runeKey(' '))
	m = update(t, m, TickMsg(t0))

	if rec.Count(sim.SoundPlayerShoot) != 1 {
		t.Errorf("played %v, expected one %q", rec.Played, sim.SoundPlayerShoot)
	}
	if g.World().Tick() != 1 {
		t.Errorf("Tick() = %d, expected 1", g.World().Tick())
	}

	// Input is cleared between frames
	update(t, m, TickMsg(t0.Add(time.Second/30)))
	if rec.Count(sim.SoundPlayerShoot) != 1 {
		t.Errorf("fire repeated without a key press: %v", rec.Played)
	}
}

// finishRun kills the ship and ticks through the afterglow.
func finishRun(t *testing.T, m Model, g *cave.Game, start time.Time) Model {
	t.Helper()
	w := g.World()
	w.Kill(w.PlayerID())
	now := start
	for i := 0; i < 5 && !m.GameState().GameOver; i++ {
		now = now.Add(time.Second)
		m = update(t, m, TickMsg(now))
	}
	if !m.GameState().GameOver {
		t.Fatal("GameOver = false after the afterglow")
	}
	return m
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	g := cave.New()
	if err := g.SetConfig(quietCave()); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42}, WithPlayer("tester"))
	m.Init()

	w := g.World()
	p, _ := w.Player()
	pos := p.Pos.Add(sim.V(30, 0))
	if _, err := w.Spawn(sim.Attrs{Pos: pos, Static: true}, &sim.Turret{}); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if _, err := w.Spawn(sim.Attrs{Pos: pos, Boss: w.PlayerID()}, &sim.Rocket{}); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	m = update(t, m, TickMsg(t0))
	m = finishRun(t, m, g, t0)

	runs, err := store.TopRuns("cave", 10)
	if err != nil {
		t.Fatalf("TopRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("TopRuns() len = %d, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 15 || r.Enemies != 1 || r.Gold != 5 || r.Player != "tester" || r.Seed != 42 {
		t.Errorf("saved run = %+v, expected score 15, one kill, 5 gold by tester with seed 42", r)
	}

	// Further ticks do not save again
	update(t, m, TickMsg(t0.Add(10*time.Second)))
	runs, _ = store.TopRuns("cave", 10)
	if len(runs) != 1 {
		t.Errorf("TopRuns() len = %d after more ticks, expected 1", len(runs))
	}
}

func TestModelRestart(t *testing.T) {
	m, g := newTestModel(t)
	m = update(t, m, TickMsg(t0))
	m = finishRun(t, m, g, t0)
	old := g.World()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(t0.Add(time.Minute)))

	if m.GameState().GameOver {
		t.Error("GameOver = true after restart")
	}
	if g.World() == old {
		t.Error("restart kept the old world")
	}
	if _, ok := g.World().Player(); !ok {
		t.Error("no ship after restart")
	}
}

func TestModelConfigReloadKeepsGold(t *testing.T) {
	m, g := newTestModel(t)
	cfg := g.Config()
	cfg.Economy.Gold = 7
	if err := g.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	m = update(t, m, TickMsg(t0))

	reloaded := quietCave()
	reloaded.Weapons.Rockets = 3
	m = update(t, m, ConfigMsg{Config: reloaded})
	update(t, m, TickMsg(t0.Add(time.Second/30)))

	got := g.Config()
	if got.Weapons.Rockets != 3 {
		t.Errorf("rockets = %d after reload, expected 3", got.Weapons.Rockets)
	}
	if got.Economy.Gold != 7 {
		t.Errorf("gold = %d after reload, expected 7", got.Economy.Gold)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd == nil {
		t.Error("esc should leave a standalone game")
	}

	m, _ = newTestModel(t, Embedded())
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd != nil {
		t.Error("esc in an embedded game should only flag the menu")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestModelSettingsShop(t *testing.T) {
	m, g := newTestModel(t)

	m = update(t, m, runeKey('o'))
	if m.settings == nil {
		t.Fatal("settings did not open")
	}
	if !strings.Contains(m.View(), "SETTINGS") {
		t.Error("View() does not show the settings screen")
	}

	// Ticks are held while shopping
	m = update(t, m, TickMsg(t0))
	if g.World().Tick() != 0 {
		t.Errorf("Tick() = %d while shopping, expected 0", g.World().Tick())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "you need 15 gold") {
		t.Error("buying without gold did not complain")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings != nil {
		t.Fatal("esc did not close the settings")
	}
	if m.BackToMenu() {
		t.Error("closing the settings left the game")
	}

	cfg := g.Config()
	cfg.Economy.Gold = 20
	if err := g.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	m = update(t, m, TickMsg(t0))

	m = update(t, m, runeKey('o'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	update(t, m, TickMsg(t0.Add(time.Second/30)))

	got := g.Config()
	if got.Player.Hitpoints != 1001 || got.Economy.Gold != 5 {
		t.Errorf("after buying hitpoints: hp=%v gold=%d, expected 1001 and 5", got.Player.Hitpoints, got.Economy.Gold)
	}
}

func TestSettingsKnobs(t *testing.T) {
	_, g := newTestModel(t)

	tests := []struct {
		name   string
		cursor int
		key    tea.KeyMsg
		check  func(config.Cave) bool
	}{
		{"angle down", 4, tea.KeyMsg{Type: tea.KeyLeft}, func(c config.Cave) bool { return c.Weapons.ShootingAngle == 15 }},
		{"angle up", 4, tea.KeyMsg{Type: tea.KeyRight}, func(c config.Cave) bool { return c.Weapons.ShootingAngle == 25 }},
		{"tile size up", 5, tea.KeyMsg{Type: tea.KeyRight}, func(c config.Cave) bool { return c.Terrain.TileSize == 25 }},
		{"tile size down", 5, tea.KeyMsg{Type: tea.KeyLeft}, func(c config.Cave) bool { return c.Terrain.TileSize == 15 }},
		{"rooms up", 6, tea.KeyMsg{Type: tea.KeyRight}, func(c config.Cave) bool { return c.Terrain.Rooms == config.DensityLots }},
		{"holes down", 7, tea.KeyMsg{Type: tea.KeyLeft}, func(c config.Cave) bool { return c.Terrain.Holes == config.DensityFew }},
		{"enemies up from none", 8, tea.KeyMsg{Type: tea.KeyRight}, func(c config.Cave) bool { return c.Enemies.Density == config.DensityFew }},
		{"upgrades are not sold back", 2, tea.KeyMsg{Type: tea.KeyLeft}, func(c config.Cave) bool { return c.Weapons.Rockets == 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettingsModel(g, 80, 24)
			var model tea.Model = s
			for range tt.cursor {
				model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
			}
			model, _ = model.Update(tt.key)

			cfg := model.(SettingsModel).Config()
			if !tt.check(cfg) {
				t.Errorf("config after %q on item %d = %+v, unexpected", tt.key.String(), tt.cursor, cfg)
			}
		})
	}
}

func TestSettingsQuotesHighlightedPrice(t *testing.T) {
	_, g := newTestModel(t)
	var model tea.Model = NewSettingsModel(g, 80, 24)

	prices := []int{15, 5, 1, 5}
	for i, want := range prices {
		if got := model.(SettingsModel).Config().Economy.Price; got != want {
			t.Errorf("price at item %d = %d, expected %d", i, got, want)
		}
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
}

func TestModelRunRecord(t *testing.T) {
	m, _ := newTestModel(t, WithPlayer("bob"))
	m = update(t, m, TickMsg(t0))

	r := m.RunRecord()
	if r.GameID != "cave" || r.Player != "bob" || r.Level != 1 || r.Seed != 42 {
		t.Errorf("RunRecord() = %+v, expected cave by bob on level 1 with seed 42", r)
	}
	if r.Duration <= 0 {
		t.Errorf("RunRecord().Duration = %v, expected the time flown", r.Duration)
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runeKey('?'))
	if !strings.Contains(m.View(), "thrust") {
		t.Error("help overlay not drawn")
	}
	if !slices.Contains(m.keyMapper.Keys.Fire.Keys(), "tab") {
		t.Error("fire is not bound to tab")
	}
}
