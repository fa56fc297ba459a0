// Package cave adapts the cave simulation to the platform's Game interface.
// It turns input frames into intents, projects the world onto a character
// screen, and decides when a run is over and what it scored.
package cave

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
	"github.com/vovakirdan/tui-cave/internal/registry"
)

// Afterglow is how long the wreck keeps burning before the run ends.
const Afterglow = 3 * time.Second

// Game implements registry.Game for the cave shooter.
type Game struct {
	id    string
	title string

	base    config.Cave
	logger  *log.Logger
	runtime core.RuntimeConfig

	world    *sim.World
	view     view
	paused   bool
	gameOver bool
	dead     time.Duration
	fps      float64
}

// New creates a cave game using the default configuration.
func New() *Game {
	return &Game{
		id:     "cave",
		title:  "Cave",
		base:   config.DefaultCave(),
		logger: log.New(io.Discard),
	}
}

// NewTruce creates a cave game where enemies start out holding fire.
func NewTruce() *Game {
	g := New()
	g.id = "cave_truce"
	g.title = "Cave (truce)"
	g.base.Peace = true
	return g
}

func init() {
	registry.Register("cave", func() registry.Game { return New() })
	registry.Register("cave_truce", func() registry.Game { return NewTruce() })
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// SetLogger routes simulation debug events to l. It takes effect on the next Reset.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset starts a new run from the base configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.paused = false
	g.gameOver = false
	g.dead = 0
	g.fps = float64(max(cfg.TickRate, 1))

	w, err := sim.NewWorld(g.base, cfg.Seed, sim.WithLogger(g.logger))
	if err != nil {
		g.logger.Error("invalid cave config, using defaults", "err", err)
		g.base = config.DefaultCave()
		w, err = sim.NewWorld(g.base, cfg.Seed, sim.WithLogger(g.logger))
		if err != nil {
			panic(fmt.Sprintf("cave: default config rejected: %v", err))
		}
	}
	g.world = w
	g.view = newView(g.base, cfg.ScreenW, cfg.ScreenH)
	g.logger.Debug("run started", "game", g.id, "seed", cfg.Seed)
}

// Step advances the world by the wall-clock time since the last frame.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.world == nil {
		g.Reset(g.runtime)
	}
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if s := dt.Seconds(); s > 0 {
		g.fps = 0.9*g.fps + 0.1/s
	}

	info := g.world.Step(g.intent(in), dt.Seconds())

	if !info.PlayerAlive {
		g.dead += dt
		if g.dead >= Afterglow {
			g.gameOver = true
			stats := g.world.Stats()
			g.logger.Info("run over", "game", g.id, "score", g.score(),
				"level", stats.MaxLevel+1, "time", stats.Time)
		}
	}

	sounds := make([]string, len(info.Sounds))
	for i, s := range info.Sounds {
		sounds[i] = string(s)
	}
	return core.StepResult{State: g.State(), Sounds: sounds}
}

// intent translates an input frame into the world's vocabulary.
func (g *Game) intent(in core.InputFrame) sim.Intent {
	it := sim.Intent{
		Thrust:      in.Has(core.ActionThrust),
		Brake:       in.Has(core.ActionBrake),
		RotateLeft:  in.Has(core.ActionRotateLeft),
		RotateRight: in.Has(core.ActionRotateRight),
		Fire:        in.Has(core.ActionFire),
		Damp:        in.Has(core.ActionDamp),
		Stop:        in.Has(core.ActionStop),
		ToggleTruce: in.Has(core.ActionTruce),
		Regenerate:  in.Has(core.ActionRegenerate),
	}
	if in.Has(core.ActionNudgeLeft) {
		it.NudgeX--
	}
	if in.Has(core.ActionNudgeRight) {
		it.NudgeX++
	}
	if in.Has(core.ActionNudgeUp) {
		it.NudgeY++
	}
	if in.Has(core.ActionNudgeDown) {
		it.NudgeY--
	}
	for n, a := range []core.Action{core.ActionLevel1, core.ActionLevel2, core.ActionLevel3} {
		if in.Has(a) {
			it.Level = n + 1
		}
	}
	if in.HasPointer {
		it.Aim = g.view.toWorld(in.PointerX, in.PointerY)
		it.HasAim = true
	}
	return it
}

// State reports score, level and run status.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if g.world != nil {
		st.Score = g.score()
		st.Level = g.world.ActiveLevel()
	}
	return st
}

func (g *Game) score() int {
	return Score(g.world.Stats())
}

// Score counts destroyed tiles, ten per destroyed enemy and all gold earned.
// Spending gold in the shop does not lower it.
func Score(s sim.Stats) int {
	return s.TilesDestroyed + 10*s.EnemiesDestroyed + s.GoldEarned
}

// Stats returns the current run totals.
func (g *Game) Stats() sim.Stats {
	if g.world == nil {
		return sim.Stats{}
	}
	return g.world.Stats()
}

// World exposes the running simulation, nil before the first Reset.
func (g *Game) World() *sim.World {
	return g.world
}

// Config returns the configuration in effect, including gold earned this run.
func (g *Game) Config() config.Cave {
	if g.world != nil {
		return g.world.Config()
	}
	return g.base
}

// SetConfig replaces the configuration. A running world picks it up at the
// start of its next step; later runs start from it.
func (g *Game) SetConfig(cfg config.Cave) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("cave: %w", err)
	}
	g.base = cfg
	if g.world != nil {
		if err := g.world.SetConfig(cfg); err != nil {
			return fmt.Errorf("cave: %w", err)
		}
		g.view = newView(cfg, g.runtime.ScreenW, g.runtime.ScreenH)
	}
	return nil
}

// Notify floats a message above the ship, or the middle of the world when
// there is no ship.
func (g *Game) Notify(text string, c core.Color) {
	if g.world == nil {
		return
	}
	cfg := g.world.Config()
	pos := sim.V(cfg.World.Width/2, -cfg.World.Height/2)
	if p, ok := g.world.Player(); ok {
		pos = p.Pos.Add(sim.V(0, 40))
	}
	g.world.Say(pos, text, c, 0)
}

var (
	_ registry.Game         = (*Game)(nil)
	_ registry.Configurable = (*Game)(nil)
)
