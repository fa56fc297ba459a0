// Package desktop runs the cave in a window with ebiten. It drives the
// simulation directly, one world step per ebiten tick.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/games/cave"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
	"github.com/vovakirdan/tui-cave/internal/storage"
)

// GameID is the scoreboard id for windowed runs.
const GameID = "cave_window"

// Viewer implements ebiten.Game around a sim.World.
type Viewer struct {
	cfg    config.Cave
	seed   int64
	world  *sim.World
	input  Input
	sink   sim.Sink
	logger *log.Logger
	store  *storage.Store
	player string

	face    text.Face
	pauseUI *ebitenui.UI

	paused   bool
	gameOver bool
	dead     time.Duration
	saved    bool
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithSink plays the world's audio cues through s.
func WithSink(s sim.Sink) Option {
	return func(v *Viewer) {
		if s != nil {
			v.sink = s
		}
	}
}

// WithLogger sets the logger for run events.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithStore records finished runs in s.
func WithStore(s *storage.Store) Option {
	return func(v *Viewer) { v.store = s }
}

// WithInput replaces the keyboard and mouse.
func WithInput(in Input) Option {
	return func(v *Viewer) { v.input = in }
}

// NewViewer builds a viewer and its first world. A zero seed picks one from
// the clock.
func NewViewer(cfg config.Cave, seed int64, opts ...Option) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		seed:   seed,
		input:  ebitenInput{},
		sink:   sim.NopSink{},
		logger: log.New(io.Discard),
		player: "local",
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.seed == 0 {
		v.seed = time.Now().UnixNano()
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	v.pauseUI = newPauseUI(v.face)
	return v, nil
}

func (v *Viewer) reset() error {
	w, err := sim.NewWorld(v.cfg, v.seed, sim.WithLogger(v.logger), sim.WithSink(v.sink))
	if err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	v.world = w
	v.paused = false
	v.gameOver = false
	v.dead = 0
	v.saved = false
	v.logger.Debug("run started", "game", GameID, "seed", v.seed)
	return nil
}

// Update runs one simulation step at the configured tick rate.
func (v *Viewer) Update() error {
	intent, c := readIntent(v.input)
	if c.quit {
		return ebiten.Termination
	}
	if v.gameOver {
		if c.restart {
			v.seed = time.Now().UnixNano()
			return v.reset()
		}
		return nil
	}
	if c.pause {
		v.paused = !v.paused
	}
	if v.paused {
		v.pauseUI.Update()
		return nil
	}

	dt := time.Second / time.Duration(max(v.cfg.World.FPS, 1))
	info := v.world.Step(intent, dt.Seconds())
	if !info.PlayerAlive {
		v.dead += dt
		if v.dead >= cave.Afterglow {
			v.gameOver = true
			v.saveRun()
		}
	}
	return nil
}

func (v *Viewer) score() int {
	return cave.Score(v.world.Stats())
}

// RunRecord summarises the current run for the scoreboard.
func (v *Viewer) RunRecord() storage.RunRecord {
	st := v.world.Stats()
	return storage.RunRecord{
		GameID:   GameID,
		Player:   v.player,
		Score:    cave.Score(st),
		Level:    st.MaxLevel + 1,
		Tiles:    st.TilesDestroyed,
		Enemies:  st.EnemiesDestroyed,
		Gold:     st.GoldEarned,
		Duration: time.Duration(st.Time * float64(time.Second)),
		Seed:     v.seed,
	}
}

func (v *Viewer) saveRun() {
	r := v.RunRecord()
	v.logger.Info("run over", "game", GameID, "score", r.Score, "level", r.Level)
	if v.saved || v.store == nil || r.Score <= 0 {
		return
	}
	v.saved = true
	if _, err := v.store.SaveRun(r); err != nil {
		v.logger.Error("could not save run", "err", err)
	}
}

// Draw paints the world back to front, then the HUD and overlays.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	for _, e := range v.world.DrawList() {
		v.drawEntity(screen, e)
	}
	v.drawHUD(screen)

	switch {
	case v.gameOver:
		v.drawMessage(screen, "GAME OVER", fmt.Sprintf("Score: %d  |  Press Enter to restart", v.score()))
	case v.paused:
		v.pauseUI.Draw(screen)
	}
}

// Layout keeps one pixel per world unit.
func (v *Viewer) Layout(_, _ int) (int, int) {
	cfg := v.world.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

// newPauseUI builds a centered "Paused" panel.
func newPauseUI(face text.Face) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
	title := widget.NewText(widget.TextOpts.Text("Paused", &face, white), widget.TextOpts.WidgetOpts(center))
	hint := widget.NewText(widget.TextOpts.Text("P resume   Esc quit", &face, white), widget.TextOpts.WidgetOpts(center))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(hint)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// Run opens a window and plays until it is closed or Esc is pressed.
func Run(cfg config.Cave, seed int64, opts ...Option) error {
	v, err := NewViewer(cfg, seed, opts...)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("Cave")
	ebiten.SetTPS(max(cfg.World.FPS, 1))
	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
