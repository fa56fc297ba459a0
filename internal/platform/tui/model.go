package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
	"github.com/vovakirdan/tui-cave/internal/registry"
	"github.com/vovakirdan/tui-cave/internal/storage"
)

// runStats is implemented by games that can summarise a finished run.
type runStats interface {
	Stats() sim.Stats
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	sink       sim.Sink
	watcher    *config.Watcher
	logger     *log.Logger
	player     string
	lastTick   time.Time
	settings   *SettingsModel
	showHelp   bool
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithSink plays the game's sound cues on s.
func WithSink(s sim.Sink) Option {
	return func(m *Model) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithWatcher applies config reloads from w while the game runs.
func WithWatcher(w *config.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithLogger sets the logger for run events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlayer names the player in saved runs.
func WithPlayer(name string) Option {
	return func(m *Model) { m.player = name }
}

// Embedded keeps the program running when the player backs out, so a parent
// model can show its menu again.
func Embedded() Option {
	return func(m *Model) { m.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		sink:       sim.NopSink{},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the game, the tick loop and the config subscription.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), watchConfig(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.settings != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m.updateSettings(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigMsg:
		m.applyConfig(msg.Config)
		return m, watchConfig(m.watcher)

	case ConfigErrMsg:
		m.logger.Warn("config reload failed", "err", msg.Err)
		if n, ok := m.game.(Shop); ok {
			n.Notify("config rejected", core.ColorRed)
		}
		return m, watchConfig(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys
	switch {
	case msg.String() == "?":
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, keys.Settings):
		if shop, ok := m.game.(Shop); ok && !m.gameState.GameOver {
			s := NewSettingsModel(shop, m.config.ScreenW, m.config.ScreenH)
			m.settings = &s
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// updateSettings routes keys to the settings screen while it is open.
func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	s, ok := next.(SettingsModel)
	if !ok {
		m.settings = nil
		return m, cmd
	}

	switch {
	case s.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case s.Done():
		m.settings = nil
		// Time spent shopping does not count as frame time.
		m.lastTick = time.Time{}
	default:
		m.settings = &s
	}
	return m, cmd
}

// handleResize processes window resize events. The world is independent of
// the screen size, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if m.settings != nil {
		next, _ := m.settings.Update(msg)
		if s, ok := next.(SettingsModel); ok {
			m.settings = &s
		}
	}
	return m, nil
}

// frameTime returns the wall-clock time since the previous tick.
func (m *Model) frameTime(now time.Time) time.Duration {
	dt := time.Second / time.Duration(max(m.config.TickRate, 1))
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now
	return max(dt, 0)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.settings != nil {
		m.lastTick = time.Time{}
		return m, tickCmd(m.config.TickRate)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.lastTick = time.Time{}
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame, m.frameTime(now))
	m.gameState = result.State
	for _, s := range result.Sounds {
		m.sink.Play(sim.Sound(s))
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// applyConfig hands a reloaded config to the game. Gold earned this run is
// kept; the file only sets what the run starts with.
func (m *Model) applyConfig(cfg config.Cave) {
	c, ok := m.game.(registry.Configurable)
	if !ok {
		return
	}
	cfg.Economy.Gold = c.Config().Economy.Gold
	if err := c.SetConfig(cfg); err != nil {
		m.logger.Warn("config reload rejected", "err", err)
		return
	}
	m.logger.Info("config reloaded", "game", m.game.ID())
	if n, ok := m.game.(Shop); ok {
		n.Notify("config reloaded", core.ColorCyan)
	}
}

// RunRecord summarises the finished run for the scoreboard.
func (m Model) RunRecord() storage.RunRecord {
	r := storage.RunRecord{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level + 1,
		Seed:   m.config.Seed,
	}
	if rs, ok := m.game.(runStats); ok {
		st := rs.Stats()
		r.Level = st.MaxLevel + 1
		r.Tiles = st.TilesDestroyed
		r.Enemies = st.EnemiesDestroyed
		r.Gold = st.GoldEarned
		r.Duration = time.Duration(st.Time * float64(time.Second))
	}
	return r
}

func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	r := m.RunRecord()
	if _, err := m.store.SaveRun(r); err != nil {
		m.logger.Error("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "game", r.GameID, "score", r.Score, "level", r.Level)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".cave", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.settings != nil {
		return m.settings.View()
	}

	m.game.Render(m.screen)
	if m.showHelp {
		m.drawHelp()
	}
	return RenderScreen(m.screen)
}

// drawHelp overlays the full key list on the bottom rows.
func (m Model) drawHelp() {
	groups := m.keyMapper.Keys.FullHelp()
	top := m.screen.Height() - len(groups)
	for i, group := range groups {
		line := ""
		for _, b := range group {
			h := b.Help()
			line += fmt.Sprintf("%s %s  ", h.Key, h.Desc)
		}
		m.screen.DrawHLine(0, top+i, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawText(0, top+i, line, core.ColorGray)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run plays game until the player quits or backs out.
// Returns true if the player wants the menu again.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
