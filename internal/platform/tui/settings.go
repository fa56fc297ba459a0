package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cave/internal/config"
	"github.com/vovakirdan/tui-cave/internal/core"
	"github.com/vovakirdan/tui-cave/internal/registry"
)

// Shop is the part of a game the settings screen edits.
type Shop interface {
	registry.Configurable
	Notify(text string, c core.Color)
}

type settingKind int

const (
	settingUpgrade settingKind = iota
	settingAngle
	settingTileSize
	settingDensity
)

type setting struct {
	kind    settingKind
	upgrade config.Upgrade
	knob    config.Knob
}

// settingsItems lists the ship shop first, then the cave knobs.
var settingsItems = []setting{
	{kind: settingUpgrade, upgrade: config.UpgradeHitpoints},
	{kind: settingUpgrade, upgrade: config.UpgradeSpeed},
	{kind: settingUpgrade, upgrade: config.UpgradeRockets},
	{kind: settingUpgrade, upgrade: config.UpgradeRocketSpeed},
	{kind: settingAngle},
	{kind: settingTileSize},
	{kind: settingDensity, knob: config.KnobRooms},
	{kind: settingDensity, knob: config.KnobHoles},
	{kind: settingDensity, knob: config.KnobEnemies},
}

// shipItems is the number of entries in the ship section.
const shipItems = 5

// SettingsModel is the player and level settings screen. It edits a working
// copy of the config and hands every accepted change back to the game.
type SettingsModel struct {
	game      Shop
	cfg       config.Cave
	cursor    int
	keyMapper *KeyMapper
	help      help.Model
	message   string
	failed    bool
	width     int
	height    int
	done      bool
	quitting  bool
}

// NewSettingsModel opens the settings screen on game's current config.
func NewSettingsModel(game Shop, width, height int) SettingsModel {
	m := SettingsModel{
		game:      game,
		cfg:       game.Config(),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	m.quote()
	return m
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionBack:
		m.done = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.quote()
		}
	case MenuActionDown:
		if m.cursor < len(settingsItems)-1 {
			m.cursor++
			m.quote()
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight, MenuActionSelect:
		m.adjust(1)
	}
	return m, nil
}

// quote shows the price of the highlighted upgrade in the status line.
func (m *SettingsModel) quote() {
	if it := settingsItems[m.cursor]; it.kind == settingUpgrade {
		m.cfg.Quote(it.upgrade)
	}
}

// adjust buys or steps the highlighted item in direction dir.
func (m *SettingsModel) adjust(dir int) {
	it := settingsItems[m.cursor]
	next := m.cfg

	switch it.kind {
	case settingUpgrade:
		if dir < 0 {
			return
		}
		if err := next.Buy(it.upgrade); err != nil {
			if errors.Is(err, config.ErrNotEnoughGold) {
				m.fail(fmt.Sprintf("you need %d gold", config.UpgradePrice(it.upgrade)))
				return
			}
			m.fail(err.Error())
			return
		}
		m.commit(next, fmt.Sprintf("%s +1", it.upgrade))

	case settingAngle:
		next.AdjustShootingAngle(float64(dir * config.ShootingAngleStep))
		m.commit(next, fmt.Sprintf("shooting angle %.0f", next.Weapons.ShootingAngle))

	case settingTileSize:
		i := slices.Index(config.TileSizes, next.Terrain.TileSize)
		j := (i + dir + len(config.TileSizes)) % len(config.TileSizes)
		if i < 0 {
			j = 0
		}
		if err := next.SetTileSize(config.TileSizes[j]); err != nil {
			m.fail(fmt.Sprintf("tile size %d does not fit this world", config.TileSizes[j]))
			return
		}
		m.commit(next, fmt.Sprintf("tile size %d", next.Terrain.TileSize))

	case settingDensity:
		i := slices.Index(config.Densities, next.Density(it.knob))
		j := (i + dir + len(config.Densities)) % len(config.Densities)
		if i < 0 {
			j = 0
		}
		if err := next.SetDensity(it.knob, config.Densities[j]); err != nil {
			m.fail(err.Error())
			return
		}
		m.commit(next, fmt.Sprintf("%s %s", it.knob, next.Density(it.knob)))
	}
}

func (m *SettingsModel) commit(next config.Cave, notice string) {
	if err := m.game.SetConfig(next); err != nil {
		m.fail(err.Error())
		return
	}
	m.cfg = next
	m.message = notice
	m.failed = false
	m.game.Notify(notice, core.ColorGreen)
}

func (m *SettingsModel) fail(text string) {
	m.message = text
	m.failed = true
	m.game.Notify(text, core.ColorRed)
}

// label renders the highlighted value of an item.
func (m SettingsModel) label(it setting) string {
	switch it.kind {
	case settingUpgrade:
		var value string
		switch it.upgrade {
		case config.UpgradeHitpoints:
			value = fmt.Sprintf("%.0f", m.cfg.Player.Hitpoints)
		case config.UpgradeSpeed:
			value = fmt.Sprintf("%.0f", m.cfg.Player.Speed)
		case config.UpgradeRockets:
			value = fmt.Sprintf("%d", m.cfg.Weapons.Rockets)
		case config.UpgradeRocketSpeed:
			value = fmt.Sprintf("%.0f", m.cfg.Weapons.RocketSpeed)
		}
		return fmt.Sprintf("%-14s %6s   +1 for %d gold", it.upgrade, value, config.UpgradePrice(it.upgrade))
	case settingAngle:
		return fmt.Sprintf("%-14s %6.0f   ±%d", "shooting angle", m.cfg.Weapons.ShootingAngle, config.ShootingAngleStep)
	case settingTileSize:
		return fmt.Sprintf("%-14s %6d", "tile size", m.cfg.Terrain.TileSize)
	default:
		return fmt.Sprintf("%-14s %6s", it.knob, m.cfg.Density(it.knob))
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2)

	var b strings.Builder
	for i, it := range settingsItems {
		switch i {
		case 0:
			b.WriteString(sectionStyle.Render("ship"))
			b.WriteString("\n")
		case shipItems:
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("cave (regenerates terrain)"))
			b.WriteString("\n")
		}
		line := "  " + m.label(it)
		if i == m.cursor {
			line = selectedStyle.Render("> " + m.label(it))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	status := fmt.Sprintf("gold %d   price %d", m.cfg.Economy.Gold, m.cfg.Economy.Price)
	msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	if m.failed {
		msgStyle = msgStyle.Foreground(lipgloss.Color("1"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SETTINGS"),
		"",
		b.String(),
		status,
		msgStyle.Render(m.message),
	)

	view := lipgloss.JoinVertical(lipgloss.Center,
		boxStyle.Render(body),
		sectionStyle.Render(m.help.View(menuKeys)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

// Config returns the working copy, including every accepted change.
func (m SettingsModel) Config() config.Cave {
	return m.cfg
}

// Done returns true once the player leaves the settings screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
