package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cave/internal/core"
)

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Thrust      key.Binding
	Brake       key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Fire        key.Binding
	NudgeUp     key.Binding
	NudgeDown   key.Binding
	NudgeLeft   key.Binding
	NudgeRight  key.Binding
	Damp        key.Binding
	Stop        key.Binding
	Level1      key.Binding
	Level2      key.Binding
	Level3      key.Binding
	Truce       key.Binding
	Regenerate  key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Settings    key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Thrust, k.RotateLeft, k.RotateRight, k.Fire, k.Settings, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Thrust, k.Brake, k.RotateLeft, k.RotateRight, k.Fire},
		{k.NudgeUp, k.NudgeDown, k.NudgeLeft, k.NudgeRight, k.Damp, k.Stop},
		{k.Level1, k.Level2, k.Level3, k.Truce, k.Regenerate},
		{k.Pause, k.Restart, k.Settings, k.Screenshot, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Thrust:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "thrust")),
		Brake:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "brake")),
		RotateLeft:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "rotate left")),
		RotateRight: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "rotate right")),
		Fire:        key.NewBinding(key.WithKeys(" ", "space", "tab"), key.WithHelp("space/tab", "fire")),
		NudgeUp:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "nudge up")),
		NudgeDown:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "nudge down")),
		NudgeLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "nudge left")),
		NudgeRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "nudge right")),
		Damp:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "damp")),
		Stop:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "full stop")),
		Level1:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "level 1")),
		Level2:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "level 2")),
		Level3:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "level 3")),
		Truce:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "truce")),
		Regenerate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new cave")),
		Pause:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restart")),
		Settings:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "shop")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys    GameKeyMap
	actions []boundAction
}

type boundAction struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{Keys: DefaultGameKeyMap()}
	k := &km.Keys
	km.actions = []boundAction{
		{&k.Thrust, core.ActionThrust},
		{&k.Brake, core.ActionBrake},
		{&k.RotateLeft, core.ActionRotateLeft},
		{&k.RotateRight, core.ActionRotateRight},
		{&k.Fire, core.ActionFire},
		{&k.NudgeUp, core.ActionNudgeUp},
		{&k.NudgeDown, core.ActionNudgeDown},
		{&k.NudgeLeft, core.ActionNudgeLeft},
		{&k.NudgeRight, core.ActionNudgeRight},
		{&k.Damp, core.ActionDamp},
		{&k.Stop, core.ActionStop},
		{&k.Level1, core.ActionLevel1},
		{&k.Level2, core.ActionLevel2},
		{&k.Level3, core.ActionLevel3},
		{&k.Truce, core.ActionTruce},
		{&k.Regenerate, core.ActionRegenerate},
		{&k.Pause, core.ActionPause},
		{&k.Restart, core.ActionRestart},
		{&k.Back, core.ActionBack},
		{&k.Quit, core.ActionQuit},
	}
	return km
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.actions {
		if key.Matches(msg, *b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records the pointer and turns button presses into actions:
// left fires, right thrusts.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	frame.Point(float64(msg.X), float64(msg.Y))
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Set(core.ActionFire)
	case tea.MouseButtonRight:
		frame.Set(core.ActionThrust)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MenuKeyMap holds the bindings shared by every menu screen.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Scoreboard, k.Quit},
	}
}

// DefaultMenuKeyMap returns default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "a", "h", "-"), key.WithHelp("←/-", "less")),
		Right:      key.NewBinding(key.WithKeys("right", "d", "l", "+", "="), key.WithHelp("→/+", "more")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b", "o"), key.WithHelp("esc", "back")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var menuKeys = DefaultMenuKeyMap()

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return MenuActionQuit
	case key.Matches(msg, menuKeys.Up):
		return MenuActionUp
	case key.Matches(msg, menuKeys.Down):
		return MenuActionDown
	case key.Matches(msg, menuKeys.Left):
		return MenuActionLeft
	case key.Matches(msg, menuKeys.Right):
		return MenuActionRight
	case key.Matches(msg, menuKeys.Select):
		return MenuActionSelect
	case key.Matches(msg, menuKeys.Back):
		return MenuActionBack
	case key.Matches(msg, menuKeys.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
