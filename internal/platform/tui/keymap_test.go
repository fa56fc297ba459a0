package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cave/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"thrust", runeKey('w'), core.ActionThrust, false},
		{"brake", runeKey('s'), core.ActionBrake, false},
		{"rotate left", runeKey('a'), core.ActionRotateLeft, false},
		{"rotate right", runeKey('d'), core.ActionRotateRight, false},
		{"fire space", runeKey(' '), core.ActionFire, false},
		{"fire tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionFire, false},
		{"nudge up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNudgeUp, false},
		{"nudge left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionNudgeLeft, false},
		{"damp", runeKey('r'), core.ActionDamp, false},
		{"stop", runeKey('b'), core.ActionStop, false},
		{"level three", runeKey('3'), core.ActionLevel3, false},
		{"truce", runeKey('t'), core.ActionTruce, false},
		{"regenerate", runeKey('g'), core.ActionRegenerate, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('w'), &frame) {
		t.Error("MapKeyToFrame(w) reported quit")
	}
	if !frame.Has(core.ActionThrust) {
		t.Error("frame missing Thrust after w")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("MapKeyToFrame(q) = false, expected quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit leaked into the input frame")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.MouseMsg
		action core.Action
	}{
		{"left press fires", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.ActionFire},
		{"right press thrusts", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.ActionThrust},
		{"motion only aims", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion}, core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			km.MapMouseToFrame(tt.msg, &frame)

			if !frame.HasPointer || frame.PointerX != 3 || frame.PointerY != 4 {
				t.Errorf("pointer = (%v, %v, %v), expected (true, 3, 4)", frame.HasPointer, frame.PointerX, frame.PointerY)
			}
			if tt.action != core.ActionNone && !frame.Has(tt.action) {
				t.Errorf("frame missing %v", tt.action)
			}
			if tt.action == core.ActionNone && len(frame.Actions) != 0 {
				t.Errorf("Actions = %v, expected none", frame.Actions)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{runeKey('-'), MenuActionLeft},
		{runeKey('+'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
