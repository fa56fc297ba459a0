// Package tui runs the cave in a terminal with Bubble Tea.
// It owns the frame loop, input mapping, menus and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cave/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ConfigMsg carries a config file that changed on disk and passed validation.
type ConfigMsg struct {
	Config config.Cave
}

// ConfigErrMsg reports a config file that could not be reloaded.
type ConfigErrMsg struct {
	Err error
}

// watchConfig waits for the next reload from w. It returns nil once the
// watcher is closed, which ends the subscription.
func watchConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return ConfigMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrMsg{Err: err}
		}
	}
}
