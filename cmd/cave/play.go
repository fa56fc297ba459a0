package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cave/internal/platform/tui"
	"github.com/vovakirdan/tui-cave/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal. The mode defaults to "cave".

Controls:
  W/S        - Thrust / brake
  A/D        - Rotate
  Space/Tab  - Fire (left click fires at the pointer)
  Arrows     - Nudge the ship
  R/B        - Damp speed / full stop
  1/2/3      - Jump to a level
  T          - Toggle truce
  G          - Generate a new cave
  O          - Shop and cave settings
  P          - Pause
  Enter      - Restart (after game over)
  Esc        - Back
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Double hitpoints, no enemies, half fire chance
  normal - The config as loaded
  hard   - Half hitpoints, lots of enemies, double fire chance

Examples:
  cave play
  cave play cave_truce
  cave play --difficulty hard --seed 42
  cave play --config ./my-cave.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "cave"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'cave list' to see available modes", gameID)
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	_, err = playInTerminal(e, gameID)
	return err
}

// playInTerminal runs one mode until the player quits or goes back.
func playInTerminal(e *env, gameID string) (backToMenu bool, err error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	if c, ok := game.(registry.Configurable); ok {
		base := e.cave
		base.Peace = base.Peace || gameID == "cave_truce"
		if err := c.SetConfig(base); err != nil {
			return false, err
		}
	}
	if l, ok := game.(interface{ SetLogger(*log.Logger) }); ok {
		l.SetLogger(e.logger)
	}

	return tui.Run(game, e.store, runtimeConfig(),
		tui.WithSink(e.sink),
		tui.WithWatcher(e.watcher),
		tui.WithLogger(e.logger),
	)
}
