package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cave/internal/platform/desktop"
)

var flagTruce bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the cave in a desktop window, one pixel per world unit.

The mouse aims the cannon: left click fires, right button thrusts.
Keyboard controls match 'cave play'; Esc or Q closes the window.

Examples:
  cave window
  cave window --seed 42 --sound
  cave window --truce`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagTruce, "truce", false, "Start with enemies holding fire")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cave
	cfg.Peace = cfg.Peace || flagTruce
	if cmd.Flags().Changed("fps") {
		cfg.World.FPS = flagFPS
	}

	return desktop.Run(cfg, flagSeed,
		desktop.WithSink(e.sink),
		desktop.WithLogger(e.logger),
		desktop.WithStore(e.store),
	)
}
