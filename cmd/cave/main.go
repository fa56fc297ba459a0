// cave is a cave-flying shooter for the terminal, a desktop window or SSH.
//
// Usage:
//
//	cave list              - List available modes
//	cave play [mode]       - Play in the terminal
//	cave window            - Play in a desktop window
//	cave menu              - Pick a mode interactively
//	cave serve             - Start SSH server for remote play
//	cave scores [mode]     - Show best runs
//	cave levels            - Print the generated levels for a seed
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible caves
//	--db <path>           - Set database path (default: ~/.cave/runs.db)
//	--config <path>       - Cave config YAML, reloaded when it changes
//	--difficulty <preset> - easy, normal or hard
//	--debug               - Verbose logging to ~/.cave/cave.log
//	--sound               - Play sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the cave modes.
	_ "github.com/vovakirdan/tui-cave/internal/games/cave"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cave",
	Short: "Cave - fly, shoot and dig through generated caves",
	Long: `Cave is a top-down shooter in procedurally generated caves.
Steer the ship, blast turrets and guardians, mine golden tiles for gold
and spend it in the shop on hitpoints, speed and rockets.

Available commands:
  list     - Show all available modes
  play     - Play in the terminal
  window   - Play in a desktop window
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best runs
  levels   - Print the three levels generated for a seed

Examples:
  cave play
  cave play cave_truce --difficulty easy
  cave window --seed 42
  cave serve --ssh :2222
  cave levels --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cave/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to cave config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug events to ~/.cave/cave.log")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound effects")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
