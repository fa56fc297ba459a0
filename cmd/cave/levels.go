package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

var (
	flagDumpConfig bool
	flagLevel      int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the levels generated for a seed",
	Long: `Generate the three levels for the current config and seed and print
them in the grid legend:

  .  empty      0  rock      1  gold      2  healing
  !  turret     +  guardian  A/B/C  teleport source  a/b/c  destination

Examples:
  cave levels --seed 7
  cave levels --seed 7 --level 2
  cave levels --dump-config > my-cave.yaml`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagDumpConfig, "dump-config", false, "Print the effective config as YAML instead")
	levelsCmd.Flags().IntVar(&flagLevel, "level", 0, "Print only this level (1-3)")
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadCave()
	if err != nil {
		return err
	}

	if flagDumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if flagLevel < 0 || flagLevel > sim.LevelCount {
		return fmt.Errorf("level must be between 1 and %d", sim.LevelCount)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, err := sim.NewWorld(cfg, seed)
	if err != nil {
		return err
	}

	fmt.Printf("seed %d\n", seed)
	for n := range sim.LevelCount {
		if flagLevel != 0 && n+1 != flagLevel {
			continue
		}
		g := w.Level(n)
		fmt.Printf("\nlevel %d (%dx%d, %d gold, %d enemies)\n", n+1, g.W, g.H,
			g.Count(sim.CellGolden), g.Count(sim.CellTurret)+g.Count(sim.CellGuardian))
		fmt.Println(g.String())
	}
	return nil
}
