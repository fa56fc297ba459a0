package config

import (
	_ "embed"
)

//go:embed defaults/cave.yaml
var defaultCaveYAML []byte

// DefaultCave returns the built-in configuration.
// It matches defaults/cave.yaml and is used when the embedded file cannot be parsed.
func DefaultCave() Cave {
	return Cave{
		World: WorldConfig{
			Width:  1430,
			Height: 800,
			FPS:    30,
			MaxDT:  0.25,
		},
		Player: PlayerConfig{
			Hitpoints:  1000,
			Speed:      1,
			Gravity:    0.1,
			RotateStep: 3,
			Nudge:      10,
		},
		Weapons: WeaponConfig{
			Rockets:       1,
			RocketSpeed:   1,
			RocketRange:   200,
			ShootingAngle: 20,
		},
		Terrain: TerrainConfig{
			TileSize: 20,
			Rooms:    DensityMany,
			Holes:    DensityMany,
		},
		Enemies: EnemyConfig{
			Density:     DensityFew,
			FireChance:  0.1,
			RocketSpeed: 50,
		},
		Economy: EconomyConfig{
			Gold:              0,
			Price:             10,
			GoldPerGoldenTile: 1,
			GoldPerTurret:     5,
		},
	}
}
