// Package config provides YAML-based configuration loading, validation,
// difficulty presets and live reloading for the cave shooter.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Density is a coarse count knob used by the terrain generator.
type Density string

const (
	DensityNone Density = "none"
	DensityFew  Density = "few"
	DensityMany Density = "many"
	DensityLots Density = "lots"
)

// Densities lists the knob values in menu order.
var Densities = []Density{DensityNone, DensityFew, DensityMany, DensityLots}

// Count returns how many carves/placements the density stands for.
func (d Density) Count() (int, bool) {
	switch d {
	case DensityNone:
		return 0, true
	case DensityFew:
		return 5, true
	case DensityMany:
		return 10, true
	case DensityLots:
		return 15, true
	default:
		return 0, false
	}
}

// Cave contains all tunables read by the simulation.
// The world keeps its own copy; menus and reward events write it between ticks.
type Cave struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Weapons WeaponConfig  `yaml:"weapons"`
	Terrain TerrainConfig `yaml:"terrain"`
	Enemies EnemyConfig   `yaml:"enemies"`
	Economy EconomyConfig `yaml:"economy"`
	Peace   bool          `yaml:"peace"` // Truce: enemies hold fire
}

// WorldConfig defines the playfield and clock.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
	MaxDT  float64 `yaml:"max_dt"` // Upper bound for one tick, seconds
}

// PlayerConfig defines the ship.
type PlayerConfig struct {
	Hitpoints  float64 `yaml:"hitpoints"`
	Speed      float64 `yaml:"speed"`       // Impulse per thrust
	Gravity    float64 `yaml:"gravity"`     // Downward velocity added per tick
	RotateStep float64 `yaml:"rotate_step"` // Degrees per rotate intent
	Nudge      float64 `yaml:"nudge"`       // Velocity per arrow intent
}

// WeaponConfig defines the player's rocket fan.
type WeaponConfig struct {
	Rockets       int     `yaml:"rockets"`
	RocketSpeed   float64 `yaml:"rocket_speed"`
	RocketRange   float64 `yaml:"rocket_range"`
	ShootingAngle float64 `yaml:"shooting_angle"` // Half-angle of the fan, degrees
}

// TerrainConfig defines procedural level generation.
type TerrainConfig struct {
	TileSize int     `yaml:"tile_size"`
	Rooms    Density `yaml:"rooms"`
	Holes    Density `yaml:"holes"`
}

// EnemyConfig defines turret and guardian placement and aggression.
type EnemyConfig struct {
	Density     Density `yaml:"density"`
	FireChance  float64 `yaml:"fire_chance"` // Probability per tick per cannon
	RocketSpeed float64 `yaml:"rocket_speed"`
}

// EconomyConfig defines gold, prices and rewards.
type EconomyConfig struct {
	Gold              int `yaml:"gold"`
	Price             int `yaml:"price"`
	GoldPerGoldenTile int `yaml:"gold_per_golden_tile"`
	GoldPerTurret     int `yaml:"gold_per_turret"`
}

// Marshal encodes the config as YAML.
func (c Cave) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
