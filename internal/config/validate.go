package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("config: invalid value")

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Tile size bounds offered by the level menu.
const (
	MinTileSize = 5
	MaxTileSize = 30
)

// Validate checks the config and returns the first offending field.
func (c Cave) Validate() error {
	switch {
	case c.World.Width <= 0:
		return &ValidationError{"world.width", "must be positive"}
	case c.World.Height <= 0:
		return &ValidationError{"world.height", "must be positive"}
	case c.World.FPS <= 0:
		return &ValidationError{"world.fps", "must be positive"}
	case c.World.MaxDT <= 0:
		return &ValidationError{"world.max_dt", "must be positive"}
	case c.Player.Hitpoints <= 0:
		return &ValidationError{"player.hitpoints", "must be positive"}
	case c.Player.Speed < 0:
		return &ValidationError{"player.speed", "must not be negative"}
	case c.Weapons.Rockets < 0:
		return &ValidationError{"weapons.rockets", "must not be negative"}
	case c.Weapons.RocketSpeed <= 0:
		return &ValidationError{"weapons.rocket_speed", "must be positive"}
	case c.Weapons.RocketRange <= 0:
		return &ValidationError{"weapons.rocket_range", "must be positive"}
	case c.Weapons.ShootingAngle < 0 || c.Weapons.ShootingAngle > 180:
		return &ValidationError{"weapons.shooting_angle", "must be within [0, 180]"}
	case c.Terrain.TileSize < MinTileSize || c.Terrain.TileSize > MaxTileSize:
		return &ValidationError{"terrain.tile_size", fmt.Sprintf("must be within [%d, %d]", MinTileSize, MaxTileSize)}
	case c.Enemies.FireChance < 0 || c.Enemies.FireChance > 1:
		return &ValidationError{"enemies.fire_chance", "must be within [0, 1]"}
	case c.Economy.Gold < 0:
		return &ValidationError{"economy.gold", "must not be negative"}
	}

	knobs := []struct {
		field string
		d     Density
	}{
		{"terrain.rooms", c.Terrain.Rooms},
		{"terrain.holes", c.Terrain.Holes},
		{"enemies.density", c.Enemies.Density},
	}
	for _, k := range knobs {
		if _, ok := k.d.Count(); !ok {
			return &ValidationError{k.field, fmt.Sprintf("unknown density %q", k.d)}
		}
	}

	// The grid must leave room for the spawn hole and at least one carve.
	if int(c.World.Width-10)/c.Terrain.TileSize < 12 || int(c.World.Height-30)/c.Terrain.TileSize < 12 {
		return &ValidationError{"world", "too small for the tile size"}
	}
	return nil
}
