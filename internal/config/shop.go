package config

import (
	"errors"
	"fmt"
)

// ErrNotEnoughGold is returned when a purchase costs more than the player has.
var ErrNotEnoughGold = errors.New("config: not enough gold")

// Upgrade is an item sold in the player settings menu.
type Upgrade string

const (
	UpgradeRockets     Upgrade = "rockets"
	UpgradeHitpoints   Upgrade = "hitpoints"
	UpgradeSpeed       Upgrade = "speed"
	UpgradeRocketSpeed Upgrade = "rocketspeed"
)

// Upgrades lists the shop items in menu order.
var Upgrades = []Upgrade{UpgradeHitpoints, UpgradeSpeed, UpgradeRockets, UpgradeRocketSpeed}

// Shooting angle step used by the increase/decrease menu entries.
const ShootingAngleStep = 5

// UpgradePrice returns the gold cost of an upgrade.
func UpgradePrice(u Upgrade) int {
	switch u {
	case UpgradeRockets:
		return 1
	case UpgradeHitpoints:
		return 15
	case UpgradeSpeed, UpgradeRocketSpeed:
		return 5
	default:
		return 0
	}
}

// Quote records the price of the highlighted item, as shown in the menu status line.
func (c *Cave) Quote(u Upgrade) {
	c.Economy.Price = UpgradePrice(u)
}

// Buy spends gold on an upgrade and applies it.
func (c *Cave) Buy(u Upgrade) error {
	price := UpgradePrice(u)
	if price == 0 {
		return fmt.Errorf("config: unknown upgrade %q", u)
	}
	if c.Economy.Gold < price {
		return fmt.Errorf("%w: %s costs %d", ErrNotEnoughGold, u, price)
	}
	c.Economy.Gold -= price

	switch u {
	case UpgradeRockets:
		c.Weapons.Rockets++
	case UpgradeHitpoints:
		c.Player.Hitpoints++
	case UpgradeSpeed:
		c.Player.Speed++
	case UpgradeRocketSpeed:
		c.Weapons.RocketSpeed++
	}
	return nil
}

// AdjustShootingAngle moves the fan half-angle by delta, clamped to [0, 180].
func (c *Cave) AdjustShootingAngle(delta float64) {
	c.Weapons.ShootingAngle = max(0, min(180, c.Weapons.ShootingAngle+delta))
}

// Knob names a density setting in the level menu.
type Knob string

const (
	KnobRooms   Knob = "rooms"
	KnobHoles   Knob = "holes"
	KnobEnemies Knob = "enemies"
)

// SetDensity changes one of the terrain density knobs.
func (c *Cave) SetDensity(k Knob, d Density) error {
	if _, ok := d.Count(); !ok {
		return &ValidationError{string(k), fmt.Sprintf("unknown density %q", d)}
	}
	switch k {
	case KnobRooms:
		c.Terrain.Rooms = d
	case KnobHoles:
		c.Terrain.Holes = d
	case KnobEnemies:
		c.Enemies.Density = d
	default:
		return fmt.Errorf("config: unknown knob %q", k)
	}
	return nil
}

// Density returns the current value of a knob.
func (c Cave) Density(k Knob) Density {
	switch k {
	case KnobRooms:
		return c.Terrain.Rooms
	case KnobHoles:
		return c.Terrain.Holes
	case KnobEnemies:
		return c.Enemies.Density
	default:
		return ""
	}
}

// TileSizes lists the sizes offered by the level menu.
var TileSizes = []int{5, 10, 15, 20, 25, 30}

// SetTileSize changes the terrain tile size after validating it.
func (c *Cave) SetTileSize(size int) error {
	next := *c
	next.Terrain.TileSize = size
	if err := next.Validate(); err != nil {
		return err
	}
	c.Terrain.TileSize = size
	return nil
}
