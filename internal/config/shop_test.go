package config

import (
	"errors"
	"testing"
)

func TestBuy(t *testing.T) {
	tests := []struct {
		upgrade Upgrade
		check   func(Cave) bool
		price   int
	}{
		{UpgradeRockets, func(c Cave) bool { return c.Weapons.Rockets == 2 }, 1},
		{UpgradeHitpoints, func(c Cave) bool { return c.Player.Hitpoints == 1001 }, 15},
		{UpgradeSpeed, func(c Cave) bool { return c.Player.Speed == 2 }, 5},
		{UpgradeRocketSpeed, func(c Cave) bool { return c.Weapons.RocketSpeed == 2 }, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.upgrade), func(t *testing.T) {
			cfg := DefaultCave()
			cfg.Economy.Gold = 20

			if err := cfg.Buy(tt.upgrade); err != nil {
				t.Fatalf("Buy() failed: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("upgrade %s not applied: %+v", tt.upgrade, cfg)
			}
			if cfg.Economy.Gold != 20-tt.price {
				t.Errorf("Gold = %d, expected %d", cfg.Economy.Gold, 20-tt.price)
			}
		})
	}
}

func TestBuyWithoutGold(t *testing.T) {
	cfg := DefaultCave()
	cfg.Economy.Gold = 4

	err := cfg.Buy(UpgradeSpeed)
	if !errors.Is(err, ErrNotEnoughGold) {
		t.Fatalf("Buy() = %v, expected ErrNotEnoughGold", err)
	}
	if cfg.Player.Speed != 1 || cfg.Economy.Gold != 4 {
		t.Errorf("failed purchase changed config: speed %v gold %d", cfg.Player.Speed, cfg.Economy.Gold)
	}
}

func TestQuote(t *testing.T) {
	cfg := DefaultCave()
	cfg.Quote(UpgradeHitpoints)
	if cfg.Economy.Price != 15 {
		t.Errorf("Price = %d, expected 15", cfg.Economy.Price)
	}
}

func TestAdjustShootingAngle(t *testing.T) {
	tests := []struct {
		start, delta, want float64
	}{
		{20, ShootingAngleStep, 25},
		{20, -ShootingAngleStep, 15},
		{178, ShootingAngleStep, 180},
		{3, -ShootingAngleStep, 0},
	}

	for _, tt := range tests {
		cfg := DefaultCave()
		cfg.Weapons.ShootingAngle = tt.start
		cfg.AdjustShootingAngle(tt.delta)
		if cfg.Weapons.ShootingAngle != tt.want {
			t.Errorf("AdjustShootingAngle(%v) from %v = %v, expected %v", tt.delta, tt.start, cfg.Weapons.ShootingAngle, tt.want)
		}
	}
}

func TestSetDensityAndTileSize(t *testing.T) {
	cfg := DefaultCave()

	if err := cfg.SetDensity(KnobHoles, DensityLots); err != nil {
		t.Fatalf("SetDensity() failed: %v", err)
	}
	if cfg.Density(KnobHoles) != DensityLots {
		t.Errorf("Density(holes) = %v, expected lots", cfg.Density(KnobHoles))
	}
	if err := cfg.SetDensity(KnobRooms, "heaps"); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetDensity(heaps) = %v, expected ErrInvalid", err)
	}

	if err := cfg.SetTileSize(30); err != nil {
		t.Fatalf("SetTileSize(30) failed: %v", err)
	}
	if err := cfg.SetTileSize(-5); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetTileSize(-5) = %v, expected ErrInvalid", err)
	}
	if cfg.Terrain.TileSize != 30 {
		t.Errorf("TileSize = %d, expected 30 after rejected change", cfg.Terrain.TileSize)
	}
}
