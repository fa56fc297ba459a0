package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseCave(defaultCaveYAML)
	if err != nil {
		t.Fatalf("ParseCave(embedded) failed: %v", err)
	}
	if cfg != DefaultCave() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultCave())
	}
}

func TestDefaultCaveIsValid(t *testing.T) {
	if err := DefaultCave().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestDensityCount(t *testing.T) {
	tests := []struct {
		d    Density
		want int
		ok   bool
	}{
		{DensityNone, 0, true},
		{DensityFew, 5, true},
		{DensityMany, 10, true},
		{DensityLots, 15, true},
		{"heaps", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			got, ok := tt.d.Count()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Count() = (%d, %v), expected (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Cave)
		field  string
	}{
		{"negative tile size", func(c *Cave) { c.Terrain.TileSize = -5 }, "terrain.tile_size"},
		{"tile size too big", func(c *Cave) { c.Terrain.TileSize = 31 }, "terrain.tile_size"},
		{"unknown rooms", func(c *Cave) { c.Terrain.Rooms = "heaps" }, "terrain.rooms"},
		{"unknown enemies", func(c *Cave) { c.Enemies.Density = "" }, "enemies.density"},
		{"zero fps", func(c *Cave) { c.World.FPS = 0 }, "world.fps"},
		{"angle over 180", func(c *Cave) { c.Weapons.ShootingAngle = 185 }, "weapons.shooting_angle"},
		{"zero hitpoints", func(c *Cave) { c.Player.Hitpoints = 0 }, "player.hitpoints"},
		{"tiny world", func(c *Cave) { c.World.Width = 100 }, "world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCave()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, expected ErrInvalid", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error is %T, expected *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, expected %q", verr.Field, tt.field)
			}
		})
	}
}

func TestParseCaveLayersOverDefaults(t *testing.T) {
	cfg, err := ParseCave([]byte("weapons:\n  rockets: 3\nterrain:\n  tile_size: 10\n"))
	if err != nil {
		t.Fatalf("ParseCave() failed: %v", err)
	}
	if cfg.Weapons.Rockets != 3 {
		t.Errorf("Rockets = %d, expected 3", cfg.Weapons.Rockets)
	}
	if cfg.Terrain.TileSize != 10 {
		t.Errorf("TileSize = %d, expected 10", cfg.Terrain.TileSize)
	}
	if cfg.Player.Hitpoints != 1000 {
		t.Errorf("Hitpoints = %v, expected default 1000", cfg.Player.Hitpoints)
	}
}

func TestLoadCaveCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cave.yaml")
	if err := os.WriteFile(path, []byte("player:\n  hitpoints: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCave(path)
	if err != nil {
		t.Fatalf("LoadCave() failed: %v", err)
	}
	if cfg.Player.Hitpoints != 42 {
		t.Errorf("Hitpoints = %v, expected 42", cfg.Player.Hitpoints)
	}
}

func TestLoadCaveMissingCustomPath(t *testing.T) {
	_, err := LoadCave(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadCave() with missing file should fail")
	}
}

func TestLoadCaveInvalidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cave.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  tile_size: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCave(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadCave() = %v, expected ErrInvalid", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultCave()
	cfg.Weapons.Rockets = 7
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := ParseCave(data)
	if err != nil {
		t.Fatalf("ParseCave() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}

func TestApplyCavePreset(t *testing.T) {
	easy := DefaultCave()
	ApplyCavePreset(&easy, DifficultyEasy)
	if easy.Player.Hitpoints != 2000 || easy.Enemies.Density != DensityNone {
		t.Errorf("easy preset = hp %v enemies %v", easy.Player.Hitpoints, easy.Enemies.Density)
	}

	hard := DefaultCave()
	ApplyCavePreset(&hard, DifficultyHard)
	if hard.Player.Hitpoints != 500 || hard.Enemies.Density != DensityLots {
		t.Errorf("hard preset = hp %v enemies %v", hard.Player.Hitpoints, hard.Enemies.Density)
	}
	if hard.Enemies.FireChance != 0.2 {
		t.Errorf("hard FireChance = %v, expected 0.2", hard.Enemies.FireChance)
	}

	normal := DefaultCave()
	ApplyCavePreset(&normal, DifficultyNormal)
	if normal != DefaultCave() {
		t.Error("normal preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cave.yaml")
	if err := os.WriteFile(path, []byte("weapons:\n  rockets: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("weapons:\n  rockets: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		if cfg.Weapons.Rockets != 4 {
			t.Errorf("reloaded Rockets = %d, expected 4", cfg.Weapons.Rockets)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within 3s")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "cave.yaml")
	w, err := Watch(path)
	if err == nil {
		w.Close()
		t.Fatal("Watch() succeeded on a missing directory")
	}
	if !strings.HasPrefix(err.Error(), "config: watch ") {
		t.Errorf("Watch() error = %q, expected the config: watch prefix", err)
	}
}

func TestWatchReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cave.yaml")
	if err := os.WriteFile(path, []byte("peace: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("terrain:\n  rooms: heaps\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		t.Fatalf("invalid file produced config %+v", cfg)
	case err := <-w.Errors:
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("error = %v, expected ErrInvalid", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no error within 3s")
	}
}
