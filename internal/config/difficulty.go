package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset accepts "", easy, normal or hard. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// ApplyCavePreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyCavePreset(cfg *Cave, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Hitpoints *= 2
		cfg.Enemies.Density = DensityNone
		cfg.Enemies.FireChance /= 2
	case DifficultyHard:
		cfg.Player.Hitpoints /= 2
		cfg.Enemies.Density = DensityLots
		cfg.Enemies.FireChance = min(1, cfg.Enemies.FireChance*2)
	}
}
