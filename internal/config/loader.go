package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config location.
const LocalPath = "configs/cave.yaml"

// LoadCave loads the cave configuration.
// Search order: customPath -> ~/.cave/configs/cave.yaml -> ./configs/cave.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides what it names.
func LoadCave(customPath string) (Cave, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Cave{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseCave(data)
		if err != nil {
			return Cave{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("cave.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseCave(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if cfg, err := ParseCave(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseCave(defaultCaveYAML)
	if err != nil {
		return DefaultCave(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseCave decodes YAML over the defaults and validates the result.
func ParseCave(data []byte) (Cave, error) {
	cfg := DefaultCave()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Cave{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Cave{}, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cave", "configs", filename)
}

// ResolvePath returns the file LoadCave would read for customPath,
// or empty when only the embedded default applies.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := UserConfigPath("cave.yaml"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(LocalPath); err == nil {
		return LocalPath
	}
	return ""
}
