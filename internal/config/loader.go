package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, logs and the replay database.
const AppDir = ".brickfall"

// LoadBreakout loads and validates the breakout configuration.
// Search order: customPath -> ~/.brickfall/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
// Only a missing file moves the search on; a file that exists must load.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		return parseFile(customPath, data)
	}

	for _, path := range []string{UserPath("configs", "breakout.yaml"), filepath.Join("configs", "breakout.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		return parseFile(path, data)
	}

	cfg, err := Parse(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseFile(path string, data []byte) (BreakoutConfig, error) {
	cfg, err := Parse(data)
	if err != nil {
		return BreakoutConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a partial file only overrides
// the keys it names, and validates the result.
func Parse(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreakoutConfig{}, fmt.Errorf("config: failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg BreakoutConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// UserPath joins elem under ~/.brickfall, or returns empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}
