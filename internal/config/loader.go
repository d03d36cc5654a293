package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTuning loads pilot tuning constants.
// Search order: customPath -> ~/.dogfight/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides
// the keys it names. The result is validated.
func LoadTuning(customPath string) (Tuning, error) {
	cfg := DefaultTuning()
	if err := load("tuning", customPath, defaultTuningYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadArena loads arena configuration.
// Search order: customPath -> ~/.dogfight/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
func LoadArena(customPath string) (Arena, error) {
	cfg := DefaultArena()
	if err := load("arena", customPath, defaultArenaYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseTuning decodes tuning YAML on top of the defaults and validates it.
func ParseTuning(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalTuning encodes a tuning configuration as YAML.
func MarshalTuning(cfg Tuning) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tuning: %w", err)
	}
	return data, nil
}

func load(name, customPath string, embedded []byte, out any) error {
	filename := name + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded default already in out is the fallback
	_ = yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dogfight", "configs", filename)
}

// ApplyArenaPreset modifies the arena config based on a difficulty preset.
func ApplyArenaPreset(cfg *Arena, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
