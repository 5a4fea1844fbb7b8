package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a config file for id.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
func load[T any](id, customPath string, fallback func() T) (T, error) {
	var cfg T

	// An explicit path must load or the caller hears about it
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if err := yaml.Unmarshal(GetDefaultYAML(id), &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// LoadSlice loads the slice game configuration.
func LoadSlice(customPath string) (SliceConfig, error) {
	return load("slice", customPath, DefaultSliceConfig)
}

// LoadReward loads the reward tiers.
func LoadReward(customPath string) (RewardConfig, error) {
	return load("reward", customPath, DefaultRewardConfig)
}

// LoadWallet loads the wallet configuration.
func LoadWallet(customPath string) (WalletConfig, error) {
	return load("wallet", customPath, DefaultWalletConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySlicePreset sets the difficulty ramp for a preset. Presets only
// change spawning; lives stay at the gameplay value.
func ApplySlicePreset(cfg *SliceConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
