package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCarrot loads the game configuration.
// Search order: customPath -> ~/.carrotjump/configs/carrot.yaml -> ./configs/carrot.yaml -> embedded default
func LoadCarrot(customPath string) (CarrotConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CarrotConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCarrot(data)
		if err != nil {
			return CarrotConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("carrot.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCarrot(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/carrot.yaml"); err == nil {
		if cfg, err := parseCarrot(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCarrot(defaultCarrotYAML)
	if err != nil {
		return DefaultCarrotConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCarrot decodes YAML over the hardcoded defaults so partial files
// only override what they mention.
func parseCarrot(data []byte) (CarrotConfig, error) {
	cfg := DefaultCarrotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CarrotConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return CarrotConfig{}, err
	}
	return cfg, nil
}

// Validate reports values the simulation cannot run with.
func (c CarrotConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, errors.New("canvas dimensions must be positive"))
	}
	if c.Canvas.GroundHeight < 0 || c.Canvas.GroundHeight >= c.Canvas.Height {
		errs = append(errs, errors.New("ground_height must be within the canvas"))
	}
	if c.Canvas.FPS <= 0 {
		errs = append(errs, errors.New("fps must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player dimensions must be positive"))
	}
	if c.Progression.InitialLives < 1 {
		errs = append(errs, errors.New("initial_lives must be at least 1"))
	}
	if c.Progression.ScorePerPickup <= 0 {
		errs = append(errs, errors.New("score_per_pickup must be positive"))
	}
	if c.Spawning.PickupMaxHeight < c.Spawning.PickupMinHeight {
		errs = append(errs, errors.New("pickup_max_height must not be below pickup_min_height"))
	}
	if len(c.Spawning.PlatformWidthFactors) == 0 {
		errs = append(errs, errors.New("platform_width_factors must not be empty"))
	}
	if c.Spawning.MaxPickups < 0 {
		errs = append(errs, errors.New("max_pickups must not be negative"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".carrotjump", "configs", filename)
}
