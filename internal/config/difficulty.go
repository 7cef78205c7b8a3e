package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset.
// Unknown or empty strings yield "" which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyCarrotPreset modifies the config based on a difficulty preset.
func ApplyCarrotPreset(cfg *CarrotConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Progression.InitialLives = 7
		cfg.Spawning.ObstacleRate /= 2
		cfg.Spawning.ObstacleRateIncrease /= 2
	case DifficultyHard:
		cfg.Progression.InitialLives = 3
		cfg.Spawning.ObstacleRate *= 2
		cfg.Spawning.ObstacleRateIncrease *= 2
	case DifficultyFixed:
		// Score still counts, but neither spawn rate nor speed ramp up
		cfg.Spawning.ObstacleRateIncrease = 0
		cfg.Progression.SpeedIncreasePerPickup = 0
	}
}

// ObstacleRateAt returns the per-tick obstacle spawn probability for a score.
// Difficulty scales with whole scored units, not with scroll speed.
func (s CarrotSpawning) ObstacleRateAt(score, scoreUnit int) float64 {
	if scoreUnit <= 0 {
		return s.ObstacleRate
	}
	units := math.Floor(float64(score) / float64(scoreUnit))
	return s.ObstacleRate + units*s.ObstacleRateIncrease
}
