package config

import (
	_ "embed"
	"math"
	"time"
)

//go:embed defaults/carrot.yaml
var defaultCarrotYAML []byte

// DefaultCarrotConfig returns the default Carrot Jump configuration.
func DefaultCarrotConfig() CarrotConfig {
	return CarrotConfig{
		Canvas: CarrotCanvas{
			Width:        800,
			Height:       400,
			GroundHeight: 50,
			FPS:          60,
		},
		Player: CarrotPlayer{
			Width:               32,
			Height:              32,
			DefaultX:            100,
			JumpForce:           -10,
			Gravity:             0.4,
			ReturnToCenterSpeed: 0.5,
		},
		Objects: CarrotObjects{
			ObstacleWidth:  32,
			ObstacleHeight: 32,
			PickupWidth:    24,
			PickupHeight:   24,
			PlatformWidth:  128,
			PlatformHeight: 16,
		},
		Spawning: CarrotSpawning{
			ObstacleRate:           0.005,
			ObstacleRateIncrease:   0.001,
			PickupRate:             0.015,
			MaxPickups:             2,
			PickupMinHeight:        64,
			PickupMaxHeight:        160,
			PlatformMinY:           100,
			PlatformMinGap:         0.25,
			PlatformTrailingFactor: 2,
			PlatformWidthFactors:   []float64{0.75, 1.0, 1.25},
		},
		Progression: CarrotProgression{
			InitialLives:           5,
			InitialScrollSpeed:     2,
			SpeedIncreasePerPickup: 0.25,
			ScorePerPickup:         100,
		},
		Effects: CarrotEffects{
			ParticleCount:  10,
			ShakeDuration:  500 * time.Millisecond,
			ShakeIntensity: 4,
			FlashInterval:  100 * time.Millisecond,
		},
		Death: CarrotDeath{
			RotationSpeed: 4,
			FinalRotation: math.Pi / 2,
			Duration:      time.Second,
		},
		Timing: CarrotTiming{
			Invulnerability:   2 * time.Second,
			RestartDelay:      2 * time.Second,
			HeartFlash:        time.Second,
			GameOverSoundWait: 200 * time.Millisecond,
			InputDebounce:     50 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCarrotYAML
}
