// Package config provides YAML-based game configuration loading and
// difficulty presets for Carrot Jump.
package config

import "time"

// CarrotConfig contains all tunables of the game.
// A config is fixed for the lifetime of a game instance.
type CarrotConfig struct {
	Canvas      CarrotCanvas      `yaml:"canvas"`
	Player      CarrotPlayer      `yaml:"player"`
	Objects     CarrotObjects     `yaml:"objects"`
	Spawning    CarrotSpawning    `yaml:"spawning"`
	Progression CarrotProgression `yaml:"progression"`
	Effects     CarrotEffects     `yaml:"effects"`
	Death       CarrotDeath       `yaml:"death"`
	Timing      CarrotTiming      `yaml:"timing"`
}

// CarrotCanvas defines the world dimensions in world units.
type CarrotCanvas struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	FPS          int     `yaml:"fps"`
}

// CarrotPlayer defines the bunny's size and physics.
type CarrotPlayer struct {
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	DefaultX            float64 `yaml:"default_x"`
	JumpForce           float64 `yaml:"jump_force"`
	Gravity             float64 `yaml:"gravity"`
	ReturnToCenterSpeed float64 `yaml:"return_to_center_speed"`
}

// CarrotObjects defines the nominal sizes of terrain objects.
type CarrotObjects struct {
	ObstacleWidth  float64 `yaml:"obstacle_width"`
	ObstacleHeight float64 `yaml:"obstacle_height"`
	PickupWidth    float64 `yaml:"pickup_width"`
	PickupHeight   float64 `yaml:"pickup_height"`
	PlatformWidth  float64 `yaml:"platform_width"`
	PlatformHeight float64 `yaml:"platform_height"`
}

// CarrotSpawning defines the procedural generation policy.
type CarrotSpawning struct {
	ObstacleRate           float64   `yaml:"obstacle_rate"`
	ObstacleRateIncrease   float64   `yaml:"obstacle_rate_increase"` // Added per scored unit
	PickupRate             float64   `yaml:"pickup_rate"`
	MaxPickups             int       `yaml:"max_pickups"`
	PickupMinHeight        float64   `yaml:"pickup_min_height"` // Above ground
	PickupMaxHeight        float64   `yaml:"pickup_max_height"`
	PlatformMinY           float64   `yaml:"platform_min_y"`
	PlatformMinGap         float64   `yaml:"platform_min_gap"`         // Fraction of platform width
	PlatformTrailingFactor float64   `yaml:"platform_trailing_factor"` // Multiples of platform width
	PlatformWidthFactors   []float64 `yaml:"platform_width_factors"`
}

// CarrotProgression defines scoring and speed progression.
type CarrotProgression struct {
	InitialLives           int     `yaml:"initial_lives"`
	InitialScrollSpeed     float64 `yaml:"initial_scroll_speed"`
	SpeedIncreasePerPickup float64 `yaml:"speed_increase_per_pickup"`
	ScorePerPickup         int     `yaml:"score_per_pickup"`
}

// CarrotEffects defines visual feedback parameters.
type CarrotEffects struct {
	ParticleCount  int           `yaml:"particle_count"`
	ShakeDuration  time.Duration `yaml:"shake_duration"`
	ShakeIntensity float64       `yaml:"shake_intensity"`
	FlashInterval  time.Duration `yaml:"flash_interval"`
}

// CarrotDeath defines the final death animation.
type CarrotDeath struct {
	RotationSpeed float64       `yaml:"rotation_speed"` // Progress per second
	FinalRotation float64       `yaml:"final_rotation"` // Radians
	Duration      time.Duration `yaml:"duration"`
}

// CarrotTiming defines wall-clock windows used by timed transitions.
type CarrotTiming struct {
	Invulnerability   time.Duration `yaml:"invulnerability"`
	RestartDelay      time.Duration `yaml:"restart_delay"`
	HeartFlash        time.Duration `yaml:"heart_flash"`
	GameOverSoundWait time.Duration `yaml:"game_over_sound_wait"`
	InputDebounce     time.Duration `yaml:"input_debounce"`
}

// GroundLine returns the y-coordinate of the ground surface.
func (c CarrotConfig) GroundLine() float64 {
	return c.Canvas.Height - c.Canvas.GroundHeight
}

// PlayerGroundY returns the player's y when standing on the ground.
func (c CarrotConfig) PlayerGroundY() float64 {
	return c.GroundLine() - c.Player.Height
}

// FrameTime returns the duration of one simulation tick.
func (c CarrotConfig) FrameTime() time.Duration {
	if c.Canvas.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Canvas.FPS)
}
