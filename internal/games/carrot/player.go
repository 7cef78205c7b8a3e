package carrot

import (
	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Player is the bunny. Y grows downward; the top-left corner is (X, Y).
type Player struct {
	X, Y          float64
	VelocityY     float64
	Width, Height float64
	IsJumping     bool
	CanDoubleJump bool
	Invulnerable  bool
	Rotation      float64 // Radians, only non-zero while dying
}

// NewPlayer creates a player standing at the default position.
func NewPlayer(cfg config.CarrotConfig) Player {
	p := Player{
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	}
	p.ResetPose(cfg)
	return p
}

// ResetPose puts the player back on the ground at the default x.
// Invulnerability is left to the caller.
func (p *Player) ResetPose(cfg config.CarrotConfig) {
	p.X = cfg.Player.DefaultX
	p.Y = cfg.PlayerGroundY()
	p.VelocityY = 0
	p.IsJumping = false
	p.CanDoubleJump = true
	p.Rotation = 0
}

// Jump applies force if a jump is available and reports whether it did.
// The first jump needs the player not to be jumping already; one more is
// allowed in the air until the next landing.
func (p *Player) Jump(force float64) bool {
	if !p.IsJumping {
		p.VelocityY = force
		p.IsJumping = true
		return true
	}
	if p.CanDoubleJump {
		p.VelocityY = force
		p.CanDoubleJump = false
		return true
	}
	return false
}

// Rect returns the collision box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Center returns the middle of the collision box.
func (p Player) Center() (float64, float64) {
	return p.Rect().Center()
}
