package carrot

import (
	"math"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Resolution is the outcome of a platform collision check.
type Resolution uint8

const (
	ResolutionNone Resolution = iota
	ResolutionLanded
	ResolutionHeadBump
	ResolutionPushedLeft
	ResolutionPushedRight
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolutionNone:
		return "none"
	case ResolutionLanded:
		return "landed"
	case ResolutionHeadBump:
		return "head-bump"
	case ResolutionPushedLeft:
		return "pushed-left"
	case ResolutionPushedRight:
		return "pushed-right"
	default:
		return "unknown"
	}
}

// fallNudge starts the fall when the player walks off a platform edge.
const fallNudge = 0.1

// Physics integrates the player's motion and resolves platform contacts.
// It remembers the platform the player last landed on, by ID.
type Physics struct {
	cfg          config.CarrotConfig
	lastPlatform uint64
	onPlatform   bool
}

// NewPhysics creates a physics engine.
func NewPhysics(cfg config.CarrotConfig) *Physics {
	return &Physics{cfg: cfg}
}

// Integrate applies one tick of gravity, relaxes x toward the default
// position and clamps the player to the ground.
func (ph *Physics) Integrate(p *Player) {
	pc := ph.cfg.Player

	p.VelocityY += pc.Gravity
	p.Y += p.VelocityY

	dx := pc.DefaultX - p.X
	if math.Abs(dx) > 1 {
		p.X += dx * pc.ReturnToCenterSpeed
	} else {
		p.X = pc.DefaultX
	}

	groundY := ph.cfg.PlayerGroundY()
	if p.Y > groundY {
		p.Y = core.Round(groundY)
		p.VelocityY = 0
		p.IsJumping = false
		p.CanDoubleJump = true
	}
}

// ResolvePlatform pushes the player out of plat along the axis of minimum
// penetration. Ties prefer top, then bottom, left and right.
func (ph *Physics) ResolvePlatform(p *Player, plat TerrainObject) Resolution {
	if !IsColliding(p, plat) {
		if ph.onPlatform && ph.lastPlatform == plat.ID && !p.IsJumping && p.VelocityY == 0 {
			p.VelocityY = fallNudge
			ph.onPlatform = false
		}
		return ResolutionNone
	}

	left := p.X + p.Width - plat.X
	right := plat.X + plat.Width - p.X
	top := p.Y + p.Height - plat.Y
	bottom := plat.Y + plat.Height - p.Y

	switch min(left, right, top, bottom) {
	case top:
		p.Y = core.Round(plat.Y - p.Height)
		p.VelocityY = 0
		p.IsJumping = false
		p.CanDoubleJump = true
		ph.lastPlatform = plat.ID
		ph.onPlatform = true
		return ResolutionLanded
	case bottom:
		p.Y = core.Round(plat.Y + plat.Height)
		p.VelocityY = 0
		return ResolutionHeadBump
	case left:
		p.X = core.Round(plat.X - p.Width)
		return ResolutionPushedLeft
	default:
		p.X = core.Round(plat.X + plat.Width)
		return ResolutionPushedRight
	}
}

// UpdateDeath advances the death animation. Only vertical motion runs,
// stopping at the final y; rotation eases out by wall-clock time.
func (ph *Physics) UpdateDeath(p *Player, anim DeathAnimation, now time.Time) {
	if !anim.Active {
		return
	}

	p.VelocityY += ph.cfg.Player.Gravity
	p.Y += p.VelocityY
	if p.Y > anim.FinalY {
		p.Y = anim.FinalY
		p.VelocityY = 0
	}

	p.Rotation = ph.DeathRotation(now.Sub(anim.StartTime))
}

// DeathRotation returns the rotation after elapsed time of the animation.
func (ph *Physics) DeathRotation(elapsed time.Duration) float64 {
	progress := core.ClampF(elapsed.Seconds()*ph.cfg.Death.RotationSpeed, 0, 1)
	eased := 1 - (1-progress)*(1-progress)
	return eased * ph.cfg.Death.FinalRotation
}

// OutOfBounds reports whether the player fell below the canvas.
func (ph *Physics) OutOfBounds(p *Player) bool {
	return p.Y > ph.cfg.Canvas.Height
}

// Forget clears the remembered platform.
func (ph *Physics) Forget() {
	ph.lastPlatform = 0
	ph.onPlatform = false
}
