package carrot

import "github.com/vovakirdan/carrot-jump/internal/core"

const (
	particleDecay   = 0.02
	particleGravity = 0.2
)

// Particle is a visual-only spark thrown out when the player is hit.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64 // 1 when spawned, removed at 0
	Color  core.Color
}

// NewParticle creates a particle at (x, y) with a random size and velocity.
func NewParticle(x, y float64, rng RandomSource) Particle {
	return Particle{
		X:     x,
		Y:     y,
		Size:  rng.Float64()*4 + 2,
		VX:    (rng.Float64() - 0.5) * 8,
		VY:    (rng.Float64() - 0.5) * 8,
		Life:  1,
		Color: core.ColorRed,
	}
}

// Update moves the particle one tick and fades it.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= particleDecay
	p.VY += particleGravity
}

// Alive reports whether the particle should still be drawn.
func (p Particle) Alive() bool {
	return p.Life > 0
}

// Burst creates n particles centred on (x, y).
func Burst(x, y float64, n int, rng RandomSource) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = NewParticle(x, y, rng)
	}
	return ps
}

// UpdateParticles advances every particle and drops the dead ones in place.
func UpdateParticles(ps []Particle) []Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.Update()
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	return alive
}
