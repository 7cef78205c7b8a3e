package carrot

import (
	"slices"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/config"
)

// Snapshot is an immutable copy of everything a renderer needs for a frame.
type Snapshot struct {
	Tick         uint64
	Generation   uint64
	Now          time.Time
	Phase        Phase
	Player       Player
	Obstacles    []TerrainObject
	Pickups      []TerrainObject
	Platforms    []TerrainObject
	Particles    []Particle
	State        GameState
	Hearts       []HeartState
	RestartReady bool
	Config       config.CarrotConfig
}

// Snapshot copies the current world.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:         g.tick,
		Generation:   g.generation,
		Now:          g.clock.Now(),
		Phase:        g.Phase(),
		Player:       g.player,
		Obstacles:    g.spawner.Obstacles(),
		Pickups:      g.spawner.Pickups(),
		Platforms:    g.spawner.Platforms(),
		Particles:    slices.Clone(g.particles),
		State:        g.machine.State(),
		Hearts:       g.lives.Hearts(),
		RestartReady: g.restartReady,
		Config:       g.cfg,
	}
}

// DisplayScore returns the score in scored units.
func (s Snapshot) DisplayScore() int {
	unit := s.Config.Progression.ScorePerPickup
	if unit <= 0 {
		return s.State.Score
	}
	return s.State.Score / unit
}

// PlayerVisible reports whether the player sprite is drawn this frame.
// While invulnerable it blinks at the configured flash interval.
func (s Snapshot) PlayerVisible() bool {
	interval := s.Config.Effects.FlashInterval.Milliseconds()
	if !s.Player.Invulnerable || interval <= 0 {
		return true
	}
	return (s.Now.UnixMilli()/interval)%2 == 0
}
