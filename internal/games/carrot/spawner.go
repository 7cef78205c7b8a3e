package carrot

import (
	"math"
	"slices"

	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Spawner owns the obstacle, pickup and platform collections. It spawns new
// objects at the right edge under a probabilistic policy, scrolls them left
// and culls the ones that left the screen.
//
// A rejected candidate is dropped for the tick and never retried.
type Spawner struct {
	cfg       config.CarrotConfig
	rng       RandomSource
	obstacles []TerrainObject
	pickups   []TerrainObject
	platforms []TerrainObject
	score     int
	nextID    uint64
}

// NewSpawner creates an empty spawner.
func NewSpawner(cfg config.CarrotConfig, rng RandomSource) *Spawner {
	return &Spawner{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]TerrainObject, 0, 8),
		pickups:   make([]TerrainObject, 0, 2),
		platforms: make([]TerrainObject, 0, 8),
	}
}

// SetScore updates the score the obstacle difficulty curve is keyed on.
func (s *Spawner) SetScore(score int) {
	s.score = score
}

// Score returns the last score set.
func (s *Spawner) Score() int {
	return s.score
}

// ObstacleRate returns the current per-tick obstacle probability.
func (s *Spawner) ObstacleRate() float64 {
	return s.cfg.Spawning.ObstacleRateAt(s.score, s.cfg.Progression.ScorePerPickup)
}

// SpawnObstacle may add a spike at the right edge.
// Nothing spawns before the first pickup is scored.
func (s *Spawner) SpawnObstacle() bool {
	if s.score < s.cfg.Progression.ScorePerPickup {
		return false
	}
	if s.rng.Float64() >= s.ObstacleRate() {
		return false
	}

	x := s.cfg.Canvas.Width
	minDistance := s.cfg.Player.Width
	for _, o := range s.obstacles {
		if math.Abs(x-o.Right()) < minDistance {
			return false
		}
	}

	h := s.cfg.Objects.ObstacleHeight
	s.add(&s.obstacles, KindObstacle, x, s.cfg.GroundLine()-h, s.cfg.Objects.ObstacleWidth/2, h)
	return true
}

// SpawnPickup may add a carrot at the right edge, at a random height.
func (s *Spawner) SpawnPickup() bool {
	sp := s.cfg.Spawning
	if len(s.pickups) >= sp.MaxPickups {
		return false
	}
	if s.rng.Float64() >= sp.PickupRate {
		return false
	}

	height := s.rng.Float64()*(sp.PickupMaxHeight-sp.PickupMinHeight) + sp.PickupMinHeight
	candidate := core.NewRect(
		s.cfg.Canvas.Width,
		s.cfg.GroundLine()-height,
		s.cfg.Objects.PickupWidth,
		s.cfg.Objects.PickupHeight,
	)

	// Closed intervals: a carrot touching a platform edge is hidden too
	for _, p := range s.platforms {
		if candidate.Touches(p.Rect()) {
			return false
		}
	}

	s.add(&s.pickups, KindPickup, candidate.X, candidate.Y, candidate.W, candidate.H)
	return true
}

// SpawnPlatform adds a platform once the rightmost one has moved far enough
// from the spawn edge. It does nothing unless running is true.
func (s *Spawner) SpawnPlatform(running bool) bool {
	if !running {
		return false
	}

	sp := s.cfg.Spawning
	nominal := s.cfg.Objects.PlatformWidth

	rightmost := -nominal
	for _, p := range s.platforms {
		rightmost = math.Max(rightmost, p.X)
	}
	if s.cfg.Canvas.Width-rightmost <= sp.PlatformTrailingFactor*nominal {
		return false
	}

	minY := sp.PlatformMinY
	maxY := s.cfg.GroundLine() - s.cfg.Objects.PlatformHeight - s.cfg.Objects.ObstacleHeight*2
	y := s.rng.Float64()*(maxY-minY) + minY
	width := sp.PlatformWidthFactors[s.rng.Intn(len(sp.PlatformWidthFactors))] * nominal

	x := s.cfg.Canvas.Width
	minGap := nominal * sp.PlatformMinGap
	for _, p := range s.platforms {
		if !(x+width+minGap < p.X || x > p.Right()+minGap) {
			return false
		}
	}

	s.add(&s.platforms, KindPlatform, x, y, width, s.cfg.Objects.PlatformHeight)
	return true
}

func (s *Spawner) add(dst *[]TerrainObject, kind Kind, x, y, w, h float64) {
	s.nextID++
	*dst = append(*dst, TerrainObject{
		ID:     s.nextID,
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	})
}

// Advance scrolls every object left by speed and removes the ones whose
// trailing edge passed the left boundary.
func (s *Spawner) Advance(speed float64) {
	s.obstacles = advance(s.obstacles, speed)
	s.pickups = advance(s.pickups, speed)
	s.platforms = advance(s.platforms, speed)
}

func advance(objs []TerrainObject, speed float64) []TerrainObject {
	kept := objs[:0]
	for _, o := range objs {
		o.X -= speed
		if o.X > -o.Width {
			kept = append(kept, o)
		}
	}
	return kept
}

// RemovePickup removes a collected pickup.
func (s *Spawner) RemovePickup(id uint64) bool {
	for i, p := range s.pickups {
		if p.ID == id {
			s.pickups = slices.Delete(s.pickups, i, i+1)
			return true
		}
	}
	return false
}

// Clear removes every object and resets the score.
func (s *Spawner) Clear() {
	s.obstacles = s.obstacles[:0]
	s.pickups = s.pickups[:0]
	s.platforms = s.platforms[:0]
	s.score = 0
}

// Obstacles returns a copy of the obstacles.
func (s *Spawner) Obstacles() []TerrainObject { return slices.Clone(s.obstacles) }

// Pickups returns a copy of the pickups.
func (s *Spawner) Pickups() []TerrainObject { return slices.Clone(s.pickups) }

// Platforms returns a copy of the platforms.
func (s *Spawner) Platforms() []TerrainObject { return slices.Clone(s.platforms) }

// Count returns the number of live objects.
func (s *Spawner) Count() int {
	return len(s.obstacles) + len(s.pickups) + len(s.platforms)
}
