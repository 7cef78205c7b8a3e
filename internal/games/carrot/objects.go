package carrot

import (
	"math/rand"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Kind distinguishes terrain object variants.
type Kind uint8

const (
	KindObstacle Kind = iota
	KindPickup
	KindPlatform
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindPickup:
		return "pickup"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// TerrainObject is a scrolling axis-aligned box. It has no velocity of its
// own; the shared scroll speed moves it.
type TerrainObject struct {
	ID     uint64
	Kind   Kind
	X, Y   float64
	Width  float64
	Height float64
}

// Rect returns the bounding box.
func (o TerrainObject) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Right returns the x-coordinate of the trailing edge.
func (o TerrainObject) Right() float64 {
	return o.X + o.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (o TerrainObject) Bottom() float64 {
	return o.Y + o.Height
}

// Supports reports whether the player can land on the object.
func (o TerrainObject) Supports() bool {
	return o.Kind == KindPlatform
}

// Boxed is anything with a collision box.
type Boxed interface {
	Rect() core.Rect
}

// IsColliding reports whether two boxes overlap. Touching edges do not count.
func IsColliding(a, b Boxed) bool {
	return a.Rect().Intersects(b.Rect())
}

// RandomSource supplies randomness to spawning and effects.
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRandom returns a seeded source.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
