package carrot

import (
	"context"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Autopilot is a simple bot that decides when to press activate.
// It jumps when a spike gets close and reaches for carrots above it.
type Autopilot struct {
	// Restart makes the bot start a new run after game over.
	Restart bool
	// Lead is how many ticks ahead of a spike the bot jumps.
	Lead float64
}

// NewAutopilot returns a bot with a lead tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Restart: true, Lead: 12}
}

// ShouldActivate reports whether to press activate for this frame.
func (a *Autopilot) ShouldActivate(s Snapshot) bool {
	switch s.Phase {
	case PhaseSplash:
		return true
	case PhaseGameOver:
		return a.Restart && s.RestartReady
	case PhaseDeathAnimating:
		return false
	}

	p := s.Player
	if p.IsJumping {
		return false
	}

	reach := a.Lead*s.State.ScrollSpeed + p.Width/2
	front := p.X + p.Width
	for _, o := range s.Obstacles {
		gap := o.X - front
		if gap >= 0 && gap < reach {
			return true
		}
	}
	for _, c := range s.Pickups {
		gap := c.X - front
		if gap >= 0 && gap < reach && c.Bottom() <= p.Y {
			return true
		}
	}
	return false
}

// SimResult summarizes a headless simulation.
type SimResult struct {
	Ticks     int
	Runs      []RunSummary
	HighScore int
	Elapsed   time.Duration // Simulated wall-clock time
}

// FastForward plays up to ticks frames as fast as possible, advancing clock
// by one frame per tick. It stops early after maxRuns finished runs when
// maxRuns is positive, or when ctx is cancelled.
func FastForward(ctx context.Context, g *Game, clock *core.ManualClock, pilot *Autopilot, ticks, maxRuns int) SimResult {
	var res SimResult
	cancel := g.Subscribe(EventGameOver, func(Event) {
		res.Runs = append(res.Runs, g.LastRun())
	})
	defer cancel()

	frame := g.Config().FrameTime()
	empty := core.NewInputFrame()
	start := clock.Now()

	for res.Ticks < ticks {
		if ctx.Err() != nil {
			break
		}
		if maxRuns > 0 && len(res.Runs) >= maxRuns {
			break
		}
		if pilot != nil && pilot.ShouldActivate(g.Snapshot()) {
			g.Activate()
		}
		clock.Advance(frame)
		g.Step(empty)
		res.Ticks++
	}

	res.HighScore = g.State().HighScore
	res.Elapsed = clock.Now().Sub(start)
	return res
}
