package carrot

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

type manualTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time)}
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

func TestDriverRestartsTickSource(t *testing.T) {
	tg := newTestGame(t, nil)
	frames := make(chan Snapshot, 8)
	tg.OnFrame(func(s Snapshot) { frames <- s })

	tickers := make(chan *manualTicker, 4)
	d := NewDriver(tg.Game,
		WithLogger(quietLogger()),
		WithTicker(func(time.Duration) Ticker {
			tk := newManualTicker()
			tickers <- tk
			return tk
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	first := <-tickers
	first.c <- time.Now()
	if snap := <-frames; snap.Phase != PhaseSplash {
		t.Fatalf("first frame phase = %v", snap.Phase)
	}

	if !d.Send(IntentActivate) {
		t.Fatal("Send() dropped an intent on an empty queue")
	}
	second := <-tickers
	if !first.stopped.Load() {
		t.Error("old ticker should be stopped before the new one starts")
	}

	second.c <- time.Now()
	snap := <-frames
	if snap.Phase != PhasePlaying || snap.Generation != 1 {
		t.Errorf("frame after activate: phase=%v generation=%d", snap.Phase, snap.Generation)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if !second.stopped.Load() {
		t.Error("ticker should be stopped when Run returns")
	}
	if d.Restarts() != 1 || d.Ticks() != 2 {
		t.Errorf("restarts=%d ticks=%d", d.Restarts(), d.Ticks())
	}
}

func TestDriverSendNeverBlocks(t *testing.T) {
	d := NewDriver(newTestGame(t, nil).Game, WithLogger(quietLogger()))

	sent := 0
	for range 100 {
		if d.Send(IntentActivate) {
			sent++
		}
	}
	if sent != cap(d.intents) {
		t.Errorf("sent %d intents, expected the queue capacity %d", sent, cap(d.intents))
	}
}

func TestAutopilotDecisions(t *testing.T) {
	base := func(t *testing.T) Snapshot {
		tg := newTestGame(t, nil)
		tg.start(t)
		return tg.Snapshot()
	}
	pilot := NewAutopilot()

	tests := []struct {
		name     string
		edit     func(*Snapshot)
		expected bool
	}{
		{"splash starts", func(s *Snapshot) { s.Phase = PhaseSplash }, true},
		{"game over waits", func(s *Snapshot) { s.Phase = PhaseGameOver }, false},
		{"game over restarts when ready", func(s *Snapshot) { s.Phase = PhaseGameOver; s.RestartReady = true }, true},
		{"dying", func(s *Snapshot) { s.Phase = PhaseDeathAnimating }, false},
		{"clear road", func(s *Snapshot) {}, false},
		{"spike ahead", func(s *Snapshot) {
			s.Obstacles = []TerrainObject{{Kind: KindObstacle, X: 150, Y: 318, Width: 16, Height: 32}}
		}, true},
		{"spike far away", func(s *Snapshot) {
			s.Obstacles = []TerrainObject{{Kind: KindObstacle, X: 600, Y: 318, Width: 16, Height: 32}}
		}, false},
		{"spike behind", func(s *Snapshot) {
			s.Obstacles = []TerrainObject{{Kind: KindObstacle, X: 20, Y: 318, Width: 16, Height: 32}}
		}, false},
		{"already airborne", func(s *Snapshot) {
			s.Player.IsJumping = true
			s.Obstacles = []TerrainObject{{Kind: KindObstacle, X: 150, Y: 318, Width: 16, Height: 32}}
		}, false},
		{"carrot overhead", func(s *Snapshot) {
			s.Pickups = []TerrainObject{{Kind: KindPickup, X: 140, Y: 250, Width: 24, Height: 24}}
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base(t)
			s.Obstacles = nil
			s.Pickups = nil
			tc.edit(&s)
			if got := pilot.ShouldActivate(s); got != tc.expected {
				t.Errorf("ShouldActivate() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func simulate(seed int64, ticks int) (SimResult, Snapshot) {
	clock := core.NewManualClock(testStart)
	g := New(Options{
		Clock:  clock,
		Random: NewRandom(seed),
		Logger: quietLogger(),
	})
	res := FastForward(context.Background(), g, clock, NewAutopilot(), ticks, 0)
	return res, g.Snapshot()
}

func TestFastForward(t *testing.T) {
	res, snap := simulate(11, 20000)

	if res.Ticks != 20000 {
		t.Errorf("Ticks = %d", res.Ticks)
	}
	if res.Elapsed != 20000*(time.Second/60) {
		t.Errorf("Elapsed = %v", res.Elapsed)
	}
	if snap.Phase == PhaseSplash {
		t.Error("autopilot never left the splash screen")
	}
	best := 0
	for _, r := range res.Runs {
		if r.Units != r.Score/100 || r.Pickups != r.Units {
			t.Errorf("inconsistent run summary %+v", r)
		}
		best = max(best, r.Units)
	}
	if res.HighScore < best {
		t.Errorf("HighScore %d below best run %d", res.HighScore, best)
	}
}

func TestFastForwardDeterministic(t *testing.T) {
	a, sa := simulate(5, 5000)
	b, sb := simulate(5, 5000)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
	if !reflect.DeepEqual(sa.Player, sb.Player) || !reflect.DeepEqual(sa.Obstacles, sb.Obstacles) {
		t.Error("final worlds differ for the same seed")
	}
}

func TestFastForwardStopsOnCancel(t *testing.T) {
	clock := core.NewManualClock(testStart)
	g := New(Options{Clock: clock, Random: NewRandom(1), Logger: quietLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := FastForward(ctx, g, clock, NewAutopilot(), 100, 0)
	if res.Ticks != 0 {
		t.Errorf("ran %d ticks after cancel", res.Ticks)
	}
}
