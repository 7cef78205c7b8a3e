package carrot

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Intent is an input request delivered to the Driver between ticks.
type Intent uint8

const (
	IntentActivate Intent = iota
	IntentResetHighScore
)

// Ticker is the tick source used by the Driver.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Driver runs a Game at a fixed rate on its own goroutine. Intents sent
// from other goroutines are applied between ticks, never during one.
type Driver struct {
	game      *Game
	interval  time.Duration
	intents   chan Intent
	newTicker func(time.Duration) Ticker
	pilot     func(Snapshot) bool
	logger    *log.Logger
	ticks     atomic.Uint64
	restarts  atomic.Uint64
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithTicker replaces the tick source.
func WithTicker(fn func(time.Duration) Ticker) DriverOption {
	return func(d *Driver) { d.newTicker = fn }
}

// WithPilot consults fn before every tick and activates when it says so.
func WithPilot(fn func(Snapshot) bool) DriverOption {
	return func(d *Driver) { d.pilot = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// NewDriver creates a driver ticking at the game's frame rate.
func NewDriver(game *Game, opts ...DriverOption) *Driver {
	d := &Driver{
		game:      game,
		interval:  game.Config().FrameTime(),
		intents:   make(chan Intent, 16),
		newTicker: NewTimeTicker,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send queues an intent without blocking. It returns false when the queue
// is full and the intent was dropped.
func (d *Driver) Send(in Intent) bool {
	select {
	case d.intents <- in:
		return true
	default:
		return false
	}
}

// Ticks returns how many ticks ran.
func (d *Driver) Ticks() uint64 { return d.ticks.Load() }

// Restarts returns how many times the tick source was replaced.
func (d *Driver) Restarts() uint64 { return d.restarts.Load() }

// Run drives the game until ctx is cancelled. When a new run starts the
// previous ticker is stopped before the next one is created, so two tick
// sources never drive the same game.
func (d *Driver) Run(ctx context.Context) error {
	gen := d.game.Generation()
	ticker := d.newTicker(d.interval)
	defer func() { ticker.Stop() }()

	empty := core.NewInputFrame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in := <-d.intents:
			d.apply(in)

		case <-ticker.C():
			if d.pilot != nil && d.pilot(d.game.Snapshot()) {
				d.game.Activate()
			}
			d.game.Step(empty)
			d.ticks.Add(1)
		}

		if g := d.game.Generation(); g != gen {
			ticker.Stop()
			ticker = d.newTicker(d.interval)
			gen = g
			d.restarts.Add(1)
			d.logger.Debug("tick source restarted", "generation", gen)
		}
	}
}

func (d *Driver) apply(in Intent) {
	switch in {
	case IntentActivate:
		d.game.Activate()
	case IntentResetHighScore:
		d.game.ResetHighScore()
	}
}
