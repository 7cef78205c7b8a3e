package carrot

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/audio"
	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptedRandom replays fixed values, then falls back to a value that
// never passes a spawn roll.
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

type recordingSound struct {
	played []audio.Effect
}

func (s *recordingSound) Play(e audio.Effect) {
	s.played = append(s.played, e)
}

func (s *recordingSound) count(e audio.Effect) int {
	n := 0
	for _, p := range s.played {
		if p == e {
			n++
		}
	}
	return n
}

type memoryStore struct {
	high    int
	saves   []int
	loadErr error
	saveErr error
}

func (m *memoryStore) LoadHighScore() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.high, nil
}

func (m *memoryStore) SaveHighScore(v int) error {
	m.saves = append(m.saves, v)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.high = v
	return nil
}

var errStoreDown = errors.New("store down")

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

type testGame struct {
	*Game
	clock *core.ManualClock
	sound *recordingSound
	store *memoryStore
	rng   *scriptedRandom
}

func newTestGame(t *testing.T, mutate func(*config.CarrotConfig)) *testGame {
	t.Helper()

	cfg := config.DefaultCarrotConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	tg := &testGame{
		clock: core.NewManualClock(testStart),
		sound: &recordingSound{},
		store: &memoryStore{},
		rng:   &scriptedRandom{},
	}
	tg.Game = New(Options{
		Config:     &cfg,
		Clock:      tg.clock,
		Random:     tg.rng,
		Sound:      tg.sound,
		HighScores: tg.store,
		Logger:     quietLogger(),
	})
	return tg
}

// step advances the clock by one frame and runs a tick.
func (tg *testGame) step() {
	tg.clock.Advance(tg.cfg.FrameTime())
	tg.Step(core.NewInputFrame())
}

func (tg *testGame) steps(n int) {
	for range n {
		tg.step()
	}
}

// start leaves the splash screen.
func (tg *testGame) start(t *testing.T) {
	t.Helper()
	if !tg.Activate() {
		t.Fatal("Activate() on splash should start a run")
	}
	if tg.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing", tg.Phase())
	}
}

// placeObstacle puts a spike on top of the player.
func (tg *testGame) placeObstacle() {
	p := tg.player
	tg.spawner.add(&tg.spawner.obstacles, KindObstacle, p.X, p.Y, 16, 32)
}

// placePickup puts a carrot on top of the player.
func (tg *testGame) placePickup() {
	p := tg.player
	tg.spawner.add(&tg.spawner.pickups, KindPickup, p.X, p.Y, 24, 24)
}

// hitOnce places a spike, runs the tick that registers the hit and
// clears the spikes again.
func (tg *testGame) hitOnce() {
	tg.placeObstacle()
	tg.step()
	tg.spawner.obstacles = tg.spawner.obstacles[:0]
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
