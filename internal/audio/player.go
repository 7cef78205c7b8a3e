package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays effects through the system speaker.
// Until Init succeeds every Play is a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	volume      float64
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player. Volume is linear in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker. On failure the error is logged and returned,
// and the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "err", err)
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues an effect on the mixer and returns immediately.
func (p *Player) Play(e Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := NewStreamer(e, sampleRate, p.volume, p.rng)
	if s == nil {
		p.logger.Warn("unknown sound effect", "effect", string(e))
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
