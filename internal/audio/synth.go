package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveFunc returns a mono sample in [-1, 1] for time t in seconds.
type waveFunc func(t float64) float64

// synth streams a waveFunc for a fixed duration.
type synth struct {
	wave     waveFunc
	rate     beep.SampleRate
	position int
	total    int
}

func newSynth(wave waveFunc, duration time.Duration, rate beep.SampleRate) *synth {
	return &synth{
		wave:  wave,
		rate:  rate,
		total: rate.N(duration),
	}
}

func (s *synth) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, true
		}
		val := s.wave(float64(s.position) / float64(s.rate))
		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *synth) Err() error { return nil }

// Len returns the total number of samples.
func (s *synth) Len() int { return s.total }

// sweep is a sine whose pitch doubles every 1/octavesPerSecond seconds,
// faded out linearly over the duration.
func sweep(base, octavesPerSecond float64, duration time.Duration) waveFunc {
	d := duration.Seconds()
	return func(t float64) float64 {
		freq := base * math.Pow(2, t*octavesPerSecond)
		return math.Sin(2*math.Pi*freq*t) * (1 - t/d)
	}
}

const (
	jumpDuration     = 100 * time.Millisecond
	carrotDuration   = 100 * time.Millisecond
	deathDuration    = 200 * time.Millisecond
	hitDuration      = 120 * time.Millisecond
	gameOverDuration = 600 * time.Millisecond
	wahDuration      = 0.2 // seconds per game-over note
)

// hitWave is a short falling "ow" built from three formants plus noise.
func hitWave(rng *rand.Rand) waveFunc {
	const base = 300.0
	return func(t float64) float64 {
		attack := math.Exp(-t * 30)
		release := math.Exp(-t * 8)
		f1 := base * math.Pow(2, -t*4)
		f2 := base * 1.5 * math.Pow(2, -t*3)
		f3 := base * 2 * math.Pow(2, -t*2)
		noise := (rng.Float64() - 0.5) * 0.2
		return (math.Sin(2*math.Pi*f1*t)*0.4 +
			math.Sin(2*math.Pi*f2*t)*0.3 +
			math.Sin(2*math.Pi*f3*t)*0.2 +
			noise) * attack * release
	}
}

// gameOverWave plays three descending "wah" notes with vibrato.
func gameOverWave(t float64) float64 {
	notes := [3]float64{400, 280, 200}
	sample := 0.0
	for i, base := range notes {
		wt := t - float64(i)*wahDuration
		if wt < 0 || wt >= wahDuration {
			continue
		}
		env := math.Sin(math.Pi*wt/wahDuration) * math.Exp(-wt*2)
		vibrato := math.Sin(2*math.Pi*8*wt) * 0.2
		freq := base * (1 + vibrato)
		sample += math.Sin(2*math.Pi*freq*wt) * env * 0.3
		sample += math.Sin(4*math.Pi*freq*wt) * env * 0.15
	}
	return sample
}

// newVolume scales a streamer linearly; zero or less is silent.
// effects.Volume works in log space, so the gain is converted with Log2.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewStreamer builds the streamer for an effect at the given rate and volume.
// It returns nil for unknown effects.
func NewStreamer(e Effect, rate beep.SampleRate, volume float64, rng *rand.Rand) beep.Streamer {
	var s *synth
	switch e {
	case EffectJump:
		s = newSynth(sweep(440, 12, jumpDuration), jumpDuration, rate)
	case EffectCarrot:
		s = newSynth(sweep(880, 6, carrotDuration), carrotDuration, rate)
	case EffectDeath:
		s = newSynth(sweep(110, -3, deathDuration), deathDuration, rate)
	case EffectHit:
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		s = newSynth(hitWave(rng), hitDuration, rate)
	case EffectGameOver:
		s = newSynth(gameOverWave, gameOverDuration, rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// Duration returns how long an effect plays.
func Duration(e Effect) time.Duration {
	switch e {
	case EffectJump:
		return jumpDuration
	case EffectCarrot:
		return carrotDuration
	case EffectDeath:
		return deathDuration
	case EffectHit:
		return hitDuration
	case EffectGameOver:
		return gameOverDuration
	default:
		return 0
	}
}
