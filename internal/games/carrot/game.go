// Package carrot implements Carrot Jump, an endless side-scroller where a
// bunny jumps over spikes and collects carrots while the world speeds up.
//
// The simulation is headless and deterministic for a given random source
// and clock. Sound, persistence and drawing are collaborators.
package carrot

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/audio"
	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "carrot"

// SoundPlayer plays named effects without blocking.
type SoundPlayer interface {
	Play(audio.Effect)
}

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	Config     *config.CarrotConfig
	Clock      core.Clock
	Random     RandomSource
	Sound      SoundPlayer
	HighScores HighScoreStore
	Logger     *log.Logger
	Difficulty string // Recorded in run summaries
}

// RunSummary describes a finished or ongoing run.
type RunSummary struct {
	Score      int // Points
	Units      int // Score in scored units
	Pickups    int
	Duration   time.Duration
	Difficulty string
}

// Game orchestrates one tick: scheduled tasks, physics, collisions, state
// changes, spawning and frame delivery. It must be driven from a single
// goroutine.
type Game struct {
	cfg       config.CarrotConfig
	clock     core.Clock
	rng       RandomSource
	ownRNG    bool
	sound     SoundPlayer
	store     HighScoreStore
	logger    *log.Logger
	diffLabel string

	machine   *Machine
	physics   *Physics
	spawner   *Spawner
	scheduler *Scheduler
	lives     *LifeIndicator

	player    Player
	particles []Particle

	tick         uint64
	generation   uint64
	hitSeq       uint64
	lastActivate time.Time
	restartReady bool
	runStart     time.Time
	pickups      int

	sinks []func(Snapshot)
}

// New creates a game on the splash screen.
func New(opts Options) *Game {
	g := &Game{
		clock:     opts.Clock,
		rng:       opts.Random,
		sound:     opts.Sound,
		store:     opts.HighScores,
		logger:    opts.Logger,
		diffLabel: opts.Difficulty,
	}
	if opts.Config != nil {
		g.cfg = *opts.Config
	} else {
		g.cfg = config.DefaultCarrotConfig()
	}
	if g.clock == nil {
		g.clock = core.SystemClock{}
	}
	if g.rng == nil {
		g.rng = NewRandom(time.Now().UnixNano())
		g.ownRNG = true
	}
	if g.sound == nil {
		g.sound = audio.Nop{}
	}
	if g.logger == nil {
		g.logger = log.Default()
	}

	g.machine = NewMachine(g.cfg, g.store, g.logger, g.clock.Now())
	g.physics = NewPhysics(g.cfg)
	g.spawner = NewSpawner(g.cfg, g.rng)
	g.scheduler = NewScheduler(g.clock)
	g.lives = NewLifeIndicator(g.cfg.Progression.InitialLives)
	g.player = NewPlayer(g.cfg)

	g.machine.Subscribe(EventScoreUpdate, func(e Event) {
		g.spawner.SetScore(e.State.Score)
		g.machine.IncreaseScrollSpeed()
	})
	g.machine.Subscribe(EventLivesUpdate, func(e Event) {
		if i := g.lives.Update(e.State.Lives); i >= 0 {
			g.scheduler.After(g.cfg.Timing.HeartFlash, func() { g.lives.Settle(i) })
		}
	})

	return g
}

// NewFromServices creates a game from registry services, loading the
// configuration and applying the difficulty preset and tick rate.
func NewFromServices(s registry.Services) *Game {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := config.LoadCarrot(s.ConfigPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultCarrotConfig()
	}
	preset := config.ParsePreset(s.Difficulty)
	if preset != "" {
		config.ApplyCarrotPreset(&cfg, preset)
	}
	if s.TickRate > 0 {
		cfg.Canvas.FPS = s.TickRate
	}

	opts := Options{
		Config:     &cfg,
		Clock:      s.Clock,
		Logger:     logger,
		Difficulty: string(preset),
	}
	if s.Sound != nil {
		opts.Sound = s.Sound
	}
	if s.HighScores != nil {
		opts.HighScores = s.HighScores
	}
	return New(opts)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Carrot Jump"
}

// Reset returns to the splash screen, keeping the high score and event
// subscribers. A non-zero seed reseeds the internal random source.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.ownRNG && rc.Seed != 0 {
		g.rng = NewRandom(rc.Seed)
		g.spawner.rng = g.rng
	}
	g.scheduler.CancelAll()
	g.spawner.Clear()
	g.physics.Forget()
	g.particles = g.particles[:0]
	g.player = NewPlayer(g.cfg)
	g.lives.Reset()
	g.restartReady = false
	g.lastActivate = time.Time{}
	g.runStart = time.Time{}
	g.pickups = 0
	g.machine.ReturnToSplash(g.clock.Now())
}

// Subscribe registers fn for events of kind.
func (g *Game) Subscribe(kind EventKind, fn Listener) (cancel func()) {
	return g.machine.Subscribe(kind, fn)
}

// OnFrame registers a sink that receives a snapshot after every tick.
func (g *Game) OnFrame(fn func(Snapshot)) {
	g.sinks = append(g.sinks, fn)
}

// Generation increments every time a run starts.
func (g *Game) Generation() uint64 {
	return g.generation
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.CarrotConfig {
	return g.cfg
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	p := g.machine.Phase()
	if p == PhasePlaying && g.player.Invulnerable {
		return PhaseHitRecovery
	}
	return p
}

// Activate is the single gameplay intent: start from the splash screen,
// jump while playing, restart once allowed after game over. Presses closer
// together than the debounce interval are dropped. Returns whether the
// press had an effect.
func (g *Game) Activate() bool {
	now := g.clock.Now()
	if !g.lastActivate.IsZero() && now.Sub(g.lastActivate) < g.cfg.Timing.InputDebounce {
		return false
	}
	g.lastActivate = now

	switch g.machine.Phase() {
	case PhaseSplash:
		return g.startRun(now)
	case PhasePlaying:
		if g.player.Jump(g.cfg.Player.JumpForce) {
			g.sound.Play(audio.EffectJump)
			return true
		}
		return false
	case PhaseGameOver:
		if g.machine.CanRestart(now) {
			return g.startRun(now)
		}
		return false
	default:
		// Input is ignored while the death animation plays
		return false
	}
}

// ResetHighScore zeroes the persisted high score.
func (g *Game) ResetHighScore() {
	g.machine.ResetHighScore()
}

func (g *Game) startRun(now time.Time) bool {
	g.scheduler.CancelAll()
	g.spawner.Clear()
	g.physics.Forget()
	g.particles = g.particles[:0]
	g.player.ResetPose(g.cfg)
	g.player.Invulnerable = false
	g.lives.Reset()

	if !g.machine.StartGame(now) {
		return false
	}

	g.generation++
	g.restartReady = false
	g.runStart = now
	g.pickups = 0
	g.logger.Debug("run started", "generation", g.generation)
	return true
}

// Step applies the frame's intents and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionResetHighScore) {
		g.ResetHighScore()
	}
	if in.Has(core.ActionActivate) {
		g.Activate()
	}
	g.advance()
	return core.StepResult{State: g.State()}
}

// advance runs one tick.
func (g *Game) advance() {
	now := g.clock.Now()
	g.scheduler.RunDue(now)
	g.tick++

	if g.machine.Phase() == PhaseSplash {
		g.publish()
		return
	}

	g.machine.UpdateScreenShake(g.cfg.FrameTime())
	g.machine.UpdateTerminalScrollSpeed()
	g.particles = UpdateParticles(g.particles)

	// Read once: spawning follows the state the tick started with
	st := g.machine.State()
	switch {
	case st.DeathAnimation.Active:
		g.physics.UpdateDeath(&g.player, st.DeathAnimation, now)
		if now.Sub(st.DeathAnimation.StartTime) >= g.cfg.Death.Duration {
			g.finishDeath(now)
		}
	case !st.GameOver:
		g.physics.Integrate(&g.player)
		for _, plat := range g.spawner.platforms {
			g.physics.ResolvePlatform(&g.player, plat)
		}

		// A hit ends the tick before pickups, spawning and scrolling
		if g.checkObstacles(now) {
			g.publish()
			return
		}
		g.collectPickups()
		if g.physics.OutOfBounds(&g.player) {
			g.handleHit(now)
		}
	}

	if !st.GameOver && !st.IsSplashScreen {
		g.spawner.SpawnObstacle()
		g.spawner.SpawnPickup()
		g.spawner.SpawnPlatform(true)
	}
	g.spawner.Advance(g.machine.State().ScrollSpeed)

	g.publish()
}

func (g *Game) checkObstacles(now time.Time) bool {
	if g.player.Invulnerable {
		return false
	}
	for _, o := range g.spawner.obstacles {
		if IsColliding(g.player, o) {
			g.machine.emit(EventObstacleHit)
			g.handleHit(now)
			return true
		}
	}
	return false
}

func (g *Game) collectPickups() {
	for i := len(g.spawner.pickups) - 1; i >= 0; i-- {
		pk := g.spawner.pickups[i]
		if !IsColliding(g.player, pk) {
			continue
		}
		g.sound.Play(audio.EffectCarrot)
		g.machine.AddPickup()
		g.spawner.RemovePickup(pk.ID)
		g.pickups++
	}
}

// handleHit costs a life. With lives left the player respawns invulnerable;
// on the last life the death animation starts.
func (g *Game) handleHit(now time.Time) {
	cx, cy := g.player.Center()
	g.particles = append(g.particles, Burst(cx, cy, g.cfg.Effects.ParticleCount, g.rng)...)
	g.sound.Play(audio.EffectHit)

	if !g.machine.LoseLife() {
		return
	}

	if g.machine.State().Lives > 0 {
		g.player.ResetPose(g.cfg)
		g.player.Invulnerable = true

		// Only the latest hit's expiry may clear the flag
		g.hitSeq++
		seq := g.hitSeq
		g.scheduler.After(g.cfg.Timing.Invulnerability, func() {
			if g.hitSeq == seq {
				g.player.Invulnerable = false
			}
		})
		return
	}

	g.player.Invulnerable = false
	g.sound.Play(audio.EffectDeath)
	g.scheduler.After(g.cfg.Timing.GameOverSoundWait, func() {
		g.sound.Play(audio.EffectGameOver)
	})
	g.machine.StartDeathAnimation(&g.player, g.cfg.PlayerGroundY(), now)
}

func (g *Game) finishDeath(now time.Time) {
	anim := g.machine.State().DeathAnimation
	if !g.machine.EndGame(now) {
		return
	}

	g.player.Y = anim.FinalY
	g.player.VelocityY = 0
	g.player.Rotation = g.cfg.Death.FinalRotation

	g.scheduler.After(g.cfg.Timing.RestartDelay, func() {
		g.restartReady = true
		g.machine.emit(EventRestartReady)
	})
}

// LastRun summarizes the current or most recent run.
func (g *Game) LastRun() RunSummary {
	st := g.machine.State()
	end := g.clock.Now()
	if st.GameOver {
		end = st.GameOverStartTime
	}
	var d time.Duration
	if !g.runStart.IsZero() {
		d = end.Sub(g.runStart)
	}
	return RunSummary{
		Score:      st.Score,
		Units:      g.machine.DisplayScore(),
		Pickups:    g.pickups,
		Duration:   d,
		Difficulty: g.diffLabel,
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	st := g.machine.State()
	return core.GameState{
		Score:     g.machine.DisplayScore(),
		HighScore: st.HighScore,
		GameOver:  st.GameOver,
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.Snapshot())
}

func (g *Game) publish() {
	if len(g.sinks) == 0 {
		return
	}
	snap := g.Snapshot()
	for _, fn := range g.sinks {
		fn(snap)
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func(s registry.Services) registry.Game {
		return NewFromServices(s)
	})
}
