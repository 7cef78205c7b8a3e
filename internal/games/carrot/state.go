package carrot

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/config"
)

// Phase is the lifecycle stage of a game.
type Phase uint8

const (
	PhaseSplash Phase = iota
	PhasePlaying
	PhaseHitRecovery // Playing while invulnerable after a hit
	PhaseDeathAnimating
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "splash"
	case PhasePlaying:
		return "playing"
	case PhaseHitRecovery:
		return "hit-recovery"
	case PhaseDeathAnimating:
		return "death-animating"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Active reports whether the player is in control.
func (p Phase) Active() bool {
	return p == PhasePlaying || p == PhaseHitRecovery
}

// DeathAnimation records the final bounce after the last life is lost.
type DeathAnimation struct {
	StartTime time.Time
	StartY    float64
	FinalY    float64
	Active    bool
}

// GameState holds score, lives and lifecycle flags.
// Exactly one of IsSplashScreen, GameOver and (GameStarted && !GameOver)
// holds at any tick.
type GameState struct {
	Score             int
	HighScore         int // In scored units, not points
	Lives             int
	ScrollSpeed       float64
	GameStarted       bool
	GameOver          bool
	IsNewHighScore    bool
	IsSplashScreen    bool
	ScreenShake       time.Duration
	SplashStartTime   time.Time
	GameOverStartTime time.Time
	DeathAnimation    DeathAnimation
}

// HighScoreStore persists the high-score scalar.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(int) error
}

// Machine owns GameState and its transitions. Misuse, such as restarting
// before the cooldown, is a no-op reported by a false return.
type Machine struct {
	cfg    config.CarrotConfig
	state  GameState
	store  HighScoreStore
	logger *log.Logger
	events bus
}

// NewMachine creates a machine on the splash screen. The high score is read
// once from store; a failed read starts from 0.
func NewMachine(cfg config.CarrotConfig, store HighScoreStore, logger *log.Logger, now time.Time) *Machine {
	if logger == nil {
		logger = log.Default()
	}
	m := &Machine{
		cfg:    cfg,
		store:  store,
		logger: logger,
		state: GameState{
			Lives:           cfg.Progression.InitialLives,
			ScrollSpeed:     cfg.Progression.InitialScrollSpeed,
			IsSplashScreen:  true,
			SplashStartTime: now,
		},
	}

	if store != nil {
		high, err := store.LoadHighScore()
		if err != nil {
			logger.Warn("failed to load high score, starting from 0", "err", err)
		} else {
			m.state.HighScore = high
		}
	}

	return m
}

// State returns a copy of the current state.
func (m *Machine) State() GameState {
	return m.state
}

// Phase derives the lifecycle phase. Hit recovery depends on the player and
// is refined by the game.
func (m *Machine) Phase() Phase {
	switch {
	case m.state.IsSplashScreen:
		return PhaseSplash
	case m.state.GameOver:
		return PhaseGameOver
	case m.state.DeathAnimation.Active:
		return PhaseDeathAnimating
	default:
		return PhasePlaying
	}
}

// Subscribe registers fn for events of kind. Call cancel to unsubscribe.
func (m *Machine) Subscribe(kind EventKind, fn Listener) (cancel func()) {
	return m.events.subscribe(kind, fn)
}

func (m *Machine) emit(kind EventKind) {
	m.events.emit(Event{Kind: kind, State: m.state})
}

// StartGame enters Playing from the splash screen or game over.
func (m *Machine) StartGame(now time.Time) bool {
	switch m.Phase() {
	case PhaseSplash:
	case PhaseGameOver:
		if !m.CanRestart(now) {
			return false
		}
	default:
		return false
	}

	m.state = GameState{
		HighScore:       m.state.HighScore,
		Lives:           m.cfg.Progression.InitialLives,
		ScrollSpeed:     m.cfg.Progression.InitialScrollSpeed,
		GameStarted:     true,
		SplashStartTime: m.state.SplashStartTime,
	}
	m.logger.Debug("game started")
	m.emit(EventGameStart)
	return true
}

// ReturnToSplash shows the splash screen again, keeping the high score.
func (m *Machine) ReturnToSplash(now time.Time) {
	m.state = GameState{
		HighScore:       m.state.HighScore,
		Lives:           m.cfg.Progression.InitialLives,
		ScrollSpeed:     m.cfg.Progression.InitialScrollSpeed,
		IsSplashScreen:  true,
		SplashStartTime: now,
	}
}

// LoseLife takes one life and starts the screen shake. Reaching zero lives
// does not end the game; the death animation does that.
func (m *Machine) LoseLife() bool {
	if m.Phase() != PhasePlaying {
		return false
	}
	m.state.Lives--
	m.state.ScreenShake = m.cfg.Effects.ShakeDuration
	m.logger.Debug("life lost", "lives", m.state.Lives)
	m.emit(EventLivesUpdate)
	return true
}

// StartDeathAnimation launches the final bounce toward finalY.
func (m *Machine) StartDeathAnimation(p *Player, finalY float64, now time.Time) bool {
	if m.Phase() != PhasePlaying {
		return false
	}
	p.VelocityY = m.cfg.Player.JumpForce
	m.state.DeathAnimation = DeathAnimation{
		StartTime: now,
		StartY:    p.Y,
		FinalY:    finalY,
		Active:    true,
	}
	m.logger.Debug("death animation started", "score", m.state.Score)
	m.emit(EventDeath)
	return true
}

// EndGame enters GameOver. It succeeds once per run.
func (m *Machine) EndGame(now time.Time) bool {
	if !m.state.GameStarted || m.state.GameOver {
		return false
	}
	m.state.GameOver = true
	m.state.GameOverStartTime = now
	m.state.DeathAnimation.Active = false
	m.evaluateHighScore()
	m.logger.Debug("game over", "score", m.state.Score, "high", m.state.HighScore)
	m.emit(EventGameOver)
	return true
}

// AddPickup scores one pickup.
func (m *Machine) AddPickup() bool {
	if m.Phase() != PhasePlaying {
		return false
	}
	m.state.Score += m.cfg.Progression.ScorePerPickup
	m.emit(EventPickupCollected)
	m.emit(EventScoreUpdate)
	m.evaluateHighScore()
	return true
}

// DisplayScore returns the score in scored units.
func (m *Machine) DisplayScore() int {
	return m.state.Score / m.cfg.Progression.ScorePerPickup
}

// evaluateHighScore raises the high score if the current run beat it.
func (m *Machine) evaluateHighScore() bool {
	units := m.DisplayScore()
	if units <= m.state.HighScore {
		return false
	}
	m.state.HighScore = units
	m.state.IsNewHighScore = true
	m.persistHighScore()
	m.emit(EventHighScoreUpdate)
	return true
}

func (m *Machine) persistHighScore() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveHighScore(m.state.HighScore); err != nil {
		m.logger.Warn("failed to save high score", "value", m.state.HighScore, "err", err)
	}
}

// IncreaseScrollSpeed speeds the world up by one pickup's worth.
func (m *Machine) IncreaseScrollSpeed() {
	m.state.ScrollSpeed += m.cfg.Progression.SpeedIncreasePerPickup
}

// UpdateScreenShake counts the shake down by dt, stopping at zero.
func (m *Machine) UpdateScreenShake(dt time.Duration) {
	if m.state.ScreenShake <= 0 {
		return
	}
	m.state.ScreenShake -= dt
	if m.state.ScreenShake < 0 {
		m.state.ScreenShake = 0
	}
}

// UpdateTerminalScrollSpeed slows the world to a stop over one second
// after game over. The world keeps its speed during the death animation.
func (m *Machine) UpdateTerminalScrollSpeed() {
	if !m.state.GameOver {
		return
	}
	if m.state.ScrollSpeed <= 0 {
		return
	}
	step := m.cfg.Progression.InitialScrollSpeed / float64(m.cfg.Canvas.FPS)
	m.state.ScrollSpeed = max(0, m.state.ScrollSpeed-step)
}

// CanRestart reports whether the restart cooldown has passed.
func (m *Machine) CanRestart(now time.Time) bool {
	if !m.state.GameOver {
		return false
	}
	return now.Sub(m.state.GameOverStartTime) >= m.cfg.Timing.RestartDelay
}

// ResetHighScore zeroes and persists the high score.
func (m *Machine) ResetHighScore() {
	m.state.HighScore = 0
	m.state.IsNewHighScore = false
	m.persistHighScore()
	m.logger.Debug("high score reset")
	m.emit(EventHighScoreUpdate)
}
