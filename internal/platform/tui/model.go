package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/games/carrot"
	"github.com/vovakirdan/carrot-jump/internal/registry"
	"github.com/vovakirdan/carrot-jump/internal/storage"
)

// RunRecorder keeps finished runs for the scoreboard.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// runSummarizer is implemented by games that describe their last run.
type runSummarizer interface {
	LastRun() carrot.RunSummary
}

// Options configures the game screen.
type Options struct {
	Config core.RuntimeConfig
	Runs   RunRecorder // Optional
	Logger *log.Logger
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	runs       RunRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	interval   time.Duration
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        uint64
	quitting   bool
	runSaved   bool // Whether the current game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	keys := DefaultKeyMap()
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		runs:       opts.Runs,
		logger:     logger,
		config:     cfg,
		interval:   time.Second / time.Duration(cfg.TickRate),
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.gen = m.generation()
	return m
}

// gameRows leaves the last terminal row for the help bar.
func gameRows(h int) int {
	return max(h-1, 1)
}

func (m Model) generation() uint64 {
	if g, ok := m.game.(registry.Generational); ok {
		return g.Generation()
	}
	return 0
}

// Init resets the game and starts the tick chain.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.interval, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			// A newer chain owns the game
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey records intents; they are applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going; the game scales to any size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.runSaved:
		m.recordRun()
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	if gen := m.generation(); gen != m.gen {
		m.logger.Debug("new run, restarting tick chain", "generation", gen)
		m.gen = gen
	}
	return m, tickCmd(m.interval, m.gen)
}

// recordRun stores the finished run. Failures only cost the history entry.
func (m *Model) recordRun() {
	if m.runs == nil {
		return
	}
	run := storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
	}
	if s, ok := m.game.(runSummarizer); ok {
		sum := s.LastRun()
		run.Pickups = sum.Pickups
		run.Duration = sum.Duration
		run.Difficulty = sum.Difficulty
	}
	if _, err := m.runs.SaveRun(run); err != nil {
		m.logger.Warn("failed to record run", "score", run.Score, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".carrotjump", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("failed to save screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
