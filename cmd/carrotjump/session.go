package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/carrot-jump/internal/audio"
	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/games/carrot"
	"github.com/vovakirdan/carrot-jump/internal/platform/tui"
	"github.com/vovakirdan/carrot-jump/internal/registry"
	"github.com/vovakirdan/carrot-jump/internal/storage"
)

const defaultLogPath = "~/.carrotjump/carrotjump.log"

// session bundles what interactive commands share: logging, the
// database, the high-score writer and the speaker.
type session struct {
	logger  *log.Logger
	logFile io.Closer
	store   *storage.Store // Nil when the database cannot be opened
	writer  *storage.BackgroundWriter
	sound   registry.SoundPlayer
	player  *audio.Player
}

// newLogger creates the application logger. The TUI owns the terminal,
// so logs go to a file unless path is "-".
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer
	if path != "-" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "carrotjump",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		logger.Warn("unknown log level, using info", "level", level)
	}
	logger.SetLevel(lvl)
	return logger, closer, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// openSession wires the services. Only the logger is required; a missing
// database or speaker degrades to a session without persistence or sound.
func openSession(withSound bool) (*session, error) {
	logger, closer, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, logFile: closer, sound: audio.Nop{}}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("running without persistence", "db", flagDBPath, "err", err)
	} else {
		s.store = store
		s.writer = storage.NewBackgroundWriter(store.HighScoresFor(carrot.GameID), logger)
	}

	if withSound && !flagMute {
		p := audio.NewPlayer(flagVolume, logger)
		if err := p.Init(); err == nil {
			s.player = p
			s.sound = p
		}
	}

	return s, nil
}

// close flushes pending writes before the database goes away.
func (s *session) close() {
	if s.writer != nil {
		s.writer.Close()
	}
	if s.store != nil {
		//nolint:errcheck // Nothing left to do on failure
		s.store.Close()
	}
	if s.player != nil {
		s.player.Close()
	}
	if s.logFile != nil {
		//nolint:errcheck
		s.logFile.Close()
	}
}

// services returns registry services for a game at the given difficulty.
func (s *session) services(difficulty string) registry.Services {
	svc := registry.Services{
		ConfigPath: flagConfig,
		Difficulty: difficulty,
		TickRate:   flagFPS,
		Logger:     s.logger,
		Sound:      s.sound,
	}
	if s.writer != nil {
		svc.HighScores = s.writer
	}
	return svc
}

// highScore reads the persisted high score, or 0.
func (s *session) highScore() int {
	if s.writer == nil {
		return 0
	}
	v, err := s.writer.LoadHighScore()
	if err != nil {
		s.logger.Warn("failed to load high score", "err", err)
		return 0
	}
	return v
}

// runRecorder returns the run history sink, or nil without a database.
func (s *session) runRecorder() tui.RunRecorder {
	if s.store == nil {
		return nil
	}
	return s.store
}

// runSource returns the scoreboard source, or nil without a database.
func (s *session) runSource() tui.RunSource {
	if s.store == nil {
		return nil
	}
	return s.store
}

// runtimeConfig sizes the screen to the terminal. The tick rate is
// filled in from the game's config once the game exists.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.Seed = flagSeed
	return cfg
}
