package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/games/carrot"
	"github.com/vovakirdan/carrot-jump/internal/platform/tui"
	"github.com/vovakirdan/carrot-jump/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Carrot Jump",
	Long: `Start a game session directly, skipping the launcher.

Controls:
  Space/Up/W  - Start, jump, restart after game over
  H           - Reset the high score
  ?           - Toggle help
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower world, more lives
  normal - Defaults from the config
  hard   - Faster world, fewer lives
  fixed  - No speed or obstacle progression

Examples:
  carrotjump play
  carrotjump play --difficulty hard
  carrotjump play --config ./my-carrot.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	return playGame(s, runtimeConfig(), flagDifficulty)
}

// playGame runs one TUI session of the game until the player quits.
func playGame(s *session, cfg core.RuntimeConfig, difficulty string) error {
	game, err := registry.Create(carrot.GameID, s.services(difficulty))
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	// The redraw chain ticks exactly as fast as the simulation expects
	if cg, ok := game.(*carrot.Game); ok {
		cfg.TickRate = cg.Config().Canvas.FPS
	}

	s.logger.Info("session started", "difficulty", difficulty, "seed", cfg.Seed, "fps", cfg.TickRate)
	err = tui.Run(game, tui.Options{
		Config: cfg,
		Runs:   s.runRecorder(),
		Logger: s.logger,
	})
	s.logger.Info("session ended", "high_score", game.State().HighScore)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
