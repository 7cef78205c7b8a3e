package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrot-jump/internal/platform/tui"
)

// runMenu is the root command: launcher, game and scoreboard in a loop.
func runMenu(_ *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(cfg, s.highScore())
		if err != nil {
			return err
		}

		// Keep any size changes
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.runSource(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if err := playGame(s, cfg, string(result.Difficulty)); err != nil {
			return err
		}
	}
}
