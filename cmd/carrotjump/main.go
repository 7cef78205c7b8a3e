// carrotjump is an endless side-scroller for the terminal: a bunny hops
// over obstacles, onto platforms and collects carrots.
//
// Usage:
//
//	carrotjump                - Start the launcher menu
//	carrotjump play           - Play a single session
//	carrotjump list           - List registered games
//	carrotjump scores         - Show the best runs and the high score
//	carrotjump simulate       - Run a headless autopilot simulation
//
// Global flags:
//
//	--fps <rate>          - Override the simulation tick rate (default: config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.carrotjump/carrotjump.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/carrot-jump/internal/games/carrot"
	"github.com/vovakirdan/carrot-jump/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carrotjump",
	Short: "Carrot Jump - an endless bunny runner in your terminal",
	Long: `Carrot Jump is an endless side-scroller: hop over obstacles, land on
platforms and collect carrots. Every carrot is worth points and makes
the world scroll faster.

Running carrotjump without a command opens the launcher menu.

Examples:
  carrotjump
  carrotjump play --difficulty hard
  carrotjump scores
  carrotjump simulate --seed 42 --runs 5`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation tick rate (0 = from the game config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume between 0 and 1")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLogPath, "Log file path (- for stderr)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
