package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
	"github.com/vovakirdan/carrot-jump/internal/games/carrot"
)

var (
	flagSimTicks    int
	flagSimRuns     int
	flagSimRealtime bool
	flagSimDuration time.Duration
	flagSimLead     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot simulation",
	Long: `Play the game without a terminal using a simple autopilot.

By default the simulation runs as fast as possible on a simulated clock,
so a fixed --seed always produces the same runs. With --realtime it is
driven by a wall-clock ticker at the configured frame rate instead.

Examples:
  carrotjump simulate --seed 42
  carrotjump simulate --seed 7 --runs 10 --ticks 500000
  carrotjump simulate --realtime --duration 30s --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 100000, "Maximum ticks to simulate")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 3, "Stop after this many finished runs (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Drive the game with a wall-clock ticker")
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 10*time.Second, "Wall-clock limit for --realtime")
	simulateCmd.Flags().Float64Var(&flagSimLead, "lead", 12, "Autopilot look-ahead in ticks")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := config.LoadCarrot(flagConfig)
	if err != nil {
		return err
	}
	preset := config.ParsePreset(flagDifficulty)
	if preset != "" {
		config.ApplyCarrotPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Canvas.FPS = flagFPS
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pilot := carrot.NewAutopilot()
	pilot.Lead = flagSimLead

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if flagSimRealtime {
		return simulateRealtime(ctx, cfg, string(preset), seed, pilot, logger)
	}

	clock := core.NewManualClock(time.Unix(0, 0))
	game := carrot.New(carrot.Options{
		Config:     &cfg,
		Clock:      clock,
		Random:     carrot.NewRandom(seed),
		Logger:     logger,
		Difficulty: string(preset),
	})

	start := time.Now()
	res := carrot.FastForward(ctx, game, clock, pilot, flagSimTicks, flagSimRuns)
	logger.Info("simulation finished", "seed", seed, "ticks", res.Ticks, "runs", len(res.Runs), "took", time.Since(start))

	printSimResult(seed, res)
	return nil
}

// simulateRealtime runs the game on the driver until the duration elapses.
func simulateRealtime(
	ctx context.Context,
	cfg config.CarrotConfig,
	difficulty string,
	seed int64,
	pilot *carrot.Autopilot,
	logger *log.Logger,
) error {
	game := carrot.New(carrot.Options{
		Config:     &cfg,
		Random:     carrot.NewRandom(seed),
		Logger:     logger,
		Difficulty: difficulty,
	})

	var runs []carrot.RunSummary
	game.Subscribe(carrot.EventGameOver, func(carrot.Event) {
		runs = append(runs, game.LastRun())
	})

	driver := carrot.NewDriver(game,
		carrot.WithPilot(pilot.ShouldActivate),
		carrot.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
	defer cancel()

	start := time.Now()
	//nolint:errcheck // Always ends with the context error
	driver.Run(ctx)

	printSimResult(seed, carrot.SimResult{
		Ticks:     int(driver.Ticks()),
		Runs:      runs,
		HighScore: game.State().HighScore,
		Elapsed:   time.Since(start),
	})
	fmt.Printf("Tick source restarts: %d\n", driver.Restarts())
	return nil
}

func printSimResult(seed int64, res carrot.SimResult) {
	fmt.Printf("Seed: %d\n", seed)
	fmt.Printf("Ticks: %d (%s of game time)\n", res.Ticks, res.Elapsed.Round(time.Millisecond))
	fmt.Printf("Finished runs: %d\n", len(res.Runs))
	fmt.Println()

	if len(res.Runs) > 0 {
		fmt.Printf("  %-4s  %-6s  %-7s  %s\n", "Run", "Score", "Carrots", "Time")
		fmt.Printf("  %-4s  %-6s  %-7s  %s\n", "---", "-----", "-------", "----")
		for i, r := range res.Runs {
			fmt.Printf("  %-4d  %-6d  %-7d  %s\n", i+1, r.Units, r.Pickups, r.Duration.Round(time.Millisecond))
		}
		fmt.Println()
	}
	fmt.Printf("High score: %d\n", res.HighScore)
}
