package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogfight/internal/harness"
	"github.com/vovakirdan/dogfight/internal/platform/tui"
	"github.com/vovakirdan/dogfight/internal/registry"
	"github.com/vovakirdan/dogfight/internal/storage"
)

var (
	flagParam         string
	flagValues        []float64
	flagSweepGames    int
	flagWorkers       int
	flagSweepSave     bool
	flagSweepBaseline string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <scenario>",
	Short: "Evaluate one tuning parameter at several values",
	Long: `Run the same seeded games once per value of a tuning parameter and
compare the candidate's results. Values run concurrently, each with its own
copy of the tuning. Run 'pilot config --params' for parameter names.

Examples:
  pilot sweep duel --param scoring.hysteresis_bonus --values 0,100,350,700
  pilot sweep field --param search.horizon --values 5,10,15,20 --games 30 --save
  pilot sweep gauntlet --param geometry.danger_margin --values 20,40,80 --workers 2`,
	Args: cobra.ExactArgs(1),
	Run:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&flagParam, "param", "", "Tuning parameter to sweep (required)")
	sweepCmd.Flags().Float64SliceVar(&flagValues, "values", nil, "Comma-separated values (required)")
	sweepCmd.Flags().IntVar(&flagSweepGames, "games", 10, "Games per value")
	sweepCmd.Flags().IntVar(&flagWorkers, "workers", 4, "Values evaluated concurrently")
	sweepCmd.Flags().BoolVar(&flagSweepSave, "save", false, "Store sweep points in the database")
	sweepCmd.Flags().StringVar(&flagSweepBaseline, "baseline", "", "Path to baseline tuning YAML")
	sweepCmd.MarkFlagRequired("param")
	sweepCmd.MarkFlagRequired("values")
}

func runSweep(cmd *cobra.Command, args []string) {
	scenarioID := args[0]
	logger := newLogger()

	if !registry.Exists(scenarioID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'pilot list' to see available scenarios.")
		os.Exit(1)
	}

	candidate, arena, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	baseline, err := loadBaseline(flagSweepBaseline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: baseline: %v\n", err)
		os.Exit(1)
	}

	spec := harness.SweepSpec{
		Base: harness.Spec{
			Scenario:  scenarioID,
			Games:     flagSweepGames,
			Seed:      resolveSeed(),
			Arena:     arena,
			Candidate: candidate,
			Baseline:  baseline,
		},
		Param:   flagParam,
		Values:  flagValues,
		Workers: flagWorkers,
	}

	if flagSweepSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		spec.Base.Saver = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping",
		"scenario", scenarioID,
		"param", flagParam,
		"values", len(flagValues),
		"games", flagSweepGames,
		"workers", flagWorkers,
		"seed", spec.Base.Seed,
	)

	var points []harness.SweepPoint
	if isTerminal() {
		title := fmt.Sprintf("Sweeping %s on %s", flagParam, scenarioID)
		points, err = tui.RunSweep(ctx, title, spec)
	} else {
		spec.Progress = func(done, total int) {
			logger.Info("point finished", "done", done, "total", total)
		}
		points, err = harness.Sweep(ctx, spec)
	}
	if err != nil {
		logger.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	fmt.Println(tui.RenderSweep(points))
	if best, ok := harness.Best(points); ok {
		fmt.Printf("\nBest: %s=%g (win rate %.0f%%)\n", best.Param, best.Value, best.Summary.WinRate()*100)
	}
	if flagSweepSave && len(points) > 0 {
		logger.Info("sweep saved", "run", points[0].Summary.RunID)
	}
}
