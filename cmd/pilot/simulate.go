package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/harness"
	"github.com/vovakirdan/dogfight/internal/platform/tui"
	"github.com/vovakirdan/dogfight/internal/registry"
	"github.com/vovakirdan/dogfight/internal/storage"
)

var (
	flagGames        int
	flagBaseline     string
	flagSave         bool
	flagSummaryEvery int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Play candidate vs baseline games",
	Long: `Play seeded games in the headless arena. Player 1 flies the candidate
tuning (--config), player 2 the baseline (--baseline, defaults otherwise).

The game log is written to stdout, one line per event:
  === GAME <n> seed=<seed> ===
  KILL tick=<t> side=<p1|p2> cause=<bullet|asteroid|wall|ram>
  SUMMARY games=<n> oscillation=<n> collapse=<n> fires_per_game=<f> changes_per_game=<f>

Use --log-level debug to also log every pilot decision to stderr.

Examples:
  pilot simulate duel
  pilot simulate field --games 50 --seed 7 --save
  pilot simulate gauntlet --config ./candidate.yaml --baseline ./baseline.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games")
	simulateCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Path to baseline tuning YAML")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store results in the database")
	simulateCmd.Flags().IntVar(&flagSummaryEvery, "summary-every", 0, "Emit a SUMMARY line every n games (0 = only at the end)")
}

// loadBaseline loads the baseline tuning from path, or the built-in defaults when path is empty.
func loadBaseline(path string) (config.Tuning, error) {
	if path == "" {
		return config.DefaultTuning(), nil
	}
	return config.LoadTuning(path)
}

func runSimulate(cmd *cobra.Command, args []string) {
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
	baseline, err := loadBaseline(flagBaseline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: baseline: %v\n", err)
		os.Exit(1)
	}

	spec := harness.Spec{
		Scenario:     scenarioID,
		Games:        flagGames,
		Seed:         resolveSeed(),
		Arena:        arena,
		Candidate:    candidate,
		Baseline:     baseline,
		Reporter:     harness.NewReporter(os.Stdout),
		SummaryEvery: flagSummaryEvery,
		Logger:       logger,
	}

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		spec.Saver = store
	}

	logger.Info("simulating",
		"scenario", scenarioID,
		"games", spec.Games,
		"seed", spec.Seed,
		"progression", config.NewDifficultyManager(arena.Difficulty).IsEnabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := harness.Run(ctx, spec)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	if isTerminal() {
		fmt.Println()
		fmt.Println(tui.RenderSummary(sum))
	}
	if flagSave {
		logger.Info("results saved", "run", sum.RunID)
	}
}
