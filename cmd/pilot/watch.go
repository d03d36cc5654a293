package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/harness"
	"github.com/vovakirdan/dogfight/internal/platform/tui"
	"github.com/vovakirdan/dogfight/internal/registry"
)

var (
	flagFPS           int
	flagWatchLevel    float64
	flagWatchBaseline string
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch two pilots fly a game live",
	Long: `Play one seeded game in the terminal, P1 (cyan) flying the candidate
tuning and P2 (magenta) the baseline.

Controls:
  Space/P    - Pause
  +/-        - Faster/slower
  N/R        - Next game (seed + 1)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  pilot watch duel
  pilot watch gauntlet --seed 42 --level 1
  pilot watch field --config ./candidate.yaml --fps 30`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagFPS, "fps", 60, "Frames per second")
	watchCmd.Flags().Float64Var(&flagWatchLevel, "level", -1, "Difficulty level 0..1 (default: initial level of the preset)")
	watchCmd.Flags().StringVar(&flagWatchBaseline, "baseline", "", "Path to baseline tuning YAML")
}

func runWatch(cmd *cobra.Command, args []string) {
	scenarioID := args[0]

	if !registry.Exists(scenarioID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'pilot list' to see available scenarios.")
		os.Exit(1)
	}
	if !isTerminal() {
		fmt.Fprintln(os.Stderr, "Error: watch needs a terminal; use 'pilot simulate' instead.")
		os.Exit(1)
	}

	candidate, arena, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	baseline, err := loadBaseline(flagWatchBaseline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: baseline: %v\n", err)
		os.Exit(1)
	}

	level := flagWatchLevel
	if level < 0 {
		level = config.NewDifficultyManager(arena.Difficulty).Level(0, 1)
	}

	spec := harness.GameSpec{
		Scenario:  scenarioID,
		Seed:      resolveSeed(),
		Level:     level,
		Arena:     arena,
		Candidate: candidate,
		Baseline:  baseline,
	}

	w, h := terminalSize()
	if err := tui.RunWatch(spec, flagFPS, w, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
