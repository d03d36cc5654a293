// pilot runs the predictive ship autopilot in a headless arena and tunes it.
//
// Usage:
//
//	pilot list                      - List arena scenarios
//	pilot config                    - Print the effective configuration
//	pilot simulate <scenario>       - Play candidate vs baseline games
//	pilot sweep <scenario>          - Sweep one tuning parameter
//	pilot watch <scenario>          - Watch a game live
//	pilot results [run-id]          - Browse stored runs
//
// Global flags:
//
//	--seed <value>       - RNG seed for reproducible games (0 = time based)
//	--db <path>          - Results database (default: ~/.dogfight/results.db)
//	--log-level <level>  - debug, info, warn or error
//	--config <path>      - Tuning YAML for the candidate pilot
//	--arena <path>       - Arena YAML
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dogfight/internal/config"

	// Import arena to register scenarios
	_ "github.com/vovakirdan/dogfight/internal/arena"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagArena      string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pilot",
	Short: "Predictive ship autopilot - simulate and tune",
	Long: `pilot drives two AI ships against each other in a headless asteroid arena.
Each ship looks a short horizon ahead for every movement action, scores the
predicted paths and commits to the best one.

Available commands:
  list      - Show arena scenarios
  config    - Print the effective tuning or arena configuration
  simulate  - Play candidate vs baseline games and print the game log
  sweep     - Evaluate one tuning parameter at several values
  watch     - Watch two pilots fly a game live
  results   - Browse stored runs

Examples:
  pilot list
  pilot simulate duel --games 20
  pilot sweep field --param scoring.hysteresis_bonus --values 0,200,350,500
  pilot watch gauntlet --seed 42
  pilot results`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dogfight/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to candidate tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagArena, "arena", "", "Path to arena YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resultsCmd)
}

// newLogger builds the CLI logger from --log-level.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "pilot",
		Level:           level,
	})
}

// loadConfigs loads the candidate tuning and the arena with the difficulty preset applied.
func loadConfigs() (config.Tuning, config.Arena, error) {
	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		return tuning, config.Arena{}, err
	}
	arena, err := config.LoadArena(flagArena)
	if err != nil {
		return tuning, arena, err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return tuning, arena, err
	}
	config.ApplyArenaPreset(&arena, preset)
	return tuning, arena, nil
}

// resolveSeed returns --seed, or a time-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalSize returns the stdout terminal size with 80x24 as fallback.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
