package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogfight/internal/platform/tui"
	"github.com/vovakirdan/dogfight/internal/storage"
)

var flagRunsLimit int

var resultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "Browse stored runs",
	Long: `Shows runs stored with --save. Without a run id an interactive browser
opens on a terminal, otherwise recent runs are listed. With a run id its games
or sweep points are printed.

Examples:
  pilot results
  pilot results 3f2a9c1e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of recent runs to list")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if len(args) == 0 {
		if isTerminal() {
			w, h := terminalSize()
			if err := tui.RunResults(store, w, h); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		runs, err := store.RecentRuns(ctx, flagRunsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
		fmt.Println(tui.RenderRuns(runs))
		return
	}

	runID := args[0]
	games, err := store.GamesForRun(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(games) > 0 {
		fmt.Println(tui.RenderGames(games))
		return
	}

	points, err := store.SweepPoints(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(points) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no results for run %q\n", runID)
		os.Exit(1)
	}
	best, err := store.BestSweepPoint(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tui.RenderStoredPoints(points, best))
	if best != nil {
		fmt.Printf("\nBest: %s=%g (win rate %.0f%%)\n", best.Param, best.Value, best.WinRate*100)
	}
}
