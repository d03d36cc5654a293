package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogfight/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all arena scenarios",
	Long:  `Shows a list of all scenarios registered in the arena.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range scenarios {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pilot simulate <id>' to play a scenario.")
}
