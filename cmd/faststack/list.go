package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/faststack/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every game mode faststack knows about.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID)+1)
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, m := range modes {
		id := m.ID
		if id == registry.DefaultMode {
			id += "*"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, id, maxTitleLen, m.Title, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'faststack play <id>' to play a mode (* marks the default).")
}
