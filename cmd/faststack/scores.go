package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/faststack/internal/platform/tui"
	"github.com/vovakirdan/faststack/internal/registry"
	"github.com/vovakirdan/faststack/internal/storage"
)

var (
	flagLimit      int
	flagScoresTUI  bool
	flagScoreStats bool
	flagRecent     bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best times for a mode",
	Long: `Display the fastest finished games for a mode.

Examples:
  faststack scores
  faststack scores sprint --limit 20
  faststack scores --stats
  faststack scores --recent
  faststack scores sprint20 --clear
  faststack scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagScoreStats, "stats", false, "Show per-mode totals instead of a table")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest games of every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the mode")
	scoresCmd.MarkFlagsMutuallyExclusive("tui", "stats", "recent", "clear")
}

func runScores(cmd *cobra.Command, args []string) error {
	modeID := registry.DefaultMode
	if len(args) == 1 {
		modeID = args[0]
	}
	mode, err := registry.Get(modeID)
	if err != nil {
		return fmt.Errorf("%w, run 'faststack list' to see available modes", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		return tui.RunScoreboard(store, mode.ID, 0, 0)
	case flagScoreStats:
		return printStats(store)
	case flagRecent:
		return printRecent(store)
	case flagClear:
		if err := store.ClearScores(mode.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", mode.Title)
		return nil
	}

	scores, err := store.TopScores(mode.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", mode.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Printf("Play 'faststack play %s' to set the first time!\n", mode.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-5s  %-4s  %s\n", "Rank", "Time", "Pieces", "PPS", "KPP", "Fin", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-5s  %-4s  %s\n", "----", "----", "------", "---", "---", "---", "----")
	for i, sc := range scores {
		fmt.Printf("  %-4d  %-9s  %-6d  %-5.2f  %-5.2f  %-4d  %s\n",
			i+1, tui.FormatTime(sc.TimeMs), sc.Blocks, sc.PiecesPerSecond(), sc.KeysPerPiece(),
			sc.Finesse, sc.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(store *storage.Store) error {
	all, err := store.GetAllModeStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No finished games yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-5s  %-9s  %-9s  %-7s  %s\n", "Mode", "Games", "Best", "Average", "Pieces", "Last played")
	for _, st := range all {
		fmt.Printf("  %-10s  %-5d  %-9s  %-9s  %-7d  %s\n",
			st.Mode, st.GamesCount, tui.FormatTime(st.BestTimeMs), tui.FormatTime(int(st.AvgTimeMs)),
			st.TotalBlocks, st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecent(store *storage.Store) error {
	scores, err := store.RecentScores(flagLimit)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		fmt.Println("No finished games yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-9s  %-10s  %s\n", "Date", "Mode", "Time", "Seed", "Replay")
	for _, sc := range scores {
		fmt.Printf("  %-16s  %-10s  %-9s  %-10d  %s\n",
			sc.CreatedAt.Local().Format("2006-01-02 15:04"), sc.Mode, tui.FormatTime(sc.TimeMs), sc.Seed, sc.Replay)
	}
	return nil
}
